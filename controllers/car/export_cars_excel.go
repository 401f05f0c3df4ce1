package carControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
)

// ExportCarsToExcel downloads the calling seller's listings as a spreadsheet.
func ExportCarsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cars []models.Car
		if err := db.Where("seller_id = ?", identity.ID).Find(&cars).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch cars", err))
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Cars")
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to create Excel sheet", err))
			return
		}

		headers := []string{
			"ID", "Brand", "Color", "Country", "Price",
			"QuantityInStock", "QuantitySold", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, car := range cars {
			row := sheet.AddRow()
			row.AddCell().SetValue(car.ID)
			row.AddCell().SetValue(car.Brand)
			row.AddCell().SetValue(car.Color)
			row.AddCell().SetValue(car.Country)
			row.AddCell().SetValue(car.Price)
			row.AddCell().SetValue(car.QuantityInStock)
			row.AddCell().SetValue(car.QuantitySold)
			row.AddCell().SetValue(car.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=cars.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")

		if err := file.Write(c.Writer); err != nil {
			apperr.Respond(c, apperr.Internal("Failed to write Excel file", err))
			return
		}
	}
}
