package carControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/apperr"
	"github.com/carmarket-dev/carmarket-api/models"
)

// Whitelist of sortable columns; anything else falls back to created_at.
var sortableColumns = map[string]bool{
	"created_at":        true,
	"price":             true,
	"brand":             true,
	"quantity_sold":     true,
	"quantity_in_stock": true,
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetCars lists the catalog with optional case-insensitive filters, sorting
// and offset pagination.
//
// GET /api/cars?country=&brand=&color=&min_price=&max_price=&sort_by=&order=&page=&limit=
func GetCars(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Car{})

		// LOWER() comparisons keep the filters portable across Postgres
		// and the sqlite test driver.
		if country := c.Query("country"); country != "" {
			query = query.Where("LOWER(country) LIKE LOWER(?)", "%"+country+"%")
		}
		if color := c.Query("color"); color != "" {
			query = query.Where("LOWER(color) = LOWER(?)", color)
		}
		if brand := c.Query("brand"); brand != "" {
			query = query.Where("LOWER(brand) = LOWER(?)", brand)
		}
		if minPriceStr := c.Query("min_price"); minPriceStr != "" {
			mp, err := strconv.ParseFloat(minPriceStr, 64)
			if err != nil {
				apperr.Respond(c, apperr.Validation("Invalid min_price"))
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPriceStr := c.Query("max_price"); maxPriceStr != "" {
			mp, err := strconv.ParseFloat(maxPriceStr, 64)
			if err != nil {
				apperr.Respond(c, apperr.Validation("Invalid max_price"))
				return
			}
			query = query.Where("price <= ?", mp)
		}

		sortBy := c.DefaultQuery("sort_by", "created_at")
		if !sortableColumns[sortBy] {
			sortBy = "created_at"
		}
		sortOrder := c.DefaultQuery("order", "desc")
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
		if limit < 1 || limit > maxPageSize {
			limit = defaultPageSize
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to count cars", err))
			return
		}

		var cars []models.Car
		if err := query.
			Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&cars).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch cars", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"length": len(cars),
			"total":  total,
			"page":   page,
			"limit":  limit,
			"cars":   cars,
		})
	}
}

// GetCarByID returns one listing.
func GetCarByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var car models.Car
		if err := db.First(&car, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apperr.Respond(c, apperr.NotFound("Car not found"))
				return
			}
			apperr.Respond(c, apperr.Internal("Failed to fetch car details", err))
			return
		}
		c.JSON(http.StatusOK, car)
	}
}
