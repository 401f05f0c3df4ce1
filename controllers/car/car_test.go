package carControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
	"github.com/carmarket-dev/carmarket-api/testutil"
)

func newCarRouter(db *gorm.DB, identity auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { auth.SetIdentity(c, identity) })
	r.GET("/cars", GetCars(db))
	r.GET("/cars/statistics", GetSoldCarsStatistics(db))
	r.GET("/cars/:id", GetCarByID(db))
	r.POST("/cars", CreateCar(db))
	r.PUT("/cars/:id", UpdateCar(db))
	r.DELETE("/cars/:id", DeleteCar(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type listResponse struct {
	Length int          `json:"length"`
	Total  int64        `json:"total"`
	Page   int          `json:"page"`
	Cars   []models.Car `json:"cars"`
}

func listCars(t *testing.T, r *gin.Engine, query string) listResponse {
	t.Helper()
	w := doJSON(r, http.MethodGet, "/cars"+query, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func seedCatalog(t *testing.T, db *gorm.DB, sellerID string) {
	t.Helper()
	cars := []models.Car{
		{Brand: "Toyota", Color: "Red", Country: "Japan", Price: 15000, QuantityInStock: 2, SellerID: sellerID},
		{Brand: "BMW", Color: "Black", Country: "Germany", Price: 40000, QuantityInStock: 1, SellerID: sellerID},
		{Brand: "Audi", Color: "black", Country: "germany", Price: 35000, QuantityInStock: 3, SellerID: sellerID},
	}
	for i := range cars {
		require.NoError(t, db.Create(&cars[i]).Error)
	}
}

func TestGetCarsFilters(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	seedCatalog(t, db, seller.ID)
	r := newCarRouter(db, auth.Identity{})

	// Country substring, case-insensitive.
	resp := listCars(t, r, "?country=GERM")
	assert.Equal(t, 2, resp.Length)

	// Brand equality, case-insensitive.
	resp = listCars(t, r, "?brand=toyota")
	require.Equal(t, 1, resp.Length)
	assert.Equal(t, "Toyota", resp.Cars[0].Brand)

	// Color equality matches both casings.
	resp = listCars(t, r, "?color=BLACK")
	assert.Equal(t, 2, resp.Length)

	// Price range.
	resp = listCars(t, r, "?min_price=20000&max_price=36000")
	require.Equal(t, 1, resp.Length)
	assert.Equal(t, "Audi", resp.Cars[0].Brand)

	resp = listCars(t, r, "?brand=toyota&min_price=20000")
	assert.Zero(t, resp.Length)
}

func TestGetCarsSortAndPagination(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	seedCatalog(t, db, seller.ID)
	r := newCarRouter(db, auth.Identity{})

	resp := listCars(t, r, "?sort_by=price&order=asc")
	require.Equal(t, 3, resp.Length)
	assert.Equal(t, "Toyota", resp.Cars[0].Brand)
	assert.Equal(t, "BMW", resp.Cars[2].Brand)

	resp = listCars(t, r, "?sort_by=price&order=asc&page=2&limit=2")
	assert.EqualValues(t, 3, resp.Total)
	require.Equal(t, 1, resp.Length)
	assert.Equal(t, "BMW", resp.Cars[0].Brand)

	// Unknown sort column falls back instead of failing.
	resp = listCars(t, r, "?sort_by=drop_table")
	assert.Equal(t, 3, resp.Length)
}

func TestCreateCarSetsOwner(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	r := newCarRouter(db, auth.Identity{ID: seller.ID, IsSeller: true})

	w := doJSON(r, http.MethodPost, "/cars", CreateCarRequest{
		Brand: "Honda", Price: 18000, QuantityInStock: 4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var car models.Car
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &car))
	assert.Equal(t, seller.ID, car.SellerID)
	assert.Equal(t, 4, car.QuantityInStock)
}

func TestUpdateCarOwnershipChecked(t *testing.T) {
	db := testutil.OpenDB(t)
	owner := testutil.CreateUser(t, db, true)
	other := testutil.CreateUser(t, db, true)
	car := testutil.CreateCar(t, db, owner.ID, 10000, 2)

	r := newCarRouter(db, auth.Identity{ID: other.ID, IsSeller: true})
	price := 12000.0
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/cars/%d", car.ID), UpdateCarRequest{Price: &price})
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newCarRouter(db, auth.Identity{ID: owner.ID, IsSeller: true})
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/cars/%d", car.ID), UpdateCarRequest{Price: &price})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Car
	require.NoError(t, db.First(&updated, "id = ?", car.ID).Error)
	assert.Equal(t, 12000.0, updated.Price)
}

func TestDeleteCarCascades(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 5)

	testutil.CreateCartItem(t, db, buyer.ID, car, 1)
	require.NoError(t, db.Create(&models.Review{BuyerID: buyer.ID, CarID: car.ID, Star: 5}).Error)
	require.NoError(t, db.Create(&models.Favorite{BuyerID: buyer.ID, CarID: car.ID}).Error)

	r := newCarRouter(db, auth.Identity{ID: seller.ID, IsSeller: true})
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/cars/%d", car.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	db.Model(&models.CartItem{}).Where("car_id = ?", car.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Review{}).Where("car_id = ?", car.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Favorite{}).Where("car_id = ?", car.ID).Count(&count)
	assert.Zero(t, count)

	// Gone from the catalog, still resolvable for order history.
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/cars/%d", car.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	db.Unscoped().Model(&models.Car{}).Where("id = ?", car.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSoldCarsStatistics(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)

	carA := testutil.CreateCar(t, db, seller.ID, 10000, 2) // 3 sold below
	carB := testutil.CreateCar(t, db, seller.ID, 20000, 5)
	require.NoError(t, db.Model(&models.Car{}).Where("id = ?", carA.ID).Update("quantity_sold", 3).Error)
	require.NoError(t, db.Create(&models.Order{
		BuyerID: buyer.ID, CarID: carA.ID, Quantity: 3,
		TotalPrice: 30000, PaymentRef: "pay-1", OrderRef: "ref-1",
	}).Error)

	r := newCarRouter(db, auth.Identity{ID: seller.ID, IsSeller: true})
	w := doJSON(r, http.MethodGet, "/cars/statistics", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		TotalCars         int     `json:"total_cars"`
		TotalQuantity     int     `json:"total_quantity"`
		TotalSoldQuantity int     `json:"total_sold_quantity"`
		SoldRatio         float64 `json:"sold_ratio"`
		Revenue           float64 `json:"revenue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalCars)
	assert.Equal(t, 7, resp.TotalQuantity)
	assert.Equal(t, 3, resp.TotalSoldQuantity)
	assert.InDelta(t, 0.3, resp.SoldRatio, 0.001)
	assert.Equal(t, 30000.0, resp.Revenue)
	_ = carB
}
