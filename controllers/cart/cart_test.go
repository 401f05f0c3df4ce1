package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carmarket-dev/carmarket-api/auth"
	"github.com/carmarket-dev/carmarket-api/models"
	"github.com/carmarket-dev/carmarket-api/testutil"
)

func newCartRouter(db *gorm.DB, identity auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { auth.SetIdentity(c, identity) })
	r.GET("/carts", GetCartItems(db))
	r.POST("/carts", AddCartItem(db))
	r.PUT("/carts/:id", UpdateCartItem(db))
	r.DELETE("/carts/:id", RemoveCartItem(db))
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

func TestAddCartItem(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 15000, 3)
	r := newCartRouter(db, auth.Identity{ID: buyer.ID})

	w := doJSON(r, http.MethodPost, "/carts", AddCartItemRequest{CarID: car.ID, Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.CartItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, 30000.0, item.TotalPrice)
	assert.Equal(t, buyer.ID, item.BuyerID)
}

func TestAddCartItemDuplicateIsConflict(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 15000, 3)
	r := newCartRouter(db, auth.Identity{ID: buyer.ID})

	w := doJSON(r, http.MethodPost, "/carts", AddCartItemRequest{CarID: car.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/carts", AddCartItemRequest{CarID: car.ID, Quantity: 2})
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAddCartItemConcurrentDuplicatesSingleLine(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 15000, 3)
	r := newCartRouter(db, auth.Identity{ID: buyer.ID})

	const attempts = 4
	codes := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = doJSON(r, http.MethodPost, "/carts", AddCartItemRequest{CarID: car.ID, Quantity: 1}).Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created, "exactly one add may win")
	assert.Equal(t, attempts-1, conflicts, "the losers must get a conflict, not a server error")

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestAddCartItemUnknownCarIsNotFound(t *testing.T) {
	db := testutil.OpenDB(t)
	buyer := testutil.CreateUser(t, db, false)
	r := newCartRouter(db, auth.Identity{ID: buyer.ID})

	w := doJSON(r, http.MethodPost, "/carts", AddCartItemRequest{CarID: 999, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateCartItemRecomputesFromCurrentPrice(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 5)
	line := testutil.CreateCartItem(t, db, buyer.ID, car, 1)
	r := newCartRouter(db, auth.Identity{ID: buyer.ID})

	// Seller reprices; the update must use the new price, not the add-time one.
	require.NoError(t, db.Model(&models.Car{}).Where("id = ?", car.ID).Update("price", 12000).Error)

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/carts/%d", line.ID), UpdateCartItemRequest{Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.CartItem
	require.NoError(t, db.First(&updated, "id = ?", line.ID).Error)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, 24000.0, updated.TotalPrice)
}

func TestUpdateForeignCartItemIsNotFound(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyerA := testutil.CreateUser(t, db, false)
	buyerB := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 5)
	line := testutil.CreateCartItem(t, db, buyerA.ID, car, 1)

	r := newCartRouter(db, auth.Identity{ID: buyerB.ID})
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/carts/%d", line.ID), UpdateCartItemRequest{Quantity: 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveCartItem(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 5)
	line := testutil.CreateCartItem(t, db, buyer.ID, car, 1)
	r := newCartRouter(db, auth.Identity{ID: buyer.ID})

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/carts/%d", line.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/carts/%d", line.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "second delete must be not found")
}

func TestGetCartItemsEmbedsCar(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 5)
	testutil.CreateCartItem(t, db, buyer.ID, car, 2)
	r := newCartRouter(db, auth.Identity{ID: buyer.ID})

	w := doJSON(r, http.MethodGet, "/carts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Length int               `json:"length"`
		Items  []models.CartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Length)
	assert.Equal(t, car.ID, resp.Items[0].Car.ID)
	assert.Equal(t, "Toyota", resp.Items[0].Car.Brand)
}
