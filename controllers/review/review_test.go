package reviewControllers

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

func newReviewRouter(db *gorm.DB, identity auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { auth.SetIdentity(c, identity) })
	r.POST("/reviews/:carID", AddReview(db))
	r.GET("/reviews/:carID", GetCarReviews(db))
	return r
}

func postReview(r *gin.Engine, carID uint, req AddReviewRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/reviews/%d", carID), bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httpReq)
	return w
}

func TestAddReview(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 1)
	r := newReviewRouter(db, auth.Identity{ID: buyer.ID})

	w := postReview(r, car.ID, AddReviewRequest{Star: 4, Desc: "Solid car"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var review models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &review))
	assert.Equal(t, 4, review.Star)
	assert.Equal(t, buyer.ID, review.BuyerID)
}

func TestAddReviewDuplicateIsConflict(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 1)
	r := newReviewRouter(db, auth.Identity{ID: buyer.ID})

	w := postReview(r, car.ID, AddReviewRequest{Star: 4, Desc: "Solid car"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postReview(r, car.ID, AddReviewRequest{Star: 1, Desc: "Changed my mind"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The first review is unaffected.
	var review models.Review
	require.NoError(t, db.First(&review, "buyer_id = ? AND car_id = ?", buyer.ID, car.ID).Error)
	assert.Equal(t, 4, review.Star)
	assert.Equal(t, "Solid car", review.Desc)
}

func TestAddReviewValidatesStar(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 1)
	r := newReviewRouter(db, auth.Identity{ID: buyer.ID})

	w := postReview(r, car.ID, AddReviewRequest{Star: 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postReview(r, car.ID, AddReviewRequest{Star: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddReviewUnknownCarIsNotFound(t *testing.T) {
	db := testutil.OpenDB(t)
	buyer := testutil.CreateUser(t, db, false)
	r := newReviewRouter(db, auth.Identity{ID: buyer.ID})

	w := postReview(r, 999, AddReviewRequest{Star: 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCarReviewsIncludesUsername(t *testing.T) {
	db := testutil.OpenDB(t)
	seller := testutil.CreateUser(t, db, true)
	buyer := testutil.CreateUser(t, db, false)
	car := testutil.CreateCar(t, db, seller.ID, 10000, 1)
	require.NoError(t, db.Create(&models.Review{BuyerID: buyer.ID, CarID: car.ID, Star: 5, Desc: "Great"}).Error)

	r := newReviewRouter(db, auth.Identity{})
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/reviews/%d", car.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Length  int `json:"length"`
		Reviews []struct {
			Star  int `json:"star"`
			Buyer struct {
				Username string `json:"username"`
			} `json:"buyer"`
		} `json:"reviews"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Length)
	assert.Equal(t, 5, resp.Reviews[0].Star)
	assert.Equal(t, buyer.Username, resp.Reviews[0].Buyer.Username)
}
