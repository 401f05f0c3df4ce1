package testutil

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/carmarket-dev/carmarket-api/models"
)

// OpenDB returns an isolated sqlite-backed gorm handle with the full schema.
// A single connection keeps concurrent test transactions serialized the way
// sqlite expects.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=10000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.CartItem{},
		&models.Order{},
		&models.Review{},
		&models.Favorite{},
		&models.PasswordReset{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// CreateUser inserts a user and returns it.
func CreateUser(t *testing.T, db *gorm.DB, isSeller bool) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.NewString(),
		Username: "user-" + uuid.NewString()[:8],
		Email:    uuid.NewString()[:8] + "@example.com",
		Password: "not-a-real-hash",
		IsSeller: isSeller,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateCar inserts a listing for the given seller.
func CreateCar(t *testing.T, db *gorm.DB, sellerID string, price float64, stock int) models.Car {
	t.Helper()

	car := models.Car{
		Brand:           "Toyota",
		Color:           "Red",
		Country:         "Japan",
		Price:           price,
		QuantityInStock: stock,
		SellerID:        sellerID,
	}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("create car: %v", err)
	}
	return car
}

// CreateCartItem inserts a cart line for the buyer.
func CreateCartItem(t *testing.T, db *gorm.DB, buyerID string, car models.Car, quantity int) models.CartItem {
	t.Helper()

	item := models.CartItem{
		BuyerID:    buyerID,
		CarID:      car.ID,
		Quantity:   quantity,
		TotalPrice: car.Price * float64(quantity),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item: %v", err)
	}
	return item
}
