package models

import (
	"time"

	"gorm.io/gorm"
)

// Car is a seller's listing. QuantityInStock never goes negative and
// QuantitySold only grows; both are mutated exclusively by the order workflow.
type Car struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Brand           string         `gorm:"not null" json:"brand"`
	Color           string         `json:"color"`
	Country         string         `json:"country"`
	Description     string         `json:"description"`
	Price           float64        `gorm:"not null" json:"price"`
	QuantityInStock int            `gorm:"not null;default:0" json:"quantity_in_stock"`
	QuantitySold    int            `gorm:"not null;default:0" json:"quantity_sold"`
	CoverImage      string         `json:"cover_image"`
	SellerID        string         `gorm:"not null;index" json:"seller_id"`
	Seller          User           `gorm:"foreignKey:SellerID" json:"seller"`
	Reviews         []Review       `gorm:"foreignKey:CarID" json:"reviews,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
