package models

import "time"

// Order is an immutable record of a completed purchase. TotalPrice snapshots
// the car price at confirmation time and is never recomputed.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BuyerID    string    `gorm:"not null;index" json:"buyer_id"`
	Buyer      User      `gorm:"foreignKey:BuyerID" json:"-"`
	CarID      uint      `gorm:"not null;index" json:"car_id"`
	Car        Car       `gorm:"foreignKey:CarID" json:"car,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
	PaymentRef string    `gorm:"not null" json:"payment_ref"`
	OrderRef   string    `gorm:"uniqueIndex" json:"order_ref"`
	CreatedAt  time.Time `json:"created_at"`
}
