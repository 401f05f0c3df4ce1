package models

import "time"

// CartItem is a buyer's pending selection of one car and a quantity.
// A buyer holds at most one line per car.
type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BuyerID    string    `gorm:"not null;uniqueIndex:idx_cart_buyer_car" json:"buyer_id"`
	CarID      uint      `gorm:"not null;uniqueIndex:idx_cart_buyer_car" json:"car_id"`
	Car        Car       `gorm:"foreignKey:CarID" json:"car,omitempty"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	TotalPrice float64   `gorm:"not null" json:"total_price"`
	AddedAt    time.Time `json:"added_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
