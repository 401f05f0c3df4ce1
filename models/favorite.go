package models

import "time"

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BuyerID   string    `gorm:"not null;index" json:"buyer_id"`
	CarID     uint      `gorm:"not null" json:"car_id"`
	Car       Car       `gorm:"foreignKey:CarID" json:"car,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
