package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BuyerID   string    `gorm:"not null;uniqueIndex:idx_review_buyer_car" json:"buyer_id"`
	Buyer     User      `gorm:"foreignKey:BuyerID" json:"-"`
	CarID     uint      `gorm:"not null;uniqueIndex:idx_review_buyer_car" json:"car_id"`
	Star      int       `gorm:"not null" json:"star"`
	Desc      string    `json:"desc"`
	CreatedAt time.Time `json:"created_at"`
}
