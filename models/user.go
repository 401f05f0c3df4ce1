package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Whatsapp  string    `json:"whatsapp"`
	IsSeller  bool      `gorm:"default:false" json:"is_seller"`
	Cars      []Car     `gorm:"foreignKey:SellerID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
