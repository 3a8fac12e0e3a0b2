package models

import "daily/src/types"

type Review struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id,omitempty"`
	UserID    uint   `json:"user_id,omitempty"`
	Rating    int    `json:"rating,omitempty"`
	Comment   string `json:"comment,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`

	types.Timestamps
}
