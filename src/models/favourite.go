package models

import "daily/src/types"

type Favourite struct {
	ID        uint `gorm:"primarykey" json:"id"`
	UserID    uint `gorm:"index:idx_favourites_user_product,unique" json:"user_id,omitempty"`
	ProductID uint `gorm:"index:idx_favourites_user_product,unique" json:"product_id,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`

	types.Timestamps
}
