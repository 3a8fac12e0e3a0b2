package models

import "daily/src/types"

// Thread is a one-to-one conversation between two users, optionally
// anchored to a product listing. The read flags track each side
// separately so unread counts stay cheap to compute.
type Thread struct {
	ID            uint  `gorm:"primarykey" json:"id"`
	UserOneID     uint  `gorm:"index" json:"user_one_id,omitempty"`
	UserTwoID     uint  `gorm:"index" json:"user_two_id,omitempty"`
	ProductID     *uint `json:"product_id,omitempty"`
	IsUserOneRead bool  `gorm:"default:true" json:"is_user_one_read"`
	IsUserTwoRead bool  `gorm:"default:false" json:"is_user_two_read"`

	UserOne *User    `gorm:"foreignKey:UserOneID" json:"user_one,omitempty"`
	UserTwo *User    `gorm:"foreignKey:UserTwoID" json:"user_two,omitempty"`
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Chats   []Chat   `gorm:"foreignKey:thread_id" json:"chats,omitempty"`

	types.Timestamps
}
