package models

import (
	"daily/src/types"
	"time"
)

type User struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	Name          string  `json:"name,omitempty"`
	Email         string  `gorm:"uniqueIndex" json:"email,omitempty"`
	Role          string  `json:"role,omitempty"`
	UID           string  `json:"uid,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	EmailVerified bool    `json:"email_verified,omitempty"`
	VerifiedAt    time.Time `json:"verified_at,omitempty"`

	Products   []Product   `gorm:"foreignKey:owner_id" json:"products,omitempty"`
	Rents      []Rent      `gorm:"foreignKey:customer_id" json:"rents,omitempty"`
	Favourites []Favourite `gorm:"foreignKey:user_id" json:"favourites,omitempty"`

	types.Timestamps
}
