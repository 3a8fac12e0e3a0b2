package models

import "daily/src/types"

type Notification struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	SenderID     uint               `json:"sender_id,omitempty"`
	ReceiverID   uint               `gorm:"index" json:"receiver_id,omitempty"`
	ActivityName types.ActivityName `json:"activity_name,omitempty"`
	ActivityType types.ActivityType `json:"activity_type,omitempty"`
	RentID       *uint              `json:"rent_id,omitempty"`
	ProductID    *uint              `json:"product_id,omitempty"`
	Payload      *types.JSONB       `gorm:"type:jsonb" json:"payload,omitempty"`
	IsRead       bool               `gorm:"default:false" json:"is_read"`

	Sender   *User    `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User    `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Rent     *Rent    `gorm:"foreignKey:RentID" json:"rent,omitempty"`
	Product  *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	types.Timestamps
}
