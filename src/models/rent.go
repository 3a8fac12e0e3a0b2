package models

import "daily/src/types"

// Rent is a booking of a product for a date range. RentFromDate and
// RentToDate are epoch milliseconds, both endpoints inclusive.
type Rent struct {
	ID             uint                 `gorm:"primarykey" json:"id"`
	ProductID      uint                 `gorm:"index" json:"product_id,omitempty"`
	OwnerID        uint                 `json:"owner_id,omitempty"`
	CustomerID     uint                 `json:"customer_id,omitempty"`
	RentFromDate   int64                `json:"rent_from_date,omitempty"`
	RentToDate     int64                `json:"rent_to_date,omitempty"`
	Price          float64              `json:"price,omitempty"`
	PriceBreakdown *types.JSONB         `gorm:"type:jsonb" json:"price_breakdown,omitempty"`
	Location       *types.JSONB         `gorm:"type:jsonb" json:"location,omitempty"`
	Status         types.RentStatus     `gorm:"default:REQUESTED" json:"status,omitempty"`
	PaymentStatus  types.PaymentStatus  `gorm:"default:UNPAID" json:"payment_status,omitempty"`
	DeliveryMethod types.DeliveryMethod `json:"delivery_method,omitempty"`
	NotesForOwner  string               `json:"notes_for_owner,omitempty"`

	CheckoutSessionId *string `json:"-"`

	Product  *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Owner    *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Customer *User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	types.Timestamps
}
