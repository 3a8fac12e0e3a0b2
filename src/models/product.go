package models

import "daily/src/types"

type Product struct {
	ID                        uint                     `gorm:"primarykey" json:"id"`
	OwnerID                   uint                     `json:"owner_id,omitempty"`
	Title                     string                   `json:"title,omitempty"`
	Slug                      string                   `gorm:"index" json:"slug,omitempty"`
	Description               string                   `json:"description,omitempty"`
	Status                    types.AvailabilityStatus `gorm:"default:AVAILABLE" json:"status,omitempty"`
	RetailPrice               float64                  `json:"retail_price,omitempty"`
	RentPerDayPrice           float64                  `json:"rent_per_day_price,omitempty"`
	MinimalRentalPeriodInDays int                      `gorm:"default:1" json:"minimal_rental_period_in_days,omitempty"`
	CleaningPrice             float64                  `json:"cleaning_price,omitempty"`
	Postage                   float64                  `json:"postage,omitempty"`
	ViewCount                 uint                     `json:"view_count"`
	RatingsAverage            float64                  `json:"ratings_average"`
	RatingsCount              uint                     `json:"ratings_count"`

	Owner   *User    `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Rents   []Rent   `gorm:"foreignKey:product_id" json:"rents,omitempty"`
	Reviews []Review `gorm:"foreignKey:product_id" json:"reviews,omitempty"`

	types.Timestamps
}
