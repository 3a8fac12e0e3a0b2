package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type Metadata map[string]any

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UID      string `json:"uid"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type Environment string

const (
	Production Environment = "production"
	Test       Environment = "test"
	Local      Environment = "local"
)

type AvailabilityStatus string

const (
	PRODUCT_AVAILABLE   AvailabilityStatus = "AVAILABLE"
	PRODUCT_BOOKED      AvailabilityStatus = "BOOKED"
	PRODUCT_UNAVAILABLE AvailabilityStatus = "UNAVAILABLE"
)

type RentStatus string

const (
	RENT_REQUESTED RentStatus = "REQUESTED"
	RENT_APPROVED  RentStatus = "APPROVED"
	RENT_DENIED    RentStatus = "DENIED"
)

type PaymentStatus string

const (
	PAYMENT_UNPAID   PaymentStatus = "UNPAID"
	PAYMENT_PAID     PaymentStatus = "PAID"
	PAYMENT_REFUNDED PaymentStatus = "REFUNDED"
)

type DeliveryMethod string

const (
	DELIVERY_POSTAGE DeliveryMethod = "POSTAGE"
	DELIVERY_PICKUP  DeliveryMethod = "PICKUP"
)

type ActivityName string

const (
	ACTIVITY_PRODUCT      ActivityName = "PRODUCT"
	ACTIVITY_RENT_REQUEST ActivityName = "RENT_REQUEST"
	ACTIVITY_THREAD       ActivityName = "THREAD"
	ACTIVITY_PAYMENT      ActivityName = "PAYMENT"
)

type ActivityType string

const (
	ACTIVITY_CREATED  ActivityType = "CREATED"
	ACTIVITY_SEND     ActivityType = "SEND"
	ACTIVITY_APPROVED ActivityType = "APPROVED"
	ACTIVITY_DENIED   ActivityType = "DENIED"
	ACTIVITY_PAID     ActivityType = "PAID"
)

type CreateProductRequestBody struct {
	Title                     string              `json:"title" binding:"required"`
	Description               string              `json:"description,omitempty"`
	RetailPrice               float64             `json:"retail_price,omitempty"`
	RentPerDayPrice           float64             `json:"rent_per_day_price" binding:"required,gt=0"`
	MinimalRentalPeriodInDays int                 `json:"minimal_rental_period_in_days" binding:"required,min=1"`
	CleaningPrice             float64             `json:"cleaning_price,omitempty"`
	Postage                   float64             `json:"postage,omitempty"`
	Status                    *AvailabilityStatus `json:"status,omitempty" binding:"omitempty,oneof=AVAILABLE BOOKED UNAVAILABLE"`
}

type UpdateProductRequestBody struct {
	Title                     *string             `json:"title,omitempty"`
	Description               *string             `json:"description,omitempty"`
	RetailPrice               *float64            `json:"retail_price,omitempty"`
	RentPerDayPrice           *float64            `json:"rent_per_day_price,omitempty" binding:"omitempty,gt=0"`
	MinimalRentalPeriodInDays *int                `json:"minimal_rental_period_in_days,omitempty" binding:"omitempty,min=1"`
	CleaningPrice             *float64            `json:"cleaning_price,omitempty"`
	Postage                   *float64            `json:"postage,omitempty"`
	Status                    *AvailabilityStatus `json:"status,omitempty" binding:"omitempty,oneof=AVAILABLE BOOKED UNAVAILABLE"`
}

// CreateRentRequestBody carries the booking request. Dates are epoch
// milliseconds, both endpoints inclusive.
type CreateRentRequestBody struct {
	Product        uint           `json:"product" binding:"required"`
	Owner          uint           `json:"owner" binding:"required"`
	Location       *JSONB         `json:"location,omitempty"`
	RentFromDate   int64          `json:"rent_from_date" binding:"required,epochdate"`
	RentToDate     int64          `json:"rent_to_date" binding:"required,epochdate,gtefield=RentFromDate"`
	DeliveryMethod DeliveryMethod `json:"delivery_method" binding:"required,oneof=POSTAGE PICKUP"`
	NotesForOwner  string         `json:"notes_for_owner,omitempty"`
}

type UpdateRentRequestBody struct {
	Status        *RentStatus    `json:"status,omitempty" binding:"omitempty,oneof=REQUESTED APPROVED DENIED"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty" binding:"omitempty,oneof=UNPAID PAID REFUNDED"`
	NotesForOwner *string        `json:"notes_for_owner,omitempty"`
}

type CreateReviewRequestBody struct {
	Product uint   `json:"product" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

type UpdateReviewRequestBody struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

type CreateFavouriteRequestBody struct {
	Product uint `json:"product" binding:"required"`
}

type CreateThreadRequestBody struct {
	UserTwo uint   `json:"user_two" binding:"required"`
	Product *uint  `json:"product,omitempty"`
	Message string `json:"message" binding:"required"`
}

type CreateChatRequestBody struct {
	Thread   uint   `json:"thread" binding:"required"`
	Receiver uint   `json:"receiver" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// SearchQueryParams are the list-endpoint knobs shared by the
// collection routes. Sort is a JSON object mapping field name to 1 or -1.
type SearchQueryParams struct {
	Limit      int    `form:"limit,default=10"`
	Skip       int    `form:"skip,default=0"`
	Sort       string `form:"sort"`
	Pagination bool   `form:"pagination,default=true"`
	GetAll     bool   `form:"get_all_record"`
}

type ProductQueryFilters struct {
	Owner  uint               `form:"owner"`
	Status AvailabilityStatus `form:"status" binding:"omitempty,oneof=AVAILABLE BOOKED UNAVAILABLE"`
	Search string             `form:"search"`
}

type RentQueryFilters struct {
	Product  uint          `form:"product"`
	Owner    uint          `form:"owner"`
	Customer uint          `form:"customer"`
	Status   RentStatus    `form:"status" binding:"omitempty,oneof=REQUESTED APPROVED DENIED"`
	Payment  PaymentStatus `form:"payment_status" binding:"omitempty,oneof=UNPAID PAID REFUNDED"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Limit int   `json:"limit"`
	Skip  int   `json:"skip"`
}
