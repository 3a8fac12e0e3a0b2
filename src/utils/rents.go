package utils

import (
	"context"
	"daily/src/db"
	"daily/src/lib"
	"daily/src/models"
	"daily/src/models/scopes"
	"daily/src/types"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RangesOverlap reports whether the candidate range [cFrom, cTo] shares
// at least one instant with the existing range [eFrom, eTo]. Endpoints
// are inclusive on both sides.
func RangesOverlap(cFrom, cTo, eFrom, eTo int64) bool {
	return (cFrom >= eFrom && cTo <= eTo) ||
		(cFrom <= eFrom && cTo >= eFrom) ||
		(cFrom <= eTo && cTo >= eTo)
}

// DayOffset is the whole-day distance from now to the given epoch-ms
// date, truncated toward zero. A date later today comes out as 0.
func DayOffset(dateMs int64, now time.Time) int {
	return int((dateMs - now.UnixMilli()) / millisecondsPerDay)
}

// ValidateRentRequest runs the booking admission checks in order:
// date-range conflict, self-rental, product existence, minimum
// duration, owner match, past dates. The first failing check wins.
// product is nil when no such listing exists; existing holds every
// rent of the product that is not denied.
func ValidateRentRequest(params *types.CreateRentRequestBody, product *models.Product, existing []models.Rent, customerId uint, now time.Time) error {
	for _, rent := range existing {
		if RangesOverlap(params.RentFromDate, params.RentToDate, rent.RentFromDate, rent.RentToDate) {
			return types.NewDomainError(
				types.ErrDateRangeConflict,
				"You cannot rent this product since this product has already been rented between the selected time",
			)
		}
	}
	if params.Owner == customerId {
		return types.NewDomainError(
			types.ErrSelfRentalNotAllowed,
			"Product owner can't be renting his own product",
		)
	}
	if product == nil {
		return types.NewDomainError(
			types.ErrProductNotFound,
			"Could not find any product.",
		)
	}
	if params.RentToDate-params.RentFromDate < ConvertDaysToMilliseconds(product.MinimalRentalPeriodInDays) {
		return types.NewDomainError(
			types.ErrBelowMinimumDuration,
			fmt.Sprintf("To rent this product the rent date ranges should be more than %s", NumberToDaysInWords(product.MinimalRentalPeriodInDays)),
		)
	}
	if product.OwnerID != params.Owner {
		return types.NewDomainError(
			types.ErrOwnerMismatch,
			"The owner you've selected is not the owner of this product",
		)
	}
	if DayOffset(params.RentFromDate, now) < 0 || DayOffset(params.RentToDate, now) < 0 {
		return types.NewDomainError(
			types.ErrPastDateNotAllowed,
			"Rental dates must be after the current date",
		)
	}
	return nil
}

// CreateRent admits a booking request and persists it. The product row
// is locked for the duration of the transaction so two overlapping
// requests cannot both pass the conflict scan.
func CreateRent(params *types.CreateRentRequestBody, customerId uint) (*models.Rent, error) {
	db := db.GetDb()
	var rentId uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		var found *models.Product
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Product{ID: params.Product}).
			First(&product).
			Error
		if err == nil {
			found = &product
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var existing []models.Rent
		if err := tx.
			Model(&models.Rent{}).
			Scopes(scopes.WithProduct(params.Product), scopes.NotDenied).
			Find(&existing).
			Error; err != nil {
			return err
		}

		if err := ValidateRentRequest(params, found, existing, customerId, time.Now()); err != nil {
			return err
		}

		days := int((params.RentToDate - params.RentFromDate) / millisecondsPerDay)
		price := float64(days)*found.RentPerDayPrice + found.CleaningPrice
		rent := models.Rent{
			ProductID:      params.Product,
			OwnerID:        params.Owner,
			CustomerID:     customerId,
			RentFromDate:   params.RentFromDate,
			RentToDate:     params.RentToDate,
			Price:          price,
			PriceBreakdown: &types.JSONB{
				"days":              days,
				"rent_per_day":      found.RentPerDayPrice,
				"cleaning_price":    found.CleaningPrice,
				"rent_price_total":  float64(days) * found.RentPerDayPrice,
			},
			Location:       params.Location,
			Status:         types.RENT_REQUESTED,
			PaymentStatus:  types.PAYMENT_UNPAID,
			DeliveryMethod: params.DeliveryMethod,
			NotesForOwner:  params.NotesForOwner,
		}
		if err := tx.Create(&rent).Error; err != nil {
			return err
		}
		rentId = rent.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return GetRent(rentId)
}

// GetRent re-reads a rent with its customer, owner and product
// attached. Response hydration is this one query, nothing implicit.
func GetRent(id uint) (*models.Rent, error) {
	db := db.GetDb()
	var rent models.Rent
	err := db.
		Model(&models.Rent{}).
		Scopes(scopes.WithID(id)).
		Preload("Customer").
		Preload("Owner").
		Preload("Product").
		First(&rent).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewDomainError(types.ErrRecordNotFound, "Could not find record.")
		}
		return nil, err
	}
	return &rent, nil
}

// CreateRentCheckout opens a hosted Stripe checkout session for an
// approved rent and remembers the session id on the record.
func CreateRentCheckout(rent *models.Rent) (string, error) {
	sc := lib.GetStripeClient()
	successUrl := fmt.Sprintf("%s/checkout/callback/success", os.Getenv("APP_HOST"))
	name := fmt.Sprintf("Rent #%d", rent.ID)
	if rent.Product != nil {
		name = rent.Product.Title
	}
	createParams := stripe.CheckoutSessionCreateParams{
		SuccessURL: stripe.String(successUrl),
		UIMode:     stripe.String("hosted"),
		Mode:       stripe.String("payment"),
		LineItems: []*stripe.CheckoutSessionCreateLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(int64(rent.Price * 100)),
					ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"rentId": fmt.Sprint(rent.ID),
		},
	}
	checkoutSession, err := sc.V1CheckoutSessions.Create(context.Background(), &createParams)
	if err != nil {
		return "", err
	}
	log.Printf("CheckoutSessionID: %s\n", checkoutSession.ID)

	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.Rent{}).
			Scopes(scopes.WithID(rent.ID)).
			Update("checkout_session_id", checkoutSession.ID).
			Error
	})
	if err != nil {
		return "", err
	}
	return checkoutSession.URL, nil
}

// ExpireStaleRents denies every rent still waiting for approval whose
// start date has already passed. Runs from the scheduler.
func ExpireStaleRents() {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.Rent{}).
			Scopes(scopes.WithRequestedStatus).
			Where("rent_from_date < ?", time.Now().UnixMilli()).
			Update("status", types.RENT_DENIED).
			Error
	})
	if err != nil {
		log.Printf("Error while processing stale rents: %s\n", err.Error())
	}
}
