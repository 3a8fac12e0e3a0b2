package utils

import (
	"daily/src/models"
	"daily/src/types"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

const dayMs = int64(86_400_000)

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name                     string
		cFrom, cTo, eFrom, eTo   int64
		want                     bool
	}{
		{"identical", 10, 20, 10, 20, true},
		{"candidate inside existing", 12, 18, 10, 20, true},
		{"candidate covers existing", 5, 25, 10, 20, true},
		{"straddles start", 5, 15, 10, 20, true},
		{"straddles end", 15, 25, 10, 20, true},
		{"touches at start", 5, 10, 10, 20, true},
		{"touches at end", 20, 30, 10, 20, true},
		{"before", 1, 9, 10, 20, false},
		{"after", 21, 30, 10, 20, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, RangesOverlap(c.cFrom, c.cTo, c.eFrom, c.eTo))
		})
	}
}

// The three-clause predicate is equivalent to the interval test
// cFrom <= eTo && cTo >= eFrom for every valid range pair.
func TestRangesOverlapEquivalence(t *testing.T) {
	for cFrom := int64(0); cFrom <= 6; cFrom++ {
		for cTo := cFrom; cTo <= 6; cTo++ {
			for eFrom := int64(0); eFrom <= 6; eFrom++ {
				for eTo := eFrom; eTo <= 6; eTo++ {
					want := cFrom <= eTo && cTo >= eFrom
					got := RangesOverlap(cFrom, cTo, eFrom, eTo)
					assert.Equal(t, want, got, "c=[%d,%d] e=[%d,%d]", cFrom, cTo, eFrom, eTo)
				}
			}
		}
	}
}

func TestDayOffset(t *testing.T) {
	now := time.UnixMilli(100 * dayMs)
	assert.Equal(t, 0, DayOffset(now.UnixMilli(), now))
	assert.Equal(t, 0, DayOffset(now.UnixMilli()-dayMs/2, now))
	assert.Equal(t, -1, DayOffset(now.UnixMilli()-dayMs, now))
	assert.Equal(t, 2, DayOffset(now.UnixMilli()+2*dayMs, now))
}

func testProduct() *models.Product {
	return &models.Product{
		ID:                        10,
		OwnerID:                   2,
		Title:                     "Pressure washer",
		RentPerDayPrice:           5,
		MinimalRentalPeriodInDays: 3,
	}
}

func assertRejection(t *testing.T, err error, code types.ErrCode) {
	t.Helper()
	var derr *types.DomainError
	if assert.True(t, errors.As(err, &derr)) {
		assert.Equal(t, code, derr.ErrCode)
	}
}

func TestValidateRentRequest(t *testing.T) {
	now := time.UnixMilli(1000 * dayMs)
	from := now.UnixMilli() + dayMs
	to := from + 4*dayMs

	base := func() *types.CreateRentRequestBody {
		return &types.CreateRentRequestBody{
			Product:        10,
			Owner:          2,
			RentFromDate:   from,
			RentToDate:     to,
			DeliveryMethod: types.DELIVERY_PICKUP,
		}
	}

	t.Run("accepts a clean request", func(t *testing.T) {
		err := ValidateRentRequest(base(), testProduct(), nil, 1, now)
		assert.NoError(t, err)
	})

	t.Run("rejects any overlap with a non-denied rent", func(t *testing.T) {
		existing := []models.Rent{
			{RentFromDate: from - 10*dayMs, RentToDate: from - 5*dayMs},
			{RentFromDate: from + dayMs, RentToDate: from + 2*dayMs},
		}
		err := ValidateRentRequest(base(), testProduct(), existing, 1, now)
		assertRejection(t, err, types.ErrDateRangeConflict)
	})

	t.Run("conflict wins over self-rental", func(t *testing.T) {
		existing := []models.Rent{{RentFromDate: from, RentToDate: to}}
		err := ValidateRentRequest(base(), testProduct(), existing, 2, now)
		assertRejection(t, err, types.ErrDateRangeConflict)
	})

	t.Run("rejects owner renting own product", func(t *testing.T) {
		err := ValidateRentRequest(base(), testProduct(), nil, 2, now)
		assertRejection(t, err, types.ErrSelfRentalNotAllowed)
	})

	t.Run("rejects missing product", func(t *testing.T) {
		err := ValidateRentRequest(base(), nil, nil, 1, now)
		assertRejection(t, err, types.ErrProductNotFound)
	})

	t.Run("rejects below-minimum duration with words", func(t *testing.T) {
		params := base()
		params.RentToDate = params.RentFromDate + 2*dayMs
		err := ValidateRentRequest(params, testProduct(), nil, 1, now)
		assertRejection(t, err, types.ErrBelowMinimumDuration)
		assert.EqualError(t, err, "To rent this product the rent date ranges should be more than three days")
	})

	t.Run("accepts exactly the minimum duration", func(t *testing.T) {
		params := base()
		params.RentToDate = params.RentFromDate + 3*dayMs
		err := ValidateRentRequest(params, testProduct(), nil, 1, now)
		assert.NoError(t, err)
	})

	t.Run("rejects owner mismatch", func(t *testing.T) {
		params := base()
		params.Owner = 99
		err := ValidateRentRequest(params, testProduct(), nil, 1, now)
		assertRejection(t, err, types.ErrOwnerMismatch)
	})

	t.Run("rejects past dates", func(t *testing.T) {
		params := base()
		params.RentFromDate = now.UnixMilli() - 5*dayMs
		params.RentToDate = now.UnixMilli() - dayMs
		err := ValidateRentRequest(params, testProduct(), nil, 1, now)
		assertRejection(t, err, types.ErrPastDateNotAllowed)
	})

	t.Run("accepts a range starting today", func(t *testing.T) {
		params := base()
		params.RentFromDate = now.UnixMilli()
		params.RentToDate = now.UnixMilli() + 4*dayMs
		err := ValidateRentRequest(params, testProduct(), nil, 1, now)
		assert.NoError(t, err)
	})
}

func TestCreateRentPersistsAndHydrates(t *testing.T) {
	mock := newMockDB(t)

	from := time.Now().UnixMilli() + 2*dayMs
	to := from + 3*dayMs

	mock.ExpectBegin()
	// product row is locked while the conflict scan runs
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE .*FOR UPDATE`).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "owner_id", "rent_per_day_price", "cleaning_price", "minimal_rental_period_in_days"}).
			AddRow(2, 3, 70.0, 20.0, 2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "rents" WHERE product_id = $1 AND status <> $2`)).
		WithArgs(uint(2), "DENIED").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "rents"`)).
		WithArgs(
			uint(2),        // product_id
			uint(3),        // owner_id
			uint(7),        // customer_id
			from,           // rent_from_date
			to,             // rent_to_date
			230.0,          // 3 days x 70 + 20 cleaning
			sqlmock.AnyArg(), // price_breakdown
			sqlmock.AnyArg(), // location
			"REQUESTED",
			"UNPAID",
			"POSTAGE",
			"handle with care",
			sqlmock.AnyArg(), // checkout_session_id
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "rents" WHERE id = $1`)).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "product_id", "owner_id", "customer_id", "rent_from_date", "rent_to_date", "price", "status", "payment_status"}).
			AddRow(11, 2, 3, 7, from, to, 230.0, "REQUESTED", "UNPAID"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "renter"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WithArgs(uint(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "owner"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WithArgs(uint(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title"}).AddRow(2, 3, "Road bike"))

	rent, err := CreateRent(&types.CreateRentRequestBody{
		Product:        2,
		Owner:          3,
		RentFromDate:   from,
		RentToDate:     to,
		DeliveryMethod: types.DELIVERY_POSTAGE,
		NotesForOwner:  "handle with care",
	}, 7)
	assert.NoError(t, err)
	assert.Equal(t, types.RENT_REQUESTED, rent.Status)
	assert.Equal(t, types.PAYMENT_UNPAID, rent.PaymentStatus)
	assert.Equal(t, 230.0, rent.Price)
	if assert.NotNil(t, rent.Customer) {
		assert.Equal(t, uint(7), rent.Customer.ID)
	}
	if assert.NotNil(t, rent.Owner) {
		assert.Equal(t, uint(3), rent.Owner.ID)
	}
	if assert.NotNil(t, rent.Product) {
		assert.Equal(t, "Road bike", rent.Product.Title)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
