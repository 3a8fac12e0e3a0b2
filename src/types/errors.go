package types

import "net/http"

type ErrCode string

const (
	ErrDateRangeConflict    ErrCode = "DATE_RANGE_CONFLICT"
	ErrSelfRentalNotAllowed ErrCode = "SELF_RENTAL_NOT_ALLOWED"
	ErrProductNotFound      ErrCode = "PRODUCT_NOT_FOUND"
	ErrBelowMinimumDuration ErrCode = "BELOW_MINIMUM_DURATION"
	ErrOwnerMismatch        ErrCode = "OWNER_MISMATCH"
	ErrPastDateNotAllowed   ErrCode = "PAST_DATE_NOT_ALLOWED"
	ErrRecordNotFound       ErrCode = "RECORD_NOT_FOUND"
	ErrForbidden            ErrCode = "FORBIDDEN"
)

// DomainError is a rejection the API maps to a 4xx response. Anything
// else bubbling out of the rent pipeline is treated as a 5xx.
type DomainError struct {
	ErrCode ErrCode
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Code() ErrCode {
	return e.ErrCode
}

// Status maps the rejection kind to its HTTP status code. Booking
// admission rejections are validation failures and stay 400; 403 is
// reserved for acting on somebody else's records.
func (e *DomainError) Status() int {
	switch e.ErrCode {
	case ErrProductNotFound, ErrRecordNotFound:
		return http.StatusNotFound
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func NewDomainError(code ErrCode, message string) *DomainError {
	return &DomainError{ErrCode: code, Message: message}
}
