package types

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorStatus(t *testing.T) {
	cases := []struct {
		code ErrCode
		want int
	}{
		{ErrDateRangeConflict, http.StatusBadRequest},
		{ErrSelfRentalNotAllowed, http.StatusBadRequest},
		{ErrBelowMinimumDuration, http.StatusBadRequest},
		{ErrOwnerMismatch, http.StatusBadRequest},
		{ErrPastDateNotAllowed, http.StatusBadRequest},
		{ErrProductNotFound, http.StatusNotFound},
		{ErrRecordNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NewDomainError(c.code, "rejected").Status(), string(c.code))
	}
}

func TestDomainErrorCarriesCodeAndMessage(t *testing.T) {
	err := NewDomainError(ErrDateRangeConflict, "already rented")
	assert.Equal(t, ErrDateRangeConflict, err.Code())
	assert.Equal(t, "already rented", err.Error())
}
