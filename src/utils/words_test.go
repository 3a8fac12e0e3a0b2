package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToWords(t *testing.T) {
	cases := []struct {
		num  int
		want string
	}{
		{0, "zero"},
		{1, "one"},
		{13, "thirteen"},
		{19, "nineteen"},
		{20, "twenty"},
		{21, "twenty one"},
		{45, "forty five"},
		{90, "ninety"},
		{100, "one hundred"},
		{101, "one hundred one"},
		{110, "one hundred ten"},
		{345, "three hundred forty five"},
		{999, "nine hundred ninety nine"},
		{1000, "Number out of range"},
		{1500, "Number out of range"},
		{-1, "Number out of range"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NumberToWords(c.num), "NumberToWords(%d)", c.num)
	}
}

func TestNumberToDaysInWords(t *testing.T) {
	assert.Equal(t, "three days", NumberToDaysInWords(3))
	assert.Equal(t, "twenty one days", NumberToDaysInWords(21))
	assert.Equal(t, "Number out of range days", NumberToDaysInWords(1000))
}

func TestConvertDaysToMilliseconds(t *testing.T) {
	assert.Equal(t, int64(86_400_000), ConvertDaysToMilliseconds(1))
	assert.Equal(t, int64(259_200_000), ConvertDaysToMilliseconds(3))
	assert.Equal(t, int64(0), ConvertDaysToMilliseconds(0))
}
