package utils

import "fmt"

var belowTwenty = []string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
}

var tens = []string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

// NumberToWords spells out 0-999 in English. Anything outside that
// range yields "Number out of range".
func NumberToWords(num int) string {
	if num < 0 || num >= 1000 {
		return "Number out of range"
	}
	if num < 20 {
		return belowTwenty[num]
	}
	if num < 100 {
		s := tens[num/10]
		if num%10 != 0 {
			s += " " + belowTwenty[num%10]
		}
		return s
	}
	s := belowTwenty[num/100] + " hundred"
	if num%100 != 0 {
		s += " " + NumberToWords(num%100)
	}
	return s
}

func NumberToDaysInWords(num int) string {
	return fmt.Sprintf("%s days", NumberToWords(num))
}

const millisecondsPerDay int64 = 24 * 60 * 60 * 1000

func ConvertDaysToMilliseconds(days int) int64 {
	return int64(days) * millisecondsPerDay
}
