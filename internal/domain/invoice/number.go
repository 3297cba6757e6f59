package invoice

import (
	"fmt"
	"strconv"
	"strings"
)

const numberPrefix = "INV"

// FormatNumber renders INV-{year}-{seq}, seq zero-padded to four digits.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", numberPrefix, year, seq)
}

// YearPrefix is the LIKE prefix shared by every number of year.
func YearPrefix(year int) string {
	return fmt.Sprintf("%s-%d-", numberPrefix, year)
}

func ParseNumber(s string) (year, seq int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || parts[0] != numberPrefix {
		return 0, 0, false
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return 0, 0, false
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil || seq < 0 {
		return 0, 0, false
	}
	return year, seq, true
}

// NextNumber follows highest within year. An empty or foreign highest
// starts the year at 0001.
func NextNumber(year int, highest string) string {
	y, seq, ok := ParseNumber(highest)
	if !ok || y != year {
		return FormatNumber(year, 1)
	}
	return FormatNumber(year, seq+1)
}
