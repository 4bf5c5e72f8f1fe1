package util

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrNotFinite = errors.New("value is not a finite number")

// ParseDecimal parses a locale-neutral decimal: dot separator, optional sign
// and exponent, surrounding whitespace ignored. NaN and infinities are rejected.
func ParseDecimal(input string) (float64, error) {
	token := strings.TrimSpace(strings.ReplaceAll(input, "\u00a0", " "))
	if token == "" {
		return 0, strconv.ErrSyntax
	}
	parsed, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, err
	}
	if !IsFinite(parsed) {
		return 0, ErrNotFinite
	}
	return parsed, nil
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FormatDecimal renders v with the shortest representation that round-trips.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
