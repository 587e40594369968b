package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Convert multiplies amount by rate and rounds the result half away from
// zero to two decimal places. An amount that is not a finite number yields "".
func Convert(amount string, rate float64) string {
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}

	return decimal.NewFromFloat(value).Mul(decimal.NewFromFloat(rate)).Round(2).String()
}
