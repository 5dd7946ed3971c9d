package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is a fixed-point amount held as an integer number of minor units
// (kobo, cents). All arithmetic stays in integers so totals are exact.
type Money struct {
	Cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, NewInvalidAmountError(strconv.FormatInt(cents, 10))
	}
	return Money{Cents: cents}, nil
}

// ParseAmount parses a decimal string like "19.99" into Money.
// At most two fractional digits are accepted; negatives are rejected.
func ParseAmount(raw string) (Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return Money{}, NewInvalidAmountError(raw)
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" || len(frac) > 2 || !allDigits(whole) || !allDigits(frac) {
		return Money{}, NewInvalidAmountError(raw)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > (math.MaxInt64-99)/100 {
		return Money{}, NewInvalidAmountError(raw)
	}

	var cents int64
	if frac != "" {
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, NewInvalidAmountError(raw)
		}
		if len(frac) == 1 {
			f *= 10
		}
		cents = f
	}

	return Money{Cents: units*100 + cents}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (m Money) Mul(quantity int) Money {
	return Money{Cents: m.Cents * int64(quantity)}
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Amount renders the value as a decimal string with two fractional digits.
func (m Money) Amount() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

func (m Money) String() string {
	return m.Amount()
}
