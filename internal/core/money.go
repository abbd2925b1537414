// Package core holds the purchase-order domain: the loaded table, its
// lines, money in cents and the load errors.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a cell value to Money with half-away-from-zero
// rounding to cents.
//
// It accepts plain numbers as exported by spreadsheets ("1234.5", "1e3") and
// the usual display forms: a leading currency sign, thousands separators and
// accounting negatives in parentheses. A blank cell is a zero amount.
//
// Examples:
//
//	ParseAmount("250.50")      -> {25050}, nil
//	ParseAmount("$1,234.567")  -> {123457}, nil
//	ParseAmount("(12.00)")     -> {-1200}, nil
//	ParseAmount("")            -> {0}, nil
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, nil
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if negative {
		d = d.Neg()
	}
	cents := d.Round(2).Shift(2)
	if !cents.IsInteger() || cents.Abs().GreaterThan(decimal.NewFromInt(1<<62)) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Dollars returns the value as a float64 for display and charting.
// Note: Use cents for calculations to avoid floating-point precision issues.
func (m Money) Dollars() float64 {
	return decimal.New(m.Cents, -2).InexactFloat64()
}

// String renders the amount with two decimals and no grouping, e.g. "-12.50".
func (m Money) String() string {
	return decimal.New(m.Cents, -2).StringFixed(2)
}
