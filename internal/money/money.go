// Package money represents fee amounts in Indian rupees.
package money

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in paise. Using integer minor units keeps the 18% GST
// computation exact for whole-rupee prices.
type Money int64

// Rupees returns the Money value for a whole rupee amount.
func Rupees(n int64) Money {
	return Money(n * 100)
}

// Whole returns the rupee part of the amount.
func (m Money) Whole() int64 {
	return int64(m) / 100
}

// Paise returns the sub-rupee part of the amount (0-99).
func (m Money) Paise() int64 {
	p := int64(m) % 100
	if p < 0 {
		return -p
	}
	return p
}

var printer = message.NewPrinter(language.English)

// String renders the amount with digit grouping, e.g. "₹3,000" or "₹540.18".
func (m Money) String() string {
	sign := ""
	whole := m.Whole()
	if m < 0 {
		sign = "-"
		whole = -whole
	}
	s := sign + "₹" + printer.Sprintf("%d", whole)
	if p := m.Paise(); p != 0 {
		s += fmt.Sprintf(".%02d", p)
	}
	return s
}
