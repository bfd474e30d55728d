// Package pricing computes registration fees.
//
// ComputeTotal is pure: it holds no state and may be called on every render.
package pricing

import (
	"github.com/jasicon/jasreg/internal/money"
	"github.com/jasicon/jasreg/internal/registration"
)

// TaxRateBasisPoints is the GST rate applied to the subtotal (18%).
const TaxRateBasisPoints = 1800

// DefaultCategory is the category whose price is charged when the draft
// carries a category outside the price table.
const DefaultCategory = registration.CategoryDoctor

var basePrices = map[registration.Category]money.Money{
	registration.CategoryDoctor:    money.Rupees(3000),
	registration.CategoryDelegate:  money.Rupees(3000),
	registration.CategoryPGStudent: money.Rupees(2000),
}

// Breakdown is the fee summary shown on the summary step.
type Breakdown struct {
	Base     money.Money
	AddOns   money.Money
	Subtotal money.Money
	Tax      money.Money
	Total    money.Money
}

// BasePrice returns the conference fee for a category.
func BasePrice(c registration.Category) money.Money {
	if p, ok := basePrices[c]; ok {
		return p
	}
	return basePrices[DefaultCategory]
}

// Tax returns the GST due on subtotal, rounded half up to the paisa.
func Tax(subtotal money.Money) money.Money {
	return money.Money((int64(subtotal)*TaxRateBasisPoints + 5000) / 10000)
}

// ComputeTotal prices a category plus the selected add-ons. Ids missing from
// the catalog contribute nothing and repeated ids are charged once.
func ComputeTotal(c registration.Category, addOnIDs []string, catalog registration.Catalog) Breakdown {
	var addOns money.Money
	seen := make(map[string]struct{}, len(addOnIDs))
	for _, id := range addOnIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if a, ok := catalog.Lookup(id); ok {
			addOns += a.Price
		}
	}

	base := BasePrice(c)
	subtotal := base + addOns
	tax := Tax(subtotal)
	return Breakdown{
		Base:     base,
		AddOns:   addOns,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Row is one line of the public fee table.
type Row struct {
	Category registration.Category
	Price    money.Money
}

// Label renders the fee the way the fee table shows it.
func (r Row) Label() string {
	return r.Price.String() + " + GST"
}

// Table returns the category fee table in display order.
func Table() []Row {
	rows := make([]Row, 0, len(basePrices))
	for _, c := range registration.Categories() {
		rows = append(rows, Row{Category: c, Price: basePrices[c]})
	}
	return rows
}
