package domain

import (
	"github.com/shopspring/decimal"
)

// BaseCurrency the currency every table rate is anchored to
const BaseCurrency Currency = "USD"

// Currency a currency code
type Currency string

// WellFormed reports whether c is three upper case ASCII letters.
func (c Currency) WellFormed() bool {
	if len(c) != 3 {
		return false
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return false
		}
	}
	return true
}

// Amount a monetary amount... which should be a float...
type Amount float64

// Rate an exchange rate: units of the target currency per one unit of the source currency
type Rate float64

// Symbol a currency code and its human-readable description
type Symbol struct {
	Code        Currency
	Description string
}

// Request a single conversion asked for by the user
type Request struct {
	From   Currency
	To     Currency
	Amount Amount
}

// Exchanged the outcome of a conversion.
// Amount is unrounded and authoritative; rounding is for display only.
type Exchanged struct {
	Rate   Rate
	Amount Amount
}

// Rounded returns Amount rounded half-up to two decimal places
func (e Exchanged) Rounded() decimal.Decimal {
	return decimal.NewFromFloat(float64(e.Amount)).Round(2)
}

// Display formats Amount with exactly two decimal places
func (e Exchanged) Display() string {
	return e.Rounded().StringFixed(2)
}
