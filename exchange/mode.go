package exchange

import (
	"go-currency-converter/rates"
)

// Mode selects where the rate for a conversion comes from.
// It is either TableBased or ServiceBased and is chosen anew for every conversion.
type Mode interface {
	source() rates.Source
	String() string
}

// TableBased converts from the base currency using fixed rates from the local table
type TableBased struct {
	Table rates.Source
}

func (m TableBased) source() rates.Source { return m.Table }

func (m TableBased) String() string { return "table" }

// ServiceBased converts between any pair using live rates from the exchange rate service
type ServiceBased struct {
	Service rates.Source
}

func (m ServiceBased) source() rates.Source { return m.Service }

func (m ServiceBased) String() string { return "service" }
