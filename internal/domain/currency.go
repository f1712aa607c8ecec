package domain

import "fmt"

// Currency is the closed set of currencies accounts can be denominated in.
// String codes coming from the outside are validated once with ParseCurrency;
// the core only ever works with the enum.
type Currency int

const (
	CurrencyEUR Currency = iota + 1
	CurrencyUSD
	CurrencyRUB
)

func ParseCurrency(code string) (Currency, error) {
	switch code {
	case "EUR":
		return CurrencyEUR, nil
	case "USD":
		return CurrencyUSD, nil
	case "RUB":
		return CurrencyRUB, nil
	default:
		return 0, NewValidationError("unknown currency %q", code)
	}
}

func IsSupportedCurrency(code string) bool {
	_, err := ParseCurrency(code)
	return err == nil
}

// String returns the 3-letter code. Every enum member maps to a non-empty
// code; an out-of-range value is a programming error, not user input.
func (c Currency) String() string {
	switch c {
	case CurrencyEUR:
		return "EUR"
	case CurrencyUSD:
		return "USD"
	case CurrencyRUB:
		return "RUB"
	default:
		return fmt.Sprintf("Currency(%d)", int(c))
	}
}
