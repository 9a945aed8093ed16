package utils

import (
	"github.com/shopspring/decimal"
)

// CurrencyCode is the currency all invoices are billed in.
const CurrencyCode = "RWF"

// currencyPrecision is the number of decimal places shown for CurrencyCode.
const currencyPrecision = 0

// FormatAmount renders an amount with the business currency, e.g. "RWF 12,500".
func FormatAmount(amount decimal.Decimal) string {
	return CurrencyCode + " " + groupThousands(amount.Round(currencyPrecision).StringFixed(currencyPrecision))
}

func groupThousands(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return sign + string(out)
}
