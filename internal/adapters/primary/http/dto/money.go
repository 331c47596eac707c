package dto

import (
	"math"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPrice renders a dollar amount rounded to cents, e.g. "$123,456.78".
// Digits come from the decimal text, never a float round trip, so large
// amounts keep their exact value.
func FormatPrice(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}

	s := decimal.NewFromFloat(v).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	whole, cents, _ := strings.Cut(s, ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + "$" + s
	}
	return sign + "$" + humanize.BigComma(n) + "." + cents
}
