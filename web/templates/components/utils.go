package components

import (
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
	"github.com/shopspring/decimal"
)

// FormatRelativeTime formats a time.Time as a relative time string like "3 hours ago"
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timediff.TimeDiff(t)
}

// FormatMoney formats an amount with thousands separators and at most two decimals.
func FormatMoney(d decimal.Decimal) string {
	d = d.Round(2)
	whole, frac, _ := strings.Cut(d.Abs().String(), ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return d.String()
	}

	s := humanize.BigComma(n)
	if frac != "" {
		s += "." + frac
	}
	if d.IsNegative() {
		s = "-" + s
	}
	return s
}
