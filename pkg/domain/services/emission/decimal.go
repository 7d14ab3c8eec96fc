package emission

import (
	"github.com/shopspring/decimal"
)

const (
	// DqrPlaces is the number of fractional digits DQR and sheet values keep
	DqrPlaces int32 = 5

	// DefaultDisplayPrecision is the fractional precision FormatNumber uses by default
	DefaultDisplayPrecision int32 = 1
)

// SumDecimal adds values exactly. Null entries count as zero.
func SumDecimal(values ...decimal.NullDecimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		if v.Valid {
			sum = sum.Add(v.Decimal)
		}
	}
	return sum
}

// SumStrict adds values exactly, but yields null when any entry is null.
func SumStrict(values ...decimal.NullDecimal) decimal.NullDecimal {
	sum := decimal.Zero
	for _, v := range values {
		if !v.Valid {
			return decimal.NullDecimal{}
		}
		sum = sum.Add(v.Decimal)
	}
	return decimal.NewNullDecimal(sum)
}

// Round5 rounds d up to DqrPlaces fractional digits and strips trailing zeros.
// Rounding is toward positive infinity so values are never under-reported.
func Round5(d decimal.Decimal) string {
	return d.RoundCeil(DqrPlaces).String()
}

// FormatNumber renders d for display. Integers are returned as is. Anything
// else is rounded up to precision digits, and a result that became whole keeps
// one fractional digit ("2.0") to show that rounding happened.
func FormatNumber(d decimal.Decimal, precision int32) string {
	if d.IsInteger() {
		return d.String()
	}
	rounded := d.RoundCeil(precision)
	if rounded.IsInteger() {
		return rounded.StringFixed(1)
	}
	return rounded.String()
}

// FormatNumberDefault is FormatNumber with DefaultDisplayPrecision
func FormatNumberDefault(d decimal.Decimal) string {
	return FormatNumber(d, DefaultDisplayPrecision)
}

// quoCeil divides exactly and rounds the quotient up to places digits.
func quoCeil(num, den decimal.Decimal, places int32) decimal.Decimal {
	q, r := num.QuoRem(den, places)
	// num = den*q + r, so the exact quotient is q + r/den.
	if !r.IsZero() && r.Sign() == den.Sign() {
		q = q.Add(decimal.New(1, -places))
	}
	return q
}

func orZero(v decimal.NullDecimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return decimal.Zero
}

func valid(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NewNullDecimal(d)
}
