package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TenderTypeCode is stamped on every tender whose GST fields were computed here.
const TenderTypeCode = "T"

// leadingNumber matches the numeric prefix a lenient float parser accepts:
// "12.5kg" reads as 12.5, ".5" as 0.5, "7." as 7.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// TenderGST holds the derived GST fields of a tender, formatted with exactly
// two fraction digits.
type TenderGST struct {
	GSTAmount        string
	RateIncludingGST string
}

// ParseAmount reads a user-entered decimal string. Leading whitespace is
// ignored and trailing garbage after the numeric prefix is dropped. Empty,
// non-numeric and non-finite input all read as zero.
func ParseAmount(s string) decimal.Decimal {
	prefix := leadingNumber.FindString(strings.TrimLeft(s, " \t\r\n"))
	if prefix == "" {
		return decimal.Zero
	}

	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(normalizeNumber(prefix))
	if err != nil {
		return decimal.NewFromFloat(f)
	}
	return d
}

// normalizeNumber turns "7." into "7" and ".5" into "0.5".
func normalizeNumber(s string) string {
	mantissa, exp := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exp = s[:i], s[i:]
	}

	sign := ""
	if strings.HasPrefix(mantissa, "+") || strings.HasPrefix(mantissa, "-") {
		sign, mantissa = mantissa[:1], mantissa[1:]
	}
	mantissa = strings.TrimSuffix(mantissa, ".")
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	if sign == "+" {
		sign = ""
	}
	return sign + mantissa + exp
}

// CalcTenderGST derives the GST amount and the GST-inclusive rate from a
// base rate and a GST percentage. Both results are rounded half away from
// zero to two places; the inclusive rate is built from the rounded amount so
// the two displayed figures always add up.
func CalcTenderGST(baseRate, gstPercent string) TenderGST {
	base := ParseAmount(baseRate)
	perc := ParseAmount(gstPercent)

	amount := base.Mul(perc).Shift(-2).Round(2)
	inclusive := base.Add(amount).Round(2)

	return TenderGST{
		GSTAmount:        amount.StringFixed(2),
		RateIncludingGST: inclusive.StringFixed(2),
	}
}
