// Package pricing normalizes raw spreadsheet price and discount cells into
// the money values every other component consumes. Normalization happens
// exactly once per product at catalog load time; the results are cached on
// the product so cards, cart lines and order totals never disagree.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountKind tags how a discount cell should be applied.
type DiscountKind string

const (
	DiscountNone    DiscountKind = "none"
	DiscountPercent DiscountKind = "percent"
	DiscountFlat    DiscountKind = "flat"
)

// Discount is the parsed form of the raw discount cell. The percent-or-flat
// decision is made here, once, instead of re-sniffing the raw string in
// every consumer.
type Discount struct {
	Kind  DiscountKind    `json:"kind"`
	Value decimal.Decimal `json:"value"`
	Raw   string          `json:"raw"`
}

// Quote carries the normalized money values for one product row.
type Quote struct {
	Price          decimal.Decimal
	Discount       Discount
	DiscountAmount decimal.Decimal
	FinalPrice     decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// Normalize parses the raw price and discount cells and derives the discount
// amount and final price. Parsing is best effort: any unparseable number
// degrades to zero rather than failing the row. A discount cell containing a
// percent marker is applied against the price; anything else is treated as a
// flat amount. The final price is not clamped and goes negative when the
// discount exceeds the price.
func Normalize(rawPrice, rawDiscount string) Quote {
	price := parseDecimal(rawPrice)

	discount := parseDiscount(rawDiscount)

	var amount decimal.Decimal
	switch discount.Kind {
	case DiscountPercent:
		amount = price.Mul(discount.Value).Div(oneHundred)
	case DiscountFlat:
		amount = discount.Value
	default:
		amount = decimal.Zero
	}

	return Quote{
		Price:          price,
		Discount:       discount,
		DiscountAmount: amount,
		FinalPrice:     price.Sub(amount),
	}
}

func parseDiscount(raw string) Discount {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Discount{Kind: DiscountNone, Value: decimal.Zero, Raw: raw}
	}

	if idx := strings.Index(trimmed, "%"); idx >= 0 {
		return Discount{
			Kind:  DiscountPercent,
			Value: parseDecimal(trimmed[:idx]),
			Raw:   trimmed,
		}
	}

	return Discount{Kind: DiscountFlat, Value: parseDecimal(trimmed), Raw: trimmed}
}

// parseDecimal is the single zero-fallback path for malformed numeric cells.
func parseDecimal(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return value
}
