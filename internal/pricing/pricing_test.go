package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizePercentDiscount(t *testing.T) {
	t.Parallel()

	quote := Normalize("200", "10%")

	if quote.Discount.Kind != DiscountPercent {
		t.Fatalf("expected percent discount, got %s", quote.Discount.Kind)
	}
	if !quote.DiscountAmount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected discount amount 20, got %s", quote.DiscountAmount)
	}
	if !quote.FinalPrice.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("expected final price 180, got %s", quote.FinalPrice)
	}
}

func TestNormalizeFlatDiscount(t *testing.T) {
	t.Parallel()

	quote := Normalize("200", "50")

	if quote.Discount.Kind != DiscountFlat {
		t.Fatalf("expected flat discount, got %s", quote.Discount.Kind)
	}
	if !quote.DiscountAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected discount amount 50, got %s", quote.DiscountAmount)
	}
	if !quote.FinalPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected final price 150, got %s", quote.FinalPrice)
	}
}

func TestNormalizeUnparseablePriceDegradesToZero(t *testing.T) {
	t.Parallel()

	quote := Normalize("call us", "10%")

	if !quote.Price.IsZero() {
		t.Fatalf("expected zero price, got %s", quote.Price)
	}
	if !quote.DiscountAmount.IsZero() {
		t.Fatalf("expected percent of zero to be zero, got %s", quote.DiscountAmount)
	}
	if !quote.FinalPrice.IsZero() {
		t.Fatalf("expected zero final price, got %s", quote.FinalPrice)
	}
}

func TestNormalizeUnparseableDiscountDegradesToZero(t *testing.T) {
	t.Parallel()

	quote := Normalize("99.50", "ask in store")

	if quote.Discount.Kind != DiscountFlat {
		t.Fatalf("expected flat discount kind, got %s", quote.Discount.Kind)
	}
	if !quote.DiscountAmount.IsZero() {
		t.Fatalf("expected zero discount, got %s", quote.DiscountAmount)
	}
	if !quote.FinalPrice.Equal(decimal.RequireFromString("99.50")) {
		t.Fatalf("expected final price 99.50, got %s", quote.FinalPrice)
	}
}

func TestNormalizeEmptyDiscount(t *testing.T) {
	t.Parallel()

	quote := Normalize("120", "")

	if quote.Discount.Kind != DiscountNone {
		t.Fatalf("expected no discount, got %s", quote.Discount.Kind)
	}
	if !quote.FinalPrice.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected final price 120, got %s", quote.FinalPrice)
	}
}

func TestNormalizeDoesNotClampNegativeFinalPrice(t *testing.T) {
	t.Parallel()

	quote := Normalize("100", "150")

	if !quote.FinalPrice.Equal(decimal.NewFromInt(-50)) {
		t.Fatalf("expected final price -50, got %s", quote.FinalPrice)
	}
}

func TestNormalizeFractionalPercent(t *testing.T) {
	t.Parallel()

	quote := Normalize("50", "10%")

	if !quote.DiscountAmount.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("expected discount amount 5, got %s", quote.DiscountAmount)
	}
	if !quote.FinalPrice.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("expected final price 45, got %s", quote.FinalPrice)
	}
}
