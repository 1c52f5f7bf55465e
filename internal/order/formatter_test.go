package order

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/orderlink/orderlink-backend/internal/cart"
	"github.com/orderlink/orderlink-backend/internal/catalog"
)

func orderLine(id int, name string, price, discount int64, qty int) cart.Line {
	p := decimal.NewFromInt(price)
	d := decimal.NewFromInt(discount)
	return cart.Line{
		Product: catalog.Product{
			ID:             id,
			Name:           name,
			Price:          p,
			DiscountAmount: d,
			FinalPrice:     p.Sub(d),
		},
		Quantity: qty,
	}
}

func TestFormatEmptyCartIsEmptyString(t *testing.T) {
	t.Parallel()

	if got := (Formatter{CurrencySymbol: "₹"}).Format(nil); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
}

func TestFormatFullMessage(t *testing.T) {
	t.Parallel()

	lines := []cart.Line{
		orderLine(1, "Masala Tea", 200, 20, 2),
		orderLine(2, "Green Tea", 150, 0, 1),
	}

	got := Formatter{CurrencySymbol: "₹"}.Format(lines)

	want := "*NEW ORDER*\n\n" +
		"📦 *ORDER DETAILS*\n" +
		"━━━━━━━━━━━━━━━━\n\n" +
		"1. *Masala Tea*\n" +
		"   Qty: 2\n" +
		"   Price: ₹180.00 each\n" +
		"   Subtotal: ₹360.00\n" +
		"   Discount: -₹40.00\n" +
		"\n" +
		"2. *Green Tea*\n" +
		"   Qty: 1\n" +
		"   Price: ₹150.00 each\n" +
		"   Subtotal: ₹150.00\n" +
		"\n" +
		"━━━━━━━━━━━━━━━━\n" +
		"*Subtotal:* ₹550.00\n" +
		"*Total Discount:* -₹40.00\n" +
		"*TOTAL AMOUNT:* ₹510.00\n"

	if got != want {
		t.Fatalf("message mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatSkipsDiscountLineWhenZero(t *testing.T) {
	t.Parallel()

	got := Formatter{CurrencySymbol: "$"}.Format([]cart.Line{
		orderLine(1, "Plain", 100, 0, 1),
	})

	if strings.Contains(got, "Discount: -") {
		t.Fatalf("expected no per-line discount, got:\n%s", got)
	}
	if !strings.Contains(got, "*Total Discount:* -$0.00\n") {
		t.Fatalf("expected footer discount line, got:\n%s", got)
	}
}

func TestFormatTwoLineTotals(t *testing.T) {
	t.Parallel()

	got := Formatter{CurrencySymbol: "₹"}.Format([]cart.Line{
		orderLine(1, "A", 100, 5, 1),
		orderLine(2, "B", 150, 0, 1),
	})

	if !strings.Contains(got, "*Subtotal:* ₹250.00\n") {
		t.Fatalf("unexpected subtotal:\n%s", got)
	}
	if !strings.Contains(got, "*Total Discount:* -₹5.00\n") {
		t.Fatalf("unexpected total discount:\n%s", got)
	}
	if !strings.Contains(got, "*TOTAL AMOUNT:* ₹245.00\n") {
		t.Fatalf("unexpected total:\n%s", got)
	}
}

func TestWhatsAppLinkEncoding(t *testing.T) {
	t.Parallel()

	link := WhatsAppLink("918864092866", "*NEW ORDER*\n\nQty: 2")

	if !strings.HasPrefix(link, "https://wa.me/918864092866?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Fatalf("expected percent-encoded spaces, got %s", link)
	}
	if !strings.Contains(link, "%0A") {
		t.Fatalf("expected encoded newlines, got %s", link)
	}
	if !strings.Contains(link, "%20") {
		t.Fatalf("expected encoded spaces, got %s", link)
	}
}
