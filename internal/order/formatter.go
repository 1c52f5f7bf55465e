// Package order renders a cart into the WhatsApp order message and builds
// the deep link that opens a prefilled chat with the store.
package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/orderlink/orderlink-backend/internal/cart"
)

const divider = "━━━━━━━━━━━━━━━━"

// Formatter renders order messages with the store's currency symbol.
type Formatter struct {
	CurrencySymbol string
}

// Format renders the cart as the plain-text order message. Asterisk markers
// are WhatsApp bold syntax. An empty cart renders to the empty string so
// callers can treat it as "nothing to order".
func (f Formatter) Format(lines []cart.Line) string {
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("*NEW ORDER*\n\n")
	b.WriteString("📦 *ORDER DETAILS*\n")
	b.WriteString(divider + "\n\n")

	for i, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, line.Name)
		fmt.Fprintf(&b, "   Qty: %d\n", line.Quantity)
		fmt.Fprintf(&b, "   Price: %s%s each\n", f.CurrencySymbol, line.FinalPrice.StringFixed(2))
		fmt.Fprintf(&b, "   Subtotal: %s%s\n", f.CurrencySymbol, line.FinalPrice.Mul(qty).StringFixed(2))
		if line.DiscountAmount.IsPositive() {
			fmt.Fprintf(&b, "   Discount: -%s%s\n", f.CurrencySymbol, line.DiscountAmount.Mul(qty).StringFixed(2))
		}
		b.WriteString("\n")
	}

	totals := cart.TotalsFor(lines)
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "*Subtotal:* %s%s\n", f.CurrencySymbol, totals.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "*Total Discount:* -%s%s\n", f.CurrencySymbol, totals.TotalDiscount.StringFixed(2))
	fmt.Fprintf(&b, "*TOTAL AMOUNT:* %s%s\n", f.CurrencySymbol, totals.Total.StringFixed(2))

	return b.String()
}

// WhatsAppLink builds the wa.me deep link for the given digits-only number
// and message. Spaces are percent-encoded, matching what WhatsApp expects in
// the text parameter.
func WhatsAppLink(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, encoded)
}
