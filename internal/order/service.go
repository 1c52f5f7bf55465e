package order

import (
	"context"
	"fmt"

	"github.com/orderlink/orderlink-backend/internal/cart"
	pkgerrors "github.com/orderlink/orderlink-backend/pkg/errors"
	"github.com/orderlink/orderlink-backend/pkg/logger"
	"github.com/orderlink/orderlink-backend/pkg/metrics"
)

// Checkout is the result handed to the caller: the rendered message, the
// deep link that opens WhatsApp with it, and the totals it was built from.
type Checkout struct {
	Message     string      `json:"message"`
	WhatsAppURL string      `json:"whatsappUrl"`
	Totals      cart.Totals `json:"totals"`
}

// Service turns the current cart into a WhatsApp order.
type Service struct {
	cart           *cart.Service
	formatter      Formatter
	whatsappNumber string
	metrics        *metrics.StorefrontMetrics
	logg           *logger.Logger
}

// NewService builds an order service for the store's WhatsApp number.
func NewService(cartSvc *cart.Service, formatter Formatter, whatsappNumber string, m *metrics.StorefrontMetrics, logg *logger.Logger) (*Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if whatsappNumber == "" {
		return nil, fmt.Errorf("whatsapp number required")
	}
	return &Service{
		cart:           cartSvc,
		formatter:      formatter,
		whatsappNumber: whatsappNumber,
		metrics:        m,
		logg:           logg,
	}, nil
}

// Checkout renders the current cart. An empty cart is a validation error so
// the caller gets a 400 rather than an empty chat link.
func (s *Service) Checkout(ctx context.Context) (Checkout, error) {
	lines := s.cart.Lines()
	message := s.formatter.Format(lines)
	if message == "" {
		s.metrics.IncCheckout("empty_cart")
		return Checkout{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	result := Checkout{
		Message:     message,
		WhatsAppURL: WhatsAppLink(s.whatsappNumber, message),
		Totals:      cart.TotalsFor(lines),
	}

	s.metrics.IncCheckout("success")
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"lines": len(lines),
			"total": result.Totals.Total.String(),
		})
		s.logg.Info(ctx, "order.checkout")
	}
	return result, nil
}
