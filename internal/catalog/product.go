package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/orderlink/orderlink-backend/internal/pricing"
)

// Product is one normalized catalog entry. IDs are sequential and 1-based,
// assigned per load; they are only stable within a single catalog load.
// Price fields are computed once by pricing.Normalize and cached here.
type Product struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	Discount       pricing.Discount `json:"discount"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	FinalPrice     decimal.Decimal  `json:"finalPrice"`
	DeliveryTime   string           `json:"deliveryTime"`
	Image          string           `json:"image"`
}
