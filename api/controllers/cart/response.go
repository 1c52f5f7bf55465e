package cart

import (
	cartsvc "github.com/orderlink/orderlink-backend/internal/cart"
)

type cartView struct {
	Items  []cartsvc.Line `json:"items"`
	Totals cartsvc.Totals `json:"totals"`
}

func newCartView(svc *cartsvc.Service) cartView {
	items := svc.Lines()
	if items == nil {
		items = []cartsvc.Line{}
	}
	return cartView{Items: items, Totals: svc.Totals()}
}
