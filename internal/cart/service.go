// Package cart owns the shopping cart: an ordered list of product snapshots
// with quantities, mirrored to a durable key-value slot after every mutation.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/orderlink/orderlink-backend/internal/catalog"
	"github.com/orderlink/orderlink-backend/pkg/kv"
	"github.com/orderlink/orderlink-backend/pkg/logger"
	"github.com/orderlink/orderlink-backend/pkg/metrics"
)

// Line is one cart entry: a full product snapshot taken at add time plus a
// quantity. The snapshot never resyncs with later catalog reloads, so order
// totals always match what the customer saw when adding the item.
type Line struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// Totals are derived fresh from the current lines on every call.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	Total         decimal.Decimal `json:"total"`
}

// TotalsFor computes cart totals from snapshot fields only. It is shared by
// the cart view and the order formatter so the two can never disagree.
func TotalsFor(lines []Line) Totals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		subtotal = subtotal.Add(line.Price.Mul(qty))
		discount = discount.Add(line.DiscountAmount.Mul(qty))
	}
	return Totals{
		Subtotal:      subtotal,
		TotalDiscount: discount,
		Total:         subtotal.Sub(discount),
	}
}

// Op names a cart mutation for events and metrics.
type Op string

const (
	OpAdd            Op = "add"
	OpRemove         Op = "remove"
	OpChangeQuantity Op = "change_quantity"
	OpClear          Op = "clear"
)

// Event is delivered to subscribers after a mutation has been persisted.
// The view collaborator uses the add event to open its cart drawer.
type Event struct {
	Op        Op
	ProductID int
}

// ProductGetter is the read surface the cart needs from the catalog.
type ProductGetter interface {
	Get(id int) (catalog.Product, bool)
}

// Service is the cart store. Mutations are serialized by a mutex so each
// call is atomic from the caller's perspective.
type Service struct {
	mu          sync.Mutex
	lines       []Line
	catalog     ProductGetter
	slot        kv.Store
	key         string
	metrics     *metrics.StorefrontMetrics
	logg        *logger.Logger
	subscribers []func(Event)
}

// NewService builds a cart service backed by the provided stack.
func NewService(products ProductGetter, slot kv.Store, key string, m *metrics.StorefrontMetrics, logg *logger.Logger) (*Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product getter required")
	}
	if slot == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if key == "" {
		return nil, fmt.Errorf("cart key required")
	}
	return &Service{
		catalog: products,
		slot:    slot,
		key:     key,
		metrics: m,
		logg:    logg,
	}, nil
}

// Subscribe registers a callback invoked after every persisted mutation.
func (s *Service) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Load reads the persisted cart at process start. A missing or corrupted
// slot yields an empty cart, never an error.
func (s *Service) Load(ctx context.Context) error {
	value, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if err == kv.ErrNotFound {
			return nil
		}
		return err
	}

	var lines []Line
	if err := json.Unmarshal([]byte(value), &lines); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "cart.load.corrupted, starting empty")
		}
		return nil
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.Quantity >= 1 {
			kept = append(kept, line)
		}
	}

	s.mu.Lock()
	s.lines = kept
	s.mu.Unlock()
	return nil
}

// AddItem snapshots the product into the cart, or bumps the quantity when a
// line for the id already exists. Unknown ids are a silent no-op to absorb
// stale references from the view.
func (s *Service) AddItem(ctx context.Context, productID int) error {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return nil
	}

	s.mu.Lock()
	if idx := s.indexOfLocked(productID); idx >= 0 {
		s.lines[idx].Quantity++
	} else {
		s.lines = append(s.lines, Line{Product: product, Quantity: 1})
	}
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.metrics.IncCartOp(string(OpAdd))
	s.notify(Event{Op: OpAdd, ProductID: productID})
	return nil
}

// RemoveItem deletes the line for the id if present.
func (s *Service) RemoveItem(ctx context.Context, productID int) error {
	s.mu.Lock()
	idx := s.indexOfLocked(productID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.metrics.IncCartOp(string(OpRemove))
	s.notify(Event{Op: OpRemove, ProductID: productID})
	return nil
}

// ChangeQuantity applies a delta to the line's quantity. A resulting
// quantity of zero or less removes the line entirely.
func (s *Service) ChangeQuantity(ctx context.Context, productID, delta int) error {
	s.mu.Lock()
	idx := s.indexOfLocked(productID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := s.lines[idx].Quantity + delta
	removed := next <= 0
	if removed {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	} else {
		s.lines[idx].Quantity = next
	}
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if removed {
		s.metrics.IncCartOp(string(OpRemove))
		s.notify(Event{Op: OpRemove, ProductID: productID})
	} else {
		s.metrics.IncCartOp(string(OpChangeQuantity))
		s.notify(Event{Op: OpChangeQuantity, ProductID: productID})
	}
	return nil
}

// Clear drops every line.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.lines = nil
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.metrics.IncCartOp(string(OpClear))
	s.notify(Event{Op: OpClear})
	return nil
}

// Lines returns a copy of the current cart.
func (s *Service) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Totals computes the current totals, never cached.
func (s *Service) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalsFor(s.lines)
}

func (s *Service) indexOfLocked(productID int) int {
	for idx, line := range s.lines {
		if line.ID == productID {
			return idx
		}
	}
	return -1
}

// persistLocked mirrors the whole list to the durable slot as one atomic
// replace. Callers must hold the mutex.
func (s *Service) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if s.lines == nil {
		payload = []byte("[]")
	}
	if err := s.slot.Set(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func (s *Service) notify(event Event) {
	s.mu.Lock()
	subscribers := make([]func(Event), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(event)
	}
}
