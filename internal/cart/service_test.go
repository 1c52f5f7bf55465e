package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/orderlink/orderlink-backend/internal/catalog"
	"github.com/orderlink/orderlink-backend/pkg/kv"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return value, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

type stubCatalog struct {
	products map[int]catalog.Product
}

func (s *stubCatalog) Get(id int) (catalog.Product, bool) {
	product, ok := s.products[id]
	return product, ok
}

func stubProduct(id int, name string, price, discount int64) catalog.Product {
	p := decimal.NewFromInt(price)
	d := decimal.NewFromInt(discount)
	return catalog.Product{
		ID:             id,
		Name:           name,
		Price:          p,
		DiscountAmount: d,
		FinalPrice:     p.Sub(d),
	}
}

func newTestService(t *testing.T, store kv.Store, products ...catalog.Product) *Service {
	t.Helper()

	byID := map[int]catalog.Product{}
	for _, product := range products {
		byID[product.ID] = product
	}
	svc, err := NewService(&stubCatalog{products: byID}, store, "cart", nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddItemUnknownIDIsNoOp(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(t, store)

	if err := svc.AddItem(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.Lines()) != 0 {
		t.Fatal("expected cart to stay empty")
	}
	if _, ok := store.values["cart"]; ok {
		t.Fatal("expected nothing persisted for a no-op")
	}
}

func TestAddItemTwiceBumpsQuantity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore(), stubProduct(1, "Masala Tea", 200, 20))
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.AddItem(ctx, 1); err != nil {
		t.Fatalf("second add: %v", err)
	}

	lines := svc.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
}

func TestChangeQuantityToZeroRemovesLine(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore(), stubProduct(1, "Masala Tea", 200, 0))
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.ChangeQuantity(ctx, 1, -1); err != nil {
		t.Fatalf("change quantity: %v", err)
	}
	if len(svc.Lines()) != 0 {
		t.Fatal("expected line removed when quantity reaches zero")
	}
}

func TestTotalsIdentity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore(),
		stubProduct(1, "Masala Tea", 200, 20),
		stubProduct(2, "Green Tea", 150, 0),
	)
	ctx := context.Background()

	for _, id := range []int{1, 1, 2} {
		if err := svc.AddItem(ctx, id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}

	totals := svc.Totals()
	if !totals.Subtotal.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("expected subtotal 550, got %s", totals.Subtotal)
	}
	if !totals.TotalDiscount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected discount 40, got %s", totals.TotalDiscount)
	}
	if !totals.Total.Equal(totals.Subtotal.Sub(totals.TotalDiscount)) {
		t.Fatalf("totals identity broken: %+v", totals)
	}
}

func TestTotalsEmptyCartAllZero(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore())
	totals := svc.Totals()
	if !totals.Subtotal.IsZero() || !totals.TotalDiscount.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestCartSurvivesRestart(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	ctx := context.Background()

	first := newTestService(t, store, stubProduct(1, "Masala Tea", 200, 20))
	if err := first.AddItem(ctx, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := first.AddItem(ctx, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	second := newTestService(t, store)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	lines := second.Lines()
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("expected restored cart, got %+v", lines)
	}
	if lines[0].Name != "Masala Tea" {
		t.Fatalf("expected snapshot name, got %q", lines[0].Name)
	}
}

func TestLoadCorruptedPayloadStartsEmpty(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.values["cart"] = "{not json"

	svc := newTestService(t, store)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.Lines()) != 0 {
		t.Fatal("expected empty cart for corrupted payload")
	}
}

func TestLineKeepsSnapshotAcrossCatalogChange(t *testing.T) {
	t.Parallel()

	products := &stubCatalog{products: map[int]catalog.Product{
		1: stubProduct(1, "Masala Tea", 200, 0),
	}}
	svc, err := NewService(products, newMemStore(), "cart", nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// The catalog is reloaded with a new price; the line keeps its snapshot.
	products.products[1] = stubProduct(1, "Masala Tea", 500, 0)

	line := svc.Lines()[0]
	if !line.Price.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected snapshot price 200, got %s", line.Price)
	}

	totals := svc.Totals()
	if !totals.Total.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected total from snapshot, got %s", totals.Total)
	}
}

func TestClearEmptiesCartAndPersists(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newTestService(t, store, stubProduct(1, "Masala Tea", 200, 0))
	ctx := context.Background()

	if err := svc.AddItem(ctx, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(svc.Lines()) != 0 {
		t.Fatal("expected empty cart")
	}
	if store.values["cart"] != "[]" {
		t.Fatalf("expected empty list persisted, got %q", store.values["cart"])
	}
}

func TestSubscribersSeeAddEvents(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newMemStore(), stubProduct(1, "Masala Tea", 200, 0))

	var events []Event
	svc.Subscribe(func(event Event) {
		events = append(events, event)
	})

	if err := svc.AddItem(context.Background(), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if len(events) != 1 || events[0].Op != OpAdd || events[0].ProductID != 1 {
		t.Fatalf("expected add event, got %+v", events)
	}
}
