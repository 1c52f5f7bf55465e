package catalog

import "sync"

// Store holds the current catalog. The list is replaced wholesale on every
// successful load; products are never merged or individually deleted.
type Store struct {
	mu          sync.RWMutex
	products    []Product
	byID        map[int]Product
	subscribers []func([]Product)
}

// NewStore returns an empty catalog store.
func NewStore() *Store {
	return &Store{byID: make(map[int]Product)}
}

// Replace swaps the whole catalog and notifies subscribers with the new list.
func (s *Store) Replace(products []Product) {
	byID := make(map[int]Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	s.mu.Lock()
	s.products = products
	s.byID = byID
	subscribers := make([]func([]Product), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(products)
	}
}

// Products returns a copy of the current catalog.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get looks up a product by its id in the current catalog.
func (s *Store) Get(id int) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.byID[id]
	return product, ok
}

// Len reports the current catalog size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Subscribe registers a callback invoked after every catalog replacement.
func (s *Store) Subscribe(fn func([]Product)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
