package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/orderlink/orderlink-backend/pkg/logger"
	"github.com/orderlink/orderlink-backend/pkg/metrics"
)

// Service ties the loader and store together: every successful load replaces
// the catalog wholesale. Concurrent loads are not coordinated; the last
// completion wins, which is acceptable since reloads have a single trigger.
type Service struct {
	loader  *Loader
	store   *Store
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
}

// NewService builds a catalog service backed by the provided stack.
func NewService(loader *Loader, store *Store, m *metrics.StorefrontMetrics, logg *logger.Logger) (*Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	return &Service{loader: loader, store: store, metrics: m, logg: logg}, nil
}

// Store exposes the catalog store for read-side collaborators.
func (s *Service) Store() *Store {
	return s.store
}

// Reload fetches workbook bytes from the configured source and replaces the
// catalog. On failure the previous catalog is left untouched.
func (s *Service) Reload(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := s.reload(ctx)
	s.metrics.ObserveLoad("fetch", time.Since(start), err)
	return count, err
}

func (s *Service) reload(ctx context.Context) (int, error) {
	data, err := s.loader.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	return s.replace(ctx, data)
}

// LoadBytes runs user-supplied workbook bytes through the same parsing
// routine as Reload. This is the manual-upload fallback path.
func (s *Service) LoadBytes(ctx context.Context, data []byte) (int, error) {
	start := time.Now()
	count, err := s.replace(ctx, data)
	s.metrics.ObserveLoad("upload", time.Since(start), err)
	return count, err
}

func (s *Service) replace(ctx context.Context, data []byte) (int, error) {
	products, err := s.loader.Parse(data)
	if err != nil {
		return 0, err
	}

	s.store.Replace(products)

	if s.logg != nil {
		ctx = s.logg.WithField(ctx, "products", len(products))
		s.logg.Info(ctx, "catalog.loaded")
	}
	return len(products), nil
}
