package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orderlink/orderlink-backend/api/controllers"
	cartcontrollers "github.com/orderlink/orderlink-backend/api/controllers/cart"
	"github.com/orderlink/orderlink-backend/api/middleware"
	cartsvc "github.com/orderlink/orderlink-backend/internal/cart"
	"github.com/orderlink/orderlink-backend/internal/catalog"
	"github.com/orderlink/orderlink-backend/internal/order"
	"github.com/orderlink/orderlink-backend/pkg/config"
	"github.com/orderlink/orderlink-backend/pkg/db"
	"github.com/orderlink/orderlink-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	pingers map[string]db.Pinger,
	catalogService *catalog.Service,
	cartService *cartsvc.Service,
	orderService *order.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(catalogService.Store(), logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/reload", controllers.CatalogReload(catalogService, logg))
			r.Post("/upload", controllers.CatalogUpload(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(cartService, logg))
			r.Delete("/", cartcontrollers.CartClear(cartService, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartService, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartService, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartChangeQuantity(cartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(orderService, logg))
	})

	return r
}
