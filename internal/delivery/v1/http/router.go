package http

import (
	"net/http"

	"github.com/DRSN-tech/inventory-backend/docs"
	"github.com/DRSN-tech/inventory-backend/internal/usecase"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/DRSN-tech/inventory-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router   *chi.Mux
	service  string
	validate *validator.Validate
	metrics  *metrics.Metrics
	health   HealthChecker
	logger   logger.Logger
}

func NewRouter(router *chi.Mux, service string, metrics *metrics.Metrics, health HealthChecker, logger logger.Logger) *Router {
	return &Router{
		router:   router,
		service:  service,
		validate: newValidator(),
		metrics:  metrics,
		health:   health,
		logger:   logger,
	}
}

// InitInventory регистрирует маршруты inventory-service.
func (r *Router) InitInventory(prUC usecase.ProductUC) {
	r.initCommon(docs.InventoryInstanceName)

	r.router.Route("/api", func(api chi.Router) {
		prHandler := NewProductHandler(prUC, r.validate, r.logger)
		registerProductRoutes(api, prHandler)
	})
}

// InitSupplier регистрирует маршруты supplier-service.
func (r *Router) InitSupplier(spUC usecase.SupplierUC) {
	r.initCommon(docs.SupplierInstanceName)

	r.router.Route("/api", func(api chi.Router) {
		spHandler := NewSupplierHandler(spUC, r.validate, r.logger)
		registerSupplierRoutes(api, spHandler)
	})
}

func (r *Router) Handler() http.Handler {
	return r.router
}

func (r *Router) initCommon(docInstance string) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(accessLog(r.logger, r.metrics))
	r.router.Use(middleware.Recoverer)

	r.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusNotFound, NewErrorResponse(http.StatusNotFound, "route not found"))
	})
	r.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusMethodNotAllowed, NewErrorResponse(http.StatusMethodNotAllowed, "method not allowed"))
	})

	r.router.Get("/healthz", healthz(r.service, r.health, r.logger))
	if r.metrics != nil {
		r.router.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	}
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(docInstance),
	))
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.createProduct)
		pr.Get("/", prHandler.listProducts)

		pr.Route("/{id}", func(item chi.Router) {
			item.Get("/", prHandler.getProduct)
			item.Put("/", prHandler.updateProduct)
			item.Delete("/", prHandler.deleteProduct)
			item.Post("/decreaseStock", prHandler.decreaseStock)
			item.Post("/increaseStock", prHandler.increaseStock)
			item.Get("/supplier", prHandler.getProductSupplier)
		})
	})
}

func registerSupplierRoutes(router chi.Router, spHandler *SupplierHandler) {
	router.Route("/suppliers", func(sp chi.Router) {
		sp.Post("/", spHandler.createSupplier)
		sp.Get("/", spHandler.listSuppliers)

		sp.Route("/{id}", func(item chi.Router) {
			item.Get("/", spHandler.getSupplier)
			item.Put("/", spHandler.updateSupplier)
			item.Delete("/", spHandler.deleteSupplier)
		})
	})
}
