package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/kraftory/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/kraftory/go-backend/internal/cfg"
	"github.com/kraftory/go-backend/internal/usecase"
	"github.com/kraftory/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	cfg    *cfg.Config
	logger logger.Logger
}

func NewRouter(router *chi.Mux, cfg *cfg.Config, logger logger.Logger) *Router {
	return &Router{router: router, cfg: cfg, logger: logger}
}

func (r *Router) Init(prUC usecase.ProductUC, orUC usecase.OrderUC, securityRepo usecase.SecurityRepository) {
	r.router.Use(SecurityHeaders)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(prUC, r.logger)
		orHandler := NewOrderHandler(orUC, securityRepo, r.logger)
		adminHandler := NewAdminHandler(prUC, orUC, r.logger)

		registerPublicRoutes(v1, prHandler, orHandler, securityRepo, r.cfg, r.logger)
		registerAdminRoutes(v1, adminHandler, r.cfg, r.logger)
	})
}

func registerPublicRoutes(router chi.Router, prHandler *ProductHandler, orHandler *OrderHandler,
	securityRepo usecase.SecurityRepository, cfg *cfg.Config, logger logger.Logger) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Get("/{id}", prHandler.getProduct)
	})

	router.Get("/security/csrf", orHandler.issueCSRFToken)

	router.Route("/orders", func(or chi.Router) {
		or.Use(RateLimit(securityRepo, cfg.Security, logger))
		or.Use(VerifyCSRF(securityRepo, cfg.Security, logger))
		or.Post("/", orHandler.createOrder)
	})
}

func registerAdminRoutes(router chi.Router, adminHandler *AdminHandler, cfg *cfg.Config, logger logger.Logger) {
	router.Route("/admin", func(admin chi.Router) {
		admin.Use(BasicAuth(cfg.Admin, logger))

		admin.Route("/products", func(pr chi.Router) {
			pr.Post("/", adminHandler.createProduct)
			pr.Post("/images", adminHandler.uploadProductImages)
			pr.Put("/{id}", adminHandler.updateProduct)
			pr.Delete("/{id}", adminHandler.deleteProduct)
		})

		admin.Route("/orders", func(or chi.Router) {
			or.Get("/", adminHandler.listOrders)
			or.Get("/{id}/items", adminHandler.getOrderItems)
			or.Patch("/{id}/status", adminHandler.updateOrderStatus)
		})
	})
}
