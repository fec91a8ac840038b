package http

import (
	_ "github.com/DRSN-tech/autovarka/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/autovarka/internal/locale"
	"github.com/DRSN-tech/autovarka/pkg/logger"
	"github.com/DRSN-tech/autovarka/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// handler — общая часть всех обработчиков.
type handler struct {
	logger logger.Logger
}

// Handlers — обработчики API, собранные в app.
type Handlers struct {
	Orders   *OrderHandler
	Products *ProductHandler
	Auth     *AuthHandler
	Settings *SettingsHandler
	Contact  *ContactHandler
	Images   *ImageHandler
	Sitemap  *SitemapHandler
}

type Router struct {
	router  *chi.Mux
	metrics *metrics.ServerMetrics
	logger  logger.Logger
}

func NewRouter(router *chi.Mux, metrics *metrics.ServerMetrics, logger logger.Logger) *Router {
	return &Router{router: router, metrics: metrics, logger: logger}
}

func (r *Router) Init(h *Handlers) {
	r.router.Use(metricsMiddleware(r.metrics))
	r.router.Use(middleware.Recoverer)
	r.router.Use(locale.Middleware)

	r.router.Handle("/metrics", r.metrics.Handler())
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.router.Get("/sitemap.xml", h.Sitemap.sitemap)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerOrderRoutes(v1, h.Orders, h.Auth)
		registerProductRoutes(v1, h.Products)
		registerAuthRoutes(v1, h.Auth)
		registerSettingsRoutes(v1, h.Settings, h.Auth)
		v1.Post("/contact", h.Contact.submit)

		v1.Route("/admin", func(admin chi.Router) {
			admin.Use(h.Auth.RequireAdmin)
			admin.Post("/products", h.Products.createProduct)
			admin.Put("/products/{id}", h.Products.updateProduct)
			admin.Delete("/products/{id}", h.Products.deleteProduct)
			admin.Post("/images", h.Images.uploadImage)
			admin.Delete("/images", h.Images.deleteImage)
		})
	})
}

func registerOrderRoutes(router chi.Router, orders *OrderHandler, auth *AuthHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Post("/", orders.createOrder)

		or.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin)
			admin.Get("/", orders.listOrders)
			admin.Patch("/", orders.updateOrder)
			admin.Delete("/", orders.deleteOrder)
		})
	})
}

func registerProductRoutes(router chi.Router, products *ProductHandler) {
	router.Get("/products", products.listProducts)
	router.Get("/products/{id}", products.getProduct)
	router.Get("/catalog", products.catalog)
}

func registerAuthRoutes(router chi.Router, auth *AuthHandler) {
	router.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", auth.login)
		ar.Post("/logout", auth.logout)
		ar.Get("/session", auth.session)
	})
}

func registerSettingsRoutes(router chi.Router, settings *SettingsHandler, auth *AuthHandler) {
	router.Route("/settings", func(sr chi.Router) {
		sr.Get("/video", settings.getVideo)
		sr.Get("/analytics", settings.getAnalytics)

		sr.Group(func(admin chi.Router) {
			admin.Use(auth.RequireAdmin)
			admin.Post("/video", settings.saveVideo)
			admin.Post("/analytics", settings.saveAnalytics)
		})
	})
}
