package http

import (
	_ "github.com/DRSN-tech/resale-backend/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/resale-backend/internal/cfg"
	"github.com/DRSN-tech/resale-backend/internal/usecase"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// UseCases: сценарии, которые обслуживает HTTP-слой.
type UseCases struct {
	Articles  usecase.ArticleUC
	Sales     usecase.SaleUC
	Stats     usecase.StatsUC
	Assistant usecase.AssistantUC
	Import    usecase.ImportUC
}

type Router struct {
	router        *chi.Mux
	cfg           *cfg.HTTPConfig
	maxUploadSize int64
	logger        logger.Logger
}

func NewRouter(router *chi.Mux, cfg *cfg.HTTPConfig, maxUploadSize int64, logger logger.Logger) *Router {
	return &Router{router: router, cfg: cfg, maxUploadSize: maxUploadSize, logger: logger}
}

func (r *Router) Init(uc UseCases) {
	r.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		metricsMiddleware,
		requestLogger(r.logger),
	)

	r.router.Get("/ping", ping)
	r.router.Handle("/metrics", promhttp.Handler())
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(r.cfg.PublicURL+"/swagger/doc.json"),
	))

	arHandler := NewArticleHandler(uc.Articles, r.maxUploadSize, r.logger)
	r.router.Get("/uploads/*", arHandler.serveImage)

	r.router.Route("/api", func(api chi.Router) {
		registerArticleRoutes(api, arHandler)
		registerSaleRoutes(api, NewSaleHandler(uc.Sales, r.logger))
		registerAssistantRoutes(api, NewAssistantHandler(uc.Assistant, r.maxUploadSize, r.logger))

		api.Get("/dashboard-stats", NewStatsHandler(uc.Stats, r.logger).dashboardStats)
		api.Post("/import-vinted", NewImportHandler(uc.Import, r.logger).importVinted)
	})
}

func registerArticleRoutes(router chi.Router, h *ArticleHandler) {
	router.Route("/articles", func(ar chi.Router) {
		ar.Get("/", h.listArticles)
		ar.Post("/", h.createArticle)
		ar.Route("/{id}", func(one chi.Router) {
			one.Get("/", h.getArticle)
			one.Put("/", h.updateArticle)
			one.Patch("/", h.updateArticle)
			one.Delete("/", h.deleteArticle)
			one.Post("/sold", h.markSold)
		})
	})
}

func registerSaleRoutes(router chi.Router, h *SaleHandler) {
	router.Route("/sales", func(sr chi.Router) {
		sr.Get("/", h.listSales)
		sr.Post("/", h.recordSale)
	})
}

func registerAssistantRoutes(router chi.Router, h *AssistantHandler) {
	router.Post("/generate-description", h.generateDescription)
	router.Post("/generate-responses", h.generateResponses)
	router.Get("/conversations", h.listConversations)
}
