package rest

import (
	"net/http"
	"time"

	"catalog-backend/application/catalog"
	"catalog-backend/interfaces/http/rest/docs"
	"catalog-backend/interfaces/http/rest/handlers"
	"catalog-backend/interfaces/http/rest/middleware"
	"catalog-backend/pkg/observability"
	"catalog-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	create        *catalog.CreateProductHandler
	queries       *catalog.ProductQueryHandler
	importFile    *catalog.ImportFileHandler
	collector     *observability.Collector
	allowedOrigin string
	createLimit   middleware.RateLimiter
	logger        *zap.Logger
}

// NewRouter creates a new router instance. A nil collector disables the
// request metrics and the /metrics route.
func NewRouter(
	create *catalog.CreateProductHandler,
	queries *catalog.ProductQueryHandler,
	importFile *catalog.ImportFileHandler,
	collector *observability.Collector,
	allowedOrigin string,
	logger *zap.Logger,
) *Router {
	return &Router{
		create:        create,
		queries:       queries,
		importFile:    importFile,
		collector:     collector,
		allowedOrigin: allowedOrigin,
		logger:        logger,
	}
}

// WithCreateRateLimit throttles POST /products per client to perMinute
// requests. Zero leaves creation unthrottled.
func (rt *Router) WithCreateRateLimit(perMinute int) *Router {
	if perMinute > 0 {
		rt.createLimit = middleware.NewSlidingWindowLimiter(perMinute, time.Minute)
	}
	return rt
}

// Setup configures all routes and middleware of the product service
func (rt *Router) Setup() *chi.Mux {
	router := rt.base()

	if rt.collector != nil {
		router.Handle("/metrics", rt.collector.Handler())
	}

	productHandler := handlers.NewProductHandler(rt.create, rt.queries, rt.logger)
	router.Route("/products", func(r chi.Router) {
		if rt.createLimit != nil {
			r.With(middleware.RateLimit(rt.createLimit, rt.logger)).Post("/", productHandler.CreateProduct)
		} else {
			r.Post("/", productHandler.CreateProduct)
		}
		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
	})

	rt.mountImport(router)
	return router
}

// SetupImport configures the upload service, which serves only /import
func (rt *Router) SetupImport() *chi.Mux {
	router := rt.base()
	rt.mountImport(router)
	return router
}

func (rt *Router) mountImport(router chi.Router) {
	importHandler := handlers.NewImportHandler(rt.importFile)
	router.Get("/import", importHandler.ImportProductsFile)
}

// base carries the middleware and operational routes both services share.
func (rt *Router) base() *chi.Mux {
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.CORS(rt.allowedOrigin))
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	if rt.collector != nil {
		router.Use(middleware.Metrics(rt.collector))
	}

	// Preflight
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{rt.allowedOrigin},
		AllowedMethods:   middleware.CORSMethods,
		AllowedHeaders:   middleware.CORSHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RenderMessage(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handlers.RenderMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/swagger/doc.json", rt.swaggerDoc)
	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	handlers.Render(w, catalog.Response{
		StatusCode: http.StatusOK,
		Body: map[string]string{
			"status":    "healthy",
			"timestamp": utils.NowRFC3339(),
		},
	})
}

func (rt *Router) swaggerDoc(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		rt.logger.Error("Failed to render API docs", zap.Error(err))
		handlers.RenderMessage(w, http.StatusInternalServerError, catalog.MsgInternal)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
