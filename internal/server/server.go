package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/RecipeBOM_Go/internal/bom"
	"github.com/osse101/RecipeBOM_Go/internal/catalog"
	"github.com/osse101/RecipeBOM_Go/internal/handler"
	"github.com/osse101/RecipeBOM_Go/internal/logger"
	"github.com/osse101/RecipeBOM_Go/internal/metrics"
)

type Server struct {
	httpServer     *http.Server
	catalogService catalog.Service
	engine         *bom.Engine
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, catalogService catalog.Service, engine *bom.Engine) *Server {
	if apiKey == "" {
		slog.Warn(LogMsgAuthDisabled)
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(apiKey))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(catalogService))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/version", handler.HandleVersion())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route(APIPrefix, func(r chi.Router) {
		r.Use(middleware.Timeout(RequestTimeout))

		r.Route("/base-materials", func(r chi.Router) {
			r.Get("/", handler.HandleListBaseMaterials(catalogService))
			r.Post("/", handler.HandleCreateBaseMaterial(catalogService))
			r.Get("/{id}", handler.HandleGetBaseMaterial(catalogService))
			r.Put("/{id}", handler.HandleUpdateBaseMaterial(catalogService))
			r.Delete("/{id}", handler.HandleDeleteBaseMaterial(catalogService))
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", handler.HandleListMaterials(catalogService))
			r.Post("/", handler.HandleCreateMaterial(catalogService))
			r.Get("/{id}", handler.HandleGetMaterial(catalogService))
			r.Put("/{id}", handler.HandleUpdateMaterial(catalogService))
			r.Delete("/{id}", handler.HandleDeleteMaterial(catalogService))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", handler.HandleListProducts(catalogService))
			r.Post("/", handler.HandleCreateProduct(catalogService))
			r.Get("/{id}", handler.HandleGetProduct(catalogService))
			r.Put("/{id}", handler.HandleUpdateProduct(catalogService))
			r.Delete("/{id}", handler.HandleDeleteProduct(catalogService))
		})

		r.Route("/recipes/{kind}/{id}", func(r chi.Router) {
			r.Get("/", handler.HandleGetRecipe(catalogService))
			r.Put("/", handler.HandleSetRecipe(catalogService))
			r.Delete("/", handler.HandleClearRecipe(catalogService))
			r.Post("/ingredients", handler.HandleAddIngredient(catalogService))
		})

		r.Get("/dependents/{kind}/{id}", handler.HandleFindDependents(catalogService))
		r.Get("/search", handler.HandleSearch(catalogService))
		r.Get("/stats", handler.HandleStats(catalogService))
		r.Delete("/catalog", handler.HandleClearCatalog(catalogService))

		r.Route("/bom", func(r chi.Router) {
			r.Post("/calculate", handler.HandleCalculate(engine))
			r.Post("/batch", handler.HandleBatch(engine))
			r.Get("/tree/{kind}/{id}", handler.HandleTree(engine))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		catalogService: catalogService,
		engine:         engine,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isProbePath(path string) bool {
	return strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/readyz") ||
		strings.HasPrefix(path, "/metrics")
}

// loggingMiddleware tags the request context with a request id, reusing the
// caller's X-Request-ID when present, and logs start and completion
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isProbePath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called; a clean shutdown returns nil
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
