package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/spaceminer/spaceminer-server/internal/catalog"
	"github.com/spaceminer/spaceminer-server/internal/database"
	"github.com/spaceminer/spaceminer-server/internal/expedition"
	"github.com/spaceminer/spaceminer-server/internal/handler"
	"github.com/spaceminer/spaceminer-server/internal/leaderboard"
	"github.com/spaceminer/spaceminer-server/internal/metrics"
	"github.com/spaceminer/spaceminer-server/internal/sse"
	"github.com/spaceminer/spaceminer-server/internal/upgrade"
	"github.com/spaceminer/spaceminer-server/internal/user"
)

// Services are the application services exposed over HTTP
type Services struct {
	Expedition  expedition.Service
	Catalog     catalog.Service
	User        user.Service
	Leaderboard leaderboard.Service
	Upgrade     upgrade.Service
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer builds the router and HTTP server
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services, sseHub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Outermost first. CORS answers preflights before the API key is checked.
	detector := NewSuspiciousActivityDetector()
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware())
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(svcs.User))
			r.Get("/profile", handler.HandleGetProfile(svcs.User))
		})

		catalogHandler := handler.NewCatalogHandler(svcs.Catalog)
		r.Route("/planets", func(r chi.Router) {
			r.Get("/", catalogHandler.HandleListPlanets)
			r.Get("/search", catalogHandler.HandleSearchPlanets)
			r.Get("/{id}", catalogHandler.HandleGetPlanet)
			r.Get("/{id}/dangers", catalogHandler.HandleGetPlanetDangers)
		})

		expeditionHandler := handler.NewExpeditionHandler(svcs.Expedition, svcs.User)
		r.Route("/expeditions", func(r chi.Router) {
			r.Post("/start", expeditionHandler.HandleStart)
			r.Get("/active", expeditionHandler.HandleGetActive)
			r.Post("/mine", expeditionHandler.HandleMine)
			r.Post("/explore", expeditionHandler.HandleExplore)
			r.Post("/check-danger", expeditionHandler.HandleCheckDanger)
			r.Post("/return", expeditionHandler.HandleReturn)
			r.Post("/time-up", expeditionHandler.HandleTimeUp)
			r.Get("/history", expeditionHandler.HandleHistory)
		})

		r.Get("/leaderboard", handler.HandleGetLeaderboard(svcs.Leaderboard, svcs.User))

		adminHandler := handler.NewAdminHandler(svcs.Upgrade, svcs.User, svcs.Catalog)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/upgrades", adminHandler.HandleListUpgrades)
			r.Post("/upgrades/grant", adminHandler.HandleGrantUpgrade)
			r.Get("/cache/stats", adminHandler.HandleGetCacheStats)
			r.Post("/catalog/invalidate", adminHandler.HandleInvalidateCatalog)
		})

		if sseHub != nil {
			r.Get("/events", sse.Handler(sseHub, handler.SSEUserResolver(svcs.User)))
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Stop is called; http.ErrServerClosed is not an error
func (s *Server) Start() error {
	slog.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
