package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/paylens/paylens-api/internal/auth"
	"github.com/paylens/paylens-api/internal/client/payrail"
	"github.com/paylens/paylens-api/internal/config"
	"github.com/paylens/paylens-api/internal/db"
	"github.com/paylens/paylens-api/internal/handlers"
	"github.com/paylens/paylens-api/internal/logger"
	"github.com/paylens/paylens-api/internal/services"
)

// Server wires configuration, clients, services and routes into one
// runnable HTTP server.
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	pool   *pgxpool.Pool
	http   *http.Server
}

// New builds the full server. A nil database pool is allowed; saved-chart
// routes then answer 503 while chart generation keeps working.
func New(cfg *config.Config, pool *pgxpool.Pool) *Server {
	payrailClient := payrail.NewClient(cfg.PayrailBaseURL,
		payrail.WithTimeout(cfg.PayrailTimeout))

	var store services.ChartStore
	if pool != nil {
		store = db.NewStore(pool)
	}

	chartService := services.NewChartService(store, payrailClient, logger.Log)
	assistantService := services.NewAssistantService(
		cfg.GeminiAPIKey, cfg.GeminiModel, chartService, logger.Log)

	chartHandler := handlers.NewChartHandler(chartService)
	recordHandler := handlers.NewRecordHandler(payrailClient)
	assistantHandler := handlers.NewAssistantHandler(assistantService)
	healthHandler := handlers.NewHealthHandler()

	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)

	if cfg.Stage == config.StageProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(configureCORS(cfg.AllowedOrigins))

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(authMiddleware.RequireAuth())
		{
			charts := protected.Group("/charts")
			{
				charts.POST("/generate", chartHandler.GenerateChart)
				charts.POST("/generate/sync", chartHandler.GenerateChartSync)

				charts.POST("/saved", chartHandler.SaveChart)
				charts.GET("/saved", chartHandler.ListSavedCharts)
				charts.GET("/saved/:chart_id", chartHandler.GetSavedChart)
				charts.DELETE("/saved/:chart_id", chartHandler.DeleteSavedChart)
				charts.POST("/saved/:chart_id/regenerate", chartHandler.RegenerateSavedChart)
			}

			protected.GET("/records/:resource", recordHandler.ListRecords)

			protected.POST("/assistant/chart", assistantHandler.AskChart)
		}
	}

	return &Server{
		cfg:    cfg,
		router: router,
		pool:   pool,
		http: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Port),
			Handler: router,
		},
	}
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	logger.Info("server starting", zap.String("port", s.cfg.Port), zap.String("stage", s.cfg.Stage))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}

// configureCORS returns CORS middleware for the dashboard frontend.
func configureCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	return cors.New(corsConfig)
}
