package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bellapacxx/jetlag-backend/config"
	"github.com/bellapacxx/jetlag-backend/controllers"
	"github.com/bellapacxx/jetlag-backend/game"
	"github.com/bellapacxx/jetlag-backend/routes"
	"github.com/bellapacxx/jetlag-backend/services"
	"github.com/bellapacxx/jetlag-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg *config.Config, svc *services.GameService) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(controllers.RequestID())
	r.Use(logger.Middleware())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, svc, cfg.JWTSecret)
	return r
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogEncoding); err != nil {
		logger.Errorf("[FATAL] invalid LOG_LEVEL: %v", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := config.SetupDatabase(cfg.DatabaseURL)
	if err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}

	cards, err := services.ReadCardsFile(cfg.CardsFile)
	if err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}
	if _, err := services.SeedCatalog(db, cards); err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}
	catalog, err := services.LoadCatalog(db)
	if err != nil {
		logger.Errorf("[FATAL] %v", err)
		os.Exit(1)
	}

	events := services.NopPublisher()
	if cfg.NATSURL != "" {
		pub, err := services.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			logger.Errorf("[FATAL] %v", err)
			os.Exit(1)
		}
		events = pub
	}
	defer events.Close()

	svc := services.NewGameService(db, catalog, game.NewSampler(catalog, newRand(cfg.RandSeed)), services.Options{
		Events:            events,
		DefaultDifficulty: cfg.DefaultDifficulty,
	})

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: setupRouter(cfg, svc),
	}

	go func() {
		logger.Infof("🚀 Jet Lag backend starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("[FATAL] Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
