package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parcelworks/lotscope/internal/acquisition"
	"github.com/parcelworks/lotscope/internal/config"
	"github.com/parcelworks/lotscope/internal/handlers"
	"github.com/parcelworks/lotscope/internal/middleware"
	"github.com/parcelworks/lotscope/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := repository.NewParcelRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to prepare schema: %v", err)
	}
	cancel()

	parcels := acquisition.NewClient(cfg)
	router := setupRouter(cfg, parcels, repo)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func setupRouter(cfg *config.Config, parcels *acquisition.Client, repo *repository.ParcelRepository) *gin.Engine {
	router := gin.Default()

	// Middleware
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimit(cfg))

	// Public routes
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Protected routes
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg))
	{
		analysisHandler := handlers.NewAnalysisHandler(cfg, parcels, repo)
		api.POST("/analyze", analysisHandler.Analyze)
		api.GET("/parcels/:apn", analysisHandler.GetParcel)
		api.GET("/parcels/:apn/analysis", analysisHandler.GetParcelAnalysis)
		api.GET("/rules", analysisHandler.Rules)
	}

	return router
}
