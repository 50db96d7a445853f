package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"source-registry-service/internal/adapters/primary/http/handlers"
	"source-registry-service/internal/adapters/primary/http/middleware"
	"source-registry-service/internal/adapters/primary/http/web"
	"source-registry-service/internal/adapters/secondary/postgres"
	"source-registry-service/internal/core/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web UI",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	pool, err := openPool(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	cache := newCache(cfg)

	// Secondary Adapters (Output Ports - Repositories)
	artifactRepo := postgres.NewArtifactRepository(pool)
	refRepo := postgres.NewRefRepository(pool)
	sbomRepo := postgres.NewSbomRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	// Core Services (Application Layer)
	artifactSvc := services.NewArtifactService(artifactRepo, refRepo, sbomRepo)
	sbomSvc := services.NewSbomService(sbomRepo)
	refSvc := services.NewRefService(refRepo, cache)
	statsSvc := services.NewStatsService(statsRepo, cache)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(artifactSvc, sbomSvc, refSvc, statsSvc)

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())
	router.SetHTMLTemplate(tmpl)
	h.RegisterRoutes(router)

	// Health check with DB ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
