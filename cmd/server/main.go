package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ct-price-predictor/internal/adapters/primary/http/handlers"
	"ct-price-predictor/internal/adapters/primary/http/middleware"
	"ct-price-predictor/internal/adapters/secondary/artifact"
	"ct-price-predictor/internal/adapters/secondary/drive"
	"ct-price-predictor/internal/config"
	"ct-price-predictor/internal/core/domain"
	"ct-price-predictor/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Model table: built-in ids, env overrides, then the optional watched file.
	models := services.NewModelTable(modelOverrides(cfg.Models, nil))
	if cfg.Models.File != "" {
		watcher, mf, err := config.OpenModelFile(cfg.Models.File)
		if err != nil {
			log.Fatalf("open model config: %v", err)
		}
		models.Replace(modelOverrides(cfg.Models, mf))
		watcher.Watch(func(mf *config.ModelFile) {
			models.Replace(modelOverrides(cfg.Models, mf))
			log.WithField("file", cfg.Models.File).Info("model table reloaded")
		}, func(err error) {
			log.WithError(err).Error("model table reload failed")
		})
		log.WithField("file", cfg.Models.File).Info("watching model config")
	}

	// Secondary adapters
	retriever := drive.NewClient(&cfg.Drive)
	defer retriever.Purge()

	loader, err := artifact.NewLoader()
	if err != nil {
		log.Fatalf("init artifact loader: %v", err)
	}

	// Core
	predictionSvc := services.NewPredictionService(models, retriever, loader)

	// Primary adapter
	h := handlers.New(predictionSvc)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	h.RegisterPages(router)
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)

	router.GET("/healthz", func(c *gin.Context) {
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
		log.Errorf("server forced shutdown: %v", err)
		return
	}

	log.Info("server stopped")
}

func modelOverrides(cfg config.ModelsConfig, mf *config.ModelFile) map[domain.ModelChoice]string {
	rf, xgb := cfg.ModelIDs(mf)
	return map[domain.ModelChoice]string{
		domain.ModelRandomForest: rf,
		domain.ModelXGBoost:      xgb,
	}
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
