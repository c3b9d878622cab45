package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallery-admin/config"
	"gallery-admin/database"
	authapi "gallery-admin/internal/api/auth"
	routes "gallery-admin/internal/app/http"
	"gallery-admin/internal/app/http/middleware"
	"gallery-admin/internal/domain/listing"
	"gallery-admin/internal/infra/jsonstore"
	"gallery-admin/internal/store"
	"gallery-admin/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	if !cfg.DotEnvLoaded {
		zl.Info("no .env file found, using process environment")
	}

	stores, err := openStores(cfg, zl)
	if err != nil {
		zl.Fatal("open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}

	opts := listing.DefaultOptions()
	opts.DefaultLimit = cfg.DefaultPageLimit
	if cfg.RegionsFile != "" {
		regions, err := config.LoadRegions(cfg.RegionsFile)
		if err != nil {
			zl.Fatal("load regions", zap.Error(err))
		}
		opts.Regions = listing.Regions(regions).Normalized()
	}

	var google *authapi.Google
	if cfg.Google.Enabled() {
		google = authapi.NewGoogle(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL, cfg.Google.FrontendRedirect)
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(zl))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: cfg.CORSOrigin != "*",
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Server{
		Stores:          stores,
		Tokens:          authapi.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		Google:          google,
		Listing:         opts,
		ProtectedUserID: cfg.ProtectedUserID,
		Log:             zl,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
	}
}

func openStores(cfg *config.Config, zl *zap.Logger) (store.Stores, error) {
	if cfg.StoreDriver == config.DriverPostgres {
		db, err := database.Open(cfg.DBURL, zl)
		if err != nil {
			return store.Stores{}, err
		}
		return database.Stores(db), nil
	}
	return jsonstore.Open(cfg.DataDir, zl), nil
}
