package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"market-dashboard/auth"
	"market-dashboard/config"
	"market-dashboard/handlers"
	"market-dashboard/middleware"
	"market-dashboard/mockdata"
	"market-dashboard/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid config: %v", err)
	}

	log := config.NewLogger(cfg)
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mock market data
	cat, err := mockdata.DefaultCatalog()
	if err != nil {
		log.Fatalf("Failed to load seed catalog: %v", err)
	}
	gen := mockdata.NewGenerator(cfg.MockSeed())
	market, err := mockdata.New(cat, gen, mockdata.DefaultDelays().Scale(cfg.Mock.LatencyScale), log)
	if err != nil {
		log.Fatalf("Failed to build market data: %v", err)
	}

	// Session store: Redis when configured, otherwise in memory with a sweeper.
	var store session.Store
	rdb, err := config.NewRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("Redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
		log.WithField("addr", cfg.Redis.Addr).Info("Using Redis session store")
	} else {
		mem := session.NewMemoryStore()
		janitor := session.NewJanitor(mem, log)
		if err := janitor.Register(cfg.Session.SweepCron); err != nil {
			log.Fatalf("Session janitor: %v", err)
		}
		janitor.Start()
		defer janitor.Stop()
		store = mem
		log.Info("Using in-memory session store")
	}

	accounts := auth.NewService(cfg.Auth.JWTSecret, store, cfg.AuthDelay(), log)
	if cfg.Auth.DemoPassword != "" {
		if _, err := accounts.Register(auth.SignupInput{
			FirstName: "Demo",
			LastName:  "User",
			Email:     cfg.Auth.DemoEmail,
			Password:  cfg.Auth.DemoPassword,
		}); err != nil {
			log.Fatalf("Failed to seed demo account: %v", err)
		}
		log.WithField("email", cfg.Auth.DemoEmail).Info("Demo account ready")
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(log))
	handlers.NewHandler(market, accounts, log).Register(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	log.Info("Stopped")
}
