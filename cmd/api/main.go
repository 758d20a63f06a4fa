// main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/api"
	"github.com/Marga-Ghale/flatmeals-backend/internal/api/handlers"
	"github.com/Marga-Ghale/flatmeals-backend/internal/config"
	"github.com/Marga-Ghale/flatmeals-backend/internal/cron"
	"github.com/Marga-Ghale/flatmeals-backend/internal/db"
	"github.com/Marga-Ghale/flatmeals-backend/internal/email"
	"github.com/Marga-Ghale/flatmeals-backend/internal/logging"
	"github.com/Marga-Ghale/flatmeals-backend/internal/notification"
	"github.com/Marga-Ghale/flatmeals-backend/internal/planner"
	"github.com/Marga-Ghale/flatmeals-backend/internal/repository"
	"github.com/Marga-Ghale/flatmeals-backend/internal/seed"
	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/Marga-Ghale/flatmeals-backend/internal/socket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	envErr := godotenv.Load()

	// ============================================
	// Load configuration
	// ============================================
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		slog.Info("No .env file found, using environment variables")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Open Store
	// ============================================
	store, err := db.Open(cfg)
	if err != nil {
		slog.Error("Failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Store ready", "backend", cfg.StoreBackend)

	repos := repository.NewRepositories(store)

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	defer hub.Stop()
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub)

	// ============================================
	// Initialize Cook Delivery
	// ============================================
	var sink notification.Sink = notification.LogSink{}
	if cfg.SMTPHost != "" && len(cfg.CookEmails) > 0 {
		emailSvc := email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		})
		sink = email.NewCookSink(emailSvc, cfg.CookEmails)
		slog.Info("📧 Cook notifications will be emailed", "recipients", len(cfg.CookEmails))
	} else {
		slog.Info("⚠️  Email not configured, cook notifications are logged only")
	}

	// ============================================
	// Initialize All Services
	// ============================================
	rules := planner.Rules{
		NonVegKeywords: cfg.Menu.NonVegKeywords,
		DefaultLunch:   cfg.Menu.DefaultLunch,
		DefaultDinner:  cfg.Menu.DefaultDinner,
	}
	services := service.NewServices(&service.ServiceDeps{
		Repos:     repos,
		Generator: planner.NewSeededGenerator(rules, cfg.PlanSeed),
		Rules:     rules,
		Deadlines: service.Deadlines{
			Lunch:  cfg.Menu.LunchDeadline,
			Dinner: cfg.Menu.DinnerDeadline,
		},
		NotifSvc:    notification.NewService(repos.NotificationRepo, sink),
		Broadcaster: broadcaster,
	})
	slog.Info("All services initialized")

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.SeedDemo && cfg.Environment != "production" {
		if _, err := seed.SeedDemo(context.Background(), services); err != nil {
			slog.Warn("[Seed] Failed to seed demo flat", "error", err)
		}
	}

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	if cfg.AutoNotifyCook {
		scheduler := cron.NewScheduler(repos.GroupRepo, services.Cook)
		if err := scheduler.Start(); err != nil {
			slog.Error("Failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer scheduler.Stop()
	}

	// ============================================
	// Create Gin Router
	// ============================================
	r, err := api.NewRouter(cfg, api.RouterDeps{
		Handlers:     handlers.NewHandlers(services),
		WebSocket:    wsHandler,
		StoreBackend: cfg.StoreBackend,
	})
	if err != nil {
		slog.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exited")
}
