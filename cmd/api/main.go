package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/agrovista/agrodash/internal/config"
	"github.com/agrovista/agrodash/internal/database"
	"github.com/agrovista/agrodash/internal/fx"
	"github.com/agrovista/agrodash/internal/handler"
	"github.com/agrovista/agrodash/internal/middleware"
	"github.com/agrovista/agrodash/internal/repository"
	"github.com/agrovista/agrodash/internal/service"
	"github.com/agrovista/agrodash/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database and run migrations
	db, err := database.Connect(cfg.DBConn, "migrations")
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize layers
	repo := repository.NewRepository(db)
	fxClient := fx.NewClient(cfg.FXAPIURL, logger)
	converter := fx.NewConverter(fxClient, fx.NewCache(cfg.FXCacheTTL), logger)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, converter, mailer, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Warm the rate cache; startup proceeds on failure, conversions degrade
	// to the fallback table until the refresh job succeeds.
	svc.RefreshRates()

	// Scheduled jobs: periodic rate refresh and the morning alert scan
	c := cron.New()
	if _, err := c.AddFunc("@every 5m", svc.RefreshRates); err != nil {
		logger.Fatalf("Failed to schedule rate refresh: %v", err)
	}
	if _, err := c.AddFunc("0 7 * * *", svc.ScanAndAlert); err != nil {
		logger.Fatalf("Failed to schedule alert scan: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/rates", h.Rates).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/contracts", h.CreateContract).Methods("POST")
	authRouter.HandleFunc("/contracts/{id:[0-9]+}/status", h.UpdateContractStatus).Methods("PATCH")
	authRouter.HandleFunc("/contracts/{id:[0-9]+}/covenants", h.ReplaceCovenants).Methods("PUT")
	authRouter.HandleFunc("/debt/position", h.DebtPosition).Methods("GET")
	authRouter.HandleFunc("/debt/covenants", h.Covenants).Methods("GET")
	authRouter.HandleFunc("/debt/scenario", h.Scenario).Methods("POST")
	authRouter.HandleFunc("/cashflow/report", h.CashFlowReport).Methods("GET")
	authRouter.HandleFunc("/imports/payments", h.ImportPayments).Methods("POST")
	authRouter.HandleFunc("/exports", h.Export).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
