package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finanzas-app/finanzas-service/internal/config"
	"github.com/finanzas-app/finanzas-service/internal/handler"
	"github.com/finanzas-app/finanzas-service/internal/integrations/rates"
	"github.com/finanzas-app/finanzas-service/internal/middleware"
	"github.com/finanzas-app/finanzas-service/internal/repository"
	"github.com/finanzas-app/finanzas-service/internal/service"
	"github.com/finanzas-app/finanzas-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	var mailer service.ReminderMailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, cfg, mailer)
	ratesClient := rates.NewClient(cfg, logger)
	h := handler.NewHandler(svc, ratesClient, logger)

	// Periodic due-service evaluation
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ClockCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		count, err := svc.EvaluateAllDueServices(ctx)
		if err != nil {
			logger.Errorf("Due-service evaluation failed: %v", err)
			return
		}
		logger.Infof("Due-service evaluation created %d notifications", count)
	}); err != nil {
		logger.Fatalf("Failed to schedule due-service evaluation: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Logging(logger))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Auth(cfg))

	authRouter.HandleFunc("/institutions", h.CreateInstitution).Methods("POST")
	authRouter.HandleFunc("/institutions", h.ListInstitutions).Methods("GET")
	authRouter.HandleFunc("/institutions/{id}", h.DeleteInstitution).Methods("DELETE")

	authRouter.HandleFunc("/products", h.CreateProduct).Methods("POST")
	authRouter.HandleFunc("/products", h.ListProducts).Methods("GET")
	authRouter.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	authRouter.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")

	authRouter.HandleFunc("/currencies", h.ListCurrencies).Methods("GET")
	authRouter.HandleFunc("/currencies", h.CreateCurrency).Methods("POST")

	authRouter.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	authRouter.HandleFunc("/categories", h.ListCategories).Methods("GET")
	authRouter.HandleFunc("/categories/{id}", h.DeleteCategory).Methods("DELETE")

	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions/product/{id}", h.ListProductTransactions).Methods("GET")

	authRouter.HandleFunc("/credits", h.CreateCredit).Methods("POST")
	authRouter.HandleFunc("/credits/product/{id}", h.ListProductCredits).Methods("GET")
	authRouter.HandleFunc("/credits/{id}/installments", h.ListCreditInstallments).Methods("GET")
	authRouter.HandleFunc("/installments/pending", h.ListPendingInstallments).Methods("GET")
	authRouter.HandleFunc("/installments/{id}/pay", h.PayInstallment).Methods("POST")

	authRouter.HandleFunc("/services", h.CreateService).Methods("POST")
	authRouter.HandleFunc("/services", h.ListServices).Methods("GET")
	authRouter.HandleFunc("/services/upcoming", h.ListUpcomingServices).Methods("GET")
	authRouter.HandleFunc("/services/{id}", h.GetService).Methods("GET")
	authRouter.HandleFunc("/services/{id}", h.UpdateService).Methods("PUT")
	authRouter.HandleFunc("/services/{id}", h.DeleteService).Methods("DELETE")

	authRouter.HandleFunc("/notifications", h.CreateNotification).Methods("POST")
	authRouter.HandleFunc("/notifications", h.ListNotifications).Methods("GET")
	authRouter.HandleFunc("/notifications/count", h.CountUnread).Methods("GET")
	authRouter.HandleFunc("/notifications/read-all", h.MarkAllNotificationsRead).Methods("PUT")
	authRouter.HandleFunc("/notifications/evaluate", h.EvaluateDueServices).Methods("POST")
	authRouter.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods("PUT")
	authRouter.HandleFunc("/notifications/{id}", h.DeleteNotification).Methods("DELETE")

	authRouter.HandleFunc("/dashboard/summary", h.DashboardSummary).Methods("GET")
	authRouter.HandleFunc("/exchange-rates", h.ExchangeRates).Methods("GET")

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
