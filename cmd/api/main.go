package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/method3fitness/pike13-ghl-sync/internal/config"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/database"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/http/handlers"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/http/middleware"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/integration/gohighlevel"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/integration/pike13"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/mail"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/queue"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/token"
	"github.com/method3fitness/pike13-ghl-sync/internal/infra/worker"
	"github.com/method3fitness/pike13-ghl-sync/internal/usecase"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	// Fatal by design: no token means no report, and no report means there
	// is nothing to reconcile against.
	tokenStore := token.NewStore(cfg.Pike13.TokenFile)
	accessToken, err := tokenStore.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	db, err := database.NewDBConnection(cfg.DB.URL)
	if err != nil {
		log.Printf("⚠️ Database unavailable, run history disabled: %v", err)
		db = nil
	} else {
		defer db.Close()
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.User, cfg.RabbitMQ.Pass, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	if err != nil {
		log.Printf("⚠️ RabbitMQ unavailable, winback outreach disabled: %v", err)
		rabbitMQ = nil
	} else {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
	}

	// 1. Integration clients
	reportClient := pike13.NewClient(cfg.Pike13.BaseURL, accessToken)
	crmClient := gohighlevel.NewClient(cfg.GHL.BaseURL, cfg.GHL.APIKey, cfg.GHL.LocationID)

	// 2. Outreach pipeline (producer + worker + mailer)
	var producer usecase.QueueProducerInterface
	if rabbitMQ != nil {
		mailSender := mail.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From)
		winbackWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go winbackWorker.Start(queue.QueueName)

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	}

	// 3. Run history
	var runRepo usecase.SyncRunRepositoryInterface
	var runHistory handlers.RunHistory
	if db != nil {
		repo := database.NewSyncRunRepository(db)
		runRepo = repo
		runHistory = repo
	}

	// 4. UseCase
	syncUC := usecase.NewSyncInactiveClientsUseCase(reportClient, crmClient, producer, runRepo, cfg.Sync)

	// 5. Scheduled trigger (daily, 8 AM ET by default)
	scheduler := worker.NewSyncScheduler(syncUC, cfg.Sync.Schedule)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("❌ Scheduler error: %v", err)
	}
	defer scheduler.Stop()

	// 6. Handlers + Router
	syncHandler := handlers.NewSyncHandler(syncUC, runHistory)
	var healthHandler *handlers.HealthHandler
	if rabbitMQ != nil {
		healthHandler = handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg.GHL.APIKey)
	} else {
		healthHandler = handlers.NewHealthHandler(db, nil, cfg.GHL.APIKey)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/sync", syncHandler.Handle)
	r.Get("/sync/last", syncHandler.HandleLastRun)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("🚀 Pike13 → GHL sync running on %s (dry_run=%v)", addr, cfg.Sync.DryRun)
	http.ListenAndServe(addr, r)
}
