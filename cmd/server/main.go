package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	accountingapp "github.com/ongcompta/backend/internal/application/accounting"
	advanceapp "github.com/ongcompta/backend/internal/application/advance"
	assetapp "github.com/ongcompta/backend/internal/application/asset"
	auditapp "github.com/ongcompta/backend/internal/application/audit"
	budgetapp "github.com/ongcompta/backend/internal/application/budget"
	financingapp "github.com/ongcompta/backend/internal/application/financing"
	ledgerapp "github.com/ongcompta/backend/internal/application/ledger"
	reportapp "github.com/ongcompta/backend/internal/application/report"
	"github.com/ongcompta/backend/internal/domain/audit"
	"github.com/ongcompta/backend/internal/infrastructure/config"
	"github.com/ongcompta/backend/internal/infrastructure/logger"
	"github.com/ongcompta/backend/internal/infrastructure/persistence"
	"github.com/ongcompta/backend/internal/infrastructure/storage"
	"github.com/ongcompta/backend/internal/interfaces/http/handler"
	"github.com/ongcompta/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ONG Compta backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Supporting-document storage on the local filesystem
	docStore, err := storage.NewFilesystemDocumentStore(
		cfg.Storage.DocumentsDir,
		storage.WithLogger(log),
	)
	if err != nil {
		log.Fatal("Failed to initialize document storage", zap.Error(err))
	}

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	journalRepo := persistence.NewGormJournalRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)
	rateRepo := persistence.NewGormExchangeRateRepository(db.DB)
	fiscalYearRepo := persistence.NewGormFiscalYearRepository(db.DB)
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	seqRepo := persistence.NewGormSequenceRepository(db.DB)
	docRepo := persistence.NewGormDocumentRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	donorRepo := persistence.NewGormDonorRepository(db.DB)
	categoryRepo := persistence.NewGormBudgetCategoryRepository(db.DB)
	advanceRepo := persistence.NewGormAdvanceRepository(db.DB)
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	financingRepo := persistence.NewGormFinancingRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	trail := audit.NewTrail(auditRepo)

	// Application services
	chartService := accountingapp.NewChartService(accountRepo, journalRepo, entryRepo, trail, txManager)
	fiscalYearService := accountingapp.NewFiscalYearService(fiscalYearRepo, entryRepo, trail, txManager, log)
	fxService := accountingapp.NewFxService(currencyRepo, rateRepo, trail, txManager)
	ledgerService := ledgerapp.NewLedgerService(entryRepo, seqRepo, accountRepo, journalRepo, fiscalYearRepo, trail, txManager, log)
	allocationService := ledgerapp.NewAllocationService(entryRepo, projectRepo, trail, txManager)
	documentService := ledgerapp.NewDocumentService(docRepo, entryRepo, docStore, trail, txManager)
	donorService := budgetapp.NewDonorService(donorRepo, categoryRepo, trail, txManager)
	projectService := budgetapp.NewProjectService(projectRepo, donorRepo, categoryRepo, entryRepo, trail, txManager)
	advanceService := advanceapp.NewAdvanceService(advanceRepo, seqRepo, ledgerService, trail, txManager)
	assetService := assetapp.NewAssetService(assetRepo, seqRepo, fiscalYearRepo, trail, txManager, log)
	financingService := financingapp.NewFinancingService(financingRepo, donorRepo, projectRepo, trail, txManager)
	reportService := reportapp.NewReportService(entryRepo, accountRepo, fiscalYearRepo, projectRepo, categoryRepo)
	exportService := reportapp.NewExportService(reportService)
	alertService := reportapp.NewAlertService(entryRepo, accountRepo, projectRepo, advanceRepo, reportService, log)
	auditService := auditapp.NewAuditService(auditRepo)

	// HTTP layer
	r := router.NewRouter(cfg, log)
	r.RegisterPublic(handler.NewSystemHandler(db))
	r.Register(
		handler.NewChartHandler(chartService),
		handler.NewFiscalYearHandler(fiscalYearService),
		handler.NewFxHandler(fxService),
		handler.NewLedgerHandler(ledgerService, allocationService),
		handler.NewDocumentHandler(documentService, cfg.Storage.MaxUploadMB<<20),
		handler.NewProjectHandler(projectService, donorService),
		handler.NewAdvanceHandler(advanceService),
		handler.NewAssetHandler(assetService),
		handler.NewFinancingHandler(financingService),
		handler.NewReportHandler(reportService, exportService, alertService),
		handler.NewAuditHandler(auditService),
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}
