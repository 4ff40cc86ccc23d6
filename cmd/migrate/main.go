// Command migrate applies the GORM schema and optionally seeds the
// SYSCOHADA starter data (base chart of accounts, journals, XOF).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ongcompta/backend/internal/domain/accounting"
	"github.com/ongcompta/backend/internal/domain/shared"
	"github.com/ongcompta/backend/internal/infrastructure/config"
	"github.com/ongcompta/backend/internal/infrastructure/logger"
	"github.com/ongcompta/backend/internal/infrastructure/persistence"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Schema migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date")

	case "seed":
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Schema migration failed", zap.Error(err))
		}
		if err := seed(context.Background(), db, log); err != nil {
			log.Fatal("Seed failed", zap.Error(err))
		}
		log.Info("Seed data applied")

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// seed inserts the starter reference data. Every insert checks for an
// existing row first so the command can be re-run safely.
func seed(ctx context.Context, db *persistence.Database, log *zap.Logger) error {
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	journalRepo := persistence.NewGormJournalRepository(db.DB)
	currencyRepo := persistence.NewGormCurrencyRepository(db.DB)

	type seedAccount struct {
		number string
		label  string
		parent string
	}
	accounts := []seedAccount{
		{"10", "Fonds associatifs", ""},
		{"14", "Subventions d'investissement", ""},
		{"16", "Emprunts et dettes assimilées", ""},
		{"21", "Immobilisations incorporelles", ""},
		{"24", "Matériel", ""},
		{"244", "Matériel et mobilier", "24"},
		{"2441", "Matériel de bureau", "244"},
		{"28", "Amortissements", ""},
		{"40", "Fournisseurs", ""},
		{"42", "Personnel", ""},
		{"421", "Personnel, avances et acomptes", "42"},
		{"43", "Organismes sociaux", ""},
		{"44", "État et collectivités", ""},
		{"47", "Débiteurs et créditeurs divers", ""},
		{"60", "Achats et variations de stocks", ""},
		{"605", "Autres achats", "60"},
		{"61", "Transports", ""},
		{"62", "Services extérieurs A", ""},
		{"63", "Services extérieurs B", ""},
		{"64", "Impôts et taxes", ""},
		{"66", "Charges de personnel", ""},
		{"68", "Dotations aux amortissements", ""},
		{"70", "Ventes et prestations", ""},
		{"71", "Subventions d'exploitation", ""},
		{"75", "Autres produits", ""},
	}
	for _, sa := range accounts {
		exists, err := accountRepo.ExistsByNumber(ctx, sa.number)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		account, err := accounting.NewAccount(sa.number, sa.label, sa.parent)
		if err != nil {
			return fmt.Errorf("account %s: %w", sa.number, err)
		}
		if err := accountRepo.Save(ctx, account); err != nil {
			return fmt.Errorf("account %s: %w", sa.number, err)
		}
		log.Info("Seeded account", zap.String("number", sa.number), zap.String("label", sa.label))
	}

	type seedJournal struct {
		code string
		name string
		kind accounting.JournalKind
	}
	// Treasury journals are not seeded: they reference a treasury
	// account that only exists once the bank or cash account is
	// registered through the API.
	journals := []seedJournal{
		{"AC", "Journal des achats", accounting.JournalPurchases},
		{"VT", "Journal des ventes", accounting.JournalSales},
		{"OD", "Opérations diverses", accounting.JournalMisc},
	}
	for _, sj := range journals {
		exists, err := journalRepo.ExistsByCode(ctx, sj.code)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		journal, err := accounting.NewJournal(sj.code, sj.name, sj.kind, nil)
		if err != nil {
			return fmt.Errorf("journal %s: %w", sj.code, err)
		}
		if err := journalRepo.Save(ctx, journal); err != nil {
			return fmt.Errorf("journal %s: %w", sj.code, err)
		}
		log.Info("Seeded journal", zap.String("code", sj.code))
	}

	type seedCurrency struct {
		code   string
		name   string
		symbol string
		rate   decimal.Decimal
	}
	currencies := []seedCurrency{
		{"XOF", "Franc CFA (UEMOA)", "FCFA", decimal.NewFromInt(1)},
		{"EUR", "Euro", "€", decimal.RequireFromString("655.957")},
		{"USD", "Dollar américain", "$", decimal.RequireFromString("600")},
	}
	for _, sc := range currencies {
		_, err := currencyRepo.FindByCode(ctx, sc.code)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		currency, err := accounting.NewCurrency(sc.code, sc.name, sc.symbol, sc.rate)
		if err != nil {
			return fmt.Errorf("currency %s: %w", sc.code, err)
		}
		if err := currencyRepo.Save(ctx, currency); err != nil {
			return fmt.Errorf("currency %s: %w", sc.code, err)
		}
		log.Info("Seeded currency", zap.String("code", sc.code))
	}

	return nil
}

func printUsage() {
	fmt.Println(`ONG Compta database tool

Usage:
  migrate [flags] <command>

Commands:
  up      Apply the schema (GORM auto-migration)
  seed    Apply the schema, then insert the SYSCOHADA starter chart,
          the base journals and the reference currencies (idempotent)

Flags:
  -log-level string   Log level: debug, info, warn, error (default: info)

Configuration is read from config.toml and COMPTA_* environment
variables, the same way the server reads it.`)
}
