// Command ledgerctl runs maintenance tasks against the ledger database:
// applying migrations, listing accounts with their running totals, and
// reconciling those totals against the records behind them.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_ledger/internal/core/ports/services"
	"github.com/SscSPs/finance_ledger/internal/core/services"
	"github.com/SscSPs/finance_ledger/internal/dto"
	"github.com/SscSPs/finance_ledger/internal/platform/config"
	"github.com/SscSPs/finance_ledger/internal/platform/logging"
	"github.com/SscSPs/finance_ledger/internal/platform/metrics"
	"github.com/SscSPs/finance_ledger/internal/repositories/database/migrations"
	"github.com/SscSPs/finance_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/finance_ledger/internal/utils"
	"github.com/SscSPs/finance_ledger/pkg/database"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const usage = `usage: ledgerctl [flags] <command>

commands:
  migrate     apply pending schema migrations
  accounts    print every account with its balance and commitment
  reconcile   compare stored totals with their records (--repair to fix)

flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("ledgerctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	repair := fs.Bool("repair", false, "reconcile: overwrite drifted totals")

	v := viper.New()
	if err := config.BindFlags(v, fs); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	command := fs.Arg(0)

	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintln(stderr, "Failed to load config:", err)
		return 1
	}

	logger := logging.New(stderr, logging.Options{Level: cfg.LogLevel, JSON: cfg.IsProduction})
	slog.SetDefault(logger)
	ctx = logging.WithOperation(logging.WithLogger(ctx, logger), command)

	app, err := open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to open database", slog.String("driver", cfg.DatabaseDriver), slog.String("error", err.Error()))
		return 1
	}
	defer app.close()

	applied, err := migrations.Up(app.sqlDB, app.dialect)
	if err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return 1
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	rec := metrics.NewRecorder()
	svc := services.NewServiceContainer(cfg, app.repos, app.txManager, services.WithMetrics(rec))

	code := 0
	switch command {
	case "migrate":
		version, dirty, err := migrations.Version(app.sqlDB, app.dialect)
		if err != nil {
			logger.Error("Failed to read schema version", slog.String("error", err.Error()))
			return 1
		}
		fmt.Fprintf(stdout, "schema version %d (dirty=%t)\n", version, dirty)
	case "accounts":
		if err := printAccounts(ctx, svc, stdout); err != nil {
			logger.Error("Failed to list accounts", slog.String("error", err.Error()))
			return 1
		}
	case "reconcile":
		report, err := svc.Reconciliation.Reconcile(ctx, *repair)
		if err != nil {
			logger.Error("Reconciliation failed", slog.String("error", err.Error()))
			return 1
		}
		printReport(report, stdout)
		if len(report.Drifts) > 0 && !report.Repaired {
			code = 3
		}
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", command)
		fs.Usage()
		return 2
	}

	if err := rec.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Warn("Failed to write metrics", slog.String("error", err.Error()))
	}
	return code
}

// store bundles the handles one storage driver needs.
type store struct {
	dialect   string
	sqlDB     *sql.DB
	repos     portsrepo.RepositoryProvider
	txManager portsrepo.TransactionManager
	close     func()
}

func open(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, err
		}
		sqlDB, err := database.OpenPgxSQL(ctx, cfg.DatabaseURL)
		if err != nil {
			database.ClosePgxPool(pool)
			return nil, err
		}
		return &store{
			dialect:   migrations.Postgres,
			sqlDB:     sqlDB,
			repos:     pgsql.NewRepositoryProvider(pool),
			txManager: pgsql.NewTransactionManager(pool),
			close: func() {
				_ = sqlDB.Close()
				database.ClosePgxPool(pool)
			},
		}, nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &store{
			dialect:   migrations.SQLite,
			sqlDB:     db,
			repos:     sqlite.NewRepositoryProvider(db),
			txManager: sqlite.NewTransactionManager(db),
			close:     func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
}

func printAccounts(ctx context.Context, svc *portssvc.ServiceContainer, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCLOSED\tBALANCE\tCOMMITMENT")

	const pageSize = 100
	for offset := 0; ; offset += pageSize {
		page, err := svc.Account.ListAccounts(ctx, dto.ListAccountsParams{Limit: pageSize, Offset: offset})
		if err != nil {
			return err
		}
		for _, acc := range dto.ToListAccountResponse(page) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\t%s\n",
				acc.AccountID, acc.Name, acc.AccountType, acc.Closed,
				utils.FormatAmount(acc.Balance), utils.FormatAmount(acc.Commitment))
		}
		if len(page) < pageSize {
			break
		}
	}
	return tw.Flush()
}

func printReport(report *domain.ReconciliationReport, w io.Writer) {
	fmt.Fprintf(w, "checked %d account(s), %d drifted\n", report.CheckedAccounts, len(report.Drifts))
	if len(report.Drifts) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTORED BALANCE\tEXPECTED\tSTORED COMMITMENT\tEXPECTED")
	for _, d := range report.Drifts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.AccountID, d.AccountName,
			utils.FormatAmount(d.StoredBalance), utils.FormatAmount(d.ExpectedBalance),
			utils.FormatAmount(d.StoredCommitment), utils.FormatAmount(d.ExpectedCommitment))
	}
	_ = tw.Flush()
	if report.Repaired {
		fmt.Fprintln(w, "drifted totals were repaired")
	}
}
