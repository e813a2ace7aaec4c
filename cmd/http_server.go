package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/frahmantamala/sistema-extras/internal"
	"github.com/frahmantamala/sistema-extras/internal/auth"
	authPostgres "github.com/frahmantamala/sistema-extras/internal/auth/postgres"
	"github.com/frahmantamala/sistema-extras/internal/company"
	companyPostgres "github.com/frahmantamala/sistema-extras/internal/company/postgres"
	"github.com/frahmantamala/sistema-extras/internal/core/events"
	"github.com/frahmantamala/sistema-extras/internal/employee"
	employeePostgres "github.com/frahmantamala/sistema-extras/internal/employee/postgres"
	"github.com/frahmantamala/sistema-extras/internal/extra"
	extraPostgres "github.com/frahmantamala/sistema-extras/internal/extra/postgres"
	"github.com/frahmantamala/sistema-extras/internal/receipt"
	receiptPostgres "github.com/frahmantamala/sistema-extras/internal/receipt/postgres"
	"github.com/frahmantamala/sistema-extras/internal/report"
	"github.com/frahmantamala/sistema-extras/internal/transport"
	"github.com/frahmantamala/sistema-extras/internal/transport/rest"
	"github.com/frahmantamala/sistema-extras/internal/transport/swagger"
	"github.com/frahmantamala/sistema-extras/internal/user"
	userPostgres "github.com/frahmantamala/sistema-extras/internal/user/postgres"
	"github.com/frahmantamala/sistema-extras/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config      *internal.Config
	DB          *sqlx.DB
	Gorm        *gorm.DB
	Router      *chi.Mux
	EventBus    *events.EventBus
	ReceiptPool *receipt.Pool
	Logger      *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("server failed to start", "error", err)
			deps.close()
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Error("server shutdown error", "error", err)
	}
	// handlers may still be enqueueing receipts until the bus drains
	deps.EventBus.Wait()
	if err := deps.ReceiptPool.Stop(ctx); err != nil {
		deps.Logger.Warn("receipt workers did not drain in time", "error", err)
	}
	deps.close()

	deps.Logger.Info("server stopped")
}

func (d *Dependencies) close() {
	if err := d.DB.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.LoggerWrapper()

	db, err := initDB(ctx, config.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	deps := &Dependencies{
		Config:   config,
		DB:       db,
		Gorm:     gormDB,
		Router:   chi.NewRouter(),
		EventBus: events.NewEventBus(log),
		Logger:   log,
	}
	deps.wire()

	if _, err := swagger.Load(ctx, config.Server.OpenAPIPath); err != nil {
		log.Warn("API document failed validation, swagger UI may be incomplete", "error", err)
	}
	return deps, nil
}

// wire builds every repository, service and handler and mounts the routes.
func (d *Dependencies) wire() {
	cfg := d.Config
	base := transport.NewBaseHandler(d.Logger)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(d.Gorm), tokens, cfg.Security.BCryptCost, d.Logger)
	userService := user.NewService(userPostgres.NewUserRepository(d.Gorm), cfg.Security.BCryptCost, d.Logger)
	companyService := company.NewService(companyPostgres.NewCompanyRepository(d.Gorm), d.Logger)
	employeeService := employee.NewService(employeePostgres.NewEmployeeRepository(d.Gorm), d.Logger)
	extraService := extra.NewService(extraPostgres.NewExtraRepository(d.Gorm), d.EventBus, d.Logger)
	receiptService := newReceiptService(d.Gorm, cfg.Receipt, d.Logger)
	reportService := report.NewService(extraService, employeeService, companyService, d.Logger)

	d.ReceiptPool = receipt.NewPool(generateJob(receiptService), cfg.Receipt.Workers, cfg.Receipt.QueueSize, d.Logger)
	d.ReceiptPool.Start()
	receipt.NewEventHandler(d.ReceiptPool, receiptService, d.Logger).RegisterEventHandlers(d.EventBus)

	rest.RegisterAllRoutes(d.Router, d.DB, rest.Handlers{
		Auth:     auth.NewHandler(base, authService),
		User:     user.NewHandler(base, userService),
		Company:  company.NewHandler(base, companyService),
		Employee: employee.NewHandler(base, employeeService),
		Extra:    extra.NewHandler(base, extraService),
		Receipt:  receipt.NewHandler(base, receiptService),
		Report:   report.NewHandler(base, reportService),
	}, rest.Options{
		AllowedOrigins: cfg.Server.Origins(),
		OpenAPIPath:    cfg.Server.OpenAPIPath,
		ReceiptQueue:   d.ReceiptPool,
	}, d.Logger)
}

func newReceiptService(db *gorm.DB, cfg internal.ReceiptConfig, log *slog.Logger) *receipt.Service {
	return receipt.NewService(receiptPostgres.NewReceiptRepository(db), receipt.NewPDFRenderer(cfg.ApproverName), log)
}

func generateJob(service *receipt.Service) receipt.ProcessFunc {
	return func(ctx context.Context, job receipt.Job) error {
		_, err := service.Generate(ctx, job.ExtraID)
		return err
	}
}

// initDB connects with exponential backoff so the server can start before
// the database container is ready.
func initDB(ctx context.Context, cfg internal.DatabaseConfig, log *slog.Logger) (*sqlx.DB, error) {
	const driver = "pgx"

	tries := cfg.ConnectRetries
	if tries < 1 {
		tries = 1
	}

	dbConn, err := backoff.Retry(ctx, func() (*sqlx.DB, error) {
		return sqlx.ConnectContext(ctx, driver, cfg.Source)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(tries)),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn("database not reachable, retrying", "error", err, "retry_in", next)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return dbConn, nil
}

// initGorm shares the sqlx pool. Error translation stays off so pgerr can
// still read constraint names from the raw driver errors.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}
