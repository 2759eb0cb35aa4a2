package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/obsbank/obs_backend/internal/core/ports/services"
	"github.com/obsbank/obs_backend/internal/core/services"
	"github.com/obsbank/obs_backend/internal/handlers"
	"github.com/obsbank/obs_backend/internal/middleware"
	"github.com/obsbank/obs_backend/internal/platform/config"
	"github.com/obsbank/obs_backend/internal/platform/seed"
	"github.com/obsbank/obs_backend/internal/repositories/database/pgsql"
	"github.com/obsbank/obs_backend/internal/scheduler"
	"github.com/obsbank/obs_backend/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	repos := pgsql.NewRepositoryProvider(dbPool)

	transferSvc := services.NewTransferService(repos.AccountRepo, repos.TransactionRepo)
	container := &portssvc.ServiceContainer{
		Auth:        services.NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer),
		User:        services.NewUserService(repos.UserRepo),
		Account:     services.NewAccountService(repos.AccountRepo, repos.TransactionRepo, repos.UserRepo),
		Transfer:    transferSvc,
		Recurring:   services.NewRecurringService(repos.RecurringPaymentRepo, repos.AccountRepo, transferSvc),
		BillPayment: services.NewBillPaymentService(repos.BillPaymentRepo, repos.AccountRepo, repos.UserRepo),
		Statement:   services.NewStatementService(),
	}

	if cfg.SeedUsers {
		seedCtx := middleware.ContextWithLogger(context.Background(), logger)
		if err := seed.Users(seedCtx, repos.UserRepo, logger); err != nil {
			logger.Error("Failed to seed users", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Start the recurring payment scheduler
	sched, err := scheduler.New(cfg.SchedulerCronSpec, container.Recurring, logger)
	if err != nil {
		logger.Error("Failed to create scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
