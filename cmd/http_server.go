package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arifwid/opstrack/internal"
	"github.com/arifwid/opstrack/internal/asset"
	assetPostgres "github.com/arifwid/opstrack/internal/asset/postgres"
	"github.com/arifwid/opstrack/internal/auth"
	authPostgres "github.com/arifwid/opstrack/internal/auth/postgres"
	"github.com/arifwid/opstrack/internal/core/events"
	"github.com/arifwid/opstrack/internal/deployment"
	deploymentPostgres "github.com/arifwid/opstrack/internal/deployment/postgres"
	"github.com/arifwid/opstrack/internal/incident"
	incidentPostgres "github.com/arifwid/opstrack/internal/incident/postgres"
	"github.com/arifwid/opstrack/internal/rca"
	rcaPostgres "github.com/arifwid/opstrack/internal/rca/postgres"
	"github.com/arifwid/opstrack/internal/report"
	"github.com/arifwid/opstrack/internal/search"
	"github.com/arifwid/opstrack/internal/task"
	taskPostgres "github.com/arifwid/opstrack/internal/task/postgres"
	"github.com/arifwid/opstrack/internal/transport/rest"
	"github.com/arifwid/opstrack/internal/user"
	userPostgres "github.com/arifwid/opstrack/internal/user/postgres"
	"github.com/arifwid/opstrack/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(lg)
	events.RegisterAuditSubscriber(bus)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	authRepo := authPostgres.NewAuthRepository(gormDB)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, authService, bus, lg)
	userHandler := user.NewHandler(userService)

	taskRepo := taskPostgres.NewTaskRepository(gormDB)
	taskService := task.NewService(taskRepo, bus, lg)
	taskHandler := task.NewHandler(taskService)

	deploymentRepo := deploymentPostgres.NewDeploymentRepository(gormDB)
	deploymentService := deployment.NewService(deploymentRepo, lg)
	deploymentHandler := deployment.NewHandler(deploymentService)

	incidentRepo := incidentPostgres.NewIncidentRepository(gormDB)
	incidentService := incident.NewService(incidentRepo, bus, lg)
	incidentHandler := incident.NewHandler(incidentService)

	rcaRepo := rcaPostgres.NewRCARepository(gormDB)
	rcaService := rca.NewService(rcaRepo, lg)
	rcaHandler := rca.NewHandler(rcaService)

	assetRepo := assetPostgres.NewAssetRepository(gormDB)
	assetService := asset.NewService(assetRepo, lg)
	assetHandler := asset.NewHandler(assetService)

	searchService := search.NewService(taskRepo, deploymentRepo, incidentRepo, rcaRepo, assetRepo, lg)
	searchHandler := search.NewHandler(searchService)

	renderers := map[string]report.Renderer{
		report.FormatCSV: report.NewCSVRenderer(),
	}
	reportService := report.NewService(taskRepo, deploymentRepo, incidentRepo, rcaRepo, assetRepo, renderers, lg)
	reportHandler := report.NewHandler(reportService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:       authHandler,
		User:       userHandler,
		Task:       taskHandler,
		Deployment: deploymentHandler,
		Incident:   incidentHandler,
		RCA:        rcaHandler,
		Asset:      assetHandler,
		Search:     searchHandler,
		Report:     reportHandler,
	}, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

// initDB opens the pgx-backed connection pool used by both sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
