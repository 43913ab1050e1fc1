package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "mesa-console/internal/adapter/http"
	"mesa-console/internal/adapter/memory"
	"mesa-console/internal/adapter/postgres"
	"mesa-console/internal/adapter/restapi"
	"mesa-console/internal/adapter/sqlite"
	"mesa-console/internal/adapter/usecase"
	"mesa-console/internal/config"
	"mesa-console/internal/core/port"
	"mesa-console/internal/db"
	"mesa-console/internal/i18n"
	"mesa-console/internal/metrics"
	"mesa-console/internal/telemetry"
)

// main is the entry point of the console. It loads configuration, opens
// the preference store, wires the upstream API clients and providers, then
// starts the HTTP server. On receiving a termination signal it gracefully
// shuts down the server.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}
	if cfg.Env != "prod" {
		cfg.Session.Secure = false
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		logger.Error("tracing setup error", slog.Any("error", err))
	}

	prefs, closePrefs, err := openPreferences(ctx, cfg, logger)
	if err != nil {
		logger.Error("preference store error", slog.String("driver", cfg.Prefs.Normalized()), slog.Any("error", err))
		return
	}
	defer closePrefs.Close()

	m := metrics.New()
	api := restapi.New(cfg.Backend.BaseURL,
		restapi.WithHTTPClient(restapi.NewHTTPClient(cfg.Backend.Timeout)),
		restapi.WithLogger(logger),
		restapi.WithMetrics(m),
	)
	users := restapi.NewUserClient(api)

	bundle, err := i18n.Load()
	if err != nil {
		logger.Error("locale catalog error", slog.Any("error", err))
		return
	}
	languages := make([]string, 0, len(bundle.Supported()))
	for _, tag := range bundle.Supported() {
		languages = append(languages, tag.String())
	}

	verifier := usecase.NewTokenVerifier(cfg.Auth)
	handler := httpadapter.NewHandler(httpadapter.Deps{
		Sessions:  usecase.NewSessions(prefs, logger),
		Auth:      usecase.NewAuthProvider(prefs, restapi.NewAuthClient(api), users, verifier, logger),
		Theme:     usecase.NewThemeProvider(prefs),
		Language:  usecase.NewLanguageProvider(prefs, bundle),
		Deletions: usecase.NewDeletions(m, logger),

		Agencies:      restapi.NewAgencyClient(api),
		Users:         users,
		Campaigns:     restapi.NewCampaignClient(api),
		Ads:           restapi.NewAdClient(api),
		Products:      restapi.NewProductClient(api),
		Sellers:       restapi.NewSellerClient(api),
		Notifications: restapi.NewNotificationClient(api),

		Metrics:        m,
		Session:        cfg.Session,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Languages:      languages,
	}, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)), slog.String("backend", cfg.Backend.BaseURL.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	exitCode = 0

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		exitCode = 1
	} else {
		logger.Info("server gracefully stopped")
	}
	if err = shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown error", slog.Any("error", err))
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openPreferences opens the configured preference store, applying
// migrations where the backend has them.
func openPreferences(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.PreferenceRepository, io.Closer, error) {
	switch cfg.Prefs.Normalized() {
	case "postgres":
		if cfg.Psql.RunMigrations {
			if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
				logger.Error("migration error", slog.Any("error", err))
			} else {
				logger.Info("migrations applied successfully")
			}
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPreferenceRepository(pool), closerFunc(func() error { pool.Close(); return nil }), nil
	case "sqlite":
		conn, err := db.NewSQLite(ctx, cfg.Prefs.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err = db.MigrateSQLite(conn); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return sqlite.NewPreferenceRepository(conn), conn, nil
	default:
		logger.Warn("using in-memory preference store; sessions are lost on restart")
		return memory.NewPreferenceRepository(), closerFunc(func() error { return nil }), nil
	}
}
