package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"technews/internal/common/pagination"
	pgRepo "technews/internal/infra/adapter/persistence/postgres"
	"technews/internal/infra/db"
	"technews/internal/infra/mailer"
	"technews/internal/observability/logging"
	"technews/internal/observability/tracing"
	"technews/internal/resilience/circuitbreaker"
	"technews/pkg/config"

	artUC "technews/internal/usecase/article"
	newsUC "technews/internal/usecase/newsletter"
	"technews/internal/usecase/notify"
	userUC "technews/internal/usecase/user"

	hhttp "technews/internal/handler/http"
	harticle "technews/internal/handler/http/article"
	hauth "technews/internal/handler/http/auth"
	hnewsletter "technews/internal/handler/http/newsletter"
	"technews/internal/handler/http/requestid"
	huser "technews/internal/handler/http/user"
	authservice "technews/internal/service/auth"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	secret := loadJWTSecret(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler := buildHandler(logger, database, secret)
	runServer(logger, handler, getVersion())
}

// loadJWTSecret reads and validates JWT_SECRET. The process refuses to
// start with a missing, short or commonly-guessed signing key.
func loadJWTSecret(logger *slog.Logger) []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	lowered := strings.ToLower(secret)
	for _, weak := range weakSecrets {
		if lowered == weak || lowered == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value")
			os.Exit(1)
		}
	}
	return []byte(secret)
}

// initDatabase opens the connection pool and applies pending migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("database migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// buildHandler wires repositories, services and handlers into the root
// HTTP handler with the full middleware chain applied.
func buildHandler(logger *slog.Logger, database *sql.DB, secret []byte) http.Handler {
	breaker := circuitbreaker.New(circuitbreaker.DatabaseConfig())
	guarded := circuitbreaker.WrapDB(database, breaker)

	articleRepo := pgRepo.NewArticleRepo(guarded)
	subscriberRepo := pgRepo.NewSubscriberRepo(guarded)
	userRepo := pgRepo.NewUserRepo(guarded)

	outbound := buildMailer(logger)
	notifier := notify.NewService(subscriberRepo, outbound,
		notify.WithLogger(logger),
		notify.WithSendTimeout(config.GetEnvDuration("MAILER_SEND_TIMEOUT", 10*time.Second)))

	articleSvc := &artUC.Service{Repo: articleRepo, Notifier: notifier}
	newsletterSvc := &newsUC.Service{Repo: subscriberRepo}
	userSvc := &userUC.Service{Repo: userRepo, Mailer: outbound, Logger: logger}
	authSvc := authservice.NewService(userRepo, secret,
		authservice.WithResetMailer(outbound),
		authservice.WithLogger(logger))

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	mux.Handle("GET /health", hhttp.HealthHandler(database))
	mux.Handle("GET /ready", hhttp.ReadyHandler(database))
	mux.Handle("GET /live", hhttp.LiveHandler())
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	authLimiter := hhttp.NewRateLimiter(
		config.GetEnvInt("AUTH_RATE_LIMIT", 5),
		config.GetEnvDuration("AUTH_RATE_WINDOW", time.Minute),
	)
	hauth.Register(mux, authSvc, authLimiter.Limit)
	harticle.Register(mux, articleSvc, paginationCfg, logger)
	hnewsletter.Register(mux, newsletterSvc)
	huser.Register(mux, userSvc)

	return applyMiddleware(mux, logger, authSvc)
}

// buildMailer returns the SMTP mailer when SMTP_HOST is configured, and
// a no-op mailer otherwise so the rest of the system keeps working in
// environments without a mail relay.
func buildMailer(logger *slog.Logger) mailer.Mailer {
	cfg := mailer.ConfigFromEnv()
	if !cfg.Enabled() {
		logger.Warn("SMTP_HOST not set, email delivery disabled")
		return mailer.NewNoOpMailer()
	}
	m, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		logger.Error("failed to configure SMTP mailer", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("SMTP mailer configured",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port))
	return m
}

// applyMiddleware wraps the mux with the shared middleware chain.
// Applied in reverse order: the first wrap is the innermost layer.
func applyMiddleware(mux http.Handler, logger *slog.Logger, authSvc *authservice.Service) http.Handler {
	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	chain := hauth.Authenticate(authSvc)(mux)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// getVersion returns the build version injected via environment, or
// "dev" for local runs.
func getVersion() string {
	return config.GetEnvString("APP_VERSION", "dev")
}

// runServer starts the HTTP server and blocks until a shutdown signal
// arrives, then drains in-flight requests.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
