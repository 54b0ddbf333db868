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
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"spa-backoffice/internal/common/pagination"
	"spa-backoffice/internal/config"
	pgRepo "spa-backoffice/internal/infra/adapter/persistence/postgres"
	"spa-backoffice/internal/infra/db"
	"spa-backoffice/internal/jobs"
	"spa-backoffice/internal/resilience/circuitbreaker"
	"spa-backoffice/internal/resilience/retry"
	"spa-backoffice/internal/session"

	exportUC "spa-backoffice/internal/usecase/export"
	memberUC "spa-backoffice/internal/usecase/member"
	pmUC "spa-backoffice/internal/usecase/paymentmethod"
	simUC "spa-backoffice/internal/usecase/simulation"
	voucherUC "spa-backoffice/internal/usecase/voucher"

	cpUC "spa-backoffice/internal/usecase/carepackage"

	hhttp "spa-backoffice/internal/handler/http"
	hauth "spa-backoffice/internal/handler/http/auth"
	hcarepackage "spa-backoffice/internal/handler/http/carepackage"
	hdaterange "spa-backoffice/internal/handler/http/daterange"
	hexport "spa-backoffice/internal/handler/http/export"
	hmember "spa-backoffice/internal/handler/http/member"
	hpaymentmethod "spa-backoffice/internal/handler/http/paymentmethod"
	"spa-backoffice/internal/handler/http/requestid"
	hsystem "spa-backoffice/internal/handler/http/system"
	hvoucher "spa-backoffice/internal/handler/http/voucher"
	"spa-backoffice/internal/observability/tracing"
	authservice "spa-backoffice/internal/service/auth"
)

func main() {
	logger := initLogger()
	cfg := loadConfig(logger)
	validateJWTSecret(logger)
	validateStaffCredentials(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	production, simulation := initPools(ctx, logger, cfg)
	defer closePool(logger, production, db.PoolProduction)
	defer closePool(logger, simulation, db.PoolSimulation)

	components := setupServer(ctx, logger, cfg, production, simulation)
	runServer(ctx, cancel, logger, cfg, components)
}

// initLogger initializes and returns a structured logger based on environment
// configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

func loadConfig(logger *slog.Logger) *config.ServerConfig {
	cfg, err := config.LoadServerConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// validateJWTSecret enforces the token signing secret at startup so the
// server never issues tokens signed with an empty or trivially weak key.
func validateJWTSecret(logger *slog.Logger) {
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
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// validateStaffCredentials requires the admin account; the viewer account is
// optional and its absence only disables the viewer role.
func validateStaffCredentials(logger *slog.Logger) {
	if os.Getenv("ADMIN_USER") == "" || os.Getenv("ADMIN_USER_PASSWORD") == "" {
		logger.Error("ADMIN_USER and ADMIN_USER_PASSWORD must be set")
		os.Exit(1)
	}
	if os.Getenv("VIEWER_USER") == "" || os.Getenv("VIEWER_USER_PASSWORD") == "" {
		logger.Warn("viewer account not configured, running admin-only")
	}
}

// initPools opens and migrates both database targets. Either pool failing to
// open is fatal: routing must never silently fall back to the other target.
func initPools(ctx context.Context, logger *slog.Logger, cfg *config.ServerConfig) (*sql.DB, *sql.DB) {
	production := openPool(ctx, logger, cfg.Database.ProductionDSNEnv, db.PoolProduction)
	simulation := openPool(ctx, logger, cfg.Database.SimulationDSNEnv, db.PoolSimulation)

	for _, target := range []struct {
		name string
		pool *sql.DB
	}{{db.PoolProduction, production}, {db.PoolSimulation, simulation}} {
		if err := db.MigrateUp(ctx, target.pool); err != nil {
			logger.Error("failed to migrate database",
				slog.String("pool", target.name), slog.Any("error", err))
			os.Exit(1)
		}
	}
	return production, simulation
}

func openPool(ctx context.Context, logger *slog.Logger, dsnEnv, poolName string) *sql.DB {
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		logger.Error("database DSN not set", slog.String("env", dsnEnv), slog.String("pool", poolName))
		os.Exit(1)
	}
	pool, err := db.Open(ctx, dsn, poolName, logger)
	if err != nil {
		logger.Error("failed to open pool", slog.String("pool", poolName), slog.Any("error", err))
		os.Exit(1)
	}
	return pool
}

func closePool(logger *slog.Logger, pool *sql.DB, name string) {
	if err := pool.Close(); err != nil {
		logger.Error("failed to close pool", slog.String("pool", name), slog.Any("error", err))
	}
}

// ServerComponents holds everything runServer needs to serve and shut down.
type ServerComponents struct {
	Handler   http.Handler
	Scheduler *jobs.Scheduler
}

// setupServer wires the dual-pool router, repositories, use cases, routes,
// and background jobs.
func setupServer(ctx context.Context, logger *slog.Logger, cfg *config.ServerConfig, production, simulation *sql.DB) *ServerComponents {
	// Per-pool chain: raw pool, query audit, circuit breaker, then the
	// router on top. Breakers sit under the router so a simulation outage
	// can never trip the production side.
	prodQ := circuitbreaker.NewDBCircuitBreaker(
		db.WrapWithAudit(production, db.PoolProduction, []string{"sessions"}, logger),
		"db-production")
	simQ := circuitbreaker.NewDBCircuitBreaker(
		db.WrapWithAudit(simulation, db.PoolSimulation, []string{"sessions"}, logger),
		"db-simulation")
	router := db.NewRouter(prodQ, simQ, logger)

	sessionStore := session.NewStore(router, cfg.Session.TTL.Std(), logger)

	simSvc := simUC.NewService(pgRepo.NewSystemRepo(router), router, cfg.Simulation.CacheTTL.Std(), logger)
	syncSimulationState(ctx, logger, simSvc)

	memberRepo := pgRepo.NewMemberRepo(router)
	packageRepo := pgRepo.NewCarePackageRepo(router, logger)

	memberSvc := &memberUC.Service{Repo: memberRepo}
	packageSvc := &cpUC.Service{Repo: packageRepo}
	voucherSvc := &voucherUC.Service{Repo: pgRepo.NewVoucherRepo(router)}
	methodSvc := &pmUC.Service{Repo: pgRepo.NewPaymentMethodRepo(router)}
	exportSvc := &exportUC.Service{Members: memberRepo, CarePackages: packageRepo}

	paginationCfg := pagination.LoadFromEnv()

	minPasswordLength, publicEndpoints := loadSecurityPolicy(logger)
	hauth.SetPublicEndpoints(publicEndpoints)
	authProvider := hauth.NewStaffProvider(minPasswordLength)
	authSvc := authservice.NewAuthService(authProvider, publicEndpoints)

	mux := http.NewServeMux()
	hauth.Register(mux, authSvc, authProvider)
	hmember.Register(mux, memberSvc, paginationCfg, logger)
	hcarepackage.Register(mux, packageSvc, paginationCfg, logger)
	hvoucher.Register(mux, voucherSvc, paginationCfg, logger)
	hpaymentmethod.Register(mux, methodSvc, paginationCfg, logger)
	hsystem.Register(mux, simSvc)
	hdaterange.Register(mux)
	hexport.Register(mux, exportSvc, logger)

	mux.Handle("GET /healthz", &hhttp.HealthHandler{
		Production: production,
		Simulation: simulation,
		Router:     router,
		Version:    getVersion(),
	})
	mux.Handle("GET /readyz", &hhttp.ReadyHandler{Pools: router})
	mux.Handle("GET /livez", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	handler := applyMiddleware(logger, cfg, mux, sessionStore, simSvc)
	scheduler := startJobs(logger, cfg, sessionStore, simSvc)

	return &ServerComponents{Handler: handler, Scheduler: scheduler}
}

// loadSecurityPolicy reads the optional security config file. Without
// SECURITY_CONFIG_PATH the built-in defaults apply: a 12 character
// minimum password and the standard public endpoint allowlist.
func loadSecurityPolicy(logger *slog.Logger) (int, []string) {
	path := os.Getenv("SECURITY_CONFIG_PATH")
	if path == "" {
		return 12, hauth.PublicEndpoints
	}

	secCfg, err := config.LoadSecurityConfig(path)
	if err != nil {
		logger.Error("failed to load security configuration",
			slog.String("path", path), slog.Any("error", err))
		os.Exit(1)
	}

	endpoints := secCfg.GetPublicEndpoints()
	if len(endpoints) == 0 {
		endpoints = hauth.PublicEndpoints
	}
	return secCfg.GetMinPasswordLength(), endpoints
}

// syncSimulationState loads the persisted simulation flag before the server
// accepts traffic, so a restart lands in the stored mode rather than the
// production default.
func syncSimulationState(ctx context.Context, logger *slog.Logger, simSvc *simUC.Service) {
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		_, err := simSvc.Refresh(ctx)
		return err
	})
	if err != nil {
		logger.Error("failed to load simulation state", slog.Any("error", err))
		os.Exit(1)
	}
	hhttp.SetSimulationMode(simSvc.Active())
}

// applyMiddleware wraps the mux with the request pipeline, innermost first:
// the simulation header and session load sit closest to the handlers, auth
// runs per route inside the Register calls.
func applyMiddleware(logger *slog.Logger, cfg *config.ServerConfig, mux http.Handler, store *session.Store, simSvc *simUC.Service) http.Handler {
	chain := mux
	chain = hhttp.SimulationHeader(simSvc)(chain)
	chain = session.Middleware(store, logger)(chain)
	chain = hhttp.Timeout(cfg.Server.RequestTimeout.Std())(chain)

	if cfg.RateLimit.Enabled {
		limiter := hhttp.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		chain = limiter.Limit(chain)
		logger.Info("rate limiting enabled",
			slog.Float64("rps", cfg.RateLimit.RPS), slog.Int("burst", cfg.RateLimit.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.CORS(corsConfig(cfg))(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

func corsConfig(cfg *config.ServerConfig) hhttp.CORSConfig {
	if len(cfg.CORS.AllowedOrigins) > 0 {
		return hhttp.CORSConfig{AllowedOrigins: cfg.CORS.AllowedOrigins, MaxAge: "300"}
	}
	return hhttp.DefaultCORSConfig(os.Getenv("CORS_ALLOWED_ORIGINS"))
}

// startJobs registers and starts the periodic maintenance work.
func startJobs(logger *slog.Logger, cfg *config.ServerConfig, store *session.Store, simSvc *simUC.Service) *jobs.Scheduler {
	scheduler := jobs.NewScheduler(logger)

	if err := scheduler.AddSessionPrune(cfg.Session.PruneSchedule, store); err != nil {
		logger.Error("invalid session prune schedule", slog.Any("error", err))
		os.Exit(1)
	}
	if err := scheduler.AddSimulationRefresh(cfg.Simulation.RefreshSchedule, simSvc); err != nil {
		logger.Error("invalid simulation refresh schedule", slog.Any("error", err))
		os.Exit(1)
	}
	if err := scheduler.AddSLOFlush("@every 1m", hhttp.SLOTracker()); err != nil {
		logger.Error("invalid slo flush schedule", slog.Any("error", err))
		os.Exit(1)
	}

	scheduler.Start()
	logger.Info("maintenance jobs started",
		slog.String("session_prune", cfg.Session.PruneSchedule),
		slog.String("simulation_refresh", cfg.Simulation.RefreshSchedule))
	return scheduler
}

func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, cfg *config.ServerConfig, components *ServerComponents) {
	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":" + strconv.Itoa(cfg.Server.Port)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris protection
		ReadTimeout:       cfg.Server.ReadTimeout.Std(),
		WriteTimeout:      cfg.Server.WriteTimeout.Std(),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", getVersion()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := components.Scheduler.Stop(shutdownCtx); err != nil {
		logger.Error("scheduler shutdown failed", slog.Any("error", err))
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	cancel()
	logger.Info("server stopped")
}
