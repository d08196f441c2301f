package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-currency-converter/internal/facades"
	"github.com/sbilibin2017/gw-currency-converter/internal/handlers"
	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/sbilibin2017/gw-currency-converter/internal/middlewares"
	"github.com/sbilibin2017/gw-currency-converter/internal/models"
	"github.com/sbilibin2017/gw-currency-converter/internal/render"
	"github.com/sbilibin2017/gw-currency-converter/internal/repositories"
	"github.com/sbilibin2017/gw-currency-converter/internal/services"
	"github.com/sbilibin2017/gw-currency-converter/internal/session"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Rate store backends.
const (
	storeNone   = "none"
	storeMemory = "memory"
	storeRedis  = "redis"
)

var errUnknownStore = errors.New("unknown rates store")

// config holds everything read from the environment.
type config struct {
	AppHost   string
	AppPort   string
	LogLevel  string
	LogFormat string

	CurrencyAPIURL  string
	CurrencyAPIKey  string
	GeoAPIURL       string
	GeoAPIToken     string
	FlagBaseURL     string
	ProviderTimeout time.Duration

	DefaultBase    string
	DefaultTarget  string
	RateCacheTTL   time.Duration
	SessionIdleTTL time.Duration

	RatesStore       string
	RatesStoreTTL    time.Duration
	RatesStoreSizeMB int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	RateLimitRPS      float64
	RateLimitBurst    int
	TrustProxyHeaders bool
}

// @title gw-currency-converter API
// @version 1.0.0
// @description Currency converter sessions: live conversion, currency picker and local currency detection
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, provider, session, store, Redis and rate limit configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getSeconds := func(key, defaultValue string) (time.Duration, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return time.Duration(n) * time.Second, nil
	}
	getInt := func(key, defaultValue string) (int, error) {
		n, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return n, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("APP_LOG_FORMAT", "json")

	// Providers config
	cfg.CurrencyAPIURL = getEnv("CURRENCY_API_URL", "https://api.freecurrencyapi.com/v1")
	cfg.CurrencyAPIKey = getEnv("CURRENCY_API_KEY", "")
	cfg.GeoAPIURL = getEnv("GEO_API_URL", "https://ipinfo.io")
	cfg.GeoAPIToken = getEnv("GEO_API_TOKEN", "")
	cfg.FlagBaseURL = getEnv("FLAG_BASE_URL", render.DefaultFlagBaseURL)
	if cfg.ProviderTimeout, err = getSeconds("PROVIDER_TIMEOUT_SECOND", "10"); err != nil {
		return
	}

	// Session config
	cfg.DefaultBase = strings.ToUpper(getEnv("DEFAULT_BASE", models.USD))
	cfg.DefaultTarget = strings.ToUpper(getEnv("DEFAULT_TARGET", models.EUR))
	if cfg.RateCacheTTL, err = getSeconds("RATE_CACHE_TTL_SECOND", "0"); err != nil {
		return
	}
	if cfg.SessionIdleTTL, err = getSeconds("SESSION_IDLE_TTL_SECOND", "1800"); err != nil {
		return
	}

	// Shared rates store config
	cfg.RatesStore = strings.ToLower(getEnv("RATES_STORE", storeMemory))
	if cfg.RatesStoreTTL, err = getSeconds("RATES_STORE_TTL_SECOND", "60"); err != nil {
		return
	}
	if cfg.RatesStoreSizeMB, err = getInt("RATES_STORE_SIZE_MB", "16"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Rate limit config
	if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "20"), 64); err != nil {
		err = fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		return
	}
	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", "40"); err != nil {
		return
	}
	if cfg.TrustProxyHeaders, err = strconv.ParseBool(getEnv("TRUST_PROXY_HEADERS", "false")); err != nil {
		err = fmt.Errorf("TRUST_PROXY_HEADERS: %w", err)
		return
	}

	return
}

// newRateTableStore builds the shared rates store selected by cfg. It
// returns a nil store for "none" and a cleanup func to release the backend.
func newRateTableStore(ctx context.Context, cfg config) (services.RateTableStore, func(), error) {
	switch cfg.RatesStore {
	case storeNone:
		return nil, func() {}, nil

	case storeMemory:
		cache := freecache.NewCache(cfg.RatesStoreSizeMB * 1024 * 1024)
		return repositories.NewFreecacheRateTableStore(cache, cfg.RatesStoreTTL), func() {}, nil

	case storeRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis connection error: %w", err)
		}
		return repositories.NewRedisRateTableStore(rdb, cfg.RatesStoreTTL), func() { _ = rdb.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownStore, cfg.RatesStore)
	}
}

// newProviders wires the provider facades, the shared rates store and the
// location service into session providers.
func newProviders(cfg config, store services.RateTableStore) session.Providers {
	client := facades.NewHTTPClient(cfg.ProviderTimeout)

	var rates session.RatesReader = facades.NewExchangeRateFacade(client, cfg.CurrencyAPIURL, cfg.CurrencyAPIKey)
	if store != nil {
		rates = services.NewCachedRatesReader(rates, store)
	}

	return session.Providers{
		Currencies: facades.NewCurrencyFacade(client, cfg.CurrencyAPIURL, cfg.CurrencyAPIKey),
		Rates:      rates,
		Location:   services.NewLocationService(facades.NewGeolocationFacade(client, cfg.GeoAPIURL, cfg.GeoAPIToken)),
	}
}

// newRouter sets up middleware and routes.
func newRouter(cfg config, mgr *session.Manager, limiter *middlewares.RateLimiter) http.Handler {
	r := chi.NewRouter()
	// Forwarded headers are client controlled unless a proxy rewrites them.
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Get("/healthz", handlers.NewHealthHandler())
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	r.Route("/api/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Handler)
		}
		r.Post("/sessions", handlers.NewCreateSessionHandler(mgr))
		r.Get("/sessions/{id}", handlers.NewGetSessionHandler(mgr))
		r.Delete("/sessions/{id}", handlers.NewDeleteSessionHandler(mgr))
		r.Post("/sessions/{id}/actions", handlers.NewDispatchActionHandler(mgr))
		r.Get("/sessions/{id}/stream", handlers.NewStreamSessionHandler(mgr))
	})

	return r
}

// run initializes the logger, the rates store, the session manager and the
// HTTP server. It handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infow("logger initialized", "level", cfg.LogLevel)

	store, closeStore, err := newRateTableStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Log.Infow("rates store ready", "backend", cfg.RatesStore)

	mgr := session.NewManager(session.Config{
		Base:         cfg.DefaultBase,
		Target:       cfg.DefaultTarget,
		RateCacheTTL: cfg.RateCacheTTL,
	}, newProviders(cfg, store), render.New(cfg.FlagBaseURL), cfg.SessionIdleTTL)

	var limiter *middlewares.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           newRouter(cfg, mgr, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	managerDone := make(chan struct{})
	go func() {
		mgr.Run(ctxShutdown)
		close(managerDone)
	}()
	if limiter != nil {
		go limiter.Run(ctxShutdown, time.Minute)
	}

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		stop()
		<-managerDone
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	<-managerDone

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
