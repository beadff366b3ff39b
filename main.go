package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"realty-agent/config"
	httpLayer "realty-agent/http"
	"realty-agent/notify"
	"realty-agent/repository"
	"realty-agent/service"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the YAML config file (default $REALTY_CONFIG)")
	addr := pflag.String("addr", "", "listen address, overrides server.addr")
	hashPassword := pflag.String("hash-password", "", "print the bcrypt hash of a password for auth.password_hash and exit")
	pflag.Parse()

	if *hashPassword != "" {
		hash, err := service.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := repository.NewStores(ctx, cfg.Storage.Backend)
	if err != nil {
		return err
	}
	defer stores.Close()

	cache, closeCache, err := repository.NewCache(ctx, cfg.Cache.Backend, cfg.Cache.Password, cfg.Cache.DB)
	if err != nil {
		return err
	}
	defer closeCache()

	blobs := repository.NewFileBlobStore(cfg.Blob.Dir, cfg.Blob.PublicBaseURL)

	hub := notify.NewHub(logger.With("component", "notify"))
	go hub.Run(ctx)

	limits := service.Limits{
		MaxPropertyPrice:    cfg.Limits.MaxPropertyPrice,
		MaxInterestRate:     cfg.Limits.MaxInterestRate,
		MaxTermYears:        cfg.Limits.MaxTermYears,
		MaxMonthlyAmount:    cfg.Limits.MaxMonthlyAmount,
		MaxClosingCosts:     cfg.Limits.MaxClosingCosts,
		MaxAppreciationRate: cfg.Limits.MaxAppreciationRate,
	}

	advisor := service.NewAdvisorService(service.AdvisorConfig{
		Enabled: cfg.Advisor.Enabled,
		APIKey:  cfg.Advisor.AdvisorKey(),
		APIURL:  cfg.Advisor.APIURL,
		Model:   cfg.Advisor.Model,
		Timeout: cfg.Advisor.Timeout,
	})
	if !advisor.Enabled() {
		logger.Info("advisor disabled, using template explanations")
	}

	calculatorService := service.NewCalculatorService(stores.Calculations, cache, limits, cfg.Cache.TTL)
	termRecommendationService := service.NewTermRecommendationService(limits, advisor)
	amortizationService := service.NewAmortizationService(limits)
	propertyService := service.NewPropertyService(stores.Properties, blobs)
	leadService := service.NewLeadService(stores.Leads, hub)
	settingsService := service.NewSettingsService(stores.Settings, blobs)
	authService := service.NewAuthService(cfg.Auth.AdminEmail, cfg.Auth.PasswordHash, cache, cfg.Auth.SessionTTL)
	dashboardService := service.NewDashboardService(stores.Properties, stores.Leads, stores.Calculations)

	calculatorHandler := httpLayer.NewCalculatorHandler(
		calculatorService,
		termRecommendationService,
		amortizationService,
		advisor,
	)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Calculator: calculatorHandler,
		Properties: httpLayer.NewPropertyHandler(propertyService, calculatorHandler),
		Leads:      httpLayer.NewLeadHandler(leadService, hub),
		Admin:      httpLayer.NewAdminHandler(authService, dashboardService, settingsService),
		Auth:       authService,
		Limiter:    rateLimiter,
		MediaDir:   blobs.Root(),
		Logger:     logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening",
			"addr", cfg.Server.Addr,
			"storage", stores.Backend,
			"cache", cfg.Cache.Backend,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("starting server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
