package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/corepay/gateway/internal/config"
	"github.com/corepay/gateway/internal/gateway"
	"github.com/corepay/gateway/internal/metrics"
	"github.com/corepay/gateway/internal/platform/postgres"
	platformredis "github.com/corepay/gateway/internal/platform/redis"
	"github.com/corepay/gateway/internal/provider"
	"github.com/corepay/gateway/internal/receipt"
	"github.com/corepay/gateway/internal/rules"
	"github.com/corepay/gateway/internal/service/auth"
	"github.com/corepay/gateway/internal/service/clients"
	"github.com/corepay/gateway/internal/service/eligibility"
)

// providerCallTimeout bounds every outbound provider HTTP call.
const providerCallTimeout = 30 * time.Second

// application holds the wired components with process lifetime.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	db         *sql.DB
	redis      *goredis.Client // nil when the method cache is disabled
	gateway    *gateway.Gateway
	jwtService auth.JWTService
}

// newApplication wires stores, the rule engine, provider adapters and the
// gateway facade from configuration. The returned application owns db and
// closes it in cleanup.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	companyStore := postgres.NewPostgresCompanyStore(db, logger)
	methodStore := postgres.NewPostgresMethodStore(db, logger)
	transactionStore := postgres.NewPostgresTransactionStore(db, logger)
	cardStore := postgres.NewPostgresBankCardStore(db, logger)

	ruleSet, err := rules.LoadRules(cfg.Gateway.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load integration rules: %w", err)
	}
	engine := rules.NewRuleEngine(ruleSet)

	registry := setupProviderRegistry(ruleSet, logger)

	bindings, err := gateway.NewMethodCompanyResolver(methodStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create method company resolver: %w", err)
	}
	configs, err := gateway.NewIntegrationConfigResolver(engine, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create integration config resolver: %w", err)
	}

	checker := eligibility.NewPrefixBlocklist(cfg.Gateway.BlockedCardPrefixes, logger)

	orchestrator, err := gateway.NewTransactionOrchestrator(gateway.OrchestratorDeps{
		MethodCompanies: bindings,
		Configs:         configs,
		Adapters:        registry,
		Transactions:    transactionStore,
		Cards:           cardStore,
		Receipts:        receipt.NewJSONParser(),
		Eligibility:     checker,
		Metrics:         metrics.NewSlogSink(logger),
		PayoutCompany:   cfg.Gateway.PayoutCompany,
		Currency:        cfg.Gateway.Currency,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction orchestrator: %w", err)
	}

	cards, err := gateway.NewCardLifecycleManager(cardStore, configs, registry, checker, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create card lifecycle manager: %w", err)
	}

	var (
		redisClient *goredis.Client
		methodCache gateway.MethodCache
	)
	if cfg.Redis.Addr != "" {
		redisClient, methodCache = setupMethodCache(cfg.Redis, logger)
	}

	methods, err := gateway.NewMethodService(companyStore, methodStore, methodCache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create method service: %w", err)
	}

	loanClient, err := clients.NewLoanClient(orchestrator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create loan client: %w", err)
	}
	optionClient, err := clients.NewOptionClient(orchestrator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create option client: %w", err)
	}

	router, err := gateway.NewPaymentRouter(loanClient, optionClient, methods, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment router: %w", err)
	}

	gw, err := gateway.New(gateway.GatewayDeps{
		Orchestrator: orchestrator,
		Cards:        cards,
		Methods:      methods,
		Router:       router,
		Bindings:     bindings,
		Configs:      configs,
		Adapters:     registry,
		Companies:    companyStore,
		Transactions: transactionStore,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}

	jwtService, err := auth.NewJWTService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	logger.Info("Application components initialized",
		slog.Int("integration_rules", len(ruleSet)))

	return &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		redis:      redisClient,
		gateway:    gw,
		jwtService: jwtService,
	}, nil
}

// setupProviderRegistry registers a circuit-broken HTTP adapter for every
// provider alias the rule set can resolve to. A provider absent from the
// rules can never be selected, so nothing else needs an adapter.
func setupProviderRegistry(ruleSet []rules.Rule, logger *slog.Logger) *provider.Registry {
	registry := provider.NewRegistry()

	seen := make(map[string]struct{})
	for _, rule := range ruleSet {
		alias := rule.Provider
		if alias == "" {
			continue
		}
		if _, ok := seen[alias]; ok {
			continue
		}
		seen[alias] = struct{}{}

		adapter := provider.NewHTTPAdapter(alias, providerCallTimeout, logger)
		registry.Register(alias, provider.NewBreakerAdapter(alias, adapter, provider.BreakerSettings{}, logger))
		logger.Debug("Registered provider adapter", slog.String("provider", alias))
	}

	return registry
}

// setupMethodCache connects the Redis-backed method listing cache. A cache
// that cannot be reached at startup is still wired; it degrades listings to
// the catalog until Redis comes back.
func setupMethodCache(cfg config.RedisConfig, logger *slog.Logger) (*goredis.Client, gateway.MethodCache) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Method cache unreachable at startup",
			slog.String("addr", cfg.Addr),
			slog.String("error", err.Error()))
	} else {
		logger.Info("Method cache connected", slog.String("addr", cfg.Addr))
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	return client, platformredis.NewMethodCache(client, ttl, logger)
}

// cleanup releases process-lifetime resources after the server stops.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database", slog.String("error", err.Error()))
	}
}
