package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/vendosaas/vendo/config"
	"github.com/vendosaas/vendo/internal/adapters/authroles"
	"github.com/vendosaas/vendo/internal/adapters/geoip"
	"github.com/vendosaas/vendo/internal/adapters/memstore"
	redisadapter "github.com/vendosaas/vendo/internal/adapters/redis"
	"github.com/vendosaas/vendo/internal/adapters/simauth"
	"github.com/vendosaas/vendo/internal/clock"
	"github.com/vendosaas/vendo/internal/devseed"
	"github.com/vendosaas/vendo/internal/ports"
	"github.com/vendosaas/vendo/internal/service"
)

// ServiceContainer bundles the constructed services handed to the router.
type ServiceContainer struct {
	Sessions   *service.SessionService
	Nav        *service.NavigationService
	Currencies *service.CurrencyService
	Catalog    *devseed.Catalog
}

// ServiceDeps carries what BuildServices needs.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// BuildServices wires adapters into services according to configuration.
func BuildServices(deps *ServiceDeps) (ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sessions, navs, err := buildStores(cfg)
	if err != nil {
		return ServiceContainer{}, err
	}

	provider, err := simauth.NewProvider(simauth.Config{
		CustomerGroup:   cfg.Auth.CustomerGroup,
		TenantGroup:     cfg.Auth.TenantGroup,
		TenantDomains:   cfg.Auth.Sim.TenantDomains,
		Latency:         cfg.Auth.Sim.Latency,
		SessionDuration: cfg.Auth.Sim.SessionDuration,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build credential provider: %w", err)
	}

	resolver, err := geoip.NewResolver(geoip.Config{
		Endpoint:    cfg.Currency.LookupURL,
		CountryExpr: cfg.Currency.CountryExpr,
		Timeout:     cfg.Currency.LookupTimeout,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build location resolver: %w", err)
	}

	sessionSvc := service.NewSessionService(service.SessionServiceOptions{
		Provider: provider,
		Stores: service.SessionStores{
			Sessions: sessions,
			Nav:      navs,
		},
		Roles: authroles.StaticRoleMapper{
			TenantGroup:   cfg.Auth.TenantGroup,
			CustomerGroup: cfg.Auth.CustomerGroup,
		},
	})

	return ServiceContainer{
		Sessions:   sessionSvc,
		Nav:        service.NewNavigationService(service.NavigationServiceOptions{Store: navs}),
		Currencies: service.NewCurrencyService(service.CurrencyServiceOptions{Resolver: resolver, Logger: logger}),
		Catalog:    devseed.NewCatalog(),
	}, nil
}

// buildStores selects the session/navigation backend.
func buildStores(cfg *config.AppConfig) (ports.SessionStore, ports.NavStore, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client := newRedisClient(cfg.Redis)
		return redisadapter.NewSessionStore(client),
			redisadapter.NewNavStore(client, cfg.Auth.Sim.SessionDuration),
			nil
	case config.SessionBackendMemory, "":
		clk := clock.System{}
		return memstore.NewSessionStore(clk), memstore.NewNavStore(), nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend: %q", cfg.SessionBackend)
	}
}

// newRedisClient builds a Redis client, using Sentinel when configured.
func newRedisClient(cfg config.RedisConfig) redis.UniversalClient {
	if cfg.UseSentinel {
		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.SentinelMasterName,
			SentinelAddrs:    cfg.SentinelNodes,
			SentinelPassword: cfg.SentinelPassword,
			Password:         cfg.Password,
		})
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.URI,
		Password: cfg.Password,
	})
}
