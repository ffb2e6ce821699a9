package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dealcraft/dealcraft/internal/config"
	"github.com/dealcraft/dealcraft/internal/refdata"
	"github.com/dealcraft/dealcraft/internal/resilience"
	"github.com/dealcraft/dealcraft/internal/store"
)

// refdataRPS caps outbound reference requests per second.
const refdataRPS = 5

// initProvider builds the reference data provider selected by
// data.source. The returned close func releases any store connection.
func initProvider(ctx context.Context, c *config.Config) (refdata.Provider, func(), error) {
	noop := func() {}

	switch c.Data.Source {
	case config.SourceFile:
		return refdata.NewFileProvider(c.Data.PartnersPath, c.Data.CompaniesPath), noop, nil
	case config.SourceHTTP:
		policy := resilience.DefaultPolicy("refdata")
		policy.Attempts = c.Data.MaxRetries + 1
		return refdata.NewHTTPProvider(c.Data.PartnersURL, c.Data.CompaniesURL, refdata.HTTPOptions{
			Timeout: time.Duration(c.Data.TimeoutSecs) * time.Second,
			Retry:   policy,
			Limiter: rate.NewLimiter(rate.Limit(refdataRPS), refdataRPS),
		}), noop, nil
	case config.SourceSQLite, config.SourcePostgres:
		st, err := initStore(ctx, c.Data.Source, c.Store)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := st.Close(); err != nil {
				zap.L().Warn("close store", zap.Error(err))
			}
		}
		return st, closeFn, nil
	default:
		return nil, nil, eris.Errorf("unsupported data source: %s", c.Data.Source)
	}
}

// initStore opens and migrates the SQL store for driver.
func initStore(ctx context.Context, driver string, sc config.StoreConfig) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch driver {
	case config.SourceSQLite:
		dsn := sc.DatabaseURL
		if dsn == "" {
			dsn = "dealcraft.db"
		}
		st, err = store.NewSQLite(dsn)
	case config.SourcePostgres:
		st, err = store.NewPostgres(ctx, sc.DatabaseURL, &store.PoolConfig{
			MaxConns: sc.MaxConns,
			MinConns: sc.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}
