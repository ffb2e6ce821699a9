package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dealcraft/dealcraft/internal/db"
	"github.com/dealcraft/dealcraft/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS partners (
	partner_id TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS companies (
	company_name TEXT PRIMARY KEY,
	sector       TEXT NOT NULL,
	stage        TEXT NOT NULL DEFAULT '',
	position     INTEGER NOT NULL,
	data         JSONB NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_partners_position ON partners(position);
CREATE INDEX IF NOT EXISTS idx_companies_position ON companies(position);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Partners(ctx context.Context) ([]model.Partner, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM partners ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query partners")
	}
	defer rows.Close()

	partners := []model.Partner{}
	for rows.Next() {
		var p model.Partner
		if err := scanJSON(rows, &p); err != nil {
			return nil, eris.Wrap(err, "postgres: scan partner")
		}
		partners = append(partners, p)
	}
	return partners, eris.Wrap(rows.Err(), "postgres: iterate partners")
}

func (s *PostgresStore) Companies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM companies ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query companies")
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var c model.Company
		if err := scanJSON(rows, &c); err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: iterate companies")
}

func (s *PostgresStore) ReplaceAll(ctx context.Context, partners []model.Partner, companies []model.Company) error {
	partnerRows := make([][]any, 0, len(partners))
	for i, p := range partners {
		data, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal partner %s", p.ID)
		}
		partnerRows = append(partnerRows, []any{p.ID, int32(i), data})
	}

	companyRows := make([][]any, 0, len(companies))
	for i, c := range companies {
		data, err := json.Marshal(c)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal company %s", c.Name)
		}
		companyRows = append(companyRows, []any{c.Name, c.Sector, c.Stage, int32(i), data})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `TRUNCATE partners, companies`); err != nil {
		return eris.Wrap(err, "postgres: truncate reference tables")
	}
	if _, err := db.CopyFrom(ctx, tx, "partners", []string{"partner_id", "position", "data"}, partnerRows); err != nil {
		return eris.Wrap(err, "postgres: copy partners")
	}
	if _, err := db.CopyFrom(ctx, tx, "companies", []string{"company_name", "sector", "stage", "position", "data"}, companyRows); err != nil {
		return eris.Wrap(err, "postgres: copy companies")
	}

	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "postgres: commit")
	}

	zap.L().Info("postgres: replaced reference data",
		zap.Int("partners", len(partners)),
		zap.Int("companies", len(companies)),
	)
	return nil
}
