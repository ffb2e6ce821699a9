package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/dealcraft/dealcraft/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS partners (
	partner_id TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	data       TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS companies (
	company_name TEXT PRIMARY KEY,
	sector       TEXT NOT NULL,
	stage        TEXT NOT NULL DEFAULT '',
	position     INTEGER NOT NULL,
	data         TEXT NOT NULL,
	updated_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_partners_position ON partners(position);
CREATE INDEX IF NOT EXISTS idx_companies_position ON companies(position);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Partners(ctx context.Context) ([]model.Partner, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM partners ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query partners")
	}
	defer rows.Close() //nolint:errcheck

	partners := []model.Partner{}
	for rows.Next() {
		var p model.Partner
		if err := scanJSON(rows, &p); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan partner")
		}
		partners = append(partners, p)
	}
	return partners, eris.Wrap(rows.Err(), "sqlite: iterate partners")
}

func (s *SQLiteStore) Companies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT data FROM companies ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query companies")
	}
	defer rows.Close() //nolint:errcheck

	companies := []model.Company{}
	for rows.Next() {
		var c model.Company
		if err := scanJSON(rows, &c); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company")
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "sqlite: iterate companies")
}

func (s *SQLiteStore) ReplaceAll(ctx context.Context, partners []model.Partner, companies []model.Company) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin")
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range []string{`DELETE FROM partners`, `DELETE FROM companies`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return eris.Wrapf(err, "sqlite: %s", stmt)
		}
	}

	for i, p := range partners {
		data, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal partner %s", p.ID)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO partners (partner_id, position, data) VALUES (?, ?, ?)`,
			p.ID, i, string(data),
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert partner %s", p.ID)
		}
	}

	for i, c := range companies {
		data, err := json.Marshal(c)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal company %s", c.Name)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO companies (company_name, sector, stage, position, data) VALUES (?, ?, ?, ?, ?)`,
			c.Name, c.Sector, c.Stage, i, string(data),
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert company %s", c.Name)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanJSON(row scannable, dst any) error {
	var data []byte
	if err := row.Scan(&data); err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
