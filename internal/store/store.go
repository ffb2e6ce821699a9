// Package store keeps the reference roster in SQL so the server can read it
// without shipping files alongside the binary.
package store

import (
	"context"

	"github.com/dealcraft/dealcraft/internal/model"
)

// Store is a read-mostly reference data store. Reads return records in the
// order they were seeded, which ranking relies on for tie-breaks.
type Store interface {
	Partners(ctx context.Context) ([]model.Partner, error)
	Companies(ctx context.Context) ([]model.Company, error)

	// ReplaceAll swaps the stored roster for the given records in one
	// transaction.
	ReplaceAll(ctx context.Context, partners []model.Partner, companies []model.Company) error

	Migrate(ctx context.Context) error
	Close() error
}
