// Package refdata loads the partner roster and preloaded companies that the
// matching engine reads.
package refdata

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dealcraft/dealcraft/internal/model"
)

// ErrMalformedRecord reports a record missing a required field, or a
// repeated key.
var ErrMalformedRecord = eris.New("malformed record")

// Provider supplies reference records. Implementations may reload on every
// call.
type Provider interface {
	Partners(ctx context.Context) ([]model.Partner, error)
	Companies(ctx context.Context) ([]model.Company, error)
}

// Snapshot is one consistent read of the reference data.
type Snapshot struct {
	Partners  []model.Partner
	Companies []model.Company
}

// Load reads partners and companies from p concurrently, then validates them
// and fills in missing company stages.
func Load(ctx context.Context, p Provider) (*Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		partners, err := p.Partners(gctx)
		if err != nil {
			return eris.Wrap(err, "refdata: load partners")
		}
		snap.Partners = partners
		return nil
	})
	g.Go(func() error {
		companies, err := p.Companies(gctx)
		if err != nil {
			return eris.Wrap(err, "refdata: load companies")
		}
		snap.Companies = companies
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	partners, err := NormalizePartners(snap.Partners)
	if err != nil {
		return nil, err
	}
	companies, err := NormalizeCompanies(snap.Companies)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("refdata: loaded",
		zap.Int("partners", len(partners)),
		zap.Int("companies", len(companies)),
	)
	return &Snapshot{Partners: partners, Companies: companies}, nil
}
