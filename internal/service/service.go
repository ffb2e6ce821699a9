// Package service answers the read operations exposed over HTTP and the CLI.
// Every call takes a fresh snapshot of the reference data.
package service

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/dealcraft/dealcraft/internal/model"
	"github.com/dealcraft/dealcraft/internal/refdata"
	"github.com/dealcraft/dealcraft/internal/scorer"
)

// DefaultTopN is the number of partners recommended per company.
const DefaultTopN = 3

// ErrNotFound reports a company or partner key absent from the reference data.
var ErrNotFound = eris.New("not found")

// Service ties a reference data provider to the scorer.
type Service struct {
	provider refdata.Provider
	topN     int
}

// New returns a Service. topN values below 1 fall back to DefaultTopN.
func New(provider refdata.Provider, topN int) *Service {
	if topN < 1 {
		topN = DefaultTopN
	}
	return &Service{provider: provider, topN: topN}
}

// Partners lists the partner roster.
func (s *Service) Partners(ctx context.Context) ([]model.Partner, error) {
	snap, err := refdata.Load(ctx, s.provider)
	if err != nil {
		return nil, err
	}
	return snap.Partners, nil
}

// Companies lists the preloaded companies.
func (s *Service) Companies(ctx context.Context) ([]model.Company, error) {
	snap, err := refdata.Load(ctx, s.provider)
	if err != nil {
		return nil, err
	}
	return snap.Companies, nil
}

// MatchCompany returns the top partners for the company with exactly this
// name, together with the full score matrix.
func (s *Service) MatchCompany(ctx context.Context, name string) (*model.MatchResult, error) {
	return s.matchCompany(ctx, name, func(a, b string) bool { return a == b })
}

// MatchCompanyFold is MatchCompany with a case-insensitive name lookup.
func (s *Service) MatchCompanyFold(ctx context.Context, name string) (*model.MatchResult, error) {
	fold := cases.Fold()
	want := fold.String(name)
	return s.matchCompany(ctx, name, func(candidate, _ string) bool {
		return fold.String(candidate) == want
	})
}

func (s *Service) matchCompany(ctx context.Context, name string, eq func(candidate, name string) bool) (*model.MatchResult, error) {
	snap, err := refdata.Load(ctx, s.provider)
	if err != nil {
		return nil, err
	}

	company, ok := findCompany(snap.Companies, name, eq)
	if !ok {
		return nil, eris.Wrapf(ErrNotFound, "company %q", name)
	}

	ranked := scorer.RankPartnersForCompany(company, snap.Partners)
	result := &model.MatchResult{
		TopMatches: scorer.TopN(ranked, s.topN),
		AllScores:  scorer.BuildMatrix(snap.Partners, snap.Companies),
	}

	zap.L().Debug("service: matched company",
		zap.String("company", company.Name),
		zap.Int("partners", len(snap.Partners)),
		zap.Int("top", len(result.TopMatches)),
	)
	return result, nil
}

// MatchPartner ranks every company for the partner with this ID. limit < 1
// returns the full ranking.
func (s *Service) MatchPartner(ctx context.Context, partnerID string, limit int) ([]model.PartnerCompanyMatch, error) {
	snap, err := refdata.Load(ctx, s.provider)
	if err != nil {
		return nil, err
	}

	var partner *model.Partner
	for i := range snap.Partners {
		if snap.Partners[i].ID == partnerID {
			partner = &snap.Partners[i]
			break
		}
	}
	if partner == nil {
		return nil, eris.Wrapf(ErrNotFound, "partner %q", partnerID)
	}

	ranked := scorer.RankCompaniesForPartner(*partner, snap.Companies)
	if limit > 0 {
		ranked = scorer.TopN(ranked, limit)
	}
	return ranked, nil
}

// Overview returns the full matrix and the best partner for each company.
func (s *Service) Overview(ctx context.Context) (*model.Overview, error) {
	snap, err := refdata.Load(ctx, s.provider)
	if err != nil {
		return nil, err
	}
	return &model.Overview{
		Matrix:      scorer.BuildMatrix(snap.Partners, snap.Companies),
		BestMatches: scorer.BestMatches(snap.Partners, snap.Companies),
	}, nil
}

func findCompany(companies []model.Company, name string, eq func(candidate, name string) bool) (model.Company, bool) {
	for _, c := range companies {
		if eq(c.Name, name) {
			return c, true
		}
	}
	return model.Company{}, false
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return eris.Is(err, ErrNotFound)
}
