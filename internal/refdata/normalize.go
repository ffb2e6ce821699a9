package refdata

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/dealcraft/dealcraft/internal/model"
)

// NormalizeCompanies checks required fields and key uniqueness and returns a
// copy with every stage filled in.
func NormalizeCompanies(in []model.Company) ([]model.Company, error) {
	out := make([]model.Company, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, c := range in {
		if strings.TrimSpace(c.Name) == "" {
			return nil, eris.Wrapf(ErrMalformedRecord, "refdata: company %d: company_name is required", i)
		}
		if strings.TrimSpace(c.Sector) == "" {
			return nil, eris.Wrapf(ErrMalformedRecord, "refdata: company %q: sector is required", c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, eris.Wrapf(ErrMalformedRecord, "refdata: duplicate company %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		out = append(out, c.WithDefaults())
	}
	return out, nil
}

// NormalizePartners checks required fields and key uniqueness.
func NormalizePartners(in []model.Partner) ([]model.Partner, error) {
	out := make([]model.Partner, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i, p := range in {
		if strings.TrimSpace(p.ID) == "" {
			return nil, eris.Wrapf(ErrMalformedRecord, "refdata: partner %d: partner_id is required", i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return nil, eris.Wrapf(ErrMalformedRecord, "refdata: partner %q: name is required", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, eris.Wrapf(ErrMalformedRecord, "refdata: duplicate partner %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
