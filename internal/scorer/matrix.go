package scorer

import (
	"github.com/dealcraft/dealcraft/internal/model"
)

// BuildMatrix scores the full partner x company cross product. The result is
// keyed by company name, then partner ID.
func BuildMatrix(partners []model.Partner, companies []model.Company) model.Matrix {
	m := make(model.Matrix, len(companies))
	for ci := range companies {
		row := make(map[string]float64, len(partners))
		for pi := range partners {
			row[partners[pi].ID] = Score(&partners[pi], &companies[ci]).Overall
		}
		m[companies[ci].Name] = row
	}
	return m
}

// BestMatches returns the top-ranked partner for each company, in company
// order. Companies are skipped when there are no partners.
func BestMatches(partners []model.Partner, companies []model.Company) []model.BestMatch {
	best := make([]model.BestMatch, 0, len(companies))
	if len(partners) == 0 {
		return best
	}
	for _, c := range companies {
		top := RankPartnersForCompany(c, partners)[0]
		best = append(best, model.BestMatch{
			CompanyName: c.Name,
			PartnerID:   top.Partner.ID,
			PartnerName: top.Partner.Name,
			Overall:     top.Score.Overall,
		})
	}
	return best
}
