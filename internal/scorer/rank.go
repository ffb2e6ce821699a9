package scorer

import (
	"sort"

	"github.com/dealcraft/dealcraft/internal/model"
)

// RankPartnersForCompany scores every partner against company and returns the
// matches ordered by overall score, highest first. Ties keep the order of
// partners.
func RankPartnersForCompany(company model.Company, partners []model.Partner) []model.PartnerCompanyMatch {
	matches := make([]model.PartnerCompanyMatch, 0, len(partners))
	for i := range partners {
		matches = append(matches, model.PartnerCompanyMatch{
			Partner: partners[i],
			Company: company,
			Score:   Score(&partners[i], &company),
		})
	}
	sortByOverall(matches)
	return matches
}

// RankCompaniesForPartner scores partner against every company and returns
// the matches ordered by overall score, highest first. Ties keep the order of
// companies.
func RankCompaniesForPartner(partner model.Partner, companies []model.Company) []model.PartnerCompanyMatch {
	matches := make([]model.PartnerCompanyMatch, 0, len(companies))
	for i := range companies {
		matches = append(matches, model.PartnerCompanyMatch{
			Partner: partner,
			Company: companies[i],
			Score:   Score(&partner, &companies[i]),
		})
	}
	sortByOverall(matches)
	return matches
}

// TopN returns the first n matches. Shorter inputs are returned whole.
func TopN(matches []model.PartnerCompanyMatch, n int) []model.PartnerCompanyMatch {
	if n <= 0 {
		return []model.PartnerCompanyMatch{}
	}
	if len(matches) <= n {
		return matches
	}
	return matches[:n]
}

func sortByOverall(matches []model.PartnerCompanyMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score.Overall > matches[j].Score.Overall
	})
}
