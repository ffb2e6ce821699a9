package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealcraft/dealcraft/internal/model"
)

func fixtureRoster() ([]model.Partner, []model.Company) {
	partners := []model.Partner{
		partner("sarah", []string{"Fintech", "AI"}, []string{"Seed"}, []string{"payments", "ML"}),
		partner("marcus", []string{"Health"}, []string{"Series A"}, []string{"biotech"}),
		partner("elena", []string{"Climate"}, []string{"Seed", "Series A"}, []string{"energy"}),
	}
	companies := []model.Company{
		company("PayFlow", "Fintech payments", "Seed"),
		company("GeneWorks", "HealthTech", "Series A"),
		company("SunGrid", "Climate energy", "Series A"),
		company("Orbit", "Space", "Series B"),
	}
	return partners, companies
}

func TestBuildMatrix_MatchesIndividualScores(t *testing.T) {
	partners, companies := fixtureRoster()

	m := BuildMatrix(partners, companies)
	require.Len(t, m, len(companies))

	for ci := range companies {
		row, ok := m[companies[ci].Name]
		require.True(t, ok, companies[ci].Name)
		require.Len(t, row, len(partners))
		for pi := range partners {
			want := Score(&partners[pi], &companies[ci]).Overall
			assert.Equal(t, want, row[partners[pi].ID], "%s/%s", companies[ci].Name, partners[pi].ID)
		}
	}
}

func TestBuildMatrix_AgreesWithRanking(t *testing.T) {
	partners, companies := fixtureRoster()
	m := BuildMatrix(partners, companies)

	for _, c := range companies {
		for _, match := range RankPartnersForCompany(c, partners) {
			assert.Equal(t, match.Score.Overall, m[c.Name][match.Partner.ID])
		}
	}
}

func TestBuildMatrix_Empty(t *testing.T) {
	partners, companies := fixtureRoster()

	assert.Empty(t, BuildMatrix(partners, nil))

	m := BuildMatrix(nil, companies)
	require.Len(t, m, len(companies))
	assert.Empty(t, m["PayFlow"])
}

func TestBestMatches(t *testing.T) {
	partners, companies := fixtureRoster()

	best := BestMatches(partners, companies)
	require.Len(t, best, len(companies))

	assert.Equal(t, "PayFlow", best[0].CompanyName)
	assert.Equal(t, "sarah", best[0].PartnerID)
	assert.Equal(t, "Partner sarah", best[0].PartnerName)

	assert.Equal(t, "GeneWorks", best[1].CompanyName)
	assert.Equal(t, "marcus", best[1].PartnerID)

	assert.Equal(t, "SunGrid", best[2].CompanyName)
	assert.Equal(t, "elena", best[2].PartnerID)

	// Every partner scores 0.05 for Orbit, so the first listed wins.
	assert.Equal(t, "Orbit", best[3].CompanyName)
	assert.Equal(t, "sarah", best[3].PartnerID)
	assert.InDelta(t, 0.05, best[3].Overall, 1e-9)

	m := BuildMatrix(partners, companies)
	for _, b := range best {
		assert.Equal(t, m[b.CompanyName][b.PartnerID], b.Overall)
	}
}

func TestBestMatches_NoPartners(t *testing.T) {
	_, companies := fixtureRoster()
	assert.Empty(t, BestMatches(nil, companies))
}
