package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealcraft/dealcraft/internal/model"
)

func partner(id string, sectors, stages, expertise []string) model.Partner {
	return model.Partner{
		ID:        id,
		Name:      "Partner " + id,
		Expertise: expertise,
		Preferences: model.InvestmentPreferences{
			Sectors: sectors,
			Stages:  stages,
		},
	}
}

func company(name, sector, stage string) model.Company {
	return model.Company{Name: name, Sector: sector, Stage: stage}
}

func TestScore_WorkedExample(t *testing.T) {
	p := partner("p1", []string{"Fintech"}, []string{"Seed"}, []string{"payments"})
	c := company("PayCo", "Fintech", "Seed")

	s := Score(&p, &c)
	assert.Equal(t, 1.0, s.Sector)
	assert.Equal(t, 1.0, s.Stage)
	assert.Equal(t, 0.0, s.Expertise)
	assert.Equal(t, 0.5, s.Founder)
	assert.InDelta(t, 0.65, s.Overall, 1e-9)
}

func TestScoreSector(t *testing.T) {
	tests := []struct {
		name      string
		sectors   []string
		expertise []string
		sector    string
		want      float64
	}{
		{"exact", []string{"Fintech"}, nil, "Fintech", 1.0},
		{"exact is case-sensitive", []string{"fintech"}, nil, "Fintech", 0.0},
		{"preferred is substring", []string{"Fintech"}, nil, "FintechPayments", 0.8},
		{"expertise is substring", []string{"Healthcare"}, []string{"payments"}, "B2B payments", 0.6},
		{"expertise check runs inside first preferred step", []string{"Healthcare", "Fin"}, []string{"pay"}, "Fintech pay", 0.6},
		{"later preferred substring wins when expertise misses", []string{"Healthcare", "Fin"}, []string{"crypto"}, "Fintech", 0.8},
		{"no preferred sectors gives no expertise credit", nil, []string{"pay"}, "payments", 0.0},
		{"nothing matches", []string{"Healthcare"}, []string{"biotech"}, "Fintech", 0.0},
		{"empty company sector", []string{"Fintech"}, []string{"payments"}, "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := partner("p", tt.sectors, nil, tt.expertise)
			assert.Equal(t, tt.want, scoreSector(&p, tt.sector))
		})
	}
}

func TestScoreExpertise(t *testing.T) {
	tests := []struct {
		name      string
		expertise []string
		sector    string
		want      float64
	}{
		{"verbatim substring", []string{"payments"}, "B2B payments", 1.0},
		{"case-folded substring", []string{"Payments"}, "B2B payments", 0.7},
		{"first qualifying label wins", []string{"fin", "Fintech"}, "Fintech", 0.7},
		{"skips labels that do not match", []string{"biotech", "Fintech"}, "Fintech", 1.0},
		{"no match", []string{"biotech"}, "Fintech", 0.0},
		{"no expertise", nil, "Fintech", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreExpertise(tt.expertise, tt.sector))
		})
	}
}

func TestScoreStage_Binary(t *testing.T) {
	p := partner("p", nil, []string{"Seed", "Series A"}, nil)

	assert.Equal(t, 1.0, scoreStage(&p, "Seed"))
	assert.Equal(t, 1.0, scoreStage(&p, "Series A"))
	assert.Equal(t, 0.0, scoreStage(&p, "Series B"))
	assert.Equal(t, 0.0, scoreStage(&p, "seed"))
	assert.Equal(t, 0.0, scoreStage(&p, ""))
}

func TestScore_Properties(t *testing.T) {
	partners := []model.Partner{
		partner("a", []string{"Fintech", "AI"}, []string{"Seed"}, []string{"payments", "ML"}),
		partner("b", []string{"Health"}, []string{"Series A", "Series B"}, []string{"biotech"}),
		partner("c", nil, nil, nil),
		partner("d", []string{"Climate"}, []string{"Seed"}, []string{"AI", "energy"}),
	}
	companies := []model.Company{
		company("1", "Fintech", "Seed"),
		company("2", "HealthTech AI", "Seed"),
		company("3", "Climate energy", "Series A"),
		company("4", "", ""),
		company("5", "payments infrastructure", "Series B"),
	}

	for pi := range partners {
		for ci := range companies {
			s := Score(&partners[pi], &companies[ci])
			for _, v := range []float64{s.Sector, s.Stage, s.Expertise, s.Founder, s.Overall} {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
			assert.Equal(t, FounderPlaceholder, s.Founder)
			want := 0.4*s.Sector + 0.3*s.Expertise + 0.2*s.Stage + 0.1*s.Founder
			assert.InDelta(t, want, s.Overall, 1e-9)
			assert.True(t, s.Stage == 0 || s.Stage == 1)
			assert.Equal(t, partners[pi].PrefersStage(companies[ci].Stage), s.Stage == 1)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	p := partner("p", []string{"Fintech"}, []string{"Seed"}, []string{"Payments"})
	c := company("PayCo", "Fintech payments", "Seed")

	assert.Equal(t, Score(&p, &c), Score(&p, &c))
}

func TestExplain(t *testing.T) {
	p := partner("p", []string{"Fintech"}, []string{"Seed"}, []string{"Payments"})
	p.Name = "Sarah Chen"

	t.Run("strong sector, partial expertise, preferred stage", func(t *testing.T) {
		c := company("PayCo", "Fintech payments", "Seed")
		s := Score(&p, &c)
		// Sector: "Fintech" ⊂ sector → 0.8, which is not above the strong band.
		assert.Equal(t, 0.8, s.Sector)
		assert.Equal(t, 0.7, s.Expertise)
		assert.Contains(t, s.Explanation, "Match analysis for Sarah Chen and PayCo")
		assert.Contains(t, s.Explanation, "Sector match (8.0/10)")
		assert.Contains(t, s.Explanation, "related to Sarah Chen's focus areas")
		assert.Contains(t, s.Explanation, "Expertise match (7.0/10)")
		assert.Contains(t, s.Explanation, "some relevant expertise")
		assert.Contains(t, s.Explanation, "Stage match (10.0/10)")
		assert.Contains(t, s.Explanation, "preferred stage for Sarah Chen")
	})

	t.Run("exact sector, no expertise, other stage", func(t *testing.T) {
		c := company("Ledger", "Fintech", "Series B")
		s := Score(&p, &c)
		assert.Contains(t, s.Explanation, "Sector match (10.0/10)")
		assert.Contains(t, s.Explanation, "directly in Sarah Chen's focus area")
		assert.Contains(t, s.Explanation, "Expertise match (0.0/10)")
		assert.Contains(t, s.Explanation, "doesn't strongly align")
		assert.Contains(t, s.Explanation, "Stage match (0.0/10)")
		assert.Contains(t, s.Explanation, "outside Sarah Chen's typical focus")
	})

	t.Run("expertise-only sector credit sits in the partial band", func(t *testing.T) {
		q := partner("q", []string{"Health"}, nil, []string{"pay"})
		q.Name = "Ravi"
		c := company("PayCo", "payments", "Seed")
		s := Score(&q, &c)
		assert.Equal(t, 0.6, s.Sector)
		assert.Contains(t, s.Explanation, "Sector match (6.0/10)")
		assert.Contains(t, s.Explanation, "related to Ravi's focus areas")
		assert.Contains(t, s.Explanation, "Ravi has strong expertise relevant to payments")
	})
}
