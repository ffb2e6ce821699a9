// Package scorer implements partner-company affinity scoring, ranking and
// the partner x company score matrix.
package scorer

import (
	"fmt"
	"strings"

	"github.com/dealcraft/dealcraft/internal/model"
)

// Component weights (sum = 1).
const (
	SectorWeight    = 0.4
	ExpertiseWeight = 0.3
	StageWeight     = 0.2
	FounderWeight   = 0.1
)

// Sector affinity levels.
const (
	sectorExact     = 1.0
	sectorPartial   = 0.8
	sectorExpertise = 0.6
)

// Expertise affinity levels.
const (
	expertiseExact    = 1.0
	expertiseFolded   = 0.7
	expertiseNoSignal = 0.0
)

// FounderPlaceholder is the fixed founder affinity. No founder data is
// evaluated yet; see DESIGN.md.
const FounderPlaceholder = 0.5

// Explanation bands. Both bounds are strict.
const (
	strongBand  = 0.8
	partialBand = 0.5
)

// Score computes the affinity between a partner and a company. It is pure and
// total: any pair of records yields a result.
func Score(p *model.Partner, c *model.Company) model.MatchScore {
	s := model.MatchScore{
		Sector:    scoreSector(p, c.Sector),
		Stage:     scoreStage(p, c.Stage),
		Expertise: scoreExpertise(p.Expertise, c.Sector),
		Founder:   FounderPlaceholder,
	}
	s.Overall = Overall(s)
	s.Explanation = explain(p, c, s)
	return s
}

// Overall returns the weighted sum of the component scores in s.
func Overall(s model.MatchScore) float64 {
	return SectorWeight*s.Sector +
		ExpertiseWeight*s.Expertise +
		StageWeight*s.Stage +
		FounderWeight*s.Founder
}

// sectorRule scores one preferred sector against the company sector. ok is
// false when the rule does not apply and scanning should continue.
type sectorRule func(preferred, sector string) (score float64, ok bool)

// scoreSector applies, in order: exact membership; then for each preferred
// sector, a substring match on that sector followed by an expertise
// substring match. The expertise rule is evaluated inside each preferred
// sector step, so a partner with no preferred sectors never earns it.
func scoreSector(p *model.Partner, sector string) float64 {
	if p.PrefersSector(sector) {
		return sectorExact
	}

	rules := []sectorRule{
		func(preferred, sector string) (float64, bool) {
			return sectorPartial, strings.Contains(sector, preferred)
		},
		func(_, sector string) (float64, bool) {
			return sectorExpertise, anySubstring(p.Expertise, sector)
		},
	}

	for _, preferred := range p.Preferences.Sectors {
		for _, rule := range rules {
			if score, ok := rule(preferred, sector); ok {
				return score
			}
		}
	}
	return 0
}

func scoreStage(p *model.Partner, stage string) float64 {
	if p.PrefersStage(stage) {
		return 1
	}
	return 0
}

// scoreExpertise returns the score of the first expertise label that matches
// the sector, either verbatim or after lower-casing both sides.
func scoreExpertise(expertise []string, sector string) float64 {
	lowerSector := strings.ToLower(sector)
	for _, e := range expertise {
		if strings.Contains(sector, e) {
			return expertiseExact
		}
		if strings.Contains(lowerSector, strings.ToLower(e)) {
			return expertiseFolded
		}
	}
	return expertiseNoSignal
}

func anySubstring(labels []string, s string) bool {
	for _, l := range labels {
		if strings.Contains(s, l) {
			return true
		}
	}
	return false
}

func explain(p *model.Partner, c *model.Company, s model.MatchScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Match analysis for %s and %s:\n\n", p.Name, c.Name)

	fmt.Fprintf(&b, "Sector match (%.1f/10): ", s.Sector*10)
	switch {
	case s.Sector > strongBand:
		fmt.Fprintf(&b, "%s operates in %s, which is directly in %s's focus area.\n", c.Name, c.Sector, p.Name)
	case s.Sector > partialBand:
		fmt.Fprintf(&b, "%s operates in %s, which is related to %s's focus areas.\n", c.Name, c.Sector, p.Name)
	default:
		fmt.Fprintf(&b, "%s operates in %s, which is outside %s's typical focus.\n", c.Name, c.Sector, p.Name)
	}

	fmt.Fprintf(&b, "Expertise match (%.1f/10): ", s.Expertise*10)
	switch {
	case s.Expertise > strongBand:
		fmt.Fprintf(&b, "%s has strong expertise relevant to %s.\n", p.Name, c.Sector)
	case s.Expertise > partialBand:
		fmt.Fprintf(&b, "%s has some relevant expertise for %s.\n", p.Name, c.Sector)
	default:
		fmt.Fprintf(&b, "%s's expertise doesn't strongly align with %s.\n", p.Name, c.Sector)
	}

	fmt.Fprintf(&b, "Stage match (%.1f/10): ", s.Stage*10)
	switch {
	case s.Stage > strongBand:
		fmt.Fprintf(&b, "%s is at the %s stage, which is a preferred stage for %s.\n", c.Name, c.Stage, p.Name)
	case s.Stage > partialBand:
		fmt.Fprintf(&b, "%s is at the %s stage, which is related to %s's preferred stages.\n", c.Name, c.Stage, p.Name)
	default:
		fmt.Fprintf(&b, "%s is at the %s stage, which is outside %s's typical focus.\n", c.Name, c.Stage, p.Name)
	}

	return b.String()
}
