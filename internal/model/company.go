package model

import "strings"

// Investment stages used by the reference data.
const (
	StagePreSeed = "Pre-Seed"
	StageSeed    = "Seed"
	StageSeriesA = "Series A"
	StageSeriesB = "Series B"
	StageGrowth  = "Growth"
)

// FounderProfile describes one founder on a startup application.
type FounderProfile struct {
	Name       string   `json:"name" yaml:"name"`
	Background string   `json:"background,omitempty" yaml:"background,omitempty"`
	LinkedIn   string   `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Company is a startup record from the preloaded reference data. Name is the
// unique key. Only Sector and Stage participate in scoring.
type Company struct {
	Name           string           `json:"company_name" yaml:"company_name"`
	Founders       []FounderProfile `json:"founders,omitempty" yaml:"founders,omitempty"`
	DeckURL        string           `json:"deck_url,omitempty" yaml:"deck_url,omitempty"`
	Sector         string           `json:"sector" yaml:"sector"`
	Stage          string           `json:"stage,omitempty" yaml:"stage,omitempty"`
	Problem        string           `json:"problem,omitempty" yaml:"problem,omitempty"`
	Solution       string           `json:"solution,omitempty" yaml:"solution,omitempty"`
	MarketSize     string           `json:"market_size,omitempty" yaml:"market_size,omitempty"`
	Traction       string           `json:"traction,omitempty" yaml:"traction,omitempty"`
	FundraisingAsk string           `json:"fundraising_ask,omitempty" yaml:"fundraising_ask,omitempty"`
}

// DefaultStage infers a stage for companies that arrive without one.
// AI companies are assumed to be raising a seed round.
func DefaultStage(sector string) string {
	if strings.Contains(sector, "AI") {
		return StageSeed
	}
	return StageSeriesA
}

// WithDefaults returns a copy of c with Stage filled in when missing.
func (c Company) WithDefaults() Company {
	if strings.TrimSpace(c.Stage) == "" {
		c.Stage = DefaultStage(c.Sector)
	}
	return c
}
