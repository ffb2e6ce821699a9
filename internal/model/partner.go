package model

// InvestmentPreferences captures what a partner looks for in a deal.
type InvestmentPreferences struct {
	Sectors           []string `json:"sectors" yaml:"sectors"`
	Stages            []string `json:"stage" yaml:"stage"`
	CheckSize         string   `json:"check_size" yaml:"check_size"`
	FounderAttributes []string `json:"founder_attributes" yaml:"founder_attributes"`
}

// Partner is an investment partner from the reference roster. ID is the
// unique key.
type Partner struct {
	ID                   string                `json:"partner_id" yaml:"partner_id"`
	Name                 string                `json:"name" yaml:"name"`
	Title                string                `json:"title" yaml:"title"`
	Bio                  string                `json:"bio" yaml:"bio"`
	Expertise            []string              `json:"expertise" yaml:"expertise"`
	InvestmentPhilosophy string                `json:"investment_philosophy" yaml:"investment_philosophy"`
	Preferences          InvestmentPreferences `json:"investment_preferences" yaml:"investment_preferences"`
	PastInvestments      []string              `json:"past_investments" yaml:"past_investments"`
}

// PrefersSector reports whether sector is exactly one of the partner's
// preferred sectors.
func (p *Partner) PrefersSector(sector string) bool {
	return contains(p.Preferences.Sectors, sector)
}

// PrefersStage reports whether stage is exactly one of the partner's
// preferred stages.
func (p *Partner) PrefersStage(stage string) bool {
	return contains(p.Preferences.Stages, stage)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
