package model

// MatchScore is the affinity between one partner and one company. Every
// component lies in [0,1] and Overall is their weighted sum.
type MatchScore struct {
	Overall     float64 `json:"overall_score"`
	Sector      float64 `json:"sector_match"`
	Stage       float64 `json:"stage_match"`
	Founder     float64 `json:"founder_match"`
	Expertise   float64 `json:"expertise_match"`
	Explanation string  `json:"explanation"`
}

// PartnerCompanyMatch pairs a partner and a company with their score.
type PartnerCompanyMatch struct {
	Partner Partner    `json:"partner"`
	Company Company    `json:"company"`
	Score   MatchScore `json:"match_score"`
}

// Matrix maps company name to partner ID to overall score.
type Matrix map[string]map[string]float64

// MatchResult is the response for a single company: its best partners and the
// full score matrix.
type MatchResult struct {
	TopMatches []PartnerCompanyMatch `json:"top_matches"`
	AllScores  Matrix                `json:"all_scores"`
}

// BestMatch names the highest-scoring partner for one company.
type BestMatch struct {
	CompanyName string  `json:"company_name"`
	PartnerID   string  `json:"partner_id"`
	PartnerName string  `json:"partner_name"`
	Overall     float64 `json:"overall_score"`
}

// Overview is the aggregate view across every company.
type Overview struct {
	Matrix      Matrix      `json:"matrix"`
	BestMatches []BestMatch `json:"best_matches"`
}
