package transfer

const (
	VerdictApproved = "APPROVED"
	VerdictRewrite  = "REWRITE"
)

// DimensionScores are the six 1-10 rubric scores returned by the scoring
// oracle.
type DimensionScores struct {
	HookStrength     int `json:"hook_strength"`
	LocalSpecificity int `json:"local_specificity"`
	ValueDelivery    int `json:"value_delivery"`
	CTAClarity       int `json:"cta_clarity"`
	PlatformFit      int `json:"platform_fit"`
	Authenticity     int `json:"authenticity"`
}

// Values returns the scores in rubric order.
func (s DimensionScores) Values() [6]int {
	return [6]int{s.HookStrength, s.LocalSpecificity, s.ValueDelivery, s.CTAClarity, s.PlatformFit, s.Authenticity}
}

// QAVerdict is the ephemeral result of scoring one post. Average and Verdict
// are recomputed locally from the six scores; the oracle is advisory on text,
// not arithmetic.
type QAVerdict struct {
	Scores          DimensionScores `json:"scores"`
	Average         float64         `json:"average"`
	Verdict         string          `json:"verdict"`
	Issues          []string        `json:"issues"`
	ImprovedVersion string          `json:"improved_version"`
}

// ScoringRequest is what the quality gate hands to the oracle for one post.
type ScoringRequest struct {
	Rubric      string
	Platform    string
	CompanyName string
	City        string
	PostText    string
}

// ReviewSummary reports one quality-gate run.
type ReviewSummary struct {
	Reviewed     int     `json:"reviewed"`
	Approved     int     `json:"approved"`
	Rewritten    int     `json:"rewritten"`
	Skipped      int     `json:"skipped"`
	AverageScore float64 `json:"average_score"`
	DryRun       bool    `json:"dry_run"`
}
