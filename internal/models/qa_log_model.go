package models

import "time"

// QALog archives one review verdict per scored post. Written even on dry
// failures further down the pipeline so scoring history stays reconstructable.
type QALog struct {
	ID           int64     `db:"id" json:"id"`
	ClientID     int64     `db:"client_id" json:"client_id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	Platform     string    `db:"platform" json:"platform"`
	ScoreHook    int       `db:"score_hook" json:"score_hook"`
	ScoreLocal   int       `db:"score_local" json:"score_local"`
	ScoreValue   int       `db:"score_value" json:"score_value"`
	ScoreCTA     int       `db:"score_cta" json:"score_cta"`
	ScorePlat    int       `db:"score_platform" json:"score_platform"`
	ScoreAuth    int       `db:"score_authenticity" json:"score_authenticity"`
	ScoreAverage float64   `db:"score_average" json:"score_average"`
	Verdict      string    `db:"verdict" json:"verdict"`
	Issues       []string  `db:"issues" json:"issues"`
	WasRewritten bool      `db:"was_rewritten" json:"was_rewritten"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
