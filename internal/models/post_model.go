package models

import (
	"database/sql"
	"time"
)

type Post struct {
	ID             int64           `db:"id" json:"id"`
	ClientID       int64           `db:"client_id" json:"client_id"`
	Platform       string          `db:"platform" json:"platform"`
	PostText       string          `db:"post_text" json:"post_text"`
	ImageURL       string          `db:"image_url" json:"image_url,omitempty"`
	ScheduledAt    time.Time       `db:"scheduled_at" json:"scheduled_at"`
	Status         string          `db:"status" json:"status"`
	QAScore        sql.NullFloat64 `db:"qa_score" json:"qa_score,omitempty"`
	QARewritten    bool            `db:"qa_rewritten" json:"qa_rewritten"`
	ExternalPostID string          `db:"external_post_id" json:"external_post_id,omitempty"`
	ErrorMessage   string          `db:"error_message" json:"error_message,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft   = "draft"
	PostStatusPending = "pending"
	PostStatusPosted  = "posted"
	PostStatusFailed  = "failed"
)

const (
	PlatformFacebook       = "facebook"
	PlatformInstagram      = "instagram"
	PlatformGoogleBusiness = "google_business"
)

// Terminal reports whether the status admits no further dispatcher transition.
func Terminal(status string) bool {
	return status == PostStatusPosted || status == PostStatusFailed
}
