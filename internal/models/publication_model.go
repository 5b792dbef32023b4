package models

import (
	"database/sql"
	"time"
)

// Publication is the companion record appended for every dispatch attempt
// outcome: either an external post id or an error message, never both.
type Publication struct {
	ID             int64        `db:"id" json:"id"`
	PostID         int64        `db:"post_id" json:"post_id"`
	ClientID       int64        `db:"client_id" json:"client_id"`
	Platform       string       `db:"platform" json:"platform"`
	ExternalPostID string       `db:"external_post_id" json:"external_post_id,omitempty"`
	ErrorMessage   string       `db:"error_message" json:"error_message,omitempty"`
	PostedAt       sql.NullTime `db:"posted_at" json:"posted_at,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
}
