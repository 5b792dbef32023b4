package models

import (
	"database/sql"
	"time"
)

// SocialConnection is one stored credential per (client, platform, account).
// AccountID is the Facebook page id, the Instagram user id, or the Google
// Business location name ("accounts/123/locations/456") depending on platform.
// Tokens are AES-GCM encrypted at rest.
type SocialConnection struct {
	ID             int64        `db:"id" json:"id"`
	ClientID       int64        `db:"client_id" json:"client_id"`
	Platform       string       `db:"platform" json:"platform"`
	AccountID      string       `db:"account_id" json:"account_id"`
	AccountName    string       `db:"account_name" json:"account_name"`
	AccessToken    string       `db:"access_token" json:"-"`
	RefreshToken   string       `db:"refresh_token" json:"-"`
	TokenExpiresAt sql.NullTime `db:"token_expires_at" json:"token_expires_at,omitempty"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}
