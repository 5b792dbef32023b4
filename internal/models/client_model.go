package models

import "time"

type Client struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	City      string    `db:"city" json:"city"`
	State     string    `db:"state" json:"state"`
	Timezone  string    `db:"timezone" json:"timezone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Location returns the best available locality string for prompts.
func (c *Client) Location() string {
	if c.City != "" {
		return c.City
	}
	if c.State != "" {
		return c.State
	}
	return "their local area"
}
