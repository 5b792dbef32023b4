package transfer

import "github.com/smbsocial/postpilot/internal/models"

// MonthlyReport groups one client's month: what went out and what is still
// scheduled. Feeds the reporting surface; rendering is up to the consumer.
type MonthlyReport struct {
	ClientID  int64                            `json:"client_id"`
	Month     string                           `json:"month"`
	Published map[string][]*models.Publication `json:"published"`
	Upcoming  []*models.Post                   `json:"upcoming"`
}
