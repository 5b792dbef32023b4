package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/smbsocial/postpilot/internal/repository"
	"github.com/smbsocial/postpilot/internal/service"
)

type QAJob struct {
	qa service.QAService
	pr repository.PostRepository
}

func NewQAJob(qa service.QAService, pr repository.PostRepository) *QAJob {
	return &QAJob{qa: qa, pr: pr}
}

// Run reviews the current calendar month's drafts for every client that has
// any. One client's failure does not stop the sweep.
func (j *QAJob) Run() {
	ctx := context.Background()

	now := time.Now().UTC()
	month := now.Format("2006-01")
	from, _, err := service.MonthRange(month)
	if err != nil {
		slog.Error(err.Error())
		return
	}

	clientIDs, err := j.pr.ListClientIDsWithDrafts(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		slog.Error("qa sweep failed to list clients", "error", err.Error())
		return
	}

	for _, clientID := range clientIDs {
		summary, err := j.qa.Review(ctx, clientID, month, false)
		if err != nil {
			slog.Error("qa sweep failed for client", "client_id", clientID, "error", err.Error())
			continue
		}
		slog.Info("qa sweep complete for client",
			"client_id", clientID,
			"reviewed", summary.Reviewed,
			"approved", summary.Approved,
			"rewritten", summary.Rewritten,
			"skipped", summary.Skipped)
	}
}
