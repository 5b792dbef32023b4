package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/smbsocial/postpilot/internal/service"
)

type DispatchJob struct {
	ds service.DispatchService
}

func NewDispatchJob(ds service.DispatchService) *DispatchJob {
	return &DispatchJob{ds: ds}
}

// Run is the periodic dispatcher pass. Retrying transient misses needs no
// queue: a post still pending at the next tick is simply selected again.
func (j *DispatchJob) Run() {
	ctx := context.Background()

	result, err := j.ds.Dispatch(ctx, time.Now().UTC())
	if err != nil {
		slog.Error("dispatch run failed", "error", err.Error())
		return
	}

	if result.AllFailed() {
		slog.Error("dispatch run produced no successful publishes",
			"failed", result.Failed, "skipped", result.Skipped)
		return
	}

	if result.Eligible() > 0 || result.Skipped > 0 {
		slog.Info("dispatch run complete",
			"posted", result.Posted, "failed", result.Failed, "skipped", result.Skipped)
	}
}
