package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/models"
	"github.com/smbsocial/postpilot/internal/repository"
	"github.com/smbsocial/postpilot/internal/transfer"
)

// ApprovalThreshold is the minimum recomputed average for an APPROVED
// verdict. Enforced here, never taken from the oracle, so the policy lives in
// one place.
const ApprovalThreshold = 7.0

// qaRetries is how many immediate retries a failed or malformed scoring call
// gets before the post is skipped and left in draft.
const qaRetries = 2

type QAService interface {
	Review(ctx context.Context, clientID int64, month string, dryRun bool) (*transfer.ReviewSummary, error)
}

type qaService struct {
	cfg    config.Config
	scorer Scorer
	cr     repository.ClientRepository
	pr     repository.PostRepository
	ql     repository.QALogRepository
}

func NewQAService(
	cfg config.Config,
	scorer Scorer,
	cr repository.ClientRepository,
	pr repository.PostRepository,
	ql repository.QALogRepository) QAService {
	return &qaService{
		cfg:    cfg,
		scorer: scorer,
		cr:     cr,
		pr:     pr,
		ql:     ql,
	}
}

// Review scores every draft post of the client's month, promotes each scored
// post to pending (replacing its text when the oracle supplied a rewrite) and
// archives one qa_log row per reviewed post. A post whose scoring fails after
// retries is skipped and stays in draft; one bad oracle call never blocks the
// rest of the batch. In dry-run mode scoring happens but nothing is written.
func (s *qaService) Review(ctx context.Context, clientID int64, month string, dryRun bool) (*transfer.ReviewSummary, error) {
	client, err := s.cr.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("client %d not found", clientID)
	}

	from, to, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	drafts, err := s.pr.ListDrafts(ctx, clientID, from, to)
	if err != nil {
		return nil, err
	}

	rubric := LoadRubric(s.cfg.RubricPath)
	summary := &transfer.ReviewSummary{DryRun: dryRun}
	totalScore := 0.0

	for _, post := range drafts {
		verdict, err := s.scoreWithRetry(ctx, &transfer.ScoringRequest{
			Rubric:      rubric,
			Platform:    post.Platform,
			CompanyName: client.Name,
			City:        client.Location(),
			PostText:    post.PostText,
		})
		if err != nil {
			slog.Info("scoring failed, post left in draft", "post_id", post.ID, "error", err.Error())
			summary.Skipped++
			continue
		}

		// The oracle is advisory on text, not arithmetic: average and
		// verdict are recomputed from the six scores.
		verdict.Average = AverageScore(verdict.Scores.Values())
		if verdict.Average >= ApprovalThreshold {
			verdict.Verdict = transfer.VerdictApproved
		} else {
			verdict.Verdict = transfer.VerdictRewrite
		}

		rewritten := verdict.Verdict == transfer.VerdictRewrite && strings.TrimSpace(verdict.ImprovedVersion) != ""

		summary.Reviewed++
		totalScore += verdict.Average
		if verdict.Verdict == transfer.VerdictApproved {
			summary.Approved++
		} else {
			summary.Rewritten++
		}

		if dryRun {
			continue
		}

		s.apply(ctx, post, verdict, rewritten)
	}

	if summary.Reviewed > 0 {
		summary.AverageScore = math.Round(totalScore/float64(summary.Reviewed)*10) / 10
	}
	return summary, nil
}

// apply commits one verdict: the draft -> pending transition plus the audit
// row. The audit row is written even when the post mutation fails, so the
// scoring history stays reconstructable.
func (s *qaService) apply(ctx context.Context, post *models.Post, verdict *transfer.QAVerdict, rewritten bool) {
	newText := ""
	if rewritten {
		newText = strings.TrimSpace(verdict.ImprovedVersion)
	}

	if err := s.pr.ApplyReview(ctx, post.ID, verdict.Average, rewritten, newText); err != nil {
		slog.Error("failed to apply review", "post_id", post.ID, "error", err.Error())
	}

	entry := &models.QALog{
		ClientID:     post.ClientID,
		PostID:       post.ID,
		Platform:     post.Platform,
		ScoreHook:    verdict.Scores.HookStrength,
		ScoreLocal:   verdict.Scores.LocalSpecificity,
		ScoreValue:   verdict.Scores.ValueDelivery,
		ScoreCTA:     verdict.Scores.CTAClarity,
		ScorePlat:    verdict.Scores.PlatformFit,
		ScoreAuth:    verdict.Scores.Authenticity,
		ScoreAverage: verdict.Average,
		Verdict:      verdict.Verdict,
		Issues:       verdict.Issues,
		WasRewritten: rewritten,
	}
	if _, err := s.ql.Create(ctx, entry); err != nil {
		slog.Error("failed to write qa log", "post_id", post.ID, "error", err.Error())
	}
}

func (s *qaService) scoreWithRetry(ctx context.Context, req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
	var lastErr error
	for attempt := 0; attempt <= qaRetries; attempt++ {
		verdict, err := s.scorer.Score(ctx, req)
		if err == nil {
			return verdict, nil
		}
		lastErr = err
		if attempt < qaRetries {
			slog.Info("retrying scoring call", "attempt", attempt+1, "error", err.Error())
		}
	}
	return nil, fmt.Errorf("scoring failed after %d attempts: %w", qaRetries+1, lastErr)
}
