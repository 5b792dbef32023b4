package service

import (
	"context"
	"errors"
	"testing"
	"time"

	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/models"
	"github.com/smbsocial/postpilot/internal/transfer"
)

func goodScores() transfer.DimensionScores {
	return transfer.DimensionScores{
		HookStrength:     8,
		LocalSpecificity: 9,
		ValueDelivery:    8,
		CTAClarity:       7,
		PlatformFit:      8,
		Authenticity:     8,
	}
}

func weakScores() transfer.DimensionScores {
	return transfer.DimensionScores{
		HookStrength:     4,
		LocalSpecificity: 5,
		ValueDelivery:    6,
		CTAClarity:       4,
		PlatformFit:      6,
		Authenticity:     5,
	}
}

func draftPost(id, clientID int64, text string) *models.Post {
	return &models.Post{
		ID:          id,
		ClientID:    clientID,
		Platform:    models.PlatformFacebook,
		PostText:    text,
		ScheduledAt: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		Status:      models.PostStatusDraft,
	}
}

func newQAFixture(posts []*models.Post, scorer Scorer) (QAService, *fakePostRepo, *fakeQALogRepo) {
	pr := newFakePostRepo(posts...)
	ql := &fakeQALogRepo{}
	cr := &fakeClientRepo{clients: map[int64]*models.Client{
		1: {ID: 1, Name: "Springfield Heating & Air", City: "Springfield"},
	}}
	qa := NewQAService(config.Config{}, scorer, cr, pr, ql)
	return qa, pr, ql
}

func TestReviewApprovesStrongPost(t *testing.T) {
	scorer := &fakeScorer{score: func(req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
		return &transfer.QAVerdict{
			Scores: goodScores(),
			// A lying oracle: both should be overridden locally.
			Average: 1.0,
			Verdict: transfer.VerdictRewrite,
		}, nil
	}}

	qa, pr, ql := newQAFixture([]*models.Post{draftPost(1, 1, "original text")}, scorer)
	summary, err := qa.Review(context.Background(), 1, "2026-03", false)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	if summary.Reviewed != 1 || summary.Approved != 1 || summary.Rewritten != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	post, _ := pr.GetByID(context.Background(), 1)
	if post.Status != models.PostStatusPending {
		t.Fatalf("expected pending, got %s", post.Status)
	}
	if post.PostText != "original text" {
		t.Fatalf("approved post text must be kept, got %q", post.PostText)
	}
	if post.QARewritten {
		t.Fatal("approved post must not be marked rewritten")
	}
	if !post.QAScore.Valid || post.QAScore.Float64 != 8.0 {
		t.Fatalf("expected qa_score 8.0, got %+v", post.QAScore)
	}

	if len(ql.entries) != 1 {
		t.Fatalf("expected one qa_log entry, got %d", len(ql.entries))
	}
	if ql.entries[0].Verdict != transfer.VerdictApproved || ql.entries[0].ScoreAverage != 8.0 {
		t.Fatalf("unexpected qa_log entry: %+v", ql.entries[0])
	}
}

func TestReviewAppliesRewrite(t *testing.T) {
	scorer := &fakeScorer{score: func(req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
		return &transfer.QAVerdict{
			Scores:          weakScores(),
			Issues:          []string{"generic opener"},
			ImprovedVersion: "much better text",
		}, nil
	}}

	qa, pr, ql := newQAFixture([]*models.Post{draftPost(1, 1, "weak text")}, scorer)
	summary, err := qa.Review(context.Background(), 1, "2026-03", false)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	if summary.Rewritten != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	post, _ := pr.GetByID(context.Background(), 1)
	if post.Status != models.PostStatusPending {
		t.Fatalf("expected pending, got %s", post.Status)
	}
	if post.PostText != "much better text" {
		t.Fatalf("expected rewritten text, got %q", post.PostText)
	}
	if !post.QARewritten {
		t.Fatal("expected qa_rewritten = true")
	}
	if !ql.entries[0].WasRewritten {
		t.Fatalf("qa_log must record the rewrite: %+v", ql.entries[0])
	}
}

func TestReviewRewriteVerdictWithoutTextKeepsOriginal(t *testing.T) {
	scorer := &fakeScorer{score: func(req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
		return &transfer.QAVerdict{Scores: weakScores(), ImprovedVersion: "   "}, nil
	}}

	qa, pr, _ := newQAFixture([]*models.Post{draftPost(1, 1, "weak text")}, scorer)
	if _, err := qa.Review(context.Background(), 1, "2026-03", false); err != nil {
		t.Fatalf("Review: %v", err)
	}

	post, _ := pr.GetByID(context.Background(), 1)
	if post.PostText != "weak text" {
		t.Fatalf("original text must be kept, got %q", post.PostText)
	}
	if post.QARewritten {
		t.Fatal("blank rewrite must not set qa_rewritten")
	}
	if post.Status != models.PostStatusPending {
		t.Fatalf("post still moves to pending, got %s", post.Status)
	}
}

func TestReviewDryRunCommitsNothing(t *testing.T) {
	scorer := &fakeScorer{score: func(req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
		return &transfer.QAVerdict{Scores: goodScores()}, nil
	}}

	qa, pr, ql := newQAFixture([]*models.Post{draftPost(1, 1, "text")}, scorer)
	summary, err := qa.Review(context.Background(), 1, "2026-03", true)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	if summary.Reviewed != 1 || !summary.DryRun {
		t.Fatalf("dry run must still score: %+v", summary)
	}
	if scorer.calls != 1 {
		t.Fatalf("expected one scoring call, got %d", scorer.calls)
	}

	post, _ := pr.GetByID(context.Background(), 1)
	if post.Status != models.PostStatusDraft {
		t.Fatalf("dry run must not mutate the post, got %s", post.Status)
	}
	if len(ql.entries) != 0 {
		t.Fatalf("dry run must not write qa_log, got %d entries", len(ql.entries))
	}
}

func TestReviewSkipsPostAfterRetriesAndContinues(t *testing.T) {
	scorer := &fakeScorer{score: func(req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
		if req.PostText == "bad" {
			return nil, errors.New("oracle exploded")
		}
		return &transfer.QAVerdict{Scores: goodScores()}, nil
	}}

	posts := []*models.Post{
		draftPost(1, 1, "bad"),
		draftPost(2, 1, "fine"),
	}
	qa, pr, ql := newQAFixture(posts, scorer)
	summary, err := qa.Review(context.Background(), 1, "2026-03", false)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	if summary.Skipped != 1 || summary.Reviewed != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	// 1 attempt + 2 retries for the failing post, 1 for the good one.
	if scorer.calls != 4 {
		t.Fatalf("expected 4 scoring calls, got %d", scorer.calls)
	}

	bad, _ := pr.GetByID(context.Background(), 1)
	if bad.Status != models.PostStatusDraft {
		t.Fatalf("skipped post must stay in draft, got %s", bad.Status)
	}
	good, _ := pr.GetByID(context.Background(), 2)
	if good.Status != models.PostStatusPending {
		t.Fatalf("other post must still be reviewed, got %s", good.Status)
	}
	if len(ql.entries) != 1 || ql.entries[0].PostID != 2 {
		t.Fatalf("only the reviewed post gets a qa_log row: %+v", ql.entries)
	}
}

func TestReviewUnknownClient(t *testing.T) {
	scorer := &fakeScorer{score: func(req *transfer.ScoringRequest) (*transfer.QAVerdict, error) {
		t.Fatal("scorer must not be called")
		return nil, nil
	}}

	qa, _, _ := newQAFixture(nil, scorer)
	if _, err := qa.Review(context.Background(), 42, "2026-03", false); err == nil {
		t.Fatal("expected error for unknown client")
	}
}
