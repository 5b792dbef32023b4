package service

import (
	"context"
	"testing"

	"github.com/smbsocial/postpilot/internal/models"
)

func newPostFixture(posts ...*models.Post) (PostService, *fakePostRepo, *fakePublicationRepo) {
	pr := newFakePostRepo(posts...)
	cn := &fakeConnectionRepo{connections: make(map[string]*models.SocialConnection)}
	pb := &fakePublicationRepo{}
	return NewPostService(pr, cn, pb), pr, pb
}

func TestResetFailedMovesPostBackToPending(t *testing.T) {
	failed := pendingPost(1, 1, models.PlatformFacebook, "")
	failed.Status = models.PostStatusFailed
	failed.ErrorMessage = "connection refused"

	ps, pr, _ := newPostFixture(failed)
	if err := ps.ResetFailed(context.Background(), 1); err != nil {
		t.Fatalf("ResetFailed: %v", err)
	}

	post, _ := pr.GetByID(context.Background(), 1)
	if post.Status != models.PostStatusPending {
		t.Fatalf("expected pending, got %s", post.Status)
	}
}

func TestResetFailedRejectsNonFailedPost(t *testing.T) {
	ps, pr, _ := newPostFixture(
		pendingPost(1, 1, models.PlatformFacebook, ""),
	)

	if err := ps.ResetFailed(context.Background(), 1); err == nil {
		t.Fatal("expected error resetting a pending post")
	}
	post, _ := pr.GetByID(context.Background(), 1)
	if post.Status != models.PostStatusPending {
		t.Fatalf("status must be unchanged, got %s", post.Status)
	}

	if err := ps.ResetFailed(context.Background(), 99); err == nil {
		t.Fatal("expected error for unknown post")
	}
}

func TestListRequiresClientID(t *testing.T) {
	ps, _, _ := newPostFixture()
	if _, err := ps.List(context.Background(), 0, ""); err == nil {
		t.Fatal("expected error for missing client id")
	}
}

func TestMonthlyReportGroupsByPlatform(t *testing.T) {
	upcoming := pendingPost(1, 1, models.PlatformInstagram, "")

	ps, _, pb := newPostFixture(upcoming)
	pb.records = []*models.Publication{
		{ClientID: 1, PostID: 10, Platform: models.PlatformFacebook, ExternalPostID: "fb-1"},
		{ClientID: 1, PostID: 11, Platform: models.PlatformFacebook, ExternalPostID: "fb-2"},
		{ClientID: 1, PostID: 12, Platform: models.PlatformInstagram, ExternalPostID: "ig-1"},
		{ClientID: 1, PostID: 13, Platform: models.PlatformInstagram, ErrorMessage: "missing image"},
	}

	report, err := ps.MonthlyReport(context.Background(), 1, "2026-03")
	if err != nil {
		t.Fatalf("MonthlyReport: %v", err)
	}

	if len(report.Published[models.PlatformFacebook]) != 2 {
		t.Fatalf("expected 2 facebook publications, got %d", len(report.Published[models.PlatformFacebook]))
	}
	if len(report.Published[models.PlatformInstagram]) != 1 {
		t.Fatalf("failed attempts must not count as published: %+v", report.Published[models.PlatformInstagram])
	}
	if len(report.Upcoming) != 1 || report.Upcoming[0].ID != 1 {
		t.Fatalf("unexpected upcoming posts: %+v", report.Upcoming)
	}
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	ps, _, _ := newPostFixture()
	if _, err := ps.MonthlyReport(context.Background(), 1, "march 2026"); err == nil {
		t.Fatal("expected error for malformed month")
	}
}
