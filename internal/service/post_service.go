package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/smbsocial/postpilot/internal/models"
	"github.com/smbsocial/postpilot/internal/repository"
	"github.com/smbsocial/postpilot/internal/transfer"
)

type PostService interface {
	List(ctx context.Context, clientID int64, status string) ([]*models.Post, error)
	ResetFailed(ctx context.Context, postID int64) error
	MonthlyReport(ctx context.Context, clientID int64, month string) (*transfer.MonthlyReport, error)
	ListConnections(ctx context.Context, clientID int64) ([]*models.SocialConnection, error)
}

type postService struct {
	pr repository.PostRepository
	cn repository.ConnectionRepository
	pb repository.PublicationRepository
}

func NewPostService(
	pr repository.PostRepository,
	cn repository.ConnectionRepository,
	pb repository.PublicationRepository) PostService {
	return &postService{
		pr: pr,
		cn: cn,
		pb: pb,
	}
}

func (s *postService) List(ctx context.Context, clientID int64, status string) ([]*models.Post, error) {
	if clientID == 0 {
		err := errors.New("client id is required")
		slog.Info(err.Error())
		return nil, err
	}
	return s.pr.ListByClient(ctx, clientID, status)
}

// ResetFailed moves a failed post back to pending so the next dispatcher run
// retries it. This is the only backward edge in the lifecycle and is only
// ever operator-triggered.
func (s *postService) ResetFailed(ctx context.Context, postID int64) error {
	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return fmt.Errorf("post %d not found", postID)
	}
	if post.Status != models.PostStatusFailed {
		return fmt.Errorf("post %d is %s, only failed posts can be reset", postID, post.Status)
	}
	return s.pr.ResetFailed(ctx, postID)
}

// MonthlyReport collects what was published during the month, grouped per
// platform, and what is still scheduled.
func (s *postService) MonthlyReport(ctx context.Context, clientID int64, month string) (*transfer.MonthlyReport, error) {
	from, to, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	publications, err := s.pb.ListByClientBetween(ctx, clientID, from, to)
	if err != nil {
		return nil, err
	}

	published := make(map[string][]*models.Publication)
	for _, p := range publications {
		if p.ExternalPostID == "" {
			continue
		}
		published[p.Platform] = append(published[p.Platform], p)
	}

	upcoming, err := s.pr.ListByClient(ctx, clientID, models.PostStatusPending)
	if err != nil {
		return nil, err
	}

	return &transfer.MonthlyReport{
		ClientID:  clientID,
		Month:     month,
		Published: published,
		Upcoming:  upcoming,
	}, nil
}

func (s *postService) ListConnections(ctx context.Context, clientID int64) ([]*models.SocialConnection, error) {
	if clientID == 0 {
		err := errors.New("client id is required")
		slog.Info(err.Error())
		return nil, err
	}
	return s.cn.ListByClient(ctx, clientID)
}
