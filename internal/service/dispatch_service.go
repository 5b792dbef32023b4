package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	config "github.com/smbsocial/postpilot/configs"
	"github.com/smbsocial/postpilot/internal/models"
	"github.com/smbsocial/postpilot/internal/platform"
	"github.com/smbsocial/postpilot/internal/repository"
	"github.com/smbsocial/postpilot/internal/transfer"
	"github.com/smbsocial/postpilot/pkg/utils"
)

// errorMessageLimit bounds the error text stored on a failed post.
const errorMessageLimit = 2000

// AdapterRegistry resolves a platform name to its adapter.
type AdapterRegistry interface {
	ForPlatform(name string) (platform.Adapter, bool)
}

type DispatchService interface {
	Dispatch(ctx context.Context, now time.Time) (*transfer.BatchResult, error)
}

type dispatchService struct {
	cfg      config.Config
	adapters AdapterRegistry
	pr       repository.PostRepository
	cn       repository.ConnectionRepository
	pb       repository.PublicationRepository
}

func NewDispatchService(
	cfg config.Config,
	adapters AdapterRegistry,
	pr repository.PostRepository,
	cn repository.ConnectionRepository,
	pb repository.PublicationRepository) DispatchService {
	return &dispatchService{
		cfg:      cfg,
		adapters: adapters,
		pr:       pr,
		cn:       cn,
		pb:       pb,
	}
}

// Dispatch publishes every pending post whose scheduled time has elapsed.
// Each post is handled independently: an unknown platform is skipped without
// a status change, a missing credential or a failed publish marks that post
// failed, and no outcome aborts the rest of the batch. Terminal transitions
// are guarded on status = pending, so a post is transitioned at most once no
// matter how often dispatch runs.
func (s *dispatchService) Dispatch(ctx context.Context, now time.Time) (*transfer.BatchResult, error) {
	posts, err := s.pr.ListPendingDue(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &transfer.BatchResult{}
	for _, post := range posts {
		adapter, ok := s.adapters.ForPlatform(post.Platform)
		if !ok {
			slog.Info("no adapter for platform, skipping", "post_id", post.ID, "platform", post.Platform)
			result.Skipped++
			continue
		}

		conn, err := s.cn.Get(ctx, post.ClientID, post.Platform)
		if err != nil {
			// Store fault, not a publish outcome: leave the post
			// pending for the next run.
			slog.Error("credential lookup failed", "post_id", post.ID, "error", err.Error())
			continue
		}
		if conn == nil {
			s.fail(ctx, post, fmt.Sprintf("no %s connection for client %d", post.Platform, post.ClientID))
			result.Failed++
			continue
		}

		cred, err := s.credential(conn)
		if err != nil {
			s.fail(ctx, post, fmt.Sprintf("unusable %s credential: %v", post.Platform, err))
			result.Failed++
			continue
		}

		externalID, err := adapter.Publish(ctx, post, cred)
		if err != nil {
			s.fail(ctx, post, err.Error())
			result.Failed++
			continue
		}

		s.posted(ctx, post, externalID, now)
		result.Posted++
	}

	return result, nil
}

// credential decrypts the stored tokens into the read-only view an adapter
// gets for one publish call.
func (s *dispatchService) credential(conn *models.SocialConnection) (platform.Credential, error) {
	key := []byte(s.cfg.SecretKey)

	accessToken, err := utils.Decrypt(conn.AccessToken, key)
	if err != nil {
		return platform.Credential{}, err
	}

	refreshToken := ""
	if conn.RefreshToken != "" {
		refreshToken, err = utils.Decrypt(conn.RefreshToken, key)
		if err != nil {
			return platform.Credential{}, err
		}
	}

	return platform.Credential{
		AccountID:    conn.AccountID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *dispatchService) posted(ctx context.Context, post *models.Post, externalID string, now time.Time) {
	if err := s.pr.MarkPosted(ctx, post.ID, externalID); err != nil {
		slog.Error("failed to mark post posted", "post_id", post.ID, "error", err.Error())
	}

	record := &models.Publication{
		PostID:         post.ID,
		ClientID:       post.ClientID,
		Platform:       post.Platform,
		ExternalPostID: externalID,
		PostedAt:       sql.NullTime{Time: now, Valid: true},
	}
	if _, err := s.pb.Create(ctx, record); err != nil {
		slog.Error("failed to save publication record", "post_id", post.ID, "error", err.Error())
	}
}

func (s *dispatchService) fail(ctx context.Context, post *models.Post, message string) {
	message = truncateError(message, errorMessageLimit)

	if err := s.pr.MarkFailed(ctx, post.ID, message); err != nil {
		slog.Error("failed to mark post failed", "post_id", post.ID, "error", err.Error())
	}

	record := &models.Publication{
		PostID:       post.ID,
		ClientID:     post.ClientID,
		Platform:     post.Platform,
		ErrorMessage: message,
	}
	if _, err := s.pb.Create(ctx, record); err != nil {
		slog.Error("failed to save publication record", "post_id", post.ID, "error", err.Error())
	}
}
