package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/smbsocial/postpilot/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) (int64, error)
	ListByClient(ctx context.Context, clientID int64, status string) ([]*models.Post, error)
	ListDrafts(ctx context.Context, clientID int64, from, to time.Time) ([]*models.Post, error)
	ListPendingDue(ctx context.Context, now time.Time) ([]*models.Post, error)
	ListClientIDsWithDrafts(ctx context.Context, from, to time.Time) ([]int64, error)
	ListScheduledBetween(ctx context.Context, clientID int64, from, to time.Time) ([]*models.Post, error)
	ApplyReview(ctx context.Context, postID int64, score float64, rewritten bool, newText string) error
	MarkPosted(ctx context.Context, postID int64, externalID string) error
	MarkFailed(ctx context.Context, postID int64, errorMessage string) error
	ResetFailed(ctx context.Context, postID int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, client_id, platform, post_text, COALESCE(image_url, ''), scheduled_at, status, qa_score, qa_rewritten, COALESCE(external_post_id, ''), COALESCE(error_message, ''), created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.ClientID, &p.Platform, &p.PostText, &p.ImageURL,
		&p.ScheduledAt, &p.Status, &p.QAScore, &p.QARewritten,
		&p.ExternalPostID, &p.ErrorMessage, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (client_id, platform, post_text, image_url, scheduled_at, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING id
	`

	status := post.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	var id int64
	err := r.db.QueryRowContext(ctx, query, post.ClientID, post.Platform, post.PostText, post.ImageURL, post.ScheduledAt, status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *postRepository) ListByClient(ctx context.Context, clientID int64, status string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE client_id = $1`
	args := []any{clientID}

	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY scheduled_at`

	return r.list(ctx, query, args...)
}

func (r *postRepository) ListDrafts(ctx context.Context, clientID int64, from, to time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE client_id = $1 AND status = $2 AND scheduled_at >= $3 AND scheduled_at < $4
		ORDER BY scheduled_at`
	return r.list(ctx, query, clientID, models.PostStatusDraft, from, to)
}

func (r *postRepository) ListPendingDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE status = $1 AND scheduled_at <= $2
		ORDER BY scheduled_at`
	return r.list(ctx, query, models.PostStatusPending, now)
}

func (r *postRepository) ListClientIDsWithDrafts(ctx context.Context, from, to time.Time) ([]int64, error) {
	query := `SELECT DISTINCT client_id FROM posts
		WHERE status = $1 AND scheduled_at >= $2 AND scheduled_at < $3`
	rows, err := r.db.QueryContext(ctx, query, models.PostStatusDraft, from, to)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postRepository) ListScheduledBetween(ctx context.Context, clientID int64, from, to time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE client_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at`
	return r.list(ctx, query, clientID, from, to)
}

// ApplyReview promotes a reviewed draft to pending. The status guard keeps the
// draft edge owned by the quality gate: a post already out of draft is not
// touched.
func (r *postRepository) ApplyReview(ctx context.Context, postID int64, score float64, rewritten bool, newText string) error {
	query := `
		UPDATE posts
		SET status = $1,
			qa_score = $2,
			qa_rewritten = $3,
			post_text = CASE WHEN $4 THEN $5 ELSE post_text END,
			updated_at = $6
		WHERE id = $7 AND status = $8
	`
	return r.exec(ctx, query, models.PostStatusPending, score, rewritten, rewritten, newText, time.Now(), postID, models.PostStatusDraft)
}

// MarkPosted transitions pending -> posted. The status guard means a post
// leaves pending at most once, so repeated polls never double-transition.
func (r *postRepository) MarkPosted(ctx context.Context, postID int64, externalID string) error {
	query := `
		UPDATE posts
		SET status = $1,
			external_post_id = $2,
			error_message = NULL,
			updated_at = $3
		WHERE id = $4 AND status = $5
	`
	return r.exec(ctx, query, models.PostStatusPosted, externalID, time.Now(), postID, models.PostStatusPending)
}

func (r *postRepository) MarkFailed(ctx context.Context, postID int64, errorMessage string) error {
	query := `
		UPDATE posts
		SET status = $1,
			error_message = $2,
			external_post_id = NULL,
			updated_at = $3
		WHERE id = $4 AND status = $5
	`
	return r.exec(ctx, query, models.PostStatusFailed, errorMessage, time.Now(), postID, models.PostStatusPending)
}

// ResetFailed is the operator-triggered backward edge: failed -> pending.
// No other transition out of a terminal state exists.
func (r *postRepository) ResetFailed(ctx context.Context, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			error_message = NULL,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	return r.exec(ctx, query, models.PostStatusPending, time.Now(), postID, models.PostStatusFailed)
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if affected == 0 {
		slog.Info("post transition skipped, row not in expected status")
		return ErrNoTransition
	}
	return nil
}
