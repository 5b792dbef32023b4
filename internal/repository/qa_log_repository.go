package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
	"github.com/smbsocial/postpilot/internal/models"
)

type QALogRepository interface {
	Create(ctx context.Context, entry *models.QALog) (int64, error)
	ListByPostID(ctx context.Context, postID int64) ([]*models.QALog, error)
}

type qaLogRepository struct {
	db *sql.DB
}

func NewQALogRepository(db *sql.DB) QALogRepository {
	return &qaLogRepository{db: db}
}

func (r *qaLogRepository) Create(ctx context.Context, entry *models.QALog) (int64, error) {
	query := `
		INSERT INTO qa_log (client_id, post_id, platform,
			score_hook, score_local, score_value, score_cta, score_platform, score_authenticity,
			score_average, verdict, issues, was_rewritten)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, entry.ClientID, entry.PostID, entry.Platform,
		entry.ScoreHook, entry.ScoreLocal, entry.ScoreValue, entry.ScoreCTA, entry.ScorePlat, entry.ScoreAuth,
		entry.ScoreAverage, entry.Verdict, pq.Array(entry.Issues), entry.WasRewritten).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *qaLogRepository) ListByPostID(ctx context.Context, postID int64) ([]*models.QALog, error) {
	query := `SELECT id, client_id, post_id, platform,
			score_hook, score_local, score_value, score_cta, score_platform, score_authenticity,
			score_average, verdict, issues, was_rewritten, created_at
		FROM qa_log WHERE post_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var entries []*models.QALog
	for rows.Next() {
		var e models.QALog
		err := rows.Scan(&e.ID, &e.ClientID, &e.PostID, &e.Platform,
			&e.ScoreHook, &e.ScoreLocal, &e.ScoreValue, &e.ScoreCTA, &e.ScorePlat, &e.ScoreAuth,
			&e.ScoreAverage, &e.Verdict, pq.Array(&e.Issues), &e.WasRewritten, &e.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
