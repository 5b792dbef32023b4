package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/smbsocial/postpilot/internal/models"
)

type PublicationRepository interface {
	Create(ctx context.Context, p *models.Publication) (int64, error)
	ListByClientBetween(ctx context.Context, clientID int64, from, to time.Time) ([]*models.Publication, error)
}

type publicationRepository struct {
	db *sql.DB
}

func NewPublicationRepository(db *sql.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

func (r *publicationRepository) Create(ctx context.Context, p *models.Publication) (int64, error) {
	query := `
		INSERT INTO publications (post_id, client_id, platform, external_post_id, error_message, posted_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, p.PostID, p.ClientID, p.Platform,
		p.ExternalPostID, p.ErrorMessage, p.PostedAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *publicationRepository) ListByClientBetween(ctx context.Context, clientID int64, from, to time.Time) ([]*models.Publication, error) {
	query := `SELECT id, post_id, client_id, platform, COALESCE(external_post_id, ''), COALESCE(error_message, ''), posted_at, created_at
		FROM publications
		WHERE client_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, clientID, from, to)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var publications []*models.Publication
	for rows.Next() {
		var p models.Publication
		err := rows.Scan(&p.ID, &p.PostID, &p.ClientID, &p.Platform,
			&p.ExternalPostID, &p.ErrorMessage, &p.PostedAt, &p.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		publications = append(publications, &p)
	}
	return publications, rows.Err()
}
