package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/smbsocial/postpilot/internal/models"
)

type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Client, error)
}

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT id, name, email, COALESCE(city, ''), COALESCE(state, ''), COALESCE(timezone, ''), created_at FROM clients WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.City, &c.State, &c.Timezone, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return &c, nil
}
