package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/smbsocial/postpilot/internal/models"
)

type ConnectionRepository interface {
	Get(ctx context.Context, clientID int64, platform string) (*models.SocialConnection, error)
	ListByClient(ctx context.Context, clientID int64) ([]*models.SocialConnection, error)
	Upsert(ctx context.Context, sc *models.SocialConnection) (int64, error)
}

type connectionRepository struct {
	db *sql.DB
}

func NewConnectionRepository(db *sql.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

const connectionColumns = `id, client_id, platform, account_id, COALESCE(account_name, ''), access_token, COALESCE(refresh_token, ''), token_expires_at, created_at, updated_at`

// Get returns the connection the dispatcher should publish with, or nil when
// the client has no connection on the platform. At most one row per
// (client_id, platform) is used even if several accounts are linked.
func (r *connectionRepository) Get(ctx context.Context, clientID int64, platform string) (*models.SocialConnection, error) {
	query := `SELECT ` + connectionColumns + ` FROM social_connections
		WHERE client_id = $1 AND platform = $2
		ORDER BY updated_at DESC
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, clientID, platform)

	sc, err := scanConnection(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return sc, nil
}

func (r *connectionRepository) ListByClient(ctx context.Context, clientID int64) ([]*models.SocialConnection, error) {
	query := `SELECT ` + connectionColumns + ` FROM social_connections WHERE client_id = $1 ORDER BY platform`
	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var connections []*models.SocialConnection
	for rows.Next() {
		sc, err := scanConnection(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		connections = append(connections, sc)
	}
	return connections, rows.Err()
}

// Upsert is how the external authorization-exchange collaborator lands
// credential rows; keyed by (client_id, platform, account_id).
func (r *connectionRepository) Upsert(ctx context.Context, sc *models.SocialConnection) (int64, error) {
	query := `
		INSERT INTO social_connections (client_id, platform, account_id, account_name, access_token, refresh_token, token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (client_id, platform, account_id) DO UPDATE
		SET account_name = EXCLUDED.account_name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expires_at = EXCLUDED.token_expires_at,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, sc.ClientID, sc.Platform, sc.AccountID,
		sc.AccountName, sc.AccessToken, sc.RefreshToken, sc.TokenExpiresAt).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func scanConnection(row interface{ Scan(...any) error }) (*models.SocialConnection, error) {
	var sc models.SocialConnection
	err := row.Scan(&sc.ID, &sc.ClientID, &sc.Platform, &sc.AccountID, &sc.AccountName,
		&sc.AccessToken, &sc.RefreshToken, &sc.TokenExpiresAt, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}
