package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"apphooks/internal/db/models"
	"apphooks/internal/logger"
	"apphooks/internal/webhook"
)

type AppRepository struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewAppRepository(db *sqlx.DB) *AppRepository {
	return &AppRepository{
		db:     db,
		logger: logger.NewForComponent("app-repo"),
	}
}

func (r *AppRepository) Create(ctx context.Context, app *models.App) error {
	if app.WebhookSecret == nil || *app.WebhookSecret == "" {
		secret := webhook.GenerateSecret()
		app.WebhookSecret = &secret
	}

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	query := `
		INSERT INTO apps (name, webhook_url, webhook_secret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		app.Name, app.WebhookURL, app.WebhookSecret, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		return fmt.Errorf("erro ao criar app: %w", err)
	}
	return nil
}

func (r *AppRepository) GetByID(ctx context.Context, id int64) (*models.App, error) {
	app := &models.App{}
	query := `
		SELECT id, name, webhook_url, webhook_secret, created_at, updated_at
		FROM apps WHERE id = $1
	`

	if err := r.db.GetContext(ctx, app, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, webhook.ErrAppNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *AppRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM apps WHERE id = $1)`, id)
	return exists, err
}

func (r *AppRepository) List(ctx context.Context) ([]*models.App, error) {
	var apps []*models.App
	query := `
		SELECT id, name, webhook_url, webhook_secret, created_at, updated_at
		FROM apps ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &apps, query); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppRepository) WebhookTarget(ctx context.Context, id int64) (*webhook.Target, error) {
	var row struct {
		URL    sql.NullString `db:"webhook_url"`
		Secret sql.NullString `db:"webhook_secret"`
	}

	err := r.db.GetContext(ctx, &row, `SELECT webhook_url, webhook_secret FROM apps WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, webhook.ErrAppNotFound
		}
		return nil, err
	}

	return &webhook.Target{
		WebhookURL:    row.URL.String,
		WebhookSecret: row.Secret.String,
	}, nil
}

func (r *AppRepository) RotateSecret(ctx context.Context, id int64) (string, error) {
	secret := webhook.GenerateSecret()
	query := `UPDATE apps SET webhook_secret = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, secret, time.Now(), id)
	if err != nil {
		return "", err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rowsAffected == 0 {
		return "", webhook.ErrAppNotFound
	}

	r.logger.Info("Segredo de webhook rotacionado", "appID", id)
	return secret, nil
}
