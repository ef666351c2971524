package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"apphooks/internal/db/models"
	"apphooks/internal/webhook"
)

type AppRepository struct {
	db bun.IDB
}

func NewAppRepository(db bun.IDB) *AppRepository {
	return &AppRepository{db: db}
}

// Create gera um segredo de webhook quando o app não traz um.
func (r *AppRepository) Create(ctx context.Context, app *models.App) error {
	if app.WebhookSecret == nil || *app.WebhookSecret == "" {
		secret := webhook.GenerateSecret()
		app.WebhookSecret = &secret
	}

	_, err := r.db.NewInsert().Model(app).Returning("*").Exec(ctx)
	if err != nil {
		return fmt.Errorf("erro ao criar app: %w", err)
	}
	return nil
}

func (r *AppRepository) GetByID(ctx context.Context, id int64) (*models.App, error) {
	app := &models.App{}
	err := r.db.NewSelect().Model(app).Where("a.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, webhook.ErrAppNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *AppRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.db.NewSelect().Model((*models.App)(nil)).Where("a.id = ?", id).Exists(ctx)
}

func (r *AppRepository) List(ctx context.Context) ([]*models.App, error) {
	var apps []*models.App
	err := r.db.NewSelect().Model(&apps).Order("a.created_at DESC").Scan(ctx)
	return apps, err
}

// WebhookTarget lê só URL e segredo; é chamado a cada tentativa de entrega.
func (r *AppRepository) WebhookTarget(ctx context.Context, id int64) (*webhook.Target, error) {
	app := &models.App{}
	err := r.db.NewSelect().
		Model(app).
		Column("webhook_url", "webhook_secret").
		Where("a.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, webhook.ErrAppNotFound
		}
		return nil, err
	}
	return &webhook.Target{
		WebhookURL:    app.URL(),
		WebhookSecret: app.Secret(),
	}, nil
}

func (r *AppRepository) RotateSecret(ctx context.Context, id int64) (string, error) {
	secret := webhook.GenerateSecret()
	result, err := r.db.NewUpdate().
		Model((*models.App)(nil)).
		Set("webhook_secret = ?", secret).
		Set("updated_at = current_timestamp").
		Where("id = ?", id).
		Exec(ctx)
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
	return secret, nil
}
