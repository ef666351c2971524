package store

import (
	"context"

	"apphooks/internal/db/models"
	"apphooks/internal/webhook"
)

// AppRepositoryInterface é satisfeita pelos repositórios bun e sqlx.
type AppRepositoryInterface interface {
	webhook.AppSource
	Create(ctx context.Context, app *models.App) error
	GetByID(ctx context.Context, id int64) (*models.App, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) ([]*models.App, error)
	RotateSecret(ctx context.Context, id int64) (string, error)
}

// WebhookLogRepositoryInterface é append-only; só a desinstalação apaga linhas.
type WebhookLogRepositoryInterface interface {
	webhook.AttemptLog
	ListByInstituteApp(ctx context.Context, instituteID, appID int64, limit int) ([]*models.WebhookLog, error)
	CountByInstituteApp(ctx context.Context, instituteID, appID int64) (int, error)
	DeleteByInstituteApp(ctx context.Context, instituteID, appID int64) (int64, error)
}

type InstallationRepositoryInterface interface {
	Get(ctx context.Context, instituteID, appID int64) (*models.InstituteInstalledApp, error)
	Create(ctx context.Context, installation *models.InstituteInstalledApp) error
	SetEnabled(ctx context.Context, instituteID, appID int64, enabled bool) (*models.InstituteInstalledApp, error)
	UpdateSettings(ctx context.Context, instituteID, appID int64, settings map[string]any) (*models.InstituteInstalledApp, error)
	Delete(ctx context.Context, instituteID, appID int64) error
}

// Repositories agrupa os repositórios de um engine.
type Repositories struct {
	Apps          AppRepositoryInterface
	WebhookLogs   WebhookLogRepositoryInterface
	Installations InstallationRepositoryInterface
}
