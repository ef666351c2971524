package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"apphooks/internal/db/models"
)

type InstallationRepository struct {
	db bun.IDB
}

func NewInstallationRepository(db bun.IDB) *InstallationRepository {
	return &InstallationRepository{db: db}
}

func (r *InstallationRepository) Get(ctx context.Context, instituteID, appID int64) (*models.InstituteInstalledApp, error) {
	installation := &models.InstituteInstalledApp{}
	err := r.db.NewSelect().
		Model(installation).
		Where("iia.institute_id = ?", instituteID).
		Where("iia.app_id = ?", appID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrInstallationNotFound
		}
		return nil, err
	}
	return installation, nil
}

func (r *InstallationRepository) Create(ctx context.Context, installation *models.InstituteInstalledApp) error {
	_, err := r.db.NewInsert().Model(installation).Returning("*").Exec(ctx)
	return err
}

func (r *InstallationRepository) SetEnabled(ctx context.Context, instituteID, appID int64, enabled bool) (*models.InstituteInstalledApp, error) {
	result, err := r.db.NewUpdate().
		Model((*models.InstituteInstalledApp)(nil)).
		Set("enabled = ?", enabled).
		Set("updated_at = current_timestamp").
		Where("institute_id = ?", instituteID).
		Where("app_id = ?", appID).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, models.ErrInstallationNotFound
	}
	return r.Get(ctx, instituteID, appID)
}

func (r *InstallationRepository) UpdateSettings(ctx context.Context, instituteID, appID int64, settings map[string]any) (*models.InstituteInstalledApp, error) {
	installation := &models.InstituteInstalledApp{
		InstituteID: instituteID,
		AppID:       appID,
		Settings:    settings,
		UpdatedAt:   time.Now(),
	}
	result, err := r.db.NewUpdate().
		Model(installation).
		Column("settings", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, models.ErrInstallationNotFound
	}
	return r.Get(ctx, instituteID, appID)
}

func (r *InstallationRepository) Delete(ctx context.Context, instituteID, appID int64) error {
	result, err := r.db.NewDelete().
		Model((*models.InstituteInstalledApp)(nil)).
		Where("institute_id = ?", instituteID).
		Where("app_id = ?", appID).
		Exec(ctx)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrInstallationNotFound
	}
	return nil
}
