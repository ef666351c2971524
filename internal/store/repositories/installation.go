package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"apphooks/internal/db/models"
	"apphooks/internal/logger"
)

type InstallationRepository struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewInstallationRepository(db *sqlx.DB) *InstallationRepository {
	return &InstallationRepository{
		db:     db,
		logger: logger.NewForComponent("installation-repo"),
	}
}

// installationRow recebe settings como bytes; jsonb não escaneia direto em map.
type installationRow struct {
	InstituteID int64          `db:"institute_id"`
	AppID       int64          `db:"app_id"`
	Enabled     bool           `db:"enabled"`
	Settings    []byte         `db:"settings"`
	InstalledBy sql.NullString `db:"installed_by"`
	InstalledAt time.Time      `db:"installed_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row *installationRow) toModel() (*models.InstituteInstalledApp, error) {
	installation := &models.InstituteInstalledApp{
		InstituteID: row.InstituteID,
		AppID:       row.AppID,
		Enabled:     row.Enabled,
		InstalledBy: row.InstalledBy.String,
		InstalledAt: row.InstalledAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if len(row.Settings) > 0 {
		if err := json.Unmarshal(row.Settings, &installation.Settings); err != nil {
			return nil, fmt.Errorf("erro ao decodificar settings: %w", err)
		}
	}
	return installation, nil
}

// encodeSettings devolve nil ou o JSON como string; []byte iria como bytea para o lib/pq.
func encodeSettings(settings map[string]any) (any, error) {
	if settings == nil {
		return nil, nil
	}
	encoded, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("erro ao codificar settings: %w", err)
	}
	return string(encoded), nil
}

func (r *InstallationRepository) Get(ctx context.Context, instituteID, appID int64) (*models.InstituteInstalledApp, error) {
	var row installationRow
	query := `
		SELECT institute_id, app_id, enabled, settings, installed_by, installed_at, updated_at
		FROM institute_installed_apps
		WHERE institute_id = $1 AND app_id = $2
	`

	if err := r.db.GetContext(ctx, &row, query, instituteID, appID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrInstallationNotFound
		}
		return nil, err
	}
	return row.toModel()
}

func (r *InstallationRepository) Create(ctx context.Context, installation *models.InstituteInstalledApp) error {
	settings, err := encodeSettings(installation.Settings)
	if err != nil {
		return err
	}

	now := time.Now()
	installation.InstalledAt = now
	installation.UpdatedAt = now

	query := `
		INSERT INTO institute_installed_apps (institute_id, app_id, enabled, settings, installed_by, installed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(ctx, query,
		installation.InstituteID, installation.AppID, installation.Enabled, settings,
		installation.InstalledBy, installation.InstalledAt, installation.UpdatedAt,
	)
	return err
}

func (r *InstallationRepository) SetEnabled(ctx context.Context, instituteID, appID int64, enabled bool) (*models.InstituteInstalledApp, error) {
	query := `
		UPDATE institute_installed_apps SET enabled = $1, updated_at = $2
		WHERE institute_id = $3 AND app_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, enabled, time.Now(), instituteID, appID)
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
	encoded, err := encodeSettings(settings)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE institute_installed_apps SET settings = $1, updated_at = $2
		WHERE institute_id = $3 AND app_id = $4
	`

	result, err := r.db.ExecContext(ctx, query, encoded, time.Now(), instituteID, appID)
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
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM institute_installed_apps WHERE institute_id = $1 AND app_id = $2`,
		instituteID, appID)
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
