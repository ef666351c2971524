package repositories

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apphooks/internal/db/models"
	"apphooks/internal/webhook"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := sqlx.NewDb(mockDB, "postgres")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestAppRepository_WebhookTarget(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT webhook_url, webhook_secret FROM apps WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"webhook_url", "webhook_secret"}).
			AddRow("https://app.example.com/hook", nil))

	target, err := repo.WebhookTarget(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/hook", target.WebhookURL)
	assert.Empty(t, target.WebhookSecret)
}

func TestAppRepository_WebhookTargetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM apps WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.WebhookTarget(context.Background(), 99)
	assert.ErrorIs(t, err, webhook.ErrAppNotFound)
}

func TestAppRepository_CreateGeneratesSecret(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO apps`)).
		WithArgs("Attendance", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))

	url := "https://app.example.com/hook"
	app := &models.App{Name: "Attendance", WebhookURL: &url}
	require.NoError(t, repo.Create(context.Background(), app))

	assert.Equal(t, int64(12), app.ID)
	require.NotNil(t, app.WebhookSecret)
	assert.Len(t, *app.WebhookSecret, 64)
}

func TestAppRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM apps WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "webhook_url", "webhook_secret", "created_at", "updated_at"}).
			AddRow(int64(5), "Grades", "https://grades.example.com", "s3cr3t", now, now))

	app, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Grades", app.Name)
	assert.Equal(t, "s3cr3t", app.Secret())
	assert.True(t, app.HasWebhook())
}

func TestAppRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM apps WHERE id = $1)`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAppRepository_RotateSecret(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE apps SET webhook_secret = $1`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE apps SET webhook_secret = $1`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	secret, err := repo.RotateSecret(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, secret, 64)

	_, err = repo.RotateSecret(context.Background(), 6)
	assert.ErrorIs(t, err, webhook.ErrAppNotFound)
}

func TestWebhookLogRepository_AppendAttempt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWebhookLogRepository(db)
	payload := `{"event":"institute_app_installed","instituteId":7,"appId":3}`

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO webhook_logs (institute_id, app_id, payload, status_code, received_at)`)).
		WithArgs(int64(7), int64(3), payload, 0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.AppendAttempt(context.Background(), &webhook.Attempt{
		InstituteID: 7,
		AppID:       3,
		Payload:     []byte(payload),
		StatusCode:  0,
	})
	require.NoError(t, err)
}

func TestWebhookLogRepository_AppendAttemptError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWebhookLogRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO webhook_logs`)).
		WillReturnError(sql.ErrConnDone)

	err := repo.AppendAttempt(context.Background(), &webhook.Attempt{InstituteID: 1, AppID: 1, Payload: []byte(`{}`)})
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestWebhookLogRepository_ListByInstituteApp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWebhookLogRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY received_at DESC, id DESC LIMIT $3`)).
		WithArgs(int64(7), int64(3), 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "institute_id", "app_id", "payload", "status_code", "received_at"}).
			AddRow(int64(2), int64(7), int64(3), []byte(`{"event":"institute_app_enabled"}`), 200, now).
			AddRow(int64(1), int64(7), int64(3), []byte(`{}`), 0, now.Add(-time.Second)))

	logs, err := repo.ListByInstituteApp(context.Background(), 7, 3, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].Delivered())
	assert.False(t, logs[1].Delivered())
	assert.JSONEq(t, `{"event":"institute_app_enabled"}`, string(logs[0].Payload))
}

func TestWebhookLogRepository_CountAndDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWebhookLogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM webhook_logs WHERE institute_id = $1 AND app_id = $2`)).
		WithArgs(int64(7), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM webhook_logs WHERE institute_id = $1 AND app_id = $2`)).
		WithArgs(int64(7), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.CountByInstituteApp(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	deleted, err := repo.DeleteByInstituteApp(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestInstallationRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstallationRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM institute_installed_apps`)).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"institute_id", "app_id", "enabled", "settings", "installed_by", "installed_at", "updated_at"}).
			AddRow(int64(1), int64(3), true, `{"theme":"dark"}`, "admin", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM institute_installed_apps`)).
		WithArgs(int64(1), int64(4)).
		WillReturnError(sql.ErrNoRows)

	installation, err := repo.Get(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.True(t, installation.Enabled)
	assert.Equal(t, "dark", installation.Settings["theme"])
	assert.Equal(t, "admin", installation.InstalledBy)

	_, err = repo.Get(context.Background(), 1, 4)
	assert.ErrorIs(t, err, models.ErrInstallationNotFound)
}

func TestInstallationRepository_CreateAndDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstallationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO institute_installed_apps`)).
		WithArgs(int64(1), int64(3), true, `{"theme":"dark"}`, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM institute_installed_apps`)).
		WithArgs(int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), &models.InstituteInstalledApp{
		InstituteID: 1,
		AppID:       3,
		Enabled:     true,
		Settings:    map[string]any{"theme": "dark"},
	})
	require.NoError(t, err)

	err = repo.Delete(context.Background(), 1, 3)
	assert.ErrorIs(t, err, models.ErrInstallationNotFound)
}

func TestInstallationRepository_SetEnabledNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstallationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE institute_installed_apps SET enabled = $1`)).
		WithArgs(false, sqlmock.AnyArg(), int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.SetEnabled(context.Background(), 1, 3, false)
	assert.ErrorIs(t, err, models.ErrInstallationNotFound)
}

func TestInstallationRepository_UpdateSettings(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInstallationRepository(db)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE institute_installed_apps SET settings = $1`)).
		WithArgs(`{"lang":"pt"}`, sqlmock.AnyArg(), int64(1), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM institute_installed_apps`)).
		WithArgs(int64(1), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"institute_id", "app_id", "enabled", "settings", "installed_by", "installed_at", "updated_at"}).
			AddRow(int64(1), int64(3), true, []byte(`{"lang":"pt"}`), nil, now, now))

	installation, err := repo.UpdateSettings(context.Background(), 1, 3, map[string]any{"lang": "pt"})
	require.NoError(t, err)
	assert.Equal(t, "pt", installation.Settings["lang"])
	assert.Empty(t, installation.InstalledBy)
}
