package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"apphooks/internal/db"
	"apphooks/internal/db/models"
)

var dbCounter atomic.Int64

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_%d?mode=memory&cache=shared", dbCounter.Add(1))
	bunDB, err := db.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = bunDB.Close() })

	require.NoError(t, db.NewMigrator(bunDB).AutoMigrate(context.Background()))
	return bunDB
}

func strPtr(s string) *string { return &s }

func createApp(t *testing.T, repo *AppRepository, url, secret string) *models.App {
	t.Helper()
	app := &models.App{Name: "Attendance", WebhookURL: strPtr(url)}
	if secret != "" {
		app.WebhookSecret = strPtr(secret)
	}
	require.NoError(t, repo.Create(context.Background(), app))
	require.NotZero(t, app.ID)
	return app
}

func TestNewRepositories(t *testing.T) {
	repos := NewRepositories(newTestDB(t))

	require.IsType(t, &AppRepository{}, repos.Apps)
	require.IsType(t, &WebhookLogRepository{}, repos.WebhookLogs)
	require.IsType(t, &InstallationRepository{}, repos.Installations)
}
