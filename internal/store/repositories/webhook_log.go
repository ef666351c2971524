package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"apphooks/internal/db/models"
	"apphooks/internal/logger"
	"apphooks/internal/webhook"
)

type WebhookLogRepository struct {
	db     *sqlx.DB
	logger logger.Logger
}

func NewWebhookLogRepository(db *sqlx.DB) *WebhookLogRepository {
	return &WebhookLogRepository{
		db:     db,
		logger: logger.NewForComponent("webhook-log-repo"),
	}
}

func (r *WebhookLogRepository) AppendAttempt(ctx context.Context, attempt *webhook.Attempt) error {
	query := `
		INSERT INTO webhook_logs (institute_id, app_id, payload, status_code, received_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		attempt.InstituteID, attempt.AppID, string(attempt.Payload), attempt.StatusCode, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("erro ao registrar tentativa de webhook: %w", err)
	}
	return nil
}

func (r *WebhookLogRepository) ListByInstituteApp(ctx context.Context, instituteID, appID int64, limit int) ([]*models.WebhookLog, error) {
	query := `
		SELECT id, institute_id, app_id, payload, status_code, received_at
		FROM webhook_logs
		WHERE institute_id = $1 AND app_id = $2
		ORDER BY received_at DESC, id DESC
	`
	args := []any{instituteID, appID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	var logs []*models.WebhookLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *WebhookLogRepository) CountByInstituteApp(ctx context.Context, instituteID, appID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM webhook_logs WHERE institute_id = $1 AND app_id = $2`,
		instituteID, appID)
	return count, err
}

func (r *WebhookLogRepository) DeleteByInstituteApp(ctx context.Context, instituteID, appID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM webhook_logs WHERE institute_id = $1 AND app_id = $2`,
		instituteID, appID)
	if err != nil {
		return 0, err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.logger.Debug("Logs de webhook removidos", "instituteID", instituteID, "appID", appID, "count", deleted)
	return deleted, nil
}
