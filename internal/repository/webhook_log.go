package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"apphooks/internal/db/models"
	"apphooks/internal/webhook"
)

type WebhookLogRepository struct {
	db bun.IDB
}

func NewWebhookLogRepository(db bun.IDB) *WebhookLogRepository {
	return &WebhookLogRepository{db: db}
}

// AppendAttempt insere uma linha por tentativa; received_at é atribuído aqui.
func (r *WebhookLogRepository) AppendAttempt(ctx context.Context, attempt *webhook.Attempt) error {
	entry := &models.WebhookLog{
		InstituteID: attempt.InstituteID,
		AppID:       attempt.AppID,
		Payload:     json.RawMessage(attempt.Payload),
		StatusCode:  attempt.StatusCode,
		ReceivedAt:  time.Now().UTC(),
	}
	if _, err := r.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("erro ao registrar tentativa de webhook: %w", err)
	}
	return nil
}

func (r *WebhookLogRepository) ListByInstituteApp(ctx context.Context, instituteID, appID int64, limit int) ([]*models.WebhookLog, error) {
	var logs []*models.WebhookLog
	q := r.db.NewSelect().
		Model(&logs).
		Where("wl.institute_id = ?", instituteID).
		Where("wl.app_id = ?", appID).
		Order("wl.received_at DESC", "wl.id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Scan(ctx)
	return logs, err
}

func (r *WebhookLogRepository) CountByInstituteApp(ctx context.Context, instituteID, appID int64) (int, error) {
	return r.db.NewSelect().
		Model((*models.WebhookLog)(nil)).
		Where("wl.institute_id = ?", instituteID).
		Where("wl.app_id = ?", appID).
		Count(ctx)
}

// DeleteByInstituteApp é usado apenas na desinstalação.
func (r *WebhookLogRepository) DeleteByInstituteApp(ctx context.Context, instituteID, appID int64) (int64, error) {
	result, err := r.db.NewDelete().
		Model((*models.WebhookLog)(nil)).
		Where("institute_id = ?", instituteID).
		Where("app_id = ?", appID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
