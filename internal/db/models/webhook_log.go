package models

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"
)

// WebhookLog é uma tentativa de entrega. Append-only: nunca é atualizado.
// Payload guarda o corpo enviado como JSON bruto, sem nova codificação.
type WebhookLog struct {
	bun.BaseModel `bun:"table:webhook_logs,alias:wl"`

	ID          int64           `json:"id" bun:"id,pk,autoincrement" db:"id"`
	InstituteID int64           `json:"instituteId" bun:"institute_id,notnull" db:"institute_id"`
	AppID       int64           `json:"appId" bun:"app_id,notnull" db:"app_id"`
	Payload     json.RawMessage `json:"payload" bun:"payload,notnull,type:jsonb" db:"payload"`
	StatusCode  int             `json:"statusCode" bun:"status_code,notnull" db:"status_code"`
	ReceivedAt  time.Time       `json:"receivedAt" bun:"received_at,nullzero,notnull,default:current_timestamp" db:"received_at"`
}

func (l *WebhookLog) Delivered() bool {
	return l.StatusCode != 0
}
