package dto

import (
	"encoding/json"
	"time"

	"apphooks/internal/db/models"
)

// WebhookErrorResponse tem formato fixo; apps externos dependem dele.
type WebhookErrorResponse struct {
	Message string `json:"message" example:"Invalid webhook signature or missing app ID"`
}

type WebhookReceivedResponse struct {
	Received bool `json:"received" example:"true"`
}

type WebhookLogResponse struct {
	ID          int64           `json:"id" example:"42"`
	InstituteID int64           `json:"instituteId" example:"7"`
	AppID       int64           `json:"appId" example:"3"`
	Payload     json.RawMessage `json:"payload" swaggertype:"object"`
	StatusCode  int             `json:"statusCode" example:"200"`
	Delivered   bool            `json:"delivered" example:"true"`
	ReceivedAt  time.Time       `json:"receivedAt"`
}

type WebhookLogListResponse struct {
	Logs  []*WebhookLogResponse `json:"logs"`
	Total int                   `json:"total"`
	Limit int                   `json:"limit"`
}

func ToWebhookLogResponse(l *models.WebhookLog) *WebhookLogResponse {
	payload := l.Payload
	if !json.Valid(payload) {
		quoted, _ := json.Marshal(string(l.Payload))
		payload = quoted
	}
	return &WebhookLogResponse{
		ID:          l.ID,
		InstituteID: l.InstituteID,
		AppID:       l.AppID,
		Payload:     payload,
		StatusCode:  l.StatusCode,
		Delivered:   l.Delivered(),
		ReceivedAt:  l.ReceivedAt,
	}
}
