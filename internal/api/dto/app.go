package dto

import (
	"time"

	"apphooks/internal/db/models"
)

type CreateAppRequest struct {
	Name          string `json:"name" binding:"required,max=255" example:"Attendance"`                                                  // Nome do app
	WebhookURL    string `json:"webhookUrl,omitempty" binding:"omitempty,url,max=500" example:"https://attendance.example.com/webhook"` // URL que recebe os eventos
	WebhookSecret string `json:"webhookSecret,omitempty" binding:"omitempty,max=255"`                                                   // Gerado quando omitido
}

type AppResponse struct {
	ID         int64     `json:"id" example:"1"`
	Name       string    `json:"name" example:"Attendance"`
	WebhookURL string    `json:"webhookUrl,omitempty" example:"https://attendance.example.com/webhook"`
	HasSecret  bool      `json:"hasSecret" example:"true"`
	CreatedAt  time.Time `json:"createdAt" example:"2024-01-01T00:00:00Z"`
	UpdatedAt  time.Time `json:"updatedAt" example:"2024-01-01T00:00:00Z"`
}

// CreateAppResponse é a única resposta que devolve o segredo em claro.
type CreateAppResponse struct {
	App           *AppResponse `json:"app"`
	WebhookSecret string       `json:"webhookSecret" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
}

type AppListResponse struct {
	Apps  []*AppResponse `json:"apps"`
	Total int            `json:"total"`
}

type RotateSecretResponse struct {
	AppID         int64  `json:"appId" example:"1"`
	WebhookSecret string `json:"webhookSecret"`
}

func ToAppResponse(app *models.App) *AppResponse {
	return &AppResponse{
		ID:         app.ID,
		Name:       app.Name,
		WebhookURL: app.URL(),
		HasSecret:  app.Secret() != "",
		CreatedAt:  app.CreatedAt,
		UpdatedAt:  app.UpdatedAt,
	}
}

func ToAppListResponse(apps []*models.App) *AppListResponse {
	items := make([]*AppResponse, 0, len(apps))
	for _, app := range apps {
		items = append(items, ToAppResponse(app))
	}
	return &AppListResponse{Apps: items, Total: len(items)}
}
