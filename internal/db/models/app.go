package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type App struct {
	bun.BaseModel `bun:"table:apps,alias:a"`

	ID            int64   `json:"id" bun:"id,pk,autoincrement" db:"id"`
	Name          string  `json:"name" bun:"name,notnull,type:varchar(255)" db:"name"`
	WebhookURL    *string `json:"webhookUrl,omitempty" bun:"webhook_url,type:varchar(500)" db:"webhook_url"`
	WebhookSecret *string `json:"-" bun:"webhook_secret,type:varchar(255)" db:"webhook_secret"`

	CreatedAt time.Time `json:"createdAt" bun:"created_at,nullzero,notnull,default:current_timestamp" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bun:"updated_at,nullzero,notnull,default:current_timestamp" db:"updated_at"`
}

func (a *App) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		a.UpdatedAt = time.Now()
	}
	return nil
}

func (a *App) HasWebhook() bool {
	return a.WebhookURL != nil && *a.WebhookURL != ""
}

func (a *App) URL() string {
	if a.WebhookURL == nil {
		return ""
	}
	return *a.WebhookURL
}

func (a *App) Secret() string {
	if a.WebhookSecret == nil {
		return ""
	}
	return *a.WebhookSecret
}
