package models

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

var ErrInstallationNotFound = errors.New("instalação não encontrada")

type InstituteInstalledApp struct {
	bun.BaseModel `bun:"table:institute_installed_apps,alias:iia"`

	InstituteID int64          `json:"instituteId" bun:"institute_id,pk"`
	AppID       int64          `json:"appId" bun:"app_id,pk"`
	Enabled     bool           `json:"enabled" bun:"enabled,notnull"`
	Settings    map[string]any `json:"settings,omitempty" bun:"settings,type:jsonb"`
	InstalledBy string         `json:"installedBy,omitempty" bun:"installed_by,type:varchar(255)"`

	InstalledAt time.Time `json:"installedAt" bun:"installed_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `json:"updatedAt" bun:"updated_at,nullzero,notnull,default:current_timestamp"`

	App *App `json:"app,omitempty" bun:"rel:belongs-to,join:app_id=id"`
}

func (i *InstituteInstalledApp) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		i.UpdatedAt = time.Now()
	}
	return nil
}
