package dto

import (
	"time"

	"apphooks/internal/db/models"
)

type InstallAppRequest struct {
	Settings    map[string]any `json:"settings,omitempty"`
	InstalledBy string         `json:"installedBy,omitempty" example:"admin@institute.edu"`
}

type ConfigureAppRequest struct {
	Settings map[string]any `json:"settings" binding:"required"`
}

type SetStatusRequest struct {
	Enabled *bool `json:"enabled" binding:"required" example:"false"`
}

type InstallationResponse struct {
	InstituteID int64          `json:"instituteId" example:"7"`
	AppID       int64          `json:"appId" example:"3"`
	Enabled     bool           `json:"enabled" example:"true"`
	Settings    map[string]any `json:"settings,omitempty"`
	InstalledBy string         `json:"installedBy,omitempty"`
	InstalledAt time.Time      `json:"installedAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type InstallAppResponse struct {
	Installation *InstallationResponse `json:"installation"`
	Message      string                `json:"message" example:"App instalado com sucesso"`
}

func ToInstallationResponse(i *models.InstituteInstalledApp) *InstallationResponse {
	return &InstallationResponse{
		InstituteID: i.InstituteID,
		AppID:       i.AppID,
		Enabled:     i.Enabled,
		Settings:    i.Settings,
		InstalledBy: i.InstalledBy,
		InstalledAt: i.InstalledAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
