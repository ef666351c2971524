package repository

import (
	"github.com/uptrace/bun"

	"apphooks/internal/store"
)

// NewRepositories monta os repositórios bun com a mesma forma do engine sqlx.
func NewRepositories(db bun.IDB) store.Repositories {
	return store.Repositories{
		Apps:          NewAppRepository(db),
		WebhookLogs:   NewWebhookLogRepository(db),
		Installations: NewInstallationRepository(db),
	}
}
