package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"apphooks/internal/db/models"
	"apphooks/internal/logger"
)

type Migrator struct {
	db     *bun.DB
	logger logger.Logger
}

func NewMigrator(db *bun.DB) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger.NewForComponent("migrator"),
	}
}

func tableModels() []any {
	return []any{
		(*models.App)(nil),
		(*models.InstituteInstalledApp)(nil),
		(*models.WebhookLog)(nil),
	}
}

// AutoMigrate cria as tabelas a partir dos modelos bun e os índices de consulta.
func (m *Migrator) AutoMigrate(ctx context.Context) error {
	for _, model := range tableModels() {
		if _, err := m.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("erro ao migrar modelo %T: %w", model, err)
		}
		m.logger.Debug("Tabela criada/verificada", "model", fmt.Sprintf("%T", model))
	}

	_, err := m.db.NewCreateIndex().
		Model((*models.WebhookLog)(nil)).
		Index("idx_webhook_logs_institute_app").
		Column("institute_id", "app_id").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("erro ao criar índice de webhook_logs: %w", err)
	}

	m.logger.Info("Migrações automáticas concluídas")
	return nil
}

func (m *Migrator) DropAllTables(ctx context.Context) error {
	tables := tableModels()
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := m.db.NewDropTable().Model(tables[i]).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("erro ao remover tabela %T: %w", tables[i], err)
		}
	}
	return nil
}
