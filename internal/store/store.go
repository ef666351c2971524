package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"apphooks/internal/config"
	"apphooks/internal/logger"
	"apphooks/internal/store/repositories"
)

// Store é o engine sqlx/lib/pq, alternativo ao bun. Só fala PostgreSQL.
type Store struct {
	db     *sqlx.DB
	logger logger.Logger

	appRepo          AppRepositoryInterface
	webhookLogRepo   WebhookLogRepositoryInterface
	installationRepo InstallationRepositoryInterface
}

func NewStore(cfg *config.Config) (*Store, error) {
	log := logger.WithComponent("sqlx-store")

	db, err := sqlx.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão SQL: %w", err)
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao testar conexão SQL: %w", err)
	}

	if err := NewMigrator(db, cfg.Database.MigrationsDir).RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao executar migrations: %w", err)
	}

	store := NewWithDB(db)
	log.Info("Store inicializado")
	return store, nil
}

// NewWithDB monta o store sobre uma conexão já aberta, sem rodar migrations.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{
		db:               db,
		logger:           logger.WithComponent("sqlx-store"),
		appRepo:          repositories.NewAppRepository(db),
		webhookLogRepo:   repositories.NewWebhookLogRepository(db),
		installationRepo: repositories.NewInstallationRepository(db),
	}
}

func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

func (s *Store) Repositories() Repositories {
	return Repositories{
		Apps:          s.appRepo,
		WebhookLogs:   s.webhookLogRepo,
		Installations: s.installationRepo,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
