package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"apphooks/internal/logger"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

type Migrator struct {
	db     *sqlx.DB
	fsys   fs.FS
	logger logger.Logger
}

// NewMigrator usa as migrations embutidas no binário; migrationsDir, se informado, as substitui.
func NewMigrator(db *sqlx.DB, migrationsDir string) *Migrator {
	var fsys fs.FS
	if migrationsDir != "" {
		fsys = os.DirFS(migrationsDir)
	} else {
		sub, err := fs.Sub(embeddedMigrations, "migrations")
		if err != nil {
			panic(err)
		}
		fsys = sub
	}

	return &Migrator{
		db:     db,
		fsys:   fsys,
		logger: logger.NewForComponent("migrator"),
	}
}

func (m *Migrator) RunMigrations(ctx context.Context) error {
	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("erro ao criar tabela de migrations: %w", err)
	}

	upFiles, err := m.findMigrationFiles(".up.sql")
	if err != nil {
		return fmt.Errorf("erro ao buscar arquivos de migration: %w", err)
	}

	for _, file := range upFiles {
		migrationName := m.extractMigrationName(file)

		if executed, err := m.isMigrationExecuted(ctx, migrationName); err != nil {
			return fmt.Errorf("erro ao verificar migration %s: %w", migrationName, err)
		} else if executed {
			m.logger.Debug("Migration já executada", "migration", migrationName)
			continue
		}

		if err := m.executeMigrationFile(ctx, file, migrationName); err != nil {
			return fmt.Errorf("erro ao executar migration %s: %w", migrationName, err)
		}

		m.logger.Info("Migration aplicada", "migration", migrationName)
	}

	return nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := m.db.ExecContext(ctx, query)
	return err
}

func (m *Migrator) findMigrationFiles(suffix string) ([]string, error) {
	var files []string

	err := fs.WalkDir(m.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, suffix) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (m *Migrator) extractMigrationName(filePath string) string {
	name := strings.TrimSuffix(path.Base(filePath), ".up.sql")
	return strings.TrimSuffix(name, ".down.sql")
}

func (m *Migrator) isMigrationExecuted(ctx context.Context, migrationName string) (bool, error) {
	var count int
	err := m.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM schema_migrations WHERE version = $1`, migrationName)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// executeMigrationFile aplica o SQL e registra a versão na mesma transação.
func (m *Migrator) executeMigrationFile(ctx context.Context, filePath, migrationName string) error {
	content, err := fs.ReadFile(m.fsys, filePath)
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo %s: %w", filePath, err)
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("erro ao executar SQL do arquivo %s: %w", filePath, err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, migrationName); err != nil {
		return fmt.Errorf("erro ao marcar migration como executada: %w", err)
	}

	return tx.Commit()
}
