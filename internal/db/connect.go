package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"

	"apphooks/internal/config"
	"apphooks/internal/logger"
)

type DB struct {
	*bun.DB
	config *config.Config
}

func NewConnection(cfg *config.Config) (*DB, error) {
	log := logger.WithComponent("db")

	bunDB, err := open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.IsDevelopment() || cfg.App.Debug {
		bunDB.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(cfg.App.Debug),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := bunDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("falha ao conectar no banco: %w", err)
	}

	log.Info("Conectado ao banco de dados", "driver", cfg.Database.Driver)

	return &DB{
		DB:     bunDB,
		config: cfg,
	}, nil
}

// Open abre um *bun.DB sem ping nem hooks; usado também pelos testes com SQLite em memória.
func Open(driver, dsn string) (*bun.DB, error) {
	return open(driver, dsn)
}

func open(driver, dsn string) (*bun.DB, error) {
	switch driver {
	case "postgres":
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case "sqlite":
		sqlDB, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("erro ao abrir sqlite: %w", err)
		}
		// SQLite serializa escritas; uma conexão evita "database is locked".
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		return nil, fmt.Errorf("driver de banco não suportado: %s", driver)
	}
}

func (db *DB) Close() error {
	if db.DB != nil {
		return db.DB.Close()
	}
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}

func (db *DB) GetStats() sql.DBStats {
	return db.DB.DB.Stats()
}

func (db *DB) Transaction(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.DB.RunInTx(ctx, nil, fn)
}
