package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"apphooks/internal/api/handlers"
	"apphooks/internal/api/router"
	"apphooks/internal/config"
	"apphooks/internal/db"
	"apphooks/internal/install"
	"apphooks/internal/logger"
	"apphooks/internal/metrics"
	"apphooks/internal/repository"
	"apphooks/internal/store"
	"apphooks/internal/webhook"
)

type App struct {
	config     *config.Config
	closer     io.Closer
	dispatcher *webhook.Dispatcher
	server     *http.Server
	logger     logger.Logger
}

type database interface {
	handlers.Pinger
	io.Closer
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})

	log := logger.WithComponent("app")
	log.Info("Iniciando aplicação", "env", cfg.App.Env, "driver", cfg.Database.Driver, "engine", cfg.Database.Engine)

	if !cfg.Webhook.SecretFromEnv {
		if cfg.IsProduction() {
			log.Warn("WEBHOOK_SECRET não definido, usando segredo padrão em produção")
		} else {
			log.Debug("Usando segredo global padrão de webhook")
		}
	}

	conn, repos, err := openStorage(cfg)
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	m := metrics.New(reg)

	webhookCfg := webhook.Config{
		GlobalSecret:  cfg.Webhook.Secret,
		MaxRetries:    cfg.Webhook.MaxRetries,
		RetryDelay:    cfg.Webhook.RetryDelay,
		Timeout:       cfg.Webhook.Timeout,
		RetryOnNon2xx: cfg.Webhook.RetryOnNon2xx,
	}
	dispatcher := webhook.NewDispatcher(webhookCfg, repos.Apps, repos.WebhookLogs, webhook.WithMetrics(m))
	verifier := webhook.NewVerifier(webhookCfg, repos.Apps)

	handler := router.NewRouter(router.Dependencies{
		Repositories: repos,
		Installer:    install.NewService(repos, dispatcher, nil),
		Verifier:     verifier,
		Metrics:      m,
		Gatherer:     reg,
		DB:           conn,
		AdminAPIKey:  cfg.Server.AdminAPIKey,
		Debug:        cfg.App.Debug,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &App{
		config:     cfg,
		closer:     conn,
		dispatcher: dispatcher,
		server:     server,
		logger:     log,
	}, nil
}

// openStorage escolhe o engine pelo DB_ENGINE; os dois expõem os mesmos repositórios.
func openStorage(cfg *config.Config) (database, store.Repositories, error) {
	switch cfg.Database.Engine {
	case "sqlx":
		s, err := store.NewStore(cfg)
		if err != nil {
			return nil, store.Repositories{}, fmt.Errorf("erro ao criar store sqlx: %w", err)
		}
		return s, s.Repositories(), nil
	default:
		conn, err := db.NewConnection(cfg)
		if err != nil {
			return nil, store.Repositories{}, fmt.Errorf("erro ao conectar no banco: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := db.NewMigrator(conn.DB).AutoMigrate(ctx); err != nil {
			_ = conn.Close()
			return nil, store.Repositories{}, fmt.Errorf("erro ao executar migrações: %w", err)
		}
		return conn, repository.NewRepositories(conn.DB), nil
	}
}

func (a *App) Run() error {
	serverLogger := logger.WithComponent("server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		serverLogger.Info("Servidor iniciado",
			"porta", a.config.Server.Port,
			"health", fmt.Sprintf("http://localhost:%d/health", a.config.Server.Port))

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case sig := <-quit:
		serverLogger.Info("Parando servidor", "signal", sig.String())
	case err := <-errCh:
		return fmt.Errorf("erro ao iniciar servidor: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		serverLogger.Error("Erro ao parar servidor", "error", err)
		return err
	}

	// entregas em segundo plano ainda podem estar em backoff
	if err := a.dispatcher.Wait(ctx); err != nil {
		serverLogger.Warn("Entregas de webhook pendentes abandonadas no desligamento", "error", err)
	}

	serverLogger.Info("Servidor parado")
	return nil
}

func (a *App) Close() error {
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			a.logger.Error("Erro ao fechar banco de dados", "error", err)
			return err
		}
	}
	return nil
}
