package install

import (
	"context"
	"errors"
	"fmt"

	"apphooks/internal/db/models"
	"apphooks/internal/logger"
	"apphooks/internal/store"
	"apphooks/internal/webhook"
)

var (
	ErrAppNotFound      = webhook.ErrAppNotFound
	ErrAlreadyInstalled = errors.New("app já instalado para este instituto")
	ErrNotInstalled     = errors.New("app não instalado para este instituto")
)

// Notifier entrega eventos sem bloquear o chamador. *webhook.Dispatcher satisfaz.
type Notifier interface {
	Go(ctx context.Context, instituteID, appID int64, url string, payload any)
}

type InstallRequest struct {
	InstituteID int64
	AppID       int64
	Settings    map[string]any
	InstalledBy string
}

// Service grava a instalação e só então dispara o webhook correspondente.
type Service struct {
	apps          store.AppRepositoryInterface
	installations store.InstallationRepositoryInterface
	logs          store.WebhookLogRepositoryInterface
	notifier      Notifier
	logger        logger.Logger
}

func NewService(repos store.Repositories, notifier Notifier, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewForComponent("InstallService")
	}
	return &Service{
		apps:          repos.Apps,
		installations: repos.Installations,
		logs:          repos.WebhookLogs,
		notifier:      notifier,
		logger:        log,
	}
}

func (s *Service) Install(ctx context.Context, req InstallRequest) (*models.InstituteInstalledApp, error) {
	app, err := s.apps.GetByID(ctx, req.AppID)
	if err != nil {
		return nil, err
	}

	if _, err := s.installations.Get(ctx, req.InstituteID, req.AppID); err == nil {
		return nil, ErrAlreadyInstalled
	} else if !errors.Is(err, models.ErrInstallationNotFound) {
		return nil, fmt.Errorf("erro ao verificar instalação: %w", err)
	}

	installation := &models.InstituteInstalledApp{
		InstituteID: req.InstituteID,
		AppID:       req.AppID,
		Enabled:     true,
		Settings:    req.Settings,
		InstalledBy: req.InstalledBy,
	}
	if err := s.installations.Create(ctx, installation); err != nil {
		return nil, fmt.Errorf("erro ao instalar app: %w", err)
	}

	s.logger.Info("App instalado", "instituteID", req.InstituteID, "appID", req.AppID)

	s.notify(ctx, app, webhook.Payload{
		Event:       webhook.EventAppInstalled,
		InstituteID: req.InstituteID,
		AppID:       req.AppID,
		Settings:    req.Settings,
	})

	return installation, nil
}

// Configure troca as settings de uma instalação existente. Não gera evento.
func (s *Service) Configure(ctx context.Context, instituteID, appID int64, settings map[string]any) (*models.InstituteInstalledApp, error) {
	installation, err := s.installations.UpdateSettings(ctx, instituteID, appID, settings)
	if err != nil {
		if errors.Is(err, models.ErrInstallationNotFound) {
			return nil, ErrNotInstalled
		}
		return nil, fmt.Errorf("erro ao configurar app: %w", err)
	}
	return installation, nil
}

// Uninstall apaga o histórico de entregas do par antes de remover a instalação.
func (s *Service) Uninstall(ctx context.Context, instituteID, appID int64) error {
	if _, err := s.installations.Get(ctx, instituteID, appID); err != nil {
		if errors.Is(err, models.ErrInstallationNotFound) {
			return ErrNotInstalled
		}
		return err
	}

	purged, err := s.logs.DeleteByInstituteApp(ctx, instituteID, appID)
	if err != nil {
		return fmt.Errorf("erro ao remover logs de webhook: %w", err)
	}

	if err := s.installations.Delete(ctx, instituteID, appID); err != nil {
		if errors.Is(err, models.ErrInstallationNotFound) {
			return ErrNotInstalled
		}
		return fmt.Errorf("erro ao desinstalar app: %w", err)
	}

	s.logger.Info("App desinstalado", "instituteID", instituteID, "appID", appID, "purgedLogs", purged)

	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		s.logger.Warn("App não encontrado após desinstalação, evento não enviado", "appID", appID, "error", err)
		return nil
	}

	s.notify(ctx, app, webhook.Payload{
		Event:       webhook.EventAppUninstalled,
		InstituteID: instituteID,
		AppID:       appID,
	})
	return nil
}

func (s *Service) SetEnabled(ctx context.Context, instituteID, appID int64, enabled bool) (*models.InstituteInstalledApp, error) {
	installation, err := s.installations.SetEnabled(ctx, instituteID, appID, enabled)
	if err != nil {
		if errors.Is(err, models.ErrInstallationNotFound) {
			return nil, ErrNotInstalled
		}
		return nil, fmt.Errorf("erro ao alterar status do app: %w", err)
	}

	s.logger.Info("Status do app alterado", "instituteID", instituteID, "appID", appID, "enabled", enabled)

	app, err := s.apps.GetByID(ctx, appID)
	if err != nil {
		s.logger.Warn("App não encontrado, evento de status não enviado", "appID", appID, "error", err)
		return installation, nil
	}

	s.notify(ctx, app, webhook.Payload{
		Event:       webhook.StatusEvent(enabled),
		InstituteID: instituteID,
		AppID:       appID,
	})
	return installation, nil
}

func (s *Service) notify(ctx context.Context, app *models.App, payload webhook.Payload) {
	if !app.HasWebhook() {
		s.logger.Debug("App sem webhook configurado", "appID", app.ID, "event", payload.Event)
		return
	}
	s.notifier.Go(ctx, payload.InstituteID, payload.AppID, app.URL(), payload)
}
