package webhook

import (
	"context"
	"errors"
	"time"
)

const (
	SignatureHeader = "X-Webhook-Signature"
	AppIDHeader     = "X-App-Id"
	UserAgent       = "AppHooks-Webhook/1.0"
)

// ErrAppNotFound deve ser retornado por AppSource quando o app não existe.
var ErrAppNotFound = errors.New("app não encontrado")

type EventType string

const (
	EventAppInstalled   EventType = "institute_app_installed"
	EventAppUninstalled EventType = "institute_app_uninstalled"
	EventAppEnabled     EventType = "institute_app_enabled"
	EventAppDisabled    EventType = "institute_app_disabled"
)

// StatusEvent escolhe o evento de habilitar/desabilitar.
func StatusEvent(enabled bool) EventType {
	if enabled {
		return EventAppEnabled
	}
	return EventAppDisabled
}

// Payload é o corpo padrão dos eventos de ciclo de vida.
type Payload struct {
	Event       EventType      `json:"event"`
	InstituteID int64          `json:"instituteId"`
	AppID       int64          `json:"appId"`
	Settings    map[string]any `json:"settings,omitempty"`
}

type Config struct {
	// GlobalSecret assina quando o app não tem segredo próprio.
	GlobalSecret string
	MaxRetries   int
	// RetryDelay é a espera após a primeira falha; dobra a cada tentativa.
	RetryDelay time.Duration
	Timeout    time.Duration
	// RetryOnNon2xx trata respostas fora de 2xx como falha transitória.
	RetryOnNon2xx bool
}

func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		RetryDelay: time.Second,
		Timeout:    10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxRetries <= 0 {
		c.MaxRetries = def.MaxRetries
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = def.RetryDelay
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	return c
}

// Target são os campos do app lidos pelo dispatcher.
type Target struct {
	WebhookURL    string
	WebhookSecret string
}

type AppSource interface {
	WebhookTarget(ctx context.Context, appID int64) (*Target, error)
}

// Attempt é uma tentativa HTTP; StatusCode 0 indica falha de transporte.
type Attempt struct {
	InstituteID int64
	AppID       int64
	Payload     []byte
	StatusCode  int
}

type AttemptLog interface {
	AppendAttempt(ctx context.Context, attempt *Attempt) error
}

type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
	Duration   time.Duration     `json:"duration"`
	Attempt    int               `json:"attempt"`
}
