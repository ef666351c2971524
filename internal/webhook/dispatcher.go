package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"apphooks/internal/logger"
	"apphooks/internal/metrics"
)

// Dispatcher entrega eventos assinados ao webhook de um app instalado.
// Falhas de entrega nunca chegam ao chamador: Send devolve nil quando as tentativas se esgotam.
type Dispatcher struct {
	config   Config
	apps     AppSource
	attempts AttemptLog

	httpClient *resty.Client
	logger     logger.Logger
	metrics    *metrics.Metrics

	// sleep aguarda entre tentativas; substituível em testes.
	sleep func(ctx context.Context, d time.Duration) error

	inflight sync.WaitGroup
}

func NewDispatcher(cfg Config, apps AppSource, attempts AttemptLog, opts ...Option) *Dispatcher {
	o := applyOptions("WebhookDispatcher", opts)
	cfg = cfg.withDefaults()

	client := o.client
	if client == nil {
		client = newHTTPClient()
	}
	client.SetTimeout(cfg.Timeout)
	client.SetRetryCount(0)
	client.SetLogger(&restyLogger{logger: o.logger})

	return &Dispatcher{
		config:     cfg,
		apps:       apps,
		attempts:   attempts,
		httpClient: client,
		logger:     o.logger,
		metrics:    o.metrics,
		sleep:      sleepContext,
	}
}

func newHTTPClient() *resty.Client {
	client := resty.New()
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(15))
	client.SetHeader("User-Agent", UserAgent)
	return client
}

// Send tenta até MaxRetries vezes. O segredo é resolvido de novo a cada tentativa,
// então uma rotação no meio da janela de retry já vale para a próxima tentativa.
func (d *Dispatcher) Send(ctx context.Context, instituteID, appID int64, url string, payload any) *Response {
	log := d.logger.
		With("dispatchID", uuid.NewString()).
		With("instituteID", instituteID).
		With("appID", appID)
	storeCtx := context.WithoutCancel(ctx)

	for attempt := 1; attempt <= d.config.MaxRetries; attempt++ {
		secret := resolveSecret(storeCtx, d.apps, appID, d.config.GlobalSecret, log)

		body, err := json.Marshal(payload)
		if err != nil {
			log.Error("Erro ao serializar payload, webhook descartado", "error", err)
			d.metrics.ObserveDelivery("dropped")
			return nil
		}

		resp, statusCode, duration, err := d.post(ctx, url, secret, body)
		d.recordAttempt(storeCtx, log, &Attempt{
			InstituteID: instituteID,
			AppID:       appID,
			Payload:     body,
			StatusCode:  statusCode,
		})
		d.metrics.ObserveAttempt(err == nil, statusCode, duration)

		if err == nil {
			log.Info("Webhook entregue",
				"url", url,
				"statusCode", statusCode,
				"attempt", attempt,
				"duration", duration)
			d.metrics.ObserveDelivery("delivered")
			return toResponse(resp, duration, attempt)
		}

		log.Warn("Falha na tentativa de webhook",
			"url", url,
			"attempt", attempt,
			"statusCode", statusCode,
			"error", err)

		if attempt == d.config.MaxRetries {
			break
		}

		delay := Backoff(d.config.RetryDelay, attempt)
		log.Debug("Aguardando antes do retry", "delay", delay, "nextAttempt", attempt+1)
		if err := d.sleep(ctx, delay); err != nil {
			log.Warn("Entrega de webhook cancelada durante o backoff", "attempt", attempt, "error", err)
			d.metrics.ObserveDelivery("cancelled")
			return nil
		}
	}

	log.Error("Todas as tentativas de webhook falharam, seguindo sem erro",
		"url", url,
		"maxRetries", d.config.MaxRetries)
	d.metrics.ObserveDelivery("exhausted")
	return nil
}

// post devolve err != nil quando a tentativa deve contar como falha.
func (d *Dispatcher) post(ctx context.Context, url, secret string, body []byte) (*resty.Response, int, time.Duration, error) {
	start := time.Now()
	resp, err := d.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(SignatureHeader, Sign(secret, body)).
		SetBody(body).
		Post(url)
	duration := time.Since(start)

	if err != nil {
		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode()
		}
		return resp, statusCode, duration, err
	}

	if d.config.RetryOnNon2xx && !resp.IsSuccess() {
		return resp, resp.StatusCode(), duration, fmt.Errorf("status code fora de 2xx: %d", resp.StatusCode())
	}
	return resp, resp.StatusCode(), duration, nil
}

func (d *Dispatcher) recordAttempt(ctx context.Context, log logger.Logger, attempt *Attempt) {
	if err := d.attempts.AppendAttempt(ctx, attempt); err != nil {
		log.Error("Erro ao registrar tentativa de webhook", "statusCode", attempt.StatusCode, "error", err)
	}
}

// Backoff devolve base * 2^(attempt-1): 1s, 2s, 4s para base de 1s.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base << (attempt - 1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func toResponse(resp *resty.Response, duration time.Duration, attempt int) *Response {
	headers := make(map[string]string)
	for key, values := range resp.Header() {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Headers:    headers,
		Body:       string(resp.Body()),
		Duration:   duration,
		Attempt:    attempt,
	}
}

// restyLogger encaminha os logs internos do resty para o logger da aplicação.
type restyLogger struct {
	logger logger.Logger
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "source", "resty")
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "source", "resty")
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug(fmt.Sprintf(format, v...), "source", "resty")
}
