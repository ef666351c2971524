// Package metrics expõe contadores Prometheus do envio e da verificação de webhooks.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "apphooks"

// Metrics agrupa os coletores. Todos os métodos aceitam receptor nil.
type Metrics struct {
	attempts      *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	verifications *prometheus.CounterVec
	inflight      prometheus.Gauge
}

// NewRegistry cria um registry dedicado com os coletores de runtime.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_attempts_total",
			Help:      "Tentativas HTTP de entrega de webhook por resultado e status.",
		}, []string{"outcome", "status"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Entregas lógicas de webhook por resultado final.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "webhook_attempt_duration_seconds",
			Help:      "Duração de cada tentativa HTTP de webhook.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_verifications_total",
			Help:      "Verificações de assinatura de webhooks recebidos.",
		}, []string{"result"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_in_flight",
			Help:      "Entregas em segundo plano ainda em andamento.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.attempts, m.deliveries, m.latency, m.verifications, m.inflight)
	}
	return m
}

func (m *Metrics) ObserveAttempt(success bool, statusCode int, d time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeLabel(success)
	m.attempts.WithLabelValues(outcome, strconv.Itoa(statusCode)).Inc()
	m.latency.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveDelivery registra o desfecho de uma chamada completa: "delivered", "exhausted",
// "dropped" ou "cancelled" (contexto encerrado durante o backoff).
func (m *Metrics) ObserveDelivery(outcome string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(outcome).Inc()
}

// ObserveVerification registra "valid", "invalid" ou "missing".
func (m *Metrics) ObserveVerification(result string) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(result).Inc()
}

func (m *Metrics) InFlightInc() {
	if m == nil {
		return
	}
	m.inflight.Inc()
}

func (m *Metrics) InFlightDec() {
	if m == nil {
		return
	}
	m.inflight.Dec()
}

func outcomeLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
