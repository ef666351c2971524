package webhook

import (
	"github.com/go-resty/resty/v2"

	"apphooks/internal/logger"
	"apphooks/internal/metrics"
)

type options struct {
	logger  logger.Logger
	metrics *metrics.Metrics
	client  *resty.Client
}

// Option configura Dispatcher e Verifier.
type Option func(*options)

func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithHTTPClient troca o cliente resty. O cliente é alterado no lugar: NewDispatcher
// aplica o timeout da Config, desliga o retry do resty e instala o próprio logger.
func WithHTTPClient(c *resty.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

func applyOptions(component string, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewForComponent(component)
	}
	return o
}
