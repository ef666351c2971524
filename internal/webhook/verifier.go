package webhook

import (
	"context"

	"apphooks/internal/logger"
)

// Verifier autentica callbacks recebidos de apps externos.
type Verifier struct {
	config Config
	apps   AppSource
	logger logger.Logger
}

func NewVerifier(cfg Config, apps AppSource, opts ...Option) *Verifier {
	o := applyOptions("WebhookVerifier", opts)
	return &Verifier{
		config: cfg.withDefaults(),
		apps:   apps,
		logger: o.logger,
	}
}

// VerifyWebhookSignature usa a mesma regra de segredo do envio. Um appID
// desconhecido cai no segredo global, então o chamador ainda precisa
// confirmar que o app existe antes de confiar em um true.
func (v *Verifier) VerifyWebhookSignature(ctx context.Context, appID int64, payload []byte, claimed string) bool {
	secret := resolveSecret(ctx, v.apps, appID, v.config.GlobalSecret, v.logger)
	ok := Verify(secret, payload, claimed)
	if !ok {
		v.logger.Debug("Assinatura de webhook inválida", "appID", appID)
	}
	return ok
}
