package webhook

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"apphooks/internal/logger"
)

const secretBytes = 32

// GenerateSecret gera um segredo por app: 32 bytes de crypto/rand em hex (64 caracteres).
func GenerateSecret() string {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		panic("webhook: falha ao gerar segredo aleatório: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// EffectiveSecret aplica a regra de fallback: segredo do app se não vazio, senão o global.
func EffectiveSecret(target *Target, global string) string {
	if target != nil && target.WebhookSecret != "" {
		return target.WebhookSecret
	}
	return global
}

// resolveSecret nunca falha: app inexistente ou erro de leitura caem no segredo global.
func resolveSecret(ctx context.Context, apps AppSource, appID int64, global string, log logger.Logger) string {
	target, err := apps.WebhookTarget(ctx, appID)
	if err != nil {
		if errors.Is(err, ErrAppNotFound) {
			log.Warn("App não encontrado, usando segredo global", "appID", appID)
		} else {
			log.Warn("Erro ao buscar segredo do app, usando segredo global", "appID", appID, "error", err)
		}
		return global
	}
	return EffectiveSecret(target, global)
}
