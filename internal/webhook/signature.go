package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign retorna o HMAC-SHA256 em hex minúsculo sobre os bytes exatos do corpo.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compara a assinatura informada com Sign em tempo constante.
// Só o hex minúsculo de 64 caracteres é aceito; maiúsculas ou prefixos resultam em false.
func Verify(secret string, payload []byte, claimed string) bool {
	expected := Sign(secret, payload)
	return hmac.Equal([]byte(expected), []byte(claimed))
}
