package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"apphooks/internal/logger"
)

// AdminAuth exige "Authorization: Bearer <apiKey>". Com apiKey vazia o middleware
// só registra um aviso e deixa passar (ambiente de desenvolvimento).
func AdminAuth(apiKey string) gin.HandlerFunc {
	authLogger := logger.NewForComponent("AdminAuth")

	if apiKey == "" {
		authLogger.Warn("ADMIN_API_KEY não definida, rotas administrativas sem autenticação")
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			authLogger.Warn("API Key não fornecida", "path", c.Request.URL.Path)
			abortUnauthorized(c, "API Key é obrigatória")
			return
		}

		provided := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			authLogger.Warn("API Key inválida", "apiKey", maskAPIKey(provided), "path", c.Request.URL.Path)
			abortUnauthorized(c, "API Key inválida")
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":     true,
		"message":   message,
		"code":      http.StatusUnauthorized,
		"timestamp": time.Now().Unix(),
	})
}

func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return strings.Repeat("*", len(apiKey))
	}
	return apiKey[:4] + strings.Repeat("*", len(apiKey)-8) + apiKey[len(apiKey)-4:]
}
