package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"apphooks/internal/api/dto"
	"apphooks/internal/metrics"
	"apphooks/internal/webhook"
)

const invalidWebhookMessage = "Invalid webhook signature or missing app ID"

// AppChecker confirma que um app existe antes de aceitar uma assinatura dele.
type AppChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type SignatureVerifier interface {
	VerifyWebhookSignature(ctx context.Context, appID int64, payload []byte, claimed string) bool
}

type WebhookHandler struct {
	*BaseHandler
	verifier  SignatureVerifier
	apps      AppChecker
	knownApps *cache.Cache
	metrics   *metrics.Metrics
}

func NewWebhookHandler(verifier SignatureVerifier, apps AppChecker, m *metrics.Metrics) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler: NewBaseHandler("WebhookHandler"),
		verifier:    verifier,
		apps:        apps,
		knownApps:   cache.New(time.Minute, 5*time.Minute),
		metrics:     m,
	}
}

// @Summary      Receber webhook de app
// @Description  Recebe um evento assinado por um app externo. O corpo bruto é verificado com HMAC-SHA256.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        event                path      string  true  "Nome do evento, ex.: app-installed"
// @Param        X-App-Id             header    int     true  "ID do app"
// @Param        X-Webhook-Signature  header    string  true  "HMAC-SHA256 hex do corpo"
// @Success      200  {object}  dto.WebhookReceivedResponse
// @Failure      401  {object}  dto.WebhookErrorResponse
// @Failure      500  {object}  dto.WebhookErrorResponse
// @Router       /webhooks/{event} [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic ao processar webhook recebido", "panic", r)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.WebhookErrorResponse{Message: "Internal server error"})
		}
	}()

	signature := c.GetHeader(webhook.SignatureHeader)
	appID, err := strconv.ParseInt(c.GetHeader(webhook.AppIDHeader), 10, 64)
	if signature == "" || err != nil {
		h.metrics.ObserveVerification("missing")
		h.reject(c)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.logger.Error("Erro ao ler corpo do webhook", "error", err)
		c.JSON(http.StatusInternalServerError, dto.WebhookErrorResponse{Message: "Internal server error"})
		return
	}

	ctx := c.Request.Context()
	known, err := h.appExists(ctx, appID)
	if err != nil {
		h.logger.Error("Erro ao verificar app do webhook", "appID", appID, "error", err)
		c.JSON(http.StatusInternalServerError, dto.WebhookErrorResponse{Message: "Internal server error"})
		return
	}
	if !known || !h.verifier.VerifyWebhookSignature(ctx, appID, body, signature) {
		h.metrics.ObserveVerification("invalid")
		h.logger.Warn("Webhook rejeitado", "appID", appID, "knownApp", known, "event", c.Param("event"))
		h.reject(c)
		return
	}

	h.metrics.ObserveVerification("valid")

	var envelope struct {
		Event string `json:"event"`
	}
	_ = json.Unmarshal(body, &envelope)

	h.logger.Info("Webhook válido recebido",
		"appID", appID,
		"route", c.Param("event"),
		"event", envelope.Event,
		"bytes", len(body))

	c.JSON(http.StatusOK, dto.WebhookReceivedResponse{Received: true})
}

func (h *WebhookHandler) reject(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.WebhookErrorResponse{Message: invalidWebhookMessage})
}

// appExists guarda só resultados positivos; um app criado agora é visto na próxima requisição.
func (h *WebhookHandler) appExists(ctx context.Context, appID int64) (bool, error) {
	key := strconv.FormatInt(appID, 10)
	if _, found := h.knownApps.Get(key); found {
		return true, nil
	}

	exists, err := h.apps.Exists(ctx, appID)
	if err != nil {
		return false, err
	}
	if exists {
		h.knownApps.SetDefault(key, struct{}{})
	}
	return exists, nil
}
