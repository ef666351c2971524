package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"apphooks/internal/api/dto"
	"apphooks/internal/db/models"
	"apphooks/internal/store"
	"apphooks/internal/webhook"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

type AppHandler struct {
	*BaseHandler
	apps store.AppRepositoryInterface
	logs store.WebhookLogRepositoryInterface
}

func NewAppHandler(apps store.AppRepositoryInterface, logs store.WebhookLogRepositoryInterface) *AppHandler {
	return &AppHandler{
		BaseHandler: NewBaseHandler("AppHandler"),
		apps:        apps,
		logs:        logs,
	}
}

// @Summary      Criar app
// @Description  Cadastra um app. Sem webhookSecret, um segredo de 64 caracteres hex é gerado e devolvido apenas nesta resposta.
// @Tags         apps
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request  body      dto.CreateAppRequest  true  "Dados do app"
// @Success      201      {object}  dto.CreateAppResponse
// @Failure      400      {object}  map[string]interface{}
// @Router       /apps [post]
func (h *AppHandler) CreateApp(c *gin.Context) {
	var req dto.CreateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	app := &models.App{Name: req.Name}
	if req.WebhookURL != "" {
		app.WebhookURL = &req.WebhookURL
	}
	if req.WebhookSecret != "" {
		app.WebhookSecret = &req.WebhookSecret
	}

	if err := h.apps.Create(c.Request.Context(), app); err != nil {
		h.WriteErrorResponse(c, http.StatusInternalServerError, "Erro ao criar app", err)
		return
	}

	h.logger.Info("App criado", "appID", app.ID, "name", app.Name, "hasWebhook", app.HasWebhook())

	c.JSON(http.StatusCreated, dto.CreateAppResponse{
		App:           dto.ToAppResponse(app),
		WebhookSecret: app.Secret(),
	})
}

// @Summary      Listar apps
// @Tags         apps
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  dto.AppListResponse
// @Router       /apps [get]
func (h *AppHandler) ListApps(c *gin.Context) {
	apps, err := h.apps.List(c.Request.Context())
	if err != nil {
		h.WriteErrorResponse(c, http.StatusInternalServerError, "Erro ao listar apps", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAppListResponse(apps))
}

// @Summary      Obter app
// @Tags         apps
// @Produce      json
// @Security     ApiKeyAuth
// @Param        appId  path      int  true  "ID do app"
// @Success      200    {object}  dto.AppResponse
// @Failure      404    {object}  map[string]interface{}
// @Router       /apps/{appId} [get]
func (h *AppHandler) GetApp(c *gin.Context) {
	appID, ok := h.parseIDParam(c, "appId")
	if !ok {
		return
	}

	app, err := h.apps.GetByID(c.Request.Context(), appID)
	if err != nil {
		h.writeAppError(c, "Erro ao buscar app", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAppResponse(app))
}

// @Summary      Rotacionar segredo do webhook
// @Description  Gera um novo segredo. Entregas em andamento usam o novo segredo a partir da próxima tentativa.
// @Tags         apps
// @Produce      json
// @Security     ApiKeyAuth
// @Param        appId  path      int  true  "ID do app"
// @Success      200    {object}  dto.RotateSecretResponse
// @Failure      404    {object}  map[string]interface{}
// @Router       /apps/{appId}/secret/rotate [post]
func (h *AppHandler) RotateSecret(c *gin.Context) {
	appID, ok := h.parseIDParam(c, "appId")
	if !ok {
		return
	}

	secret, err := h.apps.RotateSecret(c.Request.Context(), appID)
	if err != nil {
		h.writeAppError(c, "Erro ao rotacionar segredo", err)
		return
	}

	c.JSON(http.StatusOK, dto.RotateSecretResponse{AppID: appID, WebhookSecret: secret})
}

// @Summary      Listar tentativas de entrega
// @Description  Tentativas de webhook do par instituto/app, mais recentes primeiro.
// @Tags         webhooks
// @Produce      json
// @Security     ApiKeyAuth
// @Param        instituteId  path      int  true   "ID do instituto"
// @Param        appId        path      int  true   "ID do app"
// @Param        limit        query     int  false  "Máximo de registros (padrão 50, máximo 500)"
// @Success      200          {object}  dto.WebhookLogListResponse
// @Failure      400          {object}  map[string]interface{}
// @Router       /institutes/{instituteId}/apps/{appId}/webhook-logs [get]
func (h *AppHandler) ListWebhookLogs(c *gin.Context) {
	instituteID, ok := h.parseIDParam(c, "instituteId")
	if !ok {
		return
	}
	appID, ok := h.parseIDParam(c, "appId")
	if !ok {
		return
	}

	limit := defaultLogLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLogLimit {
			h.WriteErrorResponse(c, http.StatusBadRequest, "Parâmetro inválido: limit", err)
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	logs, err := h.logs.ListByInstituteApp(ctx, instituteID, appID, limit)
	if err != nil {
		h.WriteErrorResponse(c, http.StatusInternalServerError, "Erro ao listar logs de webhook", err)
		return
	}

	total, err := h.logs.CountByInstituteApp(ctx, instituteID, appID)
	if err != nil {
		h.WriteErrorResponse(c, http.StatusInternalServerError, "Erro ao contar logs de webhook", err)
		return
	}

	items := make([]*dto.WebhookLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.ToWebhookLogResponse(l))
	}

	c.JSON(http.StatusOK, dto.WebhookLogListResponse{Logs: items, Total: total, Limit: limit})
}

func (h *AppHandler) writeAppError(c *gin.Context, message string, err error) {
	if errors.Is(err, webhook.ErrAppNotFound) {
		h.WriteErrorResponse(c, http.StatusNotFound, "App não encontrado", err)
		return
	}
	h.WriteErrorResponse(c, http.StatusInternalServerError, message, err)
}
