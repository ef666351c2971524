package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"apphooks/internal/api/dto"
	"apphooks/internal/install"
)

type InstallHandler struct {
	*BaseHandler
	service *install.Service
}

func NewInstallHandler(service *install.Service) *InstallHandler {
	return &InstallHandler{
		BaseHandler: NewBaseHandler("InstallHandler"),
		service:     service,
	}
}

func (h *InstallHandler) pathIDs(c *gin.Context) (instituteID, appID int64, ok bool) {
	if instituteID, ok = h.parseIDParam(c, "instituteId"); !ok {
		return
	}
	appID, ok = h.parseIDParam(c, "appId")
	return
}

func (h *InstallHandler) writeServiceError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, install.ErrAppNotFound):
		h.WriteErrorResponse(c, http.StatusNotFound, "App não encontrado", err)
	case errors.Is(err, install.ErrAlreadyInstalled):
		h.WriteErrorResponse(c, http.StatusConflict, "App já instalado para este instituto", err)
	case errors.Is(err, install.ErrNotInstalled):
		h.WriteErrorResponse(c, http.StatusNotFound, "App não instalado para este instituto", err)
	default:
		h.WriteErrorResponse(c, http.StatusInternalServerError, message, err)
	}
}

// @Summary      Instalar app em um instituto
// @Description  Registra a instalação e dispara o evento institute_app_installed em segundo plano.
// @Tags         installations
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        instituteId  path      int                    true   "ID do instituto"
// @Param        appId        path      int                    true   "ID do app"
// @Param        request      body      dto.InstallAppRequest  false  "Settings iniciais"
// @Success      201          {object}  dto.InstallAppResponse
// @Failure      404          {object}  map[string]interface{}
// @Failure      409          {object}  map[string]interface{}
// @Router       /institutes/{instituteId}/apps/{appId}/install [post]
func (h *InstallHandler) Install(c *gin.Context) {
	instituteID, appID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req dto.InstallAppRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.WriteErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	installation, err := h.service.Install(c.Request.Context(), install.InstallRequest{
		InstituteID: instituteID,
		AppID:       appID,
		Settings:    req.Settings,
		InstalledBy: req.InstalledBy,
	})
	if err != nil {
		h.writeServiceError(c, "Erro ao instalar app", err)
		return
	}

	c.JSON(http.StatusCreated, dto.InstallAppResponse{
		Installation: dto.ToInstallationResponse(installation),
		Message:      "App instalado com sucesso",
	})
}

// @Summary      Configurar app instalado
// @Tags         installations
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        instituteId  path      int                      true  "ID do instituto"
// @Param        appId        path      int                      true  "ID do app"
// @Param        request      body      dto.ConfigureAppRequest  true  "Novas settings"
// @Success      200          {object}  dto.InstallationResponse
// @Failure      404          {object}  map[string]interface{}
// @Router       /institutes/{instituteId}/apps/{appId}/settings [put]
func (h *InstallHandler) Configure(c *gin.Context) {
	instituteID, appID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req dto.ConfigureAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	installation, err := h.service.Configure(c.Request.Context(), instituteID, appID, req.Settings)
	if err != nil {
		h.writeServiceError(c, "Erro ao configurar app", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInstallationResponse(installation))
}

// @Summary      Desinstalar app
// @Description  Remove a instalação e o histórico de entregas do par instituto/app.
// @Tags         installations
// @Produce      json
// @Security     ApiKeyAuth
// @Param        instituteId  path      int  true  "ID do instituto"
// @Param        appId        path      int  true  "ID do app"
// @Success      200          {object}  map[string]interface{}
// @Failure      404          {object}  map[string]interface{}
// @Router       /institutes/{instituteId}/apps/{appId}/install [delete]
func (h *InstallHandler) Uninstall(c *gin.Context) {
	instituteID, appID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	if err := h.service.Uninstall(c.Request.Context(), instituteID, appID); err != nil {
		h.writeServiceError(c, "Erro ao desinstalar app", err)
		return
	}

	h.WriteSuccessResponse(c, http.StatusOK, "App desinstalado com sucesso", gin.H{
		"instituteId": instituteID,
		"appId":       appID,
	})
}

// @Summary      Habilitar ou desabilitar app
// @Tags         installations
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        instituteId  path      int                   true  "ID do instituto"
// @Param        appId        path      int                   true  "ID do app"
// @Param        request      body      dto.SetStatusRequest  true  "Novo status"
// @Success      200          {object}  dto.InstallationResponse
// @Failure      404          {object}  map[string]interface{}
// @Router       /institutes/{instituteId}/apps/{appId}/status [patch]
func (h *InstallHandler) SetStatus(c *gin.Context) {
	instituteID, appID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.WriteErrorResponse(c, http.StatusBadRequest, "Dados inválidos", err)
		return
	}

	installation, err := h.service.SetEnabled(c.Request.Context(), instituteID, appID, *req.Enabled)
	if err != nil {
		h.writeServiceError(c, "Erro ao alterar status do app", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInstallationResponse(installation))
}
