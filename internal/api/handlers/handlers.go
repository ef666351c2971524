package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"apphooks/internal/logger"
)

type BaseHandler struct {
	logger logger.Logger
}

func NewBaseHandler(component string) *BaseHandler {
	return &BaseHandler{
		logger: logger.NewForComponent(component),
	}
}

func (h *BaseHandler) WriteErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	if statusCode >= http.StatusInternalServerError {
		h.logger.Error("Erro HTTP", "status", statusCode, "message", message, "error", err, "path", c.Request.URL.Path)
	} else {
		h.logger.Debug("Erro HTTP", "status", statusCode, "message", message, "error", err, "path", c.Request.URL.Path)
	}

	response := gin.H{
		"error":     true,
		"message":   message,
		"code":      statusCode,
		"timestamp": time.Now().Unix(),
	}
	if err != nil && statusCode < http.StatusInternalServerError {
		response["details"] = err.Error()
	}

	c.JSON(statusCode, response)
}

func (h *BaseHandler) WriteSuccessResponse(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, gin.H{
		"success":   true,
		"message":   message,
		"data":      data,
		"timestamp": time.Now().Unix(),
	})
}

// parseIDParam lê um parâmetro de rota inteiro e positivo.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		h.WriteErrorResponse(c, http.StatusBadRequest, "Parâmetro inválido: "+name, err)
		return 0, false
	}
	return id, true
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	*BaseHandler
	db      Pinger
	version string
}

func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler("HealthHandler"),
		db:          db,
		version:     version,
	}
}

// @Summary      Verificar saúde da API
// @Description  Verifica se a API e o banco de dados estão respondendo
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	overall, database := "ok", "ok"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("Banco de dados indisponível", "error", err)
			status = http.StatusServiceUnavailable
			overall, database = "degraded", "unavailable"
		}
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"service":   "apphooks-api",
		"database":  database,
		"timestamp": time.Now().Unix(),
		"version":   h.version,
	})
}
