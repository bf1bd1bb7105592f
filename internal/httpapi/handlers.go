package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptstudio/prompt-studio/internal/catalog"
	"github.com/promptstudio/prompt-studio/internal/execute"
	"github.com/promptstudio/prompt-studio/internal/platform/apierr"
	"github.com/promptstudio/prompt-studio/internal/platform/logger"
)

const genericExecuteError = "Failed to execute prompt. Please try again."

type Handler struct {
	executor    *execute.Executor
	log         *logger.Logger
	development bool
}

func NewHandler(executor *execute.Executor, log *logger.Logger, development bool) *Handler {
	return &Handler{executor: executor, log: log, development: development}
}

func (h *Handler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Templates)
}

func (h *Handler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Models)
}

type executeRequest struct {
	TemplateID string          `json:"templateId"`
	Inputs     json.RawMessage `json:"inputs"`
}

type executeResponse struct {
	Result string `json:"result"`
}

func (h *Handler) Execute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: templateId is required and must be a string"})
		return
	}

	result, err := h.executor.Execute(c.Request.Context(), req.TemplateID, req.Inputs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, executeResponse{Result: result})
}

// writeError maps the taxonomy onto the wire. Client input errors keep
// their specific message; everything else collapses into the generic
// execution failure unless running in development mode.
func (h *Handler) writeError(c *gin.Context, err error) {
	ae, ok := apierr.AsError(err)
	if ok {
		status := ae.HTTPStatus()
		if status != http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": ae.Error()})
			return
		}
	}

	h.log.With(
		"request_id", c.GetString(requestIDKey),
		"error", err.Error(),
	).Error("prompt execution failed")

	msg := genericExecuteError
	if h.development {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
}
