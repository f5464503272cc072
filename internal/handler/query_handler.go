package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"findash/internal/domain"
	"findash/internal/service"
)

// QueryRequest is the body of the natural-language query endpoints.
type QueryRequest struct {
	Query string `json:"query"`
}

// ChatResponse is returned by the chat endpoint. Error is set when the
// generated SQL could not be executed.
type ChatResponse struct {
	SQL     string                   `json:"sql"`
	Results []map[string]interface{} `json:"results"`
	Error   string                   `json:"error,omitempty"`
}

// QueryHandler handles the natural-language query endpoints.
type QueryHandler struct {
	querySvc service.QueryService
	chatSvc  service.QueryService
	log      *zap.Logger
}

// NewQueryHandler creates a new QueryHandler. querySvc backs /generate-sql and
// chatSvc backs /api/chat-with-data.
func NewQueryHandler(querySvc, chatSvc service.QueryService, log *zap.Logger) *QueryHandler {
	return &QueryHandler{querySvc: querySvc, chatSvc: chatSvc, log: log}
}

// GenerateSQL handles POST /generate-sql
func (h *QueryHandler) GenerateSQL(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "Query is required")
		return
	}

	result, err := h.querySvc.Ask(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, domain.ErrQueryRequired) {
			RespondError(c, http.StatusBadRequest, "Query is required")
			return
		}
		logInternal(c, h.log, err)
		RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// ChatWithData handles POST /api/chat-with-data
func (h *QueryHandler) ChatWithData(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "Query is required")
		return
	}

	result, err := h.chatSvc.Ask(c.Request.Context(), req.Query)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, ChatResponse{SQL: result.SQL, Results: result.Results})
	case errors.Is(err, domain.ErrQueryExecution) && result != nil:
		h.log.Warn("chat query failed",
			zap.String("sql", result.SQL),
			zap.Error(err),
		)
		c.JSON(http.StatusOK, ChatResponse{
			SQL:     result.SQL,
			Results: []map[string]interface{}{},
			Error:   "Query execution failed",
		})
	default:
		HandleError(c, h.log, err)
	}
}
