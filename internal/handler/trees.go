package handler

import (
	"context"
	"net/http"

	"sf-tree-identifier/internal/models"
	"sf-tree-identifier/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// TreeHandler handles tree lookup requests
type TreeHandler struct {
	service TreeService
}

// Service interface for dependency injection
type TreeService interface {
	FindTrees(context.Context, string) (*models.TreeReport, error)
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(svc TreeService) *TreeHandler {
	return &TreeHandler{service: svc}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string       `json:"error"`
	Kind  service.Kind `json:"kind"`
}

// FindTrees handles GET /trees requests
//
//	@Summary	Trees at a street address
//	@Param		q	query		string	true	"Street address, e.g. 1468 Valencia St"
//	@Success	200	{object}	models.TreeReport
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/trees [get]
func (h *TreeHandler) FindTrees(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameter 'q'", Kind: service.KindInvalidAddress})
		return
	}

	report, err := h.service.FindTrees(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// writeError maps a service error to its status code and user message.
func writeError(c *gin.Context, err error) {
	f := service.Classify(err)

	status := http.StatusInternalServerError
	switch f.Kind {
	case service.KindInvalidAddress:
		status = http.StatusUnprocessableEntity
	case service.KindUnknownStreet, service.KindNoTrees:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Str("path", c.FullPath()).Msg("request failed")
	}

	c.JSON(status, ErrorResponse{Error: f.Message, Kind: f.Kind})
}
