package handler

import (
	"context"
	"net/http"

	"sf-tree-identifier/internal/address"
	"sf-tree-identifier/internal/service"

	"github.com/gin-gonic/gin"
)

// ResolveHandler handles address resolution requests
type ResolveHandler struct {
	service AddressService
}

// AddressService interface for dependency injection
type AddressService interface {
	Resolve(context.Context, string) (address.Address, error)
}

// NewResolveHandler creates a new resolve handler
func NewResolveHandler(svc AddressService) *ResolveHandler {
	return &ResolveHandler{service: svc}
}

// ResolveResponse is the canonical form of a queried address.
type ResolveResponse struct {
	Query        string `json:"query"`
	Address      string `json:"address"`
	StreetNumber string `json:"street_number"`
	StreetName   string `json:"street_name"`
}

// Resolve handles GET /resolve requests
//
//	@Summary	Canonical form of a street address
//	@Param		q	query		string	true	"Street address"
//	@Success	200	{object}	ResolveResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/resolve [get]
func (h *ResolveHandler) Resolve(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required query parameter 'q'", Kind: service.KindInvalidAddress})
		return
	}

	addr, err := h.service.Resolve(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{
		Query:        query,
		Address:      addr.String(),
		StreetNumber: addr.StreetNumber,
		StreetName:   addr.StreetName,
	})
}
