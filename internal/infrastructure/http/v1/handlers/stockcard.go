package handlers

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockadmin/internal/core/apperror"
	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/stockcard"
	"stockadmin/internal/infrastructure/http/v1/dto"
)

// StockCardHandler serves stock card summaries.
type StockCardHandler struct {
	*BaseHandler
	repo *stockcard.Repository
}

// NewStockCardHandler creates a new stock card handler.
func NewStockCardHandler(base *BaseHandler, repo *stockcard.Repository) *StockCardHandler {
	return &StockCardHandler{BaseHandler: base, repo: repo}
}

// RegisterRoutes mounts the summaries route on rg.
func (h *StockCardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock-card-summaries", h.List)
}

// List handles GET /stock-card-summaries?programId=&facilityId=&page=&size=
func (h *StockCardHandler) List(c *gin.Context) {
	params := url.Values{}
	for _, name := range []string{stockcard.ParamProgramID, stockcard.ParamFacilityID} {
		raw := c.Query(name)
		if _, err := id.Parse(raw); err != nil {
			h.Error(c, apperror.NewValidation(name+" must be a valid UUID").WithDetail("field", name))
			return
		}
		params.Set(name, raw)
	}
	for _, name := range []string{stockcard.ParamPage, stockcard.ParamSize} {
		raw, ok := c.GetQuery(name)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(raw); err != nil || n < 0 {
			h.Error(c, apperror.NewValidation(name+" must be a non-negative integer").WithDetail("field", name))
			return
		}
		params.Set(name, raw)
	}

	page, err := h.repo.Query(c.Request.Context(), params)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromStockCardSummaries(page))
}
