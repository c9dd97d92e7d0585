package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stockadmin/internal/core/apperror"
	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/adjustment"
	"stockadmin/internal/infrastructure/http/v1/dto"
)

// AdjustmentHandler handles adjustment draft endpoints.
type AdjustmentHandler struct {
	*BaseHandler
	service *adjustment.Service
}

// NewAdjustmentHandler creates a new adjustment handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustment.Service) *AdjustmentHandler {
	return &AdjustmentHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the draft routes on rg.
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/adjustments/drafts")
	drafts.POST("", h.CreateDraft)
	drafts.GET("/:id", h.GetDraft)
	drafts.DELETE("/:id", h.DeleteDraft)
	drafts.GET("/:id/line-items", h.SearchLineItems)
	drafts.POST("/:id/line-items", h.AddLineItem)
	drafts.DELETE("/:id/line-items/:itemId", h.RemoveLineItem)
	drafts.POST("/:id/submit", h.Submit)

	rg.GET("/adjustments/submissions", h.ListSubmissions)
}

// CreateDraft handles POST /adjustments/drafts
func (h *AdjustmentHandler) CreateDraft(c *gin.Context) {
	var req dto.CreateDraftRequest
	if !h.BindJSON(c, &req) {
		return
	}

	draft, err := h.service.CreateDraft(c.Request.Context(), req.ProgramID, req.FacilityID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, draft.ID.String())
}

// GetDraft handles GET /adjustments/drafts/:id
func (h *AdjustmentHandler) GetDraft(c *gin.Context) {
	draftID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	draft, err := h.service.GetDraft(c.Request.Context(), draftID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, draft)
}

// DeleteDraft handles DELETE /adjustments/drafts/:id
func (h *AdjustmentHandler) DeleteDraft(c *gin.Context) {
	draftID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteDraft(c.Request.Context(), draftID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// AddLineItem handles POST /adjustments/drafts/:id/line-items
func (h *AdjustmentHandler) AddLineItem(c *gin.Context) {
	draftID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	var req dto.LineItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.AddLineItem(c.Request.Context(), draftID, req.ToLineItem())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, item.ID.String())
}

// RemoveLineItem handles DELETE /adjustments/drafts/:id/line-items/:itemId
func (h *AdjustmentHandler) RemoveLineItem(c *gin.Context) {
	draftID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.ParamID(c, "itemId")
	if !ok {
		return
	}

	if err := h.service.RemoveLineItem(c.Request.Context(), draftID, itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// SearchLineItems handles GET /adjustments/drafts/:id/line-items?keyword=
func (h *AdjustmentHandler) SearchLineItems(c *gin.Context) {
	draftID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}
	keyword := c.Query("keyword")

	items, err := h.service.SearchLineItems(c.Request.Context(), draftID, keyword)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.LineItemSearchResponse{Keyword: keyword, Items: items, Total: len(items)})
}

// Submit handles POST /adjustments/drafts/:id/submit
func (h *AdjustmentHandler) Submit(c *gin.Context) {
	draftID, ok := h.ParamID(c, "id")
	if !ok {
		return
	}

	eventID, err := h.service.Submit(c.Request.Context(), draftID)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.SubmitResponse{EventID: eventID.String()})
}

// ListSubmissions handles GET /adjustments/submissions?facilityId=&limit=
func (h *AdjustmentHandler) ListSubmissions(c *gin.Context) {
	facilityID, err := id.Parse(c.Query("facilityId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("facilityId must be a valid UUID").WithDetail("field", "facilityId"))
		return
	}
	limit := 0
	if raw, ok := c.GetQuery("limit"); ok {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			h.Error(c, apperror.NewValidation("limit must be a non-negative integer").WithDetail("field", "limit"))
			return
		}
	}

	submissions, err := h.service.Submissions(c.Request.Context(), facilityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SubmissionListResponse{FacilityID: facilityID, Submissions: submissions})
}
