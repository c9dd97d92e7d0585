package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"stockadmin/internal/core/apperror"
	"stockadmin/internal/domain/reason"
	"stockadmin/internal/infrastructure/http/v1/dto"
)

// ReasonHandler handles reason creation endpoints.
type ReasonHandler struct {
	*BaseHandler
	service *reason.Service
}

// NewReasonHandler creates a new reason handler.
func NewReasonHandler(base *BaseHandler, service *reason.Service) *ReasonHandler {
	return &ReasonHandler{BaseHandler: base, service: service}
}

// RegisterRoutes mounts the reason routes on rg.
func (h *ReasonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reasons := rg.Group("/reasons")
	reasons.GET("/form", h.Form)
	reasons.POST("/validate-name", h.ValidateName)
	reasons.POST("/assignments/preview", h.PreviewAssignments)
	reasons.POST("", h.Create)
}

// Form handles GET /reasons/form
func (h *ReasonHandler) Form(c *gin.Context) {
	form, err := h.service.Form(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, form)
}

// ValidateName handles POST /reasons/validate-name
func (h *ReasonHandler) ValidateName(c *gin.Context) {
	var req dto.ValidateNameRequest
	if !h.BindJSON(c, &req) {
		return
	}

	key, err := h.service.ValidateName(c.Request.Context(), req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.ValidateNameResponse{Valid: key == "", MessageKey: key})
}

// PreviewAssignments handles POST /reasons/assignments/preview
// Assignments are added in request order; duplicates are dropped and flagged.
func (h *ReasonHandler) PreviewAssignments(c *gin.Context) {
	var req []dto.AssignmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	index, err := h.service.Index(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	list := reason.NewAssignmentList()
	duplicated := false
	for _, a := range req {
		if _, err := list.Add(a.ProgramID, a.FacilityTypeID, a.Show); err != nil {
			duplicated = true
		}
	}

	views := make([]dto.AssignmentView, 0, list.Len())
	for _, a := range list.Items() {
		programName, _ := index.ProgramName(a.Program.ID)
		facilityTypeName, _ := index.FacilityTypeName(a.FacilityType.ID)
		views = append(views, dto.AssignmentView{
			ProgramID:        a.Program.ID,
			ProgramName:      programName,
			FacilityTypeID:   a.FacilityType.ID,
			FacilityTypeName: facilityTypeName,
			Hidden:           a.Hidden,
		})
	}

	resp := dto.AssignmentPreviewResponse{
		ListResponse: dto.NewListResponse(views),
		Duplicated:   duplicated,
	}
	if duplicated {
		resp.MessageKey = reason.MessageKeyAssignmentDuplicated
	}
	h.OK(c, resp)
}

// Create handles POST /reasons
func (h *ReasonHandler) Create(c *gin.Context) {
	var req dto.CreateReasonRequest
	if !h.BindJSON(c, &req) {
		return
	}

	list := reason.NewAssignmentList()
	for _, a := range req.Assignments {
		if _, err := list.Add(a.ProgramID, a.FacilityTypeID, a.Show); err != nil {
			if errors.Is(err, reason.ErrDuplicateAssignment) {
				err = apperror.NewDuplicate("valid reason assignment", "program and facility type",
					a.ProgramID.String()+"/"+a.FacilityTypeID.String()).
					WithMessageKey(reason.MessageKeyAssignmentDuplicated)
			}
			h.Error(c, err)
			return
		}
	}

	created, err := h.service.Create(c.Request.Context(), req.ToReason(), list)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, created.ID.String())
}
