package dto

import (
	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/reason"
)

// AssignmentRequest asks for a reason to be valid at a program and facility type.
type AssignmentRequest struct {
	ProgramID      id.ID `json:"programId"`
	FacilityTypeID id.ID `json:"facilityTypeId"`
	Show           bool  `json:"show"`
}

// CreateReasonRequest creates a reason together with its assignments.
type CreateReasonRequest struct {
	Name              string              `json:"name" binding:"required"`
	Description       string              `json:"description"`
	ReasonType        reason.Type         `json:"reasonType"`
	ReasonCategory    reason.Category     `json:"reasonCategory" binding:"required"`
	IsFreeTextAllowed bool                `json:"isFreeTextAllowed"`
	Tags              []string            `json:"tags"`
	Assignments       []AssignmentRequest `json:"assignments"`
}

// ToReason applies form defaults for omitted fields.
func (r CreateReasonRequest) ToReason() reason.Reason {
	out := reason.NewReason(r.Name)
	out.Description = r.Description
	out.ReasonCategory = r.ReasonCategory
	out.IsFreeTextAllowed = r.IsFreeTextAllowed
	if r.ReasonType != "" {
		out.ReasonType = r.ReasonType
	}
	if r.Tags != nil {
		out.Tags = r.Tags
	}
	return out
}

// ValidateNameRequest checks a candidate reason name.
type ValidateNameRequest struct {
	Name string `json:"name"`
}

// ValidateNameResponse carries the message key of a failed check.
type ValidateNameResponse struct {
	Valid      bool   `json:"valid"`
	MessageKey string `json:"messageKey,omitempty"`
}

// AssignmentView is an assignment with the display names of its scope.
type AssignmentView struct {
	ProgramID        id.ID  `json:"programId"`
	ProgramName      string `json:"programName"`
	FacilityTypeID   id.ID  `json:"facilityTypeId"`
	FacilityTypeName string `json:"facilityTypeName"`
	Hidden           bool   `json:"hidden"`
}

// AssignmentPreviewResponse is the assignment table as the reason form shows it.
type AssignmentPreviewResponse struct {
	ListResponse[AssignmentView]
	Duplicated bool   `json:"duplicated"`
	MessageKey string `json:"messageKey,omitempty"`
}
