package dto

import (
	"time"

	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/adjustment"
)

// CreateDraftRequest opens a draft for a program at a facility.
type CreateDraftRequest struct {
	ProgramID  id.ID `json:"programId"`
	FacilityID id.ID `json:"facilityId"`
}

// LineItemRequest is one line item entered on the adjustment screen.
type LineItemRequest struct {
	Orderable struct {
		ID              id.ID  `json:"id"`
		ProductCode     string `json:"productCode"`
		FullProductName string `json:"fullProductName"`
	} `json:"orderable"`
	StockOnHand *int `json:"stockOnHand"`
	Quantity    *int `json:"quantity"`
	Reason      struct {
		ID   id.ID  `json:"id"`
		Name string `json:"name"`
	} `json:"reason"`
	ReasonFreeText *string   `json:"reasonFreeText"`
	OccurredDate   time.Time `json:"occurredDate"`
}

// ToLineItem converts the request to a domain line item.
func (r LineItemRequest) ToLineItem() adjustment.LineItem {
	return adjustment.LineItem{
		Orderable: adjustment.Orderable{
			ID:              r.Orderable.ID,
			ProductCode:     r.Orderable.ProductCode,
			FullProductName: r.Orderable.FullProductName,
		},
		StockOnHand:    r.StockOnHand,
		Quantity:       r.Quantity,
		Reason:         adjustment.Reason{ID: r.Reason.ID, Name: r.Reason.Name},
		ReasonFreeText: r.ReasonFreeText,
		OccurredDate:   r.OccurredDate,
	}
}

// LineItemSearchResponse is the result of a keyword search over a draft.
type LineItemSearchResponse struct {
	Keyword string                `json:"keyword"`
	Items   []adjustment.LineItem `json:"items"`
	Total   int                   `json:"total"`
}

// SubmitResponse carries the id of the created stock event.
type SubmitResponse struct {
	EventID string `json:"eventId"`
}

// SubmissionListResponse lists a facility's submitted events, newest first.
type SubmissionListResponse struct {
	FacilityID  id.ID                   `json:"facilityId"`
	Submissions []adjustment.Submission `json:"submissions"`
}
