package adjustment

import (
	"context"
	"time"

	"stockadmin/internal/core/id"
)

const (
	DefaultSubmissionLimit = 50
	MaxSubmissionLimit     = 500
)

// Submission is the record of a stock event accepted by the stock management API.
type Submission struct {
	ID            id.ID     `json:"id"`
	DraftID       id.ID     `json:"draftId"`
	EventID       id.ID     `json:"eventId"`
	ProgramID     id.ID     `json:"programId"`
	FacilityID    id.ID     `json:"facilityId"`
	LineItemCount int       `json:"lineItemCount"`
	Event         Event     `json:"event"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// NewSubmission records that event was accepted under eventID.
func NewSubmission(draftID, eventID id.ID, event Event) Submission {
	return Submission{
		ID:            id.New(),
		DraftID:       draftID,
		EventID:       eventID,
		ProgramID:     event.ProgramID,
		FacilityID:    event.FacilityID,
		LineItemCount: len(event.LineItems),
		Event:         event,
		SubmittedAt:   time.Now().UTC(),
	}
}

// SubmissionLog keeps the history of submitted events.
type SubmissionLog interface {
	Record(ctx context.Context, s Submission) error

	// ListByFacility returns the newest submissions for a facility first.
	ListByFacility(ctx context.Context, facilityID id.ID, limit int) ([]Submission, error)
}

// ClampSubmissionLimit maps a requested page size into [1, MaxSubmissionLimit];
// zero or negative selects DefaultSubmissionLimit.
func ClampSubmissionLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultSubmissionLimit
	case limit > MaxSubmissionLimit:
		return MaxSubmissionLimit
	default:
		return limit
	}
}
