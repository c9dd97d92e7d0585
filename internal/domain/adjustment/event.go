package adjustment

import (
	"context"
	"time"

	"stockadmin/internal/core/id"
)

// OccurredDateWireLayout is the ISO-8601 instant layout used on the wire.
const OccurredDateWireLayout = "2006-01-02T15:04:05.000Z"

// Event is the stock event document posted to the stock management API.
type Event struct {
	ProgramID  id.ID           `json:"programId"`
	FacilityID id.ID           `json:"facilityId"`
	LineItems  []EventLineItem `json:"lineItems"`
}

// EventLineItem is one adjustment inside an Event.
// Quantity is nil when the user left it empty; it is sent as JSON null.
type EventLineItem struct {
	OrderableID  id.ID  `json:"orderableId"`
	Quantity     *int   `json:"quantity"`
	OccurredDate string `json:"occurredDate"`
	ReasonID     id.ID  `json:"reasonId"`
}

// BuildEvent maps line items to an event, one event line item per input, in order.
func BuildEvent(programID, facilityID id.ID, items []LineItem) Event {
	lineItems := make([]EventLineItem, len(items))
	for i, item := range items {
		lineItems[i] = EventLineItem{
			OrderableID:  item.Orderable.ID,
			Quantity:     item.Quantity,
			OccurredDate: FormatOccurredDate(item.OccurredDate),
			ReasonID:     item.Reason.ID,
		}
	}
	return Event{
		ProgramID:  programID,
		FacilityID: facilityID,
		LineItems:  lineItems,
	}
}

// FormatOccurredDate renders t as a UTC ISO-8601 instant with millisecond precision.
func FormatOccurredDate(t time.Time) string {
	return t.UTC().Format(OccurredDateWireLayout)
}

// EventSender posts a stock event and returns the id assigned by the server.
type EventSender interface {
	SubmitEvent(ctx context.Context, event Event) (id.ID, error)
}

// Submitter turns line items into a stock event and submits it.
type Submitter struct {
	sender EventSender
}

// NewSubmitter creates a submitter over the given transport.
func NewSubmitter(sender EventSender) *Submitter {
	return &Submitter{sender: sender}
}

// Submit sends a single event for the whole batch. Transport errors are
// returned unchanged; the batch is accepted or rejected as a whole upstream.
func (s *Submitter) Submit(ctx context.Context, programID, facilityID id.ID, items []LineItem) (id.ID, error) {
	return s.sender.SubmitEvent(ctx, BuildEvent(programID, facilityID, items))
}
