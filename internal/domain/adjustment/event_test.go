package adjustment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/core/id"
)

type recordingSender struct {
	events []Event
	result id.ID
	err    error
}

func (s *recordingSender) SubmitEvent(_ context.Context, event Event) (id.ID, error) {
	s.events = append(s.events, event)
	return s.result, s.err
}

func TestSubmitter_Submit_PostsExactDocument(t *testing.T) {
	programID := id.New()
	facilityID := id.New()
	orderableID := id.New()
	reasonID := id.New()
	eventID := id.New()
	occurred := time.Date(2017, 4, 1, 4, 23, 34, 120_000_000, time.UTC)

	sender := &recordingSender{result: eventID}
	got, err := NewSubmitter(sender).Submit(context.Background(), programID, facilityID, []LineItem{{
		Orderable:    Orderable{ID: orderableID},
		Quantity:     intPtr(100),
		OccurredDate: occurred,
		Reason:       Reason{ID: reasonID},
	}})

	require.NoError(t, err)
	assert.Equal(t, eventID, got)
	require.Len(t, sender.events, 1)

	body, err := json.Marshal(sender.events[0])
	require.NoError(t, err)

	want := `{"programId":"` + programID.String() + `","facilityId":"` + facilityID.String() +
		`","lineItems":[{"orderableId":"` + orderableID.String() + `","quantity":100,` +
		`"occurredDate":"2017-04-01T04:23:34.120Z","reasonId":"` + reasonID.String() + `"}]}`
	assert.JSONEq(t, want, string(body))
}

func TestBuildEvent_PreservesOrderAndAbsentQuantity(t *testing.T) {
	items := fixtureLineItems(t)

	event := BuildEvent(id.New(), id.New(), items)

	require.Len(t, event.LineItems, len(items))
	for i, item := range items {
		assert.Equal(t, item.Orderable.ID, event.LineItems[i].OrderableID)
		assert.Equal(t, item.Reason.ID, event.LineItems[i].ReasonID)
	}
	assert.Nil(t, event.LineItems[2].Quantity)
	assert.Equal(t, "2016-04-01T03:23:34.000Z", event.LineItems[0].OccurredDate)

	body, err := json.Marshal(event.LineItems[2])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"quantity":null`)
}

func TestFormatOccurredDate_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2017, 4, 1, 1, 0, 0, 0, loc)

	assert.Equal(t, "2017-03-31T23:00:00.000Z", FormatOccurredDate(local))
}

func TestSubmitter_Submit_PropagatesTransportError(t *testing.T) {
	transportErr := errors.New("connection refused")
	sender := &recordingSender{err: transportErr}

	_, err := NewSubmitter(sender).Submit(context.Background(), id.New(), id.New(), fixtureLineItems(t))

	assert.Same(t, transportErr, err)
	assert.Len(t, sender.events, 1, "no retry")
}
