package stockmanagement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"stockadmin/internal/core/id"
	"stockadmin/internal/domain/adjustment"
)

const stockEventsPath = "/api/stockEvents"

var _ adjustment.EventSender = (*Client)(nil)

// SubmitEvent posts event and returns the id of the created stock event.
// The server answers with the bare id, either as a JSON string or as text.
func (c *Client) SubmitEvent(ctx context.Context, event adjustment.Event) (id.ID, error) {
	payload, err := c.do(ctx, http.MethodPost, stockEventsPath, nil, event)
	if err != nil {
		return id.ID{}, err
	}
	return parseEventID(payload)
}

func parseEventID(payload []byte) (id.ID, error) {
	raw := string(bytes.TrimSpace(payload))
	var quoted string
	if err := json.Unmarshal(payload, &quoted); err == nil {
		raw = quoted
	}

	eventID, err := id.Parse(raw)
	if err != nil {
		return id.ID{}, fmt.Errorf("parse stock event id %q: %w", raw, err)
	}
	return eventID, nil
}
