package stockmanagement

import (
	"context"
	"net/http"

	"stockadmin/internal/domain/reason"
)

const (
	reasonsPath      = "/api/stockCardLineItemReasons"
	validReasonsPath = "/api/validReasons"
)

var _ reason.Gateway = (*Client)(nil)

// CreateReason creates a stock card line item reason and returns it with its id.
func (c *Client) CreateReason(ctx context.Context, r reason.Reason) (reason.Reason, error) {
	var created reason.Reason
	if err := c.doJSON(ctx, http.MethodPost, reasonsPath, nil, r, &created); err != nil {
		return reason.Reason{}, err
	}
	return created, nil
}

// CreateValidReason creates one valid reason assignment.
func (c *Client) CreateValidReason(ctx context.Context, a reason.Assignment) error {
	return c.doJSON(ctx, http.MethodPost, validReasonsPath, nil, a, nil)
}

// Reasons lists every stock card line item reason.
func (c *Client) Reasons(ctx context.Context) ([]reason.Reason, error) {
	var reasons []reason.Reason
	if err := c.doJSON(ctx, http.MethodGet, reasonsPath, nil, nil, &reasons); err != nil {
		return nil, err
	}
	return reasons, nil
}
