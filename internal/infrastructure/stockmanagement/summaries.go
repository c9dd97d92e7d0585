package stockmanagement

import (
	"context"
	"net/http"
	"net/url"

	"stockadmin/internal/domain"
	"stockadmin/internal/domain/stockcard"
)

const stockCardSummariesPath = "/api/v2/stockCardSummaries"

// SummariesResource is the raw stock card summaries endpoint.
type SummariesResource struct {
	client *Client
}

var _ domain.Querier[stockcard.Record] = (*SummariesResource)(nil)

// Summaries returns the stock card summaries resource.
func (c *Client) Summaries() *SummariesResource {
	return &SummariesResource{client: c}
}

// Query forwards params as the query string and returns the page as served.
func (r *SummariesResource) Query(ctx context.Context, params url.Values) (domain.Page[stockcard.Record], error) {
	var page domain.Page[stockcard.Record]
	if err := r.client.doJSON(ctx, http.MethodGet, stockCardSummariesPath, params, nil, &page); err != nil {
		return domain.Page[stockcard.Record]{}, err
	}
	return page, nil
}
