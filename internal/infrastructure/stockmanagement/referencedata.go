package stockmanagement

import (
	"context"
	"net/http"
	"net/url"

	"stockadmin/internal/domain"
	"stockadmin/internal/domain/reason"
)

const (
	programsPath      = "/api/programs"
	facilityTypesPath = "/api/facilityTypes"
)

// Programs lists all programs.
func (c *Client) Programs(ctx context.Context) ([]reason.Program, error) {
	var programs []reason.Program
	if err := c.doJSON(ctx, http.MethodGet, programsPath, nil, nil, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// FacilityTypes lists all facility types. The endpoint is paginated; the
// first page is requested large enough to hold every type.
func (c *Client) FacilityTypes(ctx context.Context) ([]reason.FacilityType, error) {
	var page domain.Page[reason.FacilityType]
	query := url.Values{"page": {"0"}, "size": {"2000"}}
	if err := c.doJSON(ctx, http.MethodGet, facilityTypesPath, query, nil, &page); err != nil {
		return nil, err
	}
	return page.Content, nil
}
