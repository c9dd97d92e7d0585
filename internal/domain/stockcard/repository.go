package stockcard

import (
	"stockadmin/internal/domain"
)

// Query parameters understood by the stock card summaries endpoint.
const (
	ParamProgramID  = "programId"
	ParamFacilityID = "facilityId"
	ParamPage       = "page"
	ParamSize       = "size"
)

// Repository returns pages of stock card summaries.
type Repository = domain.PagedRepository[Record, StockCardSummary]

// NewRepository wraps the raw summaries querier.
func NewRepository(impl domain.Querier[Record]) *Repository {
	return domain.NewPagedRepository(impl, NewStockCardSummary)
}
