package dto

import (
	"stockadmin/internal/domain"
	"stockadmin/internal/domain/stockcard"
)

// StockCardSummaryResponse is a summary with its derived stock flag.
type StockCardSummaryResponse struct {
	stockcard.StockCardSummary
	HasStock bool `json:"hasStock"`
}

// FromStockCardSummaries maps a page of summaries to the response page.
func FromStockCardSummaries(page domain.Page[stockcard.StockCardSummary]) domain.Page[StockCardSummaryResponse] {
	return domain.MapPage(page, func(s stockcard.StockCardSummary) StockCardSummaryResponse {
		return StockCardSummaryResponse{StockCardSummary: s, HasStock: s.HasStock()}
	})
}
