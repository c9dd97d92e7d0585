// Package stockcard exposes stock card summaries served by the stock management API.
package stockcard

import (
	"time"

	"stockadmin/internal/core/id"
)

// Orderable identifies the product a stock card tracks.
type Orderable struct {
	ID              id.ID  `json:"id"`
	ProductCode     string `json:"productCode"`
	FullProductName string `json:"fullProductName"`
}

// Lot is the optional lot a stock card is kept for.
type Lot struct {
	ID             id.ID      `json:"id"`
	LotCode        string     `json:"lotCode"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
}

// DetailRecord is one stock card entry of a summary as returned upstream.
type DetailRecord struct {
	StockCard   *CardRef   `json:"stockCard,omitempty"`
	Orderable   *Orderable `json:"orderable,omitempty"`
	Lot         *Lot       `json:"lot,omitempty"`
	StockOnHand *int       `json:"stockOnHand"`
}

// CardRef is a reference to a stock card by id.
type CardRef struct {
	ID id.ID `json:"id"`
}

// Record is the raw JSON document of one stock card summary.
type Record struct {
	Orderable        Orderable      `json:"orderable"`
	StockOnHand      *int           `json:"stockOnHand"`
	StockCardDetails []DetailRecord `json:"stockCardDetails"`
}

// Detail is a single stock card inside a summary.
type Detail struct {
	StockCardID id.ID `json:"stockCardId"`
	Lot         *Lot  `json:"lot,omitempty"`
	StockOnHand *int  `json:"stockOnHand"`
}

// StockCardSummary aggregates the stock cards of one orderable.
type StockCardSummary struct {
	Orderable        Orderable `json:"orderable"`
	StockOnHand      *int      `json:"stockOnHand"`
	StockCardDetails []Detail  `json:"stockCardDetails"`
}

// NewStockCardSummary builds a summary from its raw record. The same record
// always produces an equal summary.
func NewStockCardSummary(r Record) StockCardSummary {
	details := make([]Detail, 0, len(r.StockCardDetails))
	for _, d := range r.StockCardDetails {
		detail := Detail{Lot: d.Lot, StockOnHand: d.StockOnHand}
		if d.StockCard != nil {
			detail.StockCardID = d.StockCard.ID
		}
		details = append(details, detail)
	}
	return StockCardSummary{
		Orderable:        r.Orderable,
		StockOnHand:      r.StockOnHand,
		StockCardDetails: details,
	}
}

// HasStock reports whether any stock card of the summary holds stock.
func (s StockCardSummary) HasStock() bool {
	for _, d := range s.StockCardDetails {
		if d.StockOnHand != nil && *d.StockOnHand > 0 {
			return true
		}
	}
	return s.StockOnHand != nil && *s.StockOnHand > 0
}
