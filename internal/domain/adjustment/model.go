// Package adjustment provides the stock adjustment line-item engine:
// field-aware search over pending line items and their submission as a stock event.
package adjustment

import (
	"fmt"
	"time"

	"stockadmin/internal/core/apperror"
	"stockadmin/internal/core/id"
)

// Orderable is the product a line item adjusts.
type Orderable struct {
	ID              id.ID  `json:"id"`
	ProductCode     string `json:"productCode"`
	FullProductName string `json:"fullProductName"`
}

// Reason is the justification picked for a line item.
type Reason struct {
	ID   id.ID  `json:"id"`
	Name string `json:"name"`
}

// LineItem is one row of a pending stock adjustment.
// StockOnHand, Quantity and ReasonFreeText are optional; nil means absent.
type LineItem struct {
	ID             id.ID     `json:"id"`
	Orderable      Orderable `json:"orderable"`
	StockOnHand    *int      `json:"stockOnHand"`
	Quantity       *int      `json:"quantity"`
	Reason         Reason    `json:"reason"`
	ReasonFreeText *string   `json:"reasonFreeText,omitempty"`
	OccurredDate   time.Time `json:"occurredDate"`
}

// Validate checks the invariants a line item must hold before it joins a draft.
func (li LineItem) Validate() error {
	if id.IsNil(li.Orderable.ID) {
		return apperror.NewValidation("orderable is required").WithDetail("field", "orderable.id")
	}
	if li.OccurredDate.IsZero() {
		return apperror.NewValidation("occurred date is required").WithDetail("field", "occurredDate")
	}
	if li.Quantity != nil && *li.Quantity < 0 {
		return apperror.NewValidation(fmt.Sprintf("quantity must not be negative, got %d", *li.Quantity)).
			WithDetail("field", "quantity")
	}
	if li.StockOnHand != nil && *li.StockOnHand < 0 {
		return apperror.NewValidation("stock on hand must not be negative").WithDetail("field", "stockOnHand")
	}
	return nil
}

// Draft is the pending batch of line items for one program at one facility.
type Draft struct {
	ID         id.ID      `db:"id" json:"id"`
	ProgramID  id.ID      `db:"program_id" json:"programId"`
	FacilityID id.ID      `db:"facility_id" json:"facilityId"`
	LineItems  []LineItem `db:"-" json:"lineItems"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// NewDraft creates an empty draft.
func NewDraft(programID, facilityID id.ID) *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:         id.New(),
		ProgramID:  programID,
		FacilityID: facilityID,
		LineItems:  make([]LineItem, 0),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
