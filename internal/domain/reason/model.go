// Package reason provides stock adjustment reasons and their assignment to
// (program, facility type) scopes.
package reason

import (
	"stockadmin/internal/core/apperror"
	"stockadmin/internal/core/id"
)

// Type tells whether a reason adds to or removes from stock.
type Type string

const (
	TypeCredit            Type = "CREDIT"
	TypeDebit             Type = "DEBIT"
	TypeBalanceAdjustment Type = "BALANCE_ADJUSTMENT"
)

// Types lists reason types in the order offered by the reason form; the first is the default.
var Types = []Type{TypeCredit, TypeDebit, TypeBalanceAdjustment}

// Category groups reasons by the kind of stock operation they justify.
type Category string

const (
	CategoryTransfer          Category = "TRANSFER"
	CategoryAdjustment        Category = "ADJUSTMENT"
	CategoryPhysicalInventory Category = "PHYSICAL_INVENTORY"
	CategoryAggregation       Category = "AGGREGATION"
)

// Categories lists the reason categories offered by the reason form.
var Categories = []Category{CategoryTransfer, CategoryAdjustment, CategoryPhysicalInventory, CategoryAggregation}

// Reason is a stock adjustment reason as stored by the stock management API.
type Reason struct {
	ID                id.ID    `json:"id,omitzero"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	ReasonType        Type     `json:"reasonType"`
	ReasonCategory    Category `json:"reasonCategory"`
	IsFreeTextAllowed bool     `json:"isFreeTextAllowed"`
	Tags              []string `json:"tags"`
}

// NewReason returns a reason with the form defaults applied.
func NewReason(name string) Reason {
	return Reason{
		Name:              name,
		ReasonType:        Types[0],
		IsFreeTextAllowed: false,
		Tags:              []string{},
	}
}

// Validate checks required reason fields.
func (r Reason) Validate() error {
	if r.Name == "" {
		return apperror.NewValidation("reason name is required").WithDetail("field", "name")
	}
	if r.ReasonType == "" {
		return apperror.NewValidation("reason type is required").WithDetail("field", "reasonType")
	}
	if r.ReasonCategory == "" {
		return apperror.NewValidation("reason category is required").WithDetail("field", "reasonCategory")
	}
	return nil
}

// Ref is a reference to another resource by identity only.
type Ref struct {
	ID id.ID `json:"id"`
}

// Program is a reference-data program.
type Program struct {
	ID   id.ID  `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// FacilityType is a reference-data facility type.
type FacilityType struct {
	ID   id.ID  `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// Assignment makes a reason valid for a program at a facility type.
// Reason is set only when the assignment is sent upstream.
type Assignment struct {
	Program      Ref  `json:"program"`
	FacilityType Ref  `json:"facilityType"`
	Hidden       bool `json:"hidden"`
	Reason       *Ref `json:"reason,omitempty"`
}
