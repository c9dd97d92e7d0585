package reason

import (
	"errors"
	"slices"

	"stockadmin/internal/core/id"
)

// ErrDuplicateAssignment is returned when the program/facility type pair is already assigned.
var ErrDuplicateAssignment = errors.New("reason: assignment for program and facility type already exists")

// MessageKeyAssignmentDuplicated is the UI message shown for ErrDuplicateAssignment.
const MessageKeyAssignmentDuplicated = "adminReasonAdd.validReasonDuplicated"

// AssignmentList holds the assignments being prepared for a new reason.
// Elements are identified by pointer, so Remove takes what Add returned.
type AssignmentList struct {
	items      []*Assignment
	duplicated bool
}

// NewAssignmentList creates an empty list.
func NewAssignmentList() *AssignmentList {
	return &AssignmentList{items: make([]*Assignment, 0)}
}

// Add appends an assignment for the pair unless one already exists.
// show=false produces a hidden assignment.
func (l *AssignmentList) Add(programID, facilityTypeID id.ID, show bool) (*Assignment, error) {
	for _, a := range l.items {
		if a.Program.ID == programID && a.FacilityType.ID == facilityTypeID {
			l.duplicated = true
			return nil, ErrDuplicateAssignment
		}
	}
	l.duplicated = false

	a := &Assignment{
		Program:      Ref{ID: programID},
		FacilityType: Ref{ID: facilityTypeID},
		Hidden:       !show,
	}
	l.items = append(l.items, a)
	return a, nil
}

// Remove deletes a from the list. Unknown assignments are ignored.
func (l *AssignmentList) Remove(a *Assignment) {
	i := slices.Index(l.items, a)
	if i < 0 {
		return
	}
	l.items = slices.Delete(l.items, i, i+1)
}

// Duplicated reports whether the last Add was rejected as a duplicate.
func (l *AssignmentList) Duplicated() bool {
	return l.duplicated
}

// Items returns the assignments in insertion order.
func (l *AssignmentList) Items() []*Assignment {
	return slices.Clone(l.items)
}

// Len returns the number of assignments.
func (l *AssignmentList) Len() int {
	return len(l.items)
}
