package reason

import (
	"slices"
	"strings"

	"stockadmin/internal/core/id"
)

// MessageKeyNameDuplicated is returned by NameValidator for a taken name.
const MessageKeyNameDuplicated = "adminReasonAdd.reasonNameDuplicated"

// ReferenceIndex resolves program and facility type names by id.
// It is built once from fully loaded reference data and is read-only afterwards.
type ReferenceIndex struct {
	programs      map[id.ID]string
	facilityTypes map[id.ID]string
}

// NewReferenceIndex indexes the given reference lists.
func NewReferenceIndex(programs []Program, facilityTypes []FacilityType) *ReferenceIndex {
	idx := &ReferenceIndex{
		programs:      make(map[id.ID]string, len(programs)),
		facilityTypes: make(map[id.ID]string, len(facilityTypes)),
	}
	for _, p := range programs {
		if _, seen := idx.programs[p.ID]; !seen {
			idx.programs[p.ID] = p.Name
		}
	}
	for _, ft := range facilityTypes {
		if _, seen := idx.facilityTypes[ft.ID]; !seen {
			idx.facilityTypes[ft.ID] = ft.Name
		}
	}
	return idx
}

// ProgramName returns the name of the program with the given id.
func (idx *ReferenceIndex) ProgramName(programID id.ID) (string, bool) {
	name, ok := idx.programs[programID]
	return name, ok
}

// FacilityTypeName returns the name of the facility type with the given id.
func (idx *ReferenceIndex) FacilityTypeName(facilityTypeID id.ID) (string, bool) {
	name, ok := idx.facilityTypes[facilityTypeID]
	return name, ok
}

// NameValidator checks a new reason name against the existing reasons.
type NameValidator struct {
	taken map[string]struct{}
}

// NewNameValidator indexes existing reason names, ignoring case.
func NewNameValidator(existing []Reason) *NameValidator {
	taken := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		taken[strings.ToUpper(r.Name)] = struct{}{}
	}
	return &NameValidator{taken: taken}
}

// Validate returns MessageKeyNameDuplicated if name is taken, "" otherwise.
// An empty name is never reported as a duplicate.
func (v *NameValidator) Validate(name string) string {
	if name == "" {
		return ""
	}
	if _, ok := v.taken[strings.ToUpper(name)]; ok {
		return MessageKeyNameDuplicated
	}
	return ""
}

// AvailableTags returns the distinct tags used by reasons, sorted.
func AvailableTags(reasons []Reason) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, r := range reasons {
		for _, tag := range r.Tags {
			if _, ok := seen[tag]; ok || tag == "" {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}
