package reason

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockadmin/internal/core/id"
)

func TestReferenceIndex(t *testing.T) {
	familyPlanning := Program{ID: id.New(), Name: "Family Planning"}
	essentialMeds := Program{ID: id.New(), Name: "Essential Meds"}
	healthCenter := FacilityType{ID: id.New(), Name: "Health Center"}

	idx := NewReferenceIndex([]Program{familyPlanning, essentialMeds}, []FacilityType{healthCenter})

	name, ok := idx.ProgramName(essentialMeds.ID)
	assert.True(t, ok)
	assert.Equal(t, "Essential Meds", name)

	name, ok = idx.FacilityTypeName(healthCenter.ID)
	assert.True(t, ok)
	assert.Equal(t, "Health Center", name)

	_, ok = idx.ProgramName(healthCenter.ID)
	assert.False(t, ok)
}

func TestReferenceIndex_FirstEntryWins(t *testing.T) {
	shared := id.New()
	idx := NewReferenceIndex([]Program{{ID: shared, Name: "first"}, {ID: shared, Name: "second"}}, nil)

	name, _ := idx.ProgramName(shared)
	assert.Equal(t, "first", name)
}

func TestNameValidator(t *testing.T) {
	v := NewNameValidator([]Reason{{Name: "Transfer In"}, {Name: "Damage"}})

	assert.Equal(t, MessageKeyNameDuplicated, v.Validate("transfer in"))
	assert.Equal(t, MessageKeyNameDuplicated, v.Validate("DAMAGE"))
	assert.Empty(t, v.Validate("Expired"))
	assert.Empty(t, v.Validate(""))
}

func TestAvailableTags(t *testing.T) {
	reasons := []Reason{
		{Name: "a", Tags: []string{"consumed", "adjustment"}},
		{Name: "b", Tags: []string{"received", "consumed", ""}},
		{Name: "c"},
	}

	assert.Equal(t, []string{"adjustment", "consumed", "received"}, AvailableTags(reasons))
	assert.Equal(t, []string{}, AvailableTags(nil))
}
