package reason

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/core/id"
)

func TestAssignmentList_Add(t *testing.T) {
	list := NewAssignmentList()
	programID, facilityTypeID := id.New(), id.New()

	a, err := list.Add(programID, facilityTypeID, true)
	require.NoError(t, err)
	assert.Equal(t, programID, a.Program.ID)
	assert.Equal(t, facilityTypeID, a.FacilityType.ID)
	assert.False(t, a.Hidden)
	assert.Nil(t, a.Reason)
	assert.Equal(t, 1, list.Len())
	assert.False(t, list.Duplicated())

	hidden, err := list.Add(programID, id.New(), false)
	require.NoError(t, err)
	assert.True(t, hidden.Hidden)
	assert.Equal(t, []*Assignment{a, hidden}, list.Items())
}

func TestAssignmentList_Add_RejectsDuplicatePair(t *testing.T) {
	list := NewAssignmentList()
	programID, facilityTypeID := id.New(), id.New()

	_, err := list.Add(programID, facilityTypeID, true)
	require.NoError(t, err)

	// visibility is not part of the identity
	dup, err := list.Add(programID, facilityTypeID, false)
	assert.ErrorIs(t, err, ErrDuplicateAssignment)
	assert.Nil(t, dup)
	assert.True(t, list.Duplicated())
	assert.Equal(t, 1, list.Len())

	_, err = list.Add(programID, id.New(), true)
	require.NoError(t, err)
	assert.False(t, list.Duplicated(), "successful add clears the flag")
	assert.Equal(t, 2, list.Len())
}

func TestAssignmentList_Remove(t *testing.T) {
	list := NewAssignmentList()
	first, _ := list.Add(id.New(), id.New(), true)
	second, _ := list.Add(id.New(), id.New(), true)
	third, _ := list.Add(id.New(), id.New(), true)

	list.Remove(second)

	assert.Equal(t, []*Assignment{first, third}, list.Items())
}

func TestAssignmentList_Remove_ByReference(t *testing.T) {
	list := NewAssignmentList()
	a, _ := list.Add(id.New(), id.New(), true)

	lookalike := *a
	list.Remove(&lookalike)
	assert.Equal(t, 1, list.Len(), "equal value but different reference is not removed")

	list.Remove(nil)
	assert.Equal(t, 1, list.Len())

	list.Remove(a)
	assert.Equal(t, 0, list.Len())
}

func TestAssignmentList_ItemsIsACopy(t *testing.T) {
	list := NewAssignmentList()
	_, _ = list.Add(id.New(), id.New(), true)

	items := list.Items()
	items[0] = nil

	assert.NotNil(t, list.Items()[0])
}
