package reason

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockadmin/internal/core/apperror"
	"stockadmin/internal/core/id"
)

type fakeGateway struct {
	mu          sync.Mutex
	created     []Reason
	assignments []Assignment
	reasonErr   error
	assignErr   error
}

func (g *fakeGateway) CreateReason(_ context.Context, r Reason) (Reason, error) {
	if g.reasonErr != nil {
		return Reason{}, g.reasonErr
	}
	r.ID = id.New()
	g.created = append(g.created, r)
	return r, nil
}

func (g *fakeGateway) CreateValidReason(_ context.Context, a Assignment) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.assignments = append(g.assignments, a)
	return g.assignErr
}

type staticReference struct {
	programs      []Program
	facilityTypes []FacilityType
	reasons       []Reason
	err           error
}

func (s staticReference) Programs(context.Context) ([]Program, error) { return s.programs, s.err }

func (s staticReference) FacilityTypes(context.Context) ([]FacilityType, error) {
	return s.facilityTypes, s.err
}

func (s staticReference) Reasons(context.Context) ([]Reason, error) { return s.reasons, s.err }

func newReason(name string) Reason {
	r := NewReason(name)
	r.ReasonCategory = CategoryAdjustment
	return r
}

func TestNewReason_Defaults(t *testing.T) {
	r := NewReason("Expired")

	assert.Equal(t, TypeCredit, r.ReasonType)
	assert.False(t, r.IsFreeTextAllowed)
	assert.Equal(t, []string{}, r.Tags)
}

func TestService_Create_BindsAssignmentsToNewReason(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, staticReference{})

	list := NewAssignmentList()
	_, _ = list.Add(id.New(), id.New(), true)
	_, _ = list.Add(id.New(), id.New(), false)

	created, err := svc.Create(context.Background(), newReason("Expired"), list)
	require.NoError(t, err)
	require.Len(t, gw.created, 1)
	require.Len(t, gw.assignments, 2)
	for _, a := range gw.assignments {
		require.NotNil(t, a.Reason)
		assert.Equal(t, created.ID, a.Reason.ID)
	}
	for _, a := range list.Items() {
		assert.Nil(t, a.Reason, "pending list is not mutated")
	}
}

func TestService_Create_RejectsDuplicateName(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, staticReference{reasons: []Reason{{Name: "Expired"}}})

	_, err := svc.Create(context.Background(), newReason("EXPIRED"), NewAssignmentList())

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Equal(t, MessageKeyNameDuplicated, appErr.MessageKey)
	assert.Empty(t, gw.created)
}

func TestService_Create_PropagatesFailures(t *testing.T) {
	reasonErr := errors.New("reason rejected")
	svc := NewService(&fakeGateway{reasonErr: reasonErr}, staticReference{})
	_, err := svc.Create(context.Background(), newReason("Expired"), NewAssignmentList())
	assert.ErrorIs(t, err, reasonErr)

	assignErr := errors.New("valid reason rejected")
	list := NewAssignmentList()
	_, _ = list.Add(id.New(), id.New(), true)
	svc = NewService(&fakeGateway{assignErr: assignErr}, staticReference{})
	_, err = svc.Create(context.Background(), newReason("Expired"), list)
	assert.ErrorIs(t, err, assignErr)
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(&fakeGateway{}, staticReference{})

	_, err := svc.Create(context.Background(), NewReason(""), NewAssignmentList())
	assert.True(t, apperror.IsAppError(err))

	_, err = svc.Create(context.Background(), NewReason("No category"), NewAssignmentList())
	assert.True(t, apperror.IsAppError(err))
}

func TestService_Form(t *testing.T) {
	ref := staticReference{
		programs:      []Program{{ID: id.New(), Name: "Family Planning"}},
		facilityTypes: []FacilityType{{ID: id.New(), Name: "Health Center"}},
		reasons:       []Reason{{Name: "Damage", Tags: []string{"damaged"}}},
	}
	svc := NewService(&fakeGateway{}, ref)

	form, err := svc.Form(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Types, form.ReasonTypes)
	assert.Equal(t, Categories, form.ReasonCategories)
	assert.Equal(t, ref.programs, form.Programs)
	assert.Equal(t, []string{"damaged"}, form.AvailableTags)

	key, err := svc.ValidateName(context.Background(), "damage")
	require.NoError(t, err)
	assert.Equal(t, MessageKeyNameDuplicated, key)
}

func TestService_Form_ReferenceFailure(t *testing.T) {
	loadErr := errors.New("reference data unavailable")
	svc := NewService(&fakeGateway{}, staticReference{err: loadErr})

	_, err := svc.Form(context.Background())
	assert.ErrorIs(t, err, loadErr)
}

type invalidatingReference struct {
	staticReference
	invalidated int
}

func (r *invalidatingReference) InvalidateReasons(context.Context) error {
	r.invalidated++
	return nil
}

func TestService_Create_InvalidatesCachedReasons(t *testing.T) {
	ref := &invalidatingReference{}
	svc := NewService(&fakeGateway{}, ref)

	_, err := svc.Create(context.Background(), newReason("Expired"), NewAssignmentList())

	require.NoError(t, err)
	assert.Equal(t, 1, ref.invalidated)
}
