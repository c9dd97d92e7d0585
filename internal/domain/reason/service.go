package reason

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"stockadmin/internal/core/apperror"
	"stockadmin/pkg/logger"
)

// Gateway creates reasons and valid reason assignments upstream.
type Gateway interface {
	CreateReason(ctx context.Context, r Reason) (Reason, error)
	CreateValidReason(ctx context.Context, a Assignment) error
}

// ReferenceSource supplies fully loaded, read-only reference data.
type ReferenceSource interface {
	Programs(ctx context.Context) ([]Program, error)
	FacilityTypes(ctx context.Context) ([]FacilityType, error)
	Reasons(ctx context.Context) ([]Reason, error)
}

// reasonsInvalidator is implemented by reference sources that cache the reason list.
type reasonsInvalidator interface {
	InvalidateReasons(ctx context.Context) error
}

// Form is everything the reason creation screen needs up front.
type Form struct {
	ReasonTypes      []Type         `json:"reasonTypes"`
	ReasonCategories []Category     `json:"reasonCategories"`
	Programs         []Program      `json:"programs"`
	FacilityTypes    []FacilityType `json:"facilityTypes"`
	AvailableTags    []string       `json:"availableTags"`
}

// Service implements the reason creation flow.
type Service struct {
	gateway   Gateway
	reference ReferenceSource
}

// NewService creates a new reason service.
func NewService(gateway Gateway, reference ReferenceSource) *Service {
	return &Service{gateway: gateway, reference: reference}
}

// Form loads the reference data for the reason creation screen.
func (s *Service) Form(ctx context.Context) (Form, error) {
	programs, err := s.reference.Programs(ctx)
	if err != nil {
		return Form{}, err
	}
	facilityTypes, err := s.reference.FacilityTypes(ctx)
	if err != nil {
		return Form{}, err
	}
	reasons, err := s.reference.Reasons(ctx)
	if err != nil {
		return Form{}, err
	}
	return Form{
		ReasonTypes:      Types,
		ReasonCategories: Categories,
		Programs:         programs,
		FacilityTypes:    facilityTypes,
		AvailableTags:    AvailableTags(reasons),
	}, nil
}

// Index builds a name lookup over the current programs and facility types.
func (s *Service) Index(ctx context.Context) (*ReferenceIndex, error) {
	programs, err := s.reference.Programs(ctx)
	if err != nil {
		return nil, err
	}
	facilityTypes, err := s.reference.FacilityTypes(ctx)
	if err != nil {
		return nil, err
	}
	return NewReferenceIndex(programs, facilityTypes), nil
}

// ValidateName returns the message key describing why name cannot be used, or "".
func (s *Service) ValidateName(ctx context.Context, name string) (string, error) {
	reasons, err := s.reference.Reasons(ctx)
	if err != nil {
		return "", err
	}
	return NewNameValidator(reasons).Validate(name), nil
}

// Create stores the reason upstream and then binds every assignment to it.
// Assignment requests are issued concurrently; the first failure is returned.
func (s *Service) Create(ctx context.Context, r Reason, assignments *AssignmentList) (Reason, error) {
	if err := r.Validate(); err != nil {
		return Reason{}, err
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	key, err := s.ValidateName(ctx, r.Name)
	if err != nil {
		return Reason{}, err
	}
	if key != "" {
		return Reason{}, apperror.NewDuplicate("reason", "name", r.Name).WithMessageKey(key)
	}

	created, err := s.gateway.CreateReason(ctx, r)
	if err != nil {
		return Reason{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, a := range assignments.Items() {
		bound := *a
		bound.Reason = &Ref{ID: created.ID}
		g.Go(func() error {
			if err := s.gateway.CreateValidReason(gctx, bound); err != nil {
				return fmt.Errorf("assign reason to program %s / facility type %s: %w",
					bound.Program.ID, bound.FacilityType.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error(ctx, "reason created but assignments failed",
			"reason_id", created.ID,
			"error", err,
		)
		return Reason{}, err
	}

	if inv, ok := s.reference.(reasonsInvalidator); ok {
		if err := inv.InvalidateReasons(ctx); err != nil {
			logger.Warn(ctx, "failed to invalidate cached reasons", "error", err)
		}
	}

	logger.Info(ctx, "reason created",
		"reason_id", created.ID,
		"name", created.Name,
		"assignments", assignments.Len(),
	)
	return created, nil
}
