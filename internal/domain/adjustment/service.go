package adjustment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stockadmin/internal/core/apperror"
	"stockadmin/internal/core/id"
	"stockadmin/internal/core/tx"
	"stockadmin/pkg/logger"
)

// Repository persists adjustment drafts and their ordered line items.
type Repository interface {
	// Create inserts an empty draft.
	Create(ctx context.Context, draft *Draft) error

	// GetByID loads a draft with its line items in insertion order.
	// Returns an apperror NotFound when the draft does not exist.
	GetByID(ctx context.Context, draftID id.ID) (*Draft, error)

	// AppendLineItem stores item after the draft's existing line items.
	AppendLineItem(ctx context.Context, draftID id.ID, item LineItem) error

	// RemoveLineItem deletes one line item; removing a missing item is a no-op.
	RemoveLineItem(ctx context.Context, draftID, itemID id.ID) error

	// Delete removes the draft and all of its line items.
	Delete(ctx context.Context, draftID id.ID) error

	// DeleteUpdatedBefore removes drafts untouched since cutoff and reports how many.
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service manages adjustment drafts: editing, keyword search and submission.
type Service struct {
	repo      Repository
	txManager tx.Manager
	submitter *Submitter
	history   SubmissionLog
}

// NewService creates a new adjustment draft service.
func NewService(repo Repository, txManager tx.Manager, submitter *Submitter) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		submitter: submitter,
	}
}

// WithSubmissionLog enables recording of accepted events.
func (s *Service) WithSubmissionLog(history SubmissionLog) *Service {
	s.history = history
	return s
}

// CreateDraft opens an empty draft for a program at a facility.
func (s *Service) CreateDraft(ctx context.Context, programID, facilityID id.ID) (*Draft, error) {
	if id.IsNil(programID) {
		return nil, apperror.NewValidation("programId is required")
	}
	if id.IsNil(facilityID) {
		return nil, apperror.NewValidation("facilityId is required")
	}

	draft := NewDraft(programID, facilityID)
	if err := s.repo.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}

	logger.Info(ctx, "adjustment draft created",
		"draft_id", draft.ID,
		"program_id", programID,
		"facility_id", facilityID,
	)
	return draft, nil
}

// GetDraft returns the draft with all of its line items.
func (s *Service) GetDraft(ctx context.Context, draftID id.ID) (*Draft, error) {
	return s.repo.GetByID(ctx, draftID)
}

// AddLineItem validates item, assigns it an id and appends it to the draft.
func (s *Service) AddLineItem(ctx context.Context, draftID id.ID, item LineItem) (LineItem, error) {
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	if id.IsNil(item.ID) {
		item.ID = id.New()
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, draftID); err != nil {
			return err
		}
		return s.repo.AppendLineItem(ctx, draftID, item)
	})
	if err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// RemoveLineItem drops a line item from the draft.
func (s *Service) RemoveLineItem(ctx context.Context, draftID, itemID id.ID) error {
	return s.repo.RemoveLineItem(ctx, draftID, itemID)
}

// SearchLineItems returns the draft's line items matching keyword, in draft order.
func (s *Service) SearchLineItems(ctx context.Context, draftID id.ID, keyword string) ([]LineItem, error) {
	draft, err := s.repo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return Search(strings.TrimSpace(keyword), draft.LineItems), nil
}

// Submit posts the draft as one stock event, then discards the draft.
// If the upstream call fails the draft is left as it was so the user can retry.
func (s *Service) Submit(ctx context.Context, draftID id.ID) (id.ID, error) {
	ctx = logger.WithFields(ctx, "draft_id", draftID)

	draft, err := s.repo.GetByID(ctx, draftID)
	if err != nil {
		return id.ID{}, err
	}
	if len(draft.LineItems) == 0 {
		return id.ID{}, apperror.NewBusinessRule(apperror.CodeEmptyDraft, "draft has no line items").
			WithDetail("draft_id", draftID)
	}

	eventID, err := s.submitter.Submit(ctx, draft.ProgramID, draft.FacilityID, draft.LineItems)
	if err != nil {
		logger.Warn(ctx, "stock event submission failed", "error", err)
		return id.ID{}, err
	}

	if err := s.repo.Delete(ctx, draftID); err != nil {
		// Event is accepted upstream at this point; only log.
		logger.Error(ctx, "failed to discard submitted draft",
			"event_id", eventID,
			"error", err,
		)
	}

	if s.history != nil {
		event := BuildEvent(draft.ProgramID, draft.FacilityID, draft.LineItems)
		if err := s.history.Record(ctx, NewSubmission(draftID, eventID, event)); err != nil {
			logger.Warn(ctx, "failed to record submission",
				"event_id", eventID,
				"error", err,
			)
		}
	}

	logger.Info(ctx, "stock event submitted",
		"event_id", eventID,
		"line_items", len(draft.LineItems),
	)
	return eventID, nil
}

// Submissions lists the facility's recently submitted events, newest first.
func (s *Service) Submissions(ctx context.Context, facilityID id.ID, limit int) ([]Submission, error) {
	if id.IsNil(facilityID) {
		return nil, apperror.NewValidation("facilityId is required")
	}
	if s.history == nil {
		return []Submission{}, nil
	}
	return s.history.ListByFacility(ctx, facilityID, ClampSubmissionLimit(limit))
}

// DeleteDraft discards a draft without submitting it.
func (s *Service) DeleteDraft(ctx context.Context, draftID id.ID) error {
	if _, err := s.repo.GetByID(ctx, draftID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, draftID)
}

// PurgeAbandoned removes drafts not edited within retention.
func (s *Service) PurgeAbandoned(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, apperror.NewValidation("retention must be positive")
	}

	cutoff := time.Now().UTC().Add(-retention)
	n, err := s.repo.DeleteUpdatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge drafts: %w", err)
	}
	if n > 0 {
		logger.Info(ctx, "abandoned drafts purged", "count", n, "cutoff", cutoff)
	}
	return n, nil
}
