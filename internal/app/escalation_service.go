package app

import (
	"context"

	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/core/escalation"
	"github.com/example/campuscare/internal/ports/primary"
)

// EscalationServiceImpl implements the EscalationService interface.
type EscalationServiceImpl struct {
	complaints *ComplaintServiceImpl
	store      *ComplaintStore
}

// NewEscalationService creates a new EscalationService with injected dependencies.
func NewEscalationService(complaints *ComplaintServiceImpl, store *ComplaintStore) *EscalationServiceImpl {
	return &EscalationServiceImpl{
		complaints: complaints,
		store:      store,
	}
}

// ListEscalations returns the full audit trail of a visible complaint.
func (s *EscalationServiceImpl) ListEscalations(ctx context.Context, session complaint.Session, complaintID string) ([]complaint.EscalationLog, error) {
	if _, err := s.complaints.visible(session, complaintID); err != nil {
		return nil, err
	}
	return s.store.Logs(complaintID), nil
}

// LatestEscalation returns the most recent escalation of a visible complaint.
func (s *EscalationServiceImpl) LatestEscalation(ctx context.Context, session complaint.Session, complaintID string) (*complaint.EscalationLog, error) {
	logs, err := s.ListEscalations(ctx, session, complaintID)
	if err != nil {
		return nil, err
	}
	latest, ok := escalation.Latest(logs)
	if !ok {
		return nil, nil
	}
	return &latest, nil
}

// Ensure EscalationServiceImpl implements the interface
var _ primary.EscalationService = (*EscalationServiceImpl)(nil)
