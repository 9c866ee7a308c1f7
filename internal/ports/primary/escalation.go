package primary

import (
	"context"

	"github.com/example/campuscare/internal/core/complaint"
)

// EscalationService defines the primary port for reading the escalation audit trail.
type EscalationService interface {
	// ListEscalations returns every escalation of a complaint, oldest first.
	ListEscalations(ctx context.Context, session complaint.Session, complaintID string) ([]complaint.EscalationLog, error)

	// LatestEscalation returns the most recent escalation of a complaint, or nil if it was never escalated.
	LatestEscalation(ctx context.Context, session complaint.Session, complaintID string) (*complaint.EscalationLog, error)
}
