// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"

	"github.com/example/campuscare/internal/core/classify"
	"github.com/example/campuscare/internal/core/complaint"
)

// ComplaintService defines the primary port for complaint operations.
// Every call is made on behalf of a signed-in session.
type ComplaintService interface {
	// SubmitComplaint validates, routes, classifies and stores a new complaint.
	SubmitComplaint(ctx context.Context, session complaint.Session, req SubmitComplaintRequest) (*SubmitComplaintResponse, error)

	// GetComplaint retrieves a complaint the session is allowed to see.
	GetComplaint(ctx context.Context, session complaint.Session, complaintID string) (*complaint.Complaint, error)

	// ListComplaints lists the complaints visible to the session, highest priority first.
	ListComplaints(ctx context.Context, session complaint.Session, filters ComplaintFilters) ([]complaint.Complaint, error)

	// MarkInProgress records that the session picked the complaint up.
	MarkInProgress(ctx context.Context, session complaint.Session, req TransitionRequest) (*complaint.Complaint, error)

	// ResolveComplaint moves the complaint to its terminal state.
	ResolveComplaint(ctx context.Context, session complaint.Session, req TransitionRequest) (*complaint.Complaint, error)

	// EscalateComplaint promotes the complaint one tier and records the audit entry.
	EscalateComplaint(ctx context.Context, session complaint.Session, req EscalateComplaintRequest) (*EscalateComplaintResponse, error)

	// LeaveFeedback lets the submitting student rate a resolved complaint.
	LeaveFeedback(ctx context.Context, session complaint.Session, req FeedbackRequest) (*complaint.Complaint, error)
}

// SubmitComplaintRequest contains parameters for lodging a complaint.
type SubmitComplaintRequest struct {
	StudentID   string
	StudentName string
	StudentDept string
	Category    string // Empty lets the classifier decide
	Title       string
	Description string
}

// SubmitComplaintResponse contains the stored complaint and how it was classified.
type SubmitComplaintResponse struct {
	Complaint      complaint.Complaint
	Classification classify.Source
}

// ComplaintFilters contains filter options for listing complaints.
type ComplaintFilters struct {
	Tab   string // active (default), escalated, resolved
	Queue bool   // Admin only: escalated to Admin and not yet resolved
}

// TransitionRequest contains parameters for start and resolve.
type TransitionRequest struct {
	ComplaintID string
	Remarks     string
}

// EscalateComplaintRequest contains parameters for escalating a complaint.
type EscalateComplaintRequest struct {
	ComplaintID string
	Reason      string
}

// EscalateComplaintResponse contains the promoted complaint and its audit entry.
type EscalateComplaintResponse struct {
	Complaint complaint.Complaint
	Log       complaint.EscalationLog
}

// FeedbackRequest contains a student's rating of a resolved complaint.
type FeedbackRequest struct {
	ComplaintID string
	Rating      int
	Comment     string
}
