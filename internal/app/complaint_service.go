package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/campuscare/internal/core/classify"
	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/core/escalation"
	"github.com/example/campuscare/internal/ports/primary"
)

// Classifier is what the complaint service needs from classification.
type Classifier interface {
	Classify(ctx context.Context, title, description string) classify.Result
}

// ComplaintServiceImpl implements the ComplaintService interface.
type ComplaintServiceImpl struct {
	store      *ComplaintStore
	classifier Classifier
	logger     *zap.Logger
	now        func() time.Time
}

// NewComplaintService creates a new ComplaintService with injected dependencies.
func NewComplaintService(store *ComplaintStore, classifier Classifier, logger *zap.Logger) *ComplaintServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintServiceImpl{
		store:      store,
		classifier: classifier,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SubmitComplaint lodges a new complaint for the signed-in student.
func (s *ComplaintServiceImpl) SubmitComplaint(ctx context.Context, session complaint.Session, req primary.SubmitComplaintRequest) (*primary.SubmitComplaintResponse, error) {
	// 1. Parse and validate before anything is touched
	dept, err := complaint.ParseDepartment(req.StudentDept)
	if err != nil {
		return nil, err
	}
	var category complaint.Category
	if req.Category != "" {
		if category, err = complaint.ParseCategory(req.Category); err != nil {
			return nil, err
		}
	}
	sub := complaint.Submission{
		StudentID:   req.StudentID,
		StudentName: req.StudentName,
		StudentDept: dept,
		Category:    category,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := complaint.ValidateSubmission(session, sub); err != nil {
		return nil, err
	}

	// 2. Classify (bounded, never fails)
	result := s.classifier.Classify(ctx, sub.Title, sub.Description)
	if category == "" {
		category = result.Category
	}
	if category == "" {
		category = complaint.CategoryAcademics
	}

	// 3. Build and store
	c := complaint.NewComplaint(s.store.NextComplaintID(), sub, category, result.Priority, result.Summary, s.now())
	if err := s.store.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}

	s.logger.Info("complaint lodged",
		zap.String("complaint_id", c.ID),
		zap.String("department", string(c.Department)),
		zap.String("priority", string(c.Priority)),
		zap.String("classification", string(result.Source)))

	return &primary.SubmitComplaintResponse{
		Complaint:      c,
		Classification: result.Source,
	}, nil
}

// GetComplaint retrieves a complaint visible to the session.
func (s *ComplaintServiceImpl) GetComplaint(ctx context.Context, session complaint.Session, complaintID string) (*complaint.Complaint, error) {
	c, err := s.visible(session, complaintID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListComplaints lists visible complaints ranked by priority.
func (s *ComplaintServiceImpl) ListComplaints(ctx context.Context, session complaint.Session, filters primary.ComplaintFilters) ([]complaint.Complaint, error) {
	all := s.store.All()

	if filters.Queue {
		if session.Role != complaint.RoleAdmin {
			return nil, fmt.Errorf("%w: only admin has an escalation queue", escalation.ErrNotAuthorized)
		}
		return complaint.SortByPriority(complaint.EscalationQueue(all)), nil
	}

	tab, err := complaint.ParseTab(filters.Tab)
	if err != nil {
		return nil, err
	}
	return complaint.SortByPriority(complaint.VisibleTo(session, all, tab)), nil
}

// MarkInProgress records that the session is working on the complaint.
func (s *ComplaintServiceImpl) MarkInProgress(ctx context.Context, session complaint.Session, req primary.TransitionRequest) (*complaint.Complaint, error) {
	c, err := s.load(req.ComplaintID)
	if err != nil {
		return nil, err
	}
	next, err := escalation.MarkInProgress(c, session, req.Remarks, s.now())
	if err != nil {
		return nil, err
	}
	return s.update(ctx, next, "complaint in progress", session)
}

// ResolveComplaint resolves the complaint on behalf of the session.
func (s *ComplaintServiceImpl) ResolveComplaint(ctx context.Context, session complaint.Session, req primary.TransitionRequest) (*complaint.Complaint, error) {
	c, err := s.load(req.ComplaintID)
	if err != nil {
		return nil, err
	}
	next, err := escalation.Resolve(c, session, req.Remarks, s.now())
	if err != nil {
		return nil, err
	}
	return s.update(ctx, next, "complaint resolved", session)
}

// EscalateComplaint promotes the complaint to the next tier.
func (s *ComplaintServiceImpl) EscalateComplaint(ctx context.Context, session complaint.Session, req primary.EscalateComplaintRequest) (*primary.EscalateComplaintResponse, error) {
	c, err := s.load(req.ComplaintID)
	if err != nil {
		return nil, err
	}

	// Guard first so a rejected escalation does not consume a log sequence
	if err := escalation.CanEscalate(session, c, req.Reason).Error(); err != nil {
		return nil, err
	}
	next, log, err := escalation.Escalate(c, session, escalation.EscalateInput{
		Reason: req.Reason,
		LogID:  s.store.NextLogID(),
		Now:    s.now(),
	})
	if err != nil {
		return nil, err
	}

	stored, err := s.store.Escalate(ctx, next, log)
	if err != nil {
		return nil, fmt.Errorf("failed to escalate complaint: %w", err)
	}
	s.logger.Info("complaint escalated",
		zap.String("complaint_id", stored.ID),
		zap.String("escalated_by", log.EscalatedBy),
		zap.String("target_role", string(log.TargetRole)))

	return &primary.EscalateComplaintResponse{Complaint: stored, Log: log}, nil
}

// LeaveFeedback stores the student's rating of a resolved complaint.
func (s *ComplaintServiceImpl) LeaveFeedback(ctx context.Context, session complaint.Session, req primary.FeedbackRequest) (*complaint.Complaint, error) {
	c, err := s.load(req.ComplaintID)
	if err != nil {
		return nil, err
	}
	next, err := escalation.LeaveFeedback(c, session, req.Rating, req.Comment, s.now())
	if err != nil {
		return nil, err
	}
	return s.update(ctx, next, "feedback recorded", session)
}

// Helper methods

func (s *ComplaintServiceImpl) load(complaintID string) (complaint.Complaint, error) {
	c, ok := s.store.ByID(complaintID)
	if !ok {
		return complaint.Complaint{}, fmt.Errorf("%w: %s", ErrComplaintNotFound, complaintID)
	}
	return c, nil
}

func (s *ComplaintServiceImpl) visible(session complaint.Session, complaintID string) (complaint.Complaint, error) {
	c, err := s.load(complaintID)
	if err != nil {
		return complaint.Complaint{}, err
	}
	if !complaint.CanView(session, c) {
		return complaint.Complaint{}, fmt.Errorf("%w: complaint %s is not visible to %s", escalation.ErrNotAuthorized, complaintID, session.Actor())
	}
	return c, nil
}

func (s *ComplaintServiceImpl) update(ctx context.Context, next complaint.Complaint, msg string, session complaint.Session) (*complaint.Complaint, error) {
	stored, err := s.store.Update(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	s.logger.Info(msg,
		zap.String("complaint_id", stored.ID),
		zap.String("actor", session.Actor()),
		zap.String("status", string(stored.Status)))
	return &stored, nil
}

// Ensure ComplaintServiceImpl implements the interface
var _ primary.ComplaintService = (*ComplaintServiceImpl)(nil)
