package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/campuscare/internal/core/classify"
	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/primary"
)

var (
	studentSession = complaint.Session{ID: "20232476", Name: "VENKATRAM R", Role: complaint.RoleStudent, Department: complaint.DepartmentCSE}
	staffSession   = complaint.Session{ID: "4321", Name: "Dr. Anand", Role: complaint.RoleStaff, Department: complaint.DepartmentCSE}
)

// mockComplaintService implements primary.ComplaintService for testing
type mockComplaintService struct {
	submitFn   func(ctx context.Context, s complaint.Session, req primary.SubmitComplaintRequest) (*primary.SubmitComplaintResponse, error)
	getFn      func(ctx context.Context, s complaint.Session, id string) (*complaint.Complaint, error)
	listFn     func(ctx context.Context, s complaint.Session, filters primary.ComplaintFilters) ([]complaint.Complaint, error)
	escalateFn func(ctx context.Context, s complaint.Session, req primary.EscalateComplaintRequest) (*primary.EscalateComplaintResponse, error)
	resolveFn  func(ctx context.Context, s complaint.Session, req primary.TransitionRequest) (*complaint.Complaint, error)

	// Track calls for verification
	lastSubmitReq     primary.SubmitComplaintRequest
	lastFilters       primary.ComplaintFilters
	lastTransitionReq primary.TransitionRequest
	lastFeedbackReq   primary.FeedbackRequest
}

func (m *mockComplaintService) SubmitComplaint(ctx context.Context, s complaint.Session, req primary.SubmitComplaintRequest) (*primary.SubmitComplaintResponse, error) {
	m.lastSubmitReq = req
	if m.submitFn != nil {
		return m.submitFn(ctx, s, req)
	}
	return &primary.SubmitComplaintResponse{
		Complaint: complaint.Complaint{
			ID:         "CMP-000001-ab12cd34",
			Title:      req.Title,
			Category:   complaint.CategoryInfrastructure,
			Department: complaint.DepartmentMaintenance,
			Priority:   complaint.PriorityHigh,
		},
		Classification: classify.SourceRemote,
	}, nil
}

func (m *mockComplaintService) GetComplaint(ctx context.Context, s complaint.Session, id string) (*complaint.Complaint, error) {
	if m.getFn != nil {
		return m.getFn(ctx, s, id)
	}
	return &complaint.Complaint{ID: id, Title: "Fan not working", Description: "Room 204", Status: complaint.StatusPending}, nil
}

func (m *mockComplaintService) ListComplaints(ctx context.Context, s complaint.Session, filters primary.ComplaintFilters) ([]complaint.Complaint, error) {
	m.lastFilters = filters
	if m.listFn != nil {
		return m.listFn(ctx, s, filters)
	}
	return nil, nil
}

func (m *mockComplaintService) MarkInProgress(ctx context.Context, s complaint.Session, req primary.TransitionRequest) (*complaint.Complaint, error) {
	m.lastTransitionReq = req
	return &complaint.Complaint{ID: req.ComplaintID, Status: complaint.StatusInProgress}, nil
}

func (m *mockComplaintService) ResolveComplaint(ctx context.Context, s complaint.Session, req primary.TransitionRequest) (*complaint.Complaint, error) {
	m.lastTransitionReq = req
	if m.resolveFn != nil {
		return m.resolveFn(ctx, s, req)
	}
	return &complaint.Complaint{ID: req.ComplaintID, Status: complaint.StatusResolved, ResolvedByRole: s.Role}, nil
}

func (m *mockComplaintService) EscalateComplaint(ctx context.Context, s complaint.Session, req primary.EscalateComplaintRequest) (*primary.EscalateComplaintResponse, error) {
	if m.escalateFn != nil {
		return m.escalateFn(ctx, s, req)
	}
	return &primary.EscalateComplaintResponse{
		Complaint: complaint.Complaint{ID: req.ComplaintID, Status: complaint.StatusEscalated, EscalatedToHOD: true},
		Log:       complaint.EscalationLog{ID: "LOG-000001-ab12cd34", ComplaintID: req.ComplaintID, TargetRole: complaint.RoleHOD, Reason: req.Reason},
	}, nil
}

func (m *mockComplaintService) LeaveFeedback(ctx context.Context, s complaint.Session, req primary.FeedbackRequest) (*complaint.Complaint, error) {
	m.lastFeedbackReq = req
	return &complaint.Complaint{ID: req.ComplaintID, Feedback: &complaint.Feedback{Rating: req.Rating, Comment: req.Comment}}, nil
}

// mockEscalationService implements primary.EscalationService for testing
type mockEscalationService struct {
	logs []complaint.EscalationLog
	err  error
}

func (m *mockEscalationService) ListEscalations(ctx context.Context, s complaint.Session, id string) ([]complaint.EscalationLog, error) {
	return m.logs, m.err
}

func (m *mockEscalationService) LatestEscalation(ctx context.Context, s complaint.Session, id string) (*complaint.EscalationLog, error) {
	if len(m.logs) == 0 {
		return nil, m.err
	}
	return &m.logs[len(m.logs)-1], m.err
}

func newTestComplaintAdapter() (*ComplaintAdapter, *mockComplaintService, *mockEscalationService, *bytes.Buffer) {
	svc := &mockComplaintService{}
	esc := &mockEscalationService{}
	var buf bytes.Buffer
	return NewComplaintAdapter(svc, esc, &buf), svc, esc, &buf
}

func TestComplaintAdapter_Submit_Success(t *testing.T) {
	adapter, mock, _, buf := newTestComplaintAdapter()

	err := adapter.Submit(context.Background(), studentSession, primary.SubmitComplaintRequest{
		Title:       "Fan not working",
		Description: "Room 204",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastSubmitReq.Title != "Fan not working" {
		t.Errorf("expected title 'Fan not working', got '%s'", mock.lastSubmitReq.Title)
	}
	output := buf.String()
	if !strings.Contains(output, "Lodged complaint CMP-000001-ab12cd34") {
		t.Errorf("expected output to contain complaint ID, got '%s'", output)
	}
	if !strings.Contains(output, "MAINTENANCE") {
		t.Errorf("expected output to contain routed department, got '%s'", output)
	}
	if strings.Contains(output, "classification unavailable") {
		t.Errorf("unexpected fallback notice, got '%s'", output)
	}
}

func TestComplaintAdapter_Submit_FallbackNotice(t *testing.T) {
	adapter, mock, _, buf := newTestComplaintAdapter()
	mock.submitFn = func(ctx context.Context, s complaint.Session, req primary.SubmitComplaintRequest) (*primary.SubmitComplaintResponse, error) {
		return &primary.SubmitComplaintResponse{
			Complaint:      complaint.Complaint{ID: "CMP-000002-ab12cd34", Priority: complaint.PriorityMedium},
			Classification: classify.SourceFallback,
		}, nil
	}

	if err := adapter.Submit(context.Background(), studentSession, primary.SubmitComplaintRequest{Title: "x", Description: "y"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "classification unavailable") {
		t.Errorf("expected fallback notice, got '%s'", buf.String())
	}
}

func TestComplaintAdapter_Submit_ServiceError(t *testing.T) {
	adapter, mock, _, buf := newTestComplaintAdapter()
	mock.submitFn = func(ctx context.Context, s complaint.Session, req primary.SubmitComplaintRequest) (*primary.SubmitComplaintResponse, error) {
		return nil, errors.New("only students can lodge complaints")
	}

	err := adapter.Submit(context.Background(), staffSession, primary.SubmitComplaintRequest{Title: "x"})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on error, got '%s'", buf.String())
	}
}

func TestComplaintAdapter_List_WithResults(t *testing.T) {
	adapter, mock, _, buf := newTestComplaintAdapter()
	mock.listFn = func(ctx context.Context, s complaint.Session, filters primary.ComplaintFilters) ([]complaint.Complaint, error) {
		return []complaint.Complaint{
			{ID: "CMP-000002-b", Priority: complaint.PriorityHigh, Status: complaint.StatusEscalated, EscalatedToHOD: true, Title: "Projector"},
			{ID: "CMP-000001-a", Priority: complaint.PriorityLow, Status: complaint.StatusPending, Title: "Syllabus"},
		}, nil
	}

	err := adapter.List(context.Background(), staffSession, primary.ComplaintFilters{Tab: "escalated"})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastFilters.Tab != "escalated" {
		t.Errorf("expected tab filter 'escalated', got '%s'", mock.lastFilters.Tab)
	}
	output := buf.String()
	for _, want := range []string{"ID", "PRIORITY", "CMP-000002-b", "CMP-000001-a", "ESCALATED (HOD)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
	if strings.Index(output, "CMP-000002-b") > strings.Index(output, "CMP-000001-a") {
		t.Error("expected rows in service order")
	}
}

func TestComplaintAdapter_List_Empty(t *testing.T) {
	adapter, _, _, buf := newTestComplaintAdapter()

	if err := adapter.List(context.Background(), studentSession, primary.ComplaintFilters{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "No complaints found") {
		t.Errorf("expected 'No complaints found', got '%s'", buf.String())
	}
}

func TestComplaintAdapter_Show_WithHistory(t *testing.T) {
	adapter, _, esc, buf := newTestComplaintAdapter()
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	esc.logs = []complaint.EscalationLog{
		{ID: "LOG-000001-a", EscalatedBy: "VENKATRAM R", TargetRole: complaint.RoleHOD, Reason: "No response in a week", Timestamp: ts},
		{ID: "LOG-000002-b", EscalatedBy: "Dr. Priya", TargetRole: complaint.RoleAdmin, Reason: "Needs budget", Timestamp: ts.Add(time.Hour)},
	}

	err := adapter.Show(context.Background(), studentSession, "CMP-000001-a")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output := buf.String()
	for _, want := range []string{"CMP-000001-a", "Fan not working", "Room 204", "Escalations:", "No response in a week", "Needs budget"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
	if strings.Index(output, "No response in a week") > strings.Index(output, "Needs budget") {
		t.Error("expected escalation history oldest first")
	}
}

func TestComplaintAdapter_Show_NotFound(t *testing.T) {
	adapter, mock, _, _ := newTestComplaintAdapter()
	mock.getFn = func(ctx context.Context, s complaint.Session, id string) (*complaint.Complaint, error) {
		return nil, errors.New("complaint not found")
	}

	err := adapter.Show(context.Background(), studentSession, "CMP-999999-x")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to get complaint") {
		t.Errorf("expected wrapped error, got '%s'", err.Error())
	}
}

func TestComplaintAdapter_Transitions(t *testing.T) {
	adapter, mock, _, buf := newTestComplaintAdapter()
	ctx := context.Background()

	if err := adapter.Start(ctx, staffSession, "CMP-000001-a", "Looking into it"); err != nil {
		t.Fatalf("Start: unexpected error: %v", err)
	}
	if mock.lastTransitionReq.Remarks != "Looking into it" {
		t.Errorf("expected remarks forwarded, got '%s'", mock.lastTransitionReq.Remarks)
	}
	if err := adapter.Resolve(ctx, staffSession, "CMP-000001-a", "Fixed"); err != nil {
		t.Fatalf("Resolve: unexpected error: %v", err)
	}
	if err := adapter.Escalate(ctx, studentSession, "CMP-000001-a", "Still broken"); err != nil {
		t.Fatalf("Escalate: unexpected error: %v", err)
	}
	if err := adapter.Feedback(ctx, studentSession, "CMP-000001-a", 4, "Quick"); err != nil {
		t.Fatalf("Feedback: unexpected error: %v", err)
	}
	if mock.lastFeedbackReq.Rating != 4 {
		t.Errorf("expected rating 4, got %d", mock.lastFeedbackReq.Rating)
	}

	output := buf.String()
	for _, want := range []string{"marked in progress", "resolved by STAFF", "escalated to HOD (LOG-000001-ab12cd34)", "(4/5)"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}

func TestComplaintAdapter_Resolve_ServiceError(t *testing.T) {
	adapter, mock, _, buf := newTestComplaintAdapter()
	mock.resolveFn = func(ctx context.Context, s complaint.Session, req primary.TransitionRequest) (*complaint.Complaint, error) {
		return nil, errors.New("already resolved")
	}

	if err := adapter.Resolve(context.Background(), staffSession, "CMP-000001-a", ""); err == nil {
		t.Fatal("expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on error, got '%s'", buf.String())
	}
}
