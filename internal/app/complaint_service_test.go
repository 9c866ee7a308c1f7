package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/campuscare/internal/core/classify"
	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/core/escalation"
	"github.com/example/campuscare/internal/ports/primary"
)

func newTestComplaintService(result classify.Result) (*ComplaintServiceImpl, *ComplaintStore) {
	store := NewComplaintStore(context.Background(), newMockKVStore(), nil)
	svc := NewComplaintService(store, fixedClassifier{result: result}, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return svc, store
}

func mediumAcademics() classify.Result {
	return classify.Result{
		Priority: complaint.PriorityMedium,
		Category: complaint.CategoryAcademics,
		Summary:  "Summary.",
		Source:   classify.SourceRemote,
	}
}

func submitAs(t *testing.T, svc *ComplaintServiceImpl, session complaint.Session, category, title string) complaint.Complaint {
	t.Helper()
	resp, err := svc.SubmitComplaint(context.Background(), session, primary.SubmitComplaintRequest{
		StudentID:   session.ID,
		StudentName: session.Name,
		StudentDept: string(session.Department),
		Category:    category,
		Title:       title,
		Description: "details for " + title,
	})
	require.NoError(t, err)
	return resp.Complaint
}

func TestComplaintService_SubmitComplaint(t *testing.T) {
	svc, store := newTestComplaintService(mediumAcademics())

	resp, err := svc.SubmitComplaint(context.Background(), studentSession, primary.SubmitComplaintRequest{
		StudentID:   "20232476",
		StudentName: "VENKATRAM R",
		StudentDept: "cse",
		Category:    "Infrastructure",
		Title:       "Fan not working",
		Description: "Room 204",
	})
	require.NoError(t, err)

	c := resp.Complaint
	assert.Equal(t, complaint.DepartmentMaintenance, c.Department)
	assert.Equal(t, complaint.CategoryInfrastructure, c.Category)
	assert.Equal(t, complaint.StatusPending, c.Status)
	assert.Equal(t, complaint.PriorityMedium, c.Priority)
	assert.Equal(t, 1, c.Version)
	assert.Equal(t, classify.SourceRemote, resp.Classification)
	assert.Equal(t, 1, complaint.ParseComplaintSequence(c.ID))

	_, ok := store.ByID(c.ID)
	assert.True(t, ok, "complaint should be stored")
}

func TestComplaintService_SubmitUsesClassifierCategory(t *testing.T) {
	svc, _ := newTestComplaintService(classify.Result{
		Priority: complaint.PriorityHigh,
		Category: complaint.CategoryRagging,
		Summary:  classify.FallbackSummary,
		Source:   classify.SourceFallback,
	})

	c := submitAs(t, svc, studentSession, "", "Seniors in hostel")

	assert.Equal(t, complaint.CategoryRagging, c.Category)
	assert.Equal(t, complaint.DepartmentAntiRagging, c.Department)
}

func TestComplaintService_SubmitRejected(t *testing.T) {
	tests := []struct {
		name    string
		session complaint.Session
		req     primary.SubmitComplaintRequest
	}{
		{
			name:    "short student id",
			session: studentSession,
			req:     primary.SubmitComplaintRequest{StudentID: "2023", StudentName: "V", StudentDept: "CSE", Title: "t", Description: "d"},
		},
		{
			name:    "staff cannot submit",
			session: staffSession,
			req:     primary.SubmitComplaintRequest{StudentID: "20232476", StudentName: "V", StudentDept: "CSE", Title: "t", Description: "d"},
		},
		{
			name:    "missing title",
			session: studentSession,
			req:     primary.SubmitComplaintRequest{StudentID: "20232476", StudentName: "V", StudentDept: "CSE", Title: "  ", Description: "d"},
		},
		{
			name:    "service department as home",
			session: studentSession,
			req:     primary.SubmitComplaintRequest{StudentID: "20232476", StudentName: "V", StudentDept: "MAINTENANCE", Title: "t", Description: "d"},
		},
		{
			name:    "unknown category",
			session: studentSession,
			req:     primary.SubmitComplaintRequest{StudentID: "20232476", StudentName: "V", StudentDept: "CSE", Category: "Canteen", Title: "t", Description: "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestComplaintService(mediumAcademics())

			_, err := svc.SubmitComplaint(context.Background(), tt.session, tt.req)

			assert.ErrorIs(t, err, complaint.ErrValidation)
			assert.Empty(t, store.All(), "nothing should be stored")
		})
	}
}

func TestComplaintService_EscalationLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestComplaintService(mediumAcademics())
	escalations := NewEscalationService(svc, store)

	c := submitAs(t, svc, studentSession, "Academics", "Lab marks missing")
	require.Equal(t, complaint.DepartmentCSE, c.Department)

	// Staff picks it up from the active tab.
	active, err := svc.ListComplaints(ctx, staffSession, primary.ComplaintFilters{})
	require.NoError(t, err)
	require.Len(t, active, 1)

	// HOD cannot see it before escalation.
	hodActive, err := svc.ListComplaints(ctx, hodSession, primary.ComplaintFilters{})
	require.NoError(t, err)
	assert.Empty(t, hodActive)

	// Staff escalates to HOD.
	resp, err := svc.EscalateComplaint(ctx, staffSession, primary.EscalateComplaintRequest{ComplaintID: c.ID, Reason: "Needs HOD approval"})
	require.NoError(t, err)
	assert.True(t, resp.Complaint.EscalatedToHOD)
	assert.Equal(t, complaint.StatusEscalated, resp.Complaint.Status)
	assert.Equal(t, "STAFF: Sujeetha", resp.Log.EscalatedBy)
	assert.Equal(t, complaint.RoleHOD, resp.Log.TargetRole)

	// Staff can no longer act; HOD now holds it.
	_, err = svc.ResolveComplaint(ctx, staffSession, primary.TransitionRequest{ComplaintID: c.ID})
	assert.ErrorIs(t, err, escalation.ErrNotAuthorized)

	hodActive, err = svc.ListComplaints(ctx, hodSession, primary.ComplaintFilters{Tab: "active"})
	require.NoError(t, err)
	require.Len(t, hodActive, 1)

	// HOD escalates to Admin.
	_, err = svc.EscalateComplaint(ctx, hodSession, primary.EscalateComplaintRequest{ComplaintID: c.ID, Reason: "Policy decision"})
	require.NoError(t, err)

	queue, err := svc.ListComplaints(ctx, adminSession, primary.ComplaintFilters{Queue: true})
	require.NoError(t, err)
	require.Len(t, queue, 1)

	// Admin cannot escalate further.
	_, err = svc.EscalateComplaint(ctx, adminSession, primary.EscalateComplaintRequest{ComplaintID: c.ID, Reason: "up"})
	assert.ErrorIs(t, err, escalation.ErrInvalidTransition)

	// Admin resolves.
	resolved, err := svc.ResolveComplaint(ctx, adminSession, primary.TransitionRequest{ComplaintID: c.ID, Remarks: "Marks corrected"})
	require.NoError(t, err)
	assert.Equal(t, complaint.StatusResolved, resolved.Status)
	assert.Equal(t, complaint.RoleAdmin, resolved.ResolvedByRole)
	assert.Equal(t, "Marks corrected", resolved.AdminRemarks)
	assert.True(t, resolved.EscalatedToHOD, "escalation flags are kept after resolution")
	assert.True(t, resolved.EscalatedToAdmin, "escalation flags are kept after resolution")

	queue, err = svc.ListComplaints(ctx, adminSession, primary.ComplaintFilters{Queue: true})
	require.NoError(t, err)
	assert.Empty(t, queue)

	// A second resolve is rejected and changes nothing.
	_, err = svc.ResolveComplaint(ctx, adminSession, primary.TransitionRequest{ComplaintID: c.ID, Remarks: "again"})
	assert.ErrorIs(t, err, escalation.ErrAlreadyResolved)
	stored, _ := store.ByID(c.ID)
	assert.Equal(t, "Marks corrected", stored.AdminRemarks)

	// The audit trail is complete and ordered.
	logs, err := escalations.ListEscalations(ctx, studentSession, c.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, complaint.RoleHOD, logs[0].TargetRole)
	assert.Equal(t, complaint.RoleAdmin, logs[1].TargetRole)

	latest, err := escalations.LatestEscalation(ctx, studentSession, c.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "HOD: Dr.S.SIVAKUMAR", latest.EscalatedBy)

	// The student rates it once.
	rated, err := svc.LeaveFeedback(ctx, studentSession, primary.FeedbackRequest{ComplaintID: c.ID, Rating: 4, Comment: "Thanks"})
	require.NoError(t, err)
	require.NotNil(t, rated.Feedback)
	assert.Equal(t, 4, rated.Feedback.Rating)

	_, err = svc.LeaveFeedback(ctx, studentSession, primary.FeedbackRequest{ComplaintID: c.ID, Rating: 5})
	assert.ErrorIs(t, err, escalation.ErrInvalidTransition)
}

func TestComplaintService_EscalateBlankReason(t *testing.T) {
	svc, store := newTestComplaintService(mediumAcademics())
	c := submitAs(t, svc, studentSession, "Academics", "Attendance error")

	_, err := svc.EscalateComplaint(context.Background(), staffSession, primary.EscalateComplaintRequest{ComplaintID: c.ID, Reason: "   "})

	assert.ErrorIs(t, err, complaint.ErrValidation)
	assert.Empty(t, store.AllLogs())
	stored, _ := store.ByID(c.ID)
	assert.False(t, stored.EscalatedToHOD)
	assert.Equal(t, 1, stored.Version)
}

func TestComplaintService_MarkInProgress(t *testing.T) {
	svc, _ := newTestComplaintService(mediumAcademics())
	c := submitAs(t, svc, studentSession, "Academics", "Lab manual")

	got, err := svc.MarkInProgress(context.Background(), staffSession, primary.TransitionRequest{ComplaintID: c.ID, Remarks: "Looking into it"})
	require.NoError(t, err)

	assert.Equal(t, complaint.StatusInProgress, got.Status)
	assert.Equal(t, "Looking into it", got.StaffRemarks)
	assert.Equal(t, 2, got.Version)
}

func TestComplaintService_StaffRelatedStartsAtHOD(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestComplaintService(mediumAcademics())
	c := submitAs(t, svc, studentSession, "Staff-Related", "Professor absent")

	staffView, err := svc.ListComplaints(ctx, staffSession, primary.ComplaintFilters{})
	require.NoError(t, err)
	assert.Empty(t, staffView)

	_, err = svc.GetComplaint(ctx, staffSession, c.ID)
	assert.ErrorIs(t, err, escalation.ErrNotAuthorized)

	hodView, err := svc.ListComplaints(ctx, hodSession, primary.ComplaintFilters{})
	require.NoError(t, err)
	require.Len(t, hodView, 1)

	resp, err := svc.EscalateComplaint(ctx, hodSession, primary.EscalateComplaintRequest{ComplaintID: c.ID, Reason: "Disciplinary"})
	require.NoError(t, err)
	assert.True(t, resp.Complaint.EscalatedToAdmin)
	assert.False(t, resp.Complaint.EscalatedToHOD)
}

func TestComplaintService_ListRankedAndScoped(t *testing.T) {
	ctx := context.Background()
	store := NewComplaintStore(ctx, newMockKVStore(), nil)

	results := []classify.Result{
		{Priority: complaint.PriorityMedium, Summary: "a"},
		{Priority: complaint.PriorityHigh, Summary: "b"},
		{Priority: complaint.PriorityLow, Summary: "c"},
	}
	var ids []string
	for _, r := range results {
		svc := NewComplaintService(store, fixedClassifier{result: r}, nil)
		ids = append(ids, submitAs(t, svc, studentSession, "Academics", r.Summary).ID)
	}
	svc := NewComplaintService(store, fixedClassifier{result: mediumAcademics()}, nil)
	submitAs(t, svc, otherStudent, "Academics", "other student")

	mine, err := svc.ListComplaints(ctx, studentSession, primary.ComplaintFilters{})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []string{ids[1], ids[0], ids[2]}, []string{mine[0].ID, mine[1].ID, mine[2].ID})

	all, err := svc.ListComplaints(ctx, adminSession, primary.ComplaintFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = svc.ListComplaints(ctx, staffSession, primary.ComplaintFilters{Queue: true})
	assert.ErrorIs(t, err, escalation.ErrNotAuthorized)

	_, err = svc.ListComplaints(ctx, staffSession, primary.ComplaintFilters{Tab: "archived"})
	assert.ErrorIs(t, err, complaint.ErrValidation)
}

func TestComplaintService_GetComplaint(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestComplaintService(mediumAcademics())
	c := submitAs(t, svc, studentSession, "Academics", "Exam clash")

	got, err := svc.GetComplaint(ctx, studentSession, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = svc.GetComplaint(ctx, otherStudent, c.ID)
	assert.ErrorIs(t, err, escalation.ErrNotAuthorized)

	_, err = svc.GetComplaint(ctx, adminSession, "CMP-999999-missing")
	assert.ErrorIs(t, err, ErrComplaintNotFound)
}
