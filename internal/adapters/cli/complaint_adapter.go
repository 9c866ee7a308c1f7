// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/campuscare/internal/core/classify"
	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/primary"
)

const timeLayout = "2006-01-02 15:04"

// ComplaintAdapter is a thin adapter that translates CLI operations to
// ComplaintService and EscalationService calls.
type ComplaintAdapter struct {
	service     primary.ComplaintService
	escalations primary.EscalationService
	out         io.Writer
}

// NewComplaintAdapter creates a new ComplaintAdapter with the given services.
func NewComplaintAdapter(service primary.ComplaintService, escalations primary.EscalationService, out io.Writer) *ComplaintAdapter {
	return &ComplaintAdapter{
		service:     service,
		escalations: escalations,
		out:         out,
	}
}

// Submit lodges a complaint.
func (a *ComplaintAdapter) Submit(ctx context.Context, session complaint.Session, req primary.SubmitComplaintRequest) error {
	resp, err := a.service.SubmitComplaint(ctx, session, req)
	if err != nil {
		return err
	}

	c := resp.Complaint
	fmt.Fprintf(a.out, "✓ Lodged complaint %s: %s\n", c.ID, c.Title)
	fmt.Fprintf(a.out, "  Routed to: %s (%s)\n", c.Department, c.Category)
	fmt.Fprintf(a.out, "  Priority:  %s\n", priorityLabel(c.Priority))
	if resp.Classification == classify.SourceFallback {
		fmt.Fprintf(a.out, "  %s\n", color.New(color.FgYellow).Sprint("Automatic classification unavailable; keyword rules applied"))
	}
	return nil
}

// List prints the complaints visible to the session.
func (a *ComplaintAdapter) List(ctx context.Context, session complaint.Session, filters primary.ComplaintFilters) error {
	complaints, err := a.service.ListComplaints(ctx, session, filters)
	if err != nil {
		return fmt.Errorf("failed to list complaints: %w", err)
	}

	if len(complaints) == 0 {
		fmt.Fprintln(a.out, "No complaints found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRIORITY\tSTATUS\tDEPARTMENT\tCATEGORY\tTITLE")
	for _, c := range complaints {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Priority, statusText(c), c.Department, c.Category, truncate(c.Title, 40))
	}
	return w.Flush()
}

// Show prints one complaint with its full escalation history.
func (a *ComplaintAdapter) Show(ctx context.Context, session complaint.Session, complaintID string) error {
	c, err := a.service.GetComplaint(ctx, session, complaintID)
	if err != nil {
		return fmt.Errorf("failed to get complaint: %w", err)
	}

	fmt.Fprintf(a.out, "\nComplaint:  %s\n", c.ID)
	fmt.Fprintf(a.out, "Title:      %s\n", c.Title)
	fmt.Fprintf(a.out, "Student:    %s (%s, %s)\n", c.StudentName, c.StudentID, c.StudentDept)
	fmt.Fprintf(a.out, "Category:   %s\n", c.Category)
	fmt.Fprintf(a.out, "Department: %s\n", c.Department)
	fmt.Fprintf(a.out, "Priority:   %s\n", priorityLabel(c.Priority))
	fmt.Fprintf(a.out, "Status:     %s\n", statusLabel(*c))
	if c.Summary != "" {
		fmt.Fprintf(a.out, "Summary:    %s\n", c.Summary)
	}
	fmt.Fprintf(a.out, "Description:\n  %s\n", c.Description)
	if c.StaffRemarks != "" {
		fmt.Fprintf(a.out, "Staff remarks: %s\n", c.StaffRemarks)
	}
	if c.AdminRemarks != "" {
		fmt.Fprintf(a.out, "Admin remarks: %s\n", c.AdminRemarks)
	}
	if c.IsResolved() && c.ResolvedByRole != "" {
		fmt.Fprintf(a.out, "Resolved by: %s\n", c.ResolvedByRole)
	}
	if c.Feedback != nil {
		fmt.Fprintf(a.out, "Feedback:   %s %s\n", strings.Repeat("★", c.Feedback.Rating), c.Feedback.Comment)
	}
	fmt.Fprintf(a.out, "Created:    %s\n", c.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(a.out, "Updated:    %s\n", c.UpdatedAt.Local().Format(timeLayout))

	logs, err := a.escalations.ListEscalations(ctx, session, complaintID)
	if err != nil {
		return fmt.Errorf("failed to get escalation history: %w", err)
	}
	if len(logs) > 0 {
		fmt.Fprintln(a.out, "\nEscalations:")
		for _, l := range logs {
			fmt.Fprintf(a.out, "  %s  %s → %s: %s\n", l.Timestamp.Local().Format(timeLayout), l.EscalatedBy, l.TargetRole, l.Reason)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// Start marks a complaint as in progress.
func (a *ComplaintAdapter) Start(ctx context.Context, session complaint.Session, complaintID, remarks string) error {
	c, err := a.service.MarkInProgress(ctx, session, primary.TransitionRequest{ComplaintID: complaintID, Remarks: remarks})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Complaint %s marked in progress\n", c.ID)
	return nil
}

// Resolve resolves a complaint.
func (a *ComplaintAdapter) Resolve(ctx context.Context, session complaint.Session, complaintID, remarks string) error {
	c, err := a.service.ResolveComplaint(ctx, session, primary.TransitionRequest{ComplaintID: complaintID, Remarks: remarks})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Complaint %s resolved by %s\n", c.ID, c.ResolvedByRole)
	return nil
}

// Escalate promotes a complaint to the next tier.
func (a *ComplaintAdapter) Escalate(ctx context.Context, session complaint.Session, complaintID, reason string) error {
	resp, err := a.service.EscalateComplaint(ctx, session, primary.EscalateComplaintRequest{ComplaintID: complaintID, Reason: reason})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Complaint %s escalated to %s (%s)\n", resp.Complaint.ID, resp.Log.TargetRole, resp.Log.ID)
	return nil
}

// Feedback records the student's rating.
func (a *ComplaintAdapter) Feedback(ctx context.Context, session complaint.Session, complaintID string, rating int, comment string) error {
	c, err := a.service.LeaveFeedback(ctx, session, primary.FeedbackRequest{ComplaintID: complaintID, Rating: rating, Comment: comment})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Thanks for rating complaint %s (%d/5)\n", c.ID, rating)
	return nil
}

func priorityLabel(p complaint.Priority) string {
	switch p {
	case complaint.PriorityHigh:
		return color.New(color.FgRed, color.Bold).Sprint(p)
	case complaint.PriorityMedium:
		return color.New(color.FgYellow).Sprint(p)
	}
	return string(p)
}

func statusLabel(c complaint.Complaint) string {
	if c.IsResolved() {
		return color.New(color.FgGreen).Sprint(c.Status)
	}
	return statusText(c)
}

// statusText is uncolored so tabwriter columns stay aligned.
func statusText(c complaint.Complaint) string {
	switch {
	case c.IsResolved():
		return string(c.Status)
	case c.EscalatedToAdmin:
		return string(c.Status) + " (ADMIN)"
	case c.EscalatedToHOD:
		return string(c.Status) + " (HOD)"
	}
	return string(c.Status)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
