package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/primary"
)

// AnalyticsAdapter prints institution-wide statistics.
type AnalyticsAdapter struct {
	service primary.AnalyticsService
	out     io.Writer
}

// NewAnalyticsAdapter creates a new AnalyticsAdapter.
func NewAnalyticsAdapter(service primary.AnalyticsService, out io.Writer) *AnalyticsAdapter {
	return &AnalyticsAdapter{service: service, out: out}
}

// Show prints the summary.
func (a *AnalyticsAdapter) Show(ctx context.Context, session complaint.Session) error {
	s, err := a.service.GetSummary(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to get analytics: %w", err)
	}

	fmt.Fprintf(a.out, "Total complaints:   %d\n", s.Total)
	fmt.Fprintf(a.out, "Resolved:           %d (%d%%)\n", s.Resolved, s.ResolutionRate)
	fmt.Fprintf(a.out, "Escalated to admin: %d (%d%%)\n", s.EscalatedToAdmin, s.EscalationRate)
	fmt.Fprintf(a.out, "High priority:      %d\n", s.HighPriority)
	if s.RatedCount > 0 {
		fmt.Fprintf(a.out, "Average rating:     %.1f from %d ratings\n", s.AverageRating, s.RatedCount)
	}

	fmt.Fprintln(a.out, "\nBy category:")
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, c := range complaint.AllCategories {
		fmt.Fprintf(w, "  %s\t%d\n", c, s.ByCategory[c])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(s.ByDepartment) > 0 {
		fmt.Fprintln(a.out, "\nBy department:")
		depts := make([]string, 0, len(s.ByDepartment))
		for d := range s.ByDepartment {
			depts = append(depts, string(d))
		}
		sort.Strings(depts)
		for _, d := range depts {
			fmt.Fprintf(w, "  %s\t%d\n", d, s.ByDepartment[complaint.Department(d)])
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(s.ResolvedByRole) > 0 {
		fmt.Fprintln(a.out, "\nResolved by:")
		for _, r := range []complaint.Role{complaint.RoleStaff, complaint.RoleHOD, complaint.RoleAdmin} {
			if n := s.ResolvedByRole[r]; n > 0 {
				fmt.Fprintf(w, "  %s\t%d\n", r, n)
			}
		}
		return w.Flush()
	}
	return nil
}
