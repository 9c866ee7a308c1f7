package complaint

import (
	"fmt"
	"strings"
)

// Tab selects which queue a Staff or HOD session is looking at.
type Tab string

const (
	TabActive    Tab = "active"
	TabEscalated Tab = "escalated"
	TabResolved  Tab = "resolved"
)

// AllTabs lists the tabs in display order.
var AllTabs = []Tab{TabActive, TabEscalated, TabResolved}

// ParseTab parses a tab name. Empty input selects the active tab.
func ParseTab(raw string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(raw))); t {
	case "", "pending":
		return TabActive, nil
	case TabActive, TabEscalated, TabResolved:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown tab %q (want active|escalated|resolved)", ErrValidation, raw)
	}
}

// VisibleTo returns, in input order, the complaints the session may see on the given tab.
// Students and Admin ignore the tab. The result is recomputed on every call.
func VisibleTo(s Session, complaints []Complaint, tab Tab) []Complaint {
	if tab == "" {
		tab = TabActive
	}
	out := make([]Complaint, 0, len(complaints))
	for _, c := range complaints {
		if IsVisible(s, c, tab) {
			out = append(out, c)
		}
	}
	return out
}

// IsVisible reports whether one complaint appears for the session on the given tab.
func IsVisible(s Session, c Complaint, tab Tab) bool {
	switch s.Role {
	case RoleStudent:
		return c.StudentID == s.ID
	case RoleAdmin:
		return true
	case RoleStaff:
		return c.Department == s.Department && staffSees(c, tab)
	case RoleHOD:
		return c.Department == s.Department && hodSees(c, tab)
	}
	return false
}

// CanView reports whether the complaint appears for the session on any tab.
func CanView(s Session, c Complaint) bool {
	for _, tab := range AllTabs {
		if IsVisible(s, c, tab) {
			return true
		}
	}
	return false
}

// Staff never see personnel complaints about colleagues.
func staffSees(c Complaint, tab Tab) bool {
	if c.Category == CategoryStaffRelated {
		return false
	}
	switch tab {
	case TabActive:
		return !c.IsResolved() && !c.EscalatedToHOD && !c.EscalatedToAdmin
	case TabEscalated:
		return c.EscalatedToHOD || c.EscalatedToAdmin
	case TabResolved:
		return c.IsResolved() && c.ResolvedByRole == RoleStaff
	}
	return false
}

// HOD is the first tier for Staff-Related complaints; everything else must be escalated first.
func hodSees(c Complaint, tab Tab) bool {
	if c.Category != CategoryStaffRelated && !c.EscalatedToHOD {
		return false
	}
	switch tab {
	case TabActive:
		return !c.IsResolved() && !c.EscalatedToAdmin
	case TabEscalated:
		return c.EscalatedToAdmin
	case TabResolved:
		return c.IsResolved() && c.ResolvedByRole == RoleHOD
	}
	return false
}

// EscalationQueue returns the unresolved complaints escalated to Admin.
func EscalationQueue(complaints []Complaint) []Complaint {
	out := make([]Complaint, 0)
	for _, c := range complaints {
		if c.EscalatedToAdmin && !c.IsResolved() {
			out = append(out, c)
		}
	}
	return out
}
