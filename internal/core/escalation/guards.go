// Package escalation contains the pure state machine that moves complaints
// through Staff -> HOD -> Admin and produces the audit trail.
// This is part of the Functional Core - no I/O, only pure functions.
package escalation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/campuscare/internal/core/complaint"
)

var (
	// ErrInvalidTransition is wrapped when the complaint's state forbids the operation.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrNotAuthorized is wrapped when the session has no authority over the complaint.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrAlreadyResolved is returned for any mutation of a Resolved complaint.
	ErrAlreadyResolved = fmt.Errorf("%w: complaint is already resolved", ErrInvalidTransition)
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
	Kind    error  // Sentinel the reason is wrapped with
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	switch {
	case r.Kind == nil:
		return errors.New(r.Reason)
	case r.Reason == "":
		return r.Kind
	}
	return fmt.Errorf("%w: %s", r.Kind, r.Reason)
}

func allow() GuardResult {
	return GuardResult{Allowed: true}
}

func deny(kind error, format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// HoldingTier returns the tier currently responsible for a complaint.
// Staff-Related complaints start at HOD; escalation flags move ownership up.
func HoldingTier(c complaint.Complaint) complaint.Role {
	switch {
	case c.EscalatedToAdmin:
		return complaint.RoleAdmin
	case c.EscalatedToHOD, c.Category == complaint.CategoryStaffRelated:
		return complaint.RoleHOD
	default:
		return complaint.RoleStaff
	}
}

// NextTier returns the role an escalation by the given role hands the case to.
// Admin is the terminal authority and has no next tier.
func NextTier(r complaint.Role) (complaint.Role, bool) {
	switch r {
	case complaint.RoleStaff:
		return complaint.RoleHOD, true
	case complaint.RoleHOD:
		return complaint.RoleAdmin, true
	}
	return "", false
}

// CanAct evaluates whether a session has authority to act on a complaint.
// Rule: Admin acts on everything. Staff and HOD act only within their own
// department and only while the complaint is held at their tier.
func CanAct(s complaint.Session, c complaint.Complaint) GuardResult {
	switch s.Role {
	case complaint.RoleAdmin:
		return allow()
	case complaint.RoleStaff, complaint.RoleHOD:
	default:
		return deny(ErrNotAuthorized, "%s sessions cannot act on complaints", s.Role)
	}

	if c.Department != s.Department {
		return deny(ErrNotAuthorized, "complaint %s belongs to %s, not %s", c.ID, c.Department, s.Department)
	}
	if tier := HoldingTier(c); tier != s.Role {
		return deny(ErrNotAuthorized, "complaint %s is held by %s, not %s", c.ID, tier, s.Role)
	}
	return allow()
}

// CanMarkInProgress evaluates whether a complaint can be picked up.
func CanMarkInProgress(s complaint.Session, c complaint.Complaint) GuardResult {
	if c.IsResolved() {
		return deny(ErrAlreadyResolved, "")
	}
	return CanAct(s, c)
}

// CanResolve evaluates whether a complaint can be resolved.
// Rule: Resolved is terminal; a second resolve is rejected without change.
func CanResolve(s complaint.Session, c complaint.Complaint) GuardResult {
	if c.IsResolved() {
		return deny(ErrAlreadyResolved, "")
	}
	return CanAct(s, c)
}

// CanEscalate evaluates whether the session can promote the complaint one tier.
// Rule: a non-empty reason is required; Admin cannot escalate further.
func CanEscalate(s complaint.Session, c complaint.Complaint, reason string) GuardResult {
	if strings.TrimSpace(reason) == "" {
		return deny(complaint.ErrValidation, "escalation reason is required")
	}
	if c.IsResolved() {
		return deny(ErrAlreadyResolved, "")
	}
	if s.Role == complaint.RoleAdmin {
		return deny(ErrInvalidTransition, "admin is the final escalation tier for complaint %s", c.ID)
	}
	if _, ok := NextTier(s.Role); !ok {
		return deny(ErrNotAuthorized, "%s sessions cannot escalate complaints", s.Role)
	}
	return CanAct(s, c)
}
