package escalation

import (
	"strings"
	"time"

	"github.com/example/campuscare/internal/core/complaint"
)

const (
	MinRating = 1
	MaxRating = 5
)

// CanLeaveFeedback evaluates whether the session can rate the complaint.
// Rule: only the submitting student, only once, only after resolution.
func CanLeaveFeedback(s complaint.Session, c complaint.Complaint, rating int) GuardResult {
	if rating < MinRating || rating > MaxRating {
		return deny(complaint.ErrValidation, "rating must be between %d and %d", MinRating, MaxRating)
	}
	if s.Role != complaint.RoleStudent || c.StudentID != s.ID {
		return deny(ErrNotAuthorized, "only the submitting student can rate complaint %s", c.ID)
	}
	if !c.IsResolved() {
		return deny(ErrInvalidTransition, "complaint %s is not resolved yet", c.ID)
	}
	if c.Feedback != nil {
		return deny(ErrInvalidTransition, "feedback for complaint %s was already submitted", c.ID)
	}
	return allow()
}

// LeaveFeedback returns a copy of c carrying the student's rating.
func LeaveFeedback(c complaint.Complaint, s complaint.Session, rating int, comment string, now time.Time) (complaint.Complaint, error) {
	if err := CanLeaveFeedback(s, c, rating).Error(); err != nil {
		return c, err
	}

	next := c.Clone()
	next.Feedback = &complaint.Feedback{Rating: rating, Comment: strings.TrimSpace(comment)}
	next.UpdatedAt = now
	return next, nil
}
