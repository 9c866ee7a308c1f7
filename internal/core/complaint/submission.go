package complaint

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var studentIDPattern = regexp.MustCompile(`^\d{8}$`)

// Submission is what a student fills in when lodging a grievance.
// Category may be empty, in which case the classifier's category is used.
type Submission struct {
	StudentID   string
	StudentName string
	StudentDept Department
	Category    Category
	Title       string
	Description string
}

// ValidStudentID reports whether id is exactly eight digits.
func ValidStudentID(id string) bool {
	return studentIDPattern.MatchString(id)
}

// ValidateSubmission checks a submission made by the given session.
// No state is touched; every failure wraps ErrValidation.
func ValidateSubmission(s Session, sub Submission) error {
	if s.Role != RoleStudent {
		return fmt.Errorf("%w: only students can lodge complaints (role: %s)", ErrValidation, s.Role)
	}
	if !ValidStudentID(sub.StudentID) {
		return fmt.Errorf("%w: student ID must be exactly 8 digits", ErrValidation)
	}
	if sub.StudentID != s.ID {
		return fmt.Errorf("%w: student ID %s does not match the signed-in account %s", ErrValidation, sub.StudentID, s.ID)
	}
	if strings.TrimSpace(sub.StudentName) == "" || strings.TrimSpace(sub.Title) == "" || strings.TrimSpace(sub.Description) == "" {
		return fmt.Errorf("%w: name, title and description are mandatory", ErrValidation)
	}
	if !sub.StudentDept.IsAcademic() {
		return fmt.Errorf("%w: %q is not a student department", ErrValidation, sub.StudentDept)
	}
	if sub.Category != "" && !sub.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, sub.Category)
	}
	return nil
}

// NewComplaint builds the initial Pending complaint for a validated submission.
// The category must already be resolved (submission or classifier).
func NewComplaint(id string, sub Submission, category Category, priority Priority, summary string, now time.Time) Complaint {
	return Complaint{
		ID:          id,
		StudentID:   sub.StudentID,
		StudentName: strings.TrimSpace(sub.StudentName),
		StudentDept: sub.StudentDept,
		Title:       strings.TrimSpace(sub.Title),
		Description: strings.TrimSpace(sub.Description),
		Category:    category,
		Priority:    priority,
		Status:      InitialStatus(),
		Department:  ResolveDepartment(category, sub.StudentDept),
		Summary:     summary,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
	}
}

// InitialStatus returns the status of a newly lodged complaint.
func InitialStatus() Status {
	return StatusPending
}
