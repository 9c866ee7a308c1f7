// Package complaint contains the pure business logic for grievance complaints.
// This is part of the Functional Core - no I/O, only pure functions.
package complaint

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation is wrapped by every input validation failure.
var ErrValidation = errors.New("validation failed")

// Role identifies the tier a session acts at.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
	RoleHOD     Role = "HOD"
	RoleAdmin   Role = "ADMIN"
)

// AllRoles lists every role in tier order.
var AllRoles = []Role{RoleStudent, RoleStaff, RoleHOD, RoleAdmin}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Category is the closed set of complaint categories.
type Category string

const (
	CategoryInfrastructure Category = "INFRASTRUCTURE"
	CategoryAcademics      Category = "ACADEMICS"
	CategoryRagging        Category = "RAGGING"
	CategoryStaffRelated   Category = "STAFF_RELATED"
	CategoryOthers         Category = "OTHERS"
)

// AllCategories lists every category. Extending it requires extending the routing table.
var AllCategories = []Category{
	CategoryInfrastructure,
	CategoryAcademics,
	CategoryRagging,
	CategoryStaffRelated,
	CategoryOthers,
}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Priority is the urgency level of a complaint.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// AllPriorities lists every priority from highest to lowest.
var AllPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Weight returns the ranking weight: HIGH=3, MEDIUM=2, LOW=1, unknown=0.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p.Weight() > 0
}

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusEscalated  Status = "ESCALATED"
)

// AllStatuses lists every status.
var AllStatuses = []Status{StatusPending, StatusInProgress, StatusResolved, StatusEscalated}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Department is either a service department or an academic department.
type Department string

const (
	DepartmentMaintenance    Department = "MAINTENANCE"
	DepartmentAntiRagging    Department = "ANTI_RAGGING"
	DepartmentAdministration Department = "ADMINISTRATION"
	DepartmentCSE            Department = "CSE"
	DepartmentECE            Department = "ECE"
	DepartmentEEE            Department = "EEE"
	DepartmentMECH           Department = "MECH"
	DepartmentCIVIL          Department = "CIVIL"
	DepartmentAIDS           Department = "AIDS"
	DepartmentCSBS           Department = "CSBS"
	DepartmentIT             Department = "IT"
)

// AcademicDepartments are the departments a student can belong to.
var AcademicDepartments = []Department{
	DepartmentCSE,
	DepartmentECE,
	DepartmentEEE,
	DepartmentMECH,
	DepartmentCIVIL,
	DepartmentAIDS,
	DepartmentCSBS,
	DepartmentIT,
}

// AllDepartments lists service departments followed by academic ones.
var AllDepartments = append([]Department{
	DepartmentMaintenance,
	DepartmentAntiRagging,
	DepartmentAdministration,
}, AcademicDepartments...)

// IsValid reports whether d is a known department.
func (d Department) IsValid() bool {
	for _, known := range AllDepartments {
		if d == known {
			return true
		}
	}
	return false
}

// IsAcademic reports whether d can be a student's home department.
func (d Department) IsAcademic() bool {
	for _, known := range AcademicDepartments {
		if d == known {
			return true
		}
	}
	return false
}

// Feedback is the student's rating of a resolved complaint.
type Feedback struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Complaint is a single grievance and its escalation state.
type Complaint struct {
	ID               string     `json:"id"`
	StudentID        string     `json:"studentId"`
	StudentName      string     `json:"studentName"`
	StudentDept      Department `json:"studentDept"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Category         Category   `json:"category"`
	Priority         Priority   `json:"priority"`
	Status           Status     `json:"status"`
	Department       Department `json:"department"`
	Summary          string     `json:"summary,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	EscalatedToAdmin bool       `json:"escalatedToAdmin"`
	EscalatedToHOD   bool       `json:"escalatedToHOD"`
	ResolvedByRole   Role       `json:"resolvedByRole,omitempty"`
	Feedback         *Feedback  `json:"feedback,omitempty"`
	AdminRemarks     string     `json:"adminRemarks,omitempty"`
	StaffRemarks     string     `json:"staffRemarks,omitempty"`
	Version          int        `json:"version"`
}

// IsResolved reports whether the complaint reached its terminal state.
func (c Complaint) IsResolved() bool {
	return c.Status == StatusResolved
}

// IsEscalated reports whether either escalation flag is set.
func (c Complaint) IsEscalated() bool {
	return c.EscalatedToHOD || c.EscalatedToAdmin
}

// Clone returns a deep copy so callers can mutate it freely.
func (c Complaint) Clone() Complaint {
	out := c
	if c.Feedback != nil {
		fb := *c.Feedback
		out.Feedback = &fb
	}
	return out
}

// EscalationLog is the immutable audit record of one tier promotion.
type EscalationLog struct {
	ID          string    `json:"id"`
	ComplaintID string    `json:"complaintId"`
	EscalatedBy string    `json:"escalatedBy"`
	ActorID     string    `json:"actorId"`
	ActorRole   Role      `json:"actorRole"`
	Reason      string    `json:"reason"`
	Timestamp   time.Time `json:"timestamp"`
	TargetRole  Role      `json:"targetRole"`
}

// Session is the authenticated identity acting on complaints.
// Department is empty for Admin.
type Session struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Role       Role       `json:"role"`
	Department Department `json:"department,omitempty"`
}

// Actor formats the session the way escalation logs record it ("HOD: Dr. Rao").
func (s Session) Actor() string {
	return fmt.Sprintf("%s: %s", s.Role, s.Name)
}

func normalizeEnum(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

// ParseRole parses a role name such as "hod" or "Staff".
func ParseRole(raw string) (Role, error) {
	r := Role(normalizeEnum(raw))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, raw)
	}
	return r, nil
}

// ParseCategory parses a category name such as "staff-related".
func ParseCategory(raw string) (Category, error) {
	c := Category(normalizeEnum(raw))
	if c == "OTHER" {
		c = CategoryOthers
	}
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown category %q", ErrValidation, raw)
	}
	return c, nil
}

// ParsePriority parses a priority name.
func ParsePriority(raw string) (Priority, error) {
	p := Priority(normalizeEnum(raw))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: unknown priority %q", ErrValidation, raw)
	}
	return p, nil
}

// ParseStatus parses a status name such as "in progress".
func ParseStatus(raw string) (Status, error) {
	s := Status(normalizeEnum(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, raw)
	}
	return s, nil
}

// ParseDepartment parses a department name such as "anti-ragging".
func ParseDepartment(raw string) (Department, error) {
	d := Department(normalizeEnum(raw))
	if !d.IsValid() {
		return "", fmt.Errorf("%w: unknown department %q", ErrValidation, raw)
	}
	return d, nil
}
