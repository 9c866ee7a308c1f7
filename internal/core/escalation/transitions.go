package escalation

import (
	"strings"
	"time"

	"github.com/example/campuscare/internal/core/complaint"
)

// MarkInProgress returns a copy of c picked up by the session.
// The remarks land in the actor's remarks field and the actor becomes the
// resolver-role candidate. c itself is never modified.
func MarkInProgress(c complaint.Complaint, s complaint.Session, remarks string, now time.Time) (complaint.Complaint, error) {
	if err := CanMarkInProgress(s, c).Error(); err != nil {
		return c, err
	}

	next := c.Clone()
	next.Status = complaint.StatusInProgress
	setRemarks(&next, s.Role, remarks)
	next.ResolvedByRole = s.Role
	next.UpdatedAt = now
	return next, nil
}

// Resolve returns a copy of c in its terminal state.
// Escalation flags are kept as history.
func Resolve(c complaint.Complaint, s complaint.Session, remarks string, now time.Time) (complaint.Complaint, error) {
	if err := CanResolve(s, c).Error(); err != nil {
		return c, err
	}

	next := c.Clone()
	next.Status = complaint.StatusResolved
	next.ResolvedByRole = s.Role
	setRemarks(&next, s.Role, remarks)
	next.UpdatedAt = now
	return next, nil
}

// EscalateInput carries the values an escalation needs besides the complaint and actor.
type EscalateInput struct {
	Reason string
	LogID  string
	Now    time.Time
}

// Escalate promotes c exactly one tier and returns the promoted copy together
// with the audit log entry describing the promotion.
func Escalate(c complaint.Complaint, s complaint.Session, in EscalateInput) (complaint.Complaint, complaint.EscalationLog, error) {
	if err := CanEscalate(s, c, in.Reason).Error(); err != nil {
		return c, complaint.EscalationLog{}, err
	}
	target, _ := NextTier(s.Role)

	next := c.Clone()
	next.Status = complaint.StatusEscalated
	switch target {
	case complaint.RoleHOD:
		next.EscalatedToHOD = true
	case complaint.RoleAdmin:
		next.EscalatedToAdmin = true
	}
	next.UpdatedAt = in.Now

	log := complaint.EscalationLog{
		ID:          in.LogID,
		ComplaintID: c.ID,
		EscalatedBy: s.Actor(),
		ActorID:     s.ID,
		ActorRole:   s.Role,
		Reason:      strings.TrimSpace(in.Reason),
		Timestamp:   in.Now,
		TargetRole:  target,
	}
	return next, log, nil
}

func setRemarks(c *complaint.Complaint, actor complaint.Role, remarks string) {
	remarks = strings.TrimSpace(remarks)
	if remarks == "" {
		return
	}
	if actor == complaint.RoleAdmin {
		c.AdminRemarks = remarks
		return
	}
	c.StaffRemarks = remarks
}

// Latest returns the most recently created entry among logs, which must be in
// creation order. ok is false when logs is empty.
func Latest(logs []complaint.EscalationLog) (complaint.EscalationLog, bool) {
	if len(logs) == 0 {
		return complaint.EscalationLog{}, false
	}
	return logs[len(logs)-1], true
}
