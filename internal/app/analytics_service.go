package app

import (
	"context"
	"fmt"

	"github.com/example/campuscare/internal/core/analytics"
	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/core/escalation"
	"github.com/example/campuscare/internal/ports/primary"
)

// AnalyticsServiceImpl implements the AnalyticsService interface.
type AnalyticsServiceImpl struct {
	store *ComplaintStore
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(store *ComplaintStore) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{store: store}
}

// GetSummary aggregates every complaint for the top-level office.
func (s *AnalyticsServiceImpl) GetSummary(ctx context.Context, session complaint.Session) (*analytics.Summary, error) {
	if session.Role != complaint.RoleAdmin {
		return nil, fmt.Errorf("%w: analytics are restricted to admin", escalation.ErrNotAuthorized)
	}
	summary := analytics.Summarize(s.store.All())
	return &summary, nil
}

// Ensure AnalyticsServiceImpl implements the interface
var _ primary.AnalyticsService = (*AnalyticsServiceImpl)(nil)
