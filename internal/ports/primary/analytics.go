package primary

import (
	"context"

	"github.com/example/campuscare/internal/core/analytics"
	"github.com/example/campuscare/internal/core/complaint"
)

// AnalyticsService defines the primary port for institution-wide statistics.
type AnalyticsService interface {
	// GetSummary aggregates every stored complaint. Admin only.
	GetSummary(ctx context.Context, session complaint.Session) (*analytics.Summary, error)
}
