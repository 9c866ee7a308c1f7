// Package analytics computes the aggregate figures shown to the top-level office.
// This is part of the Functional Core - no I/O, only pure functions.
package analytics

import (
	"math"

	"github.com/example/campuscare/internal/core/complaint"
)

// Summary holds institution-wide complaint statistics.
type Summary struct {
	Total            int
	Resolved         int
	EscalatedToAdmin int
	HighPriority     int
	ResolutionRate   int // percent, rounded
	EscalationRate   int // percent, rounded
	ByStatus         map[complaint.Status]int
	ByCategory       map[complaint.Category]int
	ByDepartment     map[complaint.Department]int
	ResolvedByRole   map[complaint.Role]int
	RatedCount       int
	AverageRating    float64
}

// Summarize aggregates complaints in a single pass.
func Summarize(complaints []complaint.Complaint) Summary {
	s := Summary{
		ByStatus:       make(map[complaint.Status]int, len(complaint.AllStatuses)),
		ByCategory:     make(map[complaint.Category]int, len(complaint.AllCategories)),
		ByDepartment:   make(map[complaint.Department]int),
		ResolvedByRole: make(map[complaint.Role]int),
	}
	for _, c := range complaint.AllCategories {
		s.ByCategory[c] = 0
	}

	ratingSum := 0
	for _, c := range complaints {
		s.Total++
		s.ByStatus[c.Status]++
		s.ByCategory[c.Category]++
		s.ByDepartment[c.Department]++
		if c.IsResolved() {
			s.Resolved++
			if c.ResolvedByRole != "" {
				s.ResolvedByRole[c.ResolvedByRole]++
			}
		}
		if c.EscalatedToAdmin {
			s.EscalatedToAdmin++
		}
		if c.Priority == complaint.PriorityHigh {
			s.HighPriority++
		}
		if c.Feedback != nil {
			s.RatedCount++
			ratingSum += c.Feedback.Rating
		}
	}

	s.ResolutionRate = percent(s.Resolved, s.Total)
	s.EscalationRate = percent(s.EscalatedToAdmin, s.Total)
	if s.RatedCount > 0 {
		s.AverageRating = math.Round(float64(ratingSum)/float64(s.RatedCount)*10) / 10
	}
	return s
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
