// Package classify contains the local, deterministic half of complaint classification:
// the high-priority lexicon, the fallback category heuristic and the rule that
// merges a remote suggestion with the local verdict.
// This is part of the Functional Core - no I/O, only pure functions.
package classify

import (
	"strings"

	"github.com/example/campuscare/internal/core/complaint"
)

// FallbackSummary is the summary recorded when the remote classifier could not be used.
const FallbackSummary = "Classification failed. Manual summary generated."

// HighPriorityKeywords force HIGH priority on any case-insensitive substring match.
var HighPriorityKeywords = []string{
	"urgent", "immediately", "danger", "life threatening", "unsafe", "fire",
	"electrical", "short circuit", "injury", "bleeding", "harassment",
	"ragging", "violence", "abuse", "threat", "collapsed", "no water",
	"water leakage", "broken", "damaged", "gas leak", "emergency",
	"security issue", "accident", "critical", "severe", "mental trauma",
	"suicidal", "panic", "explosion", "assault", "bullying",
}

// categoryRules are applied in order; a later matching rule overrides an earlier one.
var categoryRules = []struct {
	category complaint.Category
	keywords []string
}{
	{complaint.CategoryInfrastructure, []string{"broken", "fan", "light"}},
	{complaint.CategoryRagging, []string{"senior", "ragging"}},
	{complaint.CategoryStaffRelated, []string{"professor", "staff"}},
}

// Source records where a classification came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceFallback Source = "fallback"
)

// Result is the outcome of classifying one complaint.
type Result struct {
	Priority complaint.Priority
	Category complaint.Category // empty when no category was determined
	Summary  string
	Source   Source
}

// Suggestion is what a remote classifier proposes. Fields may be empty.
type Suggestion struct {
	Category complaint.Category
	Priority complaint.Priority
	Summary  string
}

func fullText(title, description string) string {
	return strings.ToLower(title + " " + description)
}

// MatchedKeywords returns the lexicon terms found in title and description.
func MatchedKeywords(title, description string) []string {
	text := fullText(title, description)
	var hits []string
	for _, word := range HighPriorityKeywords {
		if strings.Contains(text, word) {
			hits = append(hits, word)
		}
	}
	return hits
}

// KeywordPriority returns HIGH on any lexicon hit and MEDIUM otherwise.
func KeywordPriority(title, description string) complaint.Priority {
	text := fullText(title, description)
	for _, word := range HighPriorityKeywords {
		if strings.Contains(text, word) {
			return complaint.PriorityHigh
		}
	}
	return complaint.PriorityMedium
}

// FallbackCategory infers a category from keywords, defaulting to Academics.
func FallbackCategory(title, description string) complaint.Category {
	text := fullText(title, description)
	category := complaint.CategoryAcademics
	for _, rule := range categoryRules {
		for _, word := range rule.keywords {
			if strings.Contains(text, word) {
				category = rule.category
				break
			}
		}
	}
	return category
}

// Fallback classifies using local heuristics only.
func Fallback(title, description string) Result {
	return Result{
		Priority: KeywordPriority(title, description),
		Category: FallbackCategory(title, description),
		Summary:  FallbackSummary,
		Source:   SourceFallback,
	}
}

// Merge combines a remote suggestion with the local keyword verdict.
// A keyword hit always wins; otherwise the remote priority is used.
// ok is false when the suggestion is unusable and the caller must fall back.
func Merge(title, description string, s Suggestion) (Result, bool) {
	if !s.Priority.IsValid() {
		return Result{}, false
	}
	if s.Category != "" && !s.Category.IsValid() {
		return Result{}, false
	}

	priority := s.Priority
	if KeywordPriority(title, description) == complaint.PriorityHigh {
		priority = complaint.PriorityHigh
	}

	summary := strings.TrimSpace(s.Summary)
	if summary == "" {
		summary = "No summary available."
	}
	return Result{
		Priority: priority,
		Category: s.Category,
		Summary:  summary,
		Source:   SourceRemote,
	}, true
}
