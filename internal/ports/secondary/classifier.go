package secondary

import "context"

// Classifier defines the secondary port for the remote priority classifier.
// Its answer is advisory; implementations may be slow or fail.
type Classifier interface {
	// Classify suggests a category, priority and summary for a complaint.
	Classify(ctx context.Context, title, description string) (*ClassifierSuggestion, error)
}

// ClassifierSuggestion is the raw remote answer. Values are unvalidated strings.
type ClassifierSuggestion struct {
	Category          string
	SuggestedPriority string
	Summary           string
}
