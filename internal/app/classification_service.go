package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/example/campuscare/internal/core/classify"
	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/secondary"
)

// DefaultClassifierTimeout bounds the wait for the remote classifier.
const DefaultClassifierTimeout = 8 * time.Second

var errMalformedSuggestion = errors.New("malformed classifier suggestion")

// ClassificationServiceImpl assigns priority, category and summary to new complaints.
// It never fails: any remote problem yields the local fallback.
type ClassificationServiceImpl struct {
	remote  secondary.Classifier
	timeout time.Duration
	logger  *zap.Logger
}

// NewClassificationService creates a ClassificationService. remote may be nil,
// in which case every complaint is classified locally.
func NewClassificationService(remote secondary.Classifier, timeout time.Duration, logger *zap.Logger) *ClassificationServiceImpl {
	if timeout <= 0 {
		timeout = DefaultClassifierTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassificationServiceImpl{
		remote:  remote,
		timeout: timeout,
		logger:  logger,
	}
}

type suggestionOutcome struct {
	suggestion *secondary.ClassifierSuggestion
	err        error
}

// Classify makes a single remote attempt within the configured timeout and
// merges the answer with the keyword lexicon.
func (s *ClassificationServiceImpl) Classify(ctx context.Context, title, description string) classify.Result {
	if s.remote == nil {
		return classify.Fallback(title, description)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan suggestionOutcome, 1)
	go func() {
		suggestion, err := s.remote.Classify(ctx, title, description)
		done <- suggestionOutcome{suggestion: suggestion, err: err}
	}()

	var outcome suggestionOutcome
	select {
	case outcome = <-done:
	case <-ctx.Done():
		outcome.err = ctx.Err()
	}
	if outcome.err == nil && outcome.suggestion == nil {
		outcome.err = errMalformedSuggestion
	}
	if outcome.err != nil {
		s.logger.Warn("remote classification failed, using fallback", zap.Error(outcome.err))
		return classify.Fallback(title, description)
	}

	suggestion, err := toSuggestion(outcome.suggestion)
	if err != nil {
		s.logger.Warn("remote classification rejected, using fallback", zap.Error(err))
		return classify.Fallback(title, description)
	}
	result, ok := classify.Merge(title, description, suggestion)
	if !ok {
		s.logger.Warn("remote classification rejected, using fallback", zap.Error(errMalformedSuggestion))
		return classify.Fallback(title, description)
	}
	return result
}

func toSuggestion(raw *secondary.ClassifierSuggestion) (classify.Suggestion, error) {
	priority, err := complaint.ParsePriority(raw.SuggestedPriority)
	if err != nil {
		return classify.Suggestion{}, err
	}
	var category complaint.Category
	if raw.Category != "" {
		if category, err = complaint.ParseCategory(raw.Category); err != nil {
			return classify.Suggestion{}, err
		}
	}
	return classify.Suggestion{
		Category: category,
		Priority: priority,
		Summary:  raw.Summary,
	}, nil
}
