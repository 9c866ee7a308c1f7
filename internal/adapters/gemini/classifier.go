// Package gemini implements the remote complaint classifier on the Gemini
// generateContent API with a structured JSON response.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/example/campuscare/internal/ports/secondary"
)

const (
	// DefaultBaseURL is the public Generative Language endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-1.5-flash-latest"
)

// ErrNoContent is returned when the API answers without a usable candidate.
var ErrNoContent = errors.New("no content returned from Gemini API")

// Classifier implements secondary.Classifier.
type Classifier struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithBaseURL points the classifier at another endpoint (tests, proxies).
func WithBaseURL(url string) Option {
	return func(c *Classifier) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Classifier) { c.client = client }
}

// NewClassifier creates a Gemini classifier. The caller bounds each call through ctx.
func NewClassifier(apiKey, model string, opts ...Option) *Classifier {
	if model == "" {
		model = DefaultModel
	}
	c := &Classifier{
		apiKey:  apiKey,
		model:   model,
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type schema struct {
	Type        string            `json:"type"`
	Enum        []string          `json:"enum,omitempty"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var responseSchema = schema{
	Type: "OBJECT",
	Properties: map[string]schema{
		"category": {
			Type:        "STRING",
			Enum:        []string{"INFRASTRUCTURE", "ACADEMICS", "RAGGING", "STAFF_RELATED"},
			Description: "The classified category of the complaint.",
		},
		"suggestedPriority": {
			Type:        "STRING",
			Enum:        []string{"LOW", "MEDIUM", "HIGH"},
			Description: "The detected priority level.",
		},
		"summary": {
			Type:        "STRING",
			Description: "A 10-word summary of the issue.",
		},
	},
	Required: []string{"category", "suggestedPriority", "summary"},
}

func prompt(title, description string) string {
	var b strings.Builder
	b.WriteString("Classify the following college complaint.\n")
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "Description: %s\n\n", description)
	b.WriteString("Instructions:\n")
	b.WriteString("- Categories: INFRASTRUCTURE, ACADEMICS, RAGGING, STAFF_RELATED.\n")
	b.WriteString("- Staff-related complaints should involve specific mentions of personnel.\n")
	b.WriteString("- Ragging involves bullying or harassment by seniors.\n")
	b.WriteString("- Infrastructure involves facilities.\n")
	b.WriteString("- Academics involves courses, teachers, or exams.\n")
	return b.String()
}

// Classify asks Gemini for a category, priority and summary.
func (c *Classifier) Classify(ctx context.Context, title, description string) (*secondary.ClassifierSuggestion, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt(title, description)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send Gemini request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, ErrNoContent
	}

	var suggestion struct {
		Category          string `json:"category"`
		SuggestedPriority string `json:"suggestedPriority"`
		Summary           string `json:"summary"`
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse classification JSON: %w", err)
	}

	return &secondary.ClassifierSuggestion{
		Category:          suggestion.Category,
		SuggestedPriority: suggestion.SuggestedPriority,
		Summary:           suggestion.Summary,
	}, nil
}

// Ensure Classifier implements the interface
var _ secondary.Classifier = (*Classifier)(nil)
