package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	numberedItemPattern = regexp.MustCompile(`\n\d+\.\s*`)
	lineBreakPattern    = regexp.MustCompile(`[\n;]`)
)

// SuggestionList accepts the model's suggestions field in either array or
// string form. The duck-typed input is resolved here once; downstream code
// only ever sees a string slice.
type SuggestionList []string

func (s *SuggestionList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = NormalizeSuggestions(single)
		return nil
	}

	var mixed []any
	if err := json.Unmarshal(data, &mixed); err != nil {
		return err
	}

	out := make([]string, 0, len(mixed))
	for _, item := range mixed {
		out = append(out, fmt.Sprintf("%v", item))
	}
	*s = out

	return nil
}

// JoinedString accepts a string, or an array whose elements are joined with
// spaces into a single string.
type JoinedString string

func (j *JoinedString) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*j = JoinedString(single)
		return nil
	}

	var parts []any
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}

	rendered := make([]string, 0, len(parts))
	for _, part := range parts {
		rendered = append(rendered, fmt.Sprintf("%v", part))
	}
	*j = JoinedString(strings.Join(rendered, " "))

	return nil
}

// ReviewFeedback is the normalized structured critique stored for a review.
type ReviewFeedback struct {
	Score       *int           `json:"score"`
	Suggestions SuggestionList `json:"suggestions"`
	Summary     JoinedString   `json:"summary"`
}

// ReviewResult is the outcome of parsing a model response: either a
// structured critique, or the raw uncleaned text when parsing failed.
type ReviewResult struct {
	Structured *ReviewFeedback
	Raw        string
}

// ParseReviewResponse fence-strips and parses a raw model response. It never
// fails: unparsable responses degrade to the raw fallback so the output is
// always storable.
func ParseReviewResponse(raw string) ReviewResult {
	cleaned := CleanFencedJSON(raw)

	var feedback ReviewFeedback
	if err := json.Unmarshal([]byte(cleaned), &feedback); err != nil {
		return ReviewResult{Raw: raw}
	}

	if feedback.Suggestions == nil {
		feedback.Suggestions = SuggestionList{}
	}

	return ReviewResult{Structured: &feedback}
}

// Score returns the structured score, or nil for a raw fallback.
func (r ReviewResult) Score() *int {
	if r.Structured == nil {
		return nil
	}
	return r.Structured.Score
}

// Suggestions returns the normalized suggestion list, empty for a fallback.
func (r ReviewResult) Suggestions() []string {
	if r.Structured == nil {
		return []string{}
	}
	return r.Structured.Suggestions
}

// Summary returns the summary string, empty for a fallback.
func (r ReviewResult) Summary() string {
	if r.Structured == nil {
		return ""
	}
	return string(r.Structured.Summary)
}

// FeedbackPayload returns what gets persisted: the re-marshaled normalized
// JSON for a structured result, the raw response otherwise.
func (r ReviewResult) FeedbackPayload() string {
	if r.Structured == nil {
		return r.Raw
	}

	payload, err := json.Marshal(r.Structured)
	if err != nil {
		return r.Raw
	}

	return string(payload)
}

// CleanFencedJSON strips a Markdown code fence from a model response. Only a
// response that begins with a fence is touched: the leading fence line, an
// optional "json" tag, and everything from the trailing fence are removed.
func CleanFencedJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}

	if strings.HasPrefix(s, "json") {
		s = s[len("json"):]
	}

	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

// NormalizeSuggestions splits a single suggestions string into a list. It
// first tries a numbered-list pattern, treating the text as implicitly
// preceded by a newline; when that yields a single segment it falls back to
// splitting on newlines or semicolons. Never errors; worst case the result
// is a single-element or empty list.
func NormalizeSuggestions(text string) []string {
	segments := numberedItemPattern.Split("\n"+strings.TrimSpace(text), -1)
	points := trimNonEmpty(segments)
	if len(points) > 1 {
		return points
	}

	return trimNonEmpty(lineBreakPattern.Split(text, -1))
}

func trimNonEmpty(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			out = append(out, segment)
		}
	}

	return out
}
