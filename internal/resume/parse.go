package resume

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FallbackPolicy decides what ParseStructuredOutput does with unparseable output.
type FallbackPolicy int

const (
	Strict FallbackPolicy = iota
	Lenient
)

func ParseFallbackPolicy(s string) FallbackPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "lenient") {
		return Lenient
	}
	return Strict
}

var ErrNoJSON = errors.New("no JSON object in model output")

// ParseError keeps the raw model output next to the decode failure.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse structured output: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseStructuredOutput decodes a StructuredResume from LLM text that may wrap
// the JSON in code fences or prose.
func ParseStructuredOutput(raw string, policy FallbackPolicy) (*StructuredResume, error) {
	out, err := decode(raw)
	if err == nil {
		return out, nil
	}
	if policy == Lenient {
		return &StructuredResume{
			Summary:    strings.TrimSpace(raw),
			Skills:     []string{},
			Experience: []Experience{},
			Education:  []Education{},
			Partial:    true,
		}, nil
	}
	return nil, &ParseError{Raw: raw, Err: err}
}

func decode(raw string) (*StructuredResume, error) {
	body := ExtractJSON(raw)
	if body == "" {
		return nil, ErrNoJSON
	}
	var out StructuredResume
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, err
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if out.Experience == nil {
		out.Experience = []Experience{}
	}
	if out.Education == nil {
		out.Education = []Education{}
	}
	return &out, nil
}

// ExtractJSON strips code fences and returns the outermost {...} span of raw,
// or "" when there is none.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}
