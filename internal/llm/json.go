package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ResponseError is returned when a model answer is not the JSON that was asked for
type ResponseError struct {
	Raw   string
	Cause error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("model returned unusable JSON: %v", e.Cause)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}

// DecodeJSON asks c for a JSON answer to prompt and unmarshals it into out.
func DecodeJSON(ctx context.Context, c Client, prompt string, tier ModelTier, out any) error {
	raw, err := c.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return err
	}
	cleaned := CleanJSONBlock(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return &ResponseError{Raw: raw, Cause: err}
	}
	return nil
}

// CleanJSONBlock strips markdown fences, preambles and trailing chatter around the first
// JSON object or array in text.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// language identifier on the fence line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			first := text[:idx]
			if len(first) < 20 && !strings.ContainsAny(first, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if block := balancedBlock(text[start:]); block != "" {
		return block
	}
	return text[start:]
}

// balancedBlock returns the prefix of s holding one balanced JSON object or array,
// ignoring brackets inside strings. Returns "" when s is unbalanced.
func balancedBlock(s string) string {
	depth := 0
	inString := false
	escaped := false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
