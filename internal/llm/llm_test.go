package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	answer string
	err    error
	tier   ModelTier
}

func (s *stubClient) GenerateJSON(_ context.Context, _ string, tier ModelTier) (string, error) {
	s.tier = tier
	return s.answer, s.err
}

func (s *stubClient) Close() error { return nil }

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "fallback-model"}}
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))

	empty := &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierStandard))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	next := config.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "custom-model", next.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", next.GetModel(TierLite))
	assert.Equal(t, config.Temperature, next.Temperature)
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the analysis:\n{\"overall_score\": 70}", `{"overall_score": 70}`},
		{"trailing text", "{\"key\": \"value\"}\n\nLet me know!", `{"key": "value"}`},
		{"array", "Items:\n[\"Go\", \"SQL\"]", `["Go", "SQL"]`},
		{"braces inside strings", `{"note": "use {name} here"} done`, `{"note": "use {name} here"}`},
		{"escaped quotes", `Result: {"m": "say \"hi\" }"}`, `{"m": "say \"hi\" }"}`},
		{"no json", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	c := &stubClient{answer: "```json\n{\"overall_score\": 81}\n```"}

	var out struct {
		OverallScore int `json:"overall_score"`
	}
	require.NoError(t, DecodeJSON(context.Background(), c, "p", TierStandard, &out))
	assert.Equal(t, 81, out.OverallScore)
	assert.Equal(t, TierStandard, c.tier)
}

func TestDecodeJSON_BadAnswer(t *testing.T) {
	c := &stubClient{answer: "I cannot help with that"}

	var out map[string]any
	err := DecodeJSON(context.Background(), c, "p", TierLite, &out)

	var re *ResponseError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "I cannot help with that", re.Raw)
}

func TestDecodeJSON_ClientError(t *testing.T) {
	boom := errors.New("quota exceeded")
	c := &stubClient{err: boom}

	var out map[string]any
	assert.ErrorIs(t, DecodeJSON(context.Background(), c, "p", TierLite, &out), boom)
}

func TestPrompt_String(t *testing.T) {
	p := Prompt{
		Task: "Score this résumé.",
		Fields: []Field{
			{Name: "overall_score", Type: "integer 0-100", Required: true},
			{Name: "strengths", Type: `["string"]`, Description: "what works"},
		},
		Rules:  []string{"Be strict."},
		Inputs: []Input{{Label: "Resume", Text: "Ada Lovelace"}, {Label: "Job description", Text: "  "}},
	}

	s := p.String()
	assert.Contains(t, s, "Score this résumé.")
	assert.Contains(t, s, `"overall_score": integer 0-100 (required),`)
	assert.Contains(t, s, `"strengths": ["string"] // what works`)
	assert.Contains(t, s, "- Be strict.")
	assert.Contains(t, s, "Resume:\n\"\"\"\nAda Lovelace\n\"\"\"")
	assert.NotContains(t, s, "Job description:")
}
