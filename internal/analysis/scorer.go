// Package analysis scores résumé documents and matches them against job descriptions
// by prompting an LLM for the report shapes exchanged with clients.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/types"
	"go.uber.org/zap"
)

// maxInputChars bounds each text block placed in a prompt
const maxInputChars = 20000

// ReportError is returned when the model's report fails range or enum checks
type ReportError struct {
	Report string
	Cause  error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("invalid %s report: %v", e.Report, e.Cause)
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}

// Scorer produces analysis and match reports
type Scorer struct {
	llm    llm.Client
	logger *zap.Logger
}

// NewScorer creates a scorer over client. A nil logger discards output.
func NewScorer(client llm.Client, log *zap.Logger) *Scorer {
	return &Scorer{llm: client, logger: logger.OrNop(log)}
}

// Analyze scores doc, optionally against a job description.
func (s *Scorer) Analyze(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (*types.AnalysisResult, error) {
	text, err := documentText(doc)
	if err != nil {
		return nil, err
	}

	var report types.AnalysisResult
	if err := llm.DecodeJSON(ctx, s.llm, analyzePrompt(text, jobDescription).String(), llm.TierStandard, &report); err != nil {
		return nil, fmt.Errorf("failed to analyze resume: %w", err)
	}

	normalizeAnalysis(&report)
	if err := report.Validate(); err != nil {
		return nil, &ReportError{Report: "analysis", Cause: err}
	}

	s.logger.Debug("resume analyzed",
		zap.Int("overall_score", report.OverallScore),
		zap.Int("suggestions", len(report.ImprovementSuggestions)),
		zap.Bool("with_job_description", strings.TrimSpace(jobDescription) != ""))
	return &report, nil
}

// Match compares doc with a job description.
func (s *Scorer) Match(ctx context.Context, doc *types.ResumeDocument, jobDescription string) (*types.MatchResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("job description is required")
	}
	text, err := documentText(doc)
	if err != nil {
		return nil, err
	}

	var report types.MatchResult
	if err := llm.DecodeJSON(ctx, s.llm, matchPrompt(text, jobDescription).String(), llm.TierStandard, &report); err != nil {
		return nil, fmt.Errorf("failed to match resume: %w", err)
	}

	normalizeMatch(&report)
	if err := report.Validate(); err != nil {
		return nil, &ReportError{Report: "match", Cause: err}
	}

	s.logger.Debug("resume matched",
		zap.Int("match_percentage", report.MatchPercentage),
		zap.Int("missing_skills", len(report.SkillsMatch.MissingSkills)))
	return &report, nil
}

// Structure turns extracted résumé text into a document.
func (s *Scorer) Structure(ctx context.Context, text string) (*types.ResumeDocument, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("resume text is empty")
	}

	doc := types.NewResumeDocument()
	if err := llm.DecodeJSON(ctx, s.llm, structurePrompt(text).String(), llm.TierLite, doc); err != nil {
		return nil, fmt.Errorf("failed to structure resume: %w", err)
	}

	doc.ID = nil
	doc.OwnerID = nil
	doc.Version = 0
	doc.CreatedAt = nil
	doc.UpdatedAt = nil
	doc.Template = types.DefaultTemplate
	doc.Skills = compactStrings(doc.Skills)
	if doc.Experience == nil {
		doc.Experience = []types.ExperienceEntry{}
	}
	if doc.Education == nil {
		doc.Education = []types.EducationEntry{}
	}
	for i := range doc.Experience {
		doc.Experience[i].Responsibilities = compactStrings(doc.Experience[i].Responsibilities)
	}
	return doc, nil
}

// documentText renders doc as plain text for a prompt.
func documentText(doc *types.ResumeDocument) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("resume document is required")
	}
	layout, err := rendering.Render(doc, types.TemplateClassic)
	if err != nil {
		return "", fmt.Errorf("failed to render resume: %w", err)
	}
	return logger.Truncate(rendering.FormatText(layout), maxInputChars), nil
}

func normalizeAnalysis(r *types.AnalysisResult) {
	r.Strengths = compactStrings(r.Strengths)
	r.ATSAnalysis.DetectedKeywords = compactStrings(r.ATSAnalysis.DetectedKeywords)
	for i := range r.ImprovementSuggestions {
		r.ImprovementSuggestions[i].Priority = normalizePriority(r.ImprovementSuggestions[i].Priority)
	}
}

func normalizeMatch(r *types.MatchResult) {
	r.SkillsMatch.MatchedSkills = compactStrings(r.SkillsMatch.MatchedSkills)
	r.SkillsMatch.MissingSkills = compactStrings(r.SkillsMatch.MissingSkills)
	for i := range r.Recommendations {
		r.Recommendations[i].Importance = normalizePriority(r.Recommendations[i].Importance)
	}
}

func normalizePriority(p types.Priority) types.Priority {
	return types.Priority(strings.ToLower(strings.TrimSpace(string(p))))
}

// compactStrings trims items and drops blanks, never returning nil
func compactStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
