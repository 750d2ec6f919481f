package types

import (
	"github.com/go-playground/validator/v10"
)

// Priority ranks a suggestion or recommendation
type Priority string

// Priority levels, in display order
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort position of the priority (high first).
// Unknown values sort after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// AnalysisResult is the quality report produced by the backend
type AnalysisResult struct {
	OverallScore           int                     `json:"overall_score" validate:"min=0,max=100"`
	Scores                 Scores                  `json:"scores"`
	ImprovementSuggestions []ImprovementSuggestion `json:"improvement_suggestions" validate:"dive"`
	Strengths              []string                `json:"strengths"`
	ATSAnalysis            ATSAnalysis             `json:"ats_analysis"`
}

// Scores is the per-dimension breakdown of an analysis
type Scores struct {
	Content          int `json:"content" validate:"min=0,max=100"`
	Format           int `json:"format" validate:"min=0,max=100"`
	ATSCompatibility int `json:"ats_compatibility" validate:"min=0,max=100"`
}

// ImprovementSuggestion is one actionable change
type ImprovementSuggestion struct {
	Suggestion  string   `json:"suggestion" validate:"required"`
	Explanation string   `json:"explanation"`
	Priority    Priority `json:"priority" validate:"oneof=high medium low"`
}

// ATSAnalysis holds applicant-tracking findings
type ATSAnalysis struct {
	DetectedKeywords []string `json:"detected_keywords"`
}

// MatchResult is the job-fit report produced by the backend
type MatchResult struct {
	MatchPercentage int              `json:"match_percentage" validate:"min=0,max=100"`
	SkillsMatch     SkillsMatch      `json:"skills_match"`
	Recommendations []Recommendation `json:"recommendations" validate:"dive"`
}

// SkillsMatch splits job skills into those present and absent in the résumé
type SkillsMatch struct {
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// Recommendation is one job-specific piece of advice
type Recommendation struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Importance  Priority `json:"importance" validate:"oneof=high medium low"`
}

// UploadResult is returned by the upload-and-analyze operation
type UploadResult struct {
	ResumeData      *ResumeDocument `json:"resume_data"`
	AnalysisResults *AnalysisResult `json:"analysis_results"`
}

// Validate checks score ranges and enum values.
func (r *AnalysisResult) Validate() error {
	return validator.New().Struct(r)
}

// Validate checks score ranges and enum values.
func (r *MatchResult) Validate() error {
	return validator.New().Struct(r)
}
