// Package results merges the analysis and job-match reports into one scorecard.
package results

import (
	"slices"

	"github.com/jonathan/resume-studio/internal/types"
)

// Band is the severity of a percentage
type Band string

// Severity bands
const (
	BandGood    Band = "good"
	BandWarning Band = "warning"
	BandPoor    Band = "poor"
)

// Band thresholds, exclusive lower bounds
const (
	GoodAbove    = 80
	WarningAbove = 60
)

// BandFor returns the band of a 0-100 score.
func BandFor(score int) Band {
	switch {
	case score > GoodAbove:
		return BandGood
	case score > WarningAbove:
		return BandWarning
	default:
		return BandPoor
	}
}

// Breakdown row keys
const (
	RowContent  = "content"
	RowFormat   = "format"
	RowATS      = "ats_compatibility"
	RowJobMatch = "job_match"
)

// Score is one banded percentage
type Score struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
	Band  Band   `json:"band"`
}

func newScore(key, label string, value int) Score {
	return Score{Key: key, Label: label, Value: value, Band: BandFor(value)}
}

// MatchView is the job-match part of the scorecard
type MatchView struct {
	Score         Score    `json:"score"`
	Summary       string   `json:"summary"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	MatchedCount  int      `json:"matched_count"`
	MissingCount  int      `json:"missing_count"`
}

// View is the aggregated scorecard. When NoResults is set every other field is zero.
type View struct {
	NoResults        bool                          `json:"no_results"`
	Overall          Score                         `json:"overall"`
	Summary          string                        `json:"summary"`
	Breakdown        []Score                       `json:"breakdown"`
	Strengths        []string                      `json:"strengths"`
	Suggestions      []types.ImprovementSuggestion `json:"suggestions"`
	DetectedKeywords []string                      `json:"detected_keywords"`
	Match            *MatchView                    `json:"match,omitempty"`
	Recommendations  []types.Recommendation        `json:"recommendations"`
}

var overallSummaries = map[Band]string{
	BandGood:    "Excellent! Your resume is well-optimized.",
	BandWarning: "Good start, but there's room for improvement.",
	BandPoor:    "Your resume needs significant improvements.",
}

var matchSummaries = map[Band]string{
	BandGood:    "Excellent match! You are well-qualified for this position.",
	BandWarning: "Good match. Consider highlighting more relevant skills.",
	BandPoor:    "Your resume needs significant tailoring for this job.",
}

// Aggregate builds the scorecard. A nil analysis yields NoResults regardless of match.
// Inputs are not modified.
func Aggregate(analysis *types.AnalysisResult, match *types.MatchResult) View {
	if analysis == nil {
		return View{NoResults: true}
	}

	v := View{
		Overall: newScore("overall", "Overall", analysis.OverallScore),
		Breakdown: []Score{
			newScore(RowContent, "Content", analysis.Scores.Content),
			newScore(RowFormat, "Format", analysis.Scores.Format),
			newScore(RowATS, "ATS Compatibility", analysis.Scores.ATSCompatibility),
		},
		Strengths:        slices.Clone(analysis.Strengths),
		Suggestions:      SortSuggestions(analysis.ImprovementSuggestions),
		DetectedKeywords: slices.Clone(analysis.ATSAnalysis.DetectedKeywords),
	}
	v.Summary = overallSummaries[v.Overall.Band]

	if match != nil {
		s := newScore(RowJobMatch, "Job Match", match.MatchPercentage)
		v.Breakdown = append(v.Breakdown, s)
		v.Match = &MatchView{
			Score:         s,
			Summary:       matchSummaries[s.Band],
			MatchedSkills: slices.Clone(match.SkillsMatch.MatchedSkills),
			MissingSkills: slices.Clone(match.SkillsMatch.MissingSkills),
			MatchedCount:  len(match.SkillsMatch.MatchedSkills),
			MissingCount:  len(match.SkillsMatch.MissingSkills),
		}
		v.Recommendations = SortRecommendations(match.Recommendations)
	}
	return v
}

// SortSuggestions returns a copy ordered high, medium, low, keeping input order within a tier.
func SortSuggestions(in []types.ImprovementSuggestion) []types.ImprovementSuggestion {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b types.ImprovementSuggestion) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return out
}

// SortRecommendations returns a copy ordered high, medium, low, keeping input order within a tier.
func SortRecommendations(in []types.Recommendation) []types.Recommendation {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b types.Recommendation) int {
		return a.Importance.Rank() - b.Importance.Rank()
	})
	return out
}
