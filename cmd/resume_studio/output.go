package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-studio/internal/results"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printScorecard writes the aggregated report as text.
func printScorecard(w io.Writer, v results.View) {
	if v.NoResults {
		fmt.Fprintln(w, "No analysis results yet.")
		return
	}

	fmt.Fprintf(w, "Overall: %d%% (%s)\n%s\n\n", v.Overall.Value, v.Overall.Band, v.Summary)
	for _, s := range v.Breakdown {
		fmt.Fprintf(w, "  %-18s %3d%%  %s\n", s.Label, s.Value, s.Band)
	}

	if len(v.Strengths) > 0 {
		fmt.Fprintln(w, "\nStrengths:")
		for _, s := range v.Strengths {
			fmt.Fprintf(w, "  + %s\n", s)
		}
	}
	if len(v.Suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range v.Suggestions {
			fmt.Fprintf(w, "  [%s] %s\n", s.Priority, s.Suggestion)
			if s.Explanation != "" {
				fmt.Fprintf(w, "         %s\n", s.Explanation)
			}
		}
	}
	if len(v.DetectedKeywords) > 0 {
		fmt.Fprintf(w, "\nDetected keywords: %s\n", strings.Join(v.DetectedKeywords, ", "))
	}

	if v.Match != nil {
		fmt.Fprintf(w, "\nJob match: %d%% - %s\n", v.Match.Score.Value, v.Match.Summary)
		fmt.Fprintf(w, "  Matched (%d): %s\n", v.Match.MatchedCount, strings.Join(v.Match.MatchedSkills, ", "))
		fmt.Fprintf(w, "  Missing (%d): %s\n", v.Match.MissingCount, strings.Join(v.Match.MissingSkills, ", "))
		for _, r := range v.Recommendations {
			fmt.Fprintf(w, "  [%s] %s: %s\n", r.Importance, r.Title, r.Description)
		}
	}
}
