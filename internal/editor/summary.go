package editor

import "github.com/jonathan/resume-studio/internal/store"

// SummaryEditor edits the free-text summary
type SummaryEditor struct {
	store *store.Store
}

// NewSummaryEditor returns an editor bound to st.
func NewSummaryEditor(st *store.Store) *SummaryEditor {
	return &SummaryEditor{store: st}
}

// Text returns the current summary.
func (e *SummaryEditor) Text() string {
	return e.store.Document().Summary
}

// Set replaces the summary.
func (e *SummaryEditor) Set(text string) {
	e.store.Merge(store.Patch{Summary: &text})
}
