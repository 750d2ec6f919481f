package editor

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

var experienceMessages = messages{
	"title.required":      "Job title is required",
	"company.required":    "Company name is required",
	"start_date.required": "Start date is required",
}

// ExperienceEditor edits the experience list through a working draft
type ExperienceEditor struct {
	l entryList[types.ExperienceEntry]
}

// NewExperienceEditor returns an editor bound to st.
func NewExperienceEditor(st *store.Store) *ExperienceEditor {
	return &ExperienceEditor{l: entryList[types.ExperienceEntry]{
		store:   st,
		section: "experience",
		entries: func(d *types.ResumeDocument) []types.ExperienceEntry { return d.Experience },
		patch:   func(e []types.ExperienceEntry) store.Patch { return store.Patch{Experience: e} },
		clone:   types.ExperienceEntry.Clone,
		check: func(e *types.ExperienceEntry) error {
			return checkStruct("experience", e, experienceMessages)
		},
	}}
}

// Entries returns the committed entries.
func (e *ExperienceEditor) Entries() []types.ExperienceEntry { return e.l.list() }

// Draft returns the working draft for modification.
func (e *ExperienceEditor) Draft() *types.ExperienceEntry { return &e.l.draft }

// Editing returns the index being edited, if any.
func (e *ExperienceEditor) Editing() (int, bool) { return e.l.editing() }

// Edit loads entry i into the draft.
func (e *ExperienceEditor) Edit(i int) error { return e.l.edit(i) }

// Submit validates the draft then appends it, or replaces the entry being edited.
func (e *ExperienceEditor) Submit() error { return e.l.submit() }

// Delete removes entry i.
func (e *ExperienceEditor) Delete(i int) error { return e.l.delete(i) }

// Cancel discards the draft and edit state.
func (e *ExperienceEditor) Cancel() { e.l.reset() }

// AddResponsibility appends a trimmed bullet to the draft. Blank text is ignored.
func (e *ExperienceEditor) AddResponsibility(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	e.l.draft.Responsibilities = append(e.l.draft.Responsibilities, text)
	return true
}

// DeleteResponsibility removes bullet i from the draft.
func (e *ExperienceEditor) DeleteResponsibility(i int) error {
	r := e.l.draft.Responsibilities
	if i < 0 || i >= len(r) {
		return &IndexError{Section: "responsibilities", Index: i, Len: len(r)}
	}
	e.l.draft.Responsibilities = append(r[:i:i], r[i+1:]...)
	return nil
}
