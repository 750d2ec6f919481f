package editor

import (
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

var educationMessages = messages{
	"institution.required": "Institution is required",
	"degree.required":      "Degree is required",
	"start_date.required":  "Start date is required",
	"end_date.required_if": "End date is required unless currently studying",
}

// EducationEditor edits the education list through a working draft
type EducationEditor struct {
	l entryList[types.EducationEntry]
}

// NewEducationEditor returns an editor bound to st.
func NewEducationEditor(st *store.Store) *EducationEditor {
	return &EducationEditor{l: entryList[types.EducationEntry]{
		store:   st,
		section: "education",
		entries: func(d *types.ResumeDocument) []types.EducationEntry { return d.Education },
		patch:   func(e []types.EducationEntry) store.Patch { return store.Patch{Education: e} },
		clone:   func(e types.EducationEntry) types.EducationEntry { return e },
		check: func(e *types.EducationEntry) error {
			return checkStruct("education", e, educationMessages)
		},
	}}
}

// Entries returns the committed entries.
func (e *EducationEditor) Entries() []types.EducationEntry { return e.l.list() }

// Draft returns the working draft for modification.
func (e *EducationEditor) Draft() *types.EducationEntry { return &e.l.draft }

// Editing returns the index being edited, if any.
func (e *EducationEditor) Editing() (int, bool) { return e.l.editing() }

// Edit loads entry i into the draft.
func (e *EducationEditor) Edit(i int) error { return e.l.edit(i) }

// Submit validates the draft then appends it, or replaces the entry being edited.
func (e *EducationEditor) Submit() error { return e.l.submit() }

// Delete removes entry i.
func (e *EducationEditor) Delete(i int) error { return e.l.delete(i) }

// Cancel discards the draft and edit state.
func (e *EducationEditor) Cancel() { e.l.reset() }
