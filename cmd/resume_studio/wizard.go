package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-studio/internal/editor"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/results"
	"github.com/jonathan/resume-studio/internal/session"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// Navigation menu items
const (
	actionNext     = "Next"
	actionBack     = "Back"
	actionJump     = "Jump to step"
	actionPreview  = "Preview"
	actionTemplate = "Change template"
	actionSave     = "Save"
	actionQuit     = "Quit"
)

// Entry menu items
const (
	entryAdd    = "Add entry"
	entryEdit   = "Edit entry"
	entryDelete = "Delete entry"
	entryDone   = "Done"
)

// wizard walks a session step by step, filling each section from prompts.
type wizard struct {
	session    *session.Session
	store      *store.Store
	ui         prompter
	out        io.Writer
	personal   *editor.PersonalInfoEditor
	summary    *editor.SummaryEditor
	experience *editor.ExperienceEditor
	education  *editor.EducationEditor
	skills     *editor.SkillsEditor
}

func newWizard(s *session.Session, ui prompter, out io.Writer) *wizard {
	st := s.Store()
	return &wizard{
		session:    s,
		store:      st,
		ui:         ui,
		out:        out,
		personal:   editor.NewPersonalInfoEditor(st),
		summary:    editor.NewSummaryEditor(st),
		experience: editor.NewExperienceEditor(st),
		education:  editor.NewEducationEditor(st),
		skills:     editor.NewSkillsEditor(st),
	}
}

// run loops until the session is saved (creation) or the user quits. Quitting returns errQuit.
func (w *wizard) run(ctx context.Context) error {
	for !w.session.Finished() {
		step := w.session.Step()
		fmt.Fprintf(w.out, "\n== Step %d/%d: %s ==\n", w.session.Index()+1, len(w.session.Steps()), step.Label())

		if err := w.form(step); err != nil {
			return err
		}
		if err := w.navigate(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (w *wizard) form(step session.Step) error {
	switch step {
	case session.StepPersonalInfo:
		return w.personalForm()
	case session.StepSummary:
		text, err := w.ui.Prompt("Professional summary", w.summary.Text())
		if err != nil {
			return err
		}
		w.summary.Set(text)
	case session.StepExperience:
		return w.entriesForm("experience", w.experienceLabels, w.editExperience, w.experience.Delete)
	case session.StepEducation:
		return w.entriesForm("education", w.educationLabels, w.editEducation, w.education.Delete)
	case session.StepSkills:
		return w.skillsForm()
	case session.StepJobMatch:
		jd, err := w.ui.Prompt("Job description (optional)", w.store.JobDescription())
		if err != nil {
			return err
		}
		w.store.SetJobDescription(jd)
	case session.StepAnalysis:
		if msg := w.store.Error(store.ViewAnalysis); msg != "" {
			fmt.Fprintf(w.out, "Analysis failed: %s\n", msg)
		}
		printScorecard(w.out, results.Aggregate(w.store.Analysis(), w.store.Match()))
	}
	return nil
}

func (w *wizard) personalForm() error {
	for _, f := range editor.PersonalInfoFields {
		value, err := w.ui.Prompt(fieldLabel(f), w.personal.Get(f))
		if err != nil {
			return err
		}
		if err := w.personal.Set(f, value); err != nil {
			return err
		}
	}
	if err := w.personal.Validate(); err != nil {
		fmt.Fprintf(w.out, "! %v\n", err)
	}
	return nil
}

func fieldLabel(f editor.Field) string {
	switch f {
	case editor.FieldJobTitle:
		return "Job title"
	case editor.FieldLinkedIn:
		return "LinkedIn"
	case editor.FieldGitHub:
		return "GitHub"
	}
	s := string(f)
	return strings.ToUpper(s[:1]) + s[1:]
}

// entriesForm runs the add/edit/delete menu of a repeatable section.
func (w *wizard) entriesForm(section string, labels func() []string, edit func(i int) error, remove func(i int) error) error {
	for {
		current := labels()
		if len(current) == 0 {
			fmt.Fprintf(w.out, "No %s entries yet.\n", section)
		}
		for i, l := range current {
			fmt.Fprintf(w.out, "  %d. %s\n", i+1, l)
		}

		items := []string{entryAdd}
		if len(current) > 0 {
			items = append(items, entryEdit, entryDelete)
		}
		items = append(items, entryDone)

		choice, err := w.ui.Select(strings.ToUpper(section[:1])+section[1:], items)
		if err != nil {
			return err
		}

		switch items[choice] {
		case entryAdd:
			err = edit(-1)
		case entryEdit, entryDelete:
			var i int
			if i, err = w.ui.Select("Which entry?", current); err != nil {
				return err
			}
			if items[choice] == entryEdit {
				err = edit(i)
			} else {
				err = remove(i)
			}
		case entryDone:
			return nil
		}

		if errors.Is(err, errQuit) {
			return err
		}
		if err != nil {
			fmt.Fprintf(w.out, "! %v\n", err)
		}
	}
}

func (w *wizard) experienceLabels() []string {
	var out []string
	for _, e := range w.experience.Entries() {
		out = append(out, fmt.Sprintf("%s at %s (%s)", e.Title, e.Company, e.DateRange()))
	}
	return out
}

func (w *wizard) educationLabels() []string {
	var out []string
	for _, e := range w.education.Entries() {
		out = append(out, fmt.Sprintf("%s, %s (%s)", e.Degree, e.Institution, e.DateRange()))
	}
	return out
}

// editExperience fills the draft and submits it. i < 0 adds a new entry.
func (w *wizard) editExperience(i int) error {
	w.experience.Cancel()
	if i >= 0 {
		if err := w.experience.Edit(i); err != nil {
			return err
		}
	}
	d := w.experience.Draft()

	fields := []struct {
		label string
		value *string
	}{
		{"Title", &d.Title},
		{"Company", &d.Company},
		{"Location", &d.Location},
		{"Start date", &d.StartDate},
	}
	for _, f := range fields {
		v, err := w.ui.Prompt(f.label, *f.value)
		if err != nil {
			return err
		}
		*f.value = v
	}

	current, err := w.ui.Confirm("Current position")
	if err != nil {
		return err
	}
	d.Current = current
	if !current {
		if d.EndDate, err = w.ui.Prompt("End date", d.EndDate); err != nil {
			return err
		}
	}

	if len(d.Responsibilities) > 0 {
		keep, err := w.ui.Confirm(fmt.Sprintf("Keep the %d existing responsibilities", len(d.Responsibilities)))
		if err != nil {
			return err
		}
		if !keep {
			d.Responsibilities = nil
		}
	}
	lines, err := promptList(w.ui, "Responsibility")
	if err != nil {
		return err
	}
	for _, l := range lines {
		w.experience.AddResponsibility(l)
	}

	if err := w.experience.Submit(); err != nil {
		w.experience.Cancel()
		return err
	}
	return nil
}

// editEducation fills the draft and submits it. i < 0 adds a new entry.
func (w *wizard) editEducation(i int) error {
	w.education.Cancel()
	if i >= 0 {
		if err := w.education.Edit(i); err != nil {
			return err
		}
	}
	d := w.education.Draft()

	fields := []struct {
		label string
		value *string
	}{
		{"Institution", &d.Institution},
		{"Degree", &d.Degree},
		{"Field of study", &d.FieldOfStudy},
		{"Location", &d.Location},
		{"Start date", &d.StartDate},
	}
	for _, f := range fields {
		v, err := w.ui.Prompt(f.label, *f.value)
		if err != nil {
			return err
		}
		*f.value = v
	}

	current, err := w.ui.Confirm("Currently studying")
	if err != nil {
		return err
	}
	d.Current = current
	if !current {
		if d.EndDate, err = w.ui.Prompt("End date", d.EndDate); err != nil {
			return err
		}
	}
	if d.Description, err = w.ui.Prompt("Description", d.Description); err != nil {
		return err
	}

	if err := w.education.Submit(); err != nil {
		w.education.Cancel()
		return err
	}
	return nil
}

func (w *wizard) skillsForm() error {
	fmt.Fprintf(w.out, "Skills: %s\n", strings.Join(w.skills.Skills(), ", "))
	if suggestions := w.skills.Suggestions(""); len(suggestions) > 0 {
		fmt.Fprintf(w.out, "Suggestions: %s\n", strings.Join(suggestions, ", "))
	}

	add, err := w.ui.Prompt("Add skills (comma separated)", "")
	if err != nil {
		return err
	}
	for _, s := range strings.Split(add, ",") {
		w.skills.Add(s)
	}

	remove, err := w.ui.Prompt("Remove skills (comma separated)", "")
	if err != nil {
		return err
	}
	for _, s := range strings.Split(remove, ",") {
		w.skills.Delete(strings.TrimSpace(s))
	}
	return nil
}

// navigate offers the transitions allowed from the current step and applies the choice.
func (w *wizard) navigate(ctx context.Context) error {
	var items []string
	if w.session.Allowed(session.TransitionNext) {
		items = append(items, actionNext)
	}
	if w.session.Allowed(session.TransitionBack) {
		items = append(items, actionBack)
	}
	if w.session.Allowed(session.TransitionJump) {
		items = append(items, actionJump)
	}
	if w.session.Allowed(session.TransitionPreview) {
		items = append(items, actionPreview)
	}
	items = append(items, actionTemplate)
	if w.session.Allowed(session.TransitionSave) {
		items = append(items, actionSave)
	}
	items = append(items, actionQuit)

	choice, err := w.ui.Select("What next?", items)
	if err != nil {
		return err
	}

	switch items[choice] {
	case actionNext:
		err = w.session.Next(ctx)
	case actionBack:
		err = w.session.Back()
	case actionJump:
		err = w.jump()
	case actionPreview:
		err = w.preview()
	case actionTemplate:
		err = w.chooseTemplate()
	case actionSave:
		var saved *types.ResumeDocument
		if saved, err = w.session.Save(ctx); err == nil {
			fmt.Fprintf(w.out, "Saved %s (version %d)\n", saved.ID, saved.Version)
		}
	case actionQuit:
		return w.quit()
	}

	if errors.Is(err, errQuit) {
		return err
	}
	if err != nil {
		fmt.Fprintf(w.out, "! %v\n", err)
	}
	return nil
}

func (w *wizard) jump() error {
	steps := w.session.Steps()
	labels := make([]string, len(steps))
	for i, s := range steps {
		labels[i] = s.Label()
	}
	i, err := w.ui.Select("Go to", labels)
	if err != nil {
		return err
	}
	return w.session.JumpTo(i)
}

func (w *wizard) preview() error {
	layout, err := w.session.Preview()
	if err != nil {
		return err
	}
	fmt.Fprintf(w.out, "\n%s\n", rendering.FormatText(layout))
	return nil
}

func (w *wizard) chooseTemplate() error {
	templates := rendering.Default().Templates()
	labels := make([]string, len(templates))
	for i, t := range templates {
		labels[i] = fmt.Sprintf("%s - %s", t.DisplayName(), t.Description())
	}
	i, err := w.ui.Select("Template", labels)
	if err != nil {
		return err
	}
	name := templates[i].Name()
	w.store.Merge(store.Patch{Template: &name})
	return nil
}

func (w *wizard) quit() error {
	if w.session.Variant() == session.VariantCreation && !w.session.Finished() {
		ok, err := w.ui.Confirm("Discard this draft")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return errQuit
}
