// Package session implements the multi-step editing workflow over a résumé store: step
// navigation, the guarded transition into analysis, explicit save and preview, and
// fire-and-forget autosave.
package session

import (
	"github.com/jonathan/resume-studio/internal/types"
)

// Step identifies one page of the workflow
type Step string

// Workflow steps
const (
	StepPersonalInfo Step = "personal_info"
	StepSummary      Step = "summary"
	StepExperience   Step = "experience"
	StepEducation    Step = "education"
	StepSkills       Step = "skills"
	StepJobMatch     Step = "job_match"
	StepAnalysis     Step = "analysis"
)

// Label returns the human step title.
func (s Step) Label() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Info"
	case StepSummary:
		return "Summary"
	case StepExperience:
		return "Experience"
	case StepEducation:
		return "Education"
	case StepSkills:
		return "Skills"
	case StepJobMatch:
		return "Job Match"
	case StepAnalysis:
		return "Analysis"
	default:
		return string(s)
	}
}

// Variant selects the workflow shape
type Variant string

// Workflow variants
const (
	// VariantCreation is strictly linear and ends with a save.
	VariantCreation Variant = "creation"
	// VariantEditing navigates freely and autosaves on next.
	VariantEditing Variant = "editing"
)

// Transition is a user action on the stepper
type Transition string

// Transitions
const (
	TransitionNext    Transition = "next"
	TransitionBack    Transition = "back"
	TransitionJump    Transition = "jump"
	TransitionSave    Transition = "save"
	TransitionPreview Transition = "preview"
)

var variantSteps = map[Variant][]Step{
	VariantCreation: {StepPersonalInfo, StepSummary, StepExperience, StepEducation, StepSkills, StepJobMatch, StepAnalysis},
	VariantEditing:  {StepPersonalInfo, StepSummary, StepExperience, StepEducation, StepSkills},
}

// effect is the side effect run by an allowed transition
type effect int

const (
	effectNone effect = iota
	effectAutosave
	effectAnalyze
	effectPersist
)

// guardFunc rejects a transition by returning an error message
type guardFunc func(doc *types.ResumeDocument) string

type rule struct {
	guard  guardFunc
	effect effect
}

type tableKey struct {
	variant    Variant
	from       Step
	transition Transition
}

// transitions holds every allowed (variant, step, transition); anything absent is rejected.
var transitions = buildTable()

func buildTable() map[tableKey]rule {
	t := make(map[tableKey]rule)

	creation := variantSteps[VariantCreation]
	for i, step := range creation {
		if i < len(creation)-1 {
			r := rule{}
			if creation[i+1] == StepAnalysis {
				r = rule{guard: requireAnalyzable, effect: effectAnalyze}
			}
			t[tableKey{VariantCreation, step, TransitionNext}] = r
		}
		if i > 0 {
			t[tableKey{VariantCreation, step, TransitionBack}] = rule{}
		}
	}
	t[tableKey{VariantCreation, StepAnalysis, TransitionSave}] = rule{effect: effectPersist}

	editing := variantSteps[VariantEditing]
	for i, step := range editing {
		if i < len(editing)-1 {
			t[tableKey{VariantEditing, step, TransitionNext}] = rule{effect: effectAutosave}
		}
		if i > 0 {
			t[tableKey{VariantEditing, step, TransitionBack}] = rule{}
		}
		t[tableKey{VariantEditing, step, TransitionJump}] = rule{}
		t[tableKey{VariantEditing, step, TransitionSave}] = rule{effect: effectPersist}
		t[tableKey{VariantEditing, step, TransitionPreview}] = rule{effect: effectAutosave}
	}
	return t
}

const analyzableMessage = "Please complete at least the Personal Info and Experience sections before analyzing."

func requireAnalyzable(doc *types.ResumeDocument) string {
	if !doc.HasPersonalInfo() || len(doc.Experience) == 0 {
		return analyzableMessage
	}
	return ""
}
