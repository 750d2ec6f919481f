package editor

import (
	"slices"
	"strings"

	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// CommonSkills is the suggestion catalogue offered while adding skills.
var CommonSkills = []string{
	// Programming languages
	"JavaScript", "Python", "Java", "C++", "C#", "PHP", "Ruby", "Swift", "Go", "Kotlin",
	// Web
	"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Express.js", "Django", "Flask",
	// Databases
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Oracle", "SQLite", "Redis",
	// Cloud and DevOps
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "Git", "GitHub", "GitLab",
	// Data
	"Machine Learning", "Data Analysis", "TensorFlow", "PyTorch", "Pandas", "NumPy", "R",
	// Soft skills
	"Communication", "Teamwork", "Problem Solving", "Leadership", "Time Management", "Adaptability",
}

// SkillsEditor edits the ordered skill list. Matching is case-sensitive.
type SkillsEditor struct {
	store *store.Store
}

// NewSkillsEditor returns an editor bound to st.
func NewSkillsEditor(st *store.Store) *SkillsEditor {
	return &SkillsEditor{store: st}
}

// Skills returns the current skills in insertion order.
func (e *SkillsEditor) Skills() []string {
	return e.store.Document().Skills
}

// Add appends trimmed free text. Blank text and exact duplicates are rejected.
func (e *SkillsEditor) Add(text string) bool {
	return e.Pick(strings.TrimSpace(text))
}

// Pick appends a suggested skill unless blank or already present.
func (e *SkillsEditor) Pick(skill string) bool {
	if strings.TrimSpace(skill) == "" {
		return false
	}
	added := false
	e.store.Update(func(doc *types.ResumeDocument) {
		if slices.Contains(doc.Skills, skill) {
			return
		}
		doc.Skills = append(doc.Skills, skill)
		added = true
	})
	return added
}

// Delete removes the exact skill, if present.
func (e *SkillsEditor) Delete(skill string) bool {
	removed := false
	e.store.Update(func(doc *types.ResumeDocument) {
		kept := make([]string, 0, len(doc.Skills))
		for _, s := range doc.Skills {
			if s == skill {
				removed = true
				continue
			}
			kept = append(kept, s)
		}
		doc.Skills = kept
	})
	return removed
}

// Suggestions returns catalogue skills not yet present whose name starts with prefix,
// ignoring case. An empty prefix matches all.
func (e *SkillsEditor) Suggestions(prefix string) []string {
	have := e.Skills()
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, s := range CommonSkills {
		if slices.Contains(have, s) {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(s), prefix) {
			continue
		}
		out = append(out, s)
	}
	return out
}
