package rendering

import "github.com/jonathan/resume-studio/internal/types"

// Minimal is a compact single column. Experience entries omit their responsibilities.
type Minimal struct{}

// Name implements Template.
func (Minimal) Name() types.TemplateName { return types.TemplateMinimal }

// DisplayName implements Template.
func (Minimal) DisplayName() string { return "Minimal" }

// Description implements Template.
func (Minimal) Description() string {
	return "Simple and elegant design focusing on content with minimal styling."
}

// Layout implements Template.
func (Minimal) Layout(doc *types.ResumeDocument) *Node {
	p := personal(doc)
	return document(
		region(RoleHeader,
			textNode(KindName, p.Name),
			contactLine(p),
		),
		region(RoleBody,
			summarySection(HeadingAbout, doc.Summary),
			experienceSection(doc.Experience, false),
			educationSection(doc.Education),
			skillsSection(KindInline, doc.Skills),
		),
	)
}
