package rendering

import "github.com/jonathan/resume-studio/internal/types"

// Classic is a single column under a centered header.
type Classic struct{}

// Name implements Template.
func (Classic) Name() types.TemplateName { return types.TemplateClassic }

// DisplayName implements Template.
func (Classic) DisplayName() string { return "Classic" }

// Description implements Template.
func (Classic) Description() string {
	return "Traditional resume layout with a professional and timeless feel."
}

// Layout implements Template.
func (Classic) Layout(doc *types.ResumeDocument) *Node {
	p := personal(doc)
	return document(
		region(RoleHeader,
			centered(textNode(KindName, p.Name)),
			centered(textNode(KindHeadline, p.JobTitle)),
			centered(contactLine(p)),
		),
		region(RoleBody,
			summarySection(HeadingSummary, doc.Summary),
			experienceSection(doc.Experience, true),
			educationSection(doc.Education),
			skillsSection(KindInline, doc.Skills),
		),
	)
}
