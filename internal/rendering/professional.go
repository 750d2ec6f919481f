package rendering

import "github.com/jonathan/resume-studio/internal/types"

// Professional opens with a banner carrying the name and job title, then lists contact,
// summary and skills ahead of the work history.
type Professional struct{}

// Name implements Template.
func (Professional) Name() types.TemplateName { return types.TemplateProfessional }

// DisplayName implements Template.
func (Professional) DisplayName() string { return "Professional" }

// Description implements Template.
func (Professional) Description() string {
	return "Structured layout with clear sections and a business-oriented style."
}

// Layout implements Template.
func (Professional) Layout(doc *types.ResumeDocument) *Node {
	p := personal(doc)
	return document(
		region(RoleBanner,
			textNode(KindName, p.Name),
			textNode(KindHeadline, p.JobTitle),
		),
		region(RoleBody,
			section(HeadingContact, labeledContact(p)),
			summarySection(HeadingSummary, doc.Summary),
			skillsSection(KindTags, doc.Skills),
			experienceSection(doc.Experience, true),
			educationSection(doc.Education),
		),
	)
}
