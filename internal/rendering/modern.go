package rendering

import "github.com/jonathan/resume-studio/internal/types"

// Modern is a two-region layout: a sidebar with the name, contact details and skills,
// and a main column with summary, experience and education.
type Modern struct{}

// Name implements Template.
func (Modern) Name() types.TemplateName { return types.TemplateModern }

// DisplayName implements Template.
func (Modern) DisplayName() string { return "Modern" }

// Description implements Template.
func (Modern) Description() string {
	return "Clean and contemporary design with a sidebar for skills and contact info."
}

// Layout implements Template.
func (Modern) Layout(doc *types.ResumeDocument) *Node {
	p := personal(doc)
	return document(
		region(RoleSidebar,
			centered(textNode(KindName, p.Name)),
			section(HeadingContact, labeledContact(p)),
			skillsSection(KindTags, doc.Skills),
		),
		region(RoleMain,
			summarySection(HeadingSummary, doc.Summary),
			experienceSection(doc.Experience, true),
			educationSection(doc.Education),
		),
	)
}

func centered(n *Node) *Node {
	if n != nil {
		n.Centered = true
	}
	return n
}
