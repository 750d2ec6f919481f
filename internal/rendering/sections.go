package rendering

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// Section headings shared by the templates
const (
	HeadingContact    = "Contact"
	HeadingSummary    = "Professional Summary"
	HeadingAbout      = "About"
	HeadingExperience = "Experience"
	HeadingEducation  = "Education"
	HeadingSkills     = "Skills"
)

func personal(doc *types.ResumeDocument) types.PersonalInfo {
	if doc.PersonalInfo == nil {
		return types.PersonalInfo{}
	}
	return *doc.PersonalInfo
}

// labeledContact lists contact fields as "Label: value" lines.
func labeledContact(p types.PersonalInfo) *Node {
	fields := []struct{ label, value string }{
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Location", p.Location},
		{"LinkedIn", p.LinkedIn},
		{"GitHub", p.GitHub},
		{"Website", p.Website},
	}
	var items []string
	for _, f := range fields {
		if v := cleanLine(f.value); v != "" {
			items = append(items, f.label+": "+v)
		}
	}
	return itemsNode(KindContact, items)
}

// contactLine lists contact values on one line.
func contactLine(p types.PersonalInfo) *Node {
	return itemsNode(KindInline, []string{p.Email, p.Phone, p.Location, p.LinkedIn, p.GitHub, p.Website})
}

func summarySection(heading, summary string) *Node {
	return section(heading, paragraph(summary))
}

func skillsSection(kind Kind, skills []string) *Node {
	return section(HeadingSkills, itemsNode(kind, skills))
}

func experienceSection(entries []types.ExperienceEntry, withResponsibilities bool) *Node {
	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		children := []*Node{
			textNode(KindSubtitle, joinNonEmpty(", ", e.Company, e.Location)),
			textNode(KindDates, dates(e.StartDate, e.EndDate, e.Current)),
		}
		if withResponsibilities {
			children = append(children, itemsNode(KindBullets, e.Responsibilities))
		}
		nodes = append(nodes, entry(e.Title, children...))
	}
	return section(HeadingExperience, nodes...)
}

func educationSection(entries []types.EducationEntry) *Node {
	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		heading := cleanLine(e.Degree)
		if field := cleanLine(e.FieldOfStudy); field != "" {
			heading = joinNonEmpty(" in ", heading, field)
		}
		nodes = append(nodes, entry(heading,
			textNode(KindSubtitle, joinNonEmpty(", ", e.Institution, e.Location)),
			textNode(KindDates, dates(e.StartDate, e.EndDate, e.Current)),
			paragraph(e.Description),
		))
	}
	return section(HeadingEducation, nodes...)
}

func entry(heading string, children ...*Node) *Node {
	heading = cleanLine(heading)
	children = compact(children)
	if heading == "" && len(children) == 0 {
		return nil
	}
	return &Node{Kind: KindEntry, Text: heading, Children: children}
}

// dates renders the range, or nothing when the entry carries no dates at all.
func dates(start, end string, current bool) string {
	start, end = cleanLine(start), cleanLine(end)
	if start == "" && end == "" && !current {
		return ""
	}
	return types.DateRange(start, end, current)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = cleanLine(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
