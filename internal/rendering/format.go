package rendering

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/layout.html
var templateFS embed.FS

var htmlTemplate = template.Must(template.ParseFS(templateFS, "templates/layout.html"))

// FormatHTML renders the layout as a standalone HTML page. All text is escaped.
func FormatHTML(l *Layout) (string, error) {
	if l == nil || l.Root == nil {
		return "", &RenderError{Message: "layout is empty"}
	}
	var b strings.Builder
	if err := htmlTemplate.ExecuteTemplate(&b, "layout", l); err != nil {
		return "", &TemplateError{Message: "failed to execute html template", Cause: err}
	}
	return b.String(), nil
}

// FormatText renders the layout as a plain-text preview.
func FormatText(l *Layout) string {
	if l == nil || l.Root == nil {
		return ""
	}
	var b strings.Builder
	writeText(&b, l.Root)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeText(b *strings.Builder, n *Node) {
	switch n.Kind {
	case KindName:
		b.WriteString(strings.ToUpper(n.Text) + "\n")
	case KindHeadline, KindSubtitle, KindDates:
		b.WriteString(n.Text + "\n")
	case KindText:
		b.WriteString(n.Text + "\n")
	case KindSection:
		b.WriteString("\n" + n.Text + "\n" + strings.Repeat("-", len([]rune(n.Text))) + "\n")
	case KindEntry:
		if n.Text != "" {
			b.WriteString(n.Text + "\n")
		}
	case KindBullets:
		for _, it := range n.Items {
			b.WriteString("  * " + it + "\n")
		}
	case KindTags:
		b.WriteString(strings.Join(n.Items, ", ") + "\n")
	case KindContact:
		for _, it := range n.Items {
			b.WriteString(it + "\n")
		}
	case KindInline:
		b.WriteString(strings.Join(n.Items, " | ") + "\n")
	}

	for _, c := range n.Children {
		writeText(b, c)
	}

	switch n.Kind {
	case KindEntry:
		b.WriteString("\n")
	case KindRegion:
		if n.Role == RoleHeader || n.Role == RoleBanner || n.Role == RoleSidebar {
			b.WriteString("\n")
		}
	}
}
