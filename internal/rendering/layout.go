package rendering

import "github.com/jonathan/resume-studio/internal/types"

// Kind identifies the role of a layout node
type Kind string

// Node kinds
const (
	KindDocument Kind = "document"
	KindRegion   Kind = "region"   // Role names the region (sidebar, main, header, banner, body)
	KindName     Kind = "name"     // person's name heading
	KindHeadline Kind = "headline" // job title under the name
	KindSection  Kind = "section"  // Text is the section heading
	KindEntry    Kind = "entry"    // Text is the entry title
	KindSubtitle Kind = "subtitle"
	KindDates    Kind = "dates"
	KindText     Kind = "text"
	KindBullets  Kind = "bullets" // Items rendered as a bullet list
	KindTags     Kind = "tags"    // Items rendered as chips
	KindContact  Kind = "contact" // Items rendered one per line
	KindInline   Kind = "inline"  // Items rendered on one line
)

// Region roles
const (
	RoleSidebar = "sidebar"
	RoleMain    = "main"
	RoleHeader  = "header"
	RoleBanner  = "banner"
	RoleBody    = "body"
)

// Node is one element of a layout tree
type Node struct {
	Kind     Kind     `json:"kind"`
	Role     string   `json:"role,omitempty"`
	Text     string   `json:"text,omitempty"`
	Items    []string `json:"items,omitempty"`
	Centered bool     `json:"centered,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Layout is the rendered form of a document under one template
type Layout struct {
	Template types.TemplateName `json:"template"`
	Title    string             `json:"title"`
	Root     *Node              `json:"root"`
}

// Walk visits every node depth-first, in display order.
func (l *Layout) Walk(fn func(n *Node)) {
	if l == nil || l.Root == nil {
		return
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		fn(n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(l.Root)
}

// Sections returns the section headings in display order.
func (l *Layout) Sections() []string {
	var out []string
	l.Walk(func(n *Node) {
		if n.Kind == KindSection {
			out = append(out, n.Text)
		}
	})
	return out
}

// Section returns the first section with the given heading, or nil.
func (l *Layout) Section(heading string) *Node {
	var found *Node
	l.Walk(func(n *Node) {
		if found == nil && n.Kind == KindSection && n.Text == heading {
			found = n
		}
	})
	return found
}

// Region returns the first region with the given role, or nil.
func (l *Layout) Region(role string) *Node {
	var found *Node
	l.Walk(func(n *Node) {
		if found == nil && n.Kind == KindRegion && n.Role == role {
			found = n
		}
	})
	return found
}

// node builders; each returns nil for empty input so callers can pass results straight to compact

func region(role string, children ...*Node) *Node {
	children = compact(children)
	if len(children) == 0 {
		return nil
	}
	return &Node{Kind: KindRegion, Role: role, Children: children}
}

func section(heading string, children ...*Node) *Node {
	children = compact(children)
	if len(children) == 0 {
		return nil
	}
	return &Node{Kind: KindSection, Text: heading, Children: children}
}

func textNode(kind Kind, text string) *Node {
	text = cleanLine(text)
	if text == "" {
		return nil
	}
	return &Node{Kind: kind, Text: text}
}

func paragraph(text string) *Node {
	text = cleanBlock(text)
	if text == "" {
		return nil
	}
	return &Node{Kind: KindText, Text: text}
}

func itemsNode(kind Kind, items []string) *Node {
	var kept []string
	for _, it := range items {
		if it = cleanLine(it); it != "" {
			kept = append(kept, it)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &Node{Kind: kind, Items: kept}
}

func document(children ...*Node) *Node {
	return &Node{Kind: KindDocument, Children: compact(children)}
}

func compact(nodes []*Node) []*Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
