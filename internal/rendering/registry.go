package rendering

import (
	"sync"

	"github.com/jonathan/resume-studio/internal/types"
)

// Template is one independent layout algorithm
type Template interface {
	// Name is the key stored in a document's template field.
	Name() types.TemplateName
	// DisplayName is the human label shown in the template picker.
	DisplayName() string
	// Description is a one-line summary of the look.
	Description() string
	// Layout projects doc onto a layout tree. doc is never nil.
	Layout(doc *types.ResumeDocument) *Node
}

// Registry maps template names to implementations
type Registry struct {
	mu        sync.RWMutex
	templates map[types.TemplateName]Template
	order     []types.TemplateName
	fallback  types.TemplateName
}

// NewRegistry returns an empty registry falling back to the default template.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[types.TemplateName]Template),
		fallback:  types.DefaultTemplate,
	}
}

// NewDefaultRegistry returns a registry holding the built-in templates.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range []Template{Modern{}, Classic{}, Minimal{}, Professional{}} {
		// Built-in names are distinct.
		_ = r.Register(t)
	}
	return r
}

var defaultRegistry = NewDefaultRegistry()

// Default returns the process-wide registry of built-in templates.
func Default() *Registry {
	return defaultRegistry
}

// Register adds t. Registering a name twice returns *DuplicateTemplateError.
func (r *Registry) Register(t Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, ok := r.templates[name]; ok {
		return &DuplicateTemplateError{Name: name}
	}
	r.templates[name] = t
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the template registered under name.
func (r *Registry) Lookup(name types.TemplateName) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	return t, ok
}

// Resolve returns the template for name, or the fallback template when name is unknown.
func (r *Registry) Resolve(name types.TemplateName) (Template, error) {
	if t, ok := r.Lookup(name.OrDefault()); ok {
		return t, nil
	}
	if t, ok := r.Lookup(r.fallback); ok {
		return t, nil
	}
	return nil, &TemplateError{Message: "no template registered for " + string(name) + " and no fallback"}
}

// Templates returns the registered templates in registration order.
func (r *Registry) Templates() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.templates[name])
	}
	return out
}

// Render projects doc through the template named variant.
func (r *Registry) Render(doc *types.ResumeDocument, variant types.TemplateName) (*Layout, error) {
	if doc == nil {
		return nil, &RenderError{Message: "document is nil"}
	}
	t, err := r.Resolve(variant)
	if err != nil {
		return nil, err
	}
	return &Layout{
		Template: t.Name(),
		Title:    title(doc),
		Root:     t.Layout(doc),
	}, nil
}

// Render projects doc through the built-in template named variant.
func Render(doc *types.ResumeDocument, variant types.TemplateName) (*Layout, error) {
	return defaultRegistry.Render(doc, variant)
}

func title(doc *types.ResumeDocument) string {
	if doc.PersonalInfo != nil {
		if name := cleanLine(doc.PersonalInfo.Name); name != "" {
			return name
		}
	}
	if name := cleanLine(doc.Name); name != "" {
		return name
	}
	return "Resume"
}
