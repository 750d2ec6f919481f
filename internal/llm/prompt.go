package llm

import (
	"fmt"
	"strings"
)

// Prompt describes a structured request: a task preamble, the JSON shape expected back
// and the labelled inputs to work on.
type Prompt struct {
	Task   string
	Fields []Field
	Rules  []string
	Inputs []Input
}

// Field is one key of the expected JSON answer
type Field struct {
	Name        string
	Type        string // Type hint rendered verbatim, e.g. `integer 0-100` or `["string"]`
	Description string
	Required    bool
}

// Input is a labelled block of source text
type Input struct {
	Label string
	Text  string
}

// String renders the prompt text sent to the model.
func (p Prompt) String() string {
	var sb strings.Builder

	sb.WriteString(strings.TrimSpace(p.Task))
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range p.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = `"string"`
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(p.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	for _, rule := range p.Rules {
		sb.WriteString("- " + rule + "\n")
	}
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")

	for _, in := range p.Inputs {
		if strings.TrimSpace(in.Text) == "" {
			continue
		}
		sb.WriteString("\n" + in.Label + ":\n\"\"\"\n")
		sb.WriteString(in.Text)
		sb.WriteString("\n\"\"\"\n")
	}

	return sb.String()
}
