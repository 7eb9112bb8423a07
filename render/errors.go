package render

import (
	"fmt"
	"strings"
)

// TemplateError reports a filename template that cannot be rendered for an episode.
type TemplateError struct {
	Template string
	// Field is the placeholder at fault, empty for syntax errors.
	Field  string
	Reason string
	// Suggestion is the closest documented field for an unknown one.
	Suggestion string
}

func (e *TemplateError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "template %q", e.Template)
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Suggestion != "" {
		fmt.Fprintf(&b, ", did you mean %q?", e.Suggestion)
	}
	return b.String()
}
