// Package render turns filename templates and episode records into destination paths.
//
// Templates use a small placeholder syntax: {field} or {field:spec}, where
// spec is an optional '0' flag, an optional width and an optional verb, d
// for integers and s for strings. Dates also accept a strftime layout such
// as {airdate:%Y}. {{ and }} stand for literal braces.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ncruces/go-strftime"
)

// maxWidth caps padding at the longest file name most filesystems accept.
const maxWidth = 255

type directive struct {
	zero  bool
	width int
	verb  byte
	// layout is a strftime layout, set only for date directives.
	layout string
}

type segment struct {
	literal string
	field   string
	dir     directive
}

func (s segment) isField() bool {
	return s.field != ""
}

// Template is a parsed filename template.
type Template struct {
	raw      string
	segments []segment
}

// Parse checks the syntax of raw and that every placeholder is documented.
func Parse(raw string) (*Template, error) {
	var (
		segments []segment
		lit      strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); {
		switch c := raw[i]; c {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				lit.WriteByte('{')
				i += 2
				continue
			}

			end := strings.IndexByte(raw[i+1:], '}')
			if end < 0 {
				return nil, &TemplateError{Template: raw, Reason: "unclosed '{'"}
			}

			seg, err := parsePlaceholder(raw, raw[i+1:i+1+end])
			if err != nil {
				return nil, err
			}

			flush()
			segments = append(segments, seg)
			i += end + 2
		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				lit.WriteByte('}')
				i += 2
				continue
			}
			return nil, &TemplateError{Template: raw, Reason: "single '}' encountered"}
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	return &Template{raw: raw, segments: segments}, nil
}

func parsePlaceholder(raw, body string) (segment, error) {
	name, spec, _ := strings.Cut(body, ":")

	if !validName(name) {
		return segment{}, &TemplateError{Template: raw, Field: name, Reason: "invalid field name"}
	}
	if !IsDocumented(name) {
		return segment{}, &TemplateError{Template: raw, Field: name, Reason: "unknown field", Suggestion: closestField(name)}
	}

	dir, ok := parseDirective(spec)
	if !ok {
		return segment{}, &TemplateError{Template: raw, Field: name, Reason: fmt.Sprintf("invalid format directive %q", spec)}
	}

	return segment{field: name, dir: dir}, nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func parseDirective(spec string) (directive, bool) {
	var d directive

	if strings.Contains(spec, "%") {
		d.layout = spec
		return d, true
	}

	if strings.HasPrefix(spec, "0") {
		d.zero = true
		spec = spec[1:]
	}

	digits := 0
	for digits < len(spec) && spec[digits] >= '0' && spec[digits] <= '9' {
		digits++
	}
	if digits > 0 {
		width, err := strconv.Atoi(spec[:digits])
		if err != nil || width > maxWidth {
			return directive{}, false
		}
		d.width = width
		spec = spec[digits:]
	}

	switch spec {
	case "":
	case "d", "s":
		d.verb = spec[0]
	default:
		return directive{}, false
	}
	return d, true
}

// Fields lists the placeholders the template references, in order of appearance.
func (t *Template) Fields() []string {
	var names []string
	for _, s := range t.segments {
		if s.isField() {
			names = append(names, s.field)
		}
	}
	return names
}

// String returns the template source.
func (t *Template) String() string {
	return t.raw
}

// Execute substitutes fields into the template.
func (t *Template) Execute(fields Fields) (string, error) {
	var b strings.Builder

	for _, s := range t.segments {
		if !s.isField() {
			b.WriteString(s.literal)
			continue
		}

		value, ok := fields[s.field]
		if !ok {
			return "", &TemplateError{Template: t.raw, Field: s.field, Reason: "no value for this episode"}
		}

		formatted, err := s.dir.format(value)
		if err != nil {
			return "", &TemplateError{Template: t.raw, Field: s.field, Reason: err.Error()}
		}
		b.WriteString(formatted)
	}

	return b.String(), nil
}

func (d directive) format(value any) (string, error) {
	if d.layout != "" {
		t, ok := value.(time.Time)
		if !ok {
			return "", fmt.Errorf("date layout %q is only valid for a date", d.layout)
		}
		return pathSafe(strftime.Format(d.layout, t)), nil
	}

	switch v := value.(type) {
	case time.Time:
		if d.verb == 'd' || d.zero {
			return "", fmt.Errorf("only width and 's' are valid for a date without a layout")
		}
		return pad(v.Format(time.DateOnly), d.width, false), nil
	case int:
		if d.verb == 's' {
			return "", fmt.Errorf("format code 's' is not valid for an integer")
		}
		s := strconv.Itoa(v)
		if d.zero {
			return zeroPad(s, d.width), nil
		}
		return pad(s, d.width, true), nil
	case string:
		if d.verb == 'd' {
			return "", fmt.Errorf("format code 'd' is not valid for a string")
		}
		if d.zero {
			return "", fmt.Errorf("zero padding is not valid for a string")
		}
		return pad(v, d.width, false), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", value)
	}
}

func pad(s string, width int, right bool) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

func zeroPad(s string, width int) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
		width--
	}
	if n := width - len(s); n > 0 {
		s = strings.Repeat("0", n) + s
	}
	return sign + s
}
