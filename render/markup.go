package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Togather-Foundation/schemaorg/schema"
)

// maxDepth bounds entity recursion so pathological graphs fail cleanly
// instead of overflowing the stack.
const maxDepth = 32

// semanticElements maps property names to the HTML elements used when
// semantic output is enabled. Properties not listed render as span.
var semanticElements = map[string]string{
	"headline":            "h1",
	"name":                "h1",
	"alternativeHeadline": "h2",
	"description":         "p",
	"articleBody":         "div",
	"url":                 "a",
	"image":               "img",
}

// typeElements maps entity types to their semantic container element.
var typeElements = map[string]string{
	"Article": "article",
}

// metaProperties render as <meta content="..."> instead of visible elements
// when meta output is enabled.
var metaProperties = map[string]bool{
	"datePublished": true,
	"dateModified":  true,
	"dateCreated":   true,
	"wordCount":     true,
	"identifier":    true,
}

var elementPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// sanitizeElement lowercases a container element name, falling back to div
// when the name is not a plain HTML element name.
func sanitizeElement(name string) string {
	name = strings.TrimSpace(name)
	if !elementPattern.MatchString(name) {
		return "div"
	}
	return strings.ToLower(name)
}

// escapeHTML escapes the characters that matter in text and double-quoted
// attribute positions.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// formatValue renders a scalar property value as text. Times use the same
// ISO-8601 layout as the JSON-LD tree.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		return schema.FormatTime(v)
	default:
		return fmt.Sprint(v)
	}
}

// dialect captures what differs between Microdata and RDFa output.
type dialect struct {
	format   Format
	propAttr string

	// rootAttrs renders the attributes that mark an element as an entity
	// scope of the given type.
	rootAttrs func(e *schema.Entity) string
}

var microdataDialect = dialect{
	format:   FormatMicrodata,
	propAttr: "itemprop",
	rootAttrs: func(e *schema.Entity) string {
		attrs := fmt.Sprintf(`itemscope itemtype="%s"`, escapeHTML(e.TypeURL()))
		if id := e.ID(); id != "" {
			attrs += fmt.Sprintf(` itemid="%s"`, escapeHTML(id))
		}
		return attrs
	},
}

var rdfaDialect = dialect{
	format:   FormatRDFa,
	propAttr: "property",
	rootAttrs: func(e *schema.Entity) string {
		attrs := fmt.Sprintf(`vocab="%s/" typeof="%s"`,
			escapeHTML(e.Context()), escapeHTML(e.TypeName()))
		if id := e.ID(); id != "" {
			attrs += fmt.Sprintf(` resource="%s"`, escapeHTML(id))
		}
		return attrs
	},
}

// markupOptions is the shared configuration of the two markup renderers.
type markupOptions struct {
	pretty    bool
	container string
	semantic  bool
	meta      bool
}

func defaultMarkupOptions() markupOptions {
	return markupOptions{container: "div", semantic: true, meta: true}
}

// markupWriter accumulates output, one element per line in pretty mode.
type markupWriter struct {
	b      strings.Builder
	pretty bool
}

func (w *markupWriter) line(depth int, s string) {
	if w.pretty {
		if w.b.Len() > 0 {
			w.b.WriteByte('\n')
		}
		for i := 0; i < depth; i++ {
			w.b.WriteString("  ")
		}
	}
	w.b.WriteString(s)
}

func renderMarkup(e *schema.Entity, d dialect, opts markupOptions) (string, error) {
	if e == nil {
		return "", ErrNilEntity
	}
	w := &markupWriter{pretty: opts.pretty}
	if err := writeEntity(w, d, opts, e, "", 0, 0); err != nil {
		return "", err
	}
	return w.b.String(), nil
}

// writeEntity emits one entity scope. propAttr, when non-empty, is folded
// onto the opening tag (Microdata nesting). level counts entity nesting for
// the depth guard; depth is the indentation level.
func writeEntity(w *markupWriter, d dialect, opts markupOptions, e *schema.Entity, propAttr string, level, depth int) error {
	if level > maxDepth {
		return ErrNestingTooDeep
	}

	element := opts.container
	if opts.semantic {
		if el, ok := typeElements[e.TypeName()]; ok {
			element = el
		}
	}

	open := "<" + element
	if propAttr != "" {
		open += " " + propAttr
	}
	open += " " + d.rootAttrs(e) + ">"
	w.line(depth, open)

	for _, name := range e.Properties() {
		// JSON-LD keywords are carried as root attributes, not children.
		if strings.HasPrefix(name, "@") {
			continue
		}
		value, _ := e.Get(name)
		if err := writeProperty(w, d, opts, name, value, level, depth+1); err != nil {
			return err
		}
	}

	w.line(depth, "</"+element+">")
	return nil
}

func writeProperty(w *markupWriter, d dialect, opts markupOptions, name string, value any, level, depth int) error {
	switch v := value.(type) {
	case nil:
		// Nulls have no markup representation.
		return nil

	case []any:
		// Sequences become sibling elements sharing the property name.
		for _, item := range v {
			if err := writeProperty(w, d, opts, name, item, level, depth); err != nil {
				return err
			}
		}
		return nil

	case *schema.Entity:
		if v == nil {
			return nil
		}
		return writeNested(w, d, opts, name, v, level, depth)

	case map[string]any:
		blob, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		w.line(depth, leafElement(d, opts, name, string(blob)))
		return nil

	default:
		if opts.meta && metaProperties[name] {
			w.line(depth, fmt.Sprintf(`<meta %s="%s" content="%s">`,
				d.propAttr, escapeHTML(name), escapeHTML(formatValue(value))))
			return nil
		}
		w.line(depth, leafElement(d, opts, name, formatValue(value)))
		return nil
	}
}

func writeNested(w *markupWriter, d dialect, opts markupOptions, name string, e *schema.Entity, level, depth int) error {
	attr := fmt.Sprintf(`%s="%s"`, d.propAttr, escapeHTML(name))

	if d.format == FormatMicrodata {
		// Microdata folds the property attribute onto the nested scope.
		return writeEntity(w, d, opts, e, attr, level+1, depth)
	}

	// RDFa keeps the property and the nested vocabulary scope on separate
	// elements.
	w.line(depth, fmt.Sprintf("<%s %s>", opts.container, attr))
	if err := writeEntity(w, d, opts, e, "", level+1, depth+1); err != nil {
		return err
	}
	w.line(depth, fmt.Sprintf("</%s>", opts.container))
	return nil
}

func leafElement(d dialect, opts markupOptions, name, text string) string {
	element := "span"
	if opts.semantic {
		if el, ok := semanticElements[name]; ok {
			element = el
		}
	}

	attr := fmt.Sprintf(`%s="%s"`, d.propAttr, escapeHTML(name))
	escaped := escapeHTML(text)

	switch element {
	case "a":
		return fmt.Sprintf(`<a %s href="%s">%s</a>`, attr, escaped, escaped)
	case "img":
		return fmt.Sprintf(`<img %s src="%s">`, attr, escaped)
	default:
		return fmt.Sprintf(`<%s %s>%s</%s>`, element, attr, escaped, element)
	}
}
