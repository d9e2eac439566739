package render

import "github.com/Togather-Foundation/schemaorg/schema"

// MicrodataRenderer serializes entities as HTML5 Microdata. Configuration
// setters return the receiver so they chain; the renderer itself is mutable
// and should not be reconfigured concurrently.
type MicrodataRenderer struct {
	opts markupOptions
}

// NewMicrodata returns a Microdata renderer with semantic and meta elements
// enabled, a div container, and compact output.
func NewMicrodata() *MicrodataRenderer {
	return &MicrodataRenderer{opts: defaultMarkupOptions()}
}

// Pretty toggles indented multi-line output.
func (r *MicrodataRenderer) Pretty(on bool) *MicrodataRenderer {
	r.opts.pretty = on
	return r
}

// Container sets the element used for entity scopes. Invalid element names
// fall back to div.
func (r *MicrodataRenderer) Container(element string) *MicrodataRenderer {
	r.opts.container = sanitizeElement(element)
	return r
}

// SemanticElements toggles property-aware elements (h1, p, a, img) in place
// of span.
func (r *MicrodataRenderer) SemanticElements(on bool) *MicrodataRenderer {
	r.opts.semantic = on
	return r
}

// MetaElements toggles meta tags for date and numeric properties.
func (r *MicrodataRenderer) MetaElements(on bool) *MicrodataRenderer {
	r.opts.meta = on
	return r
}

func (r *MicrodataRenderer) Format() Format { return FormatMicrodata }

func (r *MicrodataRenderer) MIMEType() string { return MIMEHTML }

// Render serializes the entity as Microdata markup.
func (r *MicrodataRenderer) Render(e *schema.Entity) (string, error) {
	return renderMarkup(e, microdataDialect, r.opts)
}
