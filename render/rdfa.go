package render

import "github.com/Togather-Foundation/schemaorg/schema"

// RDFaRenderer serializes entities as RDFa Lite markup. Configuration
// setters return the receiver so they chain; the renderer itself is mutable
// and should not be reconfigured concurrently.
type RDFaRenderer struct {
	opts markupOptions
}

// NewRDFa returns an RDFa renderer with semantic and meta elements enabled,
// a div container, and compact output.
func NewRDFa() *RDFaRenderer {
	return &RDFaRenderer{opts: defaultMarkupOptions()}
}

// Pretty toggles indented multi-line output.
func (r *RDFaRenderer) Pretty(on bool) *RDFaRenderer {
	r.opts.pretty = on
	return r
}

// Container sets the element used for entity scopes and nesting wrappers.
// Invalid element names fall back to div.
func (r *RDFaRenderer) Container(element string) *RDFaRenderer {
	r.opts.container = sanitizeElement(element)
	return r
}

// SemanticElements toggles property-aware elements (h1, p, a, img) in place
// of span.
func (r *RDFaRenderer) SemanticElements(on bool) *RDFaRenderer {
	r.opts.semantic = on
	return r
}

// MetaElements toggles meta tags for date and numeric properties.
func (r *RDFaRenderer) MetaElements(on bool) *RDFaRenderer {
	r.opts.meta = on
	return r
}

func (r *RDFaRenderer) Format() Format { return FormatRDFa }

func (r *RDFaRenderer) MIMEType() string { return MIMEHTML }

// Render serializes the entity as RDFa markup.
func (r *RDFaRenderer) Render(e *schema.Entity) (string, error) {
	return renderMarkup(e, rdfaDialect, r.opts)
}
