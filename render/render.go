// Package render serializes schema entities to JSON-LD, Microdata, and
// RDFa. Renderers are configured through chainable setters and hold their
// configuration as instance state; use one renderer per goroutine when
// configurations differ.
package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Togather-Foundation/schemaorg/schema"
)

var (
	ErrNilEntity      = errors.New("nil entity")
	ErrNilRenderer    = errors.New("nil renderer")
	ErrUnknownFormat  = errors.New("unknown output format")
	ErrNestingTooDeep = errors.New("entity nesting exceeds maximum depth")
)

// Format identifies an output serialization.
type Format string

const (
	FormatJSONLD    Format = "json-ld"
	FormatMicrodata Format = "microdata"
	FormatRDFa      Format = "rdfa"
)

// MIME types reported by the built-in renderers.
const (
	MIMEJSONLD = "application/ld+json"
	MIMEHTML   = "text/html"
)

// Renderer converts an entity to a specific output format.
type Renderer interface {
	// Render serializes the entity.
	Render(e *schema.Entity) (string, error)

	// Format returns the format identifier (e.g. FormatJSONLD).
	Format() Format

	// MIMEType returns the media type of Render's output.
	MIMEType() string
}

// ParseFormat resolves a user-supplied format name, accepting the common
// spelling variants used on the command line and in Accept headers.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json-ld", "jsonld", "json", "application/ld+json":
		return FormatJSONLD, nil
	case "microdata":
		return FormatMicrodata, nil
	case "rdfa":
		return FormatRDFa, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Registry manages renderers keyed by format.
type Registry struct {
	mu        sync.RWMutex
	renderers map[Format]Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[Format]Renderer)}
}

// DefaultRegistry returns a fresh registry populated with the three built-in
// renderers in their default configuration.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, renderer := range []Renderer{NewJSONLD(), NewMicrodata(), NewRDFa()} {
		if err := r.Register(renderer); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a renderer under its format.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return ErrNilRenderer
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	format := renderer.Format()
	if _, exists := r.renderers[format]; exists {
		return fmt.Errorf("renderer %q already registered", format)
	}
	r.renderers[format] = renderer
	return nil
}

// Get returns the renderer for a format.
func (r *Registry) Get(format Format) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[format]
	return renderer, ok
}

// Lookup resolves a format name and returns its renderer.
func (r *Registry) Lookup(name string) (Renderer, error) {
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	renderer, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: no renderer for %q", ErrUnknownFormat, format)
	}
	return renderer, nil
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.renderers))
	for format := range r.renderers {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
