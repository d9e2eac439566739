package schemaorg

import (
	"fmt"

	"github.com/Togather-Foundation/schemaorg/render"
	"github.com/Togather-Foundation/schemaorg/schema"
	"github.com/Togather-Foundation/schemaorg/validation"
)

// Marshaler renders entities through a renderer registry, optionally gating
// output on validation.
type Marshaler struct {
	registry *render.Registry
	engine   *validation.Engine
	strict   bool
}

// Option configures a Marshaler.
type Option func(*Marshaler)

// WithEngine replaces the default validation rule set.
func WithEngine(engine *validation.Engine) Option {
	return func(m *Marshaler) {
		if engine != nil {
			m.engine = engine
		}
	}
}

// WithRegistry replaces the default renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(m *Marshaler) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// Strict makes every Marshal call validate first and fail with a
// *validation.InvalidEntityError when the entity has validation errors.
// Warnings never block output.
func Strict() Option {
	return func(m *Marshaler) { m.strict = true }
}

// New constructs a Marshaler with the built-in renderers and rules.
func New(opts ...Option) *Marshaler {
	m := &Marshaler{
		registry: render.DefaultRegistry(),
		engine:   validation.DefaultEngine(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Marshal renders the entity in the given format.
func (m *Marshaler) Marshal(e *schema.Entity, format render.Format) (string, error) {
	renderer, ok := m.registry.Get(format)
	if !ok {
		return "", fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
	}
	if m.strict {
		if err := m.engine.Validate(e).Err(); err != nil {
			return "", err
		}
	}
	return renderer.Render(e)
}

// ToJSONLD renders the entity as JSON-LD.
func (m *Marshaler) ToJSONLD(e *schema.Entity) (string, error) {
	return m.Marshal(e, render.FormatJSONLD)
}

// ToMicrodata renders the entity as HTML5 Microdata.
func (m *Marshaler) ToMicrodata(e *schema.Entity) (string, error) {
	return m.Marshal(e, render.FormatMicrodata)
}

// ToRDFa renders the entity as RDFa Lite.
func (m *Marshaler) ToRDFa(e *schema.Entity) (string, error) {
	return m.Marshal(e, render.FormatRDFa)
}

// Validate runs the marshaler's rule set against the entity.
func (m *Marshaler) Validate(e *schema.Entity) validation.Result {
	return m.engine.Validate(e)
}

// ToJSONLD renders an entity as JSON-LD with default settings.
func ToJSONLD(e *schema.Entity) (string, error) {
	return render.NewJSONLD().Render(e)
}

// ToMicrodata renders an entity as Microdata with default settings.
func ToMicrodata(e *schema.Entity) (string, error) {
	return render.NewMicrodata().Render(e)
}

// ToRDFa renders an entity as RDFa with default settings.
func ToRDFa(e *schema.Entity) (string, error) {
	return render.NewRDFa().Render(e)
}

// Validate runs the default rule set against the entity.
func Validate(e *schema.Entity) validation.Result {
	return validation.DefaultEngine().Validate(e)
}
