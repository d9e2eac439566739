package render

import (
	"github.com/Togather-Foundation/schemaorg/schema"
	"github.com/Togather-Foundation/schemaorg/validation"
)

// StrictRenderer gates another renderer behind validation. Render fails
// with a *validation.InvalidEntityError carrying the full result when the
// entity has validation errors; warnings alone do not block output.
type StrictRenderer struct {
	renderer Renderer
	engine   *validation.Engine
}

// Strict wraps a renderer with a validation gate. A nil engine uses the
// default rule set.
func Strict(renderer Renderer, engine *validation.Engine) *StrictRenderer {
	if engine == nil {
		engine = validation.DefaultEngine()
	}
	return &StrictRenderer{renderer: renderer, engine: engine}
}

func (s *StrictRenderer) Format() Format { return s.renderer.Format() }

func (s *StrictRenderer) MIMEType() string { return s.renderer.MIMEType() }

// Render validates the entity and then delegates to the wrapped renderer.
func (s *StrictRenderer) Render(e *schema.Entity) (string, error) {
	if e == nil {
		return "", ErrNilEntity
	}
	if err := s.engine.Validate(e).Err(); err != nil {
		return "", err
	}
	return s.renderer.Render(e)
}
