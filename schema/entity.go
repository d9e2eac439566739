package schema

import (
	"sort"
	"strings"
	"time"
)

const (
	// Context is the vocabulary URL emitted as @context on every root entity.
	Context = "https://schema.org"

	// TimeLayout is ISO-8601 with a numeric offset. UTC renders as +00:00,
	// never Z, so serialized output is stable across formats.
	TimeLayout = "2006-01-02T15:04:05-07:00"

	// maxNestingDepth bounds entity recursion during tree conversion and
	// rendering. The public API cannot build cycles (every With returns a
	// fresh copy), so a depth cap is enough to stop pathological nesting.
	maxNestingDepth = 32
)

// Entity is one Schema.org node: a type descriptor, a context URI, and a
// property bag.
//
// Entities are immutable. With and Without return new instances and never
// touch the receiver, so a constructed entity is safe to share across
// goroutines.
type Entity struct {
	typ   *Type
	ctx   string
	props map[string]any
}

// New returns an empty entity of the given type. A nil type falls back to
// Thing.
func New(t *Type) *Entity {
	if t == nil {
		t = Thing
	}
	return &Entity{typ: t, ctx: Context, props: map[string]any{}}
}

// NewWith returns an entity of the given type populated from props. The map
// is copied.
func NewWith(t *Type, props map[string]any) *Entity {
	e := New(t)
	for name, value := range props {
		e = e.With(name, value)
	}
	return e
}

// NewWithContext is NewWith for entities bound to a non-default vocabulary
// URI. The context is fixed at construction; an empty contextURI means the
// default.
func NewWithContext(t *Type, contextURI string, props map[string]any) *Entity {
	e := NewWith(t, props)
	if contextURI != "" {
		e.ctx = strings.TrimRight(contextURI, "/")
	}
	return e
}

// NewThing returns an empty Thing entity.
func NewThing() *Entity { return New(Thing) }

// NewArticle returns an empty Article entity.
func NewArticle() *Entity { return New(Article) }

// NewPerson returns an empty Person entity.
func NewPerson() *Entity { return New(Person) }

// NewOrganization returns an empty Organization entity.
func NewOrganization() *Entity { return New(Organization) }

// Type returns the entity's type descriptor.
func (e *Entity) Type() *Type { return e.typ }

// TypeName returns the Schema.org type name, e.g. "Article".
func (e *Entity) TypeName() string { return e.typ.Name }

// Context returns the vocabulary URI the entity was constructed with.
func (e *Entity) Context() string { return e.ctx }

// TypeURL returns the entity's full type IRI, e.g.
// "https://schema.org/Article".
func (e *Entity) TypeURL() string { return e.ctx + "/" + e.typ.Name }

// With returns a copy of the entity with the property set. Any value is
// accepted, nil included; nothing is validated here. An empty name returns
// the receiver unchanged.
func (e *Entity) With(name string, value any) *Entity {
	if name == "" {
		return e
	}
	next := e.clone()
	next.props[name] = copyValue(value)
	return next
}

// WithID returns a copy of the entity carrying uri as its @id. Renderers
// emit it as "@id" (JSON-LD), itemid (Microdata), and resource (RDFa).
func (e *Entity) WithID(uri string) *Entity {
	return e.With("@id", uri)
}

// Without returns a copy of the entity with the property removed. Removing
// an absent property returns the receiver unchanged.
func (e *Entity) Without(name string) *Entity {
	if _, ok := e.props[name]; !ok {
		return e
	}
	next := e.clone()
	delete(next.props, name)
	return next
}

// Get returns the property value and whether it is present.
func (e *Entity) Get(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

// GetString returns the property value when it is a string, else "".
func (e *Entity) GetString(name string) string {
	if s, ok := e.props[name].(string); ok {
		return s
	}
	return ""
}

// Has reports whether the property is present.
func (e *Entity) Has(name string) bool {
	_, ok := e.props[name]
	return ok
}

// ID returns the entity's @id URI, or "" when none is set.
func (e *Entity) ID() string { return e.GetString("@id") }

// Len returns the number of properties, @id included.
func (e *Entity) Len() int { return len(e.props) }

// Properties returns all property names in sorted order.
func (e *Entity) Properties() []string {
	names := make([]string, 0, len(e.props))
	for name := range e.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tree converts the entity to a JSON-ready map. The root carries @context
// and @type; nested entities carry only @type. time.Time values are
// formatted with TimeLayout.
func (e *Entity) Tree() map[string]any {
	tree := e.subtree(0)
	tree["@context"] = e.ctx
	return tree
}

func (e *Entity) subtree(depth int) map[string]any {
	tree := make(map[string]any, len(e.props)+2)
	tree["@type"] = e.typ.Name
	for name, value := range e.props {
		tree[name] = treeValue(value, depth)
	}
	return tree
}

func treeValue(value any, depth int) any {
	switch v := value.(type) {
	case *Entity:
		if depth+1 >= maxNestingDepth {
			return v.displayName()
		}
		return v.subtree(depth + 1)
	case time.Time:
		return FormatTime(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = treeValue(item, depth)
		}
		return out
	default:
		return value
	}
}

// displayName is the truncated stand-in for an entity past the depth cap.
func (e *Entity) displayName() string {
	if name := e.GetString("name"); name != "" {
		return name
	}
	if id := e.ID(); id != "" {
		return id
	}
	return e.typ.Name
}

func (e *Entity) clone() *Entity {
	props := make(map[string]any, len(e.props)+1)
	for name, value := range e.props {
		props[name] = value
	}
	return &Entity{typ: e.typ, ctx: e.ctx, props: props}
}

// copyValue detaches slice values so later caller mutations cannot reach
// into the entity.
func copyValue(value any) any {
	if s, ok := value.([]any); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = copyValue(item)
		}
		return out
	}
	return value
}

// FormatTime renders t with TimeLayout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
