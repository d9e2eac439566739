package schema

// Type describes one Schema.org type: its name, the properties an entity
// must carry to be valid, and the optional properties the type recognizes.
type Type struct {
	// Name is the Schema.org type name, e.g. "Article".
	Name string

	// Required lists properties that must be present and non-empty.
	Required []string

	// Optional lists recognized properties beyond the required set.
	Optional []string

	known map[string]bool
}

// NewType builds a type descriptor. Required and Optional are copied.
func NewType(name string, required, optional []string) *Type {
	t := &Type{
		Name:     name,
		Required: append([]string(nil), required...),
		Optional: append([]string(nil), optional...),
		known:    make(map[string]bool, len(required)+len(optional)),
	}
	for _, p := range t.Required {
		t.known[p] = true
	}
	for _, p := range t.Optional {
		t.known[p] = true
	}
	return t
}

// Recognizes reports whether the property is part of the type's vocabulary,
// required or optional. JSON-LD keywords (@id and friends) always pass.
func (t *Type) Recognizes(name string) bool {
	if len(name) > 0 && name[0] == '@' {
		return true
	}
	return t.known[name]
}

// IsRequired reports whether the property must be present.
func (t *Type) IsRequired(name string) bool {
	for _, p := range t.Required {
		if p == name {
			return true
		}
	}
	return false
}

// URL returns the canonical Schema.org URL for the type,
// e.g. "https://schema.org/Article".
func (t *Type) URL() string {
	return Context + "/" + t.Name
}

// Built-in types. Property vocabularies follow the Schema.org definitions
// for the subset this package ships; additional types register through
// RegisterType.
var (
	// Thing is the Schema.org base type. Nothing is required.
	Thing = NewType("Thing",
		nil,
		[]string{
			"name", "description", "url", "image", "identifier",
			"sameAs", "additionalType",
		},
	)

	// Article requires a headline.
	Article = NewType("Article",
		[]string{"headline"},
		[]string{
			"name", "description", "url", "image", "identifier",
			"sameAs", "additionalType",
			"alternativeHeadline", "articleBody", "keywords", "wordCount",
			"datePublished", "dateModified", "dateCreated",
			"author", "publisher", "mainEntityOfPage",
		},
	)

	// Person models an individual. Nothing is required.
	Person = NewType("Person",
		nil,
		[]string{
			"name", "description", "url", "image", "identifier",
			"sameAs", "additionalType",
			"givenName", "familyName", "email", "jobTitle", "worksFor",
		},
	)

	// Organization models a company or institution. Nothing is required.
	Organization = NewType("Organization",
		nil,
		[]string{
			"name", "description", "url", "image", "identifier",
			"sameAs", "additionalType",
			"legalName", "logo", "email", "telephone", "address",
			"founder", "foundingDate",
		},
	)
)
