// Package builder provides fluent constructors for common entity shapes.
// Text inputs are sanitized before they are stored and inputs that
// sanitize to nothing are skipped, so builder output is safe to render.
// Build returns every collected error at once.
package builder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Togather-Foundation/schemaorg/internal/sanitize"
	"github.com/Togather-Foundation/schemaorg/schema"
)

func cleanText(s string) string {
	return strings.TrimSpace(sanitize.Text(s))
}

func cleanKeywords(words []string) []any {
	cleaned := make([]any, 0, len(words))
	for _, w := range sanitize.TextSlice(words) {
		if w = strings.TrimSpace(w); w != "" {
			cleaned = append(cleaned, w)
		}
	}
	return cleaned
}

// Article builds Article entities.
type Article struct {
	entity *schema.Entity
	errs   []error
}

// NewArticle starts an Article builder.
func NewArticle() *Article {
	return &Article{entity: schema.NewArticle()}
}

func (b *Article) text(name, raw string) *Article {
	if text := cleanText(raw); text != "" {
		b.entity = b.entity.With(name, text)
	}
	return b
}

// Headline sets the required headline.
func (b *Article) Headline(s string) *Article { return b.text("headline", s) }

// AlternativeHeadline sets a secondary headline.
func (b *Article) AlternativeHeadline(s string) *Article {
	return b.text("alternativeHeadline", s)
}

// Description sets the plain-text summary.
func (b *Article) Description(s string) *Article { return b.text("description", s) }

// Body sets articleBody, keeping safe formatting tags.
func (b *Article) Body(html string) *Article {
	if body := strings.TrimSpace(sanitize.HTML(html)); body != "" {
		b.entity = b.entity.With("articleBody", body)
	}
	return b
}

// Author sets the author to a Person with the given name.
func (b *Article) Author(name string) *Article {
	if text := cleanText(name); text != "" {
		b.entity = b.entity.With("author", schema.NewPerson().With("name", text))
	}
	return b
}

// AuthorEntity sets a fully built author entity.
func (b *Article) AuthorEntity(author *schema.Entity) *Article {
	if author != nil {
		b.entity = b.entity.With("author", author)
	}
	return b
}

// Publisher sets the publisher to an Organization with the given name.
func (b *Article) Publisher(name string) *Article {
	if text := cleanText(name); text != "" {
		b.entity = b.entity.With("publisher", schema.NewOrganization().With("name", text))
	}
	return b
}

// Published sets datePublished.
func (b *Article) Published(t time.Time) *Article {
	b.entity = b.entity.With("datePublished", t)
	return b
}

// PublishedText parses a human-readable publication date.
func (b *Article) PublishedText(s string) *Article {
	t, err := ParseDate(s)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("datePublished: %w", err))
		return b
	}
	return b.Published(t)
}

// Modified sets dateModified.
func (b *Article) Modified(t time.Time) *Article {
	b.entity = b.entity.With("dateModified", t)
	return b
}

// URL sets the canonical URL.
func (b *Article) URL(s string) *Article {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("url", s)
	}
	return b
}

// Image sets the image URL.
func (b *Article) Image(s string) *Article {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("image", s)
	}
	return b
}

// Keywords sets the keyword list, dropping entries that sanitize away.
func (b *Article) Keywords(words ...string) *Article {
	if cleaned := cleanKeywords(words); len(cleaned) > 0 {
		b.entity = b.entity.With("keywords", cleaned)
	}
	return b
}

// WordCount sets wordCount.
func (b *Article) WordCount(n int) *Article {
	b.entity = b.entity.With("wordCount", n)
	return b
}

// ID sets the entity identifier.
func (b *Article) ID(uri string) *Article {
	b.entity = b.entity.WithID(uri)
	return b
}

// Property sets an arbitrary property without sanitization.
func (b *Article) Property(name string, value any) *Article {
	b.entity = b.entity.With(name, value)
	return b
}

// Build returns the entity, or every error collected while building.
func (b *Article) Build() (*schema.Entity, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return b.entity, nil
}

// Person builds Person entities.
type Person struct {
	entity *schema.Entity
}

// NewPerson starts a Person builder.
func NewPerson() *Person {
	return &Person{entity: schema.NewPerson()}
}

func (b *Person) text(name, raw string) *Person {
	if text := cleanText(raw); text != "" {
		b.entity = b.entity.With(name, text)
	}
	return b
}

// Name sets the full name.
func (b *Person) Name(s string) *Person { return b.text("name", s) }

// GivenName sets the given name.
func (b *Person) GivenName(s string) *Person { return b.text("givenName", s) }

// FamilyName sets the family name.
func (b *Person) FamilyName(s string) *Person { return b.text("familyName", s) }

// JobTitle sets the job title.
func (b *Person) JobTitle(s string) *Person { return b.text("jobTitle", s) }

// Email sets the email address.
func (b *Person) Email(s string) *Person {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("email", s)
	}
	return b
}

// URL sets the profile URL.
func (b *Person) URL(s string) *Person {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("url", s)
	}
	return b
}

// WorksFor sets the employing organization.
func (b *Person) WorksFor(org *schema.Entity) *Person {
	if org != nil {
		b.entity = b.entity.With("worksFor", org)
	}
	return b
}

// SameAs sets reference URLs (Wikipedia, social profiles).
func (b *Person) SameAs(urls ...string) *Person {
	links := make([]any, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			links = append(links, u)
		}
	}
	if len(links) > 0 {
		b.entity = b.entity.With("sameAs", links)
	}
	return b
}

// ID sets the entity identifier.
func (b *Person) ID(uri string) *Person {
	b.entity = b.entity.WithID(uri)
	return b
}

// Property sets an arbitrary property without sanitization.
func (b *Person) Property(name string, value any) *Person {
	b.entity = b.entity.With(name, value)
	return b
}

// Build returns the entity.
func (b *Person) Build() *schema.Entity { return b.entity }

// Organization builds Organization entities.
type Organization struct {
	entity *schema.Entity
	errs   []error
}

// NewOrganization starts an Organization builder.
func NewOrganization() *Organization {
	return &Organization{entity: schema.NewOrganization()}
}

func (b *Organization) text(name, raw string) *Organization {
	if text := cleanText(raw); text != "" {
		b.entity = b.entity.With(name, text)
	}
	return b
}

// Name sets the common name.
func (b *Organization) Name(s string) *Organization { return b.text("name", s) }

// LegalName sets the registered legal name.
func (b *Organization) LegalName(s string) *Organization { return b.text("legalName", s) }

// Description sets the plain-text description.
func (b *Organization) Description(s string) *Organization { return b.text("description", s) }

// Address sets the postal address as text.
func (b *Organization) Address(s string) *Organization { return b.text("address", s) }

// Email sets the contact email address.
func (b *Organization) Email(s string) *Organization {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("email", s)
	}
	return b
}

// Telephone sets the contact telephone number.
func (b *Organization) Telephone(s string) *Organization {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("telephone", s)
	}
	return b
}

// URL sets the website URL.
func (b *Organization) URL(s string) *Organization {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("url", s)
	}
	return b
}

// Logo sets the logo URL.
func (b *Organization) Logo(s string) *Organization {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("logo", s)
	}
	return b
}

// Founded sets foundingDate.
func (b *Organization) Founded(t time.Time) *Organization {
	b.entity = b.entity.With("foundingDate", t)
	return b
}

// FoundedText parses a human-readable founding date.
func (b *Organization) FoundedText(s string) *Organization {
	t, err := ParseDate(s)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("foundingDate: %w", err))
		return b
	}
	return b.Founded(t)
}

// Founder sets the founding person.
func (b *Organization) Founder(person *schema.Entity) *Organization {
	if person != nil {
		b.entity = b.entity.With("founder", person)
	}
	return b
}

// SameAs sets reference URLs.
func (b *Organization) SameAs(urls ...string) *Organization {
	links := make([]any, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			links = append(links, u)
		}
	}
	if len(links) > 0 {
		b.entity = b.entity.With("sameAs", links)
	}
	return b
}

// ID sets the entity identifier.
func (b *Organization) ID(uri string) *Organization {
	b.entity = b.entity.WithID(uri)
	return b
}

// Property sets an arbitrary property without sanitization.
func (b *Organization) Property(name string, value any) *Organization {
	b.entity = b.entity.With(name, value)
	return b
}

// Build returns the entity, or every error collected while building.
func (b *Organization) Build() (*schema.Entity, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return b.entity, nil
}

// Thing builds generic Thing entities.
type Thing struct {
	entity *schema.Entity
}

// NewThing starts a Thing builder.
func NewThing() *Thing {
	return &Thing{entity: schema.NewThing()}
}

// Name sets the name.
func (b *Thing) Name(s string) *Thing {
	if text := cleanText(s); text != "" {
		b.entity = b.entity.With("name", text)
	}
	return b
}

// Description sets the plain-text description.
func (b *Thing) Description(s string) *Thing {
	if text := cleanText(s); text != "" {
		b.entity = b.entity.With("description", text)
	}
	return b
}

// URL sets the canonical URL.
func (b *Thing) URL(s string) *Thing {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("url", s)
	}
	return b
}

// Image sets the image URL.
func (b *Thing) Image(s string) *Thing {
	if s = strings.TrimSpace(s); s != "" {
		b.entity = b.entity.With("image", s)
	}
	return b
}

// ID sets the entity identifier.
func (b *Thing) ID(uri string) *Thing {
	b.entity = b.entity.WithID(uri)
	return b
}

// Property sets an arbitrary property without sanitization.
func (b *Thing) Property(name string, value any) *Thing {
	b.entity = b.entity.With(name, value)
	return b
}

// Build returns the entity.
func (b *Thing) Build() *schema.Entity { return b.entity }
