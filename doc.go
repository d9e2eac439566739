// Package schemaorg models schema.org structured data as immutable typed
// entities and serializes them to JSON-LD, Microdata, and RDFa.
//
// The subpackages cover one concern each:
//
//   - schema: entity types, the immutable property bag, JSON parsing, and
//     identifier minting
//   - validation: the pluggable rule engine with the schema.org rule set
//   - render: the three serializers behind a shared Renderer contract
//   - jsonld: expansion, compaction, and normalization via json-gold
//   - builder: fluent, sanitizing constructors for common entity shapes
//
// This package ties them together behind a Marshaler:
//
//	article := schema.NewArticle().
//		With("headline", "Structured Data in Practice").
//		With("datePublished", "2025-01-15T09:30:00+00:00")
//
//	m := schemaorg.New(schemaorg.Strict())
//	out, err := m.ToJSONLD(article)
//
// Entities are copy-on-write: With returns a new entity and never mutates
// the receiver, so entities are safe to share across goroutines. Renderers
// and the Marshaler hold configuration as instance state; give each
// goroutine its own instance when configurations differ.
package schemaorg
