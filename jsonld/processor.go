package jsonld

import (
	"errors"

	"github.com/piprate/json-gold/ld"

	"github.com/Togather-Foundation/schemaorg/schema"
)

var ErrInvalidFrame = errors.New("invalid JSON-LD frame")

// Processor runs standards-level JSON-LD algorithms over entity trees
// using an offline document loader.
type Processor struct {
	loader *OfflineLoader
}

// NewProcessor constructs a processor. A nil loader uses a fresh offline
// loader with the pinned schema.org context.
func NewProcessor(loader *OfflineLoader) *Processor {
	if loader == nil {
		loader = NewOfflineLoader()
	}
	return &Processor{loader: loader}
}

// Loader returns the processor's document loader so callers can register
// additional contexts.
func (p *Processor) Loader() *OfflineLoader { return p.loader }

func (p *Processor) options() *ld.JsonLdOptions {
	opts := ld.NewJsonLdOptions("")
	opts.DocumentLoader = p.loader
	opts.CompactArrays = true
	return opts
}

// Expand expands the entity to JSON-LD expanded form, with every property
// as an absolute IRI.
func (p *Processor) Expand(e *schema.Entity) ([]any, error) {
	if e == nil {
		return nil, ErrInvalidDocument
	}
	return p.ExpandDocument(e.Tree())
}

// ExpandDocument expands a raw JSON-LD document.
func (p *Processor) ExpandDocument(document any) ([]any, error) {
	processor := ld.NewJsonLdProcessor()
	return processor.Expand(document, p.options())
}

// Compact compacts a JSON-LD document against the pinned schema.org
// context, yielding the short property names entities use.
func (p *Processor) Compact(document any) (map[string]any, error) {
	processor := ld.NewJsonLdProcessor()

	result, err := processor.Compact(document, schema.Context, p.options())
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrInvalidDocument
	}
	return result, nil
}

// Normalize canonicalizes the entity with URDNA2015 and returns N-Quads.
// Output is deterministic, suitable for hashing and signatures.
func (p *Processor) Normalize(e *schema.Entity) (string, error) {
	if e == nil {
		return "", ErrInvalidDocument
	}

	opts := p.options()
	opts.Format = "application/n-quads"
	opts.Algorithm = ld.AlgorithmURDNA2015

	processor := ld.NewJsonLdProcessor()
	result, err := processor.Normalize(e.Tree(), opts)
	if err != nil {
		return "", err
	}

	quads, ok := result.(string)
	if !ok {
		return "", ErrInvalidDocument
	}
	return quads, nil
}

// Frame applies a JSON-LD frame to a document.
func (p *Processor) Frame(document any, frame map[string]any) (map[string]any, error) {
	if frame == nil {
		return nil, ErrInvalidFrame
	}

	opts := p.options()
	opts.Embed = "@always"
	opts.OmitGraph = true

	processor := ld.NewJsonLdProcessor()
	return processor.Frame(document, frame, opts)
}

// TypeFrame builds a frame that selects entities of one type.
func TypeFrame(typeName string) map[string]any {
	return map[string]any{
		"@context": schema.Context,
		"@type":    typeName,
	}
}
