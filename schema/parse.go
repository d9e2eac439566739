package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDocument = errors.New("invalid schema.org document")
	ErrMissingType     = errors.New("document has no @type")
)

// ParseDocument converts one JSON-LD object into an entity, resolving @type
// through DefaultTypes. It accepts the shapes found in markup in the wild:
//   - @context present or absent (accepted but ignored)
//   - @type as a string or an array of strings (first entry wins),
//     bare ("Article") or prefixed ("https://schema.org/Article")
//   - nested objects with @type become nested entities
//   - nested objects without @type stay plain maps
//   - single values or arrays for any property
func ParseDocument(data []byte) (*Entity, error) {
	return DefaultTypes.ParseDocument(data)
}

// ParseAll parses a JSON-LD object or a top-level array of objects.
func ParseAll(data []byte) ([]*Entity, error) {
	return DefaultTypes.ParseAll(data)
}

// ParseDocument converts one JSON-LD object into an entity resolved against
// this registry.
func (r *TypeRegistry) ParseDocument(data []byte) (*Entity, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return r.entityFromMap(raw, 0)
}

// ParseAll parses a JSON-LD object or a top-level array of objects against
// this registry.
func (r *TypeRegistry) ParseAll(data []byte) ([]*Entity, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrInvalidDocument
	}
	if trimmed[0] != '[' {
		e, err := r.ParseDocument(trimmed)
		if err != nil {
			return nil, err
		}
		return []*Entity{e}, nil
	}

	var raws []map[string]any
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	entities := make([]*Entity, 0, len(raws))
	for i, raw := range raws {
		e, err := r.entityFromMap(raw, 0)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (r *TypeRegistry) entityFromMap(raw map[string]any, depth int) (*Entity, error) {
	if depth >= maxNestingDepth {
		return nil, fmt.Errorf("%w: nesting exceeds %d levels", ErrInvalidDocument, maxNestingDepth)
	}

	typeName, err := typeNameOf(raw)
	if err != nil {
		return nil, err
	}
	t, err := r.Lookup(typeName)
	if err != nil {
		return nil, err
	}

	// A string @context carries through; object contexts are beyond this
	// package and fall back to the default vocabulary.
	ctx, _ := raw["@context"].(string)

	e := NewWithContext(t, ctx, nil)
	for name, value := range raw {
		if name == "@context" || name == "@type" {
			continue
		}
		converted, err := r.parseValue(value, depth)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		e = e.With(name, converted)
	}
	return e, nil
}

// parseValue converts a decoded JSON value, recursing into typed objects.
func (r *TypeRegistry) parseValue(value any, depth int) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if !hasType(v) {
			return v, nil
		}
		return r.entityFromMap(v, depth+1)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := r.parseValue(item, depth)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return value, nil
	}
}

// typeNameOf extracts @type, accepting a string or a non-empty string array.
// Markup in the wild sometimes spells the type as a full schema.org URL;
// the optional prefix is stripped so lookup sees the bare name.
func typeNameOf(raw map[string]any) (string, error) {
	value, ok := raw["@type"]
	if !ok {
		return "", ErrMissingType
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", ErrMissingType
		}
		return stripVocabularyPrefix(v), nil
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return stripVocabularyPrefix(s), nil
			}
		}
		return "", ErrMissingType
	default:
		return "", fmt.Errorf("%w: @type is %T", ErrInvalidDocument, value)
	}
}

func stripVocabularyPrefix(s string) string {
	for _, prefix := range []string{"https://schema.org/", "http://schema.org/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			return after
		}
	}
	return s
}

func hasType(raw map[string]any) bool {
	_, err := typeNameOf(raw)
	return err == nil
}
