// Package extract pulls schema.org JSON-LD out of HTML documents.
//
// Extraction is tolerant by design: web pages routinely carry several
// script blocks, some of them malformed or describing types this
// library does not model. A bad block is skipped, never fatal, so one
// broken tag cannot discard the rest of the page.
package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Togather-Foundation/schemaorg/schema"
)

// maxDocumentSize caps how much HTML is read from the input, guarding
// against accidentally piping something enormous through the CLI.
const maxDocumentSize = 10 * 1024 * 1024 // 10 MiB

// Blocks parses the HTML document from r and returns every typed
// JSON-LD object found in its <script type="application/ld+json">
// elements. The following shapes are flattened into individual
// objects:
//
//   - Single top-level object
//   - Top-level JSON array of objects
//   - Object with an @graph array
//   - ItemList with itemListElement containing ListItem→item objects
//
// Objects without a @type and script blocks that fail to parse are
// skipped.
func Blocks(r io.Reader) ([]json.RawMessage, error) {
	doc, err := goquery.NewDocumentFromReader(io.LimitReader(r, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var blocks []json.RawMessage
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		found, err := flatten([]byte(raw))
		if err != nil {
			// Malformed block. Skip it and keep going.
			return
		}
		blocks = append(blocks, found...)
	})
	return blocks, nil
}

// Entities extracts every block from r and parses those whose @type
// is registered in reg. Unregistered and unparsable blocks are
// skipped, so the result can be shorter than what Blocks reports.
func Entities(r io.Reader, reg *schema.TypeRegistry) ([]*schema.Entity, error) {
	blocks, err := Blocks(r)
	if err != nil {
		return nil, err
	}

	var entities []*schema.Entity
	for _, block := range blocks {
		entity, err := reg.ParseDocument(block)
		if err != nil {
			continue
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// flatten inspects a single JSON-LD payload and returns the typed
// objects inside it.
func flatten(data []byte) ([]json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(data))
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		return flattenArray(data)
	}
	return flattenObject(data)
}

func flattenArray(data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	var blocks []json.RawMessage
	for _, item := range items {
		found, err := flattenObject(item)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, found...)
	}
	return blocks, nil
}

// flattenObject dispatches on the object's shape. A minimal envelope
// struct peeks at the relevant fields without a full unmarshal.
func flattenObject(data []byte) ([]json.RawMessage, error) {
	var envelope struct {
		Type            json.RawMessage   `json:"@type"`
		Graph           []json.RawMessage `json:"@graph"`
		ItemListElement []json.RawMessage `json:"itemListElement"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	if len(envelope.Graph) > 0 {
		return flattenGraph(envelope.Graph)
	}

	typ := typeString(envelope.Type)

	if typ == "ItemList" && len(envelope.ItemListElement) > 0 {
		return flattenItemList(envelope.ItemListElement)
	}

	if typ == "" {
		// Context-only or untyped object. Nothing to extract.
		return nil, nil
	}
	return []json.RawMessage{json.RawMessage(data)}, nil
}

func flattenGraph(items []json.RawMessage) ([]json.RawMessage, error) {
	var blocks []json.RawMessage
	for _, item := range items {
		found, err := flattenObject(item)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, found...)
	}
	return blocks, nil
}

func flattenItemList(elements []json.RawMessage) ([]json.RawMessage, error) {
	var blocks []json.RawMessage
	for _, elem := range elements {
		var listItem struct {
			Item json.RawMessage `json:"item"`
		}
		if err := json.Unmarshal(elem, &listItem); err != nil {
			return nil, err
		}
		if len(listItem.Item) == 0 {
			continue
		}
		found, err := flattenObject(listItem.Item)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, found...)
	}
	return blocks, nil
}

// typeString returns the value of a @type field, handling both a
// plain string ("Article") and a JSON array (["Article"]).
func typeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return stripSchemaPrefix(s)
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) > 0 {
		return stripSchemaPrefix(arr[0])
	}
	return ""
}

// stripSchemaPrefix removes an optional "https://schema.org/" or
// "http://schema.org/" prefix from a type name.
func stripSchemaPrefix(s string) string {
	for _, prefix := range []string{"https://schema.org/", "http://schema.org/"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			return after
		}
	}
	return s
}
