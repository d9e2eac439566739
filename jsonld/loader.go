// Package jsonld bridges schema entities and standards-level JSON-LD
// processing (expansion, compaction, normalization, framing) without
// network access: the schema.org context is pinned and embedded.
package jsonld

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/piprate/json-gold/ld"
)

var (
	ErrContextNotFound = errors.New("context not found")
	ErrInvalidDocument = errors.New("invalid JSON-LD document")
)

//go:embed contexts/schema.org.jsonld
var schemaOrgContext []byte

// schemaOrgAliases are the URL spellings under which the pinned schema.org
// context is served.
var schemaOrgAliases = []string{
	"https://schema.org",
	"https://schema.org/",
	"http://schema.org",
	"http://schema.org/",
	"https://schema.org/docs/jsonldcontext.jsonld",
}

// OfflineLoader is a json-gold DocumentLoader that serves registered
// context documents from memory and refuses everything else. It is safe
// for concurrent use.
type OfflineLoader struct {
	mu        sync.RWMutex
	documents map[string]map[string]any
}

// NewOfflineLoader returns a loader pre-populated with the pinned
// schema.org context under its common URL spellings.
func NewOfflineLoader() *OfflineLoader {
	var doc map[string]any
	if err := json.Unmarshal(schemaOrgContext, &doc); err != nil {
		panic(fmt.Sprintf("embedded schema.org context: %v", err))
	}

	l := &OfflineLoader{documents: make(map[string]map[string]any)}
	for _, alias := range schemaOrgAliases {
		l.documents[alias] = doc
	}
	return l
}

// Register makes a context document available at the given URL,
// replacing any previous registration.
func (l *OfflineLoader) Register(url string, document map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.documents[url] = document
}

// LoadDocument implements ld.DocumentLoader.
func (l *OfflineLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	l.mu.RLock()
	doc, ok := l.documents[u]
	l.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContextNotFound, u)
	}
	return &ld.RemoteDocument{DocumentURL: u, Document: doc}, nil
}
