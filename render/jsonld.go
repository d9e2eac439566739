package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/Togather-Foundation/schemaorg/schema"
)

// JSONLDRenderer serializes entities as JSON-LD. Configuration setters
// return the receiver so they chain; the renderer itself is mutable and
// should not be reconfigured concurrently.
type JSONLDRenderer struct {
	pretty        bool
	compact       bool
	escapeSlashes bool
	escapeUnicode bool
	scriptTag     bool
}

// NewJSONLD returns a JSON-LD renderer producing single-line output with no
// escaping beyond what JSON requires.
func NewJSONLD() *JSONLDRenderer {
	return &JSONLDRenderer{}
}

// Pretty toggles two-space indented output.
func (r *JSONLDRenderer) Pretty(on bool) *JSONLDRenderer {
	r.pretty = on
	return r
}

// Compact toggles removal of null, empty-string, empty-sequence, and
// empty-object values before encoding. Compaction is idempotent.
func (r *JSONLDRenderer) Compact(on bool) *JSONLDRenderer {
	r.compact = on
	return r
}

// EscapeSlashes toggles \/ escaping of forward slashes.
func (r *JSONLDRenderer) EscapeSlashes(on bool) *JSONLDRenderer {
	r.escapeSlashes = on
	return r
}

// EscapeUnicode toggles \uXXXX escaping of non-ASCII characters.
func (r *JSONLDRenderer) EscapeUnicode(on bool) *JSONLDRenderer {
	r.escapeUnicode = on
	return r
}

// ScriptTag wraps the output in a <script type="application/ld+json">
// element for embedding in HTML pages. Script output is reported as
// text/html and keeps HTML-significant characters escaped.
func (r *JSONLDRenderer) ScriptTag(on bool) *JSONLDRenderer {
	r.scriptTag = on
	return r
}

func (r *JSONLDRenderer) Format() Format { return FormatJSONLD }

func (r *JSONLDRenderer) MIMEType() string {
	if r.scriptTag {
		return MIMEHTML
	}
	return MIMEJSONLD
}

// Render serializes the entity as JSON-LD.
func (r *JSONLDRenderer) Render(e *schema.Entity) (string, error) {
	if e == nil {
		return "", ErrNilEntity
	}

	tree := e.Tree()
	if r.compact {
		tree = stripEmpty(tree)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Script-tag output must stay HTML-safe; standalone JSON keeps <, >,
	// and & readable.
	enc.SetEscapeHTML(r.scriptTag)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(tree); err != nil {
		return "", fmt.Errorf("encode json-ld: %w", err)
	}

	out := strings.TrimSuffix(buf.String(), "\n")
	if r.escapeSlashes {
		out = strings.ReplaceAll(out, "/", `\/`)
	}
	if r.escapeUnicode {
		out = escapeNonASCII(out)
	}
	if r.scriptTag {
		return `<script type="application/ld+json">` + "\n" + out + "\n</script>", nil
	}
	return out, nil
}

// stripEmpty removes entries whose values carry no content. Nested maps and
// sequences are cleaned recursively; a value that becomes empty after
// cleaning is removed as well.
func stripEmpty(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for name, value := range m {
		if cleaned, keep := cleanValue(value); keep {
			out[name] = cleaned
		}
	}
	return out
}

func cleanValue(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case string:
		if v == "" {
			return nil, false
		}
		return v, true
	case []any:
		cleaned := make([]any, 0, len(v))
		for _, item := range v {
			if c, keep := cleanValue(item); keep {
				cleaned = append(cleaned, c)
			}
		}
		if len(cleaned) == 0 {
			return nil, false
		}
		return cleaned, true
	case map[string]any:
		m := stripEmpty(v)
		if len(m) == 0 {
			return nil, false
		}
		return m, true
	default:
		return value, true
	}
}

// escapeNonASCII rewrites runes outside ASCII as \uXXXX sequences, using
// surrogate pairs beyond the basic multilingual plane. JSON already
// guarantees non-ASCII appears only inside string literals.
func escapeNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
			continue
		}
		if r > 0xFFFF {
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&b, `\u%04x\u%04x`, hi, lo)
			continue
		}
		fmt.Fprintf(&b, `\u%04x`, r)
	}
	return b.String()
}
