package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Togather-Foundation/schemaorg/schema"
	"github.com/Togather-Foundation/schemaorg/validation"
)

var (
	_ Renderer = (*JSONLDRenderer)(nil)
	_ Renderer = (*MicrodataRenderer)(nil)
	_ Renderer = (*RDFaRenderer)(nil)
	_ Renderer = (*StrictRenderer)(nil)
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json-ld", FormatJSONLD},
		{"jsonld", FormatJSONLD},
		{"JSON", FormatJSONLD},
		{"application/ld+json", FormatJSONLD},
		{" microdata ", FormatMicrodata},
		{"RDFa", FormatRDFa},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("turtle")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	require.Equal(t, []Format{FormatJSONLD, FormatMicrodata, FormatRDFa}, reg.Formats())

	for _, format := range reg.Formats() {
		renderer, ok := reg.Get(format)
		require.True(t, ok)
		require.Equal(t, format, renderer.Format())
	}

	_, ok := reg.Get(Format("turtle"))
	require.False(t, ok)
}

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()
	require.ErrorIs(t, reg.Register(nil), ErrNilRenderer)
	require.NoError(t, reg.Register(NewJSONLD()))
	require.Error(t, reg.Register(NewJSONLD()))
}

func TestRegistryLookup(t *testing.T) {
	reg := DefaultRegistry()

	renderer, err := reg.Lookup("jsonld")
	require.NoError(t, err)
	require.Equal(t, FormatJSONLD, renderer.Format())

	_, err = reg.Lookup("turtle")
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = NewRegistry().Lookup("jsonld")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestStrictBlocksInvalidEntities(t *testing.T) {
	strict := Strict(NewJSONLD(), nil)

	_, err := strict.Render(schema.NewArticle())
	require.Error(t, err)

	var invalid *validation.InvalidEntityError
	require.True(t, errors.As(err, &invalid))
	require.Len(t, invalid.Result.Errors, 1)
	require.Equal(t, validation.CodeRequiredPropertyMissing, invalid.Result.Errors[0].Code)
	require.Equal(t, "headline", invalid.Result.Errors[0].Property)
}

func TestStrictAllowsWarnings(t *testing.T) {
	strict := Strict(NewJSONLD(), nil)

	// A blank headline is a warning, not an error.
	out, err := strict.Render(schema.NewArticle().With("headline", ""))
	require.NoError(t, err)
	require.Contains(t, out, `"@type":"Article"`)
}

func TestStrictPassesValidThrough(t *testing.T) {
	strict := Strict(NewMicrodata(), validation.DefaultEngine())
	require.Equal(t, FormatMicrodata, strict.Format())
	require.Equal(t, MIMEHTML, strict.MIMEType())

	out, err := strict.Render(schema.NewArticle().With("headline", "T"))
	require.NoError(t, err)
	require.Contains(t, out, `itemprop="headline"`)
}

func TestStrictCustomEngine(t *testing.T) {
	engine := validation.NewEngine()
	strict := Strict(NewJSONLD(), engine)

	// An empty rule set accepts anything.
	out, err := strict.Render(schema.NewArticle())
	require.NoError(t, err)
	require.Contains(t, out, `"@type":"Article"`)
}

func TestStrictNilEntity(t *testing.T) {
	_, err := Strict(NewJSONLD(), nil).Render(nil)
	require.ErrorIs(t, err, ErrNilEntity)
}

func TestCrossRendererContent(t *testing.T) {
	article := schema.NewArticle().
		With("headline", "Consistency Check").
		With("author", schema.NewPerson().With("name", "Jane Doe"))

	for _, format := range []Format{FormatJSONLD, FormatMicrodata, FormatRDFa} {
		renderer, ok := DefaultRegistry().Get(format)
		require.True(t, ok)

		out, err := renderer.Render(article)
		require.NoError(t, err)
		require.Contains(t, out, "Consistency Check", format)
		require.Contains(t, out, "Jane Doe", format)
		require.Contains(t, out, "Person", format)
	}
}
