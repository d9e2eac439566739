package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArticleRequiresOnlyHeadline(t *testing.T) {
	require.Equal(t, []string{"headline"}, Article.Required)
}

func TestNothingRequiredOnOtherBuiltins(t *testing.T) {
	for _, typ := range []*Type{Thing, Person, Organization} {
		require.Empty(t, typ.Required, typ.Name)
	}
}

func TestTypeRecognizes(t *testing.T) {
	tests := []struct {
		name     string
		typ      *Type
		property string
		want     bool
	}{
		{"required property", Article, "headline", true},
		{"optional property", Article, "wordCount", true},
		{"inherited thing property", Article, "description", true},
		{"unknown property", Article, "fooBar", false},
		{"jsonld keyword", Article, "@id", true},
		{"person email", Person, "email", true},
		{"person has no headline", Person, "headline", false},
		{"organization address", Organization, "address", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.typ.Recognizes(tt.property))
		})
	}
}

func TestTypeIsRequired(t *testing.T) {
	require.True(t, Article.IsRequired("headline"))
	require.False(t, Article.IsRequired("wordCount"))
	require.False(t, Thing.IsRequired("name"))
}

func TestTypeURL(t *testing.T) {
	require.Equal(t, "https://schema.org/Article", Article.URL())
}

func TestNewTypeCopiesSlices(t *testing.T) {
	required := []string{"name"}
	typ := NewType("Custom", required, nil)
	required[0] = "mutated"
	require.Equal(t, []string{"name"}, typ.Required)
}

func TestTypeRegistryLookup(t *testing.T) {
	r := NewTypeRegistry()

	typ, err := r.Lookup("Article")
	require.NoError(t, err)
	require.Same(t, Article, typ)

	_, err = r.Lookup("Spaceship")
	var unknown *UnknownTypeError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "Spaceship", unknown.Name)
}

func TestTypeRegistryRegister(t *testing.T) {
	r := NewTypeRegistry()
	blog := NewType("BlogPosting", []string{"headline"}, []string{"name", "url"})

	require.NoError(t, r.Register(blog))

	typ, err := r.Lookup("BlogPosting")
	require.NoError(t, err)
	require.Same(t, blog, typ)

	err = r.Register(NewType("BlogPosting", nil, nil))
	require.ErrorIs(t, err, ErrDuplicateType)

	require.ErrorIs(t, r.Register(nil), ErrNilType)
}

func TestTypeRegistryNames(t *testing.T) {
	names := NewTypeRegistry().Names()
	require.Equal(t, []string{"Article", "Organization", "Person", "Thing"}, names)
}

func TestDefaultTypesHasBuiltins(t *testing.T) {
	for _, name := range []string{"Thing", "Article", "Person", "Organization"} {
		_, err := Lookup(name)
		require.NoError(t, err, name)
	}
	require.Subset(t, TypeNames(), []string{"Article", "Thing"})
}

func TestMustLookupPanicsOnUnknown(t *testing.T) {
	require.NotPanics(t, func() { MustLookup("Person") })
	require.Panics(t, func() { MustLookup("Spaceship") })
}

func TestLookupErrorMessage(t *testing.T) {
	_, err := Lookup("Spaceship")
	require.Error(t, err)
	require.Equal(t, `unknown schema.org type "Spaceship"`, err.Error())
	require.False(t, errors.Is(err, ErrDuplicateType))
}
