package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Togather-Foundation/schemaorg/schema"
)

func TestRequiredPropertiesRule(t *testing.T) {
	rule := RequiredPropertiesRule{}

	t.Run("missing headline", func(t *testing.T) {
		errs := rule.Check(schema.NewArticle())
		require.Len(t, errs, 1)
		require.Equal(t, CodeRequiredPropertyMissing, errs[0].Code)
		require.Equal(t, "headline", errs[0].Property)
		require.Equal(t, SeverityError, errs[0].Severity)
		require.Contains(t, errs[0].Message, "Article")
	})

	t.Run("present headline passes", func(t *testing.T) {
		require.Empty(t, rule.Check(schema.NewArticle().With("headline", "Title")))
	})

	t.Run("empty value still counts as present", func(t *testing.T) {
		// Emptiness is EmptyValuesRule's concern, not this rule's.
		for _, value := range []any{"", nil, []any{}} {
			require.Empty(t, rule.Check(schema.NewArticle().With("headline", value)))
		}
	})

	t.Run("nothing required on person", func(t *testing.T) {
		require.Empty(t, rule.Check(schema.NewPerson()))
	})
}

func TestPropertyTypesRule(t *testing.T) {
	rule := PropertyTypesRule{}

	tests := []struct {
		name     string
		entity   *schema.Entity
		wantErrs int
	}{
		{"string headline ok", schema.NewArticle().With("headline", "Title"), 0},
		{"numeric headline rejected", schema.NewArticle().With("headline", 42), 1},
		{"int wordCount ok", schema.NewArticle().With("wordCount", 850), 0},
		{"integral float wordCount ok", schema.NewArticle().With("wordCount", float64(850)), 0},
		{"fractional wordCount rejected", schema.NewArticle().With("wordCount", 850.5), 1},
		{"string wordCount rejected", schema.NewArticle().With("wordCount", "850"), 1},
		{"time datePublished ok", schema.NewArticle().With("datePublished", time.Now()), 0},
		{"string datePublished ok", schema.NewArticle().With("datePublished", "2025-01-15"), 0},
		{"numeric datePublished rejected", schema.NewArticle().With("datePublished", 20250115), 1},
		{"entity author ok", schema.NewArticle().With("author", schema.NewPerson()), 0},
		{"string author ok", schema.NewArticle().With("author", "Jane Doe"), 0},
		{"author sequence ok", schema.NewArticle().With("author", []any{schema.NewPerson()}), 0},
		{"numeric author rejected", schema.NewArticle().With("author", 7), 1},
		{"keywords sequence ok", schema.NewArticle().With("keywords", []any{"go", "schema"}), 0},
		{"keywords number rejected", schema.NewArticle().With("keywords", 42), 1},
		{"entity image ok", schema.NewArticle().With("image", schema.NewThing()), 0},
		{"map mainEntityOfPage ok", schema.NewArticle().With("mainEntityOfPage", map[string]any{"@id": "x"}), 0},
		{"bool mainEntityOfPage rejected", schema.NewArticle().With("mainEntityOfPage", true), 1},
		{"unmapped property skipped", schema.NewArticle().With("fooBar", struct{}{}), 0},
		{"nil value left to empty rule", schema.NewArticle().With("headline", nil), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := rule.Check(tt.entity)
			require.Len(t, errs, tt.wantErrs)
			for _, err := range errs {
				require.Equal(t, CodeInvalidPropertyType, err.Code)
				require.Equal(t, SeverityError, err.Severity)
				require.NotNil(t, err.Value)
			}
		})
	}
}

func TestEmptyValuesRule(t *testing.T) {
	rule := EmptyValuesRule{}

	t.Run("empty values warn", func(t *testing.T) {
		for _, value := range []any{"", "   ", []any{}, nil} {
			errs := rule.Check(schema.NewArticle().With("headline", value))
			require.Len(t, errs, 1)
			require.Equal(t, CodeEmptyProperty, errs[0].Code)
			require.Equal(t, "headline", errs[0].Property)
			require.Equal(t, SeverityWarning, errs[0].Severity)
		}
	})

	t.Run("populated values pass", func(t *testing.T) {
		e := schema.NewArticle().
			With("headline", "Title").
			With("wordCount", 0).
			With("keywords", []any{"go"})
		require.Empty(t, rule.Check(e))
	})
}

func TestSchemaOrgComplianceRule(t *testing.T) {
	rule := NewSchemaOrgComplianceRule()

	type want struct {
		errs     int
		warnings int
	}

	tests := []struct {
		name   string
		entity *schema.Entity
		want   want
	}{
		{"absolute url ok", schema.NewArticle().With("headline", "T").With("url", "https://example.org/a"), want{}},
		{"relative url rejected", schema.NewArticle().With("headline", "T").With("url", "/articles/a"), want{errs: 1}},
		{"schemeless url rejected", schema.NewArticle().With("headline", "T").With("url", "example.org/a"), want{errs: 1}},
		{"ftp url rejected", schema.NewArticle().With("headline", "T").With("url", "ftp://example.org/a"), want{errs: 1}},
		{"image url checked", schema.NewArticle().With("headline", "T").With("image", "not a url"), want{errs: 1}},
		{"logo url checked", schema.NewOrganization().With("logo", "garbage"), want{errs: 1}},
		{"sameAs list elementwise", schema.NewThing().With("sameAs", []any{"https://example.org/a", "nope"}), want{errs: 1}},
		{"entity image skipped", schema.NewArticle().With("headline", "T").With("image", schema.NewThing()), want{}},
		{"good email ok", schema.NewPerson().With("email", "jane@example.org"), want{}},
		{"bad email rejected", schema.NewPerson().With("email", "jane@@example"), want{errs: 1}},
		{"telephone ok", schema.NewOrganization().With("telephone", "+1 (628) 555-0199"), want{}},
		{"odd telephone warns", schema.NewOrganization().With("telephone", "call me maybe"), want{warnings: 1}},
		{"timestamp string ok", schema.NewArticle().With("headline", "T").With("datePublished", "2025-01-15T09:30:00+00:00"), want{}},
		{"plain date ok", schema.NewArticle().With("headline", "T").With("datePublished", "2024-01-01"), want{}},
		{"bad date rejected", schema.NewArticle().With("headline", "T").With("datePublished", "January 15th"), want{errs: 1}},
		{"time value not rechecked", schema.NewArticle().With("headline", "T").With("datePublished", time.Now()), want{}},
		{"positive wordCount ok", schema.NewArticle().With("headline", "T").With("wordCount", 850), want{}},
		{"zero wordCount rejected", schema.NewArticle().With("headline", "T").With("wordCount", 0), want{errs: 1}},
		{"unknown property warns", schema.NewArticle().With("headline", "T").With("fooBar", "x"), want{warnings: 1}},
		{"jsonld keyword not flagged", schema.NewArticle().With("headline", "T").WithID("https://example.org/a"), want{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errs, warnings int
			for _, err := range rule.Check(tt.entity) {
				switch err.Severity {
				case SeverityError:
					errs++
					require.Equal(t, CodeInvalidPropertyValue, err.Code)
				case SeverityWarning:
					warnings++
				}
			}
			require.Equal(t, tt.want.errs, errs, "errors")
			require.Equal(t, tt.want.warnings, warnings, "warnings")
		})
	}
}

func TestComplianceUnknownPropertyDetails(t *testing.T) {
	rule := NewSchemaOrgComplianceRule()
	errs := rule.Check(schema.NewArticle().With("headline", "T").With("fooBar", "x"))
	require.Len(t, errs, 1)
	require.Equal(t, CodeUnknownProperty, errs[0].Code)
	require.Equal(t, "fooBar", errs[0].Property)
	require.Equal(t, SeverityWarning, errs[0].Severity)
	require.Contains(t, errs[0].Message, "Article")
}

func TestRuleMetadata(t *testing.T) {
	rules := []Rule{
		RequiredPropertiesRule{},
		PropertyTypesRule{},
		EmptyValuesRule{},
		NewSchemaOrgComplianceRule(),
	}
	names := []string{"required", "types", "empty", "compliance"}
	for i, rule := range rules {
		require.Equal(t, names[i], rule.Name())
		require.NotEmpty(t, rule.Description())
		require.True(t, rule.Applies(schema.NewThing()))
		require.False(t, rule.Applies(nil))
	}
}
