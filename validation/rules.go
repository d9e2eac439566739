package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Togather-Foundation/schemaorg/schema"
)

// Rule checks one aspect of an entity. Rules never mutate the entity and
// must be safe for concurrent Check calls.
type Rule interface {
	// Name identifies the rule inside an engine. Registering a rule under
	// an existing name replaces it.
	Name() string

	// Description says what the rule checks, for debug output.
	Description() string

	// Applies reports whether the rule has anything to say about this
	// entity. The engine skips rules that do not apply.
	Applies(e *schema.Entity) bool

	// Check returns the rule's findings, empty when the entity passes.
	// Severity is carried per finding; a rule may mix errors and warnings.
	Check(e *schema.Entity) []Error
}

// RequiredPropertiesRule reports required properties that are absent. A
// property set to an empty value still counts as present here; emptiness is
// EmptyValuesRule's concern.
type RequiredPropertiesRule struct{}

func (RequiredPropertiesRule) Name() string { return "required" }

func (RequiredPropertiesRule) Description() string {
	return "required properties of the entity's type must be present"
}

func (RequiredPropertiesRule) Applies(e *schema.Entity) bool { return e != nil }

func (RequiredPropertiesRule) Check(e *schema.Entity) []Error {
	var errs []Error
	for _, name := range e.Type().Required {
		if !e.Has(name) {
			errs = append(errs, NewRequiredMissing(name, e.TypeName()))
		}
	}
	return errs
}

// valueKind classifies a property value for the type allow-lists.
type valueKind int

const (
	kindString valueKind = iota
	kindInteger
	kindFloat
	kindBool
	kindSequence
	kindDateTime
	kindEntity
)

func (k valueKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindInteger:
		return "integer"
	case kindFloat:
		return "float"
	case kindBool:
		return "boolean"
	case kindSequence:
		return "sequence"
	case kindDateTime:
		return "date-time"
	case kindEntity:
		return "nested entity"
	}
	return "unknown"
}

// propertyTypes maps well-known property names to the value kinds they
// accept. Names outside the table are skipped entirely; that keeps the rule
// best-effort rather than exhaustive.
var propertyTypes = map[string][]valueKind{
	"name":                {kindString},
	"description":         {kindString},
	"url":                 {kindString},
	"image":               {kindString, kindEntity, kindSequence},
	"identifier":          {kindString, kindInteger},
	"sameAs":              {kindString, kindSequence},
	"additionalType":      {kindString},
	"headline":            {kindString},
	"alternativeHeadline": {kindString},
	"articleBody":         {kindString},
	"keywords":            {kindString, kindSequence},
	"wordCount":           {kindInteger},
	"datePublished":       {kindString, kindDateTime},
	"dateModified":        {kindString, kindDateTime},
	"dateCreated":         {kindString, kindDateTime},
	"author":              {kindString, kindEntity, kindSequence},
	"publisher":           {kindString, kindEntity},
	"mainEntityOfPage":    {kindString, kindEntity},
	"email":               {kindString},
	"givenName":           {kindString},
	"familyName":          {kindString},
	"jobTitle":            {kindString},
	"worksFor":            {kindString, kindEntity},
	"legalName":           {kindString},
	"logo":                {kindString, kindEntity},
	"telephone":           {kindString},
	"address":             {kindString, kindEntity},
	"founder":             {kindString, kindEntity, kindSequence},
	"foundingDate":        {kindString, kindDateTime},
}

// PropertyTypesRule reports property values whose runtime kind is outside
// the allow-list for that property name.
type PropertyTypesRule struct{}

func (PropertyTypesRule) Name() string { return "types" }

func (PropertyTypesRule) Description() string {
	return "well-known properties must carry values of an accepted kind"
}

func (PropertyTypesRule) Applies(e *schema.Entity) bool { return e != nil }

func (PropertyTypesRule) Check(e *schema.Entity) []Error {
	var errs []Error
	for _, name := range e.Properties() {
		allowed, known := propertyTypes[name]
		if !known {
			continue
		}
		value, _ := e.Get(name)
		if value == nil {
			continue
		}
		kind, ok := kindOf(value)
		if ok && kindAllowed(kind, allowed) {
			continue
		}
		errs = append(errs, NewInvalidType(name, value, wantList(allowed)))
	}
	return errs
}

// kindOf classifies a runtime value. JSON numbers decode as float64, so
// integral floats classify as integers.
func kindOf(value any) (valueKind, bool) {
	switch v := value.(type) {
	case string:
		return kindString, true
	case bool:
		return kindBool, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return kindInteger, true
	case float64:
		if v == float64(int64(v)) {
			return kindInteger, true
		}
		return kindFloat, true
	case float32:
		if v == float32(int64(v)) {
			return kindInteger, true
		}
		return kindFloat, true
	case time.Time:
		return kindDateTime, true
	case *schema.Entity:
		return kindEntity, true
	case map[string]any:
		return kindEntity, true
	case []any:
		return kindSequence, true
	}
	return 0, false
}

func kindAllowed(kind valueKind, allowed []valueKind) bool {
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}

func wantList(allowed []valueKind) string {
	parts := make([]string, len(allowed))
	for i, k := range allowed {
		parts[i] = k.String()
	}
	return strings.Join(parts, " or ")
}

// EmptyValuesRule warns about properties set to nil, a blank string, or an
// empty sequence. Always a warning, never an error.
type EmptyValuesRule struct{}

func (EmptyValuesRule) Name() string { return "empty" }

func (EmptyValuesRule) Description() string {
	return "properties should not carry empty values"
}

func (EmptyValuesRule) Applies(e *schema.Entity) bool { return e != nil }

func (EmptyValuesRule) Check(e *schema.Entity) []Error {
	var errs []Error
	for _, name := range e.Properties() {
		value, _ := e.Get(name)
		if isEmptyValue(value) {
			errs = append(errs, NewEmptyProperty(name))
		}
	}
	return errs
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	}
	return false
}

// urlProperties must hold absolute http(s) URLs when given as strings.
var urlProperties = map[string]bool{
	"url":              true,
	"sameAs":           true,
	"image":            true,
	"logo":             true,
	"mainEntityOfPage": true,
	"additionalType":   true,
}

// dateProperties must parse as ISO-8601 when given as strings.
var dateProperties = map[string]bool{
	"datePublished": true,
	"dateModified":  true,
	"dateCreated":   true,
	"foundingDate":  true,
}

// dateLayouts are the accepted string forms for date properties: ISO-8601
// timestamps with an offset, and plain dates.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// telephonePattern is a loose international-number shape. A mismatch is
// advisory only.
var telephonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().\-]{5,}$`)

// SchemaOrgComplianceRule performs format-level checks: URL-shaped
// properties must be absolute http(s) URLs and email must be a valid
// address (errors); a telephone that does not look like an international
// number and properties outside the type's vocabulary are warnings.
type SchemaOrgComplianceRule struct {
	validate *validator.Validate
}

// NewSchemaOrgComplianceRule builds the rule with its own validator
// instance.
func NewSchemaOrgComplianceRule() *SchemaOrgComplianceRule {
	return &SchemaOrgComplianceRule{validate: validator.New()}
}

func (r *SchemaOrgComplianceRule) Name() string { return "compliance" }

func (r *SchemaOrgComplianceRule) Description() string {
	return "property values must satisfy schema.org format conventions"
}

func (r *SchemaOrgComplianceRule) Applies(e *schema.Entity) bool { return e != nil }

func (r *SchemaOrgComplianceRule) Check(e *schema.Entity) []Error {
	var errs []Error
	for _, name := range e.Properties() {
		value, _ := e.Get(name)
		for _, item := range flatten(value) {
			if err := r.checkValue(name, item); err != nil {
				errs = append(errs, *err)
			}
		}
		if !e.Type().Recognizes(name) {
			errs = append(errs, NewUnknownProperty(name, e.TypeName()))
		}
	}
	return errs
}

func (r *SchemaOrgComplianceRule) checkValue(name string, value any) *Error {
	s, isString := value.(string)
	switch {
	case urlProperties[name]:
		if !isString {
			return nil
		}
		if r.validate.Var(s, "http_url") != nil {
			err := NewInvalidValue(name, s,
				fmt.Sprintf("%q is not an absolute http(s) URL", s))
			return &err
		}
	case name == "email":
		if !isString {
			return nil
		}
		if r.validate.Var(s, "email") != nil {
			err := NewInvalidValue(name, s,
				fmt.Sprintf("%q is not a valid email address", s))
			return &err
		}
	case name == "telephone":
		if !isString || s == "" {
			return nil
		}
		if !telephonePattern.MatchString(s) {
			err := NewWarning(CodeInvalidPropertyValue, name,
				fmt.Sprintf("%q does not look like an international phone number", s))
			err.Value = s
			return &err
		}
	case dateProperties[name]:
		if !isString || s == "" {
			return nil
		}
		if !parseableDate(s) {
			err := NewInvalidValue(name, s,
				fmt.Sprintf("%q is not an ISO-8601 date", s))
			return &err
		}
	case name == "wordCount":
		if n, ok := toInt(value); ok && n <= 0 {
			err := NewInvalidValue(name, value,
				fmt.Sprintf("must be positive, got %d", n))
			return &err
		}
	}
	return nil
}

func toInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	case float32:
		if v == float32(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

func parseableDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func flatten(value any) []any {
	if list, ok := value.([]any); ok {
		return list
	}
	return []any{value}
}
