// Package specfile loads declarative item documents: YAML files
// describing the desired state of a single item, validated against an
// embedded JSON Schema before reconciliation.
package specfile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/opconnect/itemsync/internal/reconcile"
	"github.com/opconnect/itemsync/pkg/connect"
)

//go:embed schema.json
var schemaJSON []byte

// Front-end defaults applied after validation.
const (
	defaultCategory     = "api_credential"
	defaultFieldType    = "string"
	defaultRecipeLength = 32
)

// Document is one declarative item description.
type Document struct {
	Vault    string      `yaml:"vault" json:"vault"`
	Name     string      `yaml:"name" json:"name,omitempty"`
	Title    string      `yaml:"title" json:"title,omitempty"`
	UUID     string      `yaml:"uuid" json:"uuid,omitempty"`
	State    string      `yaml:"state" json:"state,omitempty"`
	Category string      `yaml:"category" json:"category,omitempty"`
	URLs     []string    `yaml:"urls" json:"urls,omitempty"`
	Favorite bool        `yaml:"favorite" json:"favorite,omitempty"`
	Tags     []string    `yaml:"tags" json:"tags,omitempty"`
	Fields   []FieldDecl `yaml:"fields" json:"fields,omitempty"`
}

// FieldDecl is one declared field within a Document.
type FieldDecl struct {
	Label     string      `yaml:"label" json:"label"`
	Value     string      `yaml:"value" json:"value,omitempty"`
	Section   string      `yaml:"section" json:"section,omitempty"`
	Overwrite *bool       `yaml:"overwrite" json:"overwrite,omitempty"`
	FieldType string      `yaml:"field_type" json:"field_type,omitempty"`
	Generate  string      `yaml:"generate_value" json:"generate_value,omitempty"`
	Recipe    *RecipeDecl `yaml:"generator_recipe" json:"generator_recipe,omitempty"`
}

// RecipeDecl configures the value generator for one field.
type RecipeDecl struct {
	Length         *int  `yaml:"length" json:"length,omitempty"`
	IncludeDigits  *bool `yaml:"include_digits" json:"include_digits,omitempty"`
	IncludeLetters *bool `yaml:"include_letters" json:"include_letters,omitempty"`
	IncludeSymbols *bool `yaml:"include_symbols" json:"include_symbols,omitempty"`
}

// Load reads and parses an item document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse validates YAML document bytes against the embedded schema and
// decodes them.
func Parse(data []byte) (*Document, error) {
	// Round-trip through JSON so the schema validator sees the
	// document exactly as declared.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert document to JSON: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, &reconcile.ValidationError{
			Message: "item document invalid: " + strings.Join(details, "; "),
		}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode item document: %w", err)
	}
	return &doc, nil
}

// Params converts the document into engine parameters, applying the
// front-end defaults and enumeration mappings.
func (d *Document) Params() (reconcile.Params, error) {
	state, err := reconcile.ParseState(d.State)
	if err != nil {
		return reconcile.Params{}, err
	}

	title := d.Title
	if title == "" {
		title = d.Name
	}
	// A name is always required when the item should exist.
	if state == reconcile.StatePresent && title == "" && d.UUID == "" {
		return reconcile.Params{}, &reconcile.ValidationError{
			Message: "a name is required when state is present",
		}
	}

	category := d.Category
	if category == "" {
		category = defaultCategory
	}

	fields := make([]reconcile.FieldParam, 0, len(d.Fields))
	for _, decl := range d.Fields {
		field, err := decl.param()
		if err != nil {
			return reconcile.Params{}, err
		}
		fields = append(fields, field)
	}

	return reconcile.Params{
		ItemParams: reconcile.ItemParams{
			Title:    title,
			Category: parseCategory(category),
			URLs:     d.URLs,
			Tags:     d.Tags,
			Favorite: d.Favorite,
			Fields:   fields,
		},
		UUID:  d.UUID,
		State: state,
	}, nil
}

func (decl FieldDecl) param() (reconcile.FieldParam, error) {
	fieldType := decl.FieldType
	if fieldType == "" {
		fieldType = defaultFieldType
	}

	policy := reconcile.GeneratePolicy(decl.Generate)
	if policy == "" {
		policy = reconcile.GenerateNever
	}

	var recipe *reconcile.RecipeConfig
	if decl.Recipe != nil {
		length := defaultRecipeLength
		if decl.Recipe.Length != nil {
			length = *decl.Recipe.Length
		}
		recipe = &reconcile.RecipeConfig{
			Length:         length,
			IncludeDigits:  decl.Recipe.IncludeDigits,
			IncludeLetters: decl.Recipe.IncludeLetters,
			IncludeSymbols: decl.Recipe.IncludeSymbols,
		}
	}

	return reconcile.FieldParam{
		Label:     decl.Label,
		Value:     decl.Value,
		Section:   decl.Section,
		Type:      parseFieldType(fieldType),
		Policy:    policy,
		Recipe:    recipe,
		Overwrite: decl.Overwrite,
	}, nil
}

// parseCategory maps the lowercase document value onto the wire enum.
func parseCategory(raw string) connect.ItemCategory {
	return connect.ItemCategory(strings.ToUpper(raw))
}

// parseFieldType maps the lowercase document value onto the wire enum.
// "otp" is the historical document spelling of the TOTP type.
func parseFieldType(raw string) connect.FieldType {
	if strings.EqualFold(raw, "otp") {
		return connect.FieldTypeTOTP
	}
	return connect.FieldType(strings.ToUpper(raw))
}
