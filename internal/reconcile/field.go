package reconcile

import (
	"fmt"

	"github.com/opconnect/itemsync/pkg/connect"
)

// GeneratePolicy controls when a field's value is produced by the
// server-side generator instead of taken from the declaration.
type GeneratePolicy string

const (
	// GenerateNever uses the declared value as-is.
	GenerateNever GeneratePolicy = "never"
	// GenerateAlways requests a fresh generated value on every run.
	GenerateAlways GeneratePolicy = "always"
	// GenerateOnCreate generates only when the field does not already
	// exist on the stored item; otherwise the stored value is kept.
	GenerateOnCreate GeneratePolicy = "on_create"
)

// GeneratePolicies returns every valid generate policy.
func GeneratePolicies() []GeneratePolicy {
	return []GeneratePolicy{GenerateNever, GenerateAlways, GenerateOnCreate}
}

// RecipeConfig is the user-facing generator configuration. A character
// set is included unless its flag is explicitly false; nil means
// included.
type RecipeConfig struct {
	Length         int
	IncludeDigits  *bool
	IncludeLetters *bool
	IncludeSymbols *bool
}

// FieldParam is one user-supplied field declaration.
type FieldParam struct {
	Label   string
	Value   string
	Section string
	Type    connect.FieldType
	Policy  GeneratePolicy
	Recipe  *RecipeConfig
	// Overwrite defaults to true; an explicit false preserves the
	// stored value on update and requires a label.
	Overwrite *bool
}

func (p FieldParam) overwrite() bool {
	return p.Overwrite == nil || *p.Overwrite
}

// assembleField builds one wire-format field from a resolved
// declaration. generate is the already-resolved policy decision; when
// true, any declared value is discarded and a recipe is attached.
func assembleField(
	category connect.ItemCategory,
	fieldType connect.FieldType,
	label, value string,
	generate bool,
	recipe *RecipeConfig,
	sectionID string,
	purpose connect.Purpose,
) (connect.Field, error) {
	if fieldType == "" {
		return connect.Field{}, &ValidationError{Message: fmt.Sprintf("field %q missing type", label)}
	}
	if category == "" {
		return connect.Field{}, &ValidationError{Message: "field requires an item category"}
	}

	field := connect.Field{
		Label:   label,
		Value:   value,
		Type:    fieldType,
		Purpose: purpose,
	}
	if sectionID != "" {
		field.Section = &connect.SectionRef{ID: sectionID}
	}

	// Concealed fields on login/password items default to the primary
	// password purpose; the item assembler's derivation pass overrides
	// this default.
	if (category == connect.CategoryLogin || category == connect.CategoryPassword) &&
		fieldType == connect.FieldTypeConcealed {
		field.Purpose = connect.PurposePassword
	}

	if generate {
		built, err := buildRecipe(recipe)
		if err != nil {
			return connect.Field{}, err
		}
		field.Generate = true
		field.Recipe = built
		// A generated field never carries a caller-supplied value.
		field.Value = ""
	}

	return field, nil
}

// buildRecipe converts the user generator config into the wire recipe.
// An absent config yields nil so the server falls back to its own
// defaults.
func buildRecipe(cfg *RecipeConfig) (*connect.GeneratorRecipe, error) {
	if cfg == nil {
		return nil, nil
	}
	if cfg.Length <= 0 {
		return nil, &ValidationError{Message: "generator recipe requires a length"}
	}

	var sets []string
	if cfg.IncludeDigits == nil || *cfg.IncludeDigits {
		sets = append(sets, connect.CharsetDigits)
	}
	if cfg.IncludeLetters == nil || *cfg.IncludeLetters {
		sets = append(sets, connect.CharsetLetters)
	}
	if cfg.IncludeSymbols == nil || *cfg.IncludeSymbols {
		sets = append(sets, connect.CharsetSymbols)
	}

	return &connect.GeneratorRecipe{
		Length:        cfg.Length,
		CharacterSets: sets,
	}, nil
}
