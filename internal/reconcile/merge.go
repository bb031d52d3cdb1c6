package reconcile

import "github.com/opconnect/itemsync/pkg/connect"

// mergedField is one entry of a reconciled field set. Either carried
// is set (the field is taken verbatim from the stored item) or param
// holds the resolved declaration together with the generate decision.
type mergedField struct {
	carried  *connect.Field
	param    FieldParam
	generate bool
}

// mergeFields reconciles a previously stored field set with the
// declared field set. The result is ordered: the stored notes field
// first if present, then the declared fields in declared order.
//
// Stored fields are matched by normalized label; fields without a
// label are invisible to the merge. The notes field is never created
// or mutated here: a stored notes field is carried over verbatim and
// any declaration for that label is dropped.
//
// previous may be nil (the create path); every declaration is then
// resolved against an empty stored set.
func mergeFields(previous []connect.Field, declared []FieldParam) []mergedField {
	stored := make(map[string]connect.Field, len(previous))
	for _, f := range previous {
		if f.Label == "" {
			continue
		}
		stored[connect.NormalizeLabel(f.Label)] = f
	}

	merged := make([]mergedField, 0, len(declared)+1)

	if notes, ok := stored[connect.NotesFieldLabel]; ok {
		merged = append(merged, mergedField{carried: &notes})
	}

	for _, decl := range declared {
		label := connect.NormalizeLabel(decl.Label)
		if label == connect.NotesFieldLabel {
			continue
		}

		prev, exists := stored[label]
		merged = append(merged, resolveDeclaration(decl, prev, exists))
	}

	return merged
}

// resolveDeclaration applies the preserve-on-no-overwrite rule and the
// generate policy to a single declaration.
func resolveDeclaration(decl FieldParam, prev connect.Field, exists bool) mergedField {
	if exists && !decl.overwrite() {
		// Keep the stored value; generator settings are dropped when
		// preserving.
		decl.Value = prev.Value
		decl.Recipe = nil
		return mergedField{param: decl}
	}

	switch decl.Policy {
	case GenerateAlways:
		return mergedField{param: decl, generate: true}
	case GenerateOnCreate:
		if !exists {
			return mergedField{param: decl, generate: true}
		}
		// The field already exists: reuse its stored value and type.
		// The type is not user-overridable once created.
		decl.Value = prev.Value
		decl.Type = prev.Type
		return mergedField{param: decl}
	default:
		return mergedField{param: decl}
	}
}

// protectedFieldsHaveLabel checks that every declaration preserving a
// stored value can actually be matched: a field with overwrite
// disabled must carry a non-empty label.
func protectedFieldsHaveLabel(declared []FieldParam) bool {
	for _, f := range declared {
		if !f.overwrite() && f.Label == "" {
			return false
		}
	}
	return true
}
