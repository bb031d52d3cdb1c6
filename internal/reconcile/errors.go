package reconcile

import "errors"

// Domain invariant violations. These are non-retryable configuration
// errors; callers wrap them with item-specific detail.
var (
	// ErrMissingVaultID means no vault was given for an operation
	// that needs one.
	ErrMissingVaultID = errors.New("a vault ID is required for this operation")

	// ErrPrimaryUsernameExists means a second field qualified as the
	// item's primary username.
	ErrPrimaryUsernameExists = errors.New("only one primary username may exist for an item")

	// ErrPrimaryPasswordExists means a second field qualified as the
	// item's primary password.
	ErrPrimaryPasswordExists = errors.New("only one primary password may exist for an item")

	// ErrPrimaryPasswordUndefined means a PASSWORD-category item has
	// no concealed field named "password".
	ErrPrimaryPasswordUndefined = errors.New(`item category requires a concealed field named "password"`)

	// ErrFieldNotUnique means a field label matched more than one
	// field during lookup.
	ErrFieldNotUnique = errors.New("field label is not unique, provide a section or a more specific label")
)

// ValidationError reports malformed input to assembly: a missing field
// type, a missing recipe length, a protected field without a label.
// Validation failures surface before any transport call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid item configuration: " + e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
