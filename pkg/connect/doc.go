// Package connect defines the wire data model and transport contract for
// the 1Password Connect API.
//
// The package provides the foundational types shared by every layer of
// itemsync: items, fields, sections, generator recipes, the closed
// enumerations for item categories and field types, and the classified
// error taxonomy for transport failures.
//
// # Transport Contract
//
// The Client interface abstracts the Connect REST API behind the six
// operations the reconciliation engine needs. The production
// implementation lives in internal/transport; tests substitute a fake.
//
// Implementations must:
//   - Support context cancellation on every call
//   - Return *NotFoundError for missing vaults and items
//   - Classify other failures with the error types in this package
//   - Never log secret field values
//
// # Error Handling
//
// Transport failures are classified by HTTP status:
//
//	404        -> *NotFoundError
//	401, 403   -> *AccessDeniedError
//	400        -> *BadRequestError
//	5xx        -> *ServerError
//	other 4xx  -> *APIError
//
// A NotFoundError during a delete or a lookup-for-upsert is a normal
// "does not exist" signal, not a failure; callers use IsNotFound to
// branch on it.
package connect
