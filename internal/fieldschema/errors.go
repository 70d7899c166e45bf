package fieldschema

import "errors"

// ErrCatalogFetch indicates the field catalog could not be retrieved.
var ErrCatalogFetch = errors.New("failed to fetch field catalog")

// ErrNoMatchingFields indicates none of the requested names exist in the catalog.
var ErrNoMatchingFields = errors.New("no matching fields found")

// ErrUnknownOperation indicates an operation other than set, add or remove.
var ErrUnknownOperation = errors.New("unknown operation")

// ErrOperationNotAllowed indicates the field's shape does not permit the operation.
var ErrOperationNotAllowed = errors.New("operation not allowed for field")

// ErrValueShape indicates a value does not match the contract of its operation.
var ErrValueShape = errors.New("value does not match field shape")

// ErrStaleField indicates a payload key that is not in the synthesized schema.
var ErrStaleField = errors.New("field is not part of the fetched catalog")

// ErrPayloadInvalid wraps every reason an update payload failed validation.
var ErrPayloadInvalid = errors.New("update payload failed validation")
