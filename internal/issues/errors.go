package issues

import "errors"

// ErrInvalidArguments indicates tool arguments that do not match the input contract.
var ErrInvalidArguments = errors.New("invalid arguments")

// ErrMissingField indicates a required argument that is absent or blank.
var ErrMissingField = errors.New("required field is missing")

// ErrInvalidValue indicates an argument with an out-of-range or malformed value.
var ErrInvalidValue = errors.New("invalid value")
