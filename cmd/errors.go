package cmd

import "errors"

// ErrToolFailed indicates a tool call completed with an error envelope.
var ErrToolFailed = errors.New("tool call returned an error")

// ErrUnsupportedProvider indicates config.yaml names an LLM provider with no drafter.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// ErrNoQuery indicates search was run without a JQL query.
var ErrNoQuery = errors.New("no JQL query provided")

// ErrInvalidArgs indicates tool call arguments that are not a JSON object.
var ErrInvalidArgs = errors.New("tool arguments must be a JSON object")

// ErrEmptySecret indicates set-key was given an empty value.
var ErrEmptySecret = errors.New("secret cannot be empty")
