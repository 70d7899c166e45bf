package llm

import "errors"

// Sentinel errors for drafting and parsing.

// ErrClientNil indicates the drafter was built without an OpenAI client.
var ErrClientNil = errors.New("LLM client cannot be nil")

// ErrRequestEmpty indicates an empty natural-language request.
var ErrRequestEmpty = errors.New("request cannot be empty")

// ErrCompletion indicates the completion call failed. The SDK error is wrapped.
var ErrCompletion = errors.New("failed to create LLM completion")

// ErrEmptyResponse indicates a completion with no choices or no content.
var ErrEmptyResponse = errors.New("received an empty response from LLM")

// ErrResponseParse indicates the completion content could not be turned into a Draft.
var ErrResponseParse = errors.New("failed to parse LLM response")

// ErrJSONNotFound indicates no JSON object was found in the completion content.
var ErrJSONNotFound = errors.New("failed to find JSON object in LLM response")

// ErrJSONUnmarshal indicates the JSON object could not be decoded. The decode error is wrapped.
var ErrJSONUnmarshal = errors.New("failed to unmarshal LLM response JSON")

// ErrMissingField indicates a required member is absent from the decoded draft.
var ErrMissingField = errors.New("parsed LLM response is missing a required field")
