package jira

import "errors"

// Sentinel errors for Jira client operations.

// ErrBaseURLMissing indicates the Jira REST base URL is not configured.
var ErrBaseURLMissing = errors.New("Jira base URL is not configured")

// ErrBaseURLParse indicates the configured Jira base URL could not be parsed.
var ErrBaseURLParse = errors.New("failed to parse Jira base URL")

// ErrCredentialsMissing indicates the account email or API token is not configured.
var ErrCredentialsMissing = errors.New("Jira email or API token is not configured")

// ErrRequestMarshal indicates an error occurred while marshaling the request body.
var ErrRequestMarshal = errors.New("failed to marshal request body")

// ErrRequestCreate indicates an error occurred while creating the HTTP request.
var ErrRequestCreate = errors.New("failed to create HTTP request")

// ErrRequestExecute indicates an error occurred while executing the HTTP request.
var ErrRequestExecute = errors.New("failed to execute HTTP request")

// ErrResponseRead indicates the response body could not be read.
var ErrResponseRead = errors.New("failed to read response body")

// ErrResponseDecode indicates an error occurred while decoding the response body.
var ErrResponseDecode = errors.New("failed to decode response body")

// ErrUnexpectedStatus is wrapped by every StatusError.
var ErrUnexpectedStatus = errors.New("Jira returned a non-success status")

// ErrForeignURL indicates a link outside the configured Jira site was about to receive credentials.
var ErrForeignURL = errors.New("URL does not belong to the configured Jira site")
