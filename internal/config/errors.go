package config

import "errors"

// Sentinel errors for configuration loading and processing.

// ErrConfigRead indicates an error occurred while reading the config file.
var ErrConfigRead = errors.New("failed to read configuration file")

// ErrConfigParse indicates an error occurred while parsing the config file.
var ErrConfigParse = errors.New("failed to parse configuration file")

// ErrLinksRead indicates an error occurred while reading the links file.
var ErrLinksRead = errors.New("failed to read links file")

// ErrLinksParse indicates an error occurred while parsing the links file.
var ErrLinksParse = errors.New("failed to parse links file")

// ErrSystemPromptRead indicates an error occurred while reading the system prompt file.
var ErrSystemPromptRead = errors.New("failed to read system prompt file")

// ErrContextRead indicates an error occurred while reading the context file.
var ErrContextRead = errors.New("failed to read context file")

// ErrConfigDirCreate indicates an error occurred while creating the config directory.
var ErrConfigDirCreate = errors.New("failed to create config directory")

// ErrConfigDirStat indicates an error occurred while checking the config directory.
var ErrConfigDirStat = errors.New("failed to check config directory")

// ErrConfigDirNotDir indicates the config path exists but is not a directory.
var ErrConfigDirNotDir = errors.New("config path exists but is not a directory")

// ErrDefaultFileWrite indicates an error occurred while writing a default config file.
var ErrDefaultFileWrite = errors.New("failed to write default config file")

// ErrDefaultFileStat indicates an error occurred while checking a default config file.
var ErrDefaultFileStat = errors.New("failed to check default config file")

// ErrProjectMappingFailed indicates that a project alias could not be mapped to a key.
var ErrProjectMappingFailed = errors.New("could not map project alias to a known project key")

// ErrKeyringSet indicates an error occurred while setting a key in the OS keyring.
var ErrKeyringSet = errors.New("failed to set key in OS keyring")

// ErrKeyringGet indicates an error occurred while getting a key from the OS keyring (excluding 'not found').
var ErrKeyringGet = errors.New("failed to get key from OS keyring")

// ErrAPIKeyNotFound is returned when the drafting model API key is in neither the keychain nor the environment.
var ErrAPIKeyNotFound = errors.New("LLM API key not found in OS keychain or environment variable " + EnvAPIKeyName)

// ErrJiraTokenNotFound is returned when the Jira API token is in neither the keychain nor the environment.
var ErrJiraTokenNotFound = errors.New("Jira API token not found in OS keychain or environment variable " + EnvJiraTokenName)
