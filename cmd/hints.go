package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/karolswdev/jiramcp/internal/config"
	"github.com/karolswdev/jiramcp/internal/jira"
	"github.com/karolswdev/jiramcp/internal/llm"
)

// printSetupHint writes an actionable hint for configuration and credential failures.
// Errors it does not recognise get a generic line.
func printSetupHint(w io.Writer, err error) {
	switch {
	case errors.Is(err, config.ErrConfigRead), errors.Is(err, config.ErrConfigParse):
		fmt.Fprintln(w, "Error reading or parsing config.yaml. Please check its format and permissions.")
		fmt.Fprintln(w, "You might need to run 'jiramcp config init'.")
	case errors.Is(err, config.ErrConfigDirCreate), errors.Is(err, config.ErrConfigDirStat), errors.Is(err, config.ErrConfigDirNotDir):
		fmt.Fprintln(w, "Error accessing the configuration directory. Please check permissions.")
	case errors.Is(err, config.ErrLinksRead), errors.Is(err, config.ErrLinksParse):
		fmt.Fprintln(w, "Error reading or parsing links.yaml. Please check its format and permissions.")
	case errors.Is(err, config.ErrSystemPromptRead), errors.Is(err, config.ErrContextRead):
		fmt.Fprintln(w, "Error reading system_prompt.txt or context.md. Please check their permissions.")
	case errors.Is(err, jira.ErrBaseURLMissing):
		fmt.Fprintln(w, "Error: the Jira base URL is not configured.")
		fmt.Fprintf(w, "Set 'jira.base_url' in config.yaml or the %s environment variable (e.g. https://your-site.atlassian.net/rest/api/3).\n", config.EnvJiraBaseURL)
	case errors.Is(err, jira.ErrBaseURLParse):
		fmt.Fprintf(w, "Error parsing the Jira base URL: %v\n", err)
	case errors.Is(err, jira.ErrCredentialsMissing):
		fmt.Fprintln(w, "Error: the Jira account email is not configured.")
		fmt.Fprintf(w, "Set 'jira.email' in config.yaml or the %s environment variable.\n", config.EnvJiraEmail)
	case errors.Is(err, config.ErrJiraTokenNotFound):
		fmt.Fprintln(w, "Error: Jira API token not found.")
		fmt.Fprintf(w, "Store it with 'jiramcp config set-key --jira <token>' or set the %s environment variable.\n", config.EnvJiraTokenName)
	case errors.Is(err, config.ErrAPIKeyNotFound):
		fmt.Fprintln(w, "Error: LLM API key not found.")
		fmt.Fprintf(w, "Store it with 'jiramcp config set-key <key>' or set the %s environment variable.\n", config.EnvAPIKeyName)
	case errors.Is(err, config.ErrKeyringGet), errors.Is(err, config.ErrKeyringSet):
		fmt.Fprintf(w, "Error accessing the OS keychain: %v\n", err)
	case errors.Is(err, ErrUnsupportedProvider):
		fmt.Fprintf(w, "Error: %v. Only 'openai' is supported.\n", err)
	case errors.Is(err, llm.ErrCompletion):
		fmt.Fprintf(w, "Error communicating with the LLM API: %v\n", err)
		fmt.Fprintln(w, "Please check your network connection and API key/endpoint configuration.")
	case errors.Is(err, llm.ErrResponseParse), errors.Is(err, llm.ErrEmptyResponse):
		fmt.Fprintf(w, "Error processing the response from the LLM: %v\n", err)
		fmt.Fprintln(w, "The LLM might have returned an unexpected format. Check logs for details.")
	default:
		fmt.Fprintf(w, "An unexpected error occurred: %v\n", err)
	}
}
