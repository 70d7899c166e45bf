package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// searchArgs mirrors the search_issues input contract.
type searchArgs struct {
	JQL           string   `json:"jql"`
	MaxResults    int      `json:"maxResults,omitempty"`
	Fields        []string `json:"fields,omitempty"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}

// searchRunE builds search_issues arguments from the query and flags and dispatches them.
func searchRunE(ctx context.Context, tools ToolDispatcher, jql string, maxResults int, fields []string, pageToken, outputFormat string, out io.Writer) error {
	args, err := json.Marshal(searchArgs{
		JQL:           jql,
		MaxResults:    maxResults,
		Fields:        fields,
		NextPageToken: pageToken,
	})
	if err != nil {
		return fmt.Errorf("failed to encode search arguments: %w", err)
	}
	Log.Debug().RawJSON("args", args).Msg("Dispatching search_issues")
	return toolsCallRunE(ctx, tools, "search_issues", args, outputFormat, out)
}

// splitFields parses a comma-separated --fields value, dropping empty entries.
func splitFields(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

var searchCmd = &cobra.Command{
	Use:   "search [JQL Query]",
	Short: "Search for Jira issues using JQL",
	Long: `Searches for Jira issues with a JQL query through the search_issues tool.
Provide the query as arguments or with the --jql flag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jqlFlag, _ := cmd.Flags().GetString("jql")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		fieldsFlag, _ := cmd.Flags().GetString("fields")
		pageToken, _ := cmd.Flags().GetString("next-page-token")
		outputFormat, _ := cmd.Flags().GetString("output")

		var jql string
		switch {
		case jqlFlag != "":
			jql = jqlFlag
		case len(args) > 0:
			jql = strings.Join(args, " ")
		default:
			fmt.Fprintln(cmd.ErrOrStderr(), "Error: No JQL query provided.")
			fmt.Fprintln(cmd.ErrOrStderr(), "Please provide the query as arguments or use the --jql flag.")
			return ErrNoQuery
		}

		tools, err := GetProvider().ToolDispatcher()
		if err != nil {
			printSetupHint(cmd.ErrOrStderr(), err)
			return err
		}
		return searchRunE(cmd.Context(), tools, jql, maxResults, splitFields(fieldsFlag), pageToken, outputFormat, cmd.OutOrStdout())
	},
}

func init() {
	searchCmd.Flags().String("jql", "", "JQL query string")
	searchCmd.Flags().Int("max-results", 50, "Maximum number of results to return (1-5000)")
	searchCmd.Flags().StringP("fields", "f", "", "Comma-separated fields to request (e.g. summary,status)")
	searchCmd.Flags().String("next-page-token", "", "Token from a previous search to fetch the next page")

	rootCmd.AddCommand(searchCmd)
}
