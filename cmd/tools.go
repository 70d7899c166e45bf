package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/karolswdev/jiramcp/internal/dispatch"
)

// toolListing is the json/yaml shape of one descriptor. The contract is decoded so yaml
// renders it as a mapping instead of a byte string.
type toolListing struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	InputSchema any    `json:"inputSchema" yaml:"inputSchema"`
}

func toolsListRunE(tools ToolDispatcher, outputFormat string, out io.Writer) error {
	descriptors := tools.List()

	switch outputFormat {
	case "json", "yaml":
		listing := make([]toolListing, 0, len(descriptors))
		for _, d := range descriptors {
			var schema any
			if err := json.Unmarshal(d.InputSchema, &schema); err != nil {
				return fmt.Errorf("invalid input contract for %s: %w", d.Name, err)
			}
			listing = append(listing, toolListing{Name: d.Name, Description: d.Description, InputSchema: schema})
		}
		if outputFormat == "json" {
			data, err := json.MarshalIndent(listing, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to format tools as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		data, err := yaml.Marshal(listing)
		if err != nil {
			return fmt.Errorf("failed to format tools as YAML: %w", err)
		}
		fmt.Fprint(out, string(data))

	default:
		for _, d := range descriptors {
			fmt.Fprintf(out, "%-18s %s\n", d.Name, d.Description)
		}
	}
	return nil
}

// readToolArgs returns the call arguments from --args or --args-file. Neither yields {}.
func readToolArgs(argsFlag, argsFile string, stdin io.Reader) (json.RawMessage, error) {
	var raw []byte
	switch {
	case argsFlag != "" && argsFile != "":
		return nil, fmt.Errorf("%w: use either --args or --args-file", ErrInvalidArgs)
	case argsFile == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read arguments from stdin: %w", err)
		}
		raw = data
	case argsFile != "":
		data, err := os.ReadFile(argsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read arguments file: %w", err)
		}
		raw = data
	default:
		raw = []byte(argsFlag)
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return json.RawMessage("{}"), nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	return json.RawMessage(trimmed), nil
}

// printResult writes the envelope as text, or as json/yaml when asked.
func printResult(res *dispatch.Result, outputFormat string, out io.Writer) error {
	switch outputFormat {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format result as JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("failed to format result as YAML: %w", err)
		}
		fmt.Fprint(out, string(data))
	default:
		fmt.Fprintln(out, res.Text())
	}
	return nil
}

func toolsCallRunE(ctx context.Context, tools ToolDispatcher, name string, args json.RawMessage, outputFormat string, out io.Writer) error {
	res := tools.Dispatch(ctx, name, args)
	if err := printResult(res, outputFormat, out); err != nil {
		return err
	}
	if res.IsError {
		return fmt.Errorf("%w: %s", ErrToolFailed, name)
	}
	return nil
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List and call the Jira tools locally",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered tools and their input contracts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tools, err := GetProvider().ToolDispatcher()
		if err != nil {
			printSetupHint(cmd.ErrOrStderr(), err)
			return err
		}
		outputFormat, _ := cmd.Flags().GetString("output")
		return toolsListRunE(tools, outputFormat, cmd.OutOrStdout())
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <tool-name>",
	Short: "Call one tool and print its result",
	Long: `Dispatches a single tool call through the same registry the MCP server uses.
Arguments are a JSON object given with --args, or read from --args-file ("-" for stdin).
The command exits non-zero when the tool reports an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		argsFlag, _ := cmd.Flags().GetString("args")
		argsFile, _ := cmd.Flags().GetString("args-file")
		callArgs, err := readToolArgs(argsFlag, argsFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		tools, err := GetProvider().ToolDispatcher()
		if err != nil {
			printSetupHint(cmd.ErrOrStderr(), err)
			return err
		}
		outputFormat, _ := cmd.Flags().GetString("output")
		return toolsCallRunE(cmd.Context(), tools, args[0], callArgs, outputFormat, cmd.OutOrStdout())
	},
}

func init() {
	toolsCallCmd.Flags().String("args", "", "Tool arguments as a JSON object")
	toolsCallCmd.Flags().String("args-file", "", "Read tool arguments from a file, or - for stdin")

	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsCallCmd)
	rootCmd.AddCommand(toolsCmd)
}
