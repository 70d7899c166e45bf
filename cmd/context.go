package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/karolswdev/jiramcp/internal/config"
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the drafting context file (context.md)",
	Long: `Shows, edits or appends to context.md, the persistent context sent to the
LLM with every 'jiramcp create' request.`,
}

func contextShowRunE(cp ConfigProvider, out io.Writer) error {
	content, err := cp.LoadContext()
	if err != nil {
		return fmt.Errorf("failed to read context file: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		fmt.Fprintln(out, "Context file is empty or does not exist yet.")
		return nil
	}
	fmt.Fprintln(out, content)
	return nil
}

// contextAddRunE appends entry as one line to context.md, creating the file if needed.
func contextAddRunE(cp ConfigProvider, entry string, out io.Writer) error {
	if strings.TrimSpace(entry) == "" {
		return fmt.Errorf("context entry cannot be empty")
	}
	configDir, err := cp.EnsureConfigDir()
	if err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}
	path := filepath.Join(configDir, config.DefaultContextFileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to open context file for appending")
		return fmt.Errorf("failed to open context file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, entry); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to write entry to context file")
		return fmt.Errorf("failed to write to context file: %w", err)
	}
	log.Info().Str("path", path).Msg("Entry added to context file")
	fmt.Fprintln(out, "Entry added to context file.")
	return nil
}

// editorCommand returns $EDITOR, or a platform default.
func editorCommand() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the context file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return contextShowRunE(GetProvider().Config, cmd.OutOrStdout())
	},
}

var contextEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the context file with $EDITOR",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := GetProvider().Config.EnsureConfigDir()
		if err != nil {
			return fmt.Errorf("failed to ensure config directory: %w", err)
		}
		path := filepath.Join(configDir, config.DefaultContextFileName)
		editor := editorCommand()
		log.Debug().Str("editor", editor).Str("path", path).Msg("Launching editor")

		editorCmd := exec.Command(editor, path)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr
		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("failed to run editor '%s': %w", editor, err)
		}
		return nil
	},
}

var contextAddCmd = &cobra.Command{
	Use:   "add [entry]",
	Short: "Append a line to the context file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return contextAddRunE(GetProvider().Config, args[0], cmd.OutOrStdout())
	},
}

func init() {
	contextCmd.AddCommand(contextShowCmd)
	contextCmd.AddCommand(contextEditCmd)
	contextCmd.AddCommand(contextAddCmd)
	rootCmd.AddCommand(contextCmd)
}
