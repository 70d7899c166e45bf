package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	logLevel string
	// Log is the cmd package logger, configured in PersistentPreRunE from --log-level.
	Log zerolog.Logger
)

// configureLogger points the global zerolog logger at stderr and applies levelStr.
// stdout stays free for protocol frames in serve mode.
func configureLogger(levelStr string) error {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil || levelStr == "" {
		log.Warn().Msgf("Invalid log level '%s', defaulting to 'info'", levelStr)
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = log.Logger.With().Timestamp().Logger()
	Log = log.Logger

	Log.Debug().Msgf("Log level set to '%s'", level.String())
	return nil
}

func persistentPreRunLogic(cmd *cobra.Command, args []string) error {
	showVersion, _ := cmd.Flags().GetBool("version")
	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version)
		os.Exit(0)
	}
	return configureLogger(logLevel)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jiramcp",
	Short: "Jira tools for MCP clients",
	Long: `jiramcp exposes Jira issue operations as MCP tools over stdio.

The same tools can be listed and called from the command line, and the
create command drafts new issues from a short natural-language request.`,
	PersistentPreRunE: persistentPreRunLogic,
	SilenceUsage:      true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if Log.GetLevel() == zerolog.Disabled {
			_ = configureLogger("info")
		}
		Log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

// RootCmd returns the root command for in-process execution with custom streams and args.
func RootCmd() *cobra.Command {
	return rootCmd
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(jiramcp completion bash)

Zsh:
  $ jiramcp completion zsh > "${fpath[1]}/_jiramcp"

Fish:
  $ jiramcp completion fish | source

PowerShell:
  PS> jiramcp completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		default:
			return fmt.Errorf("unsupported shell type %q", args[0])
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Set log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("version", false, "Show application version")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text|json|yaml)")

	rootCmd.AddCommand(completionCmd)
}
