// Package commands implements the CLI commands for autoskills.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/autoskills/cmd"
	"github.com/thoreinstein/autoskills/internal/config"
	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// cfg is the configuration resolved before any command runs.
var cfg = config.Default()

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/autoskills/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("autoskills version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.NewUserError(err, fmt.Sprintf("Run '%s --help' for usage", c.CommandPath()))
	})
}

var rootCmd = &cobra.Command{
	Use:   "autoskills",
	Short: "Manage a personal library of AI agent skills",
	Long: `autoskills manages a personal library of AI agent skills.

Each skill is a directory holding a SKILL.md file (frontmatter plus Markdown
instructions) and optional scripts/, references/ and assets/. Skills live in
the skills directory (AUTOSKILLS_DIR, default ~/.autoskills/personal-skills)
and are linked into the agents skills directory (AGENTS_SKILLS_DIR, default
~/.agents/skills) so agent runtimes discover them.

The same library is served to agents as MCP tools by "autoskills serve".`,
	Example: `  # Scaffold a new skill
  autoskills init my-skill

  # Add an existing skill directory to the library
  autoskills add ./my-skill -y

  # List personal skills
  autoskills list

  # Find and install a public skill
  autoskills search pdf --interactive`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, loadErr := config.Load(configPath)
		debug := loaded != nil && loaded.Debug
		if err := setupLogging(cmd, debug); err != nil {
			return err
		}
		logging.ConfigureColor(cmd.OutOrStdout())

		if loadErr != nil {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return errors.NewUserError(loadErr, "Fix the config file or pass --config")
		}
		cfg = loaded
		logging.FromContext(cmd.Context()).Debug("configuration loaded",
			"skills_dir", cfg.SkillsDir,
			"agents_skills_dir", cfg.AgentsSkillsDir)
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags. debug
// comes from the config file and applies only when neither flags nor the
// environment choose a level.
func setupLogging(cmd *cobra.Command, debug bool) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass either -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, then the environment, then the config file
		if v == 0 {
			if val, ok := os.LookupEnv("AUTOSKILLS_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			} else if debug {
				v = 2
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, ok := logging.ParseFormat(logFormat)
	if !ok {
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat), "Use --log-format text or json")
	}

	var out io.Writer = cmd.ErrOrStderr()
	var file io.Writer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		file = f
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Format: format,
		Output: out,
		File:   file,
	})
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// Execute runs the root command. Arguments, when given, replace os.Args[1:].
func Execute(args ...string) error {
	if len(args) > 0 {
		rootCmd.SetArgs(args)
	}
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) && isUsageError(err) {
		return errors.NewUserError(err, "Run 'autoskills --help' for usage")
	}
	return err
}

func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "accepts ", "requires at least", "requires at most", "unknown flag", "unknown shorthand flag"} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}

// ReportError prints err, and its suggestion when there is one, for the user.
func ReportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "Suggestion: %s\n", exitErr.Suggestion)
	}
	for _, d := range errors.Details(err) {
		fmt.Fprintf(w, "  %s\n", strings.ReplaceAll(strings.TrimSpace(d), "\n", "\n  "))
	}
}
