package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/autoskills/cmd"
	"github.com/thoreinstein/autoskills/internal/logging"
	"github.com/thoreinstein/autoskills/internal/server"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the skill library as MCP tools over stdio",
	Long: `Run an MCP server on stdin and stdout exposing the skill library to agents:
list_skills, get_skill, create_skill, update_skill, delete_skill,
search_skill, review_task and autoskill_quick.

Logs go to stderr (and --log-file); stdout carries protocol messages only.`,
	Args: userArgs(cobra.NoArgs),
	RunE: func(c *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	repo := newRepository(ctx)
	s := server.New(server.Deps{
		Library:   repo,
		Finder:    newSearcher(ctx),
		Installer: newInstaller(ctx, repo),
		Logger:    logger,
		Version:   cmd.Version,
	})
	logger.Info("serving skills", "skills_dir", repo.Dir())
	return server.Serve(ctx, s, os.Stdin, os.Stdout, logger)
}
