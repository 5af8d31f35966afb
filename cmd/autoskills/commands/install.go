package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/autoskills/internal/errors"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <owner/repo@skill>",
	Short: "Install a public skill into the library",
	Long: `Clone owner/repo, locate the named skill inside it and copy the skill
directory into the skills directory. An installed skill of the same name is
replaced.`,
	Example: `  autoskills install anthropics/skills@pdf`,
	Args:    userArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runInstall(ctx context.Context, w io.Writer, pkg string) error {
	repo := newRepository(ctx)
	inst, err := newInstaller(ctx, repo).Install(ctx, pkg)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrInvalidInput):
			return errors.NewUserError(err, "Use the form owner/repo@skill")
		case errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err, "Check the skill name with 'autoskills search'")
		}
		return err
	}

	fmt.Fprintf(w, "%s Installed %s to %s\n", okMark("✓"), inst.Package, inst.Path)
	if msg := linkMessage(inst.Link, filepath.Join(repo.AgentsDir(), inst.Package.Skill)); msg != "" {
		fmt.Fprintln(w, msg)
	}
	return nil
}
