package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/autoskills/internal/errors"
)

var addYes bool

func init() {
	addCmd.Flags().BoolVarP(&addYes, "yes", "y", false, "overwrite an existing skill of the same name")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a skill directory to the library",
	Long: `Copy a skill directory (one containing SKILL.md) into the skills directory
and link it into the agents skills directory.

The skill name is read from the SKILL.md name field, falling back to the
directory name. An existing skill of that name is only replaced with -y.`,
	Example: `  autoskills add ./my-skill
  autoskills add ~/.autoskills/personal-skills/my-skill -y`,
	Args: userArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd.Context(), cmd.OutOrStdout(), args[0], addYes)
	},
}

func runAdd(ctx context.Context, w io.Writer, path string, overwrite bool) error {
	repo := newRepository(ctx)
	res, err := repo.Add(ctx, path, overwrite)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrAlreadyExists):
			return errors.NewUserError(err, "Use -y flag to overwrite.")
		case errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err, "Pass a directory that contains SKILL.md")
		case errors.Is(err, errors.ErrInvalidInput):
			return errors.NewUserError(err, "Fix the name field in SKILL.md")
		}
		return err
	}

	if res.Copied {
		fmt.Fprintf(w, "%s Copied skill to %s\n", okMark("✓"), res.Path)
	}
	if msg := linkMessage(res.Link, filepath.Join(repo.AgentsDir(), res.Name)); msg != "" {
		fmt.Fprintln(w, msg)
	}
	fmt.Fprintf(w, "\n%s Skill %q added successfully!\n", okMark("✓"), res.Name)
	fmt.Fprintf(w, "Location: %s\n", res.Path)
	return nil
}
