package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/autoskills/internal/errors"
)

func init() {
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a skill and its discovery link",
	Args:    userArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemove(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func runRemove(ctx context.Context, w io.Writer, name string) error {
	deleted, err := newRepository(ctx).Delete(ctx, name)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			return errors.NewUserError(err, "")
		}
		return err
	}
	if !deleted {
		return errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "skill %q", name), "Run 'autoskills list' to see installed skills")
	}
	fmt.Fprintf(w, "%s Removed skill %q\n", okMark("✓"), name)
	return nil
}
