package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/autoskills/internal/errors"
)

var initPath string

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "",
		"directory to create the skill in (default: the skills directory)")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new skill from the template",
	Long: `Create a new skill directory containing a template SKILL.md and empty
scripts/, references/ and assets/ directories.

The name must be lowercase letters and digits separated by single hyphens.`,
	Example: `  autoskills init my-skill
  autoskills init my-skill --path ./skills`,
	Args: userArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd.Context(), cmd.OutOrStdout(), args[0], initPath)
	},
}

func runInit(ctx context.Context, w io.Writer, name, dir string) error {
	repo := newRepository(ctx)
	skillDir, err := repo.Init(ctx, name, dir)
	if err != nil {
		switch {
		case errors.Is(err, errors.ErrAlreadyExists):
			return errors.NewUserError(err, "Choose another name or remove the existing directory")
		case errors.Is(err, errors.ErrInvalidInput):
			return errors.NewUserError(err, "Use lowercase letters, digits and single hyphens, e.g. pdf-tools")
		}
		return err
	}

	fmt.Fprintf(w, "%s Created skill directory: %s\n", okMark("✓"), skillDir)
	fmt.Fprintf(w, "%s Created SKILL.md\n", okMark("✓"))
	fmt.Fprintf(w, "%s Created resource directories (scripts/, references/, assets/)\n", okMark("✓"))
	fmt.Fprintf(w, "\n%s Skill %q initialized at %s\n", okMark("✓"), name, skillDir)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "1. Edit SKILL.md to complete the TODO items")
	fmt.Fprintln(w, "2. Delete unused resource directories")
	fmt.Fprintf(w, "3. Run: autoskills add %s -y\n", skillDir)
	return nil
}

// userArgs marks argument validation failures as user errors.
func userArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.NewUserError(err, fmt.Sprintf("Usage: %s", cmd.UseLine()))
		}
		return nil
	}
}
