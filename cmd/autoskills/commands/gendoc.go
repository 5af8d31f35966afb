package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/paths"
	"github.com/thoreinstein/autoskills/pkg/frontmatter"
)

var (
	genDocDir    string
	genDocFormat string
)

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "Output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "markdown or man")
	rootCmd.AddCommand(genDocCmd)
}

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   userArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runGenDoc(cmd.OutOrStdout(), genDocDir, genDocFormat)
	},
}

func runGenDoc(w io.Writer, dir, format string) error {
	if dir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "Pass --dir")
	}
	if err := paths.EnsureDir(dir, paths.DefaultDirPerm); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	rootCmd.DisableAutoGenTag = true
	switch format {
	case "markdown", "md":
		if err := doc.GenMarkdownTreeCustom(rootCmd, dir, filePrepender, linkHandler); err != nil {
			return errors.Wrap(err, "generating markdown")
		}
	case "man":
		header := &doc.GenManHeader{Title: "AUTOSKILLS", Section: "1"}
		if err := doc.GenManTree(rootCmd, header, dir); err != nil {
			return errors.Wrap(err, "generating man pages")
		}
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", format), "Use --format markdown or man")
	}

	fmt.Fprintf(w, "Documentation generated in %s\n", dir)
	return nil
}

// filePrepender writes a frontmatter header so the pages drop into a static
// site; autoskills_list.md gets the title "autoskills list".
func filePrepender(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(base, "_", " ")

	var meta frontmatter.Meta
	meta.Set("title", frontmatter.Text(title))
	meta.Set("description", frontmatter.Text("Reference for "+title))
	return frontmatter.Format(&meta, "")
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
