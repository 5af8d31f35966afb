package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/registry"
)

var (
	searchInteractive bool
	searchJSON        bool
)

func init() {
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false, "pick a result and install it")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search public skills",
	Long: `Search the public skills directory with the configured search command
(default "npx skills find") and show matches ordered by install count.

With --interactive a fuzzy picker opens and the chosen skill is installed.`,
	Example: `  # Find PDF related skills
  autoskills search pdf

  # Pick one and install it
  autoskills search pdf --interactive`,
	Args: userArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		if searchInteractive {
			return runInteractiveSearch(cmd.Context(), cmd.OutOrStdout(), query)
		}
		return runSearch(cmd.Context(), cmd.OutOrStdout(), newSearcher(cmd.Context()), query, searchJSON)
	},
}

// finder is the search half of the registry, narrowed for tests.
type finder interface {
	Search(ctx context.Context, query string) []registry.Result
}

func runSearch(ctx context.Context, w io.Writer, f finder, query string, asJSON bool) error {
	results := f.Search(ctx, query)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintf(w, "No public skills found for %q.\n", query)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, bold("PACKAGE")+"\t"+bold("INSTALLS")+"\t"+bold("URL"))
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", okMark(r.Package), r.Installs, faint(r.URL))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nInstall with: autoskills install <package>\n")
	return nil
}

func runInteractiveSearch(ctx context.Context, w io.Writer, query string) error {
	results := newSearcher(ctx).Search(ctx, query)
	if len(results) == 0 {
		fmt.Fprintf(w, "No public skills found for %q.\n", query)
		return nil
	}

	idx, err := fuzzyfinder.Find(
		results,
		func(i int) string {
			return fmt.Sprintf("%s (%d installs)", results[i].Package, results[i].Installs)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			r := results[i]
			return fmt.Sprintf("Package: %s\nInstalls: %d\n\n%s", r.Package, r.Installs, r.URL)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive search failed")
	}

	return runInstall(ctx, w, results[idx].Package)
}
