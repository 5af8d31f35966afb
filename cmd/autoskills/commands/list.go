package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/skill"
)

// descriptionWidth is how much of a description the text listing shows.
const descriptionWidth = 60

var listFormat string

func init() {
	listCmd.Flags().StringVarP(&listFormat, "format", "o", "text", "output format: text, json, yaml, toml")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List personal skills",
	Example: `  autoskills list
  autoskills list --format json`,
	Args: userArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runList(cmd.Context(), cmd.OutOrStdout(), listFormat)
	},
}

// listOutput is the structured form of the listing.
type listOutput struct {
	SkillsDir string          `json:"skills_dir" yaml:"skills_dir" toml:"skills_dir"`
	Count     int             `json:"count" yaml:"count" toml:"count"`
	Skills    []skill.Summary `json:"skills" yaml:"skills" toml:"skills"`
}

func runList(ctx context.Context, w io.Writer, format string) error {
	repo := newRepository(ctx)
	skills, err := repo.List(ctx)
	if err != nil {
		return err
	}
	out := listOutput{SkillsDir: repo.Dir(), Count: len(skills), Skills: skills}

	switch format {
	case "", "text":
		return outputListText(w, out)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	case "toml":
		data, err := toml.Marshal(out)
		if err != nil {
			return errors.Wrap(err, "encoding toml")
		}
		_, err = w.Write(data)
		return err
	default:
		return errors.NewUserError(errors.Newf("unknown format %q", format), "Use --format text, json, yaml or toml")
	}
}

func outputListText(w io.Writer, out listOutput) error {
	if out.Count == 0 {
		fmt.Fprintln(w, "No personal skills found.")
	} else {
		fmt.Fprintf(w, "\n%s\n\n", bold(fmt.Sprintf("Personal Skills (%d):", out.Count)))
		for _, s := range out.Skills {
			desc := "(no description)"
			if s.Description != "" {
				desc = truncate(s.Description, descriptionWidth)
			}
			fmt.Fprintf(w, "  • %s\n", okMark(s.Name))
			fmt.Fprintf(w, "    %s\n\n", desc)
		}
	}
	fmt.Fprintf(w, "Skills directory: %s\n", faint(out.SkillsDir))
	return nil
}
