package commands

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/thoreinstein/autoskills/internal/git"
	"github.com/thoreinstein/autoskills/internal/logging"
	"github.com/thoreinstein/autoskills/internal/registry"
	"github.com/thoreinstein/autoskills/internal/skill"
)

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	bold     = color.New(color.Bold).SprintFunc()
	faint    = color.New(color.FgHiBlack).SprintFunc()
)

func newRepository(ctx context.Context) *skill.Repository {
	return skill.NewRepository(skill.Options{
		Dir:       cfg.SkillsDir,
		AgentsDir: cfg.AgentsSkillsDir,
		Logger:    logging.FromContext(ctx),
	})
}

func newSearcher(ctx context.Context) *registry.Searcher {
	return registry.NewSearcher(cfg.Search, registry.WithSearchLogger(logging.FromContext(ctx)))
}

func newInstaller(ctx context.Context, repo *skill.Repository) *registry.Installer {
	logger := logging.FromContext(ctx)
	return registry.NewInstaller(repo, registry.InstallerOptions{
		Cloner: git.New(logger),
		Config: cfg.Install,
		Logger: logger,
	})
}

// linkMessage describes a discovery link outcome, or "" when there is
// nothing worth printing.
func linkMessage(res skill.LinkResult, linkPath string) string {
	switch res {
	case skill.LinkCreated:
		return fmt.Sprintf("%s Created symlink: %s", okMark("✓"), linkPath)
	case skill.LinkFailed:
		return fmt.Sprintf("%s Could not create symlink %s (see log)", warnMark("!"), linkPath)
	default:
		return ""
	}
}

// truncate shortens s to maxLen runes, adding "..." only when it cut
// something.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
