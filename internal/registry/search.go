package registry

import (
	"context"
	"log/slog"
	"math"
	"os/exec"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/autoskills/internal/config"
	"github.com/thoreinstein/autoskills/internal/logging"
)

// Result is one public skill reported by the search command.
type Result struct {
	// Package is "owner/repo@skill".
	Package  string `json:"package" yaml:"package"`
	URL      string `json:"url" yaml:"url"`
	Installs int    `json:"installs" yaml:"installs"`
}

// DefaultResultURL is the skills directory page used when the search output
// does not carry a link.
const DefaultResultURL = "https://skills.sh/"

var (
	ansiEscape  = regexp.MustCompile(`\x1B\[[0-9;]*[mGKHFJA-Za-z]`)
	resultLine  = regexp.MustCompile(`^([\w.-]+/[\w.-]+@[\w./ -]+?)\s+(\d+(?:\.\d+)?[KkMm]?)\s+installs?$`)
	linkPrefix  = regexp.MustCompile(`^[└\\]\s*`)
	countSuffix = map[byte]float64{'k': 1e3, 'm': 1e6}
)

// ParseSearchOutput extracts results from the search command's output,
// sorted by install count, highest first. Lines that do not look like a
// result are ignored.
func ParseSearchOutput(output string) []Result {
	clean := ansiEscape.ReplaceAllString(output, "")
	clean = strings.ReplaceAll(clean, "\r", "")

	var lines []string
	for _, l := range strings.Split(clean, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	results := []Result{}
	for i, line := range lines {
		m := resultLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pkg := strings.TrimSpace(m[1])

		url := DefaultResultURL + strings.Replace(pkg, "@", "/", 1)
		if i+1 < len(lines) {
			next := linkPrefix.ReplaceAllString(strings.TrimSpace(lines[i+1]), "")
			if strings.HasPrefix(next, "https://") {
				url = next
			}
		}

		results = append(results, Result{
			Package:  pkg,
			URL:      url,
			Installs: ParseInstallCount(m[2]),
		})
	}

	slices.SortStableFunc(results, func(a, b Result) int { return b.Installs - a.Installs })
	return results
}

// ParseInstallCount converts "1.2K", "3M" or "1,204" to a number. Anything
// unparseable counts as zero.
func ParseInstallCount(s string) int {
	clean := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), ",", "")
	if clean == "" {
		return 0
	}
	if mult, ok := countSuffix[clean[len(clean)-1]]; ok {
		f, err := strconv.ParseFloat(clean[:len(clean)-1], 64)
		if err != nil {
			return 0
		}
		return int(math.Round(f * mult))
	}
	digits := clean
	if i := strings.IndexFunc(clean, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		digits = clean[:i]
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

// CommandRunner runs a command and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Searcher queries the public skills directory.
type Searcher struct {
	command    []string
	timeout    time.Duration
	maxResults int
	run        CommandRunner
	logger     *slog.Logger
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithRunner replaces the process runner.
func WithRunner(run CommandRunner) SearcherOption {
	return func(s *Searcher) { s.run = run }
}

// WithSearchLogger sets the logger.
func WithSearchLogger(logger *slog.Logger) SearcherOption {
	return func(s *Searcher) { s.logger = logger }
}

// NewSearcher returns a Searcher for the configured command.
func NewSearcher(cfg config.SearchConfig, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		command:    cfg.Command,
		timeout:    cfg.Timeout,
		maxResults: cfg.MaxResults,
		run:        execRunner,
		logger:     logging.NewDiscard(),
	}
	if len(s.command) == 0 {
		s.command = config.DefaultSearchCommand
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs the search command for query. A command that is missing or
// fails yields no results; the failure is only logged at debug.
func (s *Searcher) Search(ctx context.Context, query string) []Result {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	args := append(slices.Clone(s.command[1:]), query)
	s.logger.DebugContext(ctx, "searching public skills", "command", s.command[0], "args", args)

	out, err := s.run(ctx, s.command[0], args...)
	if err != nil {
		s.logger.DebugContext(ctx, "search command failed", "error", err, "output", strings.TrimSpace(string(out)))
		return []Result{}
	}

	results := ParseSearchOutput(string(out))
	s.logger.Log(ctx, logging.LevelTrace, "parsed search output", "results", len(results))
	if s.maxResults > 0 && len(results) > s.maxResults {
		results = results[:s.maxResults]
	}
	return results
}
