package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/autoskills/internal/errors"
	"github.com/thoreinstein/autoskills/internal/paths"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "AUTOSKILLS"

// Config is the resolved configuration handed to each component.
type Config struct {
	SkillsDir       string        `mapstructure:"skills_dir" yaml:"skills_dir"`
	AgentsSkillsDir string        `mapstructure:"agents_skills_dir" yaml:"agents_skills_dir"`
	Debug           bool          `mapstructure:"debug" yaml:"debug"`
	Search          SearchConfig  `mapstructure:"search" yaml:"search"`
	Install         InstallConfig `mapstructure:"install" yaml:"install"`
}

// SearchConfig controls the external skill search command.
type SearchConfig struct {
	// Command is the argv prefix; the query is appended as the last argument.
	Command []string      `mapstructure:"command" yaml:"command"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// MaxResults caps the results kept from one search; zero keeps all.
	MaxResults int `mapstructure:"max_results" yaml:"max_results"`
}

// InstallConfig controls how public skills are cloned.
type InstallConfig struct {
	CloneBaseURL string        `mapstructure:"clone_base_url" yaml:"clone_base_url"`
	Depth        int           `mapstructure:"depth" yaml:"depth"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Defaults for keys that have no natural zero value.
var (
	DefaultSearchCommand = []string{"npx", "skills", "find"}
	DefaultCloneBaseURL  = "https://github.com"
	DefaultCloneDepth    = 1
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("skills_dir", "AUTOSKILLS_DIR", "AUTOSKILLS_SKILLS_DIR")
	_ = v.BindEnv("agents_skills_dir", "AGENTS_SKILLS_DIR", "AUTOSKILLS_AGENTS_SKILLS_DIR")
	_ = v.BindEnv("debug", "AUTOSKILLS_DEBUG")

	v.SetDefault("skills_dir", "")
	v.SetDefault("agents_skills_dir", "")
	v.SetDefault("debug", false)
	v.SetDefault("search.command", DefaultSearchCommand)
	v.SetDefault("search.timeout", time.Duration(0))
	v.SetDefault("search.max_results", 0)
	v.SetDefault("install.clone_base_url", DefaultCloneBaseURL)
	v.SetDefault("install.depth", DefaultCloneDepth)
	v.SetDefault("install.timeout", time.Duration(0))
	return v
}

// searchPaths lists where config.yaml is looked for when no explicit path is
// given.
func searchPaths() []string {
	if dir := os.Getenv("AUTOSKILLS_CONFIG_DIR"); dir != "" {
		return []string{dir}
	}
	return []string{".", paths.ConfigDir()}
}

// Load reads the configuration. An explicit path must exist; with an empty
// path a missing config file is not an error and defaults apply.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		for _, p := range searchPaths() {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// defaults only
		case os.IsNotExist(err) || errors.As(err, &notFound):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrNotFound)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	cfg.applyDefaults()

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidInput)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	cfg := &Config{
		Search: SearchConfig{
			Command: append([]string(nil), DefaultSearchCommand...),
		},
		Install: InstallConfig{
			CloneBaseURL: DefaultCloneBaseURL,
			Depth:        DefaultCloneDepth,
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.SkillsDir == "" {
		c.SkillsDir = paths.DefaultSkillsDir()
	}
	if c.AgentsSkillsDir == "" {
		c.AgentsSkillsDir = paths.DefaultAgentsSkillsDir()
	}
	c.SkillsDir = paths.ExpandHome(c.SkillsDir)
	c.AgentsSkillsDir = paths.ExpandHome(c.AgentsSkillsDir)
	if len(c.Search.Command) == 1 {
		// A single string from the environment: "npx skills find".
		c.Search.Command = strings.Fields(c.Search.Command[0])
	}
	c.Install.CloneBaseURL = strings.TrimRight(c.Install.CloneBaseURL, "/")
}
