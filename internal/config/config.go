// Package config provides configuration management for todosweep.
// Configuration is loaded from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (TODOSWEEP_*)
// 3. Project config (.todosweep/config.yaml in cwd)
// 4. Home config (~/.todosweep/config.yaml)
// 5. Defaults
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all todosweep configuration.
type Config struct {
	// Root is the directory containing the sibling repositories.
	Root string `yaml:"root" json:"root"`

	// Self is the directory name to exclude from enumeration, usually the
	// directory todosweep itself lives in.
	Self string `yaml:"self" json:"self"`

	// Repos restricts the scan to the named repositories. Empty = all.
	Repos []string `yaml:"repos" json:"repos"`

	// Out is the markdown report path.
	Out string `yaml:"out" json:"out"`

	// OutJSON is the optional JSON report path. Empty = no JSON output.
	OutJSON string `yaml:"out_json" json:"out_json"`

	// Markers are the tag words to scan for.
	Markers []string `yaml:"markers" json:"markers"`

	// IncludeExts is the file extension allowlist. Empty = defaults.
	IncludeExts []string `yaml:"include_exts" json:"include_exts"`

	// ExtraExcludeDirs extends the default directory denylist.
	ExtraExcludeDirs []string `yaml:"extra_exclude_dirs" json:"extra_exclude_dirs"`

	// MaxFileSize is the per-file size ceiling in bytes. 0 = default.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"`

	// Critical holds classifier settings.
	Critical CriticalConfig `yaml:"critical" json:"critical"`

	// NoRemoteLinks disables building remote line links.
	NoRemoteLinks bool `yaml:"no_remote_links" json:"no_remote_links"`

	// Branch overrides the detected branch in remote links.
	Branch string `yaml:"branch" json:"branch"`

	// Timestamp adds a generation timestamp to the report. Off by default:
	// rerunning on an unchanged tree must reproduce the report byte for byte.
	Timestamp bool `yaml:"timestamp" json:"timestamp"`

	// Jobs is the per-file scan concurrency. 0 = number of CPUs.
	Jobs int `yaml:"jobs" json:"jobs"`

	// FailOnCritical makes the scan command exit non-zero when critical
	// markers are found, for CI gating. Off by default: findings are
	// report content, not process failures.
	FailOnCritical bool `yaml:"fail_on_critical" json:"fail_on_critical"`

	// Verbose enables verbose output.
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// CriticalConfig holds classifier settings.
type CriticalConfig struct {
	// Words are the keywords that flag a marker as critical. Empty = defaults.
	Words []string `yaml:"words" json:"words"`

	// Window is how many leading characters of the marker text the
	// classifier inspects. 0 = default (100).
	Window int `yaml:"window" json:"window"`
}

// Default config values.
const (
	defaultRoot = ".."
	defaultOut  = "TODO.md"
)

// Default returns the default configuration. Self defaults to the current
// working directory's basename, the natural "don't scan myself" rule when
// todosweep runs from the aggregating directory.
func Default() *Config {
	self := ""
	if cwd, err := os.Getwd(); err == nil {
		self = filepath.Base(cwd)
	}
	return &Config{
		Root: defaultRoot,
		Self: self,
		Out:  defaultOut,
	}
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	homeConfig, _ := loadFromPath(homeConfigPath())
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	projectConfig, _ := loadFromPath(projectConfigPath())
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	cfg = applyEnv(cfg)

	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// homeConfigPath returns the home config path.
func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".todosweep", "config.yaml")
}

// projectConfigPath returns the project config path.
func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("TODOSWEEP_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".todosweep", "config.yaml")
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("TODOSWEEP_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("TODOSWEEP_SELF"); v != "" {
		cfg.Self = v
	}
	if v := os.Getenv("TODOSWEEP_OUT"); v != "" {
		cfg.Out = v
	}
	if v := os.Getenv("TODOSWEEP_OUT_JSON"); v != "" {
		cfg.OutJSON = v
	}
	if v := os.Getenv("TODOSWEEP_MARKERS"); v != "" {
		cfg.Markers = splitList(v)
	}
	if v := os.Getenv("TODOSWEEP_BRANCH"); v != "" {
		cfg.Branch = v
	}
	if v := os.Getenv("TODOSWEEP_VERBOSE"); v == "true" || v == "1" {
		cfg.Verbose = true
	}
	if v := os.Getenv("TODOSWEEP_FAIL_ON_CRITICAL"); v == "true" || v == "1" {
		cfg.FailOnCritical = true
	}
	if v := os.Getenv("TODOSWEEP_NO_REMOTE_LINKS"); v == "true" || v == "1" {
		cfg.NoRemoteLinks = true
	}
	return cfg
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeList overwrites dst with src when src is non-empty.
func mergeList(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
// Booleans merge with OR semantics: once enabled at any layer, they stay on.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Root, src.Root)
	mergeStr(&dst.Self, src.Self)
	mergeStr(&dst.Out, src.Out)
	mergeStr(&dst.OutJSON, src.OutJSON)
	mergeStr(&dst.Branch, src.Branch)
	mergeList(&dst.Repos, src.Repos)
	mergeList(&dst.Markers, src.Markers)
	mergeList(&dst.IncludeExts, src.IncludeExts)
	mergeList(&dst.ExtraExcludeDirs, src.ExtraExcludeDirs)
	mergeList(&dst.Critical.Words, src.Critical.Words)
	if src.MaxFileSize > 0 {
		dst.MaxFileSize = src.MaxFileSize
	}
	if src.Critical.Window > 0 {
		dst.Critical.Window = src.Critical.Window
	}
	if src.Jobs > 0 {
		dst.Jobs = src.Jobs
	}
	if src.Verbose {
		dst.Verbose = true
	}
	if src.Timestamp {
		dst.Timestamp = true
	}
	if src.FailOnCritical {
		dst.FailOnCritical = true
	}
	if src.NoRemoteLinks {
		dst.NoRemoteLinks = true
	}
	return dst
}
