package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/veto-dev/veto/internal/detectors"
	"github.com/veto-dev/veto/internal/scope"
	"github.com/veto-dev/veto/internal/types"
)

// ErrNoConfig is returned when no config file was found.
var ErrNoConfig = errors.New("no config file found")

// FileConfig is the on-disk configuration shape, shared by the TOML and YAML
// formats. Nil fields were not set in the file.
type FileConfig struct {
	Output       OutputConfig       `toml:"output" yaml:"output"`
	Scope        ScopeConfig        `toml:"scope" yaml:"scope"`
	Allowlist    AllowlistConfig    `toml:"allowlist" yaml:"allowlist"`
	EntropyGuard EntropyGuardConfig `toml:"entropy_guard" yaml:"entropy_guard"`
}

type OutputConfig struct {
	Format *string `toml:"format" yaml:"format"`   // text|table|json|sarif
	FailOn *string `toml:"fail_on" yaml:"fail_on"` // low|medium|high|critical
}

type ScopeConfig struct {
	Mode *string `toml:"mode" yaml:"mode"` // staged|worktree|repo
}

type AllowlistConfig struct {
	Patterns []string `toml:"patterns" yaml:"patterns"`
}

// EntropyGuardConfig configures the entropy check. An explicitly empty
// ignore_ext list clears the defaults.
type EntropyGuardConfig struct {
	Enabled   *bool    `toml:"enabled" yaml:"enabled"`
	MinLength *int     `toml:"min_length" yaml:"min_length"`
	Threshold *float64 `toml:"threshold" yaml:"threshold"`
	IgnoreExt []string `toml:"ignore_ext" yaml:"ignore_ext"`
	Exclude   []string `toml:"exclude" yaml:"exclude"`
	Threads   *int     `toml:"threads" yaml:"threads"`
}

// localNames is the repo-local search order. veri.toml is the deprecated
// name of veto.toml.
var localNames = []string{"veto.toml", ".veto.yml", ".veto.yaml", "veri.toml"}

// LoadFile reads a config file, choosing the decoder by extension (.toml,
// otherwise YAML).
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(b)).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// LoadLocal searches repoRoot for a config file and returns it with the path
// it was read from.
func LoadLocal(repoRoot string) (FileConfig, string, error) {
	for _, name := range localNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			cfg, err := LoadFile(p)
			return cfg, p, err
		}
	}
	return FileConfig{}, "", ErrNoConfig
}

// LoadGlobal loads the user config from $XDG_CONFIG_HOME/veto or ~/.config/veto.
func LoadGlobal() (FileConfig, string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return FileConfig{}, "", ErrNoConfig
	}
	for _, name := range []string{"config.toml", "config.yml", "config.yaml"} {
		p := filepath.Join(base, "veto", name)
		if _, err := os.Stat(p); err == nil {
			cfg, err := LoadFile(p)
			return cfg, p, err
		}
	}
	return FileConfig{}, "", ErrNoConfig
}

// IsDeprecated reports whether path uses the legacy veri.toml name.
func IsDeprecated(path string) bool {
	return filepath.Base(path) == "veri.toml"
}

// Formats lists the accepted output formats.
var Formats = []string{"text", "table", "json", "sarif"}

// Settings is the fully resolved configuration for one invocation.
type Settings struct {
	Format string
	FailOn types.Severity
	Scope  scope.Mode
	Policy detectors.Policy
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Format: "text",
		FailOn: types.SevHigh,
		Scope:  scope.Staged,
		Policy: detectors.DefaultPolicy(),
	}
}

// Apply overlays the fields set in fc onto s. Numeric policy values are not
// range-checked; enumerated strings are.
func (s Settings) Apply(fc FileConfig) (Settings, error) {
	if v := fc.Output.Format; v != nil {
		f, err := ParseFormat(*v)
		if err != nil {
			return s, err
		}
		s.Format = f
	}
	if v := fc.Output.FailOn; v != nil {
		sev, err := types.ParseSeverity(*v)
		if err != nil {
			return s, fmt.Errorf("output.fail_on: %w", err)
		}
		s.FailOn = sev
	}
	if v := fc.Scope.Mode; v != nil {
		m, err := scope.ParseMode(*v)
		if err != nil {
			return s, fmt.Errorf("scope.mode: %w", err)
		}
		s.Scope = m
	}
	if fc.Allowlist.Patterns != nil {
		s.Policy.Allowlist = append([]string(nil), fc.Allowlist.Patterns...)
	}
	eg := fc.EntropyGuard
	if eg.Enabled != nil {
		s.Policy.Enabled = *eg.Enabled
	}
	if eg.MinLength != nil {
		s.Policy.MinLength = *eg.MinLength
	}
	if eg.Threshold != nil {
		s.Policy.Threshold = *eg.Threshold
	}
	if eg.IgnoreExt != nil {
		s.Policy.IgnoreExt = append([]string(nil), eg.IgnoreExt...)
	}
	if eg.Exclude != nil {
		s.Policy.Exclude = append([]string(nil), eg.Exclude...)
	}
	if eg.Threads != nil {
		s.Policy.Threads = *eg.Threads
	}
	return s, nil
}

// ParseFormat validates an output format name.
func ParseFormat(s string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want %s)", s, strings.Join(Formats, "|"))
}

// FromSettings renders s as a fully populated FileConfig, suitable for
// writing a starter config file.
func FromSettings(s Settings) FileConfig {
	format := s.Format
	failOn := s.FailOn.String()
	mode := s.Scope.String()
	p := s.Policy
	enabled, minLen, threshold, threads := p.Enabled, p.MinLength, p.Threshold, p.Threads
	return FileConfig{
		Output:    OutputConfig{Format: &format, FailOn: &failOn},
		Scope:     ScopeConfig{Mode: &mode},
		Allowlist: AllowlistConfig{Patterns: nonNil(p.Allowlist)},
		EntropyGuard: EntropyGuardConfig{
			Enabled:   &enabled,
			MinLength: &minLen,
			Threshold: &threshold,
			IgnoreExt: nonNil(p.IgnoreExt),
			Exclude:   nonNil(p.Exclude),
			Threads:   &threads,
		},
	}
}

// Encode writes fc in the format implied by path's extension.
func Encode(w io.Writer, path string, fc FileConfig) error {
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		return toml.NewEncoder(w).Encode(fc)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return err
	}
	return enc.Close()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
