package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/veto-dev/veto/internal/detectors"
	"github.com/veto-dev/veto/internal/scope"
	"github.com/veto-dev/veto/internal/types"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

const tomlBody = `
[output]
format = "json"
fail_on = "medium"

[scope]
mode = "worktree"

[allowlist]
patterns = ["EXAMPLE", "dummy"]

[entropy_guard]
enabled = true
min_length = 30
threshold = 4.5
ignore_ext = ["env"]
exclude = ["testdata/**"]
threads = 2
`

func TestLoadFile_TOML(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "veto.toml", tomlBody)
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Output.Format == nil || *cfg.Output.Format != "json" {
		t.Fatalf("expected format=json, got %#v", cfg.Output.Format)
	}
	if cfg.EntropyGuard.MinLength == nil || *cfg.EntropyGuard.MinLength != 30 {
		t.Fatalf("expected min_length=30, got %#v", cfg.EntropyGuard.MinLength)
	}
	if len(cfg.Allowlist.Patterns) != 2 {
		t.Fatalf("expected 2 allowlist patterns, got %#v", cfg.Allowlist.Patterns)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	body := "output:\n  fail_on: critical\nentropy_guard:\n  threshold: 3.5\n  ignore_ext: []\n"
	p := writeTemp(t, t.TempDir(), ".veto.yml", body)
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.EntropyGuard.Threshold == nil || *cfg.EntropyGuard.Threshold != 3.5 {
		t.Fatalf("expected threshold=3.5, got %#v", cfg.EntropyGuard.Threshold)
	}
	if cfg.EntropyGuard.IgnoreExt == nil || len(cfg.EntropyGuard.IgnoreExt) != 0 {
		t.Fatalf("expected explicit empty ignore_ext, got %#v", cfg.EntropyGuard.IgnoreExt)
	}
	if cfg.Output.Format != nil {
		t.Fatalf("expected unset format, got %q", *cfg.Output.Format)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "veto.toml", "[output\nformat=")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadLocal_SearchOrder(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "veri.toml", "[entropy_guard]\nmin_length = 1\n")
	writeTemp(t, dir, ".veto.yml", "entropy_guard:\n  min_length: 2\n")
	writeTemp(t, dir, "veto.toml", "[entropy_guard]\nmin_length = 3\n")

	cfg, p, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if filepath.Base(p) != "veto.toml" || *cfg.EntropyGuard.MinLength != 3 {
		t.Fatalf("expected veto.toml to win, got %s (%v)", p, *cfg.EntropyGuard.MinLength)
	}
	if IsDeprecated(p) {
		t.Fatal("veto.toml is not deprecated")
	}
}

func TestLoadLocal_DeprecatedName(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "veri.toml", "[scope]\nmode = \"repo\"\n")
	_, p, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if !IsDeprecated(p) {
		t.Fatalf("expected deprecated path, got %s", p)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	if _, _, err := LoadLocal(t.TempDir()); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, filepath.Join("veto", "config.toml"), "[entropy_guard]\nthreads = 9\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, _, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.EntropyGuard.Threads == nil || *cfg.EntropyGuard.Threads != 9 {
		t.Fatalf("expected threads=9 from global config, got %#v", cfg.EntropyGuard.Threads)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if _, _, err := LoadGlobal(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.Format != "text" || s.FailOn != types.SevHigh || s.Scope != scope.Staged {
		t.Fatalf("unexpected defaults: %#v", s)
	}
	if s.Policy.MinLength != detectors.DefaultMinLength || s.Policy.Threshold != detectors.DefaultThreshold || !s.Policy.Enabled {
		t.Fatalf("unexpected policy defaults: %#v", s.Policy)
	}
}

func TestApply_Layers(t *testing.T) {
	dir := t.TempDir()
	global, err := LoadFile(writeTemp(t, dir, "g.toml", "[entropy_guard]\nthreshold = 3.0\nmin_length = 10\n"))
	if err != nil {
		t.Fatal(err)
	}
	local, err := LoadFile(writeTemp(t, dir, "l.toml", tomlBody))
	if err != nil {
		t.Fatal(err)
	}
	s, err := Defaults().Apply(global)
	if err != nil {
		t.Fatal(err)
	}
	s, err = s.Apply(local)
	if err != nil {
		t.Fatal(err)
	}
	if s.Format != "json" || s.FailOn != types.SevMed || s.Scope != scope.Worktree {
		t.Fatalf("unexpected settings: %#v", s)
	}
	if s.Policy.MinLength != 30 || s.Policy.Threshold != 4.5 || s.Policy.Threads != 2 {
		t.Fatalf("local must override global: %#v", s.Policy)
	}
	if len(s.Policy.IgnoreExt) != 1 || s.Policy.IgnoreExt[0] != "env" {
		t.Fatalf("unexpected ignore_ext: %#v", s.Policy.IgnoreExt)
	}
}

func TestApply_NoSemanticValidation(t *testing.T) {
	neg := -1.0
	zero := 0
	s, err := Defaults().Apply(FileConfig{EntropyGuard: EntropyGuardConfig{Threshold: &neg, MinLength: &zero}})
	if err != nil {
		t.Fatalf("numeric values must be accepted as-is: %v", err)
	}
	if s.Policy.Threshold != -1 || s.Policy.MinLength != 0 {
		t.Fatalf("unexpected policy: %#v", s.Policy)
	}
}

func TestApply_RejectsUnknownEnums(t *testing.T) {
	bad := "sometimes"
	for _, fc := range []FileConfig{
		{Output: OutputConfig{Format: &bad}},
		{Output: OutputConfig{FailOn: &bad}},
		{Scope: ScopeConfig{Mode: &bad}},
	} {
		if _, err := Defaults().Apply(fc); err == nil {
			t.Fatalf("expected error for %#v", fc)
		}
	}
}

func TestFromSettings_EncodeRoundTrip(t *testing.T) {
	for _, name := range []string{"veto.toml", ".veto.yml"} {
		t.Run(name, func(t *testing.T) {
			want := Defaults()
			want.Policy.Allowlist = []string{"EXAMPLE"}
			p := filepath.Join(t.TempDir(), name)
			f, err := os.Create(p)
			if err != nil {
				t.Fatal(err)
			}
			if err := Encode(f, p, FromSettings(want)); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatal(err)
			}
			fc, err := LoadFile(p)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			got, err := Defaults().Apply(fc)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if got.Format != want.Format || got.FailOn != want.FailOn || got.Scope != want.Scope {
				t.Fatalf("output/scope mismatch: %#v", got)
			}
			if got.Policy.MinLength != want.Policy.MinLength || got.Policy.Threshold != want.Policy.Threshold {
				t.Fatalf("policy mismatch: %#v", got.Policy)
			}
			if len(got.Policy.IgnoreExt) != len(want.Policy.IgnoreExt) || len(got.Policy.Allowlist) != 1 {
				t.Fatalf("list mismatch: %#v", got.Policy)
			}
		})
	}
}
