package config

import (
	"testing"

	"github.com/veto-dev/veto/internal/scope"
	"github.com/veto-dev/veto/internal/types"
)

func TestLoadEnv(t *testing.T) {
	t.Setenv("VETO_OUTPUT__FAIL_ON", "critical")
	t.Setenv("VETO_SCOPE__MODE", "worktree")
	t.Setenv("VETO_ENTROPY_GUARD__MIN_LENGTH", "40")
	t.Setenv("VETO_ENTROPY_GUARD__THRESHOLD", "3.75")
	t.Setenv("VETO_ENTROPY_GUARD__ENABLED", "false")
	t.Setenv("VETO_ALLOWLIST__PATTERNS", "EXAMPLE, dummy,,")

	fc, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	s, err := Defaults().Apply(fc)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if s.FailOn != types.SevCritical || s.Scope != scope.Worktree || s.Format != "text" {
		t.Fatalf("unexpected settings: %#v", s)
	}
	if s.Policy.MinLength != 40 || s.Policy.Threshold != 3.75 || s.Policy.Enabled {
		t.Fatalf("unexpected policy: %#v", s.Policy)
	}
	if len(s.Policy.Allowlist) != 2 || s.Policy.Allowlist[0] != "EXAMPLE" || s.Policy.Allowlist[1] != "dummy" {
		t.Fatalf("unexpected allowlist: %#v", s.Policy.Allowlist)
	}
	if len(s.Policy.IgnoreExt) != len(Defaults().Policy.IgnoreExt) {
		t.Fatalf("unset list must keep defaults: %#v", s.Policy.IgnoreExt)
	}
}

func TestLoadEnv_Unset(t *testing.T) {
	fc, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if fc.Output.Format != nil || fc.EntropyGuard.MinLength != nil || fc.Allowlist.Patterns != nil {
		t.Fatalf("expected empty overrides, got %#v", fc)
	}
}

func TestLoadEnv_BadNumber(t *testing.T) {
	t.Setenv("VETO_ENTROPY_GUARD__THREADS", "many")
	if _, err := LoadEnv(); err == nil {
		t.Fatal("expected error for non-numeric threads")
	}
}
