package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExternalToolError reports a failed or non-zero git invocation. Stderr holds
// the tool's diagnostic output.
type ExternalToolError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *ExternalToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("git %s failed: %s", strings.Join(e.Args, " "), msg)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// IsExternalToolError reports whether err wraps an *ExternalToolError.
func IsExternalToolError(err error) bool {
	var ete *ExternalToolError
	return errors.As(err, &ete)
}

// validateRoot validates and normalizes a git repository root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	// Check for null bytes (potential injection)
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}

	cleaned := filepath.Clean(root)
	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}

	return abs, nil
}

// run executes git in root and returns stdout. Any start failure or non-zero
// exit becomes an *ExternalToolError carrying stderr.
func run(ctx context.Context, root string, args ...string) ([]byte, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return nil, &ExternalToolError{Args: args, Err: err}
	}
	var stdout, stderr bytes.Buffer
	// quotepath=off keeps non-ASCII paths verbatim in name-only output
	base := []string{"-C", validRoot, "-c", "core.quotepath=off"}
	cmd := exec.CommandContext(ctx, "git", append(base, args...)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, &ExternalToolError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// StagedPaths lists files added or modified in the index relative to HEAD.
func StagedPaths(ctx context.Context, root string) ([]string, error) {
	out, err := run(ctx, root, "diff", "--cached", "--name-only", "-z", "--diff-filter=AM")
	if err != nil {
		return nil, err
	}
	return splitPaths(out), nil
}

// WorktreePaths lists files added or modified on disk relative to the index.
func WorktreePaths(ctx context.Context, root string) ([]string, error) {
	out, err := run(ctx, root, "diff", "--name-only", "-z", "--diff-filter=AM")
	if err != nil {
		return nil, err
	}
	return splitPaths(out), nil
}

// ShowStaged returns the index version of path.
func ShowStaged(ctx context.Context, root, path string) ([]byte, error) {
	return run(ctx, root, "show", ":"+path)
}

// TopLevel returns the worktree root of the repository containing root.
// Paths reported by diff are relative to it.
func TopLevel(ctx context.Context, root string) (string, error) {
	out, err := run(ctx, root, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return filepath.FromSlash(strings.TrimRight(string(out), "\r\n")), nil
}

// splitPaths splits NUL-terminated (-z) git output, dropping blanks and
// repeated entries while keeping first-seen order. Names are verbatim, so
// quotes, tabs and backslashes survive.
func splitPaths(out []byte) []string {
	var paths []string
	seen := map[string]bool{}
	for _, p := range strings.Split(string(out), "\x00") {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}
	return paths
}

// Available reports whether a git binary is on PATH.
func Available() (string, bool) {
	p, err := exec.LookPath("git")
	return p, err == nil
}
