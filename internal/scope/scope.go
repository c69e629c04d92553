package scope

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/veto-dev/veto/internal/git"
	"github.com/veto-dev/veto/internal/logging"
)

// Mode selects which part of the repository a scan examines.
type Mode int

const (
	// Staged examines the index version of files added or modified since HEAD.
	Staged Mode = iota
	// Worktree examines on-disk content of files changed in the working tree.
	Worktree
	// Repo is reserved for a full-repository audit and resolves to nothing.
	Repo
)

func (m Mode) String() string {
	switch m {
	case Staged:
		return "staged"
	case Worktree:
		return "worktree"
	case Repo:
		return "repo"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "staged", "":
		return Staged, nil
	case "worktree":
		return Worktree, nil
	case "repo":
		return Repo, nil
	}
	return Staged, fmt.Errorf("unknown scope %q (want staged|worktree|repo)", s)
}

// File is a resolved scan target: repo-relative path and decoded text.
type File struct {
	Path    string
	Content string
}

// binarySniff is how many leading bytes are checked for NUL.
const binarySniff = 1024

// Resolver turns a Mode into the set of files to scan. It only issues
// read-only git queries and file reads.
type Resolver struct {
	Logger *zap.Logger
}

// Resolve returns the files for mode under root, in git's enumeration order.
// A failed enumeration yields a *git.ExternalToolError; unreadable, binary or
// non-UTF-8 content is skipped.
func (r Resolver) Resolve(ctx context.Context, root string, mode Mode) ([]File, error) {
	switch mode {
	case Staged:
		return r.staged(ctx, root)
	case Worktree:
		return r.worktree(ctx, root)
	case Repo:
		// full-repository audit is not implemented yet
		return nil, nil
	}
	return nil, fmt.Errorf("unknown scope mode %d", int(mode))
}

func (r Resolver) staged(ctx context.Context, root string) ([]File, error) {
	paths, err := git.StagedPaths(ctx, root)
	if err != nil {
		return nil, err
	}
	log := logging.OrNop(r.Logger)
	out := make([]File, 0, len(paths))
	for _, p := range paths {
		b, err := git.ShowStaged(ctx, root, p)
		if err != nil {
			log.Debug("skip: staged content unavailable", zap.String("path", p), zap.Error(err))
			continue
		}
		text, ok := decode(b)
		if !ok {
			log.Debug("skip: binary or non-utf8", zap.String("path", p))
			continue
		}
		out = append(out, File{Path: p, Content: text})
	}
	return out, nil
}

func (r Resolver) worktree(ctx context.Context, root string) ([]File, error) {
	paths, err := git.WorktreePaths(ctx, root)
	if err != nil {
		return nil, err
	}
	// diff paths are relative to the top of the worktree, not to root
	top, err := git.TopLevel(ctx, root)
	if err != nil {
		return nil, err
	}
	log := logging.OrNop(r.Logger)
	out := make([]File, 0, len(paths))
	for _, p := range paths {
		full := filepath.Join(top, filepath.FromSlash(p))
		info, err := os.Stat(full)
		if err != nil || !info.Mode().IsRegular() {
			log.Debug("skip: path vanished or not a regular file", zap.String("path", p))
			continue
		}
		b, err := os.ReadFile(full)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug("skip: path vanished", zap.String("path", p))
				continue
			}
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		text, ok := decode(b)
		if !ok {
			log.Debug("skip: binary or non-utf8", zap.String("path", p))
			continue
		}
		out = append(out, File{Path: p, Content: text})
	}
	return out, nil
}

// decode returns b as text, or false when it looks binary or is not valid
// UTF-8.
func decode(b []byte) (string, bool) {
	if looksBinary(b) || !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

func looksBinary(b []byte) bool {
	n := binarySniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}
