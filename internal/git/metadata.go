package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Metadata is best-effort repository information for diagnostics.
type Metadata struct {
	Root   string
	Branch string
	Commit string
}

// FindRoot returns the worktree root of the repository containing start.
func FindRoot(start string) (string, error) {
	validStart, err := validateRoot(start)
	if err != nil {
		return "", err
	}
	repo, err := gogit.PlainOpenWithOptions(validStart, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", start, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("repository at %s has no worktree: %w", start, err)
	}
	return wt.Filesystem.Root(), nil
}

// RepoMetadata reads root, branch and HEAD commit using go-git, without
// spawning git. A repository without commits yields empty Branch and Commit.
func RepoMetadata(root string) (Metadata, error) {
	validRoot, err := validateRoot(root)
	if err != nil {
		return Metadata{}, err
	}
	repo, err := gogit.PlainOpenWithOptions(validRoot, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Metadata{}, fmt.Errorf("open repository at %s: %w", root, err)
	}
	md := Metadata{Root: validRoot}
	if wt, err := repo.Worktree(); err == nil {
		md.Root = wt.Filesystem.Root()
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return md, nil
		}
		return md, fmt.Errorf("resolve HEAD: %w", err)
	}
	md.Commit = head.Hash().String()
	if head.Name().IsBranch() {
		md.Branch = head.Name().Short()
	} else {
		md.Branch = "HEAD"
	}
	return md, nil
}
