package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Candidates are the file names Discover looks for, in order.
var Candidates = []string{
	"behat.yml",
	"behat.yaml",
	"behat.dist.yml",
	"behat.toml",
}

// ErrNotFound is returned by Discover when no candidate file exists.
var ErrNotFound = errors.New("no configuration file found")

// Discover returns the configuration file for dir: the first candidate in
// dir itself, otherwise the first candidate at the root of the git worktree
// that contains dir.
func Discover(dir string) (string, error) {
	if path, ok := firstCandidate(dir); ok {
		return path, nil
	}

	root, err := worktreeRoot(dir)
	if err != nil {
		return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
	}
	if path, ok := firstCandidate(root); ok {
		return path, nil
	}
	return "", fmt.Errorf("%w in %s or %s", ErrNotFound, dir, root)
}

func firstCandidate(dir string) (string, bool) {
	for _, name := range Candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func worktreeRoot(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}
