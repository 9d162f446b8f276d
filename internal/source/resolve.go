// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"solvenv-cli/pkg/manifest"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrSourceUnavailable is the sentinel error wrapped by UnavailableError.
var ErrSourceUnavailable = errors.New("library source unavailable")

// UnavailableError is returned when the library source tree cannot be
// produced: the local path is missing, or the pinned checkout failed.
type UnavailableError struct {
	Library string
	Where   string
	Cause   error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("source for library %q unavailable at %s: %v", e.Library, e.Where, e.Cause)
}

// Unwrap returns ErrSourceUnavailable so callers can use errors.Is.
func (e *UnavailableError) Unwrap() error { return ErrSourceUnavailable }

// Resolve returns the absolute path of the library source directory,
// cloning and pinning it into cacheDir when the manifest names a repo.
// Resolution happens before any engine call, so a missing source aborts
// the pipeline without touching the container daemon.
func Resolve(ctx context.Context, lib manifest.LibrarySpec, cacheDir string) (string, error) {
	if lib.Path != "" {
		return resolveLocal(lib)
	}
	return resolveRepo(ctx, lib, cacheDir)
}

func resolveLocal(lib manifest.LibrarySpec) (string, error) {
	abs, err := filepath.Abs(lib.Path)
	if err != nil {
		return "", &UnavailableError{Library: lib.Name, Where: lib.Path, Cause: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", &UnavailableError{Library: lib.Name, Where: abs, Cause: err}
	}
	if !info.IsDir() {
		return "", &UnavailableError{Library: lib.Name, Where: abs, Cause: errors.New("not a directory")}
	}

	return abs, nil
}

// resolveRepo checks out lib.Repo at lib.Ref under cacheDir. Checkouts are
// keyed by name and ref: a pinned ref never changes, so an existing
// checkout is reused without contacting the remote.
func resolveRepo(ctx context.Context, lib manifest.LibrarySpec, cacheDir string) (string, error) {
	target := filepath.Join(cacheDir, "sources", checkoutName(lib))

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return target, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", &UnavailableError{Library: lib.Name, Where: target, Cause: err}
	}

	repo, err := git.PlainCloneContext(ctx, target, false, &git.CloneOptions{
		URL: lib.Repo,
	})
	if err != nil {
		_ = os.RemoveAll(target)
		return "", &UnavailableError{Library: lib.Name, Where: lib.Repo, Cause: err}
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(lib.Ref))
	if err != nil {
		_ = os.RemoveAll(target)
		return "", &UnavailableError{
			Library: lib.Name,
			Where:   lib.Repo,
			Cause:   fmt.Errorf("cannot resolve ref %q: %w", lib.Ref, err),
		}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(target)
		return "", &UnavailableError{Library: lib.Name, Where: target, Cause: err}
	}

	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
		_ = os.RemoveAll(target)
		return "", &UnavailableError{
			Library: lib.Name,
			Where:   target,
			Cause:   fmt.Errorf("checkout %s: %w", hash, err),
		}
	}

	return target, nil
}

// checkoutName builds a filesystem-safe cache key from the library name and
// pinned ref.
func checkoutName(lib manifest.LibrarySpec) string {
	ref := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, lib.Ref)
	return lib.Name + "@" + ref
}
