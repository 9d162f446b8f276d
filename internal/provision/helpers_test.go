// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCalculateDirHashIgnoresModTime(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"setup.py":               "# setup\n",
		"pkg/__init__.py":        "",
		"examples/example_12.py": "print('ok')\n",
	}

	first := t.TempDir()
	second := t.TempDir()
	writeTree(t, first, files)
	writeTree(t, second, files)

	// Skew mtimes so only content-based hashing makes the trees equal.
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(filepath.Join(second, "setup.py"), old, old); err != nil {
		t.Fatal(err)
	}

	h1, err := CalculateDirHash(first)
	if err != nil {
		t.Fatalf("CalculateDirHash() error = %v", err)
	}
	h2, err := CalculateDirHash(second)
	if err != nil {
		t.Fatalf("CalculateDirHash() error = %v", err)
	}
	if h1 != h2 {
		t.Error("identical trees with different mtimes should hash equally")
	}
}

func TestCalculateDirHashDetectsContentChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"setup.py": "# v1\n"})

	before, err := CalculateDirHash(dir)
	if err != nil {
		t.Fatal(err)
	}

	writeTree(t, dir, map[string]string{"setup.py": "# v2\n"})
	after, err := CalculateDirHash(dir)
	if err != nil {
		t.Fatal(err)
	}

	if before == after {
		t.Error("content change should change the directory hash")
	}
}

func TestCalculateDirHashSkipsGitMetadata(t *testing.T) {
	t.Parallel()

	plain := t.TempDir()
	checkout := t.TempDir()
	writeTree(t, plain, map[string]string{"setup.py": "# setup\n"})
	writeTree(t, checkout, map[string]string{
		"setup.py":  "# setup\n",
		".git/HEAD": "ref: refs/heads/main\n",
	})

	h1, err := CalculateDirHash(plain)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := CalculateDirHash(checkout)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Error(".git contents should not affect the directory hash")
	}
}

func TestCalculateDirHashIncludesExecutableBit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bin := filepath.Join(dir, "scip")
	if err := os.WriteFile(bin, []byte("ELF"), 0o644); err != nil {
		t.Fatal(err)
	}

	before, err := CalculateDirHash(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Chmod(bin, 0o755); err != nil {
		t.Fatal(err)
	}
	after, err := CalculateDirHash(dir)
	if err != nil {
		t.Fatal(err)
	}

	if before == after {
		t.Error("flipping the executable bit should change the directory hash")
	}
}

func TestCopyDirSkipsGit(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"setup.py":  "# setup\n",
		".git/HEAD": "ref: refs/heads/main\n",
	})

	dst := filepath.Join(t.TempDir(), "copy")
	if err := CopyDir(src, dst); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dst, "setup.py")); err != nil {
		t.Errorf("copy is missing setup.py: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, ".git")); !os.IsNotExist(err) {
		t.Error("copy should not contain .git")
	}
}

func TestCopyFilePreservesMode(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "scip")
	if err := os.WriteFile(src, []byte("ELF"), 0o755); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "scip")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&0o111 == 0 {
		t.Error("copied file lost its executable bit")
	}
}
