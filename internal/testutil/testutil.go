package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Git runs a git command in dir and returns its trimmed output, failing
// the test on any error.
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// InitTestRepo initializes a git repository in the given directory with an initial commit.
// It configures the repo with test user credentials and creates a test.txt file.
// If content is empty, it defaults to "test".
func InitTestRepo(t *testing.T, dir string, content ...string) {
	t.Helper()

	// Initialize git repo with 'main' as the default branch
	Git(t, dir, "init", "--initial-branch=main")
	Git(t, dir, "config", "user.email", "test@example.com")
	Git(t, dir, "config", "user.name", "Test User")

	// Determine content to write
	fileContent := "test"
	if len(content) > 0 && content[0] != "" {
		fileContent = content[0]
	}

	// Create an initial commit
	testFile := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(testFile, []byte(fileContent), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	Git(t, dir, "add", ".")
	Git(t, dir, "commit", "-m", "initial commit")
}

// AddTrackingRef records branch as existing under remote by writing its
// tracking reference at the current HEAD. The remote is registered with
// the repository's own path as URL; nothing is ever fetched.
func AddTrackingRef(t *testing.T, dir, remote, branch string) {
	t.Helper()

	cmd := exec.Command("git", "-C", dir, "remote", "add", remote, dir)
	_ = cmd.Run() // already registered is fine
	Git(t, dir, "update-ref", "refs/remotes/"+remote+"/"+branch, "HEAD")
}
