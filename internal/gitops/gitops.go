// Package gitops defines the contract between the branch guard and the
// version-control executor that answers its queries.
package gitops

import (
	"fmt"
	"strings"
)

// Ops is the set of repository operations the branch guard depends on.
// This interface allows for mocking git operations in tests. The default
// implementation shells out to the git executable (internal/git); a
// pure-Go implementation backed by go-git is available as an alternative
// (internal/gitnative).
//
// Every query returns an explicit error so that "the answer is no" is
// never confused with "the question could not be asked".
type Ops interface {
	// IsInsideWorkTree reports whether the working directory is inside a
	// valid, non-bare working tree.
	IsInsideWorkTree() (bool, error)

	// HasUncommittedChanges reports whether the working tree carries
	// uncommitted work. Counted: any tracked modification, staged or
	// unstaged, and any staged new file. Untracked files that were never
	// staged do not count.
	HasUncommittedChanges() (bool, error)

	// CurrentBranch returns the name of the checked-out branch, or the
	// empty string when HEAD is detached.
	CurrentBranch() (string, error)

	// LocalBranchExists reports whether refs/heads/<name> exists.
	LocalBranchExists(name string) (bool, error)

	// RemoteBranchExists reports whether a tracking reference for name
	// exists under the remote the executor was configured with.
	RemoteBranchExists(name string) (bool, error)

	// SwitchTo checks out an existing branch.
	SwitchTo(name string) error

	// CreateAndSwitchTo creates a branch at HEAD and checks it out.
	CreateAndSwitchTo(name string) error
}

// CommandError describes a version-control command that was invoked and
// failed. It distinguishes a command the tool ran and rejected from a
// command that could not be run at all; the latter is wrapped in Err with
// no Stderr captured.
type CommandError struct {
	Args   []string // arguments passed to the executor, without the program name
	Stderr string   // captured standard error, trimmed
	Err    error    // underlying execution error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), e.Stderr)
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
