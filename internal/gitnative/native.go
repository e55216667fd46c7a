package gitnative

import (
	"errors"
	"fmt"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
)

// Repo implements gitops.Ops with go-git, reading and writing the
// repository directly instead of spawning the git executable.
type Repo struct {
	dir    string
	remote string
	logger zerolog.Logger
}

// New creates a Repo rooted at dir. Tracking references are looked up
// under remote; the empty string selects origin.
func New(dir, remote string, logger zerolog.Logger) *Repo {
	if remote == "" {
		remote = "origin"
	}
	return &Repo{
		dir:    dir,
		remote: remote,
		logger: logger,
	}
}

// open detects the repository containing dir, walking up parent
// directories the way git itself does.
func (r *Repo) open() (*gitlib.Repository, error) {
	return gitlib.PlainOpenWithOptions(r.dir, &gitlib.PlainOpenOptions{DetectDotGit: true})
}

func (r *Repo) worktree() (*gitlib.Repository, *gitlib.Worktree, error) {
	repo, err := r.open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open work tree: %w", err)
	}
	return repo, wt, nil
}

// IsInsideWorkTree reports whether dir is inside a repository with a
// working tree. A bare repository answers false.
func (r *Repo) IsInsideWorkTree() (bool, error) {
	repo, err := r.open()
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open repository: %w", err)
	}
	if _, err := repo.Worktree(); err != nil {
		if errors.Is(err, gitlib.ErrIsBareRepository) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open work tree: %w", err)
	}
	return true, nil
}

// HasUncommittedChanges reports whether the working tree carries
// uncommitted work. Tracked modifications and staged new files count;
// untracked files that were never staged do not.
func (r *Repo) HasUncommittedChanges() (bool, error) {
	_, wt, err := r.worktree()
	if err != nil {
		return false, err
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read working tree status: %w", err)
	}
	for _, st := range status {
		if st.Staging != gitlib.Unmodified && st.Staging != gitlib.Untracked {
			return true, nil
		}
		if st.Worktree != gitlib.Unmodified && st.Worktree != gitlib.Untracked {
			return true, nil
		}
	}
	return false, nil
}

// CurrentBranch returns the checked-out branch name, or the empty
// string when HEAD is detached. The HEAD reference is read without
// resolving it so an unborn branch still reports its name.
func (r *Repo) CurrentBranch() (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}
	ref, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if ref.Type() != plumbing.SymbolicReference || !ref.Target().IsBranch() {
		return "", nil
	}
	return ref.Target().Short(), nil
}

// LocalBranchExists checks if a local branch with the given name exists.
func (r *Repo) LocalBranchExists(name string) (bool, error) {
	return r.refExists(plumbing.NewBranchReferenceName(name))
}

// RemoteBranchExists checks if a tracking reference for the branch
// exists under the configured remote.
func (r *Repo) RemoteBranchExists(name string) (bool, error) {
	return r.refExists(plumbing.NewRemoteReferenceName(r.remote, name))
}

func (r *Repo) refExists(ref plumbing.ReferenceName) (bool, error) {
	repo, err := r.open()
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}
	if _, err := repo.Reference(ref, false); err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check reference '%s': %w", ref, err)
	}
	return true, nil
}

// SwitchTo checks out an existing branch. A branch present only as a
// tracking reference is materialized as a local branch first, the way
// git switch guesses one, including its upstream configuration.
func (r *Repo) SwitchTo(name string) error {
	repo, wt, err := r.worktree()
	if err != nil {
		return err
	}

	branch := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(branch, false); err == nil {
		r.logger.Debug().Str("branch", name).Msg("checkout")
		if err := wt.Checkout(&gitlib.CheckoutOptions{Branch: branch}); err != nil {
			return fmt.Errorf("failed to switch to branch '%s': %w", name, err)
		}
		return nil
	}

	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName(r.remote, name), true)
	if err != nil {
		return fmt.Errorf("no local branch or tracking reference for '%s': %w", name, err)
	}
	r.logger.Debug().Str("branch", name).Str("remote", r.remote).Msg("checkout from tracking reference")
	if err := wt.Checkout(&gitlib.CheckoutOptions{
		Hash:   remoteRef.Hash(),
		Branch: branch,
		Create: true,
	}); err != nil {
		return fmt.Errorf("failed to switch to branch '%s': %w", name, err)
	}
	return repo.CreateBranch(&config.Branch{
		Name:   name,
		Remote: r.remote,
		Merge:  branch,
	})
}

// CreateAndSwitchTo creates a new branch at the current HEAD and checks
// it out. Returns an error if the branch already exists.
func (r *Repo) CreateAndSwitchTo(name string) error {
	repo, wt, err := r.worktree()
	if err != nil {
		return err
	}

	branch := plumbing.NewBranchReferenceName(name)
	if _, err := repo.Reference(branch, false); err == nil {
		return fmt.Errorf("branch '%s' already exists", name)
	}
	r.logger.Debug().Str("branch", name).Msg("create branch")
	if err := wt.Checkout(&gitlib.CheckoutOptions{Branch: branch, Create: true}); err != nil {
		return fmt.Errorf("failed to create branch '%s': %w", name, err)
	}
	return nil
}
