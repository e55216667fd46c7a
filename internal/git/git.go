package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"switchyard/internal/gitops"
)

// commandTimeout bounds a single git invocation so a hung hook or
// credential helper cannot wedge the tool.
const commandTimeout = 30 * time.Second

// Runner implements gitops.Ops by shelling out to the git executable.
// All commands run against one working directory, passed to git with -C.
type Runner struct {
	dir     string
	remote  string
	timeout time.Duration
	logger  zerolog.Logger
}

// New creates a Runner operating on dir. Tracking references are looked
// up under remote; the empty string selects origin.
func New(dir, remote string, logger zerolog.Logger) *Runner {
	if remote == "" {
		remote = "origin"
	}
	return &Runner{
		dir:     dir,
		remote:  remote,
		timeout: commandTimeout,
		logger:  logger,
	}
}

// run executes git with args in the runner's directory and returns
// trimmed stdout. Failures come back as *gitops.CommandError carrying
// the captured stderr.
func (r *Runner) run(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	cmdArgs := append([]string{"-C", r.dir}, args...)
	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	exit := -1
	if cmd.ProcessState != nil {
		exit = cmd.ProcessState.ExitCode()
	}
	r.logger.Debug().
		Strs("args", args).
		Int("exit", exit).
		Dur("elapsed", time.Since(start)).
		Msg("git command")

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s: %w", r.timeout, err)
		}
		return "", &gitops.CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// exitStatus returns the exit code carried by err, or -1 when the
// process never ran to completion.
func exitStatus(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// quietMiss reports whether err is a probe answering no: exit status 1
// with nothing written to stderr.
func quietMiss(err error) bool {
	var cmdErr *gitops.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Stderr != "" {
		return false
	}
	return exitStatus(err) == 1
}

// IsInsideWorkTree checks whether the runner's directory is inside a
// working tree. A bare repository answers false.
func (r *Runner) IsInsideWorkTree() (bool, error) {
	out, err := r.run("rev-parse", "--is-inside-work-tree")
	if err != nil {
		// Exit status 128 means there is no repository here at all
		if exitStatus(err) == 128 {
			return false, nil
		}
		return false, fmt.Errorf("failed to detect work tree: %w", err)
	}
	return out == "true", nil
}

// CurrentBranch returns the checked-out branch name, or the empty
// string when HEAD is detached.
func (r *Runner) CurrentBranch() (string, error) {
	out, err := r.run("branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}
	return out, nil
}
