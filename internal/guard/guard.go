// Package guard implements the decision procedure for safely creating
// or switching branches.
package guard

import (
	"fmt"

	"github.com/rs/zerolog"

	"switchyard/internal/gitops"
)

// Outcome classifies what an evaluation decided.
type Outcome int

const (
	// Blocked means the environment forbids any action.
	Blocked Outcome = iota
	// AlreadyOnBranch means the target branch is checked out.
	AlreadyOnBranch
	// WillSwitch means the branch exists and can be switched to.
	WillSwitch
	// WillCreate means the branch does not exist and would be created.
	WillCreate
)

func (o Outcome) String() string {
	switch o {
	case Blocked:
		return "blocked"
	case AlreadyOnBranch:
		return "already-on-branch"
	case WillSwitch:
		return "will-switch"
	case WillCreate:
		return "will-create"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// EvaluationResult is the read-only product of one evaluation. Reason
// is populated whenever the outcome is Blocked; Advice optionally adds
// a remediation hint.
type EvaluationResult struct {
	TargetBranch  string
	Outcome       Outcome
	Reason        string
	Advice        string
	CurrentBranch string
}

// ApplyResult reports the terminal state of one apply. A command the
// underlying tool rejected shows up here as Succeeded false, not as an
// error.
type ApplyResult struct {
	Succeeded bool
	Message   string
}

// Guard decides and performs branch switches against one repository.
type Guard struct {
	ops    gitops.Ops
	logger zerolog.Logger
}

// New creates a Guard using ops to query and mutate the repository.
func New(ops gitops.Ops, logger zerolog.Logger) *Guard {
	return &Guard{ops: ops, logger: logger}
}

// Evaluate runs the ordered feasibility checks for switching to
// branchName: repository validity, uncommitted changes, current branch,
// branch existence. The first decisive check determines the outcome and
// the remaining queries are never issued. Evaluate performs read-only
// queries; a query that cannot be answered comes back as an error, not
// as a Blocked result.
func (g *Guard) Evaluate(branchName string) (EvaluationResult, error) {
	if branchName == "" {
		return EvaluationResult{}, fmt.Errorf("branch name must not be empty")
	}

	res := EvaluationResult{TargetBranch: branchName}

	inTree, err := g.ops.IsInsideWorkTree()
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("failed to check repository: %w", err)
	}
	if !inTree {
		res.Outcome = Blocked
		res.Reason = "Not a repository"
		g.logEvaluation(res)
		return res, nil
	}

	dirty, err := g.ops.HasUncommittedChanges()
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("failed to check working tree: %w", err)
	}
	if dirty {
		res.Outcome = Blocked
		res.Reason = "Cannot change branch: uncommitted changes detected"
		res.Advice = "Commit or stash your changes before switching branches"
		g.logEvaluation(res)
		return res, nil
	}

	current, err := g.ops.CurrentBranch()
	if err != nil {
		return EvaluationResult{}, fmt.Errorf("failed to resolve current branch: %w", err)
	}
	res.CurrentBranch = current
	if current == branchName {
		res.Outcome = AlreadyOnBranch
		g.logEvaluation(res)
		return res, nil
	}

	exists, err := g.branchExists(branchName)
	if err != nil {
		return EvaluationResult{}, err
	}
	if exists {
		res.Outcome = WillSwitch
	} else {
		res.Outcome = WillCreate
	}
	g.logEvaluation(res)
	return res, nil
}

// Apply performs the action for branchName. The repository state is
// re-derived at call time instead of trusting an earlier
// EvaluationResult, since it may have changed while the user was
// deciding. At most one mutating command is dispatched and a failed
// one is never retried.
func (g *Guard) Apply(branchName string) (ApplyResult, error) {
	if branchName == "" {
		return ApplyResult{}, fmt.Errorf("branch name must not be empty")
	}

	current, err := g.ops.CurrentBranch()
	if err != nil {
		return ApplyResult{}, fmt.Errorf("failed to resolve current branch: %w", err)
	}
	if current == branchName {
		return ApplyResult{
			Succeeded: true,
			Message:   fmt.Sprintf("Already on branch '%s'", branchName),
		}, nil
	}

	exists, err := g.branchExists(branchName)
	if err != nil {
		return ApplyResult{}, err
	}

	if exists {
		if err := g.ops.SwitchTo(branchName); err != nil {
			g.logger.Debug().Err(err).Str("branch", branchName).Msg("switch rejected")
			return ApplyResult{
				Succeeded: false,
				Message:   fmt.Sprintf("Failed to switch to branch '%s'", branchName),
			}, nil
		}
		return ApplyResult{
			Succeeded: true,
			Message:   fmt.Sprintf("Switched to branch '%s'", branchName),
		}, nil
	}

	if err := g.ops.CreateAndSwitchTo(branchName); err != nil {
		g.logger.Debug().Err(err).Str("branch", branchName).Msg("create rejected")
		return ApplyResult{
			Succeeded: false,
			Message:   fmt.Sprintf("Failed to create branch '%s'", branchName),
		}, nil
	}
	return ApplyResult{
		Succeeded: true,
		Message:   fmt.Sprintf("Created and switched to branch '%s'", branchName),
	}, nil
}

// branchExists checks the local reference first and consults the
// tracking reference only when that misses.
func (g *Guard) branchExists(name string) (bool, error) {
	local, err := g.ops.LocalBranchExists(name)
	if err != nil {
		return false, fmt.Errorf("failed to check local branch: %w", err)
	}
	if local {
		return true, nil
	}
	remote, err := g.ops.RemoteBranchExists(name)
	if err != nil {
		return false, fmt.Errorf("failed to check tracking reference: %w", err)
	}
	return remote, nil
}

func (g *Guard) logEvaluation(res EvaluationResult) {
	g.logger.Debug().
		Str("branch", res.TargetBranch).
		Str("current", res.CurrentBranch).
		Stringer("outcome", res.Outcome).
		Msg("evaluated")
}
