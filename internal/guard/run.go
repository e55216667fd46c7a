package guard

import (
	"fmt"

	"switchyard/internal/terminal"
)

// ConfirmFunc asks the user one yes/no question and reports the answer.
// An error means the answer could not be read at all.
type ConfirmFunc func(question string) (bool, error)

// Run evaluates branchName, narrates the verdict through rep, asks for
// confirmation when an action is pending and applies it. The returned
// value is the process exit code: 0 for success and for an explicit
// cancellation, 1 when blocked or when a command or query failed.
func (g *Guard) Run(rep terminal.Reporter, confirm ConfirmFunc, branchName string) int {
	rep.Info(fmt.Sprintf("Checking branch '%s'", branchName))

	res, err := g.Evaluate(branchName)
	if err != nil {
		rep.Error(err.Error())
		return 1
	}

	switch res.Outcome {
	case Blocked:
		rep.Error(res.Reason)
		if res.Advice != "" {
			rep.Warning(res.Advice)
		}
		return 1
	case AlreadyOnBranch:
		rep.Success(fmt.Sprintf("Already on branch '%s'", branchName))
		return 0
	case WillSwitch:
		rep.Info(fmt.Sprintf("Branch '%s' exists, will switch to it", branchName))
	case WillCreate:
		rep.Info(fmt.Sprintf("Branch '%s' does not exist, will create it", branchName))
	}

	ok, err := confirm("Do you want to proceed? (y/N): ")
	if err != nil {
		rep.Error(fmt.Sprintf("failed to read confirmation: %v", err))
		return 1
	}
	if !ok {
		rep.Info("Operation cancelled.")
		return 0
	}

	applied, err := g.Apply(branchName)
	if err != nil {
		rep.Error(err.Error())
		return 1
	}
	if !applied.Succeeded {
		rep.Error(applied.Message)
		return 1
	}
	rep.Success(applied.Message)
	return 0
}
