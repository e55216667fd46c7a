package git

import "fmt"

// LocalBranchExists checks if a local branch with the given name exists.
func (r *Runner) LocalBranchExists(name string) (bool, error) {
	return r.refExists("refs/heads/" + name)
}

// RemoteBranchExists checks if a tracking reference for the branch
// exists under the runner's configured remote.
func (r *Runner) RemoteBranchExists(name string) (bool, error) {
	return r.refExists("refs/remotes/" + r.remote + "/" + name)
}

// refExists probes one fully qualified reference. show-ref exits with
// status 1 and no output when the reference is absent.
func (r *Runner) refExists(ref string) (bool, error) {
	_, err := r.run("show-ref", "--verify", "--quiet", ref)
	if err != nil {
		if quietMiss(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check reference '%s': %w", ref, err)
	}
	return true, nil
}

// SwitchTo checks out an existing branch. --guess keeps the standard
// behavior of creating a local branch from a matching remote tracking
// reference even when the user has configured it off.
func (r *Runner) SwitchTo(name string) error {
	if _, err := r.run("switch", "--guess", "--", name); err != nil {
		return err
	}
	return nil
}

// CreateAndSwitchTo creates a new branch at the current HEAD and checks
// it out. Returns an error if the branch already exists or the switch
// is rejected.
func (r *Runner) CreateAndSwitchTo(name string) error {
	if _, err := r.run("switch", "-c", name); err != nil {
		return err
	}
	return nil
}
