package git

import (
	"fmt"
	"strings"
)

// workingState summarizes what `git status --porcelain=v2` reported.
type workingState struct {
	staged   bool
	worktree bool
}

func (s workingState) dirty() bool {
	return s.staged || s.worktree
}

// HasUncommittedChanges checks if the working tree carries uncommitted
// work: tracked modifications, staged or unstaged, or staged new files.
// Untracked files that were never staged do not count.
func (r *Runner) HasUncommittedChanges() (bool, error) {
	out, err := r.run("status", "--porcelain=v2")
	if err != nil {
		return false, fmt.Errorf("failed to read working tree status: %w", err)
	}
	return parseStatusV2(out).dirty(), nil
}

// parseStatusV2 scans porcelain v2 status records. Ordinary changes (1),
// renames and copies (2) and unmerged entries (u) mark the tree dirty;
// untracked (?) and ignored (!) records are skipped.
func parseStatusV2(out string) workingState {
	var st workingState
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		switch line[0] {
		case '1', '2':
			if line[2] != '.' {
				st.staged = true
			}
			if line[3] != '.' {
				st.worktree = true
			}
		case 'u':
			st.staged = true
			st.worktree = true
		}
		if st.staged && st.worktree {
			break
		}
	}
	return st
}
