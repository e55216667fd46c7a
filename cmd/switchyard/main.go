// switchyard guards branch changes in a git repository behind an explicit
// confirmation step.
package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"switchyard/internal/config"
	"switchyard/internal/git"
	"switchyard/internal/gitnative"
	"switchyard/internal/gitops"
	"switchyard/internal/guard"
	"switchyard/internal/interactive"
	"switchyard/internal/terminal"
)

type rootFlags struct {
	dir     string
	remote  string
	backend string
	debug   bool
	noColor bool
}

// settings is the effective configuration after merging CLI flags over
// the values from .switchyard.yaml.
type settings struct {
	dir     string
	remote  string
	backend string
	color   string
}

func newRootCmd(code *int) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "switchyard BRANCH",
		Short: "Switch or create git branches behind a safety check and confirmation",
		Long: "Switchyard inspects the repository before touching it: it refuses to act\n" +
			"outside a repository or on top of uncommitted changes, tells you whether\n" +
			"BRANCH would be switched to or created, and only proceeds once you confirm.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			branch := args[0]
			if err := validateBranchName(branch); err != nil {
				return fmt.Errorf("invalid branch name: %w", err)
			}
			*code = run(*flags, branch, os.Stdin, os.Stdout)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.dir, "dir", "C", ".", "Run as if started in this directory")
	cmd.Flags().StringVar(&flags.remote, "remote", "", "Remote whose tracking references count as existing branches")
	cmd.Flags().StringVar(&flags.backend, "backend", "", "Git backend: cli or native")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug output")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func main() {
	code := 0
	cmd := newRootCmd(&code)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprint(os.Stderr, cmd.UsageString())
		code = 1
	}
	os.Exit(code)
}

// run wires the configured backend, reporter and prompter together and
// returns the process exit code.
func run(flags rootFlags, branch string, in io.Reader, out io.Writer) int {
	logger := newLogger(flags.debug)

	cfg, err := config.Load(flags.dir)
	if err != nil {
		terminal.NewReporter(out, false).Error(err.Error())
		return 1
	}
	s := resolveSettings(flags, cfg)

	ops, err := backendFor(s, logger)
	if err != nil {
		terminal.NewReporter(out, false).Error(err.Error())
		return 1
	}

	rep := terminal.NewReporter(out, colorEnabled(s.color, out))
	prompter := interactive.NewPrompter(in, out)

	return guard.New(ops, logger).Run(rep, prompter.Confirm, branch)
}

// resolveSettings merges flag values over file values and fills in the
// defaults for anything still unset.
func resolveSettings(flags rootFlags, cfg config.Config) settings {
	s := settings{
		dir:     flags.dir,
		remote:  flags.remote,
		backend: flags.backend,
		color:   cfg.Color,
	}
	if s.remote == "" {
		s.remote = cfg.Remote
	}
	if s.backend == "" {
		s.backend = cfg.Backend
	}
	if s.backend == "" {
		s.backend = "cli"
	}
	if flags.noColor {
		s.color = "never"
	}
	if s.color == "" {
		s.color = "auto"
	}
	return s
}

func backendFor(s settings, logger zerolog.Logger) (gitops.Ops, error) {
	switch s.backend {
	case "cli":
		return git.New(s.dir, s.remote, logger), nil
	case "native":
		return gitnative.New(s.dir, s.remote, logger), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected cli or native)", s.backend)
	}
}

func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if f, ok := out.(*os.File); ok {
		return terminal.ColorEnabled(f)
	}
	return false
}

func newLogger(debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	console := zerolog.NewConsoleWriter()
	console.Out = os.Stderr
	console.TimeFormat = time.RFC3339
	return zerolog.New(console).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

// validateBranchName ensures name is acceptable as a git branch name,
// following the refname rules git itself enforces.
func validateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}
	if name == "@" {
		return fmt.Errorf("branch name cannot be the single character @")
	}

	// Regex for invalid characters in git branch names:
	// - No backslash, space, control chars (0-31, 127)
	// - No ~, ^, :, ?, *, [
	invalidCharsPattern := regexp.MustCompile(`[\\\s\x00-\x1f\x7f~^:?*\[]`)
	if match := invalidCharsPattern.FindString(name); match != "" {
		if match == "\\" {
			return fmt.Errorf("branch name cannot contain backslash (\\)")
		} else if match == " " {
			return fmt.Errorf("branch name cannot contain spaces")
		} else if match[0] < 32 || match[0] == 127 {
			return fmt.Errorf("branch name cannot contain control characters")
		}
		return fmt.Errorf("branch name cannot contain '%s'", match)
	}

	// Check for special invalid patterns
	if strings.Contains(name, "..") {
		return fmt.Errorf("branch name cannot contain double dots (..)")
	}
	if strings.Contains(name, "@{") {
		return fmt.Errorf("branch name cannot contain @{")
	}
	if strings.Contains(name, "//") {
		return fmt.Errorf("branch name cannot contain consecutive slashes")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("branch name cannot start with a dash")
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("branch name cannot start or end with a slash")
	}
	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("branch name cannot end with a dot")
	}
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return fmt.Errorf("branch name components cannot start with a dot")
		}
		if strings.HasSuffix(part, ".lock") {
			return fmt.Errorf("branch name components cannot end with .lock")
		}
	}

	return nil
}
