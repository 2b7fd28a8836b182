// pkg/manifest/lint.go
package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Rule identifies a lint check
type Rule string

const (
	RuleMissingName          Rule = "missing-name"
	RuleMissingCommand       Rule = "missing-command"
	RuleUnknownManager       Rule = "unknown-manager"
	RuleUnparsableCommand    Rule = "unparsable-command"
	RuleManagerMismatch      Rule = "manager-mismatch"
	RuleChannelMismatch      Rule = "channel-mismatch"
	RuleConflictingDuplicate Rule = "conflicting-duplicate"
)

// Issue is a single problem found in a manifest
type Issue struct {
	Rule    Rule
	Package string
	Group   string
	Message string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s (%s): %s", i.Rule, i.Package, i.Group, i.Message)
}

// SplitCommand breaks an install command into words with shell quoting
// rules. Variables and globs are not expanded.
func SplitCommand(command string) ([]string, error) {
	words, err := shellwords.Parse(command)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return words, nil
}

// Lint checks that every package has one command, that the command invokes
// the declared manager with the declared channels, and that repeated names
// agree on their command.
func Lint(m *Manifest) []Issue {
	var issues []Issue

	commands := make(map[string]string) // lowercased name -> first command seen
	firstGroup := make(map[string]string)

	for _, p := range m.Packages() {
		add := func(rule Rule, format string, args ...any) {
			issues = append(issues, Issue{
				Rule:    rule,
				Package: p.Name,
				Group:   p.Group,
				Message: fmt.Sprintf(format, args...),
			})
		}

		if strings.TrimSpace(p.Name) == "" {
			add(RuleMissingName, "package has no name")
		}

		command := strings.TrimSpace(p.Command)
		if command == "" {
			add(RuleMissingCommand, "no install command")
			continue
		}

		key := strings.ToLower(strings.TrimSpace(p.Name))
		if prev, ok := commands[key]; ok {
			if prev != command {
				add(RuleConflictingDuplicate, "command %q differs from %q in %s", command, prev, firstGroup[key])
			}
		} else if key != "" {
			commands[key] = command
			firstGroup[key] = p.Group
		}

		if !p.Source.Manager.Valid() {
			add(RuleUnknownManager, "unknown manager %q", p.Source.Manager)
			continue
		}

		words, err := SplitCommand(command)
		if err != nil {
			add(RuleUnparsableCommand, "%v", err)
			continue
		}

		args, ok := managerArgs(p.Source.Manager, words)
		if !ok {
			add(RuleManagerMismatch, "command runs %q but source is %s", words[0], p.Source.Manager)
			continue
		}

		if p.Source.Manager == ManagerShell {
			continue
		}

		got := channelArgs(p.Source.Manager, args)
		if !slices.Equal(got, p.Source.Channels) {
			add(RuleChannelMismatch, "command uses channels %v, source declares %v", got, p.Source.Channels)
		}
	}

	return issues
}

// managerArgs returns the words after the manager invocation, or false if
// the command does not start with the manager.
func managerArgs(manager Manager, words []string) ([]string, bool) {
	if manager == ManagerShell {
		return words, true
	}

	if manager == ManagerPip {
		switch {
		case words[0] == "pip" || words[0] == "pip3":
			return words[1:], true
		case (words[0] == "python" || words[0] == "python3") &&
			len(words) >= 3 && words[1] == "-m" && words[2] == "pip":
			return words[3:], true
		}
		return nil, false
	}

	if words[0] == string(manager) {
		return words[1:], true
	}
	return nil, false
}

// channelArgs collects channel (conda) or index (pip) arguments in order
func channelArgs(manager Manager, args []string) []string {
	var short string
	var long []string
	if manager == ManagerPip {
		short = "-i"
		long = []string{"--index-url", "--extra-index-url"}
	} else {
		short = "-c"
		long = []string{"--channel"}
	}

	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == short || slices.Contains(long, a) {
			if i+1 < len(args) {
				out = append(out, args[i+1])
				i++
			}
			continue
		}
		for _, l := range long {
			if v, ok := strings.CutPrefix(a, l+"="); ok {
				out = append(out, v)
			}
		}
	}
	return out
}
