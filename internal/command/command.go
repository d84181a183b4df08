// Package command parses terminal input into commands and dispatches them
// against a play session.
package command

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Command struct {
	Name string
	Args []string
}

// RequireArgs checks if the command has at least the minimum number of arguments
// Returns an error with the usage message if not enough arguments are provided
func (c *Command) RequireArgs(min int, usage string) error {
	if len(c.Args) < min {
		return errors.New(usage)
	}
	return nil
}

// Arg returns the i-th argument lowercased, or "" if absent.
func (c *Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return strings.ToLower(c.Args[i])
}

// Index parses the i-th argument as a 1-based menu number and returns it
// 0-based.
func (c *Command) Index(i int) (int, bool) {
	n, err := strconv.Atoi(c.Arg(i))
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

// ParseCommand splits input into a resolved command name and its arguments.
// Names that are neither known nor close to a known one are kept as typed.
func ParseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Name: "", Args: []string{}}
	}

	name := strings.ToLower(parts[0])
	if canonical, ok := Resolve(name); ok {
		name = canonical
	}
	return &Command{
		Name: name,
		Args: parts[1:],
	}
}

// aliases maps every accepted spelling to its canonical command.
var aliases = map[string]string{
	"help": "help", "h": "help", "?": "help",
	"heroes": "heroes", "classes": "heroes",
	"new": "new", "start": "new",
	"attack": "attack", "a": "attack", "hit": "attack", "strike": "attack",
	"potion": "potion", "p": "potion", "drink": "potion", "quaff": "potion",
	"scroll": "scroll", "read": "scroll", "cast": "scroll",
	"end": "end", "e": "end", "wait": "end", "pass": "end",
	"choose": "choose", "c": "choose", "pick": "choose", "take": "choose",
	"skip": "skip",
	"equip": "equip", "keep": "equip",
	"leave": "leave",
	"status": "status", "look": "status", "l": "status",
	"tasks": "tasks", "challenges": "tasks",
	"tutorial": "tutorial", "train": "tutorial",
	"runs": "runs", "list": "runs",
	"load": "load", "resume": "load",
	"save": "save",
	"delete": "delete", "rm": "delete",
	"abandon": "abandon", "forfeit": "abandon",
	"quit": "quit", "exit": "quit", "q": "quit",
}

// Resolve returns the canonical command for name. Exact aliases win;
// otherwise the closest alias within an edit-distance limit is used, as long
// as it is not a tie between two different commands.
func Resolve(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		return canonical, true
	}
	if len(name) < 3 {
		return "", false
	}

	type candidate struct {
		canonical string
		dist      int
	}
	var cands []candidate
	for alias, canonical := range aliases {
		if len(alias) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(name, alias)
		if dist > levenshteinLimit(len(alias)) {
			continue
		}
		cands = append(cands, candidate{canonical, dist})
	}
	if len(cands) == 0 {
		return "", false
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].canonical < cands[j].canonical
		}
		return cands[i].dist < cands[j].dist
	})
	best := cands[0]
	for _, c := range cands[1:] {
		if c.dist == best.dist && c.canonical != best.canonical {
			return "", false
		}
	}
	return best.canonical, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
