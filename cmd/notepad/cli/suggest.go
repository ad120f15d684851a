// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// suggestionThreshold is the largest edit distance still worth
// suggesting.
const suggestionThreshold = 3

// suggestCommand returns the subcommand name closest to unknown, or ""
// if none is within suggestionThreshold edits.
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, len(commands))
	for index, command := range commands {
		names[index] = command.Name
	}
	return closest(unknown, names)
}

// suggestFlag finds the first flag in args that flagSet does not define
// and returns the closest defined flag, formatted with its dashes.
// Returns "" if there is no close match.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var long, short []string
	flagSet.VisitAll(func(flag *pflag.Flag) {
		long = append(long, flag.Name)
		if flag.Shorthand != "" {
			short = append(short, flag.Shorthand)
		}
	})

	for _, arg := range args {
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}
		if name == "" {
			continue
		}

		if strings.HasPrefix(arg, "--") {
			if flagSet.Lookup(name) != nil {
				continue
			}
		} else if flagSet.ShorthandLookup(name[:1]) != nil {
			continue
		}

		if suggestion := closest(name, long); suggestion != "" {
			return "--" + suggestion
		}
		if suggestion := closest(name, short); suggestion != "" {
			return "-" + suggestion
		}
		// Only the first unrecognized flag is considered.
		break
	}
	return ""
}

// closest returns the candidate nearest to input by edit distance.
func closest(input string, candidates []string) string {
	bestName := ""
	bestDistance := suggestionThreshold + 1
	for _, candidate := range candidates {
		if distance := levenshtein(input, candidate); distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}
	return bestName
}

// levenshtein computes the edit distance between two strings, by rune.
func levenshtein(a, b string) int {
	first, second := []rune(a), []rune(b)
	if len(first) > len(second) {
		first, second = second, first
	}
	if len(first) == 0 {
		return len(second)
	}

	previous := make([]int, len(first)+1)
	current := make([]int, len(first)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(second); j++ {
		current[0] = j
		for i := 1; i <= len(first); i++ {
			cost := 1
			if first[i-1] == second[j-1] {
				cost = 0
			}
			current[i] = min(previous[i]+1, current[i-1]+1, previous[i-1]+cost)
		}
		previous, current = current, previous
	}
	return previous[len(first)]
}
