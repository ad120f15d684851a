// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1}, // substitution
		{"abc", "ab", 1},  // deletion
		{"ab", "abc", 1},  // insertion
		{"abc", "bac", 2}, // transposition (counted as 2 edits)
		{"kitten", "sitting", 3},
		{"toggle", "toggel", 2},
		{"import", "imprt", 1},
		{"héllo", "hello", 1}, // one rune, not two bytes
	}

	for _, test := range tests {
		t.Run(test.a+"→"+test.b, func(t *testing.T) {
			if got := levenshtein(test.a, test.b); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
			}
			if got := levenshtein(test.b, test.a); got != test.want {
				t.Errorf("levenshtein(%q, %q) = %d, want %d", test.b, test.a, got, test.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	commands := []*Command{
		{Name: "add"},
		{Name: "list"},
		{Name: "move"},
		{Name: "export"},
	}

	tests := []struct {
		input string
		want  string
	}{
		{"lsit", "list"},
		{"mvoe", "move"},
		{"exprot", "export"},
		{"ad", "add"},
		{"completely-different", ""},
	}
	for _, test := range tests {
		if got := suggestCommand(test.input, commands); got != test.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestSuggestFlag(t *testing.T) {
	newFlagSet := func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
		flagSet.String("format", "json", "")
		flagSet.String("compression", "none", "")
		flagSet.StringP("output", "o", "", "")
		return flagSet
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"misspelled long", []string{"--fromat", "cbor"}, "--format"},
		{"with value", []string{"--compresion=zstd"}, "--compression"},
		{"defined flags skipped", []string{"--format", "cbor", "--ouptut", "x"}, "--output"},
		{"nothing close", []string{"--zzzzzzzzzz"}, ""},
		{"positional only", []string{"file.json"}, ""},
		{"after terminator", []string{"--", "--fromat"}, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := suggestFlag(test.args, newFlagSet()); got != test.want {
				t.Errorf("suggestFlag(%v) = %q, want %q", test.args, got, test.want)
			}
		})
	}
}
