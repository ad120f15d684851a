// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the command tree: the root "notepad", or a
// subcommand such as "add" or "export".
type Command struct {
	// Name is the word typed to select the command.
	Name string

	// Aliases are other words that select it, such as "ls" for
	// "list". They are accepted but not listed in help.
	Aliases []string

	// Summary is the one-line description in the parent's listing.
	Summary string

	// Description is the longer text at the top of the command's own
	// help. Summary is used when it is empty.
	Description string

	// Usage replaces the usage line derived from the tree shape.
	Usage string

	Examples []Example

	// Flags builds the command's flag set. It is called for every
	// parse and every help rendering, so it must return a new set
	// each time. Nil means the command takes no flags.
	Flags func() *pflag.FlagSet

	// Subcommands are selected by the first positional argument.
	Subcommands []*Command

	// Run receives the positional arguments left after flag parsing.
	// On a command with Subcommands it handles the bare invocation.
	Run func(args []string) error

	// HelpOutput receives help text. Nil inherits from the parent; the
	// root falls back to os.Stderr.
	HelpOutput io.Writer

	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	Description string
	Command     string
}

// Execute runs the command named by args.
func (command *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		command.PrintHelp(command.helpOutput())
		return nil
	}

	if len(command.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, err := command.subcommand(args[0])
		if err != nil {
			return err
		}
		sub.parent = command
		return sub.Execute(args[1:])
	}

	if command.Run == nil {
		command.PrintHelp(command.helpOutput())
		switch {
		case len(command.Subcommands) == 0:
			return Internal("no action defined for %q", command.fullName())
		case len(args) == 0:
			return Validation("subcommand required")
		default:
			return Validation("subcommand required (got flag %q)", args[0])
		}
	}

	positional, err := command.parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		command.PrintHelp(command.helpOutput())
		return nil
	}
	if err != nil {
		return err
	}
	return command.Run(positional)
}

// subcommand finds the child selected by name or one of its aliases.
func (command *Command) subcommand(name string) (*Command, error) {
	for _, sub := range command.Subcommands {
		if sub.Name == name || slices.Contains(sub.Aliases, name) {
			return sub, nil
		}
	}
	message := fmt.Sprintf("unknown command %q", name)
	if suggestion := suggestCommand(name, command.Subcommands); suggestion != "" {
		message += fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return nil, command.usageError(message)
}

// parseFlags returns the positional arguments, or a validation error
// that names the closest real flag when one was mistyped.
func (command *Command) parseFlags(args []string) ([]string, error) {
	if command.Flags == nil {
		return args, nil
	}
	flagSet := command.Flags()
	flagSet.SetOutput(io.Discard)
	err := flagSet.Parse(args)
	if err == nil {
		return flagSet.Args(), nil
	}
	if errors.Is(err, pflag.ErrHelp) {
		return nil, err
	}

	message := err.Error()
	if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
		// The failed parse has already set values on flagSet.
		if suggestion := suggestFlag(args, command.Flags()); suggestion != "" {
			message += fmt.Sprintf(" (did you mean %s?)", suggestion)
		}
	}
	return nil, command.usageError(message)
}

func (command *Command) usageError(message string) error {
	return Validation("%s\n\nRun '%s --help' for usage.", message, command.fullName())
}

// PrintHelp writes the command's help to w: description, usage,
// subcommands, flags, and examples, omitting empty sections.
func (command *Command) PrintHelp(w io.Writer) {
	if text := cmp.Or(command.Description, command.Summary); text != "" {
		fmt.Fprintf(w, "%s\n\n", text)
	}

	fmt.Fprintln(w, "Usage:")
	for _, line := range command.usageLines() {
		fmt.Fprintf(w, "  %s\n", line)
	}

	if len(command.Subcommands) > 0 {
		fmt.Fprintln(w, "\nCommands:")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range command.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if command.Flags != nil {
		if usages := command.Flags().FlagUsages(); usages != "" {
			fmt.Fprintf(w, "\nFlags:\n%s", usages)
		}
	}

	if len(command.Examples) > 0 {
		fmt.Fprintln(w, "\nExamples:")
		for _, example := range command.Examples {
			if example.Description == "" {
				fmt.Fprintf(w, "  %s\n", example.Command)
				continue
			}
			fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
		}
	}

	if len(command.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", command.fullName())
	}
}

func (command *Command) usageLines() []string {
	if command.Usage != "" {
		return []string{command.Usage}
	}
	name := command.fullName()
	switch {
	case len(command.Subcommands) == 0:
		return []string{name + " [flags]"}
	case command.Run == nil:
		return []string{name + " <command> [flags]"}
	default:
		return []string{name + " [flags]", name + " <command> [flags]"}
	}
}

func (command *Command) helpOutput() io.Writer {
	for node := command; node != nil; node = node.parent {
		if node.HelpOutput != nil {
			return node.HelpOutput
		}
	}
	return os.Stderr
}

// fullName is the path from the root, as in "notepad export".
func (command *Command) fullName() string {
	if command.parent == nil {
		return command.Name
	}
	return command.parent.fullName() + " " + command.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
