// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/notepad/cmd/notepad/cli"
	"github.com/bureau-foundation/notepad/lib/task"
	"github.com/bureau-foundation/notepad/lib/version"
	"github.com/bureau-foundation/notepad/lib/view"
)

func (app *app) rootCommand() *cli.Command {
	return &cli.Command{
		Name:    "notepad",
		Summary: "Ordered personal task list",
		Description: `notepad: an ordered personal task list.

With no command, opens the interactive list. Subcommands edit the same
list from scripts. Positions are 1-based, as printed by "notepad list".`,
		HelpOutput: app.stderr,
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s\n\nRun 'notepad --help' for usage.", args[0])
			}
			return app.runTUI()
		},
		Subcommands: []*cli.Command{
			app.tuiCommand(),
			app.addCommand(),
			app.listCommand(),
			app.toggleCommand(),
			app.removeCommand(),
			app.moveCommand(),
			app.clearCommand(),
			app.exportCommand(),
			app.importCommand(),
			app.versionCommand(),
		},
	}
}

func (app *app) addCommand() *cli.Command {
	return &cli.Command{
		Name:    "add",
		Summary: "Append a task",
		Usage:   "notepad add <text...>",
		Description: `Append a task to the end of the list. The words are joined with
single spaces and surrounding whitespace is trimmed.`,
		Examples: []cli.Example{
			{Description: "Add a task", Command: "notepad add buy milk"},
		},
		Run: func(args []string) error {
			text := strings.Join(args, " ")
			return app.withSession(func(session *session) error {
				list, err := session.store.Apply(task.Add{Text: text})
				if errors.Is(err, task.ErrEmptyText) {
					return cli.Validation("task text is empty").
						WithHint("Usage: notepad add <text...>")
				}
				if err != nil {
					return cli.Internal("%w", err)
				}
				if err := session.saved(); err != nil {
					return err
				}
				added := list[len(list)-1]
				session.logger.Info("task added", "task_id", added.ID)
				fmt.Fprintf(app.stdout, "%d. %s\n", len(list), added.Text)
				return nil
			})
		},
	}
}

func (app *app) listCommand() *cli.Command {
	var search string
	var jsonOutput bool

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Summary: "Print the task list",
		Usage:   "notepad list [--search <query>] [--json]",
		Description: `Print the task list with 1-based positions and a "done / total"
footer. With --search, only matching tasks are printed, still numbered
by their position in the full list.`,
		Examples: []cli.Example{
			{Description: "Show tasks mentioning milk", Command: "notepad list --search milk"},
			{Description: "Machine-readable output", Command: "notepad list --json"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flagSet.StringVarP(&search, "search", "s", "", "only print tasks matching this query")
			flagSet.BoolVar(&jsonOutput, "json", false, "print the (filtered) tasks as a JSON array")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0]).
					WithHint("Use --search to filter the list.")
			}
			return app.withSession(func(session *session) error {
				list := session.store.Tasks()
				rows := session.projector.Project(list, search)

				if jsonOutput {
					data, err := task.EncodeJSON(view.Tasks(rows))
					if err != nil {
						return cli.Internal("%w", err)
					}
					fmt.Fprintf(app.stdout, "%s\n", data)
					return nil
				}

				printRows(app.stdout, list, rows, search)
				return nil
			})
		},
	}
}

// printRows writes rows one per line, followed by the completion
// counter of the whole list. Styling follows the terminal's color
// profile; redirected output is plain text.
func printRows(w io.Writer, list task.List, rows []view.Row, search string) {
	output := termenv.NewOutput(w)

	switch {
	case len(list) == 0:
		fmt.Fprintln(w, "no items")
	case len(rows) == 0:
		fmt.Fprintf(w, "no items matching %q\n", search)
	}

	width := len(strconv.Itoa(len(list)))
	for _, row := range rows {
		mark := "[ ]"
		if row.Task.Done {
			mark = "[x]"
		}
		fmt.Fprintf(w, "%*d. %s %s\n", width, row.Index+1, mark, styleText(output, row))
	}

	fmt.Fprintf(w, "\n%d / %d done\n", list.DoneCount(), list.Len())
}

// styleText renders a task's text: struck through when done, with the
// search match underlined.
func styleText(output *termenv.Output, row view.Row) string {
	matched := make(map[int]bool, len(row.Positions))
	for _, position := range row.Positions {
		matched[position] = true
	}

	var builder strings.Builder
	for index, character := range []rune(row.Task.Text) {
		style := output.String(string(character))
		if row.Task.Done {
			style = style.Faint().CrossOut()
		}
		if matched[index] {
			style = style.Underline().Bold()
		}
		builder.WriteString(style.String())
	}
	return builder.String()
}

func (app *app) toggleCommand() *cli.Command {
	return &cli.Command{
		Name:    "toggle",
		Summary: "Mark tasks done, or not done again",
		Usage:   "notepad toggle <position>...",
		Examples: []cli.Example{
			{Description: "Mark the first and third tasks", Command: "notepad toggle 1 3"},
		},
		Run: func(args []string) error {
			return app.withSession(func(session *session) error {
				ids, err := resolvePositions(session.store.Tasks(), args)
				if err != nil {
					return err
				}
				for _, id := range ids {
					list, err := session.store.ToggleID(id)
					if err != nil {
						return cli.Internal("%w", err)
					}
					index := list.IndexOf(id)
					state := "not done"
					if list[index].Done {
						state = "done"
					}
					fmt.Fprintf(app.stdout, "%d. %s: %s\n", index+1, list[index].Text, state)
				}
				return session.saved()
			})
		},
	}
}

func (app *app) removeCommand() *cli.Command {
	return &cli.Command{
		Name:    "rm",
		Aliases: []string{"remove"},
		Summary: "Delete tasks",
		Usage:   "notepad rm <position>...",
		Description: `Delete the tasks at the given positions. Positions refer to the list
as it was before the command, so "notepad rm 1 2" deletes the first two
tasks.`,
		Run: func(args []string) error {
			return app.withSession(func(session *session) error {
				list := session.store.Tasks()
				ids, err := resolvePositions(list, args)
				if err != nil {
					return err
				}
				for _, id := range ids {
					removed := list[list.IndexOf(id)]
					if _, err := session.store.RemoveID(id); err != nil {
						return cli.Internal("%w", err)
					}
					session.logger.Info("task removed", "task_id", id)
					fmt.Fprintf(app.stdout, "removed: %s\n", removed.Text)
				}
				return session.saved()
			})
		},
	}
}

func (app *app) moveCommand() *cli.Command {
	return &cli.Command{
		Name:    "move",
		Summary: "Move a task to another position",
		Usage:   "notepad move <from> <to>",
		Description: `Move the task at position <from> to position <to>. The tasks in
between shift by one to make room.`,
		Examples: []cli.Example{
			{Description: "Move the third task to the top", Command: "notepad move 3 1"},
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return cli.Validation("move takes exactly two positions, got %d", len(args)).
					WithHint("Usage: notepad move <from> <to>")
			}
			return app.withSession(func(session *session) error {
				list := session.store.Tasks()
				from, err := parsePosition(args[0], len(list))
				if err != nil {
					return err
				}
				to, err := parsePosition(args[1], len(list))
				if err != nil {
					return err
				}
				moved := list[from]
				if _, err := session.store.Apply(task.Move{From: from, To: to}); err != nil {
					return cli.Internal("%w", err)
				}
				if err := session.saved(); err != nil {
					return err
				}
				session.logger.Info("task moved", "task_id", moved.ID, "from", from, "to", to)
				fmt.Fprintf(app.stdout, "%d. %s\n", to+1, moved.Text)
				return nil
			})
		},
	}
}

func (app *app) clearCommand() *cli.Command {
	var yes bool

	return &cli.Command{
		Name:    "clear",
		Summary: "Delete every task",
		Usage:   "notepad clear --yes",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("clear", pflag.ContinueOnError)
			flagSet.BoolVarP(&yes, "yes", "y", false, "confirm deleting every task")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			return app.withSession(func(session *session) error {
				count := session.store.Len()
				if count == 0 {
					fmt.Fprintln(app.stdout, "the list is already empty")
					return nil
				}
				if !yes {
					return cli.Validation("refusing to delete %d tasks without confirmation", count).
						WithHint("Pass --yes to confirm. Consider 'notepad export' first.")
				}
				session.store.Clear()
				if err := session.saved(); err != nil {
					return err
				}
				fmt.Fprintf(app.stdout, "removed %d tasks\n", count)
				return nil
			})
		},
	}
}

func (app *app) versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Run: func(args []string) error {
			fmt.Fprintf(app.stdout, "notepad %s\n", version.Full())
			return nil
		},
	}
}

// resolvePositions converts 1-based positions into task IDs, so that
// applying them in turn is unaffected by earlier removals or moves.
func resolvePositions(list task.List, args []string) ([]task.ID, error) {
	if len(args) == 0 {
		return nil, cli.Validation("at least one position is required").
			WithHint(`Positions are the numbers printed by "notepad list".`)
	}
	ids := make([]task.ID, 0, len(args))
	seen := make(map[task.ID]bool, len(args))
	for _, arg := range args {
		index, err := parsePosition(arg, len(list))
		if err != nil {
			return nil, err
		}
		id := list[index].ID
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// parsePosition parses a 1-based position and returns the 0-based
// index.
func parsePosition(arg string, length int) (int, error) {
	position, err := strconv.Atoi(arg)
	if err != nil {
		return 0, cli.Validation("position %q is not a number", arg)
	}
	if position < 1 || position > length {
		if length == 0 {
			return 0, cli.NotFound("no task at position %d: the list is empty", position)
		}
		return 0, cli.NotFound("no task at position %d: the list has %d", position, length)
	}
	return position - 1, nil
}
