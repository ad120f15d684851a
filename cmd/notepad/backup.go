// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/notepad/cmd/notepad/cli"
	"github.com/bureau-foundation/notepad/lib/backup"
	"github.com/bureau-foundation/notepad/lib/codec"
)

func (app *app) exportCommand() *cli.Command {
	var format, compression, outputPath string
	var diagnose bool

	return &cli.Command{
		Name:    "export",
		Summary: "Write a backup of the task list",
		Usage:   "notepad export [--format json|cbor] [--compression none|lz4|zstd] [--output <file>]",
		Description: `Write the task list as a backup. Plain JSON (the default) is an
indented array that "notepad import" and other tools can read. Any other
combination is written inside a small binary envelope recording the
format and compression. Defaults come from the export section of the
configuration.

Binary backups are not written to a terminal; use --output.`,
		Examples: []cli.Example{
			{Description: "Plain JSON to a file", Command: "notepad export -o tasks.json"},
			{Description: "Compact compressed backup", Command: "notepad export --format cbor --compression zstd -o tasks.npad"},
			{Description: "Inspect the CBOR encoding", Command: "notepad export --format cbor --diagnose"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("export", pflag.ContinueOnError)
			flagSet.StringVar(&format, "format", "", "payload format: json or cbor (default from config)")
			flagSet.StringVar(&compression, "compression", "", "compression: none, lz4, or zstd (default from config)")
			flagSet.StringVarP(&outputPath, "output", "o", "-", "destination file, or - for stdout")
			flagSet.BoolVar(&diagnose, "diagnose", false, "print the CBOR payload in diagnostic notation instead of a backup")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0]).
					WithHint("Use --output to name the destination file.")
			}
			return app.withSession(func(session *session) error {
				if format == "" {
					format = session.config.Export.Format
				}
				if compression == "" {
					compression = session.config.Export.Compression
				}
				options, err := parseExportOptions(format, compression)
				if err != nil {
					return err
				}
				list := session.store.Tasks()

				if diagnose {
					text, err := codec.DiagnoseList(list)
					if err != nil {
						return cli.Internal("%w", err)
					}
					fmt.Fprintln(app.stdout, text)
					return nil
				}

				data, info, err := backup.Export(list, options)
				if err != nil {
					return cli.Internal("%w", err)
				}

				switch {
				case outputPath != "-":
					if err := os.WriteFile(outputPath, data, 0o600); err != nil {
						return cli.Internal("writing backup: %w", err)
					}
					fmt.Fprintf(app.stderr, "exported %d tasks to %s (%s, %s, %d bytes)\n",
						len(list), outputPath, info.Format, info.Compression, len(data))
				case info.Enveloped && isTerminal(app.stdout):
					return cli.Validation("refusing to write a binary backup to the terminal").
						WithHint("Use --output <file>, or redirect stdout.")
				default:
					if _, err := app.stdout.Write(data); err != nil {
						return cli.Internal("writing backup: %w", err)
					}
				}

				session.logger.Info("exported task list",
					"tasks", len(list),
					"format", info.Format.String(),
					"compression", info.Compression.String(),
					"payload_bytes", info.PayloadSize,
					"output_bytes", len(data),
				)
				return nil
			})
		},
	}
}

func (app *app) importCommand() *cli.Command {
	var appendTasks, yes bool

	return &cli.Command{
		Name:    "import",
		Summary: "Load tasks from a backup or JSON file",
		Usage:   "notepad import [--append | --yes] <file>",
		Description: `Load tasks from a file written by "notepad export", or from any JSON
array of {"text", "done"} objects. Comments and trailing commas are
accepted, as is the older {"text", "check"} form. Use - to read stdin.

By default the imported tasks replace the list, which requires --yes
when the list is not empty. With --append they are added after the
existing tasks.`,
		Examples: []cli.Example{
			{Description: "Restore a backup", Command: "notepad import --yes tasks.npad"},
			{Description: "Merge tasks from another machine", Command: "notepad import --append other.json"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("import", pflag.ContinueOnError)
			flagSet.BoolVar(&appendTasks, "append", false, "add the imported tasks after the existing ones")
			flagSet.BoolVarP(&yes, "yes", "y", false, "confirm replacing a non-empty list")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("import takes exactly one file, got %d", len(args)).
					WithHint("Usage: notepad import [--append | --yes] <file>")
			}
			if appendTasks && yes {
				return cli.Validation("--append and --yes are mutually exclusive")
			}

			data, err := app.readInput(args[0])
			if err != nil {
				return err
			}
			imported, info, err := backup.Decode(data)
			if err != nil {
				return cli.Validation("reading %s: %w", args[0], err)
			}

			return app.withSession(func(session *session) error {
				current := session.store.Tasks()
				next := imported
				if appendTasks {
					next = append(current.Clone(), imported...)
				} else if len(current) > 0 && !yes {
					return cli.Validation("importing would replace %d existing tasks", len(current)).
						WithHint("Pass --yes to replace them, or --append to keep them.")
				}

				list, err := session.store.Replace(next)
				if err != nil {
					return cli.Internal("%w", err)
				}
				if err := session.saved(); err != nil {
					return err
				}
				session.logger.Info("imported task list",
					"tasks", len(imported),
					"enveloped", info.Enveloped,
					"format", info.Format.String(),
					"compression", info.Compression.String(),
				)
				fmt.Fprintf(app.stdout, "imported %d tasks; the list now has %d\n", len(imported), len(list))
				return nil
			})
		},
	}
}

// parseExportOptions parses the --format and --compression values.
func parseExportOptions(format, compression string) (backup.Options, error) {
	parsedFormat, err := backup.ParseFormat(format)
	if err != nil {
		return backup.Options{}, cli.Validation("%w", err)
	}
	parsedCompression, err := backup.ParseCompression(compression)
	if err != nil {
		return backup.Options{}, cli.Validation("%w", err)
	}
	return backup.Options{Format: parsedFormat, Compression: parsedCompression}, nil
}

// readInput reads path, or stdin for "-".
func (app *app) readInput(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(app.stdin)
		if err != nil {
			return nil, cli.Internal("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, cli.NotFound("%s does not exist", path)
	}
	if err != nil {
		return nil, cli.Internal("reading %s: %w", path, err)
	}
	return data, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
