package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

const passwordEnv = "FLASHCARDS_PASSWORD"

// Exit codes returned by CLI.Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// PasswordFunc returns the password for an account command.
type PasswordFunc func(prompt string) (string, error)

// Factory builds the App a command runs against.
type Factory func(ctx context.Context) (*App, error)

type action func(ctx context.Context, a *App, args []string) error

type command struct {
	name  string
	args  string
	help  string
	nargs int
	setup func(fs *flag.FlagSet) action
}

// CLI maps command lines such as "decks create -title Go" onto App operations.
type CLI struct {
	newApp   Factory
	build    BuildInfo
	stdout   io.Writer
	stderr   io.Writer
	password PasswordFunc
	commands []command
}

// NewCLI creates a CLI. newApp is only called for commands that need the backend.
func NewCLI(newApp Factory, build BuildInfo, stdout, stderr io.Writer) *CLI {
	c := &CLI{newApp: newApp, build: build, stdout: stdout, stderr: stderr}
	c.password = terminalPassword(stderr)
	c.commands = c.table()
	return c
}

// terminalPassword prompts on the terminal without echo. When stdin is not a
// terminal the password is taken from $FLASHCARDS_PASSWORD.
func terminalPassword(stderr io.Writer) PasswordFunc {
	return func(prompt string) (string, error) {
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return os.Getenv(passwordEnv), nil
		}

		fmt.Fprint(stderr, prompt)
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
}

// Run executes the command named by args and returns the process exit code.
func (c *CLI) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		c.usage()
		return ExitUsage
	}
	switch args[0] {
	case "help", "-h", "-help", "--help":
		c.usage()
		return ExitOK
	case "version":
		fmt.Fprintf(c.stdout, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
			c.build.Version, c.build.Date, c.build.Commit)
		return ExitOK
	}

	cmd, rest := c.lookup(args)
	if cmd == nil {
		fmt.Fprintf(c.stderr, "unknown command %q\n\n", strings.Join(args[:min(2, len(args))], " "))
		c.usage()
		return ExitUsage
	}

	fs := flag.NewFlagSet("flashcards "+cmd.name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "usage: flashcards %s %s\n", cmd.name, cmd.args)
		fs.PrintDefaults()
	}
	run := cmd.setup(fs)
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if fs.NArg() < cmd.nargs {
		fs.Usage()
		return ExitUsage
	}

	a, err := c.newApp(ctx)
	if err != nil {
		fmt.Fprintf(c.stderr, "error: %s\n", err)
		return ExitError
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.Logger.Warn("CLI: failed to close app", "error", err.Error())
		}
	}()

	if err := run(ctx, a, fs.Args()); err != nil {
		fmt.Fprintf(c.stderr, "error: %s\n", err)
		return ExitError
	}
	return ExitOK
}

func (c *CLI) lookup(args []string) (*command, []string) {
	if len(args) >= 2 {
		name := args[0] + " " + args[1]
		for i := range c.commands {
			if c.commands[i].name == name {
				return &c.commands[i], args[2:]
			}
		}
	}
	for i := range c.commands {
		if c.commands[i].name == args[0] {
			return &c.commands[i], args[1:]
		}
	}
	return nil, nil
}

func (c *CLI) usage() {
	fmt.Fprintln(c.stderr, "usage: flashcards <command> [flags] [args]")
	fmt.Fprintln(c.stderr)
	tw := tabwriter.NewWriter(c.stderr, 0, 4, 2, ' ', 0)
	for _, cmd := range c.commands {
		fmt.Fprintf(tw, "  %s %s\t%s\n", cmd.name, cmd.args, cmd.help)
	}
	fmt.Fprintf(tw, "  version\tprint build information\n")
	_ = tw.Flush()
}

func (c *CLI) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}
	return nil
}

func (c *CLI) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(c.stdout, format, args...)
	return err
}

// failer is implemented by every service: it keeps the last error message.
type failer interface {
	Err() string
}

func failure(s failer, fallback string) error {
	if msg := s.Err(); msg != "" {
		return errors.New(msg)
	}
	return errors.New(fallback)
}

func emit[T any](c *CLI, v *T, s failer, fallback string) error {
	if v == nil {
		return failure(s, fallback)
	}
	return c.printJSON(v)
}

func emitList[T any](c *CLI, items []T, s failer) error {
	if msg := s.Err(); msg != "" {
		return errors.New(msg)
	}
	if items == nil {
		items = []T{}
	}
	return c.printJSON(items)
}

func done(c *CLI, ok bool, s failer, fallback, message string) error {
	if !ok {
		return failure(s, fallback)
	}
	return c.printf("%s\n", message)
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}
