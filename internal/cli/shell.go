package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

var errDirRequired = errors.New("directory is required")

// shellCommands are the commands available inside the shell, used for
// tab completion and help.
var shellCommands = []string{"cd", "pwd", "ls", "cat", "create", "rm", "help", "exit", "quit"}

// ShellCmd returns the shell command.
func ShellCmd(a *app) *Command {
	fs := flag.NewFlagSet("shell", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "shell",
		Short: "Interactive shell",
		Long: "Start an interactive shell holding one file manager, so cd carries\n" +
			"over between operations. History is kept in the configured history file.",
		Exec: func(o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			s := &shell{a: a, o: o}

			return s.run()
		},
	}
}

// shell is the interactive command loop.
type shell struct {
	a    *app
	o    *IO
	line *liner.State
}

// run starts the shell loop.
func (s *shell) run() error {
	// Set up liner for readline-style input
	s.line = liner.NewLiner()
	defer s.line.Close()

	// Configure liner
	s.line.SetCtrlCAborts(true)
	s.line.SetCompleter(s.completer)

	s.loadHistory()

	s.o.Printf("fm shell - type 'help' for commands\n")

	for {
		input, err := s.line.Prompt("fm> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				s.o.Println()

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		s.line.AppendHistory(input)

		quit, execErr := s.eval(input)
		if execErr != nil {
			s.o.ErrPrintln("error:", execErr)
		}

		if quit {
			break
		}
	}

	s.saveHistory()

	return nil
}

// eval runs one shell line. Returns true when the shell should exit.
func (s *shell) eval(input string) (bool, error) {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		return true, nil

	case "help", "?":
		s.printHelp()

		return false, nil

	case "cd":
		if len(args) == 0 {
			return false, errDirRequired
		}

		return false, s.a.mgr.ChangeDirectory(s.a.resolvePath(args[0]))

	case "pwd":
		s.o.Println(s.a.mgr.CurrentDir())

		return false, nil

	case "ls":
		if len(args) == 1 {
			// Listing another directory must not move the shell there.
			prev := s.a.mgr.CurrentDir()

			if err := s.a.mgr.ChangeDirectory(s.a.resolvePath(args[0])); err != nil {
				return false, err
			}

			err := printListing(s.o, s.a, false, false)
			_ = s.a.mgr.ChangeDirectory(prev)

			return false, err
		}

		return false, printListing(s.o, s.a, false, false)

	case "cat":
		if len(args) == 0 {
			return false, errPathRequired
		}

		content, err := s.a.mgr.ReadFile(s.a.resolvePath(args[0]))
		if err != nil {
			return false, err
		}

		s.o.Printf("%s", content)
		if !strings.HasSuffix(content, "\n") {
			s.o.Println()
		}

		return false, nil

	case "create":
		if len(args) == 0 {
			return false, errNameRequired
		}

		// Everything after the name is the content.
		return false, s.a.mgr.CreateFile(args[0], strings.Join(args[1:], " "))

	case "rm":
		if len(args) == 0 {
			return false, errPathRequired
		}

		return false, s.a.mgr.Delete(s.a.resolvePath(args[0]))

	default:
		return false, fmt.Errorf("unknown command: %s (type 'help' for commands)", cmd)
	}
}

func (s *shell) printHelp() {
	s.o.Println("Commands:")
	s.o.Println("  cd <dir>               Change the current directory")
	s.o.Println("  pwd                    Print the current directory")
	s.o.Println("  ls [dir]               List directory contents")
	s.o.Println("  cat <path>             Print file contents")
	s.o.Println("  create <name> [text]   Create a file in the current directory")
	s.o.Println("  rm <path>              Delete a file")
	s.o.Println("  exit / quit / q        Leave the shell")
}

// completer offers shell command names for tab completion.
func (s *shell) completer(line string) []string {
	var matches []string

	for _, cmd := range shellCommands {
		if strings.HasPrefix(cmd, strings.ToLower(line)) {
			matches = append(matches, cmd)
		}
	}

	return matches
}

func (s *shell) loadHistory() {
	path := s.a.cfg.HistoryFileAbs
	if path == "" {
		return
	}

	f, err := s.a.fsys.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = s.line.ReadHistory(f)
}

// saveHistory persists command history to disk atomically, so an
// interrupted save never truncates the existing history.
func (s *shell) saveHistory() {
	path := s.a.cfg.HistoryFileAbs
	if path == "" {
		return
	}

	var buf bytes.Buffer

	_, err := s.line.WriteHistory(&buf)
	if err != nil {
		return
	}

	_ = s.a.fsys.WriteFileAtomic(path, buf.Bytes(), 0o600)
}
