// Package cli implements the fm command line: a thin front end over the
// file manager core with one-shot commands and an interactive shell.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/calvinalkan/fileman/internal/fs"
	"github.com/calvinalkan/fileman/internal/manager"
)

const (
	minArgs     = 2
	consumedOne = 1
	consumedTwo = 2
)

var errFlagRequiresArg = errors.New("flag requires an argument")

// app bundles everything commands need: the effective config, the
// filesystem, the manager instance, and process stdin.
type app struct {
	cfg   manager.Config
	fsys  fs.FS
	mgr   *manager.Manager
	stdin io.Reader
	color bool
}

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	name := flags.remaining[0]
	if name == "help" || name == "-h" || name == "--help" {
		printUsage(out)

		return 0
	}

	// Load and validate config
	cfg, err := manager.LoadConfig(manager.LoadConfigInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		Env:             env,
	})
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	fsys := fs.NewReal()
	a := &app{
		cfg:   cfg,
		fsys:  fsys,
		mgr:   manager.NewAt(fsys, cfg.RootDir),
		stdin: stdin,
		color: colorEnabled(cfg.Color),
	}

	// A configured start_dir must actually be a directory; validating it
	// through the manager gives the same error every other path gets.
	if cfg.StartDir != "" {
		if err := a.mgr.ChangeDirectory(cfg.RootDir); err != nil {
			o.ErrPrintln("error:", err)

			return 1
		}
	}

	// Dispatch to command
	for _, cmd := range commands(a) {
		if cmd.Name() == name {
			return cmd.Run(o, flags.remaining[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsage(errOut)

	return 1
}

// commands returns the command registry in help-listing order.
func commands(a *app) []*Command {
	return []*Command{
		LsCmd(a),
		CatCmd(a),
		CreateCmd(a),
		RmCmd(a),
		PwdCmd(a),
		ShellCmd(a),
		PrintConfigCmd(a),
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fm [global flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	for _, cmd := range commands(nil) {
		fmt.Fprintln(w, cmd.HelpLine())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global flags:")
	fmt.Fprintln(w, "  -C, --cwd <dir>        Run as if started in <dir>")
	fmt.Fprintln(w, "  -c, --config <file>    Use an explicit config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'fm <command> --help' for command details.")
}

// colorEnabled resolves the color config value against the terminal.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		// fatih/color disables itself on non-terminals; always means always.
		color.NoColor = false

		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}

// resolvePath joins a relative path with the manager's current
// directory. Absolute paths pass through untouched.
func (a *app) resolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(a.mgr.CurrentDir(), path)
}

type globalFlags struct {
	workDir    string
	configPath string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if arg == "-C" || arg == "--cwd" {
		if idx+1 >= len(args) {
			return 0, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return 0, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	return 0, nil
}
