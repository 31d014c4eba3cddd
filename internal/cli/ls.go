package cli

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
)

var errTooManyArgs = errors.New("too many arguments")

// LsCmd returns the ls command.
func LsCmd(a *app) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.BoolP("long", "l", false, "Long listing (size and modification time)")
	fs.BoolP("all", "a", false, "Include dotfiles")

	return &Command{
		Flags: fs,
		Usage: "ls [dir] [flags]",
		Short: "List directory contents",
		Long:  "List the entries of a directory (default: the working directory).\nDirectories are shown with a trailing slash.",
		Exec: func(o *IO, args []string) error {
			return execLs(o, a, fs, args)
		},
	}
}

func execLs(o *IO, a *app, fs *flag.FlagSet, args []string) error {
	if len(args) > 1 {
		return errTooManyArgs
	}

	if len(args) == 1 {
		err := a.mgr.ChangeDirectory(a.resolvePath(args[0]))
		if err != nil {
			return err
		}
	}

	long, _ := fs.GetBool("long")
	all, _ := fs.GetBool("all")

	return printListing(o, a, long, all)
}

// printListing renders the current directory's entries. Shared with the
// shell's ls command.
func printListing(o *IO, a *app, long, all bool) error {
	names, err := a.mgr.ListFiles()
	if err != nil {
		return err
	}

	dirColor := color.New(color.FgBlue, color.Bold)

	for _, name := range names {
		if !all && strings.HasPrefix(name, ".") {
			continue
		}

		info, statErr := a.fsys.Stat(filepath.Join(a.mgr.CurrentDir(), name))
		isDir := statErr == nil && info.IsDir()

		display := name
		if isDir {
			display += string(filepath.Separator)
			if a.color {
				display = dirColor.Sprint(display)
			}
		}

		// Entries that vanish between ReadDir and Stat are listed bare.
		if long && statErr == nil {
			o.Printf("%8d  %s  %s\n", info.Size(), info.ModTime().Format("2006-01-02 15:04"), display)
		} else {
			o.Println(display)
		}
	}

	return nil
}
