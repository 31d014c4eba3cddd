package cli

import (
	flag "github.com/spf13/pflag"
)

// RmCmd returns the rm command.
func RmCmd(a *app) *Command {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "rm <path>",
		Short: "Delete a file",
		Long:  "Delete the file at <path>. Does not recurse into directories.",
		Exec: func(o *IO, args []string) error {
			return execRm(a, args)
		},
	}
}

func execRm(a *app, args []string) error {
	if len(args) == 0 {
		return errPathRequired
	}

	if len(args) > 1 {
		return errTooManyArgs
	}

	return a.mgr.Delete(a.resolvePath(args[0]))
}
