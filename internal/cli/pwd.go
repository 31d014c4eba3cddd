package cli

import (
	flag "github.com/spf13/pflag"
)

// PwdCmd returns the pwd command.
func PwdCmd(a *app) *Command {
	fs := flag.NewFlagSet("pwd", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "pwd",
		Short: "Print the working directory",
		Exec: func(o *IO, args []string) error {
			if len(args) > 0 {
				return errTooManyArgs
			}

			o.Println(a.mgr.CurrentDir())

			return nil
		},
	}
}
