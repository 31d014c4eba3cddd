package cli

import (
	"errors"

	flag "github.com/spf13/pflag"
)

var errPathRequired = errors.New("path is required")

// CatCmd returns the cat command.
func CatCmd(a *app) *Command {
	fs := flag.NewFlagSet("cat", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "cat <path>",
		Short: "Print file contents",
		Long:  "Read a file and print its contents to stdout.",
		Exec: func(o *IO, args []string) error {
			return execCat(o, a, args)
		},
	}
}

func execCat(o *IO, a *app, args []string) error {
	if len(args) == 0 {
		return errPathRequired
	}

	if len(args) > 1 {
		return errTooManyArgs
	}

	content, err := a.mgr.ReadFile(a.resolvePath(args[0]))
	if err != nil {
		return err
	}

	o.Printf("%s", content)

	return nil
}
