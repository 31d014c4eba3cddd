package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"
)

var errNameRequired = errors.New("filename is required")

// CreateCmd returns the create command.
func CreateCmd(a *app) *Command {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.StringP("message", "m", "", "File content (reads stdin if omitted)")

	return &Command{
		Flags: fs,
		Usage: "create <name> [flags]",
		Short: "Create a file in the working directory",
		Long: "Create (or overwrite) a file named <name> in the working directory.\n" +
			"Content comes from -m/--message, or from stdin when the flag is omitted.\n" +
			"Prints the path of the created file.",
		Exec: func(o *IO, args []string) error {
			return execCreate(o, a, fs, args)
		},
	}
}

func execCreate(o *IO, a *app, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errNameRequired
	}

	if len(args) > 1 {
		return errTooManyArgs
	}

	name := args[0]

	content, _ := fs.GetString("message")

	if !fs.Changed("message") && a.stdin != nil {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		content = string(data)
	}

	err := a.mgr.CreateFile(name, content)
	if err != nil {
		return err
	}

	o.Println(filepath.Join(a.mgr.CurrentDir(), name))

	return nil
}
