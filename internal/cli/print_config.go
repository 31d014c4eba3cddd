package cli

import (
	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(o *IO, _ []string) error {
			return execPrintConfig(o, a)
		},
	}
}

func execPrintConfig(o *IO, a *app) error {
	o.Println("effective_cwd=" + a.cfg.EffectiveCwd)
	o.Println("root_dir=" + a.cfg.RootDir)
	o.Println("color=" + a.cfg.Color)

	if a.cfg.HistoryFileAbs != "" {
		o.Println("history_file=" + a.cfg.HistoryFileAbs)
	}

	o.Println("")
	o.Println("# sources")

	if a.cfg.Sources.Global == "" && a.cfg.Sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if a.cfg.Sources.Global != "" {
			o.Println("global_config=" + a.cfg.Sources.Global)
		}

		if a.cfg.Sources.Project != "" {
			o.Println("project_config=" + a.cfg.Sources.Project)
		}
	}

	return nil
}
