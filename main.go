package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"oxi/core"
)

type Options struct {
	Config      string `long:"config" description:"Path to the settings file. Defaults to ~/.config/oxi/oxi.json"`
	Verbose     bool   `short:"v" long:"verbose" description:"Enable verbose logging"`
	LogLocation string `short:"l" long:"log-location" description:"Specifies path to logfile. Defaults to User's Cache Dir / oxi.log"`
	NoColor     bool   `long:"no-color" description:"Disable coloured output"`
	Version     bool   `long:"version" description:"Print the version and exit"`
}

func newParser(a *app) *flags.Parser {
	parser := flags.NewParser(a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.SubcommandsOptional = true
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if cmd == nil {
			return nil
		}
		closer, err := a.initLogging()
		if err != nil {
			return err
		}
		defer closer.Close()
		return cmd.Execute(args)
	}

	parser.AddCommand("init", "Create default settings and an empty catalog",
		"Creates ~/.config/oxi with default settings, an empty game catalog and the placeholder artwork. Existing files are kept.",
		&initCommand{app: a})
	parser.AddCommand("discover", "Find installed Steam games",
		"Reads the Steam library listing and every app manifest in each library, skipping runtimes and compatibility tools.",
		&discoverCommand{app: a})
	parser.AddCommand("list", "List games in the catalog", "", &listCommand{app: a})
	parser.AddCommand("add-title", "Add a game that Steam does not know about", "", &addTitleCommand{app: a})
	parser.AddCommand("backup", "Take a snapshot of a game's saves",
		"Records a new snapshot for TITLE and copies its save directory to <save_base_path>/<TITLE>/<count>.",
		&backupCommand{app: a})
	parser.AddCommand("restore", "Restore a snapshot over a game's saves",
		"Copies a snapshot back over the save directory. The latest snapshot is used unless --count is given.",
		&restoreCommand{app: a})
	parser.AddCommand("snapshots", "List the snapshots of a game", "", &snapshotsCommand{app: a})

	return parser
}

func run(args []string, stdout io.Writer) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("unable to determine home directory: %w", err)
	}

	a := &app{opts: &Options{}, home: home, stdout: stdout}
	parser := newParser(a)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if parser.Active == nil {
		if a.opts.Version {
			fmt.Fprintln(stdout, core.APP_NAME, core.Version())
			return nil
		}
		parser.WriteHelp(stdout)
	}
	return nil
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(os.Stdout, flagsErr.Message)
		return
	}

	core.ErrorLogger.Println(err)
	printStatus(os.Stderr, statusError, shouldColorize(os.Stderr), "oxi: %v", err)
	os.Exit(1)
}
