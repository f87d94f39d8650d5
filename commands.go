package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"oxi/core"
)

type titleArg struct {
	Title string `positional-arg-name:"TITLE" description:"Display name of the game"`
}

type initCommand struct {
	app *app
}

func (c *initCommand) Execute(args []string) error {
	a := c.app
	created, err := core.InitConfig(a.home)
	if err != nil {
		return err
	}

	colorize := a.colorize(nil)
	if len(created) == 0 {
		printStatus(a.stdout, statusInfo, colorize, "Configuration already present in %s", core.ConfigDir(a.home))
		return nil
	}
	for _, path := range created {
		printStatus(a.stdout, statusOK, colorize, "Created %s", path)
	}
	return nil
}

type discoverCommand struct {
	app *app

	Library    string `long:"library" description:"Path to libraryfolders.vdf. Defaults to ~/.local/share/Steam/config/libraryfolders.vdf"`
	Thumbnails string `long:"thumbnails" description:"Steam library cache directory holding artwork"`
	SaveRoots  bool   `long:"save-roots" description:"Look up each game's compatibility prefix as its save path"`
	Import     bool   `long:"import" description:"Add newly found games to the catalog"`
}

func (c *discoverCommand) Execute(args []string) error {
	a := c.app
	paths := core.DefaultSteamPaths(a.home)
	if c.Library != "" {
		paths.LibraryListing = c.Library
	}
	if c.Thumbnails != "" {
		paths.Thumbnails = c.Thumbnails
	}

	titles, err := core.DiscoverTitles(paths, core.DiscoveryOptions{ResolveSaveRoots: c.SaveRoots})
	if err != nil {
		return err
	}
	core.SortTitles(titles)

	var settings *core.Settings
	if s, err := a.settings(); err == nil {
		settings = &s
	}
	colorize := a.colorize(settings)

	printStatus(a.stdout, statusInfo, colorize, "We have found %d Steam games on your system!", len(titles))
	headers := []string{"Title", "App ID", "Install Path", "Artwork"}
	if c.SaveRoots {
		headers = append(headers, "Save Path")
	}
	rows := make([][]string, 0, len(titles))
	for _, t := range titles {
		row := []string{t.Name, strconv.FormatUint(uint64(t.ID), 10), t.InstallPath, strconv.Itoa(len(t.Artwork))}
		if c.SaveRoots {
			row = append(row, t.SavePath)
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(a.stdout, renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignLeft, alignRight}, tableStyle(a.scheme(settings), colorize)))

	if !c.Import {
		return nil
	}

	store, existing, _, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	merged, added := core.MergeTitles(existing, titles)
	if err := store.Store(merged); err != nil {
		return err
	}
	printStatus(a.stdout, statusOK, colorize, "Imported %d new games into %s", added, store.Path())
	return nil
}

type listCommand struct {
	app *app
}

func (c *listCommand) Execute(args []string) error {
	a := c.app
	store, titles, settings, err := a.openCatalog()
	if err != nil {
		return err
	}
	store.Close()

	core.SortTitles(titles)
	rows := make([][]string, 0, len(titles))
	for _, t := range titles {
		latest := "-"
		if s, err := t.LatestSnapshot(); err == nil {
			latest = s.SavedAt
		}
		rows = append(rows, []string{t.Name, strconv.FormatUint(uint64(t.ID), 10), strconv.Itoa(len(t.Saves)), latest, t.SavePath})
	}

	colorize := a.colorize(&settings)
	fmt.Fprintln(a.stdout, renderTable(
		[]string{"Title", "App ID", "Snapshots", "Latest", "Save Path"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
		tableStyle(settings.ColorScheme, colorize),
	))
	return nil
}

type addTitleCommand struct {
	app *app

	Name      string `long:"name" required:"yes" description:"Display name of the game"`
	ID        uint32 `long:"id" description:"Steam app id, if any"`
	SavePath  string `long:"save-path" description:"Directory holding the game's saves"`
	Publisher string `long:"publisher" description:"Publisher name"`
	Developer string `long:"developer" description:"Developer name"`
}

func (c *addTitleCommand) Execute(args []string) error {
	a := c.app
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("a title needs a non-empty name")
	}

	store, titles, settings, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	if existing, err := core.FindTitle(titles, name); err == nil {
		return fmt.Errorf("%q is already in the catalog", existing.Name)
	}

	titles = append(titles, core.Title{
		Name:      name,
		ID:        c.ID,
		SavePath:  c.SavePath,
		Publisher: c.Publisher,
		Developer: c.Developer,
		Saves:     []core.Snapshot{},
		Artwork:   []string{},
	})
	if err := store.Store(titles); err != nil {
		return err
	}

	printStatus(a.stdout, statusOK, a.colorize(&settings), "Added %s", name)
	return nil
}

type backupCommand struct {
	app *app

	Path string   `long:"path" description:"Directory to back up. Defaults to the game's save path"`
	Args titleArg `positional-args:"yes" required:"yes"`
}

func (c *backupCommand) Execute(args []string) error {
	a := c.app
	store, titles, settings, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	title, err := core.FindTitle(titles, c.Args.Title)
	if err != nil {
		return err
	}

	production := c.Path
	if production == "" {
		production = title.SavePath
	}

	snapshot, err := title.AddSnapshot(production, settings.SnapshotRoot(a.home), time.Now())
	if err != nil {
		return err
	}

	_, statErr := os.Lstat(snapshot.BackupPath)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	report, err := core.Backup(snapshot)
	if err != nil {
		title.Saves = title.Saves[:len(title.Saves)-1]
		if fresh {
			if rmErr := os.RemoveAll(snapshot.BackupPath); rmErr != nil {
				core.ErrorLogger.Printf("Could not remove partial snapshot %s: %v", snapshot.BackupPath, rmErr)
			}
		}
		return err
	}

	if err := store.Store(titles); err != nil {
		return err
	}

	printStatus(a.stdout, statusOK, a.colorize(&settings), "Successfully backed up %s as snapshot %d (%s)", title.Name, snapshot.Count, report)
	return nil
}

type restoreCommand struct {
	app *app

	Count *uint32  `long:"count" description:"Snapshot to restore. Defaults to the latest"`
	Args  titleArg `positional-args:"yes" required:"yes"`
}

func (c *restoreCommand) Execute(args []string) error {
	a := c.app
	store, titles, settings, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	title, err := core.FindTitle(titles, c.Args.Title)
	if err != nil {
		return err
	}

	var snapshot *core.Snapshot
	if c.Count == nil {
		snapshot, err = title.LatestSnapshot()
	} else {
		snapshot, err = title.Snapshot(*c.Count)
	}
	if err != nil {
		return err
	}

	report, err := core.Restore(*snapshot, core.RestoreOptions{DeleteSafetyCopy: settings.DeleteOnRestore})
	if err != nil {
		return err
	}

	colorize := a.colorize(&settings)
	printStatus(a.stdout, statusOK, colorize, "Successfully restored %s snapshot %d (%s)", title.Name, snapshot.Count, report)
	if report.SafetyPath != "" {
		printStatus(a.stdout, statusInfo, colorize, "Previous saves kept in %s", report.SafetyPath)
	}
	return nil
}

type snapshotsCommand struct {
	app *app

	Args titleArg `positional-args:"yes" required:"yes"`
}

func (c *snapshotsCommand) Execute(args []string) error {
	a := c.app
	store, titles, settings, err := a.openCatalog()
	if err != nil {
		return err
	}
	store.Close()

	title, err := core.FindTitle(titles, c.Args.Title)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(title.Saves))
	for _, s := range title.Saves {
		rows = append(rows, []string{strconv.FormatUint(uint64(s.Count), 10), s.SavedAt, s.ProductionPath, s.BackupPath})
	}

	colorize := a.colorize(&settings)
	fmt.Fprintln(a.stdout, renderTable(
		[]string{"Count", "Saved At", "Production Path", "Backup Path"},
		rows,
		[]columnAlignment{alignRight},
		tableStyle(settings.ColorScheme, colorize),
	))
	return nil
}
