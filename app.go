package main

import (
	"fmt"
	"io"

	"oxi/core"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// app is the state shared by every command of one invocation.
type app struct {
	opts   *Options
	home   string
	stdout io.Writer
}

func (a *app) initLogging() (io.Closer, error) {
	if a.opts.LogLocation != "" {
		return core.InitLoggingWithPath(a.opts.LogLocation, a.opts.Verbose)
	}

	closer, err := core.InitLoggingWithDefaultPath(a.opts.Verbose)
	if err != nil {
		// A missing cache directory should not stop the command.
		fmt.Fprintln(a.stdout, "warning: logging disabled:", err)
		return nopCloser{}, nil
	}
	return closer, nil
}

func (a *app) settingsPath() string {
	if a.opts.Config != "" {
		return a.opts.Config
	}
	return core.SettingsPath(a.home)
}

func (a *app) settings() (core.Settings, error) {
	settings, err := core.LoadSettings(a.settingsPath())
	if err != nil {
		return core.Settings{}, fmt.Errorf("%w (run `oxi init` to create default settings)", err)
	}
	return settings, nil
}

// openCatalog locks and loads the catalog named by the settings.
func (a *app) openCatalog() (*core.CatalogStore, []core.Title, core.Settings, error) {
	settings, err := a.settings()
	if err != nil {
		return nil, nil, settings, err
	}

	store, err := core.OpenCatalogStore(settings.CatalogPath(a.home))
	if err != nil {
		return nil, nil, settings, err
	}

	titles, err := store.Load()
	if err != nil {
		store.Close()
		return nil, nil, settings, err
	}
	return store, titles, settings, nil
}

func (a *app) colorize(settings *core.Settings) bool {
	if a.opts.NoColor {
		return false
	}
	if settings != nil && !schemeHasColor(settings.ColorScheme) {
		return false
	}
	return shouldColorize(a.stdout)
}

func (a *app) scheme(settings *core.Settings) string {
	if settings == nil {
		return core.DefaultSettings().ColorScheme
	}
	return settings.ColorScheme
}
