package main

import (
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/dbnav/object-browser/internal/config"
)

// configFlag is a command line flag backed by one Configuration field.
type configFlag struct {
	register func(cmd *cobra.Command)
	apply    func(cfg *config.Configuration)
}

type configFlags []configFlag

func (fs configFlags) register(cmd *cobra.Command) {
	for _, f := range fs {
		f.register(cmd)
	}
}

// apply copies the resolved flag values into cfg. It runs after the
// environment and the config file were synced into the flags.
func (fs configFlags) apply(cfg *config.Configuration) {
	for _, f := range fs {
		f.apply(cfg)
	}
}

func loggingFlags(cfg *config.Configuration) configFlags {
	return configFlags{
		stringFlag("log-format", "log format (console|json)", cfg.LogFormat, true,
			func(c *config.Configuration) *string { return &c.LogFormat }),
		stringFlag("log-level", "log level (debug|info|warn|error)", cfg.LogLevel, true,
			func(c *config.Configuration) *string { return &c.LogLevel }),
	}
}

func browserFlags(cfg *config.Configuration) configFlags {
	return configFlags{
		stringFlag("browser-url", "node api base url of the browser tree", cfg.Browser.URL, true,
			func(c *config.Configuration) *string { return &c.Browser.URL }),
		stringFlag("root-path", "root path of the browser tree", cfg.Browser.RootPath, true,
			func(c *config.Configuration) *string { return &c.Browser.RootPath }),
		stringFlag("preferences-url", "node api base url of the preferences tree", cfg.Browser.PreferencesURL, true,
			func(c *config.Configuration) *string { return &c.Browser.PreferencesURL }),
		stringFlag("preferences-root-path", "root path of the preferences tree", cfg.Browser.PreferencesRootPath, true,
			func(c *config.Configuration) *string { return &c.Browser.PreferencesRootPath }),
		stringFlag("types-file", "yaml file with extra node types", cfg.Browser.TypesFile, true,
			func(c *config.Configuration) *string { return &c.Browser.TypesFile }),
		stringFlag("locale", "locale used to sort node labels", cfg.Browser.Locale, true,
			func(c *config.Configuration) *string { return &c.Browser.Locale }),
		intFlag("workers", "number of concurrent node api requests", cfg.Browser.NumWorkers, true,
			func(c *config.Configuration) *int { return &c.Browser.NumWorkers }),
		durationFlag("fetch-timeout", "timeout of a single children request", cfg.Browser.FetchTimeout, true,
			func(c *config.Configuration) *time.Duration { return &c.Browser.FetchTimeout }),
		durationFlag("wait-ready", "wait up to this long for the node api at startup, 0 to skip", cfg.Browser.WaitReady, true,
			func(c *config.Configuration) *time.Duration { return &c.Browser.WaitReady }),
		stringFlag("jwt-file", "file holding the bearer token sent to the node api", cfg.Auth.JWTFilePath, true,
			func(c *config.Configuration) *string { return &c.Auth.JWTFilePath }),
	}
}

func serveFlags(cfg *config.Configuration) configFlags {
	return configFlags{
		stringFlag("mode", "server mode (dev|prod)", cfg.Server.ServerMode, false,
			func(c *config.Configuration) *string { return &c.Server.ServerMode }),
		intFlag("port", "http port", cfg.Server.HTTPPort, false,
			func(c *config.Configuration) *int { return &c.Server.HTTPPort }),
		stringFlag("data-folder", "folder of the tree state database, empty keeps it in memory", cfg.Store.DataFolder, false,
			func(c *config.Configuration) *string { return &c.Store.DataFolder }),
		boolFlag("tree-state", "remember open and selected nodes across restarts", cfg.TreeState.Enabled, false,
			func(c *config.Configuration) *bool { return &c.TreeState.Enabled }),
		durationFlag("tree-state-interval", "how often the tree state is saved", cfg.TreeState.SaveInterval, false,
			func(c *config.Configuration) *time.Duration { return &c.TreeState.SaveInterval }),
	}
}

func stringFlag(name, usage, value string, persistent bool, field func(*config.Configuration) *string) configFlag {
	f := &cobraflags.StringFlag{Name: name, ViperKey: name, Usage: usage, Value: value, Persistent: persistent}
	return configFlag{
		register: func(cmd *cobra.Command) { f.Register(cmd) },
		apply:    func(cfg *config.Configuration) { *field(cfg) = f.GetString() },
	}
}

func intFlag(name, usage string, value int, persistent bool, field func(*config.Configuration) *int) configFlag {
	f := &cobraflags.IntFlag{Name: name, ViperKey: name, Usage: usage, Value: value, Persistent: persistent}
	return configFlag{
		register: func(cmd *cobra.Command) { f.Register(cmd) },
		apply:    func(cfg *config.Configuration) { *field(cfg) = f.GetInt() },
	}
}

func boolFlag(name, usage string, value bool, persistent bool, field func(*config.Configuration) *bool) configFlag {
	f := &cobraflags.BoolFlag{Name: name, ViperKey: name, Usage: usage, Value: value, Persistent: persistent}
	return configFlag{
		register: func(cmd *cobra.Command) { f.Register(cmd) },
		apply:    func(cfg *config.Configuration) { *field(cfg) = f.GetBool() },
	}
}

func durationFlag(name, usage string, value time.Duration, persistent bool, field func(*config.Configuration) *time.Duration) configFlag {
	f := &cobraflags.DurationFlag{Name: name, ViperKey: name, Usage: usage, Value: value, Persistent: persistent}
	return configFlag{
		register: func(cmd *cobra.Command) { f.Register(cmd) },
		apply:    func(cfg *config.Configuration) { *field(cfg) = f.GetDuration() },
	}
}
