// Package config defines the configuration structure of the navigator.
//
// Configuration is organized into logical sections. Defaults come from the
// `default` struct tags (github.com/creasty/defaults); the cli overrides them
// with flags, NAVIGATOR_* environment variables or a yaml config file.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Browser        - Node api endpoints and tree loading
//	├── Auth           - Bearer token for the node api
//	├── Store          - Local DuckDB location
//	├── TreeState      - Persistence of expanded/selected nodes
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Browser Configuration
//
//	┌─────────────────────┬──────────────────────────────────────┬──────────────────────────────────────┐
//	│ Field               │ Default                              │ Description                          │
//	├─────────────────────┼──────────────────────────────────────┼──────────────────────────────────────┤
//	│ URL                 │ "http://localhost:5050/browser/"     │ Node api of the object browser       │
//	│ RootPath            │ "/browser"                           │ Root sentinel of the browser tree    │
//	│ PreferencesURL      │ "http://localhost:5050/preferences/" │ Node api of the preferences tree     │
//	│ PreferencesRootPath │ "/preferences"                       │ Root sentinel of the preferences tree│
//	│ TypesFile           │ ""                                   │ Extra node types (yaml)              │
//	│ Locale              │ "en"                                 │ Collation used to sort siblings      │
//	│ NumWorkers          │ 4                                    │ Concurrent node fetches              │
//	│ FetchTimeout        │ 30s                                  │ Timeout of one node fetch            │
//	│ WaitReady           │ 0s                                   │ Wait for the node api at startup     │
//	└─────────────────────┴──────────────────────────────────────┴──────────────────────────────────────┘
//
// # Tree State Configuration
//
//	┌──────────────┬─────────┬────────────────────────────────────────┐
//	│ Field        │ Default │ Description                            │
//	├──────────────┼─────────┼────────────────────────────────────────┤
//	│ Enabled      │ true    │ Save and restore expanded nodes        │
//	│ SaveInterval │ 30s     │ Period between two snapshots           │
//	└──────────────┴─────────┴────────────────────────────────────────┘
//
// # Code Generation
//
// Option helpers are generated by optgen from the struct definitions:
//
//	//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Browser Authentication Store TreeState
//
// Every section gets New<T>WithOptions, New<T>WithOptionsAndDefaults, one
// With<Field> option per field and a DebugMap honouring the debugmap tags:
//
//	cfg := config.NewConfigurationWithOptionsAndDefaults(
//	    config.WithLogLevel("debug"),
//	    config.WithBrowser(*config.NewBrowserWithOptionsAndDefaults(
//	        config.WithNumWorkers(8),
//	    )),
//	)
//
// # Debug Logging
//
// DebugMap is nested by section; helpers.Flatten turns it into dotted keys
// for structured logging:
//
//	zap.S().Infow("configuration loaded", "config", helpers.Flatten(cfg.DebugMap()))
package config
