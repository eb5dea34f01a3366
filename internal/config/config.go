package config

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	ServerModeDev  = "dev"
	ServerModeProd = "prod"
)

var (
	validLogFormats  = []string{"console", "json"}
	validServerModes = []string{ServerModeDev, ServerModeProd}
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Server Browser Authentication Store TreeState

type Configuration struct {
	Server    Server         `debugmap:"visible"`
	Browser   Browser        `debugmap:"visible"`
	Auth      Authentication `debugmap:"visible"`
	Store     Store          `debugmap:"visible"`
	TreeState TreeState      `debugmap:"visible"`
	LogFormat string `default:"console" debugmap:"visible"`
	LogLevel  string `default:"info" debugmap:"visible"`
}

type Server struct {
	ServerMode string `default:"dev" debugmap:"visible"`
	HTTPPort   int    `default:"8000" debugmap:"visible"`
}

// Browser holds the node api endpoints of both trees and the loading knobs
// shared by their stores.
type Browser struct {
	URL                 string        `default:"http://localhost:5050/browser/" debugmap:"visible"`
	RootPath            string        `default:"/browser" debugmap:"visible"`
	PreferencesURL      string        `default:"http://localhost:5050/preferences/" debugmap:"visible"`
	PreferencesRootPath string        `default:"/preferences" debugmap:"visible"`
	TypesFile           string        `debugmap:"visible"`
	Locale              string        `default:"en" debugmap:"visible"`
	NumWorkers          int           `default:"4" debugmap:"visible"`
	FetchTimeout        time.Duration `default:"30s" debugmap:"visible"`
	WaitReady           time.Duration `default:"0s" debugmap:"visible"`
}

type Authentication struct {
	JWTFilePath string `debugmap:"visible"`
}

type Store struct {
	// DataFolder holds navigator.duckdb. Empty keeps the state in memory.
	DataFolder string `debugmap:"visible"`
}

type TreeState struct {
	Enabled      bool          `default:"true" debugmap:"visible"`
	SaveInterval time.Duration `default:"30s" debugmap:"visible"`
}

func NewConfigurationWithDefaults() *Configuration {
	return NewConfigurationWithOptionsAndDefaults()
}

func (c *Configuration) Validate() error {
	if !slices.Contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log format %q: must be one of %v", c.LogFormat, validLogFormats)
	}
	if !slices.Contains(validServerModes, c.Server.ServerMode) {
		return fmt.Errorf("invalid server mode %q: must be one of %v", c.Server.ServerMode, validServerModes)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", c.Server.HTTPPort)
	}
	for _, root := range []string{c.Browser.RootPath, c.Browser.PreferencesRootPath} {
		if !strings.HasPrefix(root, "/") || strings.Count(root, "/") != 1 {
			return fmt.Errorf("invalid root path %q: must be a single segment starting with /", root)
		}
	}
	if c.Browser.RootPath == c.Browser.PreferencesRootPath {
		return fmt.Errorf("browser and preferences trees cannot share the root path %q", c.Browser.RootPath)
	}
	if c.Browser.NumWorkers < 1 {
		return fmt.Errorf("at least one worker is required, got %d", c.Browser.NumWorkers)
	}
	if c.TreeState.Enabled && c.TreeState.SaveInterval <= 0 {
		return fmt.Errorf("tree state save interval must be positive")
	}
	return nil
}
