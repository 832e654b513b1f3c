// Package config is responsible for setting the program config from
// the config file and command-line arguments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

const Version = "v1.0.0"

var (
	configDir      = "traytime"
	configFileName = "config.yml"
	dbFileName     = "traytime.db"
	stateFileName  = "traytime.state"
	dbFilePath     string
	configFilePath string
	stateFilePath  string
)

func Dir() string {
	return configDir
}

// DBFilePath is the location of the SQLite session database.
func DBFilePath() string {
	return dbFilePath
}

// StateFilePath is the location of the tracker state snapshot store.
func StateFilePath() string {
	return stateFilePath
}

// InitializePaths resolves the config and data file locations under the
// XDG base directories. TRAYTIME_ENV switches to per-environment file names.
func InitializePaths() {
	env := strings.TrimSpace(os.Getenv("TRAYTIME_ENV"))
	if env != "" {
		configFileName = fmt.Sprintf("config_%s.yml", env)
		dbFileName = fmt.Sprintf("traytime_%s.db", env)
		stateFileName = fmt.Sprintf("traytime_%s.state", env)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath, err = xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	stateFilePath, err = xdg.DataFile(filepath.Join(configDir, stateFileName))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
