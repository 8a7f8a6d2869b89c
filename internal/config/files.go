package config

import (
	"os"
	"path/filepath"
)

const AppName = "pagetable"

var (
	// AppConfigDir is ~/.config/pagetable
	AppConfigDir string

	// AppStateDir is ~/.local/state/pagetable
	AppStateDir string

	// AppConfigFile is ~/.config/pagetable/pagetable.yaml
	AppConfigFile string

	// AppSourcesFile is ~/.config/pagetable/sources.ini
	AppSourcesFile string

	// AppLogFile is ~/.local/state/pagetable/pagetable.log
	AppLogFile string
)

// InitLocs initializes the application paths, honoring XDG variables.
func InitLocs() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)
	AppConfigFile = filepath.Join(AppConfigDir, AppName+".yaml")
	AppSourcesFile = filepath.Join(AppConfigDir, "sources.ini")
	AppLogFile = filepath.Join(AppStateDir, AppName+".log")

	for _, dir := range []string{AppConfigDir, AppStateDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}

// InitLogLoc ensures the directory of the given log file exists.
func InitLogLoc(file string) error {
	if file == "" {
		file = AppLogFile
	}
	return os.MkdirAll(filepath.Dir(file), 0700)
}
