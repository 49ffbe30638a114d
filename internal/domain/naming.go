package domain

import "path/filepath"

// AppName is the directory name used under the XDG config and data homes.
const AppName = "idraft"

// Config file names.
const (
	ConfigFileName        = "config.toml"
	ProjectConfigFileName = ".idraft.toml"
)

// GlobalConfigDir returns the global config directory.
// configHome is typically $XDG_CONFIG_HOME or ~/.config.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// DataDir returns the data directory.
// dataHome is typically $XDG_DATA_HOME or ~/.local/share.
func DataDir(dataHome string) string {
	return filepath.Join(dataHome, AppName)
}

// ProjectConfigPath returns the path to the project config file in dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectConfigFileName)
}

// LogPath returns the path to the log file.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "idraft.log")
}

// StorePath returns the default store file for backend.
func StorePath(dataDir, backend string) string {
	if backend == StoreBackendSQLite {
		return filepath.Join(dataDir, "drafts.db")
	}
	return filepath.Join(dataDir, "drafts.json")
}
