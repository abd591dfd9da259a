package config

import (
	"os"
	"path/filepath"
)

// SettingsEnv overrides settings file discovery.
const SettingsEnv = "ALIASRESOLVE_SETTINGS"

// ProjectSettingsFile is the preferred project settings file name.
const ProjectSettingsFile = ".aliasresolve.yaml"

// projectSettingsNames are looked up in the working directory.
var projectSettingsNames = []string{
	ProjectSettingsFile,
	".aliasresolve.yml",
	".aliasresolve.json",
	".aliasresolve.toml",
}

// Paths contains standard filesystem paths for aliasresolve.
type Paths struct {
	// HomeDir is the aliasresolve home directory (~/.aliasresolve).
	HomeDir string

	// SettingsFile is the user settings file (~/.aliasresolve/config.yaml).
	SettingsFile string
}

// DefaultPaths returns the default paths.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	home := filepath.Join(homeDir, ".aliasresolve")
	return &Paths{
		HomeDir:      home,
		SettingsFile: filepath.Join(home, "config.yaml"),
	}, nil
}

// ResolveSettingsPathResult is the settings file to load and where the
// choice came from.
type ResolveSettingsPathResult struct {
	Path     string
	Source   ConfigSource
	Shadowed map[ConfigSource]string
}

// ResolveSettingsPath picks the settings file using precedence:
// (1) --settings flag, (2) ALIASRESOLVE_SETTINGS, (3) a project file in
// workDir, (4) ~/.aliasresolve/config.yaml. The returned path may not exist.
func ResolveSettingsPath(flagValue, workDir string) (ResolveSettingsPathResult, error) {
	result := ResolveSettingsPathResult{Shadowed: make(map[ConfigSource]string)}

	envValue := os.Getenv(SettingsEnv)
	projectFile := findProjectSettings(workDir)

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, envValue},
		{SourceProject, projectFile},
		{SourceDefault, paths.SettingsFile},
	}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Path = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	expanded, err := ExpandPath(result.Path)
	if err != nil {
		return result, err
	}
	result.Path = expanded
	return result, nil
}

func findProjectSettings(workDir string) string {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		workDir = wd
	}
	for _, name := range projectSettingsNames {
		path := filepath.Join(workDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
