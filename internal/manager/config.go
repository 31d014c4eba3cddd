package manager

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	StartDir    string `json:"start_dir,omitempty"`    // Initial directory; defaults to the working directory
	HistoryFile string `json:"history_file,omitempty"` // Shell history location; defaults to ~/.fm_history
	Color       string `json:"color,omitempty"`        // auto|always|never

	// Resolved paths (computed, not serialized)
	EffectiveCwd   string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	RootDir        string `json:"-"` // Absolute initial directory for the manager
	HistoryFileAbs string `json:"-"` // Absolute history file path, empty if history is disabled

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Color: "auto",
	}
}

// ConfigFileName is the default config file name.
const ConfigFileName = ".fm.json"

// HistoryFileName is the default shell history file name, placed in the
// user's home directory.
const HistoryFileName = ".fm_history"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/fm/config.json if set, otherwise ~/.config/fm/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "fm", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "fm", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/fm/config.json or $XDG_CONFIG_HOME/fm/config.json)
// 3. Project config file at default location (.fm.json, if exists)
// 4. Explicit config file via configPath (if non-empty)
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	// Resolve effective working directory
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	// Load global config if it exists
	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	// Load project/explicit config file
	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	// Validate
	validateErr := validateConfig(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	// Resolve all paths to absolute
	cfg.EffectiveCwd = workDir

	cfg.RootDir = workDir
	if cfg.StartDir != "" {
		if filepath.IsAbs(cfg.StartDir) {
			cfg.RootDir = cfg.StartDir
		} else {
			cfg.RootDir = filepath.Join(workDir, cfg.StartDir)
		}
	}

	cfg.HistoryFileAbs = resolveHistoryFile(cfg, workDir, input.Env)

	return cfg, nil
}

// resolveHistoryFile resolves the history file path. Unset falls back
// to ~/.fm_history; an empty result means no home is known and history
// is disabled.
func resolveHistoryFile(cfg Config, workDir string, env map[string]string) string {
	if cfg.HistoryFile != "" {
		if filepath.IsAbs(cfg.HistoryFile) {
			return cfg.HistoryFile
		}

		return filepath.Join(workDir, cfg.HistoryFile)
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, HistoryFileName)
	}

	return ""
}

// loadGlobalConfig loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.fm.json) or an explicit config file.
// Returns the config, the path if loaded, and any error.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		// Explicit config file - must exist
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		// Check existence first to provide a clear "not found" error
		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		// Default project config file - optional
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, whether the file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.StartDir != "" {
		base.StartDir = overlay.StartDir
	}

	if overlay.HistoryFile != "" {
		base.HistoryFile = overlay.HistoryFile
	}

	if overlay.Color != "" {
		base.Color = overlay.Color
	}

	return base
}

func validateConfig(cfg Config) error {
	switch cfg.Color {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidColorMode, cfg.Color)
	}
}
