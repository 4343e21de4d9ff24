package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/clipvault/clipvault/pkg/utils"
)

// ConfigPaths holds all relevant paths for the application
type ConfigPaths struct {
	BaseDir      string `json:"base_dir" yaml:"base_dir"`             // Base directory for config files
	ActiveConfig string `json:"active_config" yaml:"active_config"`   // Path to the config file
	DataDir      string `json:"data_dir" yaml:"data_dir"`             // Directory for application data
	ImagesDir    string `json:"images_dir" yaml:"images_dir"`         // Directory for captured PNG files
	DBFile       string `json:"db_file" yaml:"db_file"`               // Path to the history database
	LogDir       string `json:"log_dir" yaml:"log_dir"`               // Directory for log files
}

// Config holds all application configuration
type Config struct {
	// General settings
	DeviceID   string `json:"device_id" yaml:"device_id"`
	DeviceName string `json:"device_name" yaml:"device_name"`

	// System paths configuration
	SystemPaths ConfigPaths `json:"system_paths" yaml:"system_paths"`

	// Logging configuration
	Log LogConfig `json:"log" yaml:"log"`

	// Storage configuration
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Clipboard polling interval for the daemon, in milliseconds
	PollingInterval int64 `json:"polling_interval" yaml:"polling_interval"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level             string `json:"level" yaml:"level"`
	Format            string `json:"format" yaml:"format"` // "json" or "console"
	EnableFileLogging bool   `json:"enable_file_logging" yaml:"enable_file_logging"`
}

// StorageConfig holds storage-related configuration
type StorageConfig struct {
	DBPath    string `json:"db_path" yaml:"db_path"`
	ImagesDir string `json:"images_dir" yaml:"images_dir"`
}

// GetConfigPaths returns the platform-specific configuration paths
func GetConfigPaths() (*ConfigPaths, error) {
	// First check environment variable for base directory
	baseDir := os.Getenv("CLIPVAULT_CONFIG_DIR")
	if baseDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}

		switch runtime.GOOS {
		case "windows":
			baseDir = filepath.Join(configDir, "ClipVault")
		case "darwin":
			baseDir = filepath.Join(configDir, "dev.clipvault")
		default: // Linux and others
			baseDir = filepath.Join(configDir, "clipvault")
		}
	}

	dataDir := os.Getenv("CLIPVAULT_DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		switch runtime.GOOS {
		case "windows":
			appData, err := os.UserConfigDir()
			if err == nil {
				dataDir = filepath.Join(appData, "ClipVault", "Data")
			} else {
				dataDir = filepath.Join(homeDir, "AppData", "Local", "ClipVault")
			}
		case "darwin":
			dataDir = filepath.Join(homeDir, "Library", "Application Support", "ClipVault")
		default: // Linux and others
			if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
				dataDir = filepath.Join(xdgDataHome, "clipvault")
			} else {
				dataDir = filepath.Join(homeDir, ".clipvault")
			}
		}
	}

	paths := &ConfigPaths{
		BaseDir:      baseDir,
		ActiveConfig: filepath.Join(baseDir, "config.yaml"),
		DataDir:      dataDir,
		ImagesDir:    filepath.Join(dataDir, "images"),
		DBFile:       filepath.Join(dataDir, "clipvault.db"),
		LogDir:       filepath.Join(dataDir, "logs"),
	}

	// Create directories if they don't exist. The images directory is owned
	// by the image store and created on first write instead.
	for _, dir := range []string{
		paths.BaseDir,
		paths.DataDir,
		paths.LogDir,
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	paths, _ := GetConfigPaths() // Ignore error, will use fallback paths
	if paths == nil {
		paths = &ConfigPaths{}
	}

	return &Config{
		DeviceID:    uuid.New().String(),
		DeviceName:  utils.GetHostname(),
		SystemPaths: *paths,
		Log: LogConfig{
			Level:             "info",
			Format:            "console",
			EnableFileLogging: false,
		},
		Storage: StorageConfig{
			DBPath:    paths.DBFile,
			ImagesDir: paths.ImagesDir,
		},
		PollingInterval: 1000, // 1 second
	}
}

// Load loads the configuration from the specified file or creates a default
// one if the file does not exist yet.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		paths, err := GetConfigPaths()
		if err != nil {
			return nil, err
		}
		configPath = paths.ActiveConfig
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := cfg.Save(configPath); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// Save saves the configuration to the specified file
func (c *Config) Save(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// overrideFromEnv overrides configuration values from environment variables
func overrideFromEnv(config *Config) {
	if val := os.Getenv("CLIPVAULT_DEVICE_ID"); val != "" {
		config.DeviceID = val
	}
	if val := os.Getenv("CLIPVAULT_DEVICE_NAME"); val != "" {
		config.DeviceName = val
	}
	if val := os.Getenv("CLIPVAULT_DATA_DIR"); val != "" {
		config.SystemPaths.DataDir = val
		config.SystemPaths.ImagesDir = filepath.Join(val, "images")
		config.SystemPaths.DBFile = filepath.Join(val, "clipvault.db")
		config.Storage.ImagesDir = config.SystemPaths.ImagesDir
		config.Storage.DBPath = config.SystemPaths.DBFile
	}
	if val := os.Getenv("CLIPVAULT_IMAGES_DIR"); val != "" {
		config.Storage.ImagesDir = val
	}
	if val := os.Getenv("CLIPVAULT_LOG_LEVEL"); val != "" {
		config.Log.Level = val
	}
	if val := os.Getenv("CLIPVAULT_POLLING_INTERVAL"); val != "" {
		if ms, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.PollingInterval = ms
		}
	}
}
