package config

import (
	"fmt"
	"path/filepath"
)

const (
	// LogFormatPlain is a format for colored text
	LogFormatPlain = "plain"
	// LogFormatJSON is a format for json output
	LogFormatJSON = "json"

	defaultConfigDir = "config"
	defaultDataDir   = "data"

	defaultConfigFileName  = "config.toml"
	defaultGenesisJSONName = "genesis.json"
	defaultCourtJSONName   = "court.json"
)

var (
	defaultConfigFilePath  = filepath.Join(defaultConfigDir, defaultConfigFileName)
	defaultGenesisJSONPath = filepath.Join(defaultConfigDir, defaultGenesisJSONName)
	defaultCourtJSONPath   = filepath.Join(defaultConfigDir, defaultCourtJSONName)
)

// Config defines the top level configuration of a pegfee node
type Config struct {
	// Top level options use an anonymous struct
	BaseConfig `mapstructure:",squash"`

	Instrumentation *InstrumentationConfig `mapstructure:"instrumentation"`
}

// DefaultConfig returns a default configuration rooted at home
func DefaultConfig(home string) *Config {
	return &Config{
		BaseConfig:      DefaultBaseConfig(home),
		Instrumentation: DefaultInstrumentationConfig(),
	}
}

// GetConfig returns the default configuration for home and ensures its
// directories and config file exist.
func GetConfig(home string) (*Config, error) {
	cfg := DefaultConfig(home)

	if err := EnsureRoot(home); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the full path to the config.toml file
func (cfg *Config) ConfigFile() string {
	return rootify(defaultConfigFilePath, cfg.RootDir)
}

// ValidateBasic performs checks on the loaded values.
func (cfg *Config) ValidateBasic() error {
	if cfg.KeepLastStates < 0 {
		return fmt.Errorf("keep_last_states can not be negative")
	}

	if cfg.StateCacheSize < 1 {
		return fmt.Errorf("state_cache_size should be greater than 0")
	}

	switch cfg.LogFormat {
	case LogFormatPlain, LogFormatJSON:
	default:
		return fmt.Errorf("unsupported log_format %q", cfg.LogFormat)
	}

	switch cfg.DBBackend {
	case "goleveldb", "memdb":
	default:
		return fmt.Errorf("unsupported db_backend %q", cfg.DBBackend)
	}

	return nil
}

//-----------------------------------------------------------------------------
// BaseConfig

// BaseConfig defines the base configuration of a pegfee node
type BaseConfig struct {
	// The root directory for all data.
	// This should be set in viper so it can unmarshal into this struct
	RootDir string `mapstructure:"home"`

	// Path to the JSON file containing the initial token state
	Genesis string `mapstructure:"genesis_file"`

	// Path to the JSON file describing the court and its motions
	Court string `mapstructure:"court_file"`

	// Database backend: goleveldb | memdb
	DBBackend string `mapstructure:"db_backend"`

	// Database directory
	DBPath string `mapstructure:"db_path"`

	// Output level for logging
	LogLevel string `mapstructure:"log_level"`

	// Output format: 'plain' (colored text) or 'json'
	LogFormat string `mapstructure:"log_format"`

	LogPath string `mapstructure:"log_path"`

	// Address to listen for API connections
	ListenAddress string `mapstructure:"listen_addr"`

	KeepLastStates int64 `mapstructure:"keep_last_states"`

	StateCacheSize int `mapstructure:"state_cache_size"`
}

// DefaultBaseConfig returns a default base configuration
func DefaultBaseConfig(home string) BaseConfig {
	return BaseConfig{
		RootDir:        home,
		Genesis:        defaultGenesisJSONPath,
		Court:          defaultCourtJSONPath,
		DBBackend:      "goleveldb",
		DBPath:         defaultDataDir,
		LogLevel:       DefaultPackageLogLevels(),
		LogFormat:      LogFormatPlain,
		LogPath:        "stdout",
		ListenAddress:  "tcp://127.0.0.1:8841",
		KeepLastStates: 120,
		StateCacheSize: 100000,
	}
}

// GenesisFile returns the full path to the genesis.json file
func (cfg BaseConfig) GenesisFile() string {
	return rootify(cfg.Genesis, cfg.RootDir)
}

// CourtFile returns the full path to the court.json file
func (cfg BaseConfig) CourtFile() string {
	return rootify(cfg.Court, cfg.RootDir)
}

// DBDir returns the full path to the database directory
func (cfg BaseConfig) DBDir() string {
	return rootify(cfg.DBPath, cfg.RootDir)
}

// DefaultLogLevel returns a default log level of "error"
func DefaultLogLevel() string {
	return "error"
}

// DefaultPackageLogLevels returns a default log level setting so all modules
// log at "error", while `main`, `feetoken` and `api` log at "info"
func DefaultPackageLogLevels() string {
	return fmt.Sprintf("main:info,feetoken:info,api:info,*:%s", DefaultLogLevel())
}

//-----------------------------------------------------------------------------
// InstrumentationConfig

// InstrumentationConfig defines the configuration for metrics reporting
type InstrumentationConfig struct {
	// When true, Prometheus metrics are served under /metrics on the API
	// listen address.
	Prometheus bool `mapstructure:"prometheus"`

	// Instrumentation namespace
	Namespace string `mapstructure:"namespace"`
}

// DefaultInstrumentationConfig returns a default configuration for metrics
// reporting
func DefaultInstrumentationConfig() *InstrumentationConfig {
	return &InstrumentationConfig{
		Prometheus: true,
		Namespace:  "pegfee",
	}
}

//-----------------------------------------------------------------------------
// Utils

// helper function to make config creation independent of root dir
func rootify(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
