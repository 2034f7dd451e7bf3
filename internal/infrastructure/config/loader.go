package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config     *Config
	viper      *viper.Viper
	configFile string // Explicit path; empty means the XDG location
	mu         sync.RWMutex
	callbacks  []func(*Config)
	watching   bool
}

// NewManager creates a configuration manager. An empty configFile uses
// config.toml in the XDG config directory.
func NewManager(configFile string) (*Manager, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		v.AddConfigPath(configDir)
	}

	// DOCKFRAME_PERSISTENCE_BACKEND, DOCKFRAME_SERVER_ADDR, ...
	v.SetEnvPrefix("DOCKFRAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "DOCKFRAME_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKFRAME_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DOCKFRAME_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DOCKFRAME_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:      v,
		configFile: configFile,
		callbacks:  make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables,
// writing a default file first if none exists.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.buildConfig()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.targetFile(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.targetFile(), createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// buildConfig runs the unmarshal, normalize and validate pipeline shared by
// Load and reload.
func (m *Manager) buildConfig() (*Config, error) {
	config, err := m.unmarshalConfig()
	if err != nil {
		return nil, err
	}
	if err := ensureSQLitePath(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

func ensureSQLitePath(config *Config) error {
	if config.Persistence.SQLitePath != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Persistence.SQLitePath = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	switch strings.ToLower(strings.TrimSpace(config.Logging.Format)) {
	case "", "console", "text":
		config.Logging.Format = "console"
	case "json":
		config.Logging.Format = "json"
	}

	backend := PersistenceBackend(strings.ToLower(strings.TrimSpace(string(config.Persistence.Backend))))
	if backend == "" {
		backend = BackendSQLite
	}
	config.Persistence.Backend = backend

	config.Persistence.RedisAddr = strings.TrimSpace(config.Persistence.RedisAddr)
	config.Server.Addr = strings.TrimSpace(config.Server.Addr)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.targetFile()
}

func (m *Manager) targetFile() string {
	if m.configFile != "" {
		return m.configFile
	}
	path, err := GetConfigFile()
	if err != nil {
		return "config.toml"
	}
	return path
}

// createDefaultConfig writes the current defaults to the config file.
func (m *Manager) createDefaultConfig() error {
	configFile := m.targetFile()

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if m.configFile == "" {
		m.viper.SetConfigFile(configFile)
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLoggingDefaults(defaults)
	m.setFrameDefaults(defaults)
	m.setPhysicsDefaults(defaults)
	m.setPersistenceDefaults(defaults)

	m.viper.SetDefault("server.addr", defaults.Server.Addr)
	m.viper.SetDefault("viewport.width", defaults.Viewport.Width)
	m.viper.SetDefault("viewport.height", defaults.Viewport.Height)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.file", defaults.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}

func (m *Manager) setFrameDefaults(defaults *Config) {
	f := defaults.Frame
	m.viper.SetDefault("frame.header_height", f.HeaderHeight)
	m.viper.SetDefault("frame.inset_x", f.InsetX)
	m.viper.SetDefault("frame.inset_y", f.InsetY)
	m.viper.SetDefault("frame.min_floating_width", f.MinFloatingWidth)
	m.viper.SetDefault("frame.horizontal_margin", f.HorizontalMargin)
	m.viper.SetDefault("frame.vertical_margin", f.VerticalMargin)
	m.viper.SetDefault("frame.mobile_breakpoint", f.MobileBreakpoint)
	m.viper.SetDefault("frame.edge_gap", f.EdgeGap)
	m.viper.SetDefault("frame.min_width", f.MinWidth)
	m.viper.SetDefault("frame.min_height", f.MinHeight)
	m.viper.SetDefault("frame.dock_handle_width", f.DockHandleWidth)
	m.viper.SetDefault("frame.dock_handle_height", f.DockHandleHeight)
}

func (m *Manager) setPhysicsDefaults(defaults *Config) {
	p := defaults.Physics
	m.viper.SetDefault("physics.velocity_multiplier", p.VelocityMultiplier)
	m.viper.SetDefault("physics.noise_floor", p.NoiseFloor)
	m.viper.SetDefault("physics.sample_window_ms", p.SampleWindowMs)
	m.viper.SetDefault("physics.momentum_threshold", p.MomentumThreshold)
	m.viper.SetDefault("physics.dock_speed_threshold", p.DockSpeedThreshold)
	m.viper.SetDefault("physics.friction", p.Friction)
	m.viper.SetDefault("physics.min_velocity", p.MinVelocity)
	m.viper.SetDefault("physics.tick_interval_ms", p.TickIntervalMs)
}

func (m *Manager) setPersistenceDefaults(defaults *Config) {
	p := defaults.Persistence
	m.viper.SetDefault("persistence.backend", string(p.Backend))
	m.viper.SetDefault("persistence.key_prefix", p.KeyPrefix)
	m.viper.SetDefault("persistence.cache_size", p.CacheSize)
	m.viper.SetDefault("persistence.sqlite_path", p.SQLitePath)
	m.viper.SetDefault("persistence.redis_addr", p.RedisAddr)
	m.viper.SetDefault("persistence.redis_db", p.RedisDB)
	m.viper.SetDefault("persistence.redis_password", p.RedisPassword)
}

var (
	globalManager     *Manager
	globalManagerOnce sync.Once
)

// Init initializes the global configuration manager.
func Init(configFile string) error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager(configFile)
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration, or the defaults before Init.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager.
func GetManager() *Manager {
	return globalManager
}
