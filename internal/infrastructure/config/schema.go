// Package config loads, validates and watches the dockframe configuration.
package config

// PersistenceBackend selects the key-value store layouts are written to.
type PersistenceBackend string

const (
	BackendSQLite PersistenceBackend = "sqlite"
	BackendRedis  PersistenceBackend = "redis"
	BackendMemory PersistenceBackend = "memory"
)

// Config is the full dockframe configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging" toml:"logging" json:"logging"`
	Frame       FrameConfig       `mapstructure:"frame" toml:"frame" json:"frame"`
	Physics     PhysicsConfig     `mapstructure:"physics" toml:"physics" json:"physics"`
	Persistence PersistenceConfig `mapstructure:"persistence" toml:"persistence" json:"persistence"`
	Server      ServerConfig      `mapstructure:"server" toml:"server" json:"server"`
	Viewport    ViewportConfig    `mapstructure:"viewport" toml:"viewport" json:"viewport"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error, disabled.
	Level string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled"`
	// Format is console or json.
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	// File enables a rotating JSON log under the XDG state directory.
	File       bool `mapstructure:"file" toml:"file" json:"file"`
	MaxSizeMB  int  `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int  `mapstructure:"max_backups" toml:"max_backups" json:"max_backups"`
	MaxAgeDays int  `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days"`
	Compress   bool `mapstructure:"compress" toml:"compress" json:"compress"`
}

// FrameConfig holds the floating geometry rules, in CSS pixels.
type FrameConfig struct {
	// HeaderHeight is the chrome header stacked on top of the content.
	HeaderHeight float64 `mapstructure:"header_height" toml:"header_height" json:"header_height"`
	// InsetX and InsetY are where a detached frame first appears.
	InsetX float64 `mapstructure:"inset_x" toml:"inset_x" json:"inset_x"`
	InsetY float64 `mapstructure:"inset_y" toml:"inset_y" json:"inset_y"`
	// MinFloatingWidth is the desktop lower bound for a detached frame's width.
	MinFloatingWidth float64 `mapstructure:"min_floating_width" toml:"min_floating_width" json:"min_floating_width"`
	HorizontalMargin float64 `mapstructure:"horizontal_margin" toml:"horizontal_margin" json:"horizontal_margin"`
	VerticalMargin   float64 `mapstructure:"vertical_margin" toml:"vertical_margin" json:"vertical_margin"`
	// MobileBreakpoint is the viewport width below which a detached frame keeps
	// its slot width instead of growing to MinFloatingWidth.
	MobileBreakpoint float64 `mapstructure:"mobile_breakpoint" toml:"mobile_breakpoint" json:"mobile_breakpoint"`
	// EdgeGap is kept between the viewport edge and an undocked frame.
	EdgeGap          float64 `mapstructure:"edge_gap" toml:"edge_gap" json:"edge_gap"`
	MinWidth         float64 `mapstructure:"min_width" toml:"min_width" json:"min_width"`
	MinHeight        float64 `mapstructure:"min_height" toml:"min_height" json:"min_height"`
	DockHandleWidth  float64 `mapstructure:"dock_handle_width" toml:"dock_handle_width" json:"dock_handle_width"`
	DockHandleHeight float64 `mapstructure:"dock_handle_height" toml:"dock_handle_height" json:"dock_handle_height"`
}

// PhysicsConfig tunes velocity tracking and momentum.
type PhysicsConfig struct {
	// VelocityMultiplier converts px/ms into px/tick.
	VelocityMultiplier float64 `mapstructure:"velocity_multiplier" toml:"velocity_multiplier" json:"velocity_multiplier"`
	// NoiseFloor drops pointer speeds (px/ms) at or below it.
	NoiseFloor     float64 `mapstructure:"noise_floor" toml:"noise_floor" json:"noise_floor"`
	SampleWindowMs float64 `mapstructure:"sample_window_ms" toml:"sample_window_ms" json:"sample_window_ms"`
	// MomentumThreshold is the release speed (px/tick) that starts momentum.
	MomentumThreshold float64 `mapstructure:"momentum_threshold" toml:"momentum_threshold" json:"momentum_threshold"`
	// DockSpeedThreshold is the edge-hit speed (px/tick) that docks a frame.
	DockSpeedThreshold float64 `mapstructure:"dock_speed_threshold" toml:"dock_speed_threshold" json:"dock_speed_threshold"`
	Friction           float64 `mapstructure:"friction" toml:"friction" json:"friction"`
	MinVelocity        float64 `mapstructure:"min_velocity" toml:"min_velocity" json:"min_velocity"`
	TickIntervalMs     int     `mapstructure:"tick_interval_ms" toml:"tick_interval_ms" json:"tick_interval_ms"`
}

// PersistenceConfig selects and configures the layout store.
type PersistenceConfig struct {
	Backend   PersistenceBackend `mapstructure:"backend" toml:"backend" json:"backend" jsonschema:"enum=sqlite,enum=redis,enum=memory"`
	KeyPrefix string             `mapstructure:"key_prefix" toml:"key_prefix" json:"key_prefix"`
	// CacheSize bounds the in-process layout cache. Zero disables it.
	CacheSize int `mapstructure:"cache_size" toml:"cache_size" json:"cache_size"`
	// SQLitePath defaults to dockframe.sqlite under the XDG data directory.
	SQLitePath    string `mapstructure:"sqlite_path" toml:"sqlite_path" json:"sqlite_path"`
	RedisAddr     string `mapstructure:"redis_addr" toml:"redis_addr" json:"redis_addr"`
	RedisDB       int    `mapstructure:"redis_db" toml:"redis_db" json:"redis_db"`
	RedisPassword string `mapstructure:"redis_password" toml:"redis_password" json:"redis_password"`
}

// ServerConfig configures the HTTP shell API.
type ServerConfig struct {
	Addr string `mapstructure:"addr" toml:"addr" json:"addr"`
}

// ViewportConfig is the viewport assumed until the shell reports one.
type ViewportConfig struct {
	Width  float64 `mapstructure:"width" toml:"width" json:"width"`
	Height float64 `mapstructure:"height" toml:"height" json:"height"`
}
