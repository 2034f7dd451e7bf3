package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "disabled": true, "off": true,
}

// validateConfig reports every invalid value at once, naming each key.
func validateConfig(config *Config) error {
	var errs []string

	errs = append(errs, validateLogging(config.Logging)...)
	errs = append(errs, validateFrame(config.Frame)...)
	errs = append(errs, validatePhysics(config.Physics)...)
	errs = append(errs, validatePersistence(config.Persistence)...)

	if config.Server.Addr == "" {
		errs = append(errs, "server.addr cannot be empty")
	}
	if config.Viewport.Width <= 0 || config.Viewport.Height <= 0 {
		errs = append(errs, fmt.Sprintf("viewport must be positive (got %gx%g)", config.Viewport.Width, config.Viewport.Height))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateLogging(l LoggingConfig) []string {
	var errs []string
	if !validLogLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error, disabled (got %q)", l.Level))
	}
	if l.Format != "console" && l.Format != "json" {
		errs = append(errs, fmt.Sprintf("logging.format must be console or json (got %q)", l.Format))
	}
	if l.File && l.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Sprintf("logging.max_size_mb must be positive when logging.file is set (got %d)", l.MaxSizeMB))
	}
	if l.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("logging.max_backups cannot be negative (got %d)", l.MaxBackups))
	}
	if l.MaxAgeDays < 0 {
		errs = append(errs, fmt.Sprintf("logging.max_age_days cannot be negative (got %d)", l.MaxAgeDays))
	}
	return errs
}

func validateFrame(f FrameConfig) []string {
	var errs []string

	nonNegative := []struct {
		key   string
		value float64
	}{
		{"frame.header_height", f.HeaderHeight},
		{"frame.inset_x", f.InsetX},
		{"frame.inset_y", f.InsetY},
		{"frame.horizontal_margin", f.HorizontalMargin},
		{"frame.vertical_margin", f.VerticalMargin},
		{"frame.mobile_breakpoint", f.MobileBreakpoint},
		{"frame.edge_gap", f.EdgeGap},
	}
	for _, v := range nonNegative {
		if v.value < 0 {
			errs = append(errs, fmt.Sprintf("%s cannot be negative (got %g)", v.key, v.value))
		}
	}

	positive := []struct {
		key   string
		value float64
	}{
		{"frame.min_floating_width", f.MinFloatingWidth},
		{"frame.min_width", f.MinWidth},
		{"frame.min_height", f.MinHeight},
		{"frame.dock_handle_width", f.DockHandleWidth},
		{"frame.dock_handle_height", f.DockHandleHeight},
	}
	for _, v := range positive {
		if v.value <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be positive (got %g)", v.key, v.value))
		}
	}
	return errs
}

func validatePhysics(p PhysicsConfig) []string {
	var errs []string

	if p.VelocityMultiplier <= 0 {
		errs = append(errs, fmt.Sprintf("physics.velocity_multiplier must be positive (got %g)", p.VelocityMultiplier))
	}
	if p.NoiseFloor < 0 {
		errs = append(errs, fmt.Sprintf("physics.noise_floor cannot be negative (got %g)", p.NoiseFloor))
	}
	if p.SampleWindowMs <= 0 {
		errs = append(errs, fmt.Sprintf("physics.sample_window_ms must be positive (got %g)", p.SampleWindowMs))
	}
	if p.MomentumThreshold < 0 {
		errs = append(errs, fmt.Sprintf("physics.momentum_threshold cannot be negative (got %g)", p.MomentumThreshold))
	}
	if p.DockSpeedThreshold <= 0 {
		errs = append(errs, fmt.Sprintf("physics.dock_speed_threshold must be positive (got %g)", p.DockSpeedThreshold))
	}
	if p.Friction <= 0 || p.Friction >= 1 {
		errs = append(errs, fmt.Sprintf("physics.friction must be between 0 and 1 exclusive (got %g)", p.Friction))
	}
	if p.MinVelocity <= 0 {
		errs = append(errs, fmt.Sprintf("physics.min_velocity must be positive (got %g)", p.MinVelocity))
	}
	if p.TickIntervalMs <= 0 {
		errs = append(errs, fmt.Sprintf("physics.tick_interval_ms must be positive (got %d)", p.TickIntervalMs))
	}
	return errs
}

func validatePersistence(p PersistenceConfig) []string {
	var errs []string

	switch p.Backend {
	case BackendSQLite:
		if p.SQLitePath == "" {
			errs = append(errs, "persistence.sqlite_path cannot be empty for the sqlite backend")
		}
	case BackendRedis:
		if p.RedisAddr == "" {
			errs = append(errs, "persistence.redis_addr cannot be empty for the redis backend")
		}
		if p.RedisDB < 0 {
			errs = append(errs, fmt.Sprintf("persistence.redis_db cannot be negative (got %d)", p.RedisDB))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Sprintf("persistence.backend must be sqlite, redis or memory (got %q)", p.Backend))
	}

	if p.KeyPrefix == "" {
		errs = append(errs, "persistence.key_prefix cannot be empty")
	}
	if p.CacheSize < 0 {
		errs = append(errs, fmt.Sprintf("persistence.cache_size cannot be negative (got %d)", p.CacheSize))
	}
	return errs
}
