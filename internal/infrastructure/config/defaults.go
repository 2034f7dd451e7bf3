package config

import (
	"time"

	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/physics"
	"github.com/bnema/dockframe/internal/domain/service"
)

const (
	defaultKeyPrefix  = "dockframe:layout:"
	defaultServerAddr = "127.0.0.1:7420"
	defaultCacheSize  = 256
)

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	geometry := service.DefaultFloatingGeometry()
	params := physics.DefaultParams()

	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Frame: FrameConfig{
			HeaderHeight:     geometry.HeaderHeight,
			InsetX:           geometry.InsetX,
			InsetY:           geometry.InsetY,
			MinFloatingWidth: geometry.MinFloatingWidth,
			HorizontalMargin: geometry.HorizontalMargin,
			VerticalMargin:   geometry.VerticalMargin,
			MobileBreakpoint: geometry.MobileBreakpoint,
			EdgeGap:          geometry.EdgeGap,
			MinWidth:         geometry.MinWidth,
			MinHeight:        geometry.MinHeight,
			DockHandleWidth:  48,
			DockHandleHeight: 96,
		},
		Physics: PhysicsConfig{
			VelocityMultiplier: params.VelocityMultiplier,
			NoiseFloor:         params.NoiseFloor,
			SampleWindowMs:     params.SampleWindowMs,
			MomentumThreshold:  params.MomentumThreshold,
			DockSpeedThreshold: params.DockSpeedThreshold,
			Friction:           params.Friction,
			MinVelocity:        params.MinVelocity,
			TickIntervalMs:     16,
		},
		Persistence: PersistenceConfig{
			Backend:   BackendSQLite,
			KeyPrefix: defaultKeyPrefix,
			CacheSize: defaultCacheSize,
		},
		Server: ServerConfig{
			Addr: defaultServerAddr,
		},
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 800,
		},
	}
}

// Geometry converts the frame section into floating geometry rules.
func (f FrameConfig) Geometry() service.FloatingGeometry {
	return service.FloatingGeometry{
		HeaderHeight:     f.HeaderHeight,
		MinFloatingWidth: f.MinFloatingWidth,
		HorizontalMargin: f.HorizontalMargin,
		VerticalMargin:   f.VerticalMargin,
		MobileBreakpoint: f.MobileBreakpoint,
		InsetX:           f.InsetX,
		InsetY:           f.InsetY,
		EdgeGap:          f.EdgeGap,
		MinWidth:         f.MinWidth,
		MinHeight:        f.MinHeight,
	}
}

// DockHandle is the size of the handle a docked frame collapses to.
func (f FrameConfig) DockHandle() entity.Size {
	return entity.Size{Width: f.DockHandleWidth, Height: f.DockHandleHeight}
}

// Params converts the physics section into momentum tuning.
func (p PhysicsConfig) Params() physics.Params {
	return physics.Params{
		VelocityMultiplier: p.VelocityMultiplier,
		NoiseFloor:         p.NoiseFloor,
		SampleWindowMs:     p.SampleWindowMs,
		MomentumThreshold:  p.MomentumThreshold,
		DockSpeedThreshold: p.DockSpeedThreshold,
		Friction:           p.Friction,
		MinVelocity:        p.MinVelocity,
	}
}

// TickInterval is the momentum animation period.
func (p PhysicsConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMs) * time.Millisecond
}

// Viewport returns the configured initial viewport.
func (v ViewportConfig) Viewport() entity.Viewport {
	return entity.Viewport{Width: v.Width, Height: v.Height}
}
