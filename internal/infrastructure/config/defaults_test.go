package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/physics"
	"github.com/bnema/dockframe/internal/domain/service"
)

func TestDefaultConfig_MatchesDomainDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, service.DefaultFloatingGeometry(), cfg.Frame.Geometry())
	assert.Equal(t, physics.DefaultParams(), cfg.Physics.Params())
	assert.Equal(t, 16*time.Millisecond, cfg.Physics.TickInterval())
	assert.Equal(t, entity.Size{Width: 48, Height: 96}, cfg.Frame.DockHandle())
	assert.Equal(t, entity.Viewport{Width: 1280, Height: 800}, cfg.Viewport.Viewport())
}

func TestDefaultConfig_PassesValidationOnceSQLitePathIsSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Persistence.SQLitePath = "/tmp/dockframe.sqlite"

	require.NoError(t, validateConfig(cfg))
	assert.Equal(t, BackendSQLite, cfg.Persistence.Backend)
	assert.Equal(t, "dockframe:layout:", cfg.Persistence.KeyPrefix)
	assert.Equal(t, "127.0.0.1:7420", cfg.Server.Addr)
}
