package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockframe/internal/bootstrap"
	"github.com/bnema/dockframe/internal/cli/styles"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/infrastructure/persistence/memory"
	"github.com/bnema/dockframe/internal/logging"
)

func newPlayground(t *testing.T) PlaygroundModel {
	t.Helper()

	ctx, cancel := context.WithCancel(logging.WithContext(
		context.Background(), logging.NewFromConfigValues("disabled", "console")))
	rt, err := bootstrap.NewRuntime(ctx, bootstrap.Options{Store: memory.NewKVStore()})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = rt.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		_ = rt.Close()
	})

	m := NewPlaygroundModel(ctx, rt, styles.NewTheme())
	return send(t, m, tea.WindowSizeMsg{Width: 160, Height: 54})
}

func send(t *testing.T, m PlaygroundModel, msg tea.Msg) PlaygroundModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(PlaygroundModel)
	require.True(t, ok)
	return pm
}

func press(t *testing.T, m PlaygroundModel, keys string) PlaygroundModel {
	t.Helper()
	for _, r := range keys {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func focused(t *testing.T, m PlaygroundModel) entity.Frame {
	t.Helper()
	f, ok := m.find(m.focus)
	require.True(t, ok, "no focused frame")
	return f
}

func TestPlayground_ViewportFollowsTerminal(t *testing.T) {
	m := newPlayground(t)
	assert.Equal(t, entity.Viewport{Width: 160 * cellWidth, Height: 50 * cellHeight}, m.viewport)
	assert.Equal(t, m.viewport, m.rt.Frames.Viewport())
}

func TestPlayground_FrameLifecycle(t *testing.T) {
	m := newPlayground(t)

	m = press(t, m, "n")
	f := focused(t, m)
	assert.Equal(t, entity.ModeInline, f.Mode)
	assert.Contains(t, m.slots, f.ID)

	m = press(t, m, "d")
	assert.Equal(t, entity.ModeFloating, focused(t, m).Mode)
	assert.Contains(t, m.View(), string(f.ID))

	m = press(t, m, "m")
	assert.Equal(t, entity.ModeMaximized, focused(t, m).Mode)
	m = press(t, m, "m")
	assert.Equal(t, entity.ModeFloating, focused(t, m).Mode)

	m = press(t, m, "]")
	assert.Equal(t, entity.ModeDockedRight, focused(t, m).Mode)
	m = press(t, m, "u")
	assert.Equal(t, entity.ModeFloating, focused(t, m).Mode)

	m = press(t, m, "x")
	_, ok := m.find(f.ID)
	assert.False(t, ok)
	assert.Equal(t, entity.FrameID(""), m.focus)
}

func TestPlayground_MoveAndResize(t *testing.T) {
	m := newPlayground(t)
	m = press(t, m, "nd")
	before := focused(t, m)

	m = press(t, m, "lj")
	after := focused(t, m)
	assert.InDelta(t, before.Position.X+moveStep, after.Position.X, 1e-9)
	assert.InDelta(t, before.Position.Y+moveStep, after.Position.Y, 1e-9)

	m = press(t, m, "+")
	assert.Greater(t, focused(t, m).Size.Width, after.Size.Width)
}

func TestPlayground_IgnoredActionReportsStatus(t *testing.T) {
	m := newPlayground(t)
	m = press(t, m, "nu")
	assert.Contains(t, m.status, "ignored")
}

func TestPlayground_TabCyclesFocus(t *testing.T) {
	m := newPlayground(t)
	m = press(t, m, "nn")
	second := m.focus

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.NotEqual(t, second, m.focus)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, second, m.focus)
}

func TestPlayground_FrameTable(t *testing.T) {
	m := press(t, newPlayground(t), "nd")
	f := focused(t, m)

	m = press(t, m, "t")
	require.True(t, m.table)
	view := m.View()
	assert.Contains(t, view, string(f.ID))
	assert.Contains(t, view, "floating")

	m = press(t, m, "t")
	assert.False(t, m.table)
}

func TestPaint_ClipsToGrid(t *testing.T) {
	grid := make([][]cell, 3)
	for y := range grid {
		grid[y] = make([]cell, 4)
	}
	paint(grid, entity.Rect{X: -8, Y: 0, Width: 1000, Height: 1000}, entity.Frame{ID: "a", Mode: entity.ModeFloating}, false)

	for y := range grid {
		for x := range grid[y] {
			assert.Equal(t, entity.FrameID("a"), grid[y][x].owner)
		}
	}
}
