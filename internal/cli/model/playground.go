package model

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/bnema/dockframe/internal/bootstrap"
	"github.com/bnema/dockframe/internal/cli/styles"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/physics"
	"github.com/bnema/dockframe/internal/ui/input"
)

// Each terminal cell stands for this many CSS pixels.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const (
	moveStep   = 40.0
	throwSpeed = 30.0
	growFactor = 1.1
	slotWidth  = 240.0
	slotHeight = 128.0
	slotGap    = 16.0
	chromeRows = 4 // title, status, blank, help
)

type playgroundTickMsg time.Time

type cell struct {
	ch    rune
	owner entity.FrameID
	kind  entity.FrameMode
	slot  bool
}

// PlaygroundModel drives a live frame manager from the keyboard and draws
// every frame on a scaled terminal canvas.
type PlaygroundModel struct {
	ctx   context.Context
	rt    *bootstrap.Runtime
	theme *styles.Theme
	keys  styles.PlaygroundKeyMap
	help  help.Model

	frames   []entity.Frame
	slots    map[entity.FrameID]entity.Rect
	viewport entity.Viewport
	focus    entity.FrameID
	created  int
	width    int
	height   int
	status   string
	table    bool
	err      error
	tick     time.Duration
}

// NewPlaygroundModel creates a playground over rt. The runtime's loop must
// already be running.
func NewPlaygroundModel(ctx context.Context, rt *bootstrap.Runtime, theme *styles.Theme) PlaygroundModel {
	return PlaygroundModel{
		ctx:      ctx,
		rt:       rt,
		theme:    theme,
		keys:     styles.DefaultPlaygroundKeyMap(),
		help:     styles.NewHelp(theme),
		viewport: rt.Frames.Viewport(),
		tick:     rt.Config().Physics.TickInterval(),
		status:   "press n to add a frame",
	}
}

// Init implements tea.Model.
func (m PlaygroundModel) Init() tea.Cmd {
	return m.nextTick()
}

func (m PlaygroundModel) nextTick() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg { return playgroundTickMsg(t) })
}

// Update implements tea.Model.
func (m PlaygroundModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		vp := entity.Viewport{
			Width:  float64(max(msg.Width, 1)) * cellWidth,
			Height: float64(max(msg.Height-chromeRows, 1)) * cellHeight,
		}
		m.onLoop(func() { m.rt.Frames.SetViewport(m.ctx, vp) })
		m.viewport = vp
		m.refresh()
		return m, nil

	case playgroundTickMsg:
		m.refresh()
		return m, m.nextTick()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *PlaygroundModel) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Table):
		m.table = !m.table
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus()
	case key.Matches(msg, m.keys.New):
		m.newFrame()
	case key.Matches(msg, m.keys.Detach):
		m.dispatch(input.ActionDetach)
	case key.Matches(msg, m.keys.Attach):
		m.dispatch(input.ActionAttach)
	case key.Matches(msg, m.keys.Maximize):
		m.dispatch(input.ActionToggleMaximize)
	case key.Matches(msg, m.keys.DockLeft):
		m.dispatch(input.ActionDockLeft)
	case key.Matches(msg, m.keys.DockRight):
		m.dispatch(input.ActionDockRight)
	case key.Matches(msg, m.keys.Undock):
		m.dispatch(input.ActionUndock)
	case key.Matches(msg, m.keys.Close):
		m.dispatch(input.ActionClose)
	case key.Matches(msg, m.keys.Throw):
		m.throw(msg.String())
	case key.Matches(msg, m.keys.Move):
		m.move(msg.String())
	case key.Matches(msg, m.keys.Grow):
		m.resize(growFactor)
	case key.Matches(msg, m.keys.Shrink):
		m.resize(1 / growFactor)
	}
}

// onLoop runs fn on the runtime loop and records a failure in the status.
func (m *PlaygroundModel) onLoop(fn func()) bool {
	if err := m.rt.Loop.Call(m.ctx, fn); err != nil {
		m.err = err
		return false
	}
	return true
}

func (m *PlaygroundModel) refresh() {
	var frames []entity.Frame
	slots := make(map[entity.FrameID]entity.Rect)
	ok := m.onLoop(func() {
		frames = m.rt.Frames.Frames()
		for _, f := range frames {
			if rec, found := m.rt.Frames.Record(f.ID); found && rec.SlotRect != nil {
				slots[f.ID] = *rec.SlotRect
			}
		}
	})
	if ok {
		m.frames, m.slots = frames, slots
	}
	if _, ok := m.find(m.focus); !ok {
		m.focus = ""
		if len(m.frames) > 0 {
			m.focus = m.frames[len(m.frames)-1].ID
		}
	}
}

func (m *PlaygroundModel) find(id entity.FrameID) (entity.Frame, bool) {
	for _, f := range m.frames {
		if f.ID == id {
			return f, true
		}
	}
	return entity.Frame{}, false
}

func (m *PlaygroundModel) cycleFocus() {
	if len(m.frames) == 0 {
		return
	}
	next := 0
	for i, f := range m.frames {
		if f.ID == m.focus {
			next = (i + 1) % len(m.frames)
			break
		}
	}
	m.focus = m.frames[next].ID
	m.dispatch(input.ActionFocus)
}

// newFrame registers a frame against the next free inline slot.
func (m *PlaygroundModel) newFrame() {
	id := entity.FrameID(uuid.NewString()[:8])
	slot := m.slotRect(m.created)
	m.created++

	m.onLoop(func() {
		m.rt.Frames.RegisterContent(m.ctx, id, id, entity.ContentMetadata{
			Title:   string(id),
			Persist: true,
		})
		m.rt.Frames.ReportRect(m.ctx, id, slot)
	})
	m.focus = id
	m.status = fmt.Sprintf("registered %s", id)
}

func (m *PlaygroundModel) slotRect(i int) entity.Rect {
	perRow := max(1, int((m.viewport.Width-slotGap)/(slotWidth+slotGap)))
	col, row := i%perRow, i/perRow
	return entity.Rect{
		X:      slotGap + float64(col)*(slotWidth+slotGap),
		Y:      slotGap + float64(row)*(slotHeight+slotGap),
		Width:  slotWidth,
		Height: slotHeight,
	}
}

func (m *PlaygroundModel) dispatch(action input.Action) {
	if m.focus == "" {
		return
	}
	var (
		changed bool
		err     error
	)
	m.onLoop(func() { changed, err = m.rt.Gestures.Dispatch(m.ctx, m.focus, action) })
	switch {
	case err != nil:
		m.err = err
	case changed:
		m.status = fmt.Sprintf("%s %s", action, m.focus)
	default:
		m.status = fmt.Sprintf("%s ignored for %s", action, m.focus)
	}
}

func direction(k string) physics.Vector {
	switch k {
	case "h", "H", "left":
		return physics.Vector{X: -1}
	case "l", "L", "right":
		return physics.Vector{X: 1}
	case "k", "K", "up":
		return physics.Vector{Y: -1}
	default:
		return physics.Vector{Y: 1}
	}
}

func (m *PlaygroundModel) move(k string) {
	f, ok := m.find(m.focus)
	if !ok {
		return
	}
	d := direction(k)
	pos := entity.Point{X: f.Position.X + d.X*moveStep, Y: f.Position.Y + d.Y*moveStep}

	var moved bool
	m.onLoop(func() { moved = m.rt.Frames.UpdatePosition(m.ctx, f.ID, pos) })
	if !moved {
		m.status = fmt.Sprintf("move ignored for %s", f.ID)
	}
}

func (m *PlaygroundModel) throw(k string) {
	if m.focus == "" {
		return
	}
	d := direction(strings.ToLower(k))
	v := physics.Vector{X: d.X * throwSpeed, Y: d.Y * throwSpeed}

	var thrown bool
	m.onLoop(func() { thrown = m.rt.Drag.Throw(m.ctx, m.focus, v) })
	if thrown {
		m.status = fmt.Sprintf("threw %s", m.focus)
	} else {
		m.status = fmt.Sprintf("throw ignored for %s", m.focus)
	}
}

func (m *PlaygroundModel) resize(factor float64) {
	f, ok := m.find(m.focus)
	if !ok {
		return
	}
	size := entity.Size{Width: f.Size.Width * factor, Height: f.Size.Height * factor}
	m.onLoop(func() { m.rt.Frames.UpdateSize(m.ctx, f.ID, size) })
}

// View implements tea.Model.
func (m PlaygroundModel) View() string {
	var sb strings.Builder

	title := m.theme.Title.Render(styles.IconWindow + " dockframe playground")
	if f, ok := m.find(m.focus); ok {
		title += "  " + m.theme.Highlight.Render(string(f.ID)) + " " + m.theme.ModeBadge(f.Mode)
	}
	sb.WriteString(title + "\n")

	status := m.theme.Subtle.Render(m.status)
	if m.err != nil {
		status = m.theme.ErrorStyle.Render(m.err.Error())
	}
	sb.WriteString(status + "\n")

	if m.table {
		sb.WriteString(m.renderTable())
	} else {
		sb.WriteString(m.renderCanvas())
	}
	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}

// renderTable lists every frame with the focused one selected.
func (m PlaygroundModel) renderTable() string {
	rows := make([]table.Row, 0, len(m.frames))
	cursor := 0
	for i, f := range m.frames {
		rows = append(rows, styles.FrameRow(f))
		if f.ID == m.focus {
			cursor = i
		}
	}
	columns := styles.FrameTableColumns()
	height := max(m.height-chromeRows, styles.TableHeight(1))
	t := styles.NewStyledTable(m.theme, columns, rows, styles.TableWidth(columns), height, true)
	t.SetCursor(cursor)
	return lipgloss.NewStyle().Height(height).Render(t.View())
}

func (m PlaygroundModel) renderCanvas() string {
	cols := max(m.width, 1)
	rows := max(m.height-chromeRows, 1)

	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}

	handle := m.rt.Config().Frame.DockHandle()
	for _, f := range m.frames {
		switch {
		case f.Mode == entity.ModeInline:
			if rect, ok := m.slots[f.ID]; ok {
				paint(grid, rect, f, true)
			}
		case f.Mode.IsDocked():
			if rect, ok := f.HandleRect(handle, m.viewport); ok {
				paint(grid, rect, f, false)
			}
		default:
			paint(grid, entity.Rect{
				X: f.Position.X, Y: f.Position.Y, Width: f.Size.Width, Height: f.Size.Height,
			}, f, false)
		}
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = m.renderRow(row)
	}
	return strings.Join(lines, "\n")
}

// paint fills rect, in CSS pixels, with a box labelled by the frame id.
// Later frames overwrite earlier ones, so callers paint in z order.
func paint(grid [][]cell, rect entity.Rect, f entity.Frame, slot bool) {
	rows, cols := len(grid), len(grid[0])
	x0 := int(math.Floor(rect.X / cellWidth))
	y0 := int(math.Floor(rect.Y / cellHeight))
	x1 := int(math.Ceil((rect.X+rect.Width)/cellWidth)) - 1
	y1 := int(math.Ceil((rect.Y+rect.Height)/cellHeight)) - 1

	for y := max(y0, 0); y <= min(y1, rows-1); y++ {
		for x := max(x0, 0); x <= min(x1, cols-1); x++ {
			ch := ' '
			switch {
			case slot && (y == y0 || y == y1 || x == x0 || x == x1):
				ch = '·'
			case !slot && y == y0:
				ch = '▀'
			}
			grid[y][x] = cell{ch: ch, owner: f.ID, kind: f.Mode, slot: slot}
		}
	}

	label := []rune(" " + string(f.ID) + " ")
	ly := max(y0, 0)
	if ly >= rows {
		return
	}
	for i, r := range label {
		x := x0 + 1 + i
		if x < 0 || x >= cols || x >= x1 {
			continue
		}
		grid[ly][x].ch = r
	}
}

func (m PlaygroundModel) styleFor(c cell) lipgloss.Style {
	switch {
	case c.owner == "":
		return m.theme.Subtle
	case c.slot:
		if c.owner == m.focus {
			return m.theme.Highlight
		}
		return m.theme.Subtle
	case c.owner == m.focus:
		return m.theme.FrameFocused
	case c.kind.IsDocked():
		return m.theme.FrameDocked
	default:
		return m.theme.FrameFloating
	}
}

// renderRow styles runs of cells sharing an owner in one Render call.
func (m PlaygroundModel) renderRow(row []cell) string {
	var sb strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].owner == row[start].owner && row[i].slot == row[start].slot {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteRune(c.ch)
		}
		sb.WriteString(m.styleFor(row[start]).Render(run.String()))
		start = i
	}
	return sb.String()
}
