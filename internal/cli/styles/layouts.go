package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// LayoutsRenderer renders stored layouts for the layouts command.
type LayoutsRenderer struct {
	theme *Theme
}

// NewLayoutsRenderer creates a new layouts renderer with the given theme.
func NewLayoutsRenderer(theme *Theme) *LayoutsRenderer {
	return &LayoutsRenderer{theme: theme}
}

// RenderList renders every stored layout as an aligned table.
func (r *LayoutsRenderer) RenderList(entries []entity.LayoutEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("\n  %s %s\n",
			lipgloss.NewStyle().Foreground(r.theme.Muted).Render(IconInfo),
			r.theme.Subtle.Render("No stored layouts"))
	}

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, LayoutRow(e))
	}
	columns := LayoutTableColumns()
	t := NewStyledTable(r.theme, columns, rows, TableWidth(columns), TableHeight(len(rows)), false)

	var sb strings.Builder
	sb.WriteString("\n")
	for _, line := range strings.Split(t.View(), "\n") {
		sb.WriteString("  " + line + "\n")
	}

	sb.WriteString(fmt.Sprintf("\n  %s\n", r.theme.MutedBadge(fmt.Sprintf("%d stored", len(entries)))))
	return sb.String()
}

// RenderCleared renders the result of clearing every layout.
func (r *LayoutsRenderer) RenderCleared(count int) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Removed %s\n",
		iconStyle.Render(IconTrash),
		r.theme.Highlight.Render(fmt.Sprintf("%d layouts", count)))
}

// RenderForgotten renders the removal of one frame's layout.
func (r *LayoutsRenderer) RenderForgotten(id entity.FrameID) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf("\n  %s Forgot %s\n", iconStyle.Render(IconTrash), r.theme.Highlight.Render(string(id)))
}
