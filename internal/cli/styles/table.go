package styles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// tableHeaderRows is the height of the header row and its bottom border.
const tableHeaderRows = 2

// NewStyledTable creates a themed table model. An unfocused table renders
// the cursor row like any other row.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int, focused bool) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(focused),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.SurfaceVariant).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Text)
	if !focused {
		s.Selected = lipgloss.NewStyle()
	}

	t.SetStyles(s)
	return t
}

// LayoutTableColumns returns columns for the stored layout table.
func LayoutTableColumns() []table.Column {
	return []table.Column{
		{Title: "Frame", Width: 36},
		{Title: "X", Width: 8},
		{Title: "Y", Width: 8},
		{Title: "Width", Width: 8},
		{Title: "Height", Width: 8},
	}
}

// FrameTableColumns returns columns for the live frame table.
func FrameTableColumns() []table.Column {
	return []table.Column{
		{Title: "Frame", Width: 12},
		{Title: "Mode", Width: 13},
		{Title: "Z", Width: 6},
		{Title: "Position", Width: 14},
		{Title: "Size", Width: 12},
	}
}

// LayoutRow converts a stored layout to a table row.
func LayoutRow(e entity.LayoutEntry) table.Row {
	return table.Row{
		string(e.ID),
		formatPx(e.Layout.Position.X),
		formatPx(e.Layout.Position.Y),
		formatPx(e.Layout.Size.Width),
		formatPx(e.Layout.Size.Height),
	}
}

// FrameRow converts a live frame to a table row.
func FrameRow(f entity.Frame) table.Row {
	z := "-"
	if f.Mode.IsDetached() {
		z = fmt.Sprintf("%d", f.ZIndex)
	}
	return table.Row{
		string(f.ID),
		f.Mode.String(),
		z,
		formatPx(f.Position.X) + "," + formatPx(f.Position.Y),
		formatPx(f.Size.Width) + "x" + formatPx(f.Size.Height),
	}
}

// TableHeight returns the table height that shows rows lines of data.
func TableHeight(rows int) int {
	return rows + tableHeaderRows
}

// TableWidth returns the rendered width of columns including cell padding.
func TableWidth(columns []table.Column) int {
	w := 0
	for _, c := range columns {
		w += c.Width + 2
	}
	return w
}

// formatPx formats a CSS pixel value, dropping a zero fraction.
func formatPx(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
