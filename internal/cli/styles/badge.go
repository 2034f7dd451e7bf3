package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// StatusBadge renders a status badge with custom colors.
func (t *Theme) StatusBadge(text string, fg, bg lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Padding(0, 1)
	return style.Render(text)
}

// ModeBadge renders a frame mode. Detached modes use the accent color.
func (t *Theme) ModeBadge(mode entity.FrameMode) string {
	switch mode {
	case entity.ModeInline:
		return t.MutedBadge(mode.String())
	case entity.ModeMaximized:
		return t.StatusBadge(mode.String(), t.Background, t.Warning)
	default:
		return t.AccentBadge(mode.String())
	}
}
