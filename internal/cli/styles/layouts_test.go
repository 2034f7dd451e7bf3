package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockframe/internal/domain/entity"
)

func TestLayoutsRenderer_RenderList(t *testing.T) {
	r := NewLayoutsRenderer(NewTheme())

	out := r.RenderList([]entity.LayoutEntry{
		{ID: "player", Layout: entity.LayoutSnapshot{
			Position: entity.Point{X: 20, Y: 80},
			Size:     entity.Size{Width: 400, Height: 244.5},
		}},
	})

	assert.Contains(t, out, "player")
	assert.Contains(t, out, "400")
	assert.Contains(t, out, "244.5")
	assert.Contains(t, out, "1 stored")
}

func TestLayoutsRenderer_RenderListEmpty(t *testing.T) {
	out := NewLayoutsRenderer(NewTheme()).RenderList(nil)
	assert.Contains(t, out, "No stored layouts")
}

func TestTableWidth(t *testing.T) {
	assert.Equal(t, 36+8*4+2*5, TableWidth(LayoutTableColumns()))
}

func TestFrameRow(t *testing.T) {
	row := FrameRow(entity.Frame{ID: "a", Mode: entity.ModeInline})
	assert.Equal(t, "-", row[2])

	row = FrameRow(entity.Frame{
		ID:       "a",
		Mode:     entity.ModeFloating,
		ZIndex:   1001,
		Position: entity.Point{X: 20, Y: 80},
		Size:     entity.Size{Width: 400, Height: 244},
	})
	assert.Equal(t, []string{"a", "floating", "1001", "20,80", "400x244"}, []string(row))
}
