package service

import (
	"math"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// FloatingGeometry computes geometry for frames leaving the page flow.
type FloatingGeometry struct {
	HeaderHeight     float64 // Chrome header added on top of the content height
	MinFloatingWidth float64 // Desktop lower bound for the initial width
	HorizontalMargin float64 // Width never exceeds viewport width minus this
	VerticalMargin   float64 // Height never exceeds viewport height minus this
	MobileBreakpoint float64 // Viewports narrower than this use the mobile rule
	InsetX           float64 // Initial floating position
	InsetY           float64
	EdgeGap          float64 // Distance kept from the edge when undocking
	MinWidth         float64 // Resize lower bounds
	MinHeight        float64
}

// DefaultFloatingGeometry returns the default geometry rules.
func DefaultFloatingGeometry() FloatingGeometry {
	return FloatingGeometry{
		HeaderHeight:     44,
		MinFloatingWidth: 400,
		HorizontalMargin: 40,
		VerticalMargin:   100,
		MobileBreakpoint: 768,
		InsetX:           20,
		InsetY:           80,
		EdgeGap:          20,
		MinWidth:         200,
		MinHeight:        120,
	}
}

// InitialLayout sizes a detaching frame from its inline slot. Frames always
// open at the inset corner rather than where the slot was.
func (g FloatingGeometry) InitialLayout(slot entity.Rect, vp entity.Viewport) entity.LayoutSnapshot {
	maxWidth := vp.Width - g.HorizontalMargin
	maxHeight := vp.Height - g.VerticalMargin

	// Mobile viewports keep the slot width, without the desktop minimum.
	width := slot.Width
	if !vp.IsMobile(g.MobileBreakpoint) {
		width = math.Max(width, g.MinFloatingWidth)
	}
	width = math.Min(width, maxWidth)
	height := math.Min(slot.Height+g.HeaderHeight, maxHeight)

	return entity.LayoutSnapshot{
		Position: entity.Point{X: g.InsetX, Y: g.InsetY},
		Size:     entity.Size{Width: math.Max(width, 0), Height: math.Max(height, 0)},
	}
}

// UndockPosition returns where a docked frame reappears.
func (g FloatingGeometry) UndockPosition(side entity.DockSide, y float64, frame entity.Size, vp entity.Viewport) entity.Point {
	if side == entity.DockRight {
		return entity.Point{X: vp.Width - frame.Width - g.EdgeGap, Y: y}
	}
	return entity.Point{X: g.EdgeGap, Y: y}
}

// ResizeTo applies the minimum size and an optional content aspect ratio.
// The ratio governs the content area, so the header is added after it.
func (g FloatingGeometry) ResizeTo(size entity.Size, aspectRatio float64) entity.Size {
	size.Width = math.Max(size.Width, g.MinWidth)
	if aspectRatio > 0 {
		size.Height = size.Width/aspectRatio + g.HeaderHeight
	}
	size.Height = math.Max(size.Height, g.MinHeight)
	return size
}

// FitToViewport moves a floating frame so it stays on screen. Frames larger
// than the viewport are pinned to the top-left.
func (g FloatingGeometry) FitToViewport(pos entity.Point, frame entity.Size, vp entity.Viewport) entity.Point {
	pos.X = clamp(pos.X, 0, math.Max(0, vp.Width-frame.Width))
	pos.Y = clamp(pos.Y, 0, math.Max(0, vp.Height-frame.Height))
	return pos
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
