package api

import (
	"github.com/bnema/dockframe/internal/domain/entity"
)

// RemoteContent is the content handle for a node owned by the shell. The
// token is minted once, at first registration, and echoed back on every
// frame view so the shell can check that its node was never replaced.
type RemoteContent struct {
	Token string
}

type registerRequest struct {
	Title       string  `json:"title"`
	Theme       string  `json:"theme"`
	Persist     bool    `json:"persist"`
	AspectRatio float64 `json:"aspect_ratio"`
}

type viewportRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type dockRequest struct {
	Y *float64 `json:"y"`
}

type frameView struct {
	ID           string                 `json:"id"`
	Mode         string                 `json:"mode"`
	Position     entity.Point           `json:"position"`
	Size         entity.Size            `json:"size"`
	ZIndex       int64                  `json:"z_index"`
	DockY        float64                `json:"dock_y,omitempty"`
	Handle       *entity.Rect           `json:"handle,omitempty"`
	PreMaximize  *entity.LayoutSnapshot `json:"pre_maximize,omitempty"`
	Persist      bool                   `json:"persist"`
	AspectRatio  float64                `json:"aspect_ratio,omitempty"`
	Title        string                 `json:"title,omitempty"`
	Theme        string                 `json:"theme,omitempty"`
	Declared     bool                   `json:"declared"`
	ContentToken string                 `json:"content_token,omitempty"`
}

type actionResponse struct {
	Changed bool       `json:"changed"`
	Frame   *frameView `json:"frame,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newFrameView(f entity.Frame, rec entity.ContentRecord, hasRecord bool, handle entity.Size, vp entity.Viewport) frameView {
	v := frameView{
		ID:          string(f.ID),
		Mode:        f.Mode.String(),
		Position:    f.Position,
		Size:        f.Size,
		ZIndex:      f.ZIndex,
		PreMaximize: f.PreMaximize,
		Persist:     f.Persist,
		AspectRatio: f.AspectRatio,
	}
	if f.Mode.IsDocked() {
		v.DockY = f.DockY
		if r, ok := f.HandleRect(handle, vp); ok {
			v.Handle = &r
		}
	}
	if hasRecord {
		v.Title = rec.Metadata.Title
		v.Theme = string(rec.Metadata.Theme)
		v.Declared = rec.Declared
		if c, ok := rec.Content.(*RemoteContent); ok {
			v.ContentToken = c.Token
		}
	}
	return v
}
