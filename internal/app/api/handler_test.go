package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockframe/internal/app/api"
	"github.com/bnema/dockframe/internal/application/usecase"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/physics"
	"github.com/bnema/dockframe/internal/ui/dispatcher"
	"github.com/bnema/dockframe/internal/ui/mainloop"
)

type frameJSON struct {
	ID           string                 `json:"id"`
	Mode         string                 `json:"mode"`
	Position     entity.Point           `json:"position"`
	Size         entity.Size            `json:"size"`
	ZIndex       int64                  `json:"z_index"`
	DockY        float64                `json:"dock_y"`
	Handle       *entity.Rect           `json:"handle"`
	PreMaximize  *entity.LayoutSnapshot `json:"pre_maximize"`
	Title        string                 `json:"title"`
	Declared     bool                   `json:"declared"`
	ContentToken string                 `json:"content_token"`
}

type actionJSON struct {
	Changed bool       `json:"changed"`
	Frame   *frameJSON `json:"frame"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	loop := mainloop.NewLoop(0)
	go func() { _ = loop.Run(ctx) }()

	animator := mainloop.NewAnimator(mainloop.DefaultTickInterval, loop.PostAfter)
	frames := usecase.NewFrameManager(usecase.FrameManagerDeps{
		Viewport: entity.Viewport{Width: 1280, Height: 800},
		Animator: animator,
	})
	drag := usecase.NewDragController(frames, animator, physics.DefaultParams())
	gestures := dispatcher.NewGestureDispatcher(ctx, frames, drag, nil)

	h := api.NewHandler(api.Deps{
		Frames:     frames,
		Gestures:   gestures,
		Loop:       loop,
		DockHandle: func() entity.Size { return entity.Size{Width: 48, Height: 96} },
		Now:        func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	})

	srv := httptest.NewServer(h.Routes(ctx))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if body == nil {
		req.Body = http.NoBody
		req.ContentLength = 0
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func detach(t *testing.T, srv *httptest.Server, id string) frameJSON {
	t.Helper()

	resp := do(t, srv, http.MethodPut, "/frames/"+id, map[string]any{"title": id}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	do(t, srv, http.MethodPost, "/frames/"+id+"/rect", entity.Rect{X: 50, Y: 50, Width: 300, Height: 200}, nil)

	var out actionJSON
	resp = do(t, srv, http.MethodPost, "/frames/"+id+"/detach", nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, out.Changed)
	return *out.Frame
}

func TestRegister_KeepsFirstContentToken(t *testing.T) {
	srv := newTestServer(t)

	var first, second frameJSON
	resp := do(t, srv, http.MethodPut, "/frames/v1", map[string]any{"title": "Video"}, &first)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "inline", first.Mode)
	assert.NotEmpty(t, first.ContentToken)

	resp = do(t, srv, http.MethodPut, "/frames/v1", map[string]any{"title": "Video (HD)"}, &second)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first.ContentToken, second.ContentToken)
	assert.Equal(t, "Video (HD)", second.Title)
}

func TestRegister_EmptyBody(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, srv, http.MethodPut, "/frames/bare", nil, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestDetach_ReturnsFloatingGeometry(t *testing.T) {
	srv := newTestServer(t)

	f := detach(t, srv, "v1")
	assert.Equal(t, "floating", f.Mode)
	assert.Equal(t, entity.Point{X: 20, Y: 80}, f.Position)
	assert.Equal(t, entity.Size{Width: 400, Height: 244}, f.Size)
	assert.Positive(t, f.ZIndex)
}

func TestDetach_WithoutRectIsIgnored(t *testing.T) {
	srv := newTestServer(t)
	do(t, srv, http.MethodPut, "/frames/v1", nil, nil)

	var out actionJSON
	resp := do(t, srv, http.MethodPost, "/frames/v1/detach", nil, &out)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, out.Changed)
	assert.Equal(t, "inline", out.Frame.Mode)
}

func TestListFrames_OrderedByZ(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "a")
	detach(t, srv, "b")
	do(t, srv, http.MethodPost, "/frames/a/focus", nil, nil)

	var frames []frameJSON
	resp := do(t, srv, http.MethodGet, "/frames", nil, &frames)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, frames, 2)
	assert.Equal(t, "b", frames[0].ID)
	assert.Equal(t, "a", frames[1].ID)
	assert.Greater(t, frames[1].ZIndex, frames[0].ZIndex)
}

func TestGetFrame_NotFound(t *testing.T) {
	srv := newTestServer(t)

	var out map[string]string
	resp := do(t, srv, http.MethodGet, "/frames/ghost", nil, &out)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, out["error"], "ghost")
	assert.Equal(t, resp.Header.Get("X-Request-ID"), out["request_id"])
}

func TestUnknownAction(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "v1")

	resp := do(t, srv, http.MethodPost, "/frames/v1/explode", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDockReportsHandle(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "v1")

	var out actionJSON
	do(t, srv, http.MethodPost, "/frames/v1/dock-right", nil, &out)
	require.True(t, out.Changed)
	assert.Equal(t, "docked_right", out.Frame.Mode)
	require.NotNil(t, out.Frame.Handle)
	assert.Equal(t, entity.Rect{X: 1232, Y: 80, Width: 48, Height: 96}, *out.Frame.Handle)
}

func TestDock_AtRequestedY(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "v1")

	var out actionJSON
	resp := do(t, srv, http.MethodPost, "/frames/v1/dock-left", map[string]float64{"y": 300}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, out.Changed)
	assert.Equal(t, "docked_left", out.Frame.Mode)
	assert.Equal(t, 300.0, out.Frame.DockY)

	resp = do(t, srv, http.MethodPost, "/frames/v1/dock-right", map[string]any{"y": "high"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdatePositionAndSize(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "v1")

	var out actionJSON
	resp := do(t, srv, http.MethodPost, "/frames/v1/position", entity.Point{X: 200, Y: 150}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, out.Changed)
	assert.Equal(t, entity.Point{X: 200, Y: 150}, out.Frame.Position)

	resp = do(t, srv, http.MethodPost, "/frames/v1/size", entity.Size{Width: 640, Height: 360}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, out.Changed)
	assert.Equal(t, entity.Size{Width: 640, Height: 360}, out.Frame.Size)

	resp = do(t, srv, http.MethodPost, "/frames/v1/size", entity.Size{Width: 0, Height: 360}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdatePositionAndSize_IgnoredOutsideFloating(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "max")
	detach(t, srv, "docked")
	do(t, srv, http.MethodPost, "/frames/max/maximize", nil, nil)
	do(t, srv, http.MethodPost, "/frames/docked/dock-left", nil, nil)

	for _, id := range []string{"max", "docked", "ghost"} {
		var before frameJSON
		do(t, srv, http.MethodGet, "/frames/"+id, nil, &before)

		var out actionJSON
		resp := do(t, srv, http.MethodPost, "/frames/"+id+"/position", entity.Point{X: 5, Y: 5}, &out)
		require.Equal(t, http.StatusOK, resp.StatusCode, id)
		assert.False(t, out.Changed, id)

		resp = do(t, srv, http.MethodPost, "/frames/"+id+"/size", entity.Size{Width: 500, Height: 300}, &out)
		require.Equal(t, http.StatusOK, resp.StatusCode, id)
		assert.False(t, out.Changed, id)

		if out.Frame != nil {
			assert.Equal(t, before.Position, out.Frame.Position, id)
			assert.Equal(t, before.Size, out.Frame.Size, id)
		}
	}
}

func TestMaximizeFollowsViewport(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "v1")

	var out actionJSON
	do(t, srv, http.MethodPost, "/frames/v1/maximize", nil, &out)
	require.True(t, out.Changed)
	require.NotNil(t, out.Frame.PreMaximize)

	var frames []frameJSON
	resp := do(t, srv, http.MethodPost, "/viewport", map[string]float64{"width": 1024, "height": 700}, &frames)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, frames, 1)
	assert.Equal(t, entity.Size{Width: 1024, Height: 700}, frames[0].Size)

	resp = do(t, srv, http.MethodPost, "/viewport", map[string]float64{"width": 0, "height": 700}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGesture_HeaderDrag(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "v1")

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []map[string]any{
		{"phase": "down", "target": "header", "x": 100, "y": 100, "at": base},
		{"phase": "move", "target": "header", "x": 140, "y": 110, "at": base.Add(300 * time.Millisecond)},
		{"phase": "up", "target": "header", "x": 140, "y": 110, "at": base.Add(600 * time.Millisecond)},
	}

	var out actionJSON
	for _, ev := range events {
		resp := do(t, srv, http.MethodPost, "/frames/v1/gesture", ev, &out)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, entity.Point{X: 60, Y: 90}, out.Frame.Position)
}

func TestGesture_RejectsBadEvents(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "v1")

	resp := do(t, srv, http.MethodPost, "/frames/v1/gesture", map[string]any{"phase": "hover", "target": "header"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/frames/v1/gesture", map[string]any{"phase": "down", "bogus": 1}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUnregister_DetachedFrameSurvives(t *testing.T) {
	srv := newTestServer(t)
	detach(t, srv, "v1")

	var out actionJSON
	resp := do(t, srv, http.MethodDelete, "/frames/v1", nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, out.Changed)
	require.NotNil(t, out.Frame)
	assert.False(t, out.Frame.Declared)

	do(t, srv, http.MethodPost, "/frames/v1/close", nil, &out)
	assert.True(t, out.Changed)
	assert.Nil(t, out.Frame)
}

func TestRequestIDIsEchoedOrMinted(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))

	resp = do(t, srv, http.MethodGet, "/healthz", nil, nil)
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)
}
