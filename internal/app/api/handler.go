// Package api exposes the frame manager to a browser-side presentation shell
// over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/bnema/dockframe/internal/application/usecase"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/logging"
	"github.com/bnema/dockframe/internal/ui/dispatcher"
	"github.com/bnema/dockframe/internal/ui/input"
)

const maxBodyBytes = 64 << 10

// Runner runs fn on the goroutine that owns frame state and waits for it.
type Runner interface {
	Call(ctx context.Context, fn func()) error
}

// Deps holds the collaborators of the API handler.
type Deps struct {
	Frames     *usecase.FrameManager
	Gestures   *dispatcher.GestureDispatcher
	Loop       Runner
	DockHandle func() entity.Size // Size of the edge handle of docked frames
	Now        func() time.Time // Stamps pointer events sent without a time
}

// Handler serves the shell API.
type Handler struct {
	frames     *usecase.FrameManager
	gestures   *dispatcher.GestureDispatcher
	loop       Runner
	dockHandle func() entity.Size
	now        func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(deps Deps) *Handler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	dockHandle := deps.DockHandle
	if dockHandle == nil {
		dockHandle = func() entity.Size { return entity.Size{} }
	}
	return &Handler{
		frames:     deps.Frames,
		gestures:   deps.Gestures,
		loop:       deps.Loop,
		dockHandle: dockHandle,
		now:        now,
	}
}

// Routes builds the router. base carries the logger used for requests.
func (h *Handler) Routes(base context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(withRequestContext(base))
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Post("/viewport", h.handleViewport)

	r.Route("/frames", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleRegister)
			r.Delete("/", h.handleUnregister)
			r.Post("/rect", h.handleRect)
			r.Post("/gesture", h.handleGesture)
			r.Post("/position", h.handlePosition)
			r.Post("/size", h.handleSize)
			r.Post("/dock-left", h.handleDock(entity.DockLeft))
			r.Post("/dock-right", h.handleDock(entity.DockRight))
			r.Post("/{action}", h.handleAction)
		})
	})

	return r
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	var views []frameView
	err := h.loop.Call(r.Context(), func() {
		views = h.viewsOnLoop()
	})
	if err != nil {
		h.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := frameID(r)

	var (
		view  frameView
		found bool
	)
	err := h.loop.Call(r.Context(), func() {
		view, found = h.viewOnLoop(id)
	})
	if err != nil {
		h.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	if !found {
		h.writeError(w, r, http.StatusNotFound, fmt.Errorf("frame %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	id := frameID(r)

	var req registerRequest
	if r.ContentLength != 0 && !h.decode(w, r, &req) {
		return
	}

	meta := entity.ContentMetadata{
		Title:       req.Title,
		Theme:       entity.Theme(req.Theme),
		Persist:     req.Persist,
		AspectRatio: req.AspectRatio,
	}
	content := &RemoteContent{Token: uuid.NewString()}

	var (
		created bool
		view    frameView
	)
	err := h.loop.Call(r.Context(), func() {
		created = h.frames.RegisterContent(r.Context(), id, content, meta)
		view, _ = h.viewOnLoop(id)
	})
	if err != nil {
		h.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, view)
}

func (h *Handler) handleUnregister(w http.ResponseWriter, r *http.Request) {
	id := frameID(r)

	var (
		destroyed bool
		view      *frameView
	)
	err := h.loop.Call(r.Context(), func() {
		destroyed = h.frames.UnregisterContent(r.Context(), id)
		if v, ok := h.viewOnLoop(id); ok {
			view = &v
		}
	})
	if err != nil {
		h.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, actionResponse{Changed: destroyed, Frame: view})
}

func (h *Handler) handleRect(w http.ResponseWriter, r *http.Request) {
	var rect entity.Rect
	if !h.decode(w, r, &rect) {
		return
	}
	h.runAction(w, r, func(ctx context.Context, id entity.FrameID) (bool, error) {
		return h.frames.ReportRect(ctx, id, rect), nil
	})
}

func (h *Handler) handleGesture(w http.ResponseWriter, r *http.Request) {
	var ev input.PointerEvent
	if !h.decode(w, r, &ev) {
		return
	}
	if ev.At.IsZero() {
		ev.At = h.now()
	}
	if err := ev.Validate(); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	h.runAction(w, r, func(ctx context.Context, id entity.FrameID) (bool, error) {
		return h.gestures.HandlePointer(ctx, id, ev)
	})
}

func (h *Handler) handlePosition(w http.ResponseWriter, r *http.Request) {
	var pos entity.Point
	if !h.decode(w, r, &pos) {
		return
	}
	h.runAction(w, r, func(ctx context.Context, id entity.FrameID) (bool, error) {
		return h.frames.UpdatePosition(ctx, id, pos), nil
	})
}

func (h *Handler) handleSize(w http.ResponseWriter, r *http.Request) {
	var size entity.Size
	if !h.decode(w, r, &size) {
		return
	}
	if size.Width <= 0 || size.Height <= 0 {
		h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("size must be positive, got %gx%g", size.Width, size.Height))
		return
	}
	h.runAction(w, r, func(ctx context.Context, id entity.FrameID) (bool, error) {
		return h.frames.UpdateSize(ctx, id, size), nil
	})
}

// handleDock docks at the body's y, or at the frame's current y when the
// body is empty or omits it.
func (h *Handler) handleDock(side entity.DockSide) http.HandlerFunc {
	action := input.ActionDockLeft
	if side == entity.DockRight {
		action = input.ActionDockRight
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req dockRequest
		if r.ContentLength != 0 && !h.decode(w, r, &req) {
			return
		}
		h.runAction(w, r, func(ctx context.Context, id entity.FrameID) (bool, error) {
			if req.Y == nil {
				return h.gestures.Dispatch(ctx, id, action)
			}
			return h.frames.Dock(ctx, id, side, *req.Y), nil
		})
	}
}

func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	action, ok := input.ParseAction(chi.URLParam(r, "action"))
	if !ok {
		h.writeError(w, r, http.StatusNotFound, fmt.Errorf("%w: %q", dispatcher.ErrUnknownAction, chi.URLParam(r, "action")))
		return
	}
	h.runAction(w, r, func(ctx context.Context, id entity.FrameID) (bool, error) {
		return h.gestures.Dispatch(ctx, id, action)
	})
}

func (h *Handler) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("viewport must be positive, got %gx%g", req.Width, req.Height))
		return
	}

	var views []frameView
	err := h.loop.Call(r.Context(), func() {
		h.frames.SetViewport(r.Context(), entity.Viewport{Width: req.Width, Height: req.Height})
		views = h.viewsOnLoop()
	})
	if err != nil {
		h.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// runAction runs fn for the {id} of r on the loop and replies with whether
// the frame changed plus its current view.
func (h *Handler) runAction(w http.ResponseWriter, r *http.Request, fn func(context.Context, entity.FrameID) (bool, error)) {
	id := frameID(r)
	ctx := logging.WithFrameID(r.Context(), string(id))

	var (
		resp   actionResponse
		runErr error
	)
	err := h.loop.Call(ctx, func() {
		resp.Changed, runErr = fn(ctx, id)
		if v, ok := h.viewOnLoop(id); ok {
			resp.Frame = &v
		}
	})
	if err != nil {
		h.writeError(w, r, http.StatusServiceUnavailable, err)
		return
	}
	if runErr != nil {
		h.writeError(w, r, http.StatusBadRequest, runErr)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// viewsOnLoop and viewOnLoop read manager state and must run on the loop.
func (h *Handler) viewsOnLoop() []frameView {
	vp := h.frames.Viewport()
	handle := h.dockHandle()
	frames := h.frames.Frames()
	views := make([]frameView, 0, len(frames))
	for _, f := range frames {
		rec, ok := h.frames.Record(f.ID)
		views = append(views, newFrameView(f, rec, ok, handle, vp))
	}
	return views
}

func (h *Handler) viewOnLoop(id entity.FrameID) (frameView, bool) {
	f, ok := h.frames.Frame(id)
	if !ok {
		return frameView{}, false
	}
	rec, hasRecord := h.frames.Record(id)
	return newFrameView(f, rec, hasRecord, h.dockHandle(), h.frames.Viewport()), true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	log := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError || errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func frameID(r *http.Request) entity.FrameID {
	return entity.FrameID(chi.URLParam(r, "id"))
}
