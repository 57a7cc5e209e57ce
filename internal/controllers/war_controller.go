package controllers

import (
	"bytes"
	"net/http"
	"time"
	"warboard/internal/models"
	"warboard/internal/providers"
	"warboard/internal/services"
	"warboard/internal/session"
	"warboard/internal/views"
)

type WarController struct {
	logger   providers.Logger
	sessions session.ManagerInterface
	renderer views.RendererInterface
}

type warResponse struct {
	Tag       string                  `json:"tag"`
	State     models.WarState         `json:"state"`
	Label     string                  `json:"label"`
	UpdatedAt time.Time               `json:"updatedAt"`
	Aggregate *models.AggregateResult `json:"aggregate"`
	Snapshot  *models.WarSnapshot     `json:"snapshot"`
}

func NewWarController(logger providers.Logger, sessions session.ManagerInterface, renderer views.RendererInterface) *WarController {
	return &WarController{
		logger:   logger,
		sessions: sessions,
		renderer: renderer,
	}
}

// Clan renders the full status page and starts polling the clan if no
// session is running for it yet.
func (wc *WarController) Clan(w http.ResponseWriter, r *http.Request) {
	tag, ok := requireTag(w, r)
	if !ok {
		return
	}

	var fragments views.Fragments
	var err error
	if view, found := wc.sessions.Open(tag).Latest(); found {
		fragments = view.Fragments
	} else if fragments, err = wc.renderer.Render(tag, nil, nil); err != nil {
		wc.logger.Errorf(providers.TypeGet, "Render for %s failed: %s", tag, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err = wc.renderer.Page(&buf, tag, fragments); err != nil {
		wc.logger.Errorf(providers.TypeGet, "Page render for %s failed: %s", tag, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (wc *WarController) Fragments(w http.ResponseWriter, r *http.Request) {
	tag, ok := requireTag(w, r)
	if !ok {
		return
	}
	view, ok := wc.latest(w, tag)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view.Fragments)
}

func (wc *WarController) War(w http.ResponseWriter, r *http.Request) {
	tag, ok := requireTag(w, r)
	if !ok {
		return
	}
	view, ok := wc.latest(w, tag)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, warResponse{
		Tag:       tag,
		State:     view.Snapshot.State,
		Label:     services.StateLabel(view.Snapshot.State),
		UpdatedAt: view.UpdatedAt,
		Aggregate: view.Aggregate,
		Snapshot:  view.Snapshot,
	})
}

func (wc *WarController) latest(w http.ResponseWriter, tag string) (*session.View, bool) {
	s, ok := wc.sessions.Get(tag)
	if !ok {
		http.Error(w, "No session for "+tag, http.StatusNotFound)
		return nil, false
	}
	view, ok := s.Latest()
	if !ok {
		http.Error(w, "No war data yet", http.StatusNotFound)
		return nil, false
	}
	return view, true
}
