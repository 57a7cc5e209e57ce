package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"warboard/internal/models"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialEvents(t *testing.T, h *harness, query string) *websocket.Conn {
	t.Helper()
	ec := NewEventsController(h.logger, h.hub)
	srv := httptest.NewServer(http.HandlerFunc(ec.Stream))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/events" + query
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	require.Eventually(t, func() bool { return h.hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	return ws
}

func readEvent(t *testing.T, ws *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	var event map[string]any
	require.NoError(t, json.Unmarshal(msg, &event))
	return event
}

func TestStream_ForwardsEvents(t *testing.T) {
	h := newHarness(t)
	ws := dialEvents(t, h, "")

	h.hub.Publish(models.Event{
		Name:    models.EventScoreboardUpdate,
		Tag:     "#2PP",
		Payload: models.ScoreboardUpdate{RepData: models.ScoreboardData{Clan: models.SideData{Stars: "3"}}},
	})

	event := readEvent(t, ws)
	assert.Equal(t, "scoreboardUpdate", event["event"])
	assert.Equal(t, "#2PP", event["tag"])
	payload, ok := event["payload"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, payload, "rep_data")
}

func TestStream_FiltersByTag(t *testing.T) {
	h := newHarness(t)
	ws := dialEvents(t, h, "?tag=%232PP")

	h.hub.Publish(models.Event{Name: models.EventViewUpdate, Tag: "#OTHER"})
	h.hub.Publish(models.Event{Name: models.EventLogoUpdate})
	h.hub.Publish(models.Event{Name: models.EventViewUpdate, Tag: "#2PP"})

	first := readEvent(t, ws)
	assert.Equal(t, "logoUpdate", first["event"])
	second := readEvent(t, ws)
	assert.Equal(t, "viewUpdate", second["event"])
	assert.Equal(t, "#2PP", second["tag"])
}

func TestStream_UnsubscribesOnDisconnect(t *testing.T) {
	h := newHarness(t)
	ws := dialEvents(t, h, "")

	require.NoError(t, ws.Close())
	assert.Eventually(t, func() bool { return h.hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStream_RejectsPlainHTTP(t *testing.T) {
	h := newHarness(t)
	ec := NewEventsController(h.logger, h.hub)

	rr := httptest.NewRecorder()
	ec.Stream(rr, httptest.NewRequest(http.MethodGet, "/events", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, h.hub.Subscribers())
}

func TestForTag(t *testing.T) {
	assert.True(t, forTag(models.Event{Tag: "#A"}, ""))
	assert.True(t, forTag(models.Event{}, "#A"))
	assert.True(t, forTag(models.Event{Tag: "#A"}, "#A"))
	assert.False(t, forTag(models.Event{Tag: "#B"}, "#A"))
}
