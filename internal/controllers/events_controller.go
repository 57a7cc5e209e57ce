package controllers

import (
	"net/http"
	"time"
	"warboard/internal/events"
	"warboard/internal/models"
	"warboard/internal/providers"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	pingInterval = 5 * time.Second
	writeWait    = time.Second
)

var (
	upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	normalClosure = websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
)

type EventsController struct {
	logger providers.Logger
	hub    events.HubInterface
}

func NewEventsController(logger providers.Logger, hub events.HubInterface) *EventsController {
	return &EventsController{
		logger: logger,
		hub:    hub,
	}
}

// Stream upgrades to a websocket and forwards hub events as JSON until
// either side goes away. With ?tag= only that clan's events and untagged
// events are sent.
func (ec *EventsController) Stream(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		ec.logger.Warnf(providers.TypeGet, "Websocket upgrade failed: %s", err)
		return
	}
	defer ws.Close()

	tag := r.URL.Query().Get(tagParam)
	ch, cancel := ec.hub.Subscribe()
	defer cancel()

	// Incoming frames are ignored; reading keeps control frames flowing and
	// notices the peer closing.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				_ = ws.WriteControl(websocket.CloseMessage, normalClosure, time.Now().Add(writeWait))
				return
			}
			if !forTag(event, tag) {
				continue
			}
			msg, err := json.Marshal(event)
			if err != nil {
				ec.logger.Errorf(providers.TypeGet, "Unable to encode %s event: %s", event.Name, err)
				continue
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err = ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				ec.logger.Debugf(providers.TypeGet, "Websocket write failed: %s", err)
				return
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-gone:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func forTag(event models.Event, tag string) bool {
	return tag == "" || event.Tag == "" || event.Tag == tag
}
