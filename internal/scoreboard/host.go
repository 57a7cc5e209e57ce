package scoreboard

import (
	"warboard/internal/events"
	"warboard/internal/models"
)

// WindowHost performs window management for the desktop shell.
type WindowHost interface {
	OpenWindow(tag string, spec models.WindowSpec) error
	AdjustWindowSize(tag string, size models.WindowSize) error
	CloseWindow(tag string, name string) error
}

// EventWindowHost forwards window commands to the shell over the event
// stream. Delivery is fire-and-forget.
type EventWindowHost struct {
	publisher events.Publisher
}

func (h *EventWindowHost) OpenWindow(tag string, spec models.WindowSpec) error {
	h.publisher.Publish(models.Event{Name: models.EventWindowOpen, Tag: tag, Payload: spec})
	return nil
}

func (h *EventWindowHost) AdjustWindowSize(tag string, size models.WindowSize) error {
	h.publisher.Publish(models.Event{Name: models.EventWindowResize, Tag: tag, Payload: size})
	return nil
}

func (h *EventWindowHost) CloseWindow(tag string, name string) error {
	h.publisher.Publish(models.Event{Name: models.EventWindowClose, Tag: tag, Payload: models.WindowClose{Name: name}})
	return nil
}

func NewEventWindowHost(publisher events.Publisher) WindowHost {
	return &EventWindowHost{publisher: publisher}
}
