package events

import (
	"sync"
	"warboard/internal/models"
	"warboard/internal/providers"
)

const subscriberBuffer = 32

// Publisher is the emit side of the event bus.
type Publisher interface {
	Publish(event models.Event)
}

type HubInterface interface {
	Publisher
	Subscribe() (<-chan models.Event, func())
	Subscribers() int
	Close()
}

// Hub fans events out to every subscriber. Delivery is best effort: a
// subscriber whose buffer is full misses the event.
type Hub struct {
	mu      sync.RWMutex
	subs    map[chan models.Event]struct{}
	closed  bool
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func (h *Hub) Publish(event models.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}

	h.metrics.IncEventsPublished(event.Name)
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.logger.Warnf(providers.TypeBridge, "Subscriber is lagging, dropped %s event", event.Name)
		}
	}
}

// Subscribe returns the event channel and a cancel func that must be called
// once the subscriber is done. The channel is closed on cancel or Close.
func (h *Hub) Subscribe() (<-chan models.Event, func()) {
	ch := make(chan models.Event, subscriberBuffer)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}
	h.metrics.SetSubscribers(len(h.subs))
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
				h.metrics.SetSubscribers(len(h.subs))
			}
		})
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		close(ch)
	}
	h.subs = make(map[chan models.Event]struct{})
	h.metrics.SetSubscribers(0)
}

func NewHub(logger providers.Logger, metrics providers.MetricsProviderInterface) HubInterface {
	return &Hub{
		subs:    make(map[chan models.Event]struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

// NewPublisher exposes the hub's emit side to components that only publish.
func NewPublisher(hub HubInterface) Publisher {
	return hub
}
