package session

import (
	"context"
	"sync"
	"time"
	"warboard/internal/events"
	"warboard/internal/models"
	"warboard/internal/poller"
	"warboard/internal/providers"
	"warboard/internal/services"
	"warboard/internal/views"
)

type ManagerInterface interface {
	Open(tag string) *Session
	Get(tag string) (*Session, bool)
	Close(tag string) bool
	CloseAll()
	Count() int
}

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ctx      context.Context
	cancel   context.CancelFunc

	pollers   poller.FactoryInterface
	store     services.SnapshotStoreInterface
	renderer  views.RendererInterface
	publisher events.Publisher
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

// Open returns the session for tag, creating it and starting its poller on
// first use. The first poll has completed when a new session is returned.
func (m *Manager) Open(tag string) *Session {
	m.mu.Lock()
	if s, ok := m.sessions[tag]; ok {
		m.mu.Unlock()
		return s
	}
	s := &Session{tag: tag}
	s.poller = m.pollers.New(tag, func(snapshot *models.WarSnapshot) {
		m.handleSnapshot(s, snapshot)
	}, nil)
	m.sessions[tag] = s
	m.metrics.SetActiveSessions(len(m.sessions))
	m.mu.Unlock()

	m.logger.Infof(providers.TypeApp, "Session opened for %s", tag)
	s.poller.Start(m.ctx)
	return s
}

func (m *Manager) Get(tag string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[tag]
	return s, ok
}

// Close stops the session's poller and forgets it.
func (m *Manager) Close(tag string) bool {
	m.mu.Lock()
	s, ok := m.sessions[tag]
	if ok {
		delete(m.sessions, tag)
		m.metrics.SetActiveSessions(len(m.sessions))
	}
	m.mu.Unlock()
	if !ok {
		return false
	}

	s.poller.Stop()
	m.store.Forget(tag)
	m.logger.Infof(providers.TypeApp, "Session closed for %s", tag)
	return true
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	tags := make([]string, 0, len(m.sessions))
	for tag := range m.sessions {
		tags = append(tags, tag)
	}
	m.mu.Unlock()

	for _, tag := range tags {
		m.Close(tag)
	}
	m.cancel()
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// handleSnapshot is the per-tick pipeline: aggregate, render, remember,
// then notify the page and the scoreboard. A tick that finishes after its
// session was closed is dropped.
func (m *Manager) handleSnapshot(s *Session, snapshot *models.WarSnapshot) {
	if !snapshot.State.Known() {
		m.logger.Warnf(providers.TypePoller, "Unknown war state %q for %s", snapshot.State, s.tag)
	}
	aggregate, _ := services.Normalize(snapshot)

	fragments, err := m.renderer.Render(s.tag, snapshot, aggregate)
	if err != nil {
		m.logger.Errorf(providers.TypePoller, "Render of %s failed: %s", s.tag, err)
		return
	}

	var data models.ScoreboardData
	hasScoreboard := !snapshot.State.Waiting()
	if hasScoreboard {
		if data, err = services.ParseWarData(snapshot); err != nil {
			m.logger.Errorf(providers.TypeBridge, "Scoreboard data for %s: %s", s.tag, err)
			hasScoreboard = false
		}
	}

	// Close removes the session under the same lock before forgetting its
	// cached snapshot.
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.tag] != s {
		m.logger.Debugf(providers.TypePoller, "Dropping late snapshot for closed session %s", s.tag)
		return
	}

	s.latest.Store(&View{
		Snapshot:  snapshot,
		Aggregate: aggregate,
		Fragments: fragments,
		UpdatedAt: time.Now(),
	})
	if err = m.store.Put(s.tag, snapshot); err != nil {
		m.logger.Warnf(providers.TypePoller, "Unable to cache snapshot for %s: %s", s.tag, err)
	}

	m.publisher.Publish(models.Event{Name: models.EventViewUpdate, Tag: s.tag, Payload: fragments})
	if hasScoreboard {
		m.publisher.Publish(models.Event{
			Name:    models.EventScoreboardUpdate,
			Tag:     s.tag,
			Payload: models.ScoreboardUpdate{RepData: data},
		})
	}
}

func NewManager(pollers poller.FactoryInterface, store services.SnapshotStoreInterface, renderer views.RendererInterface, publisher events.Publisher, logger providers.Logger, metrics providers.MetricsProviderInterface) ManagerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		sessions:  make(map[string]*Session),
		ctx:       ctx,
		cancel:    cancel,
		pollers:   pollers,
		store:     store,
		renderer:  renderer,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}
