package controllers

import (
	"testing"
	"time"
	"warboard/internal/events"
	"warboard/internal/models"
	"warboard/internal/poller"
	"warboard/internal/scoreboard"
	"warboard/internal/services"
	"warboard/internal/session"
	"warboard/internal/structures"
	"warboard/internal/testutil"
	"warboard/internal/views"

	"github.com/stretchr/testify/require"
)

type harness struct {
	conf      *structures.Config
	logger    *testutil.MockLogger
	metrics   *testutil.MockMetrics
	fetcher   *testutil.MockFetcher
	publisher *testutil.MockPublisher
	renderer  views.RendererInterface
	sessions  session.ManagerInterface
	bridge    scoreboard.BridgeInterface
	hub       events.HubInterface
}

func newHarness(t *testing.T, results ...models.FetchResult) *harness {
	t.Helper()
	h := &harness{
		conf: &structures.Config{
			Poller: structures.PollerConfig{Interval: time.Hour},
			Scoreboard: structures.ScoreboardConfig{
				Page:   "scoreboard.html",
				Name:   "scoreboard",
				Width:  320,
				Height: 391,
			},
			MainWindow: structures.WindowConfig{Width: 550, Height: 370},
		},
		logger:    &testutil.MockLogger{},
		metrics:   &testutil.MockMetrics{},
		fetcher:   &testutil.MockFetcher{Results: results},
		publisher: &testutil.MockPublisher{},
	}

	var err error
	h.renderer, err = views.NewRenderer()
	require.NoError(t, err)

	store := services.NewSnapshotStore(testutil.NewMockCache(), &testutil.MockCompressor{}, h.logger)
	pollers := poller.NewFactory(h.conf, h.fetcher, h.logger, h.metrics)
	h.sessions = session.NewManager(pollers, store, h.renderer, h.publisher, h.logger, h.metrics)
	h.bridge = scoreboard.NewBridge(h.conf, h.fetcher, store, scoreboard.NewEventWindowHost(h.publisher), h.publisher, h.logger)
	h.hub = events.NewHub(h.logger, h.metrics)

	t.Cleanup(func() {
		h.sessions.CloseAll()
		h.hub.Close()
	})
	return h
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func inWarSnapshot() *models.WarSnapshot {
	return &models.WarSnapshot{
		State:            models.StateInWar,
		TeamSize:         intPtr(1),
		AttacksPerMember: intPtr(2),
		Clan: models.Clan{
			Tag:                   "#2PP",
			Name:                  "Alpha <b>",
			Stars:                 intPtr(2),
			Attacks:               intPtr(1),
			DestructionPercentage: floatPtr(50),
			Members:               []models.Member{{Name: "a", Attacks: []models.Attack{{Stars: 2, DestructionPercentage: 50, Duration: 120}}}},
		},
		Opponent: models.Clan{
			Tag:     "#OPP",
			Name:    "Beta",
			Members: []models.Member{{Name: "b", Attacks: []models.Attack{{Stars: 1, DestructionPercentage: 30, Duration: 200}}}},
		},
	}
}
