package session

import (
	"time"
	"warboard/internal/models"
	"warboard/internal/poller"
	"warboard/internal/views"

	"go.uber.org/atomic"
)

// View is everything derived from one found snapshot.
type View struct {
	Snapshot  *models.WarSnapshot
	Aggregate *models.AggregateResult
	Fragments views.Fragments
	UpdatedAt time.Time
}

// Session is the state of one clan window: created when the clan page is
// opened, discarded when it is left.
type Session struct {
	tag            string
	poller         poller.Interface
	latest         atomic.Pointer[View]
	scoreboardOpen atomic.Bool
}

func (s *Session) Tag() string {
	return s.tag
}

// Latest returns the view of the most recent found snapshot.
func (s *Session) Latest() (*View, bool) {
	v := s.latest.Load()
	return v, v != nil
}

func (s *Session) MarkScoreboardOpen() bool {
	return s.scoreboardOpen.CompareAndSwap(false, true)
}

func (s *Session) MarkScoreboardClosed() bool {
	return s.scoreboardOpen.CompareAndSwap(true, false)
}

func (s *Session) ScoreboardOpen() bool {
	return s.scoreboardOpen.Load()
}
