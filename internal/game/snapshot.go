package game

import (
	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/sprite"
)

// Snapshot captures the observable session state for determinism tests.
type Snapshot struct {
	Frame    uint64
	App      string
	Play     string
	Pause    string
	Ticks    uint64
	Score    int
	Heading  grid.Direction
	Body     []grid.Cell
	HasFood  bool
	Food     grid.Cell
	HeadTile sprite.Index
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	st := s.machine.State()
	snap := Snapshot{
		Frame: s.frames,
		App:   st.App.String(),
		Play:  st.Play.String(),
		Pause: st.Pause.String(),
	}
	if s.world == nil {
		return snap
	}

	body := s.world.Body()
	snap.Ticks = s.world.Ticks()
	snap.Score = s.world.Score()
	snap.Heading = body.Heading()
	snap.Body = body.Segments()
	if f, ok := s.world.Food(); ok {
		snap.HasFood = true
		snap.Food = f.Cell
	}
	if len(s.sprites.Segments) > 0 {
		snap.HeadTile = s.sprites.Segments[0].Index
	}
	return snap
}
