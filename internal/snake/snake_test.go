package snake

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/grid"
)

var board = grid.Size{W: 8, H: 16}

func cells(pairs ...int) []grid.Cell {
	out := make([]grid.Cell, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, grid.Cell{X: pairs[i], Y: pairs[i+1]})
	}
	return out
}

func equalCells(a, b []grid.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// newTestWorld returns a world with the initial food request already drained.
func newTestWorld(layout Layout, seed int64) *World {
	w := NewWorld(board, layout, NewSpawner(board, rand.New(rand.NewSource(seed)), 0))
	w.Drain(SignalFoodRequested)
	return w
}

func TestAdvanceShiftsBody(t *testing.T) {
	b := NewBody(grid.Up, cells(5, 5, 5, 4, 5, 3)...)
	m := NewEngine(board).Advance(b, grid.Up)

	if m.Collided {
		t.Fatal("unexpected collision")
	}
	want := cells(5, 6, 5, 5, 5, 4)
	if !equalCells(b.Segments(), want) {
		t.Errorf("body = %v, want %v", b.Segments(), want)
	}
	if m.LastTail != (grid.Cell{X: 5, Y: 3}) {
		t.Errorf("LastTail = %v, want (5,3)", m.LastTail)
	}
	if b.Len() != 3 {
		t.Errorf("length changed to %d", b.Len())
	}
}

func TestAdvanceWrapsAtEdge(t *testing.T) {
	b := NewBody(grid.Right, cells(7, 2, 6, 2)...)
	NewEngine(board).Advance(b, grid.Right)

	if b.Head() != (grid.Cell{X: 0, Y: 2}) {
		t.Errorf("head = %v, want (0,2)", b.Head())
	}
}

func TestSelfCollisionLeavesBodyUntouched(t *testing.T) {
	tests := []struct {
		name    string
		heading grid.Direction
		body    []grid.Cell
		dir     grid.Direction
	}{
		{
			name:    "reverse into neck",
			heading: grid.Up,
			body:    cells(5, 5, 5, 4, 5, 3),
			dir:     grid.Down,
		},
		{
			name:    "into tail about to move",
			heading: grid.Left,
			body:    cells(1, 1, 2, 1, 2, 2, 1, 2),
			dir:     grid.Up,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(tt.heading, tt.body...)
			m := NewEngine(board).Advance(b, tt.dir)
			if !m.Collided {
				t.Fatal("expected collision")
			}
			if !equalCells(b.Segments(), tt.body) {
				t.Errorf("body changed on collision: %v", b.Segments())
			}
		})
	}
}

func TestWorldCollisionRaisesGameOver(t *testing.T) {
	w := newTestWorld(Layout{Heading: grid.Up, Segments: cells(5, 5, 5, 4, 5, 3)}, 1)
	w.Tick(grid.Down)

	if w.Drain(SignalGameOver) != 1 {
		t.Errorf("expected one game over signal, pending = %v", w.Pending())
	}
}

func TestLatchRejectsReversal(t *testing.T) {
	latch := NewInputLatch(grid.Up)
	if latch.Request(grid.Down, grid.Up) {
		t.Error("reversal accepted")
	}
	if latch.Direction() != grid.Up {
		t.Errorf("latch = %v, want up", latch.Direction())
	}
	if !latch.Request(grid.Left, grid.Up) {
		t.Error("perpendicular turn rejected")
	}
	if latch.Direction() != grid.Left {
		t.Errorf("latch = %v, want left", latch.Direction())
	}
}

func TestEatAndGrowAppendsAtPreviousTail(t *testing.T) {
	w := newTestWorld(DefaultLayout(), 1)
	w.food = &Food{Cell: grid.Cell{X: 5, Y: 6}, Color: FoodRed}

	w.Tick(grid.Up)
	if !w.Eat() {
		t.Fatal("food under head was not eaten")
	}
	if _, ok := w.Food(); ok {
		t.Error("food still live after eating")
	}
	if w.Score() != 1 {
		t.Errorf("score = %d, want 1", w.Score())
	}

	if n := w.Grow(); n != 1 {
		t.Fatalf("Grow() = %d, want 1", n)
	}
	want := cells(5, 6, 5, 5, 5, 4)
	if !equalCells(w.Body().Segments(), want) {
		t.Errorf("body = %v, want %v", w.Body().Segments(), want)
	}

	if got := w.Drain(SignalPlaySound); got != 1 {
		t.Errorf("play sound signals = %d, want 1", got)
	}
	if err := w.SpawnFood(); err != nil {
		t.Fatalf("SpawnFood() failed: %v", err)
	}
	f, ok := w.Food()
	if !ok {
		t.Fatal("no food after request")
	}
	if w.Body().Occupies(f.Cell) {
		t.Errorf("food spawned on body at %v", f.Cell)
	}
}

func TestEatOnlyWhenHeadOnFood(t *testing.T) {
	w := newTestWorld(DefaultLayout(), 1)
	w.food = &Food{Cell: grid.Cell{X: 0, Y: 0}}

	if w.Eat() {
		t.Error("ate food that is not under the head")
	}
	if w.Score() != 0 {
		t.Errorf("score = %d, want 0", w.Score())
	}
}

func TestNewWorldRequestsOneFood(t *testing.T) {
	w := NewWorld(board, DefaultLayout(), NewSpawner(board, rand.New(rand.NewSource(3)), 0))

	pending := w.Pending()
	if len(pending) != 1 || pending[0] != SignalFoodRequested {
		t.Fatalf("pending = %v, want [food_requested]", pending)
	}
	if err := w.SpawnFood(); err != nil {
		t.Fatalf("SpawnFood() failed: %v", err)
	}
	if _, ok := w.Food(); !ok {
		t.Error("no food placed")
	}
	if len(w.Pending()) != 0 {
		t.Errorf("pending not drained: %v", w.Pending())
	}
}

func TestSpawnNeverOnBody(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	size := grid.Size{W: 4, H: 4}
	body := NewBody(grid.Up, cells(0, 0, 0, 1, 0, 2, 0, 3, 1, 3, 2, 3)...)
	s := NewSpawner(size, rng, 0)

	for i := 0; i < 2000; i++ {
		f, err := s.Spawn(body)
		if err != nil {
			t.Fatalf("Spawn() failed: %v", err)
		}
		if body.Occupies(f.Cell) {
			t.Fatalf("food on body at %v", f.Cell)
		}
		if !size.Contains(f.Cell) {
			t.Fatalf("food off board at %v", f.Cell)
		}
	}
}

func TestSpawnIsUniformOverFreeCells(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	size := grid.Size{W: 4, H: 4}
	body := NewBody(grid.Up, cells(1, 1, 1, 0)...)
	s := NewSpawner(size, rng, 0)

	const draws = 14000
	counts := make(map[grid.Cell]int)
	for i := 0; i < draws; i++ {
		f, err := s.Spawn(body)
		if err != nil {
			t.Fatalf("Spawn() failed: %v", err)
		}
		counts[f.Cell]++
	}

	free := size.Area() - body.Len()
	if len(counts) != free {
		t.Fatalf("hit %d distinct cells, want %d", len(counts), free)
	}
	expected := draws / free
	for c, n := range counts {
		if n < expected*3/4 || n > expected*5/4 {
			t.Errorf("cell %v drawn %d times, expected about %d", c, n, expected)
		}
	}
}

func TestSpawnFallbackFindsLastCell(t *testing.T) {
	size := grid.Size{W: 3, H: 3}
	body := NewBody(grid.Up, cells(0, 0, 1, 0, 2, 0, 2, 1, 1, 1, 0, 1, 0, 2, 1, 2)...)
	s := NewSpawner(size, rand.New(rand.NewSource(5)), 1)

	for i := 0; i < 50; i++ {
		f, err := s.Spawn(body)
		if err != nil {
			t.Fatalf("Spawn() failed: %v", err)
		}
		if f.Cell != (grid.Cell{X: 2, Y: 2}) {
			t.Fatalf("food at %v, want (2,2)", f.Cell)
		}
	}
}

func TestSpawnOnFullBoard(t *testing.T) {
	size := grid.Size{W: 2, H: 1}
	body := NewBody(grid.Right, cells(1, 0, 0, 0)...)
	s := NewSpawner(size, rand.New(rand.NewSource(1)), 0)

	if _, err := s.Spawn(body); !errors.Is(err, ErrBoardFull) {
		t.Errorf("Spawn() error = %v, want ErrBoardFull", err)
	}
}

func TestWorldBoardFullSignalsOnce(t *testing.T) {
	size := grid.Size{W: 2, H: 1}
	w := NewWorld(size, Layout{Heading: grid.Right, Segments: cells(1, 0, 0, 0)},
		NewSpawner(size, rand.New(rand.NewSource(1)), 0))

	if err := w.SpawnFood(); !errors.Is(err, ErrBoardFull) {
		t.Fatalf("SpawnFood() error = %v, want ErrBoardFull", err)
	}
	if !w.BoardFull() {
		t.Error("BoardFull() = false")
	}
	w.emit(SignalFoodRequested)
	if err := w.SpawnFood(); err != nil {
		t.Errorf("second SpawnFood() error = %v, want nil", err)
	}
	if n := w.Drain(SignalBoardFull); n != 1 {
		t.Errorf("board full signals = %d, want 1", n)
	}
}

func TestGrowBeforeMovePanics(t *testing.T) {
	w := newTestWorld(DefaultLayout(), 1)
	w.emit(SignalGrowth)

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	w.Grow()
}

func TestNewBodyRejectsInvalidLayouts(t *testing.T) {
	tests := []struct {
		name  string
		cells []grid.Cell
	}{
		{"empty", nil},
		{"duplicate", cells(1, 1, 1, 2, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewBody(grid.Up, tt.cells...)
		})
	}
}

func TestBodyStaysDistinctOverLongRun(t *testing.T) {
	w := newTestWorld(DefaultLayout(), 11)
	dirs := []grid.Direction{grid.Up, grid.Right, grid.Up, grid.Left}

	for i := 0; i < 400; i++ {
		if err := w.SpawnFood(); err != nil {
			t.Fatalf("SpawnFood() failed: %v", err)
		}
		m := w.Tick(dirs[(i/5)%len(dirs)])
		if m.Collided {
			return
		}
		w.Eat()
		w.Grow()
		w.Drain(SignalPlaySound)

		seen := make(map[grid.Cell]bool)
		for _, c := range w.Body().Segments() {
			if seen[c] {
				t.Fatalf("tick %d: duplicate segment %v", i, c)
			}
			seen[c] = true
		}
	}
}

func TestTickTimerFiresOncePerFrame(t *testing.T) {
	timer := NewTickTimer(150 * time.Millisecond)

	steps := []struct {
		dt   time.Duration
		want bool
	}{
		{100 * time.Millisecond, false},
		{100 * time.Millisecond, true},
		{time.Second, true},
		{0, false},
		{149 * time.Millisecond, false},
		{time.Millisecond, true},
	}
	for i, s := range steps {
		if got := timer.Advance(s.dt); got != s.want {
			t.Errorf("step %d: Advance(%v) = %v, want %v", i, s.dt, got, s.want)
		}
	}
}

func TestTickTimerDefaultsPeriod(t *testing.T) {
	if p := NewTickTimer(0).Period(); p != DefaultTickPeriod {
		t.Errorf("Period() = %v, want %v", p, DefaultTickPeriod)
	}
}
