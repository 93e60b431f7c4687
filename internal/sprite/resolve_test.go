package sprite

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/grid"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

func at(x, y int) grid.Cell { return grid.Cell{X: x, Y: y} }

func TestBodyIndexTruthTable(t *testing.T) {
	cur := at(3, 3)

	tests := []struct {
		name       string
		prev, next grid.Cell
		want       Index
	}{
		{"horizontal", at(2, 3), at(4, 3), BodyHorizontal},
		{"horizontal reversed", at(4, 3), at(2, 3), BodyHorizontal},
		{"vertical", at(3, 4), at(3, 2), BodyVertical},
		{"vertical reversed", at(3, 2), at(3, 4), BodyVertical},

		{"top right from left", at(2, 3), at(3, 2), CornerTopRight},
		{"top right from below", at(3, 2), at(2, 3), CornerTopRight},
		{"top left from right", at(4, 3), at(3, 2), CornerTopLeft},
		{"top left from below", at(3, 2), at(4, 3), CornerTopLeft},
		{"bottom right from left", at(2, 3), at(3, 4), CornerBottomRight},
		{"bottom right from above", at(3, 4), at(2, 3), CornerBottomRight},
		{"bottom left from right", at(4, 3), at(3, 4), CornerBottomLeft},
		{"bottom left from above", at(3, 4), at(4, 3), CornerBottomLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BodyIndex(tt.prev, cur, tt.next); got != tt.want {
				t.Errorf("BodyIndex(%v, %v, %v) = %d, want %d", tt.prev, cur, tt.next, got, tt.want)
			}
		})
	}
}

func TestBodyIndexAcrossEdges(t *testing.T) {
	tests := []struct {
		name            string
		prev, cur, next grid.Cell
		want            Index
	}{
		{"horizontal through left edge", at(7, 3), at(0, 3), at(1, 3), BodyHorizontal},
		{"vertical through top edge", at(2, 0), at(2, 15), at(2, 14), BodyVertical},
		{"corner with prev across left edge", at(7, 3), at(0, 3), at(0, 2), CornerTopRight},
		{"corner with next across bottom edge", at(4, 0), at(3, 0), at(3, 15), CornerTopLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BodyIndex(tt.prev, tt.cur, tt.next); got != tt.want {
				t.Errorf("BodyIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTailIndex(t *testing.T) {
	tests := []struct {
		name       string
		tail, prev grid.Cell
		want       Index
	}{
		{"right", at(3, 3), at(4, 3), TailRight},
		{"left", at(3, 3), at(2, 3), TailLeft},
		{"up", at(3, 3), at(3, 4), TailUp},
		{"down", at(3, 3), at(3, 2), TailDown},
		{"right across edge", at(7, 3), at(0, 3), TailRight},
		{"down across edge", at(3, 0), at(3, 15), TailDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TailIndex(tt.tail, tt.prev); got != tt.want {
				t.Errorf("TailIndex(%v, %v) = %d, want %d", tt.tail, tt.prev, got, tt.want)
			}
		})
	}
}

func TestMouthOffset(t *testing.T) {
	r := DefaultResolver()
	head := at(5, 5)

	tests := []struct {
		name string
		food *grid.Cell
		want int
	}{
		{"no food", nil, 0},
		{"adjacent", ptr(at(5, 6)), 4},
		{"two away", ptr(at(6, 6)), 3},
		{"three away", ptr(at(5, 8)), 2},
		{"four away", ptr(at(3, 3)), 1},
		{"five away", ptr(at(0, 5)), 0},
		{"on head", ptr(at(5, 5)), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.MouthOffset(head, tt.food); got != tt.want {
				t.Errorf("MouthOffset = %d, want %d", got, tt.want)
			}
		})
	}
}

func ptr(c grid.Cell) *grid.Cell { return &c }

func TestHeadIndex(t *testing.T) {
	tests := []struct {
		dir   grid.Direction
		mouth int
		want  Index
	}{
		{grid.Up, 0, 48},
		{grid.Down, 0, 80},
		{grid.Left, 0, 64},
		{grid.Right, 0, 96},
		{grid.Up, 4, 52},
		{grid.Right, 2, 98},
	}

	for _, tt := range tests {
		if got := HeadIndex(tt.dir, tt.mouth); got != tt.want {
			t.Errorf("HeadIndex(%v, %d) = %d, want %d", tt.dir, tt.mouth, got, tt.want)
		}
	}
}

func TestResolveInitialSnake(t *testing.T) {
	body := snake.NewBody(grid.Up, at(5, 5), at(5, 4))
	frame := DefaultResolver().Resolve(body, snake.Food{}, false)

	if len(frame.Segments) != 2 {
		t.Fatalf("got %d sprites, want 2", len(frame.Segments))
	}
	if frame.Segments[0].Index != HeadUp || frame.Segments[0].Role != RoleHead {
		t.Errorf("head sprite = %+v", frame.Segments[0])
	}
	if frame.Segments[1].Index != TailUp || frame.Segments[1].Role != RoleTail {
		t.Errorf("tail sprite = %+v", frame.Segments[1])
	}
	if frame.Food != nil {
		t.Error("food sprite without food")
	}
}

func TestResolveSingleSegment(t *testing.T) {
	body := snake.NewBody(grid.Left, at(2, 2))
	frame := DefaultResolver().Resolve(body, snake.Food{Cell: at(0, 2), Color: snake.FoodYellow}, true)

	if len(frame.Segments) != 1 {
		t.Fatalf("got %d sprites, want 1", len(frame.Segments))
	}
	if frame.Segments[0].Index != HeadLeft+3 {
		t.Errorf("head index = %d, want %d", frame.Segments[0].Index, HeadLeft+3)
	}
	if frame.Food == nil || frame.Food.Index != FoodYellow {
		t.Errorf("food sprite = %+v", frame.Food)
	}
}

func TestResolveCorner(t *testing.T) {
	// Head moved right after travelling up: (4,5) <- (3,5) <- (3,4)
	body := snake.NewBody(grid.Right, at(4, 5), at(3, 5), at(3, 4))
	frame := DefaultResolver().Resolve(body, snake.Food{}, false)

	want := []Index{HeadRight, CornerTopLeft, TailUp}
	for i, w := range want {
		if frame.Segments[i].Index != w {
			t.Errorf("segment %d index = %d, want %d", i, frame.Segments[i].Index, w)
		}
	}
}

func TestAtlasIndexRoundTrip(t *testing.T) {
	idx := AtlasIndex(21, 2)
	if idx != FoodYellow {
		t.Errorf("AtlasIndex(21, 2) = %d, want %d", idx, FoodYellow)
	}
	if idx.Row() != 21 || idx.Col() != 2 {
		t.Errorf("Row/Col = %d/%d", idx.Row(), idx.Col())
	}
	if got := ControllerIndex(3, FramePressed); got != 11 {
		t.Errorf("ControllerIndex(3, pressed) = %d, want 11", got)
	}
}
