package generator

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/harrykeightley/wordcrossing-generator/internal/grid"
	"github.com/harrykeightley/wordcrossing-generator/internal/words"
)

// cornerGrid frees the top row and left column of a 3x3 grid.
func cornerGrid() *grid.Grid {
	g := grid.New(3, 3)
	g.SetWall(grid.Position{Row: 1, Col: 1})
	g.SetWall(grid.Position{Row: 1, Col: 2})
	g.SetWall(grid.Position{Row: 2, Col: 1})
	g.SetWall(grid.Position{Row: 2, Col: 2})
	return g
}

func TestWalkJunctions(t *testing.T) {
	g := cornerGrid()
	dist := grid.NewDistanceMap(g)
	turns := grid.NewTurnMap(g, dist)

	tests := []struct {
		name        string
		start, goal grid.Position
		want        []grid.Position
	}{
		{"straight", grid.Position{Row: 0, Col: 0}, grid.Position{Row: 0, Col: 2},
			[]grid.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}}},
		{"one corner", grid.Position{Row: 0, Col: 2}, grid.Position{Row: 2, Col: 0},
			[]grid.Position{{Row: 0, Col: 2}, {Row: 0, Col: 0}, {Row: 2, Col: 0}}},
		{"one corner reversed", grid.Position{Row: 2, Col: 0}, grid.Position{Row: 0, Col: 2},
			[]grid.Position{{Row: 2, Col: 0}, {Row: 0, Col: 0}, {Row: 0, Col: 2}}},
	}

	for _, tc := range tests {
		got := walkJunctions(turns, tc.start, tc.goal)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: walkJunctions = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// Words are always placed in reading order. A path running left then down
// must flip its first segment so the far junction carries the first letter.
func TestSolveOrientation(t *testing.T) {
	g := cornerGrid()
	dist := grid.NewDistanceMap(g)

	idx := words.FromWords([]string{"cat", "cub"})
	gen := &Generator{cfg: DefaultConfig(), index: idx, rng: rand.New(rand.NewSource(1))}

	junctions := []grid.Position{{Row: 0, Col: 2}, {Row: 0, Col: 0}, {Row: 2, Col: 0}}
	solution, err := gen.solve(junctions, dist)
	if err != nil {
		t.Fatalf("solve() failed: %v", err)
	}
	if len(solution) != 2 {
		t.Fatalf("solve() produced %d words, want 2", len(solution))
	}

	first, second := solution[0], solution[1]
	if first.Start != (grid.Position{Row: 0, Col: 0}) || first.Direction != grid.Right {
		t.Errorf("leftward segment placed at %v going %v, want (0,0) going right", first.Start, first.Direction)
	}
	if second.Start != (grid.Position{Row: 0, Col: 0}) || second.Direction != grid.Down {
		t.Errorf("downward segment placed at %v going %v, want (0,0) going down", second.Start, second.Direction)
	}
	if first.Word[0] != second.Word[0] {
		t.Errorf("junction letters differ: %q vs %q", first.Word, second.Word)
	}
}

func TestSolveNoFit(t *testing.T) {
	g := cornerGrid()
	dist := grid.NewDistanceMap(g)

	// Only 4-letter words available; segments need 3 letters.
	idx := words.FromWords([]string{"tops"})
	gen := &Generator{cfg: DefaultConfig(), index: idx, rng: rand.New(rand.NewSource(1))}

	junctions := []grid.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}}
	if _, err := gen.solve(junctions, dist); err == nil {
		t.Error("solve() succeeded without a fitting word")
	}
}

func TestSegmentDirection(t *testing.T) {
	a := grid.Position{Row: 2, Col: 2}
	tests := []struct {
		b    grid.Position
		want grid.Direction
	}{
		{grid.Position{Row: 0, Col: 2}, grid.Up},
		{grid.Position{Row: 4, Col: 2}, grid.Down},
		{grid.Position{Row: 2, Col: 0}, grid.Left},
		{grid.Position{Row: 2, Col: 5}, grid.Right},
	}
	for _, tc := range tests {
		if got := segmentDirection(a, tc.b); got != tc.want {
			t.Errorf("segmentDirection(%v, %v) = %v, want %v", a, tc.b, got, tc.want)
		}
	}
}
