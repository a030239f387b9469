package generator

import (
	"fmt"

	"github.com/harrykeightley/wordcrossing-generator/internal/grid"
	"github.com/harrykeightley/wordcrossing-generator/internal/level"
	"github.com/harrykeightley/wordcrossing-generator/internal/words"
)

// solve draws one word per junction segment, left to right along the path.
// Each word after the first is anchored to the letter the previous word
// left on the shared junction cell. The first failed draw abandons the
// attempt; rejected grids rarely solve on a retry, so throughput favors a
// fresh grid over backtracking.
func (g *Generator) solve(junctions []grid.Position, dist *grid.DistanceMap) ([]level.PlacedWord, error) {
	if len(junctions) < 2 {
		return nil, fmt.Errorf("path has no segments: %w", ErrNoWordForSegment)
	}

	solution := make([]level.PlacedWord, 0, len(junctions)-1)
	for k := 0; k+1 < len(junctions); k++ {
		from, to := junctions[k], junctions[k+1]
		edges, ok := dist.Distance(from, to)
		if !ok {
			return nil, fmt.Errorf("segment %v-%v not connected: %w", from, to, ErrNoWordForSegment)
		}

		constraint := words.Constraint{Length: edges + 1}
		segDir := segmentDirection(from, to)
		if k > 0 {
			anchor := words.Anchor{
				Position: words.First,
				Letter:   letterAt(solution[k-1], from),
			}
			// A word is written left-to-right or top-to-bottom
			// regardless of which way the path runs, so the shared
			// cell is this word's first letter only when the path
			// continues right or down.
			if segDir == grid.Left || segDir == grid.Up {
				anchor.Position = words.Last
			}
			constraint.Anchor = &anchor
		}

		word, ok := g.index.Draw(constraint, g.rng)
		if !ok {
			return nil, fmt.Errorf("segment %d %v-%v length %d: %w", k, from, to, edges+1, ErrNoWordForSegment)
		}
		solution = append(solution, place(word, from, to, segDir))
	}
	return solution, nil
}

// segmentDirection returns the step direction of the straight line from a
// to b.
func segmentDirection(a, b grid.Position) grid.Direction {
	switch {
	case b.Row > a.Row:
		return grid.Down
	case b.Row < a.Row:
		return grid.Up
	case b.Col > a.Col:
		return grid.Right
	default:
		return grid.Left
	}
}

// place orients a word along the segment. Segments running up or left are
// flipped so the placement always reads right or down, with the far
// junction holding the first letter.
func place(word string, from, to grid.Position, segDir grid.Direction) level.PlacedWord {
	if segDir == grid.Left || segDir == grid.Up {
		return level.PlacedWord{Word: word, Start: to, Direction: segDir.Opposite()}
	}
	return level.PlacedWord{Word: word, Start: from, Direction: segDir}
}

// letterAt returns the letter the placed word holds on the given cell,
// which must be one of its two endpoints.
func letterAt(w level.PlacedWord, p grid.Position) byte {
	if w.Start == p {
		return w.Word[0]
	}
	return w.Word[len(w.Word)-1]
}
