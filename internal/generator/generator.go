// Package generator produces solvable word-crossing levels by rejection
// sampling: carve a grid, pick distant start and goal cells, route a
// minimum-turn path between them and fill its straight segments with
// chained words from the wordlist. Any failure discards the whole attempt
// and starts over.
package generator

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/harrykeightley/wordcrossing-generator/internal/grid"
	"github.com/harrykeightley/wordcrossing-generator/internal/level"
	"github.com/harrykeightley/wordcrossing-generator/internal/logger"
	"github.com/harrykeightley/wordcrossing-generator/internal/words"
)

// Counters tracks generation outcomes for observability.
type Counters struct {
	Attempts        int
	DegenerateGrids int
	Unsolvable      int
	LowQuality      int
	Accepted        int
}

// Generator produces levels from a wordlist under a seeded rng. It is not
// safe for concurrent use; run one Generator per worker.
type Generator struct {
	cfg      Config
	index    *words.Index
	rng      *rand.Rand
	counters Counters
}

// New validates the config and creates a generator seeded from cfg.Seed.
func New(cfg Config, index *words.Index) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:   cfg,
		index: index,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Counters returns a snapshot of the outcome tallies.
func (g *Generator) Counters() Counters {
	return g.counters
}

// Generate runs attempts until one produces an acceptable level. With
// MaxAttempts of 0 it loops until success; callers running adversarial
// configurations should set a cap.
func (g *Generator) Generate() (*level.Level, error) {
	for attempt := 0; g.cfg.MaxAttempts == 0 || attempt < g.cfg.MaxAttempts; attempt++ {
		g.counters.Attempts++
		lvl, err := g.attempt()
		if err == nil {
			g.counters.Accepted++
			return lvl, nil
		}
		switch {
		case errors.Is(err, ErrDegenerateGrid):
			g.counters.DegenerateGrids++
		case errors.Is(err, ErrNoWordForSegment):
			g.counters.Unsolvable++
		case errors.Is(err, ErrLowQuality):
			g.counters.LowQuality++
		default:
			return nil, err
		}
		logger.Debug("level attempt rejected", "attempt", g.counters.Attempts, "reason", err)
	}
	return nil, ErrAttemptsExhausted
}

// GenerateBatch produces count levels.
func (g *Generator) GenerateBatch(count int) ([]*level.Level, error) {
	levels := make([]*level.Level, 0, count)
	for len(levels) < count {
		lvl, err := g.Generate()
		if err != nil {
			return levels, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// attempt builds a single candidate level or reports why it was rejected.
func (g *Generator) attempt() (*level.Level, error) {
	gr := grid.New(g.cfg.Rows, g.cfg.Cols)
	if gr.Carve(g.rng, g.cfg.WallRatioMin, g.cfg.WallRatioMax) < 2 {
		return nil, ErrDegenerateGrid
	}

	dist := grid.NewDistanceMap(gr)
	turns := grid.NewTurnMap(gr, dist)

	start, goal := g.chooseEndpoints(gr, dist, turns)
	junctions := walkJunctions(turns, start, goal)

	solution, err := g.solve(junctions, dist)
	if err != nil {
		return nil, err
	}

	lvl := &level.Level{
		Rows:     g.cfg.Rows,
		Cols:     g.cfg.Cols,
		Cells:    level.FromGrid(gr),
		Start:    start,
		Goal:     goal,
		Solution: solution,
	}
	if lvl.AverageWordLength() < g.cfg.MinAvgWordLen {
		return nil, ErrLowQuality
	}

	lvl.Letters = g.letterBag(solution)
	return lvl, nil
}

// chooseEndpoints samples a start cell uniformly and a goal from the
// cells scoring highest on distance plus turns from the start.
func (g *Generator) chooseEndpoints(gr *grid.Grid, dist *grid.DistanceMap, turns *grid.TurnMap) (grid.Position, grid.Position) {
	free := gr.FreeCells()
	start := free[g.rng.Intn(len(free))]

	type scored struct {
		pos   grid.Position
		score int
	}
	candidates := make([]scored, 0, len(free)-1)
	for _, p := range free {
		if p == start {
			continue
		}
		d, ok := dist.Distance(start, p)
		if !ok {
			continue
		}
		t, _ := turns.Turns(start, p)
		candidates = append(candidates, scored{pos: p, score: d + t})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].pos.Less(candidates[j].pos)
	})

	top := int(math.Ceil(g.cfg.GoalTopFraction * float64(len(candidates))))
	if top < 1 {
		top = 1
	}
	goal := candidates[g.rng.Intn(top)].pos
	return start, goal
}

// walkJunctions follows the turn map from start to goal and records the
// positions where the path starts, changes direction, or ends. The path
// between consecutive junctions is a straight line.
func walkJunctions(turns *grid.TurnMap, start, goal grid.Position) []grid.Position {
	junctions := []grid.Position{start}
	pos := start
	var prevDir grid.Direction
	for pos != goal {
		dir, ok := turns.FirstDirection(pos, goal)
		if !ok {
			break
		}
		if pos != start && dir != prevDir {
			junctions = append(junctions, pos)
		}
		prevDir = dir
		pos = pos.Step(dir)
	}
	return append(junctions, goal)
}

// letterBag collects the solution's letters and mixes in extra letters
// sampled from the wordlist's letter frequencies, giving the player
// material for routes besides the witness chain.
func (g *Generator) letterBag(solution []level.PlacedWord) map[string]int {
	bag := make(map[string]int)
	total := 0
	for _, w := range solution {
		for i := 0; i < len(w.Word); i++ {
			bag[string(w.Word[i])]++
			total++
		}
	}

	extras := int(math.Ceil(g.cfg.ExtraLetterRatio * float64(total)))
	freq := g.index.Frequencies()
	weight := 0
	for _, count := range freq {
		weight += count
	}
	if weight == 0 {
		return bag
	}
	for i := 0; i < extras; i++ {
		roll := g.rng.Intn(weight)
		for letter := 0; letter < len(freq); letter++ {
			if roll < freq[letter] {
				bag[string(rune('a'+letter))]++
				break
			}
			roll -= freq[letter]
		}
	}
	return bag
}
