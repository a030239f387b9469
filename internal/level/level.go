// Package level defines the emitted puzzle level: the carved grid, the
// start and goal cells, the letter bag and the witness word chain.
package level

import (
	"fmt"
	"strings"

	"github.com/harrykeightley/wordcrossing-generator/internal/grid"
	"github.com/harrykeightley/wordcrossing-generator/internal/words"
)

// Cell is one square of the emitted grid.
type Cell int

const (
	CellEmpty Cell = iota
	CellWall
)

// PlacedWord is one solution word together with where it sits on the grid.
// Words are always written left-to-right or top-to-bottom, so Direction is
// Right or Down and Start is the cell of the first letter.
type PlacedWord struct {
	Word      string         `json:"word" yaml:"word"`
	Start     grid.Position  `json:"start" yaml:"start"`
	Direction grid.Direction `json:"direction" yaml:"direction"`
}

// Cells returns the grid cells covered by the word, first letter first.
func (w PlacedWord) Cells() []grid.Position {
	cells := make([]grid.Position, len(w.Word))
	p := w.Start
	for i := range w.Word {
		cells[i] = p
		p = p.Step(w.Direction)
	}
	return cells
}

// Level is a single generated puzzle. Levels are immutable once built.
type Level struct {
	Name     string         `json:"name" yaml:"name"`
	Rows     int            `json:"rows" yaml:"rows"`
	Cols     int            `json:"cols" yaml:"cols"`
	Cells    [][]Cell       `json:"cells" yaml:"cells"`
	Start    grid.Position  `json:"start" yaml:"start"`
	Goal     grid.Position  `json:"goal" yaml:"goal"`
	Letters  map[string]int `json:"letters" yaml:"letters"`
	Solution []PlacedWord   `json:"solution" yaml:"solution"`
}

// FromGrid snapshots a carved grid into the level's cell matrix.
func FromGrid(g *grid.Grid) [][]Cell {
	cells := make([][]Cell, g.Rows())
	for row := range cells {
		cells[row] = make([]Cell, g.Cols())
		for col := range cells[row] {
			if !g.IsFree(grid.Position{Row: row, Col: col}) {
				cells[row][col] = CellWall
			}
		}
	}
	return cells
}

func (l *Level) inBounds(p grid.Position) bool {
	return p.Row >= 0 && p.Row < l.Rows && p.Col >= 0 && p.Col < l.Cols
}

func (l *Level) isFree(p grid.Position) bool {
	return l.inBounds(p) && l.Cells[p.Row][p.Col] == CellEmpty
}

// Render draws the level as ASCII: walls as '#', start and goal as 'S' and
// 'G', solution letters in place.
func (l *Level) Render() string {
	rows := make([][]byte, l.Rows)
	for r := range rows {
		rows[r] = make([]byte, l.Cols)
		for c := range rows[r] {
			if l.Cells[r][c] == CellWall {
				rows[r][c] = '#'
			} else {
				rows[r][c] = '.'
			}
		}
	}
	for _, w := range l.Solution {
		for i, p := range w.Cells() {
			if l.inBounds(p) {
				rows[p.Row][p.Col] = w.Word[i]
			}
		}
	}
	if l.inBounds(l.Start) {
		rows[l.Start.Row][l.Start.Col] = 'S'
	}
	if l.inBounds(l.Goal) {
		rows[l.Goal.Row][l.Goal.Col] = 'G'
	}

	var b strings.Builder
	bar := strings.Repeat("=", l.Cols)
	b.WriteString(bar)
	b.WriteByte('\n')
	for _, row := range rows {
		b.Write(row)
		b.WriteByte('\n')
	}
	b.WriteString(bar)
	return b.String()
}

// SolutionWords returns the bare words of the solution in order.
func (l *Level) SolutionWords() []string {
	out := make([]string, len(l.Solution))
	for i, w := range l.Solution {
		out[i] = w.Word
	}
	return out
}

// AverageWordLength returns the mean letter count of the solution words.
func (l *Level) AverageWordLength() float64 {
	if len(l.Solution) == 0 {
		return 0
	}
	total := 0
	for _, w := range l.Solution {
		total += len(w.Word)
	}
	return float64(total) / float64(len(l.Solution))
}

// Verify checks the level's structural invariants: start and goal are free
// cells in a common room, every solution word is in the wordlist, placed
// words run right or down only, consecutive words overlap in exactly the
// shared junction cell with matching letters, the chain touches start and
// goal, the average word length meets the threshold, and the letter bag
// covers the solution's letters.
func (l *Level) Verify(idx *words.Index, minAvgWordLen float64) error {
	if !l.isFree(l.Start) {
		return fmt.Errorf("start %v is not a free cell", l.Start)
	}
	if !l.isFree(l.Goal) {
		return fmt.Errorf("goal %v is not a free cell", l.Goal)
	}
	if !l.connected(l.Start, l.Goal) {
		return fmt.Errorf("start %v and goal %v are in different rooms", l.Start, l.Goal)
	}
	if len(l.Solution) == 0 {
		return fmt.Errorf("empty solution")
	}

	for i, w := range l.Solution {
		if idx != nil && !idx.Contains(w.Word) {
			return fmt.Errorf("word %d %q not in wordlist", i, w.Word)
		}
		if w.Direction != grid.Right && w.Direction != grid.Down {
			return fmt.Errorf("word %d %q placed %v; words run right or down", i, w.Word, w.Direction)
		}
		for _, p := range w.Cells() {
			if !l.isFree(p) {
				return fmt.Errorf("word %d %q covers blocked cell %v", i, w.Word, p)
			}
		}
	}

	for i := 1; i < len(l.Solution); i++ {
		if err := l.checkJunction(l.Solution[i-1], l.Solution[i]); err != nil {
			return fmt.Errorf("words %d/%d: %w", i-1, i, err)
		}
	}

	if !isEndpoint(l.Solution[0], l.Start) {
		return fmt.Errorf("first word does not touch start %v", l.Start)
	}
	if !isEndpoint(l.Solution[len(l.Solution)-1], l.Goal) {
		return fmt.Errorf("last word does not touch goal %v", l.Goal)
	}

	if avg := l.AverageWordLength(); avg < minAvgWordLen {
		return fmt.Errorf("average word length %.2f below %.2f", avg, minAvgWordLen)
	}

	need := make(map[string]int)
	for _, w := range l.Solution {
		for i := 0; i < len(w.Word); i++ {
			need[string(w.Word[i])]++
		}
	}
	for letter, count := range need {
		if l.Letters[letter] < count {
			return fmt.Errorf("letter bag short on %q: have %d, need %d", letter, l.Letters[letter], count)
		}
	}
	return nil
}

// checkJunction verifies two consecutive words share exactly one cell and
// agree on its letter.
func (l *Level) checkJunction(prev, next PlacedWord) error {
	letters := make(map[grid.Position]byte)
	for i, p := range prev.Cells() {
		letters[p] = prev.Word[i]
	}
	shared := 0
	for i, p := range next.Cells() {
		letter, ok := letters[p]
		if !ok {
			continue
		}
		shared++
		if letter != next.Word[i] {
			return fmt.Errorf("junction %v: %q vs %q", p, letter, next.Word[i])
		}
	}
	if shared != 1 {
		return fmt.Errorf("%d shared cells, want 1", shared)
	}
	return nil
}

func isEndpoint(w PlacedWord, p grid.Position) bool {
	cells := w.Cells()
	return cells[0] == p || cells[len(cells)-1] == p
}

// connected reports whether b is reachable from a through empty cells.
func (l *Level) connected(a, b grid.Position) bool {
	if !l.isFree(a) || !l.isFree(b) {
		return false
	}
	seen := map[grid.Position]bool{a: true}
	queue := []grid.Position{a}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == b {
			return true
		}
		for _, d := range grid.AllDirections() {
			n := p.Step(d)
			if l.isFree(n) && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// TotalLetters returns the sum of counts in the letter bag.
func (l *Level) TotalLetters() int {
	total := 0
	for _, count := range l.Letters {
		total += count
	}
	return total
}
