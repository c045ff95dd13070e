package player

import (
	"math/rand"

	"github.com/felixgeelhaar/lectern/internal/lesson"
)

// MaxPairs caps a matching exercise at 4 pairs (8 tiles) so every tile can
// be bound to a fixed key-shortcut alphabet.
const MaxPairs = 4

// Side marks which column of the pair a tile came from.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Tile is one selectable item on the matching board.
type Tile struct {
	Text    string
	Side    Side
	Pair    int // index into the (truncated) pair list
	Matched bool
}

// SelectResult describes the outcome of selecting a tile.
type SelectResult int

const (
	// SelectIgnored means the selection had no effect (matched tile,
	// out of range, or finished board).
	SelectIgnored SelectResult = iota

	// SelectFirst means the tile is now the pending first selection.
	SelectFirst

	// SelectMatched means the two selected tiles paired up.
	SelectMatched

	// SelectMismatch means the tiles did not pair; the selection resets
	// and the front end flashes the mismatch transiently.
	SelectMismatch
)

// Matching is the pair-matching board. Tiles are shuffled at construction;
// selecting two opposite-side tiles with the same pair index locks them.
type Matching struct {
	completion
	step     *lesson.Matching
	tiles    []Tile
	selected int // pending first selection, -1 when none
	matched  int
}

// NewMatching creates the matching player. Pair lists longer than MaxPairs
// are truncated before shuffling.
func NewMatching(step *lesson.Matching, onComplete func(), rng *rand.Rand) *Matching {
	pairs := step.Pairs
	if len(pairs) > MaxPairs {
		pairs = pairs[:MaxPairs]
	}

	tiles := make([]Tile, 0, len(pairs)*2)
	for i, pair := range pairs {
		tiles = append(tiles,
			Tile{Text: pair.Left, Side: SideLeft, Pair: i},
			Tile{Text: pair.Right, Side: SideRight, Pair: i},
		)
	}
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	return &Matching{
		completion: completion{fn: onComplete},
		step:       step,
		tiles:      tiles,
		selected:   -1,
	}
}

// Step returns the underlying step.
func (p *Matching) Step() *lesson.Matching { return p.step }

// Tiles returns the shuffled board.
func (p *Matching) Tiles() []Tile { return p.tiles }

// Selected returns the index of the pending first selection, or -1.
func (p *Matching) Selected() int { return p.selected }

// Select picks the tile at index i. An empty board completes immediately.
func (p *Matching) Select(i int) SelectResult {
	if p.Completed() {
		return SelectIgnored
	}
	if len(p.tiles) == 0 {
		p.fire()
		return SelectIgnored
	}
	if i < 0 || i >= len(p.tiles) || p.tiles[i].Matched {
		return SelectIgnored
	}

	if p.selected < 0 {
		p.selected = i
		return SelectFirst
	}

	first, second := p.selected, i
	p.selected = -1

	if first == second || p.tiles[first].Side == p.tiles[second].Side ||
		p.tiles[first].Pair != p.tiles[second].Pair {
		return SelectMismatch
	}

	p.tiles[first].Matched = true
	p.tiles[second].Matched = true
	p.matched += 2
	if p.matched == len(p.tiles) {
		p.fire()
	}
	return SelectMatched
}
