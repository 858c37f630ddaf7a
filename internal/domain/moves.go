package domain

import (
	"golang.org/x/exp/slices"
)

// FlipSet is a sorted set of coordinates without duplicates.
type FlipSet []Coord

func (s FlipSet) Contains(c Coord) bool {
	_, found := slices.BinarySearchFunc(s, c, Coord.Compare)
	return found
}

// Union merges other into s, keeping the set sorted.
func (s FlipSet) Union(other []Coord) FlipSet {
	for _, c := range other {
		i, found := slices.BinarySearchFunc(s, c, Coord.Compare)
		if !found {
			s = slices.Insert(s, i, c)
		}
	}
	return s
}

// Move is a legal target together with the stones it flips.
type Move struct {
	Target Coord
	Flips  FlipSet
}

// MoveSet maps targets to flip-sets, ordered by target (column, then row).
type MoveSet struct {
	moves []Move
}

func (m *MoveSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.moves)
}

func (m *MoveSet) IsEmpty() bool {
	return m.Len() == 0
}

func (m *MoveSet) find(c Coord) (int, bool) {
	return slices.BinarySearchFunc(m.moves, c, func(mv Move, t Coord) int {
		return mv.Target.Compare(t)
	})
}

// Add unions flips into the entry for target, creating it when missing.
func (m *MoveSet) Add(target Coord, flips []Coord) {
	i, found := m.find(target)
	if found {
		m.moves[i].Flips = m.moves[i].Flips.Union(flips)
		return
	}
	m.moves = slices.Insert(m.moves, i, Move{Target: target, Flips: FlipSet(nil).Union(flips)})
}

// Get returns the flip-set for a target.
func (m *MoveSet) Get(target Coord) (FlipSet, bool) {
	if m == nil {
		return nil, false
	}
	i, found := m.find(target)
	if !found {
		return nil, false
	}
	return m.moves[i].Flips, true
}

func (m *MoveSet) Contains(target Coord) bool {
	_, ok := m.Get(target)
	return ok
}

// Moves returns the entries in coordinate order.
func (m *MoveSet) Moves() []Move {
	if m == nil {
		return nil
	}
	return slices.Clone(m.moves)
}

// Targets returns the legal target coordinates in order.
func (m *MoveSet) Targets() []Coord {
	if m == nil {
		return nil
	}
	out := make([]Coord, len(m.moves))
	for i, mv := range m.moves {
		out[i] = mv.Target
	}
	return out
}

// LegalMoves scans every empty cell and returns the moves available to mover.
// A walk starts on a neighbour of another color, keeps collecting opponent
// stones (frozen or not) and only counts when it ends on one of mover's own
// stones. Leaving the board or reaching an empty cell discards the walk.
func LegalMoves(b *Board, mover Color) *MoveSet {
	mover = mover.Base()
	moves := &MoveSet{}
	if mover == Empty {
		return moves
	}

	for x := 0; x < b.size; x++ {
		for y := 0; y < b.size; y++ {
			target := Coord{x, y}
			if !b.Cell(target).IsEmpty() {
				continue
			}
			for _, dir := range Directions {
				if flips := walk(b, target, dir[0], dir[1], mover); len(flips) > 0 {
					moves.Add(target, flips)
				}
			}
		}
	}
	return moves
}

// walk follows one direction from target and returns the bracketed stones,
// or nil when the direction does not close on a mover's stone.
func walk(b *Board, target Coord, dx, dy int, mover Color) []Coord {
	var run []Coord
	for c := target.Add(dx, dy); b.InBounds(c); c = c.Add(dx, dy) {
		cell := b.Cell(c)
		if cell.IsEmpty() {
			return nil
		}
		if cell.BaseColor() == mover {
			return run
		}
		run = append(run, c)
	}
	return nil
}
