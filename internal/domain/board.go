package domain

import (
	"fmt"
	"strings"
)

// Board is a square grid stored row-major. The size travels with the value.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) (*Board, error) {
	if !IsValidBoardSize(size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}
	b := &Board{size: size}
	b.allocate()
	return b, nil
}

// NewStartingBoard returns a board with the four center stones placed.
func NewStartingBoard(size int) (*Board, error) {
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	b.InitCenter()
	return b, nil
}

func (b *Board) allocate() {
	b.cells = make([]Cell, b.size*b.size)
	for i := range b.cells {
		b.cells[i] = newCell()
	}
}

// InitCenter puts white on the center diagonal and black on the anti-diagonal.
func (b *Board) InitCenter() {
	lo, hi := b.size/2-1, b.size/2
	b.set(Coord{lo, lo}, White)
	b.set(Coord{hi, hi}, White)
	b.set(Coord{hi, lo}, Black)
	b.set(Coord{lo, hi}, Black)
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Area() int {
	return b.size * b.size
}

func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.size && c.Y >= 0 && c.Y < b.size
}

func (b *Board) index(c Coord) int {
	return c.Y*b.size + c.X
}

// Cell gives direct access to a cell; nil when off the board.
func (b *Board) Cell(c Coord) *Cell {
	if !b.InBounds(c) {
		return nil
	}
	return &b.cells[b.index(c)]
}

// CellColor reports the shown color; false for empty or off-board cells.
func (b *Board) CellColor(c Coord) (Color, bool) {
	cell := b.Cell(c)
	if cell == nil {
		return Empty, false
	}
	return cell.Color()
}

func (b *Board) set(c Coord, color Color) {
	b.cells[b.index(c)].setColor(color)
}

// Place puts a new stone on an empty cell.
func (b *Board) Place(c Coord, color Color) error {
	cell := b.Cell(c)
	if cell == nil {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if !cell.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrCellOccupied, c)
	}
	cell.setColor(color)
	return nil
}

// Flip turns a live stone over. Frozen and empty cells are left alone.
func (b *Board) Flip(c Coord) {
	cell := b.Cell(c)
	if cell == nil || cell.IsEmpty() || cell.IsFrozen() {
		return
	}
	cell.setColor(cell.BaseColor().Opponent())
}

// Count returns the stones per side; frozen stones count for their base color.
func (b *Board) Count() (black, white int) {
	for i := range b.cells {
		switch b.cells[i].BaseColor() {
		case Black:
			black++
		case White:
			white++
		}
	}
	return black, white
}

// StonesOf lists the coordinates holding the given base color, in row-major order.
func (b *Board) StonesOf(color Color) []Coord {
	var out []Coord
	color = color.Base()
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.cells[y*b.size+x].BaseColor() == color {
				out = append(out, Coord{x, y})
			}
		}
	}
	return out
}

// Each visits every cell in row-major order.
func (b *Board) Each(fn func(Coord, *Cell)) {
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			fn(Coord{x, y}, &b.cells[y*b.size+x])
		}
	}
}

// Snapshot creates a deep copy of the board
func (b *Board) Snapshot() *Board {
	cp := &Board{size: b.size, cells: make([]Cell, len(b.cells))}
	for i := range b.cells {
		cp.cells[i] = b.cells[i].Clone()
	}
	return cp
}

// Restore overwrites the board with a deep copy of the snapshot.
func (b *Board) Restore(s *Board) {
	b.size = s.size
	b.cells = make([]Cell, len(s.cells))
	for i := range s.cells {
		b.cells[i] = s.cells[i].Clone()
	}
}

func (b *Board) Equal(o *Board) bool {
	if b.size != o.size || len(b.cells) != len(o.cells) {
		return false
	}
	for i := range b.cells {
		if !b.cells[i].Equal(&o.cells[i]) {
			return false
		}
	}
	return true
}

// Glyphs exports the board for display, keeping frozen stones distinct.
func (b *Board) Glyphs() string {
	var sb strings.Builder
	sb.Grow(len(b.cells))
	for i := range b.cells {
		color, _ := b.cells[i].Color()
		sb.WriteByte(color.Glyph())
	}
	return sb.String()
}

// Encode exports the board for saving. Freeze state is not persisted.
func (b *Board) Encode() string {
	var sb strings.Builder
	sb.Grow(len(b.cells))
	for i := range b.cells {
		sb.WriteByte(b.cells[i].BaseColor().SaveGlyph())
	}
	return sb.String()
}

// ParseBoard reads a row-major board string. Frozen glyphs load as live stones.
func ParseBoard(size int, s string) (*Board, error) {
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if len(s) != b.Area() {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, b.Area(), len(s))
	}
	for i := 0; i < len(s); i++ {
		color, ok := colorFromGlyph(s[i])
		if !ok {
			return nil, fmt.Errorf("%w: unknown glyph %q at %d", ErrInvalidBoard, s[i], i)
		}
		b.cells[i].setColor(color)
	}
	return b, nil
}
