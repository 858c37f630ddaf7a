package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord addresses a cell: X is the column (a, b, ...), Y the row (1, 2, ...
// on the command line, zero based here).
type Coord struct {
	X int
	Y int
}

// Compare orders coordinates column first, then row.
func (c Coord) Compare(o Coord) int {
	switch {
	case c.X < o.X:
		return -1
	case c.X > o.X:
		return 1
	case c.Y < o.Y:
		return -1
	case c.Y > o.Y:
		return 1
	}
	return 0
}

func (c Coord) Less(o Coord) bool {
	return c.Compare(o) < 0
}

func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

func (c Coord) String() string {
	return fmt.Sprintf("%c%d", 'a'+c.X, c.Y+1)
}

// ParseCoord reads the command line form: a column letter and a 1-based row.
func ParseCoord(col, row string) (Coord, error) {
	col = strings.ToLower(strings.TrimSpace(col))
	if len(col) != 1 || col[0] < 'a' || col[0] > 'z' {
		return Coord{}, fmt.Errorf("%w: column %q", ErrInvalidCommand, col)
	}
	y, err := strconv.Atoi(strings.TrimSpace(row))
	if err != nil || y < 1 {
		return Coord{}, fmt.Errorf("%w: row %q", ErrInvalidCommand, row)
	}
	return Coord{X: int(col[0] - 'a'), Y: y - 1}, nil
}

// the eight neighbour vectors
var Directions = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}
