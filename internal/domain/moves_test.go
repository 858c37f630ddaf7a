package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boardFrom builds a board from rows of glyphs, row 0 first.
func boardFrom(t *testing.T, rows ...string) *Board {
	t.Helper()
	s := ""
	for _, r := range rows {
		s += r
	}
	b, err := ParseBoard(len(rows), s)
	require.NoError(t, err)
	return b
}

func TestLegalMovesOpening(t *testing.T) {
	b, err := NewStartingBoard(8)
	require.NoError(t, err)

	moves := LegalMoves(b, Black)
	require.Equal(t, []Coord{{2, 3}, {3, 2}, {4, 5}, {5, 4}}, moves.Targets())
	for _, mv := range moves.Moves() {
		require.Len(t, mv.Flips, 1, "opening move %s", mv.Target)
	}

	flips, ok := moves.Get(Coord{2, 3})
	require.True(t, ok)
	require.Equal(t, FlipSet{{3, 3}}, flips)

	white := LegalMoves(b, White)
	require.Equal(t, []Coord{{2, 4}, {3, 5}, {4, 2}, {5, 3}}, white.Targets())
}

func TestLegalMovesNeverTargetsOccupiedCells(t *testing.T) {
	for _, size := range BoardSizes {
		b, err := NewStartingBoard(size)
		require.NoError(t, err)

		color := Black
		for turn := 0; turn < 20; turn++ {
			moves := LegalMoves(b, color)
			for _, target := range moves.Targets() {
				require.True(t, b.Cell(target).IsEmpty(), "target %s on size %d", target, size)
			}
			if moves.IsEmpty() {
				break
			}
			mv := moves.Moves()[0]
			require.NoError(t, b.Place(mv.Target, color))
			for _, c := range mv.Flips {
				b.Flip(c)
			}
			color = color.Opponent()
		}
	}
}

func TestLegalMovesMergesDirections(t *testing.T) {
	b := boardFrom(t,
		"00B000",
		"00W000",
		"BW0WB0",
		"00W000",
		"00B000",
		"000000",
	)
	moves := LegalMoves(b, Black)
	flips, ok := moves.Get(Coord{2, 2})
	require.True(t, ok)
	require.Equal(t, FlipSet{{1, 2}, {2, 1}, {2, 3}, {3, 2}}, flips)
}

func TestLegalMovesDiscardsOpenRuns(t *testing.T) {
	b := boardFrom(t,
		"WWW000",
		"000000",
		"000000",
		"000000",
		"000000",
		"00000B",
	)
	// the run along row 0 reaches the edge, the diagonal reaches empty cells
	require.True(t, LegalMoves(b, Black).IsEmpty())
}

func TestLegalMovesWithFrozenStones(t *testing.T) {
	t.Run("frozen opponent stones are bracketed but do not close a run", func(t *testing.T) {
		b := boardFrom(t,
			"000000",
			"0WWB00",
			"000000",
			"000000",
			"000000",
			"000000",
		)
		b.Cell(Coord{2, 1}).Freeze()

		moves := LegalMoves(b, Black)
		flips, ok := moves.Get(Coord{0, 1})
		require.True(t, ok)
		require.Equal(t, FlipSet{{1, 1}, {2, 1}}, flips)

		for _, c := range flips {
			b.Flip(c)
		}
		color, _ := b.CellColor(Coord{2, 1})
		require.Equal(t, FrozenWhite, color, "frozen stone must survive the flip")
		color, _ = b.CellColor(Coord{1, 1})
		require.Equal(t, Black, color)
	})

	t.Run("a frozen stone of the mover closes a run", func(t *testing.T) {
		b := boardFrom(t,
			"000000",
			"0WB000",
			"000000",
			"000000",
			"000000",
			"000000",
		)
		b.Cell(Coord{2, 1}).Freeze()

		flips, ok := LegalMoves(b, Black).Get(Coord{0, 1})
		require.True(t, ok)
		require.Equal(t, FlipSet{{1, 1}}, flips)
	})
}

func TestMoveSetOrdering(t *testing.T) {
	var m MoveSet
	m.Add(Coord{3, 1}, []Coord{{3, 2}})
	m.Add(Coord{0, 5}, []Coord{{0, 4}})
	m.Add(Coord{3, 0}, []Coord{{3, 1}})
	m.Add(Coord{3, 1}, []Coord{{3, 2}, {4, 1}})

	require.Equal(t, []Coord{{0, 5}, {3, 0}, {3, 1}}, m.Targets())
	flips, _ := m.Get(Coord{3, 1})
	require.Equal(t, FlipSet{{3, 2}, {4, 1}}, flips)
	require.False(t, m.Contains(Coord{1, 1}))
}
