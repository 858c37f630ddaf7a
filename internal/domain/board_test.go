package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("accepts the supported sizes", func(t *testing.T) {
		for _, size := range BoardSizes {
			b, err := NewBoard(size)
			require.NoError(t, err)
			require.Equal(t, size*size, b.Area())
			require.Equal(t, strings.Repeat("0", size*size), b.Glyphs())
		}
	})

	t.Run("rejects other sizes", func(t *testing.T) {
		for _, size := range []int{0, 4, 7, 9, 14} {
			_, err := NewBoard(size)
			require.ErrorIs(t, err, ErrInvalidBoardSize)
		}
	})
}

func TestInitCenter(t *testing.T) {
	b, err := NewStartingBoard(8)
	require.NoError(t, err)

	for c, want := range map[Coord]Color{
		{3, 3}: White, {4, 4}: White,
		{4, 3}: Black, {3, 4}: Black,
	} {
		got, ok := b.CellColor(c)
		require.True(t, ok, "center cell %s should be occupied", c)
		require.Equal(t, want, got, "cell %s", c)
	}

	black, white := b.Count()
	require.Equal(t, 2, black)
	require.Equal(t, 2, white)
}

func TestPlace(t *testing.T) {
	b, err := NewStartingBoard(6)
	require.NoError(t, err)

	require.NoError(t, b.Place(Coord{0, 0}, Black))
	color, ok := b.CellColor(Coord{0, 0})
	require.True(t, ok)
	require.Equal(t, Black, color)

	require.ErrorIs(t, b.Place(Coord{0, 0}, White), ErrCellOccupied)
	require.ErrorIs(t, b.Place(Coord{6, 0}, White), ErrOutOfBounds)
}

func TestFlip(t *testing.T) {
	t.Run("toggles live stones", func(t *testing.T) {
		b, _ := NewStartingBoard(8)
		b.Flip(Coord{3, 3})
		color, _ := b.CellColor(Coord{3, 3})
		require.Equal(t, Black, color)
		b.Flip(Coord{3, 3})
		color, _ = b.CellColor(Coord{3, 3})
		require.Equal(t, White, color)
	})

	t.Run("ignores frozen stones", func(t *testing.T) {
		b, _ := NewStartingBoard(8)
		b.Cell(Coord{3, 3}).Freeze()

		b.Flip(Coord{3, 3})
		color, ok := b.CellColor(Coord{3, 3})
		require.True(t, ok)
		require.Equal(t, FrozenWhite, color)
		require.Equal(t, White, b.Cell(Coord{3, 3}).BaseColor())
	})

	t.Run("ignores empty cells", func(t *testing.T) {
		b, _ := NewStartingBoard(8)
		b.Flip(Coord{0, 0})
		_, ok := b.CellColor(Coord{0, 0})
		require.False(t, ok)
	})
}

func TestSnapshotIsDeep(t *testing.T) {
	b, _ := NewStartingBoard(8)
	b.Cell(Coord{4, 4}).AttachTimer(FreezeTimer{InitDelay: 5, OriginalPersist: 7})

	snap := b.Snapshot()
	require.True(t, snap.Equal(b))

	require.NoError(t, b.Place(Coord{2, 3}, Black))
	b.Flip(Coord{3, 3})
	b.Cell(Coord{4, 4}).Thaw()
	require.False(t, snap.Equal(b))

	_, ok := snap.CellColor(Coord{2, 3})
	require.False(t, ok, "snapshot must not see later placements")
	timer, ok := snap.Cell(Coord{4, 4}).Timer()
	require.True(t, ok)
	require.Equal(t, 5, timer.InitDelay)

	b.Restore(snap)
	require.True(t, snap.Equal(b))
}

func TestEncodeAndParse(t *testing.T) {
	b, _ := NewStartingBoard(6)
	b.Cell(Coord{2, 2}).Freeze()

	require.Equal(t, "000000"+"000000"+"00EB00"+"00BW00"+"000000"+"000000", b.Glyphs())
	require.Equal(t, "000000"+"000000"+"00WB00"+"00BW00"+"000000"+"000000", b.Encode())

	parsed, err := ParseBoard(6, b.Glyphs())
	require.NoError(t, err)
	require.Equal(t, b.Encode(), parsed.Encode())
	require.False(t, parsed.Cell(Coord{2, 2}).IsFrozen(), "freeze state is not persisted")

	_, err = ParseBoard(6, "BW")
	require.ErrorIs(t, err, ErrInvalidBoard)
	_, err = ParseBoard(6, strings.Repeat("X", 36))
	require.ErrorIs(t, err, ErrInvalidBoard)
}

func TestAllBlackBoard(t *testing.T) {
	b, err := ParseBoard(6, strings.Repeat("B", 36))
	require.NoError(t, err)

	b.Each(func(c Coord, cell *Cell) {
		color, ok := cell.Color()
		require.True(t, ok)
		require.Equal(t, Black, color, "cell %s", c)
	})
	require.True(t, LegalMoves(b, White).IsEmpty())
}

func TestParseCoord(t *testing.T) {
	c, err := ParseCoord("c", "4")
	require.NoError(t, err)
	require.Equal(t, Coord{2, 3}, c)
	require.Equal(t, "c4", c.String())

	_, err = ParseCoord("4", "c")
	require.ErrorIs(t, err, ErrInvalidCommand)
	_, err = ParseCoord("a", "0")
	require.ErrorIs(t, err, ErrInvalidCommand)
}
