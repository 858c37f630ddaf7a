package domain

import "fmt"

// Color is the content of a board cell. Frozen variants keep the identity of
// their live color so they still count for its owner.
type Color int

const (
	Empty Color = iota
	Black
	White
	FrozenBlack
	FrozenWhite
)

// Base maps a frozen variant back to its live color.
func (c Color) Base() Color {
	switch c {
	case FrozenBlack:
		return Black
	case FrozenWhite:
		return White
	}
	return c
}

// Frozen maps a live color to its frozen variant.
func (c Color) Frozen() Color {
	switch c {
	case Black:
		return FrozenBlack
	case White:
		return FrozenWhite
	}
	return c
}

func (c Color) IsFrozen() bool {
	return c == FrozenBlack || c == FrozenWhite
}

// Opponent returns the live color of the other side.
func (c Color) Opponent() Color {
	switch c.Base() {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// Glyph is the display alphabet, frozen variants stay distinct.
func (c Color) Glyph() byte {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	case FrozenBlack:
		return 'K'
	case FrozenWhite:
		return 'E'
	}
	return '0'
}

// SaveGlyph is the persisted alphabet, frozen variants collapse to their base.
func (c Color) SaveGlyph() byte {
	return c.Base().Glyph()
}

func (c Color) String() string {
	switch c {
	case Black:
		return "BLACK"
	case White:
		return "WHITE"
	case FrozenBlack:
		return "FROZEN_BLACK"
	case FrozenWhite:
		return "FROZEN_WHITE"
	}
	return "EMPTY"
}

// colorFromGlyph accepts both alphabets.
func colorFromGlyph(g byte) (Color, bool) {
	switch g {
	case 'B':
		return Black, true
	case 'W':
		return White, true
	case 'K':
		return FrozenBlack, true
	case 'E':
		return FrozenWhite, true
	case '0':
		return Empty, true
	}
	return Empty, false
}

type PlayerKind int

const (
	Human PlayerKind = iota
	Computer
)

// Key is the single character used by the save format and the NEW command.
func (k PlayerKind) Key() byte {
	if k == Computer {
		return 'C'
	}
	return 'H'
}

func ParsePlayerKind(s string) (PlayerKind, error) {
	switch s {
	case "C", "c":
		return Computer, nil
	case "H", "h":
		return Human, nil
	}
	return Human, fmt.Errorf("%w: player kind %q", ErrInvalidCommand, s)
}

type Difficulty string

const (
	DifficultyNone Difficulty = ""
	DifficultyEasy Difficulty = "easy"
	DifficultyHard Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy", "EASY", "Easy":
		return DifficultyEasy, nil
	case "hard", "HARD", "Hard":
		return DifficultyHard, nil
	}
	return DifficultyNone, fmt.Errorf("%w: difficulty %q", ErrInvalidCommand, s)
}

type Player struct {
	Color Color
	Kind  PlayerKind
	Score int
}

// NewPlayers returns the fixed seating: black human first, white second.
func NewPlayers(opponent PlayerKind) [2]Player {
	return [2]Player{
		{Color: Black, Kind: Human},
		{Color: White, Kind: opponent},
	}
}

const (
	PlayerOne = 0
	PlayerTwo = 1
)

var BoardSizes = []int{6, 8, 10, 12}

func IsValidBoardSize(size int) bool {
	for _, s := range BoardSizes {
		if s == size {
			return true
		}
	}
	return false
}

// to represent where a game is in its turn cycle
type GameStatus string

const (
	StatusAwaitingMove GameStatus = "awaiting_move"
	StatusMoveApplied  GameStatus = "move_applied"
	StatusTurnAdvanced GameStatus = "turn_advanced"
	StatusEnded        GameStatus = "ended"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrGameNotStarted    Error = "game is not started"
	ErrMoveNotAvailable  Error = "move is not available"
	ErrNoMoreMovesToUndo Error = "no more moves to undo"
	ErrCellOccupied      Error = "cell is not empty"
	ErrOutOfBounds       Error = "coordinates are outside the board"
	ErrInvalidBoardSize  Error = "board size must be one of 6, 8, 10, 12"
	ErrInvalidBoard      Error = "invalid board encoding"
	ErrNotHumanTurn      Error = "it is not a human player's turn"
	ErrSaveNotFound      Error = "saved game not found"
	ErrSaveFailed        Error = "saving the game failed"
	ErrLoadFailed        Error = "loading the game failed"
	ErrInvalidSave       Error = "invalid saved game"
	ErrInvalidCommand    Error = "invalid command"
)
