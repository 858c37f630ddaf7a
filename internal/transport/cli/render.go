package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/iamasit07/othello/internal/service/freeze"
	"github.com/iamasit07/othello/internal/service/game"
)

// RenderBoard draws the glyphs as a grid with column letters on top and row
// numbers on the left.
func RenderBoard(w io.Writer, size int, glyphs string) {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("-", size*2+5))
	sb.WriteString("\n    ")
	for x := 0; x < size; x++ {
		sb.WriteByte(byte('a' + x))
		sb.WriteByte(' ')
	}
	sb.WriteString("\n   ")
	sb.WriteString(strings.Repeat("-", size*2+1))
	sb.WriteByte('\n')

	for y := 0; y < size; y++ {
		fmt.Fprintf(&sb, "%-2d |", y+1)
		for x := 0; x < size; x++ {
			i := y*size + x
			if i < len(glyphs) {
				sb.WriteByte(glyphs[i])
			} else {
				sb.WriteByte('?')
			}
			if x < size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   ")
	sb.WriteString(strings.Repeat("-", size*2+1))
	sb.WriteByte('\n')
	io.WriteString(w, sb.String())
}

func secondSeat(s game.State) string {
	if s.Opponent == "C" {
		return "[computer]"
	}
	return "[player 2]"
}

// RenderState prints the board, the score line and whose turn it is.
func RenderState(w io.Writer, s game.State) {
	RenderBoard(w, s.Size, s.Board)
	fmt.Fprintf(w, "Score: [player 1]: %d, %s: %d\n", s.Black, secondSeat(s), s.White)
	for _, cd := range s.Countdowns {
		if cd.Frozen {
			fmt.Fprintf(w, "%s frozen, thaws in %d s\n", cd.Coord, cd.Left)
		} else {
			fmt.Fprintf(w, "%s freezes in %d s\n", cd.Coord, cd.Left)
		}
	}
	fmt.Fprintln(w, s.Turn)
}

// TransitionMessage reports a freeze or thaw applied by the clock.
func TransitionMessage(t game.Transition) string {
	if t.Kind == freeze.EventFreeze {
		return t.Coord.String() + " froze"
	}
	return t.Coord.String() + " thawed"
}

// FreezeMessage reports a FREEZE the way the console shows it.
func FreezeMessage(r game.FreezeReport) string {
	return fmt.Sprintf("%d stone(s) will freeze in %d s for %d s", len(r.Stones), r.InitDelay, r.Persist)
}

const helpText = `Reversi on a 6x6, 8x8, 10x10 or 12x12 board. Place a stone so that it
closes a line of your opponent's stones with one of your own; the closed
stones turn to your color. FREEZE makes a random number of your stones
immune to flipping for a while.

Commands (case-insensitive):
  NEW H|C SIZE [easy|hard]   start a game against a human or the computer
  MOVE COLUMN ROW            place a stone, e.g. MOVE c 4
  FREEZE                     freeze some of your stones, uses your turn
  UNDO                       take back the last two plies
  SAVE NAME                  save the game
  LOAD NAME                  load a saved game
  HELP                       show this text
  QUIT                       leave

Board: B black, W white, K frozen black, E frozen white, 0 empty.
`

func PrintHelp(w io.Writer) {
	io.WriteString(w, helpText)
}
