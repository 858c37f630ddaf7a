package bot

import (
	"github.com/iamasit07/othello/internal/domain"
)

// CalculateBestMoveEasy plays the move that flips the fewest stones.
func CalculateBestMoveEasy(moves *domain.MoveSet) (domain.Move, bool) {
	return pick(moves, func(candidate, current int) bool {
		return candidate < current
	})
}
