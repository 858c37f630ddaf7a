package bot

import (
	"github.com/iamasit07/othello/internal/domain"
)

// CalculateBestMoveHard plays the move that flips the most stones.
// Single ply only, no lookahead.
func CalculateBestMoveHard(moves *domain.MoveSet) (domain.Move, bool) {
	return pick(moves, func(candidate, current int) bool {
		return candidate > current
	})
}
