package bot

import (
	"github.com/iamasit07/othello/internal/domain"
)

// CalculateBestMove selects the computer's move based on difficulty.
// The second value is false when there is nothing to play.
func CalculateBestMove(moves *domain.MoveSet, difficulty domain.Difficulty) (domain.Move, bool) {
	switch difficulty {
	case domain.DifficultyEasy:
		return CalculateBestMoveEasy(moves)
	case domain.DifficultyHard:
		return CalculateBestMoveHard(moves)
	default:
		return CalculateBestMoveHard(moves)
	}
}

// pick walks the moves in coordinate order and keeps the first one that
// better() prefers over the current choice, so ties go to the lowest coordinate.
func pick(moves *domain.MoveSet, better func(candidate, current int) bool) (domain.Move, bool) {
	all := moves.Moves()
	if len(all) == 0 {
		return domain.Move{}, false
	}

	best := all[0]
	for _, mv := range all[1:] {
		if better(len(mv.Flips), len(best.Flips)) {
			best = mv
		}
	}
	return best, true
}
