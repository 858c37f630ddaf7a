package domain

// FinalScore awards the unclaimed area to the leader so both scores add up to
// the board area. A tie splits the area evenly.
func FinalScore(black, white, area int) (int, int) {
	if black+white == area {
		return black, white
	}
	switch {
	case black > white:
		return area - white, white
	case white > black:
		return black, area - black
	}
	return area / 2, area / 2
}

// Winner returns the index of the player with the higher score, -1 on a draw.
func Winner(players [2]Player) int {
	switch {
	case players[PlayerOne].Score > players[PlayerTwo].Score:
		return PlayerOne
	case players[PlayerTwo].Score > players[PlayerOne].Score:
		return PlayerTwo
	}
	return -1
}

// PlayerLabel names a seat the way the console shows it.
func PlayerLabel(players [2]Player, index int) string {
	if index == PlayerOne {
		return "[player 1]"
	}
	if players[PlayerTwo].Kind == Computer {
		return "[computer]"
	}
	return "[player 2]"
}

// TurnLabel is shown after every operation, e.g. "[player 1] [BLACK]".
func TurnLabel(players [2]Player, active int) string {
	return PlayerLabel(players, active) + " [" + players[active].Color.String() + "]"
}

func GameEndedLabel(players [2]Player) string {
	w := Winner(players)
	if w < 0 {
		return "Game over. It is a draw."
	}
	return "Game over. " + PlayerLabel(players, w) + " won."
}
