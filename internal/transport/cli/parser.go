package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iamasit07/othello/internal/domain"
)

type CommandKind int

const (
	CmdNew CommandKind = iota
	CmdMove
	CmdSave
	CmdLoad
	CmdUndo
	CmdFreeze
	CmdHelp
	CmdQuit
)

// Command is one parsed input line.
type Command struct {
	Kind       CommandKind
	Opponent   domain.PlayerKind
	Size       int
	Difficulty domain.Difficulty
	Coord      domain.Coord
	Name       string
}

func badArgs(cmd string, args []string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrInvalidCommand, cmd, strings.Join(args, " "))
}

// Parse reads one command. Keywords are case-insensitive. A NEW with a
// board size outside the allowed set falls back to defaultSize.
func Parse(line string, defaultSize int) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", domain.ErrInvalidCommand)
	}
	cmd, args := strings.ToUpper(fields[0]), fields[1:]

	switch cmd {
	case "NEW":
		return parseNew(args, defaultSize)
	case "MOVE":
		if len(args) != 2 {
			return Command{}, badArgs(cmd, args)
		}
		c, err := domain.ParseCoord(args[0], args[1])
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdMove, Coord: c}, nil
	case "SAVE", "LOAD":
		if len(args) != 1 {
			return Command{}, badArgs(cmd, args)
		}
		kind := CmdSave
		if cmd == "LOAD" {
			kind = CmdLoad
		}
		return Command{Kind: kind, Name: args[0]}, nil
	case "UNDO", "FREEZE", "HELP", "QUIT", "EXIT":
		if len(args) != 0 {
			return Command{}, badArgs(cmd, args)
		}
		return Command{Kind: map[string]CommandKind{
			"UNDO":   CmdUndo,
			"FREEZE": CmdFreeze,
			"HELP":   CmdHelp,
			"QUIT":   CmdQuit,
			"EXIT":   CmdQuit,
		}[cmd]}, nil
	}
	return Command{}, fmt.Errorf("%w: unknown command %q", domain.ErrInvalidCommand, fields[0])
}

func parseNew(args []string, defaultSize int) (Command, error) {
	if len(args) < 2 || len(args) > 3 {
		return Command{}, badArgs("NEW", args)
	}
	opponent, err := domain.ParsePlayerKind(args[0])
	if err != nil {
		return Command{}, err
	}
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, badArgs("NEW", args)
	}
	if !domain.IsValidBoardSize(size) {
		size = defaultSize
	}

	c := Command{Kind: CmdNew, Opponent: opponent, Size: size}
	if len(args) == 3 {
		if opponent == domain.Human {
			return Command{}, badArgs("NEW", args)
		}
		c.Difficulty, err = domain.ParseDifficulty(args[2])
		if err != nil {
			return Command{}, err
		}
	}
	return c, nil
}
