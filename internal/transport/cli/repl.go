package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iamasit07/othello/internal/domain"
	"github.com/iamasit07/othello/internal/service/game"
	"github.com/rs/zerolog/log"
)

// Engine is what the console drives; game.Controller implements it.
type Engine interface {
	NewGame(size int, opponent domain.PlayerKind, difficulty domain.Difficulty) (game.State, error)
	ApplyHumanMove(c domain.Coord) (game.State, error)
	FreezeRandomStones() (game.State, game.FreezeReport, error)
	Undo() (game.State, error)
	AdvanceTurn() (game.TurnResult, error)
	SaveGame(ctx context.Context, name string) error
	LoadGame(ctx context.Context, name string) (game.State, error)
}

// REPL reads commands line by line and prints the game after each one.
type REPL struct {
	engine      Engine
	in          *bufio.Scanner
	out         io.Writer
	defaultSize int
	Prompt      string

	// game id whose end was already announced; cleared when a command can
	// bring play back
	announced string
}

func NewREPL(engine Engine, in io.Reader, out io.Writer, defaultSize int) *REPL {
	if !domain.IsValidBoardSize(defaultSize) {
		defaultSize = 8
	}
	return &REPL{
		engine:      engine,
		in:          bufio.NewScanner(in),
		out:         out,
		defaultSize: defaultSize,
		Prompt:      "> ",
	}
}

// Run processes input until QUIT, end of input or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := r.advance(); err != nil {
			return err
		}

		io.WriteString(r.out, r.Prompt)
		if !r.in.Scan() {
			if err := r.in.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}

		cmd, err := Parse(line, r.defaultSize)
		if err != nil {
			r.printErr(err)
			continue
		}
		if cmd.Kind == CmdQuit {
			return nil
		}
		r.execute(ctx, cmd)
	}
}

// advance lets the computer play until a human has to move or the game ends.
func (r *REPL) advance() error {
	for {
		res, err := r.engine.AdvanceTurn()
		if errors.Is(err, domain.ErrGameNotStarted) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, tr := range res.Transitions {
			fmt.Fprintln(r.out, TransitionMessage(tr))
		}

		switch res.Kind {
		case game.TurnComputerMoved:
			RenderBoard(r.out, res.State.Size, res.State.Board)
			fmt.Fprintf(r.out, "[computer] played: %c %d\n", 'a'+res.Coord.X, res.Coord.Y+1)
			fmt.Fprintf(r.out, "Score: [player 1]: %d, %s: %d\n", res.State.Black, secondSeat(res.State), res.State.White)
			fmt.Fprintln(r.out, res.State.Turn)
			continue
		case game.TurnGameEnded:
			if r.announced != res.State.GameID {
				r.announced = res.State.GameID
				RenderBoard(r.out, res.State.Size, res.State.Board)
				fmt.Fprintf(r.out, "Score: [player 1]: %d, %s: %d\n", res.State.Black, secondSeat(res.State), res.State.White)
				fmt.Fprintln(r.out, res.Message)
			}
		}
		return nil
	}
}

func (r *REPL) execute(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CmdNew:
		s, err := r.engine.NewGame(cmd.Size, cmd.Opponent, cmd.Difficulty)
		r.resume(err)
		r.show(s, err)
	case CmdMove:
		s, err := r.engine.ApplyHumanMove(cmd.Coord)
		r.show(s, err)
	case CmdFreeze:
		s, report, err := r.engine.FreezeRandomStones()
		if err == nil {
			fmt.Fprintln(r.out, FreezeMessage(report))
		}
		r.show(s, err)
	case CmdUndo:
		s, err := r.engine.Undo()
		r.resume(err)
		r.show(s, err)
	case CmdSave:
		if err := r.engine.SaveGame(ctx, cmd.Name); err != nil {
			r.printErr(err)
			return
		}
		fmt.Fprintf(r.out, "Game saved as %s.\n", cmd.Name)
	case CmdLoad:
		s, err := r.engine.LoadGame(ctx, cmd.Name)
		if err == nil {
			fmt.Fprintf(r.out, "Game %s loaded.\n", cmd.Name)
		}
		r.resume(err)
		r.show(s, err)
	case CmdHelp:
		PrintHelp(r.out)
	}
}

// resume re-arms the game-over announcement after a successful NEW, LOAD
// or UNDO, any of which can turn an ended game back into a running one.
func (r *REPL) resume(err error) {
	if err == nil {
		r.announced = ""
	}
}

func (r *REPL) show(s game.State, err error) {
	if err != nil {
		r.printErr(err)
		return
	}
	RenderState(r.out, s)
}

func (r *REPL) printErr(err error) {
	log.Debug().Err(err).Str("component", "cli").Msg("command rejected")
	fmt.Fprintf(r.out, "Error: %v\n", err)
}
