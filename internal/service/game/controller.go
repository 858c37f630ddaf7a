package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/othello/internal/domain"
	"github.com/iamasit07/othello/internal/service/bot"
	"github.com/iamasit07/othello/internal/service/freeze"
	"github.com/iamasit07/othello/pkg/uid"
	"github.com/rs/zerolog/log"
)

// SaveStore keeps saved games by name.
type SaveStore interface {
	Save(ctx context.Context, name string, rec domain.SaveRecord) error
	Load(ctx context.Context, name string) (domain.SaveRecord, error)
}

// Observer is notified after every change of the game, clock ticks included.
type Observer interface {
	OnStateChange(State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(State)

func (f ObserverFunc) OnStateChange(s State) {
	f(s)
}

// State is a read-only view of the game after an operation.
type State struct {
	GameID     string            `json:"gameId"`
	Size       int               `json:"size"`
	Board      string            `json:"board"`
	Black      int               `json:"black"`
	White      int               `json:"white"`
	Active     int               `json:"active"`
	Turn       string            `json:"turn"`
	Status     domain.GameStatus `json:"status"`
	Opponent   string            `json:"opponent"`
	Difficulty domain.Difficulty `json:"difficulty,omitempty"`
	Frozen     []domain.Coord    `json:"frozen,omitempty"`
	Countdowns []Countdown       `json:"countdowns,omitempty"`
	Tick       uint64            `json:"tick"`
}

type TurnKind int

const (
	// a human has to play next
	TurnAwaiting TurnKind = iota
	TurnComputerMoved
	TurnGameEnded
)

// TurnResult is what AdvanceTurn did.
type TurnResult struct {
	Kind  TurnKind
	Coord domain.Coord
	// Message is the end-of-game label when Kind is TurnGameEnded.
	Message string
	// Transitions are the freezes and thaws the clock applied since the
	// previous AdvanceTurn.
	Transitions []Transition
	State       State
}

// Controller is the external interface of the engine. It owns at most one
// game and serializes every operation on it, clock ticks included.
type Controller struct {
	mu        sync.Mutex
	game      *GameState
	gameID    string
	store     SaveStore
	opts      []Option
	observers []Observer
	worker    *freeze.Worker
}

// NewController creates a controller whose freeze clock ticks every
// interval once Start is called. opts apply to every game it creates.
func NewController(store SaveStore, interval time.Duration, opts ...Option) *Controller {
	c := &Controller{store: store, opts: opts}
	c.worker = freeze.NewWorker(interval, c.Tick)
	return c
}

// Subscribe registers o for state updates.
func (c *Controller) Subscribe(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

func (c *Controller) notify(observers []Observer, s State) {
	for _, o := range observers {
		o.OnStateChange(s)
	}
}

// commit snapshots the view and the observer list under the lock.
func (c *Controller) commit() (State, []Observer) {
	return c.view(), append([]Observer(nil), c.observers...)
}

func (c *Controller) view() State {
	g := c.game
	players := g.Players()
	s := State{
		GameID:     c.gameID,
		Size:       g.Board().Size(),
		Board:      g.Board().Glyphs(),
		Active:     g.Active(),
		Turn:       domain.TurnLabel(players, g.Active()),
		Status:     g.Status(),
		Opponent:   string(players[domain.PlayerTwo].Kind.Key()),
		Difficulty: g.Difficulty(),
		Frozen:     g.FrozenStones(),
		Countdowns: g.Countdowns(),
		Tick:       g.Now(),
	}
	for _, p := range players {
		if p.Color == domain.Black {
			s.Black = p.Score
		} else {
			s.White = p.Score
		}
	}
	return s
}

// NewGame replaces the current game with a fresh one.
func (c *Controller) NewGame(size int, opponent domain.PlayerKind, difficulty domain.Difficulty) (State, error) {
	g, err := NewGameState(size, opponent, difficulty, c.opts...)
	if err != nil {
		return State{}, err
	}

	c.mu.Lock()
	c.game = g
	c.gameID = uid.NewGameID()
	s, obs := c.commit()
	c.mu.Unlock()

	log.Info().
		Str("component", "game").
		Str("game", s.GameID).
		Int("size", size).
		Str("opponent", s.Opponent).
		Str("difficulty", string(g.Difficulty())).
		Msg("new game")
	c.notify(obs, s)
	return s, nil
}

// ApplyHumanMove plays coord for the human whose turn it is.
func (c *Controller) ApplyHumanMove(coord domain.Coord) (State, error) {
	c.mu.Lock()
	if c.game == nil {
		c.mu.Unlock()
		return State{}, domain.ErrGameNotStarted
	}
	g := c.game
	if g.Status() == domain.StatusEnded {
		c.mu.Unlock()
		return State{}, domain.ErrMoveNotAvailable
	}
	if g.ActivePlayer().Kind != domain.Human {
		c.mu.Unlock()
		return State{}, domain.ErrNotHumanTurn
	}
	if err := g.ApplyMove(coord, g.LegalMoves()); err != nil {
		c.mu.Unlock()
		return State{}, err
	}
	s, obs := c.commit()
	c.mu.Unlock()

	log.Debug().Str("component", "game").Str("game", s.GameID).Str("move", coord.String()).Msg("human move")
	c.notify(obs, s)
	return s, nil
}

// FreezeRandomStones schedules some of the active player's stones to freeze.
// It uses up the player's turn.
func (c *Controller) FreezeRandomStones() (State, FreezeReport, error) {
	c.mu.Lock()
	if c.game == nil {
		c.mu.Unlock()
		return State{}, FreezeReport{}, domain.ErrGameNotStarted
	}
	if c.game.Status() == domain.StatusEnded {
		c.mu.Unlock()
		return State{}, FreezeReport{}, domain.ErrMoveNotAvailable
	}
	report := c.game.Freeze()
	s, obs := c.commit()
	c.mu.Unlock()

	c.notify(obs, s)
	return s, report, nil
}

// Undo reverts the last two plies.
func (c *Controller) Undo() (State, error) {
	c.mu.Lock()
	if c.game == nil {
		c.mu.Unlock()
		return State{}, domain.ErrGameNotStarted
	}
	if err := c.game.Undo(); err != nil {
		c.mu.Unlock()
		return State{}, err
	}
	s, obs := c.commit()
	c.mu.Unlock()

	c.notify(obs, s)
	return s, nil
}

// AdvanceTurn ends the game when the player to move has no move, plays for
// the computer when it is its turn, and otherwise waits for a human.
func (c *Controller) AdvanceTurn() (TurnResult, error) {
	c.mu.Lock()
	if c.game == nil {
		c.mu.Unlock()
		return TurnResult{}, domain.ErrGameNotStarted
	}
	g := c.game
	if g.Status() == domain.StatusEnded {
		res := TurnResult{Kind: TurnGameEnded, Message: domain.GameEndedLabel(g.Players()), State: c.view()}
		c.mu.Unlock()
		return res, nil
	}

	transitions := g.Reconcile()
	moves := g.LegalMoves()
	var res TurnResult
	switch {
	case moves.IsEmpty():
		g.End()
		res = TurnResult{Kind: TurnGameEnded, Message: domain.GameEndedLabel(g.Players())}
	case g.ActivePlayer().Kind == domain.Computer:
		mv, _ := bot.CalculateBestMove(moves, g.Difficulty())
		if err := g.ApplyMove(mv.Target, moves); err != nil {
			c.mu.Unlock()
			return TurnResult{}, fmt.Errorf("computer move %s: %w", mv.Target, err)
		}
		res = TurnResult{Kind: TurnComputerMoved, Coord: mv.Target}
	default:
		res = TurnResult{Kind: TurnAwaiting}
	}
	s, obs := c.commit()
	res.State = s
	res.Transitions = transitions
	c.mu.Unlock()

	switch res.Kind {
	case TurnGameEnded:
		log.Info().Str("component", "game").Str("game", s.GameID).Int("black", s.Black).Int("white", s.White).Msg("game ended")
	case TurnComputerMoved:
		log.Debug().Str("component", "bot").Str("game", s.GameID).Str("move", res.Coord.String()).Msg("computer move")
	}
	if res.Kind != TurnAwaiting {
		c.notify(obs, s)
	}
	return res, nil
}

// SaveGame stores the current game under name.
func (c *Controller) SaveGame(ctx context.Context, name string) error {
	c.mu.Lock()
	if c.game == nil {
		c.mu.Unlock()
		return domain.ErrGameNotStarted
	}
	rec := c.game.Record()
	id := c.gameID
	c.mu.Unlock()

	if err := c.store.Save(ctx, name, rec); err != nil {
		log.Error().Err(err).Str("component", "save").Str("name", name).Msg("save failed")
		if errors.Is(err, domain.ErrSaveFailed) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	log.Info().Str("component", "save").Str("game", id).Str("name", name).Int("snapshots", len(rec.History)).Msg("game saved")
	return nil
}

// LoadGame replaces the current game with the one saved under name.
func (c *Controller) LoadGame(ctx context.Context, name string) (State, error) {
	rec, err := c.store.Load(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrSaveNotFound) || errors.Is(err, domain.ErrLoadFailed) {
			return State{}, err
		}
		return State{}, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}
	g, err := NewGameStateFromRecord(rec, c.opts...)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}

	c.mu.Lock()
	c.game = g
	c.gameID = uid.NewGameID()
	s, obs := c.commit()
	c.mu.Unlock()

	log.Info().Str("component", "save").Str("game", s.GameID).Str("name", name).Msg("game loaded")
	c.notify(obs, s)
	return s, nil
}

// Snapshot returns the current view; ErrGameNotStarted without a game.
func (c *Controller) Snapshot() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game == nil {
		return State{}, domain.ErrGameNotStarted
	}
	return c.view(), nil
}

// Tick advances the freeze clock by one step.
func (c *Controller) Tick() {
	c.mu.Lock()
	if c.game == nil {
		c.mu.Unlock()
		return
	}
	applied := c.game.Tick()
	if len(applied) == 0 {
		c.mu.Unlock()
		return
	}
	s, obs := c.commit()
	c.mu.Unlock()

	for _, t := range applied {
		log.Debug().Str("component", "freeze").Str("game", s.GameID).Str("stone", t.Coord.String()).Stringer("event", t.Kind).Uint64("tick", s.Tick).Msg("timer fired")
	}
	c.notify(obs, s)
}

// Start runs the freeze clock in the background until ctx is done or
// Close is called.
func (c *Controller) Start(ctx context.Context) {
	c.worker.Start(ctx)
}

// Close stops the clock and drops pending freeze events.
func (c *Controller) Close() {
	c.worker.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game != nil {
		c.game.StopTimers()
	}
}
