package game

import (
	"fmt"

	"github.com/iamasit07/othello/internal/domain"
	"github.com/iamasit07/othello/internal/service/freeze"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// FreezeRange bounds the random durations, in ticks, drawn by Freeze.
// The init delay is drawn from [Min, MaxInit), the freeze length from
// [Min, MaxPersist).
type FreezeRange struct {
	Min        int
	MaxInit    int
	MaxPersist int
}

var DefaultFreezeRange = FreezeRange{Min: 5, MaxInit: 10, MaxPersist: 15}

func (r FreezeRange) draw(rng *rand.Rand, max int) int {
	if max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(max-r.Min)
}

// FreezeReport describes one FREEZE command.
type FreezeReport struct {
	InitDelay int            `json:"initDelay"`
	Persist   int            `json:"persist"`
	Stones    []domain.Coord `json:"stones"`
}

// Transition is a freeze or thaw applied to a stone by the clock.
type Transition struct {
	Coord domain.Coord
	Kind  freeze.EventKind
}

// Countdown is the time left on one stone's freeze timer: until it freezes,
// or until it thaws once Frozen.
type Countdown struct {
	Coord  domain.Coord `json:"coord"`
	Frozen bool         `json:"frozen"`
	Left   int          `json:"left"`
}

type Option func(*GameState)

// WithRand replaces the random source used for freezing.
func WithRand(rng *rand.Rand) Option {
	return func(s *GameState) {
		s.rng = rng
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithFreezeRange(r FreezeRange) Option {
	return func(s *GameState) {
		s.freezeRange = r
	}
}

// GameState is one game: board, seats, whose turn it is, the undo history
// and the freeze clock. It is not safe for concurrent use; Controller
// serializes access.
type GameState struct {
	board      *domain.Board
	players    [2]domain.Player
	active     int
	history    []*domain.Board
	scheduler  *freeze.Scheduler
	difficulty domain.Difficulty
	status     domain.GameStatus
	pending    []Transition

	rng         *rand.Rand
	freezeRange FreezeRange
}

func newGameState(board *domain.Board, opponent domain.PlayerKind, difficulty domain.Difficulty, opts []Option) *GameState {
	if opponent == domain.Computer && difficulty == domain.DifficultyNone {
		difficulty = domain.DifficultyHard
	}
	if opponent == domain.Human {
		difficulty = domain.DifficultyNone
	}
	s := &GameState{
		board:       board,
		players:     domain.NewPlayers(opponent),
		scheduler:   freeze.NewScheduler(),
		difficulty:  difficulty,
		status:      domain.StatusAwaitingMove,
		freezeRange: DefaultFreezeRange,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Uint64()))
	}
	return s
}

// NewGameState starts a game on the standard opening position, black to move.
func NewGameState(size int, opponent domain.PlayerKind, difficulty domain.Difficulty, opts ...Option) (*GameState, error) {
	board, err := domain.NewStartingBoard(size)
	if err != nil {
		return nil, err
	}
	s := newGameState(board, opponent, difficulty, opts)
	s.ComputeScore()
	s.checkpoint()
	return s, nil
}

// NewGameStateFromRecord rebuilds a saved game. The record lists its
// history newest first; the newest snapshot becomes the board.
func NewGameStateFromRecord(rec domain.SaveRecord, opts ...Option) (*GameState, error) {
	if len(rec.History) == 0 {
		return nil, fmt.Errorf("%w: empty history", domain.ErrInvalidSave)
	}
	history := make([]*domain.Board, 0, len(rec.History))
	for i := len(rec.History) - 1; i >= 0; i-- {
		b, err := domain.ParseBoard(rec.Size, rec.History[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSave, err)
		}
		history = append(history, b)
	}

	s := newGameState(history[len(history)-1].Snapshot(), rec.Opponent, rec.Difficulty, opts)
	s.history = history
	if rec.Active == domain.PlayerTwo {
		s.active = domain.PlayerTwo
	}
	s.ComputeScore()
	return s, nil
}

func (s *GameState) Board() *domain.Board {
	return s.board
}

func (s *GameState) Players() [2]domain.Player {
	return s.players
}

func (s *GameState) Active() int {
	return s.active
}

func (s *GameState) ActivePlayer() domain.Player {
	return s.players[s.active]
}

func (s *GameState) Difficulty() domain.Difficulty {
	return s.difficulty
}

func (s *GameState) Status() domain.GameStatus {
	return s.status
}

// Now is the freeze clock in ticks.
func (s *GameState) Now() uint64 {
	return s.scheduler.Now()
}

// LegalMoves computes the active player's moves on the current board.
func (s *GameState) LegalMoves() *domain.MoveSet {
	return domain.LegalMoves(s.board, s.players[s.active].Color)
}

// ApplyMove plays c for the active player. Nothing changes unless c is one
// of the given moves.
func (s *GameState) ApplyMove(c domain.Coord, moves *domain.MoveSet) error {
	flips, ok := moves.Get(c)
	if !ok {
		return domain.ErrMoveNotAvailable
	}
	if err := s.board.Place(c, s.players[s.active].Color); err != nil {
		return err
	}
	for _, f := range flips {
		s.board.Flip(f)
	}
	s.status = domain.StatusMoveApplied

	s.ComputeScore()
	s.checkpoint()
	s.switchTurn()
	return nil
}

// Undo reverts the last two plies. The player to move stays the same.
func (s *GameState) Undo() error {
	n := len(s.history)
	if n < 3 {
		return domain.ErrNoMoreMovesToUndo
	}
	restored := s.history[n-3]
	s.history = s.history[:n-3]

	s.board.Restore(restored)
	s.settle()
	s.scheduler.Rebuild(s.board)
	s.pending = nil

	s.ComputeScore()
	s.checkpoint()
	s.status = domain.StatusAwaitingMove
	return nil
}

// ComputeScore sets both scores to the stones on the board.
func (s *GameState) ComputeScore() {
	black, white := s.board.Count()
	s.setScores(black, white)
}

// FinalizeScore awards the empty cells to the leader.
func (s *GameState) FinalizeScore() {
	black, white := s.board.Count()
	s.setScores(domain.FinalScore(black, white, s.board.Area()))
}

func (s *GameState) setScores(black, white int) {
	for i := range s.players {
		if s.players[i].Color == domain.Black {
			s.players[i].Score = black
		} else {
			s.players[i].Score = white
		}
	}
}

// Freeze schedules a random subset of the active player's free stones to
// freeze and consumes the turn.
func (s *GameState) Freeze() FreezeReport {
	color := s.players[s.active].Color
	var candidates []domain.Coord
	for _, c := range s.board.StonesOf(color) {
		if s.board.Cell(c).AvailableForFreeze() {
			candidates = append(candidates, c)
		}
	}

	report := FreezeReport{
		InitDelay: s.freezeRange.draw(s.rng, s.freezeRange.MaxInit),
		Persist:   s.freezeRange.draw(s.rng, s.freezeRange.MaxPersist),
	}

	k := 0
	if len(candidates) > 0 {
		k = s.rng.Intn(len(candidates))
	}
	for _, i := range s.rng.Perm(len(candidates))[:k] {
		report.Stones = append(report.Stones, candidates[i])
	}
	slices.SortFunc(report.Stones, domain.Coord.Compare)

	for _, c := range report.Stones {
		timer := s.scheduler.Schedule(c, report.InitDelay, report.Persist)
		s.board.Cell(c).AttachTimer(timer)
	}
	s.settle()

	log.Debug().
		Str("component", "freeze").
		Str("color", color.String()).
		Int("candidates", len(candidates)).
		Int("selected", len(report.Stones)).
		Int("init", report.InitDelay).
		Int("persist", report.Persist).
		Msg("stones scheduled")

	s.ComputeScore()
	s.checkpoint()
	s.switchTurn()
	return report
}

// Tick advances the freeze clock and applies the events that fell due.
func (s *GameState) Tick() []Transition {
	if s.status == domain.StatusEnded {
		return nil
	}
	var applied []Transition
	for _, ev := range s.scheduler.Advance() {
		if s.apply(ev) {
			applied = append(applied, Transition{Coord: ev.Coord, Kind: ev.Kind})
		}
	}
	if len(applied) > 0 {
		s.history[len(s.history)-1] = s.board.Snapshot()
		s.pending = append(s.pending, applied...)
	}
	return applied
}

// apply performs ev unless the cell's timer no longer matches it.
func (s *GameState) apply(ev freeze.Event) bool {
	cell := s.board.Cell(ev.Coord)
	if cell == nil || cell.IsEmpty() {
		return false
	}
	timer, ok := cell.Timer()
	if !ok {
		return false
	}
	switch ev.Kind {
	case freeze.EventFreeze:
		if timer.FreezeAt() != ev.Tick || cell.IsFrozen() {
			return false
		}
		cell.Freeze()
	case freeze.EventThaw:
		if timer.ThawAt() != ev.Tick {
			return false
		}
		cell.Thaw()
	}
	return true
}

// settle brings every timed cell in line with the clock, for timers whose
// events are already in the past.
func (s *GameState) settle() {
	now := s.scheduler.Now()
	s.board.Each(func(_ domain.Coord, cell *domain.Cell) {
		timer, ok := cell.Timer()
		if !ok {
			return
		}
		switch {
		case timer.ThawAt() <= now:
			cell.Thaw()
		case timer.FreezeAt() <= now:
			cell.Freeze()
		}
	})
}

// Reconcile returns the transitions applied since the last call.
func (s *GameState) Reconcile() []Transition {
	out := s.pending
	s.pending = nil
	return out
}

// FrozenStones lists the stones currently frozen.
func (s *GameState) FrozenStones() []domain.Coord {
	var out []domain.Coord
	s.board.Each(func(c domain.Coord, cell *domain.Cell) {
		if cell.IsFrozen() {
			out = append(out, c)
		}
	})
	return out
}

// Countdowns lists the running freeze timers. An ended game has none.
func (s *GameState) Countdowns() []Countdown {
	if s.status == domain.StatusEnded {
		return nil
	}
	now := s.scheduler.Now()
	var out []Countdown
	s.board.Each(func(c domain.Coord, cell *domain.Cell) {
		if timer, ok := cell.Timer(); ok {
			out = append(out, Countdown{Coord: c, Frozen: cell.IsFrozen(), Left: timer.Left(now)})
		}
	})
	return out
}

// End finalizes the score and stops the freeze clock.
func (s *GameState) End() {
	s.FinalizeScore()
	s.scheduler.Clear()
	s.status = domain.StatusEnded
}

// StopTimers drops every pending freeze event.
func (s *GameState) StopTimers() {
	s.scheduler.Clear()
}

func (s *GameState) checkpoint() {
	s.history = append(s.history, s.board.Snapshot())
}

func (s *GameState) switchTurn() {
	if s.active == domain.PlayerOne {
		s.active = domain.PlayerTwo
	} else {
		s.active = domain.PlayerOne
	}
	s.status = domain.StatusTurnAdvanced
}

// History is the undo stack, oldest first.
func (s *GameState) History() []*domain.Board {
	return s.history
}

// Record exports the game in its saved form, newest snapshot first.
func (s *GameState) Record() domain.SaveRecord {
	rec := domain.SaveRecord{
		Opponent:   s.players[domain.PlayerTwo].Kind,
		Size:       s.board.Size(),
		Difficulty: s.difficulty,
		Active:     s.active,
		History:    make([]string, 0, len(s.history)),
	}
	for i := len(s.history) - 1; i >= 0; i-- {
		rec.History = append(rec.History, s.history[i].Encode())
	}
	return rec
}
