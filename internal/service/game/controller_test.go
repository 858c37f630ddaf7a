package game

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iamasit07/othello/internal/domain"
	"github.com/iamasit07/othello/internal/service/freeze"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu    sync.Mutex
	saves map[string]domain.SaveRecord
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{saves: make(map[string]domain.SaveRecord)}
}

func (m *memoryStore) Save(_ context.Context, name string, rec domain.SaveRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves[name] = rec
	return nil
}

func (m *memoryStore) Load(_ context.Context, name string) (domain.SaveRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.SaveRecord{}, m.err
	}
	rec, ok := m.saves[name]
	if !ok {
		return domain.SaveRecord{}, domain.ErrSaveNotFound
	}
	return rec, nil
}

type recorder struct {
	mu     sync.Mutex
	states []State
}

func (r *recorder) OnStateChange(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func TestControllerWithoutGame(t *testing.T) {
	c := NewController(newMemoryStore(), time.Second)
	ctx := context.Background()

	_, err := c.ApplyHumanMove(domain.Coord{X: 2, Y: 3})
	require.ErrorIs(t, err, domain.ErrGameNotStarted)
	_, _, err = c.FreezeRandomStones()
	require.ErrorIs(t, err, domain.ErrGameNotStarted)
	_, err = c.Undo()
	require.ErrorIs(t, err, domain.ErrGameNotStarted)
	_, err = c.AdvanceTurn()
	require.ErrorIs(t, err, domain.ErrGameNotStarted)
	_, err = c.Snapshot()
	require.ErrorIs(t, err, domain.ErrGameNotStarted)
	require.ErrorIs(t, c.SaveGame(ctx, "slot"), domain.ErrGameNotStarted)

	c.Tick()
}

func TestControllerHumanGame(t *testing.T) {
	c := NewController(newMemoryStore(), time.Second)
	rec := &recorder{}
	c.Subscribe(rec)

	s, err := c.NewGame(8, domain.Human, domain.DifficultyNone)
	require.NoError(t, err)
	require.Equal(t, 2, s.Black)
	require.Equal(t, 2, s.White)
	require.Equal(t, "[player 1] [BLACK]", s.Turn)
	require.Equal(t, "000000000000000000000000000WB000000BW000000000000000000000000000", s.Board)
	require.NotEmpty(t, s.GameID)

	_, err = c.ApplyHumanMove(domain.Coord{X: 0, Y: 0})
	require.ErrorIs(t, err, domain.ErrMoveNotAvailable)

	s, err = c.ApplyHumanMove(domain.Coord{X: 2, Y: 3})
	require.NoError(t, err)
	require.Equal(t, 4, s.Black)
	require.Equal(t, 1, s.White)
	require.Equal(t, "[player 2] [WHITE]", s.Turn)

	res, err := c.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, TurnAwaiting, res.Kind)

	_, err = c.ApplyHumanMove(domain.Coord{X: 2, Y: 2})
	require.NoError(t, err)

	s, err = c.Undo()
	require.NoError(t, err)
	require.Equal(t, 2, s.Black)
	require.Equal(t, 2, s.White)
	require.Equal(t, "[player 1] [BLACK]", s.Turn)

	_, err = c.Undo()
	require.ErrorIs(t, err, domain.ErrNoMoreMovesToUndo)

	require.Equal(t, 4, rec.count())
}

func TestControllerComputerGame(t *testing.T) {
	c := NewController(newMemoryStore(), time.Second)
	_, err := c.NewGame(8, domain.Computer, domain.DifficultyEasy)
	require.NoError(t, err)

	_, err = c.ApplyHumanMove(domain.Coord{X: 2, Y: 3})
	require.NoError(t, err)

	_, err = c.ApplyHumanMove(domain.Coord{X: 2, Y: 2})
	require.ErrorIs(t, err, domain.ErrNotHumanTurn)

	res, err := c.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, TurnComputerMoved, res.Kind)
	require.Equal(t, 6, res.State.Black+res.State.White)
	require.Equal(t, "[player 1] [BLACK]", res.State.Turn)

	res, err = c.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, TurnAwaiting, res.Kind)
}

func TestControllerGameEnds(t *testing.T) {
	store := newMemoryStore()
	store.saves["full"] = domain.SaveRecord{
		Opponent: domain.Computer,
		Size:     6,
		Active:   domain.PlayerTwo,
		History:  []string{strings.Repeat("B", 36)},
	}
	c := NewController(store, time.Second)

	s, err := c.LoadGame(context.Background(), "full")
	require.NoError(t, err)
	require.Equal(t, 36, s.Black)
	require.Equal(t, "[computer] [WHITE]", s.Turn)
	require.Equal(t, domain.DifficultyHard, s.Difficulty)

	res, err := c.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, TurnGameEnded, res.Kind)
	require.Equal(t, "Game over. [player 1] won.", res.Message)
	require.Equal(t, 36, res.State.Black)
	require.Equal(t, 0, res.State.White)
	require.Equal(t, domain.StatusEnded, res.State.Status)

	res, err = c.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, TurnGameEnded, res.Kind)

	_, err = c.ApplyHumanMove(domain.Coord{X: 0, Y: 0})
	require.ErrorIs(t, err, domain.ErrMoveNotAvailable)
}

func TestControllerFinalScoreFillsBoard(t *testing.T) {
	store := newMemoryStore()
	// white has no stone left to bracket with
	store.saves["early"] = domain.SaveRecord{
		Opponent: domain.Human,
		Size:     6,
		Active:   domain.PlayerTwo,
		History:  []string{"BBB000" + strings.Repeat("0", 30)},
	}
	c := NewController(store, time.Second)
	_, err := c.LoadGame(context.Background(), "early")
	require.NoError(t, err)

	res, err := c.AdvanceTurn()
	require.NoError(t, err)
	require.Equal(t, TurnGameEnded, res.Kind)
	require.Equal(t, 36, res.State.Black)
	require.Equal(t, 0, res.State.White)
}

func TestControllerSaveLoad(t *testing.T) {
	store := newMemoryStore()
	c := NewController(store, time.Second)
	ctx := context.Background()

	_, err := c.NewGame(6, domain.Computer, domain.DifficultyEasy)
	require.NoError(t, err)
	_, err = c.ApplyHumanMove(domain.Coord{X: 1, Y: 2})
	require.NoError(t, err)
	before, err := c.Snapshot()
	require.NoError(t, err)

	require.NoError(t, c.SaveGame(ctx, "slot"))
	require.Len(t, store.saves["slot"].History, 2)

	_, err = c.NewGame(8, domain.Human, domain.DifficultyNone)
	require.NoError(t, err)

	after, err := c.LoadGame(ctx, "slot")
	require.NoError(t, err)
	require.Equal(t, before.Board, after.Board)
	require.Equal(t, before.Turn, after.Turn)
	require.Equal(t, domain.DifficultyEasy, after.Difficulty)
	require.NotEqual(t, before.GameID, after.GameID)

	_, err = c.LoadGame(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrSaveNotFound)

	store.err = errors.New("disk full")
	require.ErrorIs(t, c.SaveGame(ctx, "slot"), domain.ErrSaveFailed)
	_, err = c.LoadGame(ctx, "slot")
	require.ErrorIs(t, err, domain.ErrLoadFailed)
}

func TestControllerFreezeAndTick(t *testing.T) {
	for seed := uint64(1); seed <= 64; seed++ {
		c := NewController(newMemoryStore(), time.Second, WithSeed(seed), WithFreezeRange(shortFreeze))
		_, err := c.NewGame(8, domain.Human, domain.DifficultyNone)
		require.NoError(t, err)

		s, report, err := c.FreezeRandomStones()
		require.NoError(t, err)
		require.Equal(t, "[player 2] [WHITE]", s.Turn)
		if len(report.Stones) == 0 {
			continue
		}

		require.Len(t, s.Countdowns, len(report.Stones))
		require.Equal(t, Countdown{Coord: report.Stones[0], Left: 2}, s.Countdowns[0])

		rec := &recorder{}
		c.Subscribe(rec)
		c.Tick()
		require.Zero(t, rec.count())
		c.Tick()
		require.Equal(t, 1, rec.count())

		s, err = c.Snapshot()
		require.NoError(t, err)
		require.Equal(t, report.Stones, s.Frozen)
		require.Equal(t, Countdown{Coord: report.Stones[0], Frozen: true, Left: 2}, s.Countdowns[0])

		res, err := c.AdvanceTurn()
		require.NoError(t, err)
		require.Equal(t, TurnAwaiting, res.Kind)
		require.Len(t, res.Transitions, len(report.Stones))
		require.Equal(t, Transition{Coord: report.Stones[0], Kind: freeze.EventFreeze}, res.Transitions[0])

		res, err = c.AdvanceTurn()
		require.NoError(t, err)
		require.Empty(t, res.Transitions, "transitions are reported once")

		c.Tick()
		c.Tick()
		s, err = c.Snapshot()
		require.NoError(t, err)
		require.Empty(t, s.Frozen)
		require.Empty(t, s.Countdowns)
		return
	}
	t.Fatal("no seed selected a stone")
}

func TestControllerStartClose(t *testing.T) {
	c := NewController(newMemoryStore(), time.Millisecond, WithSeed(3), WithFreezeRange(FreezeRange{Min: 1, MaxInit: 1, MaxPersist: 1}))
	_, err := c.NewGame(8, domain.Human, domain.DifficultyNone)
	require.NoError(t, err)

	c.Start(context.Background())
	require.Eventually(t, func() bool {
		s, err := c.Snapshot()
		return err == nil && s.Tick > 2
	}, time.Second, time.Millisecond)
	c.Close()

	s, err := c.Snapshot()
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	again, err := c.Snapshot()
	require.NoError(t, err)
	require.Equal(t, s.Tick, again.Tick)
}
