package freeze

import (
	"testing"

	"github.com/iamasit07/othello/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestSchedulerOrdersEvents(t *testing.T) {
	s := NewScheduler()
	a := domain.Coord{X: 1, Y: 1}
	b := domain.Coord{X: 0, Y: 3}

	ta := s.Schedule(a, 2, 3)
	require.Equal(t, uint64(2), ta.FreezeAt())
	require.Equal(t, uint64(5), ta.ThawAt())

	s.Advance()
	s.Schedule(b, 1, 1)
	require.Equal(t, 4, s.Pending())

	var got []Event
	for i := 0; i < 5; i++ {
		got = append(got, s.Advance()...)
	}
	require.Equal(t, []Event{
		{Tick: 2, Kind: EventFreeze, Coord: b},
		{Tick: 2, Kind: EventFreeze, Coord: a},
		{Tick: 3, Kind: EventThaw, Coord: b},
		{Tick: 5, Kind: EventThaw, Coord: a},
	}, got)
	require.Zero(t, s.Pending())
}

func TestSchedulerRebuild(t *testing.T) {
	board, err := domain.NewStartingBoard(6)
	require.NoError(t, err)

	s := NewScheduler()
	c := domain.Coord{X: 2, Y: 2}
	board.Cell(c).AttachTimer(s.Schedule(c, 2, 2))
	s.Schedule(domain.Coord{X: 3, Y: 3}, 1, 1)
	require.Equal(t, 4, s.Pending())

	s.Advance()
	s.Rebuild(board)
	require.Equal(t, 2, s.Pending(), "only timers on the board survive a rebuild")

	s.Clear()
	require.Zero(t, s.Pending())
}

func TestTimerLeft(t *testing.T) {
	timer := domain.FreezeTimer{InitDelay: 5, OriginalPersist: 7, ScheduledAt: 10}
	require.Equal(t, 5, timer.Left(10))
	require.Equal(t, 1, timer.Left(14))
	require.Equal(t, 7, timer.Left(15))
	require.Equal(t, 0, timer.Left(22))
}
