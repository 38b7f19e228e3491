package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockRefresher struct {
	calls int
	err   error
}

func (m *mockRefresher) RefreshAll(ctx context.Context) (int, error) {
	m.calls++
	_, ok := ctx.Deadline()
	if !ok {
		return 0, errors.New("sync must run with a deadline")
	}
	return 3, m.err
}

func TestStart_Disabled(t *testing.T) {
	s := New(&mockRefresher{})
	require.NoError(t, s.Start(""))
	require.Equal(t, 0, s.Entries())
	s.Stop()
}

func TestStart_InvalidSchedule(t *testing.T) {
	s := New(&mockRefresher{})
	require.Error(t, s.Start("every now and then"))
	require.Equal(t, 0, s.Entries())
}

func TestStart_Scheduled(t *testing.T) {
	s := New(&mockRefresher{})
	require.NoError(t, s.Start("@every 1h"))
	defer s.Stop()
	require.Equal(t, 1, s.Entries())
}

func TestSync(t *testing.T) {
	r := &mockRefresher{}
	s := New(r)
	s.Sync()
	require.Equal(t, 1, r.calls)

	// ошибка только логируется
	r.err = errors.New("github down")
	s.Sync()
	require.Equal(t, 2, r.calls)
}
