package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"GalleryStudio/internal/model"
)

// mockRepo сохраняет полученные пакеты для проверки
type mockRepo struct {
	received [][]model.Event
	err      error
}

func (m *mockRepo) BatchInsertEvents(ctx context.Context, events []model.Event) error {
	batch := make([]model.Event, len(events))
	copy(batch, events)
	m.received = append(m.received, batch)
	return m.err
}

func event(t *testing.T, kind, id string) []byte {
	t.Helper()
	data, err := json.Marshal(model.Event{Kind: kind, EntityID: id, Title: "t", CreatedAt: time.Now()})
	require.NoError(t, err)
	return data
}

func TestHandleMessage_NoFlush(t *testing.T) {
	repo := &mockRepo{}
	cons := NewConsumer(repo, 3)

	require.NoError(t, cons.HandleMessage(context.Background(), event(t, model.EventProjectCreated, "p1")))
	require.Len(t, repo.received, 0)
}

func TestHandleMessage_FlushOnBatch(t *testing.T) {
	repo := &mockRepo{}
	cons := NewConsumer(repo, 2)

	require.NoError(t, cons.HandleMessage(context.Background(), event(t, model.EventProjectCreated, "p1")))
	require.NoError(t, cons.HandleMessage(context.Background(), event(t, model.EventProjectDeleted, "p2")))

	require.Len(t, repo.received, 1)
	require.Len(t, repo.received[0], 2)
	require.Equal(t, "p1", repo.received[0][0].EntityID)
	require.Equal(t, model.EventProjectDeleted, repo.received[0][1].Kind)
}

func TestFlush_Empty(t *testing.T) {
	repo := &mockRepo{}
	cons := NewConsumer(repo, 5)
	require.NoError(t, cons.Flush(context.Background()))
	require.Len(t, repo.received, 0)
}

func TestFlush_NonEmpty(t *testing.T) {
	repo := &mockRepo{}
	cons := NewConsumer(repo, 5)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, cons.HandleMessage(context.Background(), event(t, model.EventContactReceived, id)))
	}
	require.Len(t, repo.received, 0)

	require.NoError(t, cons.Flush(context.Background()))
	require.Len(t, repo.received, 1)
	require.Len(t, repo.received[0], 3)

	// буфер очищен
	require.NoError(t, cons.Flush(context.Background()))
	require.Len(t, repo.received, 1)
}

func TestHandleMessage_ParseError(t *testing.T) {
	repo := &mockRepo{}
	cons := NewConsumer(repo, 1)
	require.Error(t, cons.HandleMessage(context.Background(), []byte("not json")))
	require.Len(t, repo.received, 0)
}

func TestHandleMessage_EmptyKind(t *testing.T) {
	repo := &mockRepo{}
	cons := NewConsumer(repo, 1)
	err := cons.HandleMessage(context.Background(), []byte(`{"entityId":"x"}`))
	require.ErrorIs(t, err, ErrEmptyKind)
	require.Len(t, repo.received, 0)
}

func TestBatchInsertError_IsPropagated(t *testing.T) {
	ex := errors.New("insert failed")
	repo := &mockRepo{err: ex}
	cons := NewConsumer(repo, 1)
	err := cons.HandleMessage(context.Background(), event(t, model.EventProjectImported, "p9"))
	require.ErrorIs(t, err, ex)
}
