package logger

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"GalleryStudio/internal/model"
)

// mockConn перехватывает вызовы Publish
type mockConn struct {
	subject   string
	data      []byte
	returnErr error
}

func (m *mockConn) Publish(subject string, data []byte) error {
	m.subject = subject
	m.data = data
	return m.returnErr
}

func TestPublishLog(t *testing.T) {
	conn := &mockConn{}
	client := NewClient(conn, "gallery.events")
	require.NoError(t, client.PublishLog([]byte("payload")))
	require.Equal(t, "gallery.events", conn.subject)
	require.Equal(t, "payload", string(conn.data))

	conn.returnErr = errors.New("publish failed")
	require.ErrorIs(t, client.PublishLog(nil), conn.returnErr)
}

// TestPublishEvent проверяет сериализацию события и заполнение времени
func TestPublishEvent(t *testing.T) {
	conn := &mockConn{}
	client := NewClient(conn, "gallery.events")
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return fixed }

	err := client.PublishEvent(model.Event{Kind: model.EventProjectCreated, EntityID: "42", Title: "Villa"})
	require.NoError(t, err)

	var got model.Event
	require.NoError(t, json.Unmarshal(conn.data, &got))
	require.Equal(t, model.EventProjectCreated, got.Kind)
	require.Equal(t, "42", got.EntityID)
	require.True(t, fixed.Equal(got.CreatedAt))

	// явно заданное время не перезаписывается
	at := fixed.Add(-time.Hour)
	require.NoError(t, client.PublishEvent(model.Event{Kind: "k", CreatedAt: at}))
	require.NoError(t, json.Unmarshal(conn.data, &got))
	require.True(t, at.Equal(got.CreatedAt))
}
