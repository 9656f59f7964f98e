package revalidate

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubConnectionCreation(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	hub.AddNewConnection(ctx)
	assert.Equal(t, 1, hub.GetActiveConnectionsCount())

	cancel()

	// Force trigger an long IO operation to context swiching to clean up.
	time.Sleep(1 * time.Second)

	assert.Equal(t, 0, hub.GetActiveConnectionsCount())
}

func TestHubMultipleConnections(t *testing.T) {
	hub := NewHub()
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())

	ch1, _ := hub.AddNewConnection(ctx1)
	ch2, _ := hub.AddNewConnection(ctx2)
	assert.Equal(t, 2, hub.GetActiveConnectionsCount())

	hub.Revalidate(context.Background(), PathHome, DebatePath("d1"))
	assert.Equal(t, &Event{Paths: []string{"/", "/debate/d1"}}, <-ch1)
	assert.Equal(t, &Event{Paths: []string{"/", "/debate/d1"}}, <-ch2)

	cancel1()
	cancel2()
	time.Sleep(1 * time.Second)
	assert.Equal(t, 0, hub.GetActiveConnectionsCount())
}

func TestHubDropsEventsForSlowSubscriber(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, _ := hub.AddNewConnection(ctx)

	for i := 0; i < subscriberBufferSize+5; i++ {
		hub.Revalidate(context.Background(), PathNotice)
	}
	assert.Len(t, ch, subscriberBufferSize)
}

func TestHubIgnoresEmptySignal(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, _ := hub.AddNewConnection(ctx)

	hub.Revalidate(context.Background())
	assert.Len(t, ch, 0)
}

func TestServeHTTP(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.GetActiveConnectionsCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.Revalidate(context.Background(), PathRanking)

	var event Event
	conn.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, []string{"/ranking"}, event.Paths)

	conn.Close()
	require.Eventually(t, func() bool {
		return hub.GetActiveConnectionsCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
