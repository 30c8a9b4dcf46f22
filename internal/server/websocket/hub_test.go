package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/pkg/logging"
)

func runHub(t *testing.T) (*Hub, context.Context) {
	t.Helper()
	hub := NewHub(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return hub, ctx
}

func TestHub_RegisterBroadcastUnregister(t *testing.T) {
	hub, ctx := runHub(t)

	client := NewClient("c1", hub, nil)
	require.True(t, hub.Register(ctx, client))
	assert.Equal(t, 1, hub.ClientCount(ctx))

	hub.Broadcast(Message{Type: "conditions.updated", Timestamp: time.Now(), Data: "rotterdam"})

	select {
	case msg := <-client.send:
		assert.Equal(t, "conditions.updated", msg.Type)
	case <-time.After(time.Second):
		t.Fatal("client did not receive the broadcast")
	}

	hub.unregister <- client
	assert.Equal(t, 0, hub.ClientCount(ctx))

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed after unregister")
}

func TestHub_SlowClientIsDropped(t *testing.T) {
	hub, ctx := runHub(t)

	client := NewClient("slow", hub, nil)
	for client.Send(Message{Type: "filler"}) {
	}
	require.True(t, hub.Register(ctx, client))

	hub.Broadcast(Message{Type: "overflow"})

	require.Eventually(t, func() bool { return hub.ClientCount(ctx) == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_ClientCountWhenStopped(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Equal(t, 0, hub.ClientCount(ctx))
	assert.False(t, hub.Register(ctx, NewClient("late", hub, nil)))
}

func TestClient_EndToEnd(t *testing.T) {
	hub, ctx := runHub(t)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient("e2e", hub, conn)
		client.Send(Message{Type: "client.connected"})
		if !hub.Register(ctx, client) {
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump(ctx)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var first Message
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "client.connected", first.Type)

	hub.Broadcast(Message{Type: "marker.selected", Data: map[string]string{"id": "erasmus-mc"}})

	var second Message
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, "marker.selected", second.Type)
}
