package adapters

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/mariner/internal/server/events"
	"github.com/harborline/mariner/internal/server/sse"
	ws "github.com/harborline/mariner/internal/server/websocket"
	"github.com/harborline/mariner/pkg/logging"
)

func TestBrokerToTransports(t *testing.T) {
	logger := logging.NewNopLogger()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := events.NewBroker(logger)
	hub := ws.NewHub(logger)
	broadcaster := sse.NewBroadcaster(logger)
	broker.Subscribe(NewWebSocketSubscriber(hub))
	broker.Subscribe(NewSSESubscriber(broadcaster))
	go broker.Run(ctx)
	go hub.Run(ctx)
	go broadcaster.Run(ctx)

	// A registered WebSocket client without a connection; its buffer
	// absorbs the broadcast.
	wsClient := ws.NewClient("pipe", hub, nil)
	require.True(t, hub.Register(ctx, wsClient))

	// SSE side: a real stream.
	srv := httptest.NewServer(broadcaster)
	defer srv.Close()
	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Eventually(t, func() bool { return broadcaster.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	broker.Publish(events.ConditionsUpdated, map[string]string{"port": "singapore"})

	reader := bufio.NewReader(resp.Body)
	deadline := time.After(2 * time.Second)
	found := make(chan struct{})
	go func() {
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if strings.HasPrefix(line, "event: conditions.updated") {
				close(found)
				return
			}
		}
	}()
	select {
	case <-found:
	case <-deadline:
		t.Fatal("SSE stream did not receive conditions.updated")
	}

	// The client was not dropped as too slow.
	assert.Equal(t, 1, hub.ClientCount(ctx))
}

func TestSubscribersNeverFail(t *testing.T) {
	logger := logging.NewNopLogger()
	subs := []events.Subscriber{
		NewWebSocketSubscriber(ws.NewHub(logger)),
		NewSSESubscriber(sse.NewBroadcaster(logger)),
	}
	for _, sub := range subs {
		assert.NoError(t, sub.Send(events.Event{Type: events.MarkerSelected, Timestamp: time.Now()}))
		assert.NoError(t, sub.Send(events.Event{Type: events.ConditionsUpdated}))
		assert.NoError(t, sub.Close())
	}
}
