package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHubServer(t *testing.T, hub *Hub) (*httptest.Server, chan struct{}) {
	t.Helper()
	registered := make(chan struct{}, 4)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn)
		registered <- struct{}{}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(conn)
	}))
	t.Cleanup(srv.Close)
	return srv, registered
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHubBroadcastReachesClients(t *testing.T) {
	hub := NewHub(nil)
	srv, registered := startHubServer(t, hub)

	first := dial(t, srv)
	defer first.Close()
	second := dial(t, srv)
	defer second.Close()
	<-registered
	<-registered
	assert.Equal(t, 2, hub.ClientCount())

	hub.Broadcast(Message{Event: EventTableCreate, Data: map[string]interface{}{"id": 1}})

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg struct {
			Event string                 `json:"event"`
			Data  map[string]interface{} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, EventTableCreate, msg.Event)
		assert.Equal(t, float64(1), msg.Data["id"])
	}
}

func TestHubBroadcastWithoutClients(t *testing.T) {
	hub := NewHub(nil)
	assert.NotPanics(t, func() {
		hub.Broadcast(Message{Event: EventStatisticsUpdate, Data: nil})
	})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHubUnregisterOnDisconnect(t *testing.T) {
	hub := NewHub(nil)
	srv, registered := startHubServer(t, hub)

	conn := dial(t, srv)
	<-registered
	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubDropsClientsPastWriteDeadline(t *testing.T) {
	hub := NewHub(nil)
	srv, registered := startHubServer(t, hub)

	conn := dial(t, srv)
	defer conn.Close()
	<-registered
	require.Equal(t, 1, hub.ClientCount())

	// A deadline already in the past makes every write time out.
	hub.WriteTimeout = -time.Second
	hub.Broadcast(Message{Event: EventBookingCreate, Data: nil})

	assert.Equal(t, 0, hub.ClientCount())
}
