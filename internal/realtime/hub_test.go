package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	jwtsvc "karaokehub/internal/pkg/jwt"
)

func newWSServer(t *testing.T) (*httptest.Server, *Hub, *jwtsvc.Service) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	hub := NewHub(zap.NewNop())
	t.Cleanup(hub.Close)

	jwt := jwtsvc.New("test-secret", time.Hour)

	r := gin.New()
	NewWSHandler(hub, jwt, zap.NewNop()).RegisterRoutes(r.Group("/"))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, jwt
}

func wsURL(srv *httptest.Server, token string) string {
	return strings.Replace(srv.URL, "http://", "ws://", 1) + "/ws?token=" + token
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForSubscribers(t *testing.T, hub *Hub, tenantID int64, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount(tenantID) != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d subscribers for tenant %d, got %d", n, tenantID, hub.SubscriberCount(tenantID))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocket_RejectsBadTokens(t *testing.T) {
	srv, _, _ := newWSServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ws?token=garbage")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebSocket_SuperAdminTokenRejected(t *testing.T) {
	srv, _, jwt := newWSServer(t)

	token, err := jwt.GenerateToken(1, nil, "super_admin")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/ws?token=" + token)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocket_DeliversEventsToOwnTenantOnly(t *testing.T) {
	srv, hub, jwt := newWSServer(t)

	tenantA, tenantB := int64(1), int64(2)
	tokenA, err := jwt.GenerateToken(10, &tenantA, "staff")
	require.NoError(t, err)
	tokenB, err := jwt.GenerateToken(20, &tenantB, "staff")
	require.NoError(t, err)

	connA := dial(t, srv, tokenA)
	connB := dial(t, srv, tokenB)

	waitForSubscribers(t, hub, tenantA, 1)
	waitForSubscribers(t, hub, tenantB, 1)

	hub.BookingEvent(tenantA, 5, 99, "booking.created")

	require.NoError(t, connA.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, connA.ReadJSON(&ev))
	assert.Equal(t, "booking.created", ev.Type)
	assert.Equal(t, int64(5), ev.RoomID)
	assert.Equal(t, int64(99), ev.BookingID)

	// Tenant B's client hears nothing.
	require.NoError(t, connB.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = connB.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregisterStopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	c := &client{tenantID: 1, id: "client-1", send: make(chan []byte, sendBuffer)}
	hub.register(c)
	assert.Equal(t, 1, hub.SubscriberCount(1))

	hub.unregister(c)
	assert.Equal(t, 0, hub.SubscriberCount(1))

	// Unregistering twice is safe and the send channel is closed exactly once.
	hub.unregister(c)
	_, open := <-c.send
	assert.False(t, open)

	// Broadcasting to an empty tenant channel is a no-op.
	hub.Broadcast(1, Event{Type: "booking.updated"})
}

func TestHub_ConcurrentEventsOnOneConnection(t *testing.T) {
	srv, hub, jwt := newWSServer(t)

	tenantID := int64(1)
	token, err := jwt.GenerateToken(10, &tenantID, "staff")
	require.NoError(t, err)

	conn := dial(t, srv, token)
	waitForSubscribers(t, hub, tenantID, 1)

	const events = 64
	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			hub.BookingEvent(tenantID, 5, n, "booking.created")
		}(int64(i))
	}
	wg.Wait()

	// Slow clients may lose events, but every frame that does arrive must
	// be an intact JSON payload from this tenant's stream.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "booking.created", ev.Type)
	assert.Equal(t, int64(5), ev.RoomID)
}

func TestHub_BroadcastNeverBlocksOnStalledClient(t *testing.T) {
	hub := NewHub(zap.NewNop())
	defer hub.Close()

	// No write pump drains this client, so its queue fills and stays full.
	stalled := &client{tenantID: 1, id: "stalled", send: make(chan []byte, sendBuffer)}
	hub.register(stalled)

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer*4; i++ {
			hub.BookingEvent(1, 5, int64(i), "booking.created")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a stalled client")
	}
	hub.unregister(stalled)
}
