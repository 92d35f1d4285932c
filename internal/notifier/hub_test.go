package notifier

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// dialHub spins up a server that registers every upgraded connection with
// the hub, then dials it and returns the client side.
func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Add(conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	waitForViewers(t, hub, 1)
	return client
}

func waitForViewers(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d viewers, have %d", want, hub.Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHubBroadcastReachesViewer(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub)

	hub.Broadcast(Event{Event: EventNotifications, Data: []string{"a", "b"}})

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	if err := client.ReadJSON(&got); err != nil {
		t.Fatalf("reading broadcast: %v", err)
	}
	if got.Event != EventNotifications {
		t.Fatalf("expected event %q, got %q", EventNotifications, got.Event)
	}
}

func TestHubRemoveDropsViewer(t *testing.T) {
	hub := NewHub()
	_ = dialHub(t, hub)

	if hub.Len() != 1 {
		t.Fatalf("expected 1 viewer, got %d", hub.Len())
	}

	hub.mu.RLock()
	var conn *websocket.Conn
	for c := range hub.conns {
		conn = c
	}
	hub.mu.RUnlock()

	hub.Remove(conn)
	if hub.Len() != 0 {
		t.Fatalf("expected 0 viewers after remove, got %d", hub.Len())
	}
}

func TestHubEvictsDeadConnectionOnBroadcast(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub)

	// Kill the client side so the next server write fails.
	_ = client.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() != 0 {
		hub.Broadcast(Event{Event: EventNotifications})
		if time.Now().After(deadline) {
			t.Fatalf("dead connection never evicted, have %d viewers", hub.Len())
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// Concurrent mutations broadcast from separate goroutines; writes to a
// single connection must be serialized or gorilla/websocket panics with
// "concurrent write to websocket connection".
func TestHubBroadcastFromConcurrentGoroutines(t *testing.T) {
	hub := NewHub()
	client := dialHub(t, hub)

	const writers = 4
	const perWriter = 25

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < writers*perWriter; i++ {
			_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
			var got Event
			if err := client.ReadJSON(&got); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				hub.Broadcast(Event{Event: EventNotifications, Data: []string{"n"}})
			}
		}()
	}
	wg.Wait()

	<-done
	if hub.Len() != 1 {
		t.Fatalf("expected the viewer to survive overlapping broadcasts, have %d", hub.Len())
	}
}

// A connected viewer that never reads must not wedge the hub; the write
// deadline expires and the viewer is evicted.
func TestHubEvictsStalledViewerOnBroadcast(t *testing.T) {
	hub := NewHub()
	hub.writeWait = 100 * time.Millisecond
	_ = dialHub(t, hub)

	// Oversized payloads fill the socket buffers of the non-reading client
	// until a write blocks and hits the deadline.
	payload := Event{Event: EventNotifications, Data: strings.Repeat("x", 1<<16)}

	deadline := time.Now().Add(5 * time.Second)
	for hub.Len() != 0 {
		hub.Broadcast(payload)
		if time.Now().After(deadline) {
			t.Fatalf("stalled viewer never evicted, have %d viewers", hub.Len())
		}
	}
}
