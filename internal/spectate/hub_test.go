package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub(Config{Interval: 5 * time.Millisecond, Logger: log.NewWithOptions(io.Discard, log.Options{})})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	var f Frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("failed to decode frame %s: %v", payload, err)
	}
	return f
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.Clients())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcastsSnapshots(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	hub.Publish(bricks.Snapshot{Phase: bricks.PhaseRunning, Level: 4, Score: 17})
	f := readFrame(t, conn)

	if f.Snapshot.Level != 4 || f.Snapshot.Score != 17 {
		t.Errorf("unexpected snapshot %+v", f.Snapshot)
	}
	if f.Seq == 0 {
		t.Error("frames should carry a sequence number")
	}

	hub.Publish(bricks.Snapshot{Level: 4, Score: 18})
	next := readFrame(t, conn)
	if next.Seq <= f.Seq || next.Snapshot.Score != 18 {
		t.Errorf("expected a newer frame, got seq %d score %d", next.Seq, next.Snapshot.Score)
	}
}

func TestHubSendsLatestOnJoin(t *testing.T) {
	hub, url := startHub(t)
	hub.Publish(bricks.Snapshot{Level: 2, Score: 5})

	// Let the broadcast loop encode the frame.
	deadline := time.Now().Add(2 * time.Second)
	for {
		hub.mu.Lock()
		ready := hub.frame != nil
		hub.mu.Unlock()
		if ready {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("frame was never encoded")
		}
		time.Sleep(5 * time.Millisecond)
	}

	conn := dial(t, url)
	if f := readFrame(t, conn); f.Snapshot.Score != 5 {
		t.Errorf("late joiner got score %d, expected 5", f.Snapshot.Score)
	}
}

func TestHubPhaseEncodedByName(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url)
	waitClients(t, hub, 1)

	hub.Publish(bricks.Snapshot{Phase: bricks.PhaseGameOver})
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(payload), `"phase":"game-over"`) {
		t.Errorf("phase not encoded by name: %s", payload)
	}
}

func TestHubClientLeaves(t *testing.T) {
	hub, url := startHub(t)
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	waitClients(t, hub, 1)

	conn.Close()
	waitClients(t, hub, 0)
}

func TestHubRunStopsClients(t *testing.T) {
	hub := NewHub(Config{Interval: 5 * time.Millisecond, Logger: log.NewWithOptions(io.Discard, log.Options{})})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	waitClients(t, hub, 1)

	cancel()
	<-done
	if hub.Clients() != 0 {
		t.Error("Run should disconnect clients on exit")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the connection to be closed")
	}
}
