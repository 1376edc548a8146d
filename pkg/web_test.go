package pkg

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/gui"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

func dial(t *testing.T, ts *httptest.Server, nick string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?nick=" + nick
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func read(t *testing.T, conn *websocket.Conn) MessageTransport {
	t.Helper()

	var m MessageTransport
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

// readState skips frames until a state frame matches ok
func readState(t *testing.T, conn *websocket.Conn, ok func(game.Snapshot) bool) game.Snapshot {
	t.Helper()

	for {
		m := read(t, conn)
		if m.MsgType != TypeMessageState {
			continue
		}

		var snap game.Snapshot
		require.NoError(t, json.Unmarshal(m.Data, &snap))
		if ok(snap) {
			return snap
		}
	}
}

func sendAction(t *testing.T, conn *websocket.Conn, a event.GameAction) {
	t.Helper()

	transport, err := NewTransport(MessageAction{Action: a})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(transport))
}

func TestIndex(t *testing.T) {
	ts := httptest.NewServer(NewWebServer("", gui.ThemeClassic).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "<title>blockterm</title>")

	resp, err = http.Get(ts.URL + "/missing.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebsocketSession(t *testing.T) {
	s := NewWebServer("", gui.ThemeClassic)
	s.Seed = 7
	s.Matrix = []mino.Point{{X: 0, Y: 19}}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dial(t, ts, "tester!")
	defer conn.Close()

	m := read(t, conn)
	require.Equal(t, TypeMessageConfig, m.MsgType)
	var config MessageConfig
	require.NoError(t, json.Unmarshal(m.Data, &config))
	assert.Equal(t, "tester", config.Nick)
	assert.Equal(t, mino.BoardWidth, config.Width)
	assert.Equal(t, mino.BoardHeight, config.Height)
	assert.Equal(t, gui.ThemeClassic.Hex(), config.Theme)

	snap := readState(t, conn, func(game.Snapshot) bool { return true })
	assert.Equal(t, game.StateRunning, snap.State)
	require.NotNil(t, snap.Piece)
	assert.Equal(t, mino.BlockI, snap.Board[19][0])

	sendAction(t, conn, event.ActionPause)
	snap = readState(t, conn, func(s game.Snapshot) bool { return s.State == game.StatePaused })
	assert.Equal(t, "Resume Game", snap.PauseLabel())

	// ignored while paused
	sendAction(t, conn, event.ActionMoveLeft)
	require.NoError(t, conn.WriteJSON(MessageTransport{MsgType: TypeMessageSound, Data: json.RawMessage(`{}`)}))

	sendAction(t, conn, event.ActionPause)
	readState(t, conn, func(s game.Snapshot) bool { return s.State == game.StateRunning })

	sendAction(t, conn, event.ActionHardDrop)
	snap = readState(t, conn, func(s game.Snapshot) bool { return s.Score > 0 })
	assert.Equal(t, 0, snap.Score%game.HardDropPoints)
}

func TestWebsocketSounds(t *testing.T) {
	ts := httptest.NewServer(NewWebServer("", gui.ThemeMono).Handler())
	defer ts.Close()

	conn := dial(t, ts, "")
	defer conn.Close()

	sendAction(t, conn, event.ActionHardDrop)
	for {
		m := read(t, conn)
		if m.MsgType != TypeMessageSound {
			continue
		}

		var sound MessageSound
		require.NoError(t, json.Unmarshal(m.Data, &sound))
		assert.Equal(t, event.SoundDrop, sound.Sound)
		break
	}
}

func TestWebServerServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewWebServer(l.Addr().String(), gui.ThemeClassic).Serve(ctx, l)
	}()

	resp, err := http.Get("http://" + l.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}

	assert.Error(t, NewWebServer("", gui.ThemeClassic).ListenAndServe(context.Background()))
}
