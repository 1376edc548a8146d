package pkg

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/qnkhuat/blockterm/pkg/gui"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

const ShutdownTimeout = 5 * time.Second

//go:embed static
var static embed.FS

// WebServer serves the browser client and one session per websocket
type WebServer struct {
	ListenAddress string
	Theme         gui.Theme
	Seed          int64
	Matrix        []mino.Point

	Logs     chan<- string
	LogLevel int

	upgrader websocket.Upgrader
}

func NewWebServer(address string, theme gui.Theme) *WebServer {
	return &WebServer{
		ListenAddress: address,
		Theme:         theme,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler routes the static client and the websocket endpoint
func (s *WebServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.HandleFunc("/ws", s.handleWebsocket)
	return mux
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *WebServer) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	nick := Nickname(r.URL.Query().Get("nick"))
	logAccess("web", r.RemoteAddr, nick)

	p := NewPlayer(conn, nick, sessionOptions(s.Seed, s.Matrix, s.Logs, s.LogLevel)...)
	config := MessageConfig{
		Theme:  s.Theme.Hex(),
		Width:  mino.BoardWidth,
		Height: mino.BoardHeight,
		Nick:   nick,
	}
	if err := p.Serve(r.Context(), config); err != nil {
		log.Printf("%s: connection closed: %v", nick, err)
	}
	log.Printf("%s: left with %d points", nick, p.Session.Stats.Score)
}

// ListenAndServe serves until ctx is done
func (s *WebServer) ListenAndServe(ctx context.Context) error {
	if s.ListenAddress == "" {
		return errors.New("web server ListenAddress must be specified")
	}

	l, err := net.Listen("tcp", s.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.ListenAddress, err)
	}
	return s.Serve(ctx, l)
}

func (s *WebServer) Serve(ctx context.Context, l net.Listener) error {
	server := &http.Server{
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	err := server.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
