package pkg

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

const (
	MessageQueueSize = 20
	PingInterval     = 54 * time.Second
	PongTimeout      = 60 * time.Second
	MaxMessageSize   = 512
)

// Player is one browser connection playing its own session
type Player struct {
	Conn *websocket.Conn
	Nick string
	Out  chan MessageInterface

	// state holds the newest snapshot not yet written. Older ones are
	// replaced, never queued.
	state chan game.Snapshot

	Session *game.Session
	Loop    *game.Loop
}

// NewPlayer starts a session whose draws and sounds are written to conn
func NewPlayer(conn *websocket.Conn, nick string, options ...game.Option) *Player {
	p := &Player{
		Conn:  conn,
		Nick:  nick,
		Out:   make(chan MessageInterface, MessageQueueSize),
		state: make(chan game.Snapshot, 1),
	}

	options = append(options, game.WithRenderer(p), game.WithSounder(p))
	p.Session = game.NewSession(options...)
	p.Loop = game.NewLoop(p.Session)
	return p
}

func (p *Player) send(m MessageInterface) {
	select {
	case p.Out <- m:
	default:
		log.Printf("%s: dropped %s message", p.Nick, m.Type())
	}
}

// Draw implements game.Renderer. Only the loop goroutine calls it, so the
// slot is free again once a stale snapshot is taken out.
func (p *Player) Draw(obj event.DrawObject, snap game.Snapshot) {
	for {
		select {
		case p.state <- snap:
			return
		default:
		}

		select {
		case <-p.state:
		default:
		}
	}
}

// Play implements game.Sounder. The browser decides whether to play it.
func (p *Player) Play(s event.Sound) {
	p.send(MessageSound{Sound: s})
}

// Serve plays until the connection closes or ctx is done
func (p *Player) Serve(ctx context.Context, config MessageConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.send(config)

	go func() {
		if err := p.Loop.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("%s: loop stopped: %v", p.Nick, err)
		}
	}()
	go p.HandleWrite(ctx)

	err := p.HandleRead()
	cancel()
	<-p.Loop.Done()
	return err
}

// HandleRead forwards actions from the browser to the loop
func (p *Player) HandleRead() error {
	defer p.Conn.Close()

	p.Conn.SetReadLimit(MaxMessageSize)
	p.Conn.SetReadDeadline(time.Now().Add(PongTimeout))
	p.Conn.SetPongHandler(func(string) error {
		p.Conn.SetReadDeadline(time.Now().Add(PongTimeout))
		return nil
	})

	for {
		var transport MessageTransport
		if err := p.Conn.ReadJSON(&transport); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}

		a, err := DecodeAction(transport)
		if err != nil {
			log.Printf("%s: %v", p.Nick, err)
			continue
		}
		p.Loop.Send(a)
	}
}

// HandleWrite writes queued messages and keeps the connection alive
func (p *Player) HandleWrite(ctx context.Context) {
	ticker := time.NewTicker(PingInterval)
	defer func() {
		ticker.Stop()
		p.Conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			p.Conn.SetWriteDeadline(time.Now().Add(MessageTimeout))
			p.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case m := <-p.Out:
			if !p.write(m) {
				return
			}
		case snap := <-p.state:
			if !p.write(MessageState{Snapshot: snap}) {
				return
			}
		case <-ticker.C:
			p.Conn.SetWriteDeadline(time.Now().Add(MessageTimeout))
			if err := p.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// write sends one message and reports whether the connection is still usable
func (p *Player) write(m MessageInterface) bool {
	transport, err := NewTransport(m)
	if err != nil {
		log.Printf("%s: %v", p.Nick, err)
		return true
	}

	p.Conn.SetWriteDeadline(time.Now().Add(MessageTimeout))
	if err := p.Conn.WriteJSON(transport); err != nil {
		log.Printf("%s: failed to write: %v", p.Nick, err)
		return false
	}
	return true
}

// sessionOptions builds the options shared by every hosted session
func sessionOptions(seed int64, matrix []mino.Point, logs chan<- string, level int) []game.Option {
	options := []game.Option{
		game.WithSource(mino.NewRandomizer(seed)),
		game.WithMatrix(matrix),
	}
	if logs != nil {
		options = append(options, game.WithLogger(logs, level))
	}
	return options
}
