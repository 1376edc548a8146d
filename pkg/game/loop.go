package game

import (
	"context"
	"time"

	"github.com/qnkhuat/blockterm/pkg/event"
)

const (
	FrameInterval    = 16 * time.Millisecond
	CommandQueueSize = 10
)

// Loop drives a Session from a single goroutine: frame ticks, player
// actions and cancellation.
type Loop struct {
	Session *Session

	// Frame sets the tick interval. Zero means FrameInterval.
	Frame time.Duration

	actions chan event.GameAction
	done    chan struct{}
}

func NewLoop(s *Session) *Loop {
	return &Loop{
		Session: s,
		actions: make(chan event.GameAction, CommandQueueSize),
		done:    make(chan struct{}),
	}
}

// Send queues an action. It blocks while the queue is full and drops the
// action once the loop has stopped.
func (l *Loop) Send(a event.GameAction) {
	select {
	case l.actions <- a:
	case <-l.done:
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run owns the session until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	frame := l.Frame
	if frame <= 0 {
		frame = FrameInterval
	}

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	l.Session.Draw(event.DrawAll)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case a := <-l.actions:
			l.Session.ProcessAction(a)
		case <-ticker.C:
			l.Session.Tick(l.Session.Now())
		}
	}
}
