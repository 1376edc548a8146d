package pkg

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"

	"github.com/qnkhuat/blockterm/pkg/game"
)

const (
	LogQueueSize   = 100
	MaxNickLength  = 16
	MessageTimeout = 10 * time.Second
)

var nickRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// InitLog sends the standard logger to dest. The terminal belongs to the
// UI so nothing may be written to stdout or stderr while it runs.
func InitLog(dest, prefix string) error {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
	return nil
}

// HandleLogs writes session log lines to the standard logger until logs is
// closed or ctx is done
func HandleLogs(ctx context.Context, logs <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case l, ok := <-logs:
			if !ok {
				return
			}
			log.Println(l)
		}
	}
}

// Nickname strips a nickname down to letters, digits, '-' and '_'. An
// empty result gets a generated name.
func Nickname(nick string) string {
	nick = nickRegexp.ReplaceAllString(nick, "")
	if len(nick) > MaxNickLength {
		nick = nick[:MaxNickLength]
	} else if nick == "" {
		nick = petname.Generate(2, "-")
	}

	return nick
}

// Banner announces a listener on w
func Banner(w io.Writer, service, address string) {
	name := color.New(color.FgHiCyan, color.Bold)
	addr := color.New(color.FgHiWhite)

	name.Fprint(w, "blockterm ")
	fmt.Fprintf(w, "%s listening on ", service)
	addr.Fprintln(w, address)
}

// Summary prints the result of a finished game on w
func Summary(w io.Writer, nick string, snap game.Snapshot, played time.Duration) {
	header := color.New(color.FgHiYellow, color.Bold)
	label := color.New(color.FgHiBlack)

	header.Fprintf(w, "%s: %s\n", nick, snap.State)
	label.Fprint(w, "score ")
	fmt.Fprintf(w, "%d  ", snap.Score)
	label.Fprint(w, "level ")
	fmt.Fprintf(w, "%d  ", snap.Level)
	label.Fprint(w, "lines ")
	fmt.Fprintf(w, "%d  ", snap.Lines)
	label.Fprint(w, "time ")
	fmt.Fprintln(w, game.FormatDuration(played))
}

// logAccess writes one access line to the standard logger
func logAccess(kind, remote, nick string) {
	log.Printf("%s %s %s", color.GreenString(kind), remote, nick)
}
