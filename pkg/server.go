package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/exec"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const ServerIdleTimeout = 5 * time.Minute

// SSHServer runs a terminal client in a pty for every SSH session
type SSHServer struct {
	ListenAddress string
	ClientBinary  string
	HostKeyFile   string

	// Args are passed to every client after --nick.
	Args []string
}

func (s *SSHServer) command(ctx context.Context, user string) *exec.Cmd {
	args := append([]string{"--nick", Nickname(user), "--sound=false"}, s.Args...)
	return exec.CommandContext(ctx, s.ClientBinary, args...)
}

func (s *SSHServer) handle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")

		sess.Exit(1)
		return
	}

	logAccess("ssh", sess.RemoteAddr().String(), sess.User())

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := s.command(cmdCtx, sess.User())
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(ptyReq.Window.Height), Cols: uint16(ptyReq.Window.Width)})
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	cancelCmd()
	if err := cmd.Wait(); err != nil {
		log.Printf("%s: client exited: %v", sess.User(), err)
	}
}

func (s *SSHServer) newServer() (*ssh.Server, error) {
	server := &ssh.Server{
		Addr:        s.ListenAddress,
		IdleTimeout: ServerIdleTimeout,
		Handler:     s.handle,
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	// Without a key file a host key is generated on start.
	if s.HostKeyFile != "" {
		if err := server.SetOption(ssh.HostKeyFile(s.HostKeyFile)); err != nil {
			return nil, fmt.Errorf("failed to load host key %s: %w", s.HostKeyFile, err)
		}
	}

	return server, nil
}

// ListenAndServe serves until ctx is done
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	if s.ListenAddress == "" {
		return errors.New("SSH server ListenAddress must be specified")
	}

	l, err := net.Listen("tcp", s.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.ListenAddress, err)
	}
	return s.Serve(ctx, l)
}

func (s *SSHServer) Serve(ctx context.Context, l net.Listener) error {
	server, err := s.newServer()
	if err != nil {
		l.Close()
		return err
	}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	err = server.Serve(l)
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}
