package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/qnkhuat/blockterm/pkg"
	"github.com/qnkhuat/blockterm/pkg/audio"
	"github.com/qnkhuat/blockterm/pkg/config"
	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/gui"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

func main() {
	cfg, err := config.Load("blockterm", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("blockterm must be run in an interactive terminal")
	}

	theme, err := gui.LookupTheme(cfg.Theme)
	if err != nil {
		log.Fatal(err)
	}

	if err := pkg.InitLog(cfg.LogPath, "CLIENT: "); err != nil {
		log.Fatal(err)
	}
	log.Println("New client")

	nick := pkg.Nickname(cfg.Nick)

	sound := audio.NewSoundManager(cfg.Sound)
	if cfg.Sound {
		if err := sound.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
			sound.SetEnabled(false)
		}
	}
	defer sound.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := make(chan string, pkg.LogQueueSize)
	go pkg.HandleLogs(ctx, logs)

	var loop *game.Loop
	ui := gui.NewGUI(theme, nick, sound.Enabled(), func(a event.GameAction) {
		loop.Send(a)
	}, sound.Toggle)

	session := game.NewSession(
		game.WithSource(mino.NewRandomizer(cfg.Seed)),
		game.WithMatrix(cfg.Cells),
		game.WithRenderer(ui),
		game.WithSounder(sound),
		game.WithLogger(logs, cfg.LogLevel()),
	)
	loop = game.NewLoop(session)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc
		ui.Stop()
	}()

	go loop.Run(ctx)
	go ui.HandleDraw(ctx)

	start := time.Now()
	if err := ui.Run(); err != nil {
		log.Fatalf("failed to run: %v", err)
	}

	cancel()
	<-loop.Done()

	pkg.Summary(os.Stdout, nick, session.Snapshot(), time.Since(start))
	log.Println("Client stopped")
}
