package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qnkhuat/blockterm/pkg"
	"github.com/qnkhuat/blockterm/pkg/config"
	"github.com/qnkhuat/blockterm/pkg/gui"
)

func main() {
	cfg, err := config.Load("blockterm-server", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if cfg.SSHAddress == "" && cfg.WebAddress == "" {
		log.Fatal("nothing to serve: set --listen-ssh and/or --listen-web")
	}

	theme, err := gui.LookupTheme(cfg.Theme)
	if err != nil {
		log.Fatal(err)
	}

	if err := pkg.InitLog(cfg.LogPath, "SERVER: "); err != nil {
		log.Fatal(err)
	}
	log.Println("Server started")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logs := make(chan string, pkg.LogQueueSize)
	go pkg.HandleLogs(ctx, logs)

	errs := make(chan error, 2)
	servers := 0

	if cfg.SSHAddress != "" {
		s := &pkg.SSHServer{
			ListenAddress: cfg.SSHAddress,
			ClientBinary:  cfg.ClientBinary,
			HostKeyFile:   cfg.HostKeyFile,
			Args:          cfg.ClientArgs(),
		}

		servers++
		go func() { errs <- s.ListenAndServe(ctx) }()
		pkg.Banner(os.Stdout, "ssh", cfg.SSHAddress)
	}

	if cfg.WebAddress != "" {
		w := pkg.NewWebServer(cfg.WebAddress, theme)
		w.Seed = cfg.Seed
		w.Matrix = cfg.Cells
		w.Logs = logs
		w.LogLevel = cfg.LogLevel()

		servers++
		go func() { errs <- w.ListenAndServe(ctx) }()
		pkg.Banner(os.Stdout, "web", cfg.WebAddress)
	}

	// Wait for a terminate signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGINT,
		syscall.SIGTERM)
	go func() {
		<-sigc
		log.Println("Shutting down")
		cancel()
	}()

	for i := 0; i < servers; i++ {
		if err := <-errs; err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	}
	log.Println("Server stopped")
}
