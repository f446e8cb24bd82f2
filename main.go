// main.go - stompchain entry point: wiring, signal handling, control server

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

func main() {
	cfg, err := ParseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	configureLogging(cfg.LogLevel)
	printBanner()

	engine := NewEngine(cfg.SampleRate, cfg.BufferSize)
	if err := engine.Initialize(cfg.Driver, cfg.SampleRate, cfg.BufferSize); err != nil {
		log.WithError(err).Fatal("failed to initialize audio driver")
	}
	log.WithFields(log.Fields{
		"driver":  engine.ActiveDriverName(),
		"latency": fmt.Sprintf("%.1fms", engine.Latency()),
	}).Info("engine ready")

	if cfg.Preset != "" {
		if err := LoadPreset(PresetDir, cfg.Preset, engine.Pipeline().Chain(), cfg.SampleRate); err != nil {
			log.WithError(err).Warn("failed to load startup preset")
		}
	}

	dispatcher := NewDispatcher(engine)
	server := NewControlServer(cfg.ControlAddr, dispatcher)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stop := make(chan struct{})
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.ListenAndServe()
	})
	group.Go(func() error {
		server.PushStatsLoop(stop)
		return nil
	})

	if err := engine.Start(); err != nil {
		log.WithError(err).Fatal("failed to start engine")
	}

	<-groupCtx.Done()
	log.Info("shutting down")

	close(stop)
	_ = server.Shutdown()
	_ = engine.Shutdown()

	if err := group.Wait(); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
}

func printBanner() {
	colored := term.IsTerminal(int(os.Stdout.Fd()))
	title := "stompchain"
	if colored {
		fmt.Println("\033[36m" + title + "\033[0m - real-time guitar effects processor")
	} else {
		fmt.Println(title + " - real-time guitar effects processor")
	}
}
