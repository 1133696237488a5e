package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"tetrix/client"
	"tetrix/config"
	"tetrix/score"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[28;0H\n\r\033[?25h"
)

func main() {
	cfg, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		log.Fatal(err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("tetris needs to run in a terminal")
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	c, err := client.New(logger, &client.Options{
		NoGhost:  cfg.NoGhost,
		Tick:     cfg.Tick,
		Store:    score.NewFile(cfg.BestScoreFile),
		KeyRate:  cfg.KeyRate,
		KeyBurst: cfg.KeyBurst,
	})
	if err != nil {
		logger.Error("unable to start the client", slog.String("error", err.Error()))
		log.Fatal(err)
	}
	defer c.Close()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	logger.Info("tetris started", slog.String("best_score_file", cfg.BestScoreFile), slog.Duration("tick", cfg.Tick))
	c.Start()
}
