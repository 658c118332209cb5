package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hotelres/internal/frontdesk"
	"hotelres/pkg/logger"
)

func main() {
	log := logger.New(logger.Config{
		Level:   logger.INFO,
		Format:  logger.TEXT,
		Service: "frontdesk",
	})

	cfg, args, err := frontdesk.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal("Failed to parse configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := frontdesk.New(cfg, os.Stdout).Run(ctx, args); err != nil {
		if errors.Is(err, frontdesk.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		log.Fatal("Command failed", "error", err)
	}
}
