package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/mbelyaev/ferry/internal/buildinfo"
	"github.com/mbelyaev/ferry/internal/cli"
	"github.com/mbelyaev/ferry/internal/config"
	"github.com/mbelyaev/ferry/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}
