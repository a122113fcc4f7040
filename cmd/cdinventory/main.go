package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/tailored-agentic-units/cdinventory/console"
	"github.com/tailored-agentic-units/cdinventory/observability"
)

func main() {
	var (
		configFile = flag.String("config", "", "Path to config file, JSON or YAML (optional)")
		dataFile   = flag.String("file", "", "Path to the inventory file (overrides config)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	)
	flag.Parse()

	cfg := console.DefaultConfig()
	if *configFile != "" {
		loaded, err := console.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	if *dataFile != "" {
		cfg.Persist.Path = *dataFile
	}

	// Menu output owns stdout; events go to stderr, errors only unless verbose.
	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	observability.Register(observability.NameSlog, observability.NewSlogObserver(logger))

	c, err := console.New(&cfg)
	if err != nil {
		log.Fatalf("Failed to create console: %v", err)
	}

	if err := c.Run(context.Background()); err != nil {
		log.Fatalf("Console stopped: %v", err)
	}
}
