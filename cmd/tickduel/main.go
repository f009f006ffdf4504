package main

import (
	"fmt"
	"os"

	"github.com/agusespa/tickduel/internal/game"
	"github.com/agusespa/tickduel/internal/logging"
	"github.com/agusespa/tickduel/internal/ui"
	"github.com/agusespa/tickduel/pkg/config"
)

var version = "dev"

func main() {
	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if opts.showVersion {
		fmt.Printf("tickduel version %s\n", version)
		return
	}

	fmt.Println("")
	fmt.Println("==========================")
	fmt.Println(" Tickduel Counter Showdown ")
	fmt.Println("==========================")
	fmt.Println("")

	if opts.showHelp {
		fmt.Println("Tickduel - stop the live counter as close to each target as you can")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  %s [options]\n", os.Args[0])
		fmt.Println()
		fmt.Println("Options:")
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Printf("  %s                                # Play with the default settings\n", os.Args[0])
		fmt.Printf("  %s --name1 Ada --name2 Grace      # Name both players\n", os.Args[0])
		fmt.Printf("  %s --speed 30 --objectives 3      # Faster counter, fewer targets\n", os.Args[0])
		fmt.Printf("  %s --config tickduel.json         # Load settings from a file\n", os.Args[0])
		fmt.Println()
		return
	}

	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.LoadConfig(opts.configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to load config from %s: %v\n", opts.configFile, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logging.Stderr(level)

	applyFlags(fs, &opts, cfg, log)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	console := ui.Stdio()
	for {
		match := game.New(cfg, console, game.WithLogger(log))
		again, err := match.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Game aborted: %v\n", err)
			os.Exit(1)
		}
		if !again {
			return
		}
	}
}
