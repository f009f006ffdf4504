package main

import (
	"flag"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/agusespa/tickduel/pkg/config"
)

type options struct {
	configFile  string
	logLevel    string
	showHelp    bool
	showVersion bool

	name1      string
	name2      string
	vitality   string
	speed      string
	strength   string
	objectives string
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("tickduel", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "Path to an optional JSON configuration file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.showHelp, "help", false, "Show help message")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.StringVar(&opts.name1, "name1", config.DefaultPlayer1, "Name of player 1")
	fs.StringVar(&opts.name2, "name2", config.DefaultPlayer2, "Name of player 2")
	fs.StringVar(&opts.vitality, "vitality", strconv.Itoa(config.DefaultVitality), "Starting vitality for both players")
	fs.StringVar(&opts.speed, "speed", strconv.Itoa(config.DefaultSpeed), "Starting speed for both players (ms per tick)")
	fs.StringVar(&opts.strength, "strength", strconv.Itoa(config.DefaultStrength), "Starting strength for both players")
	fs.StringVar(&opts.objectives, "objectives", strconv.Itoa(config.DefaultObjectives), "Number of targets per turn")
	return fs
}

// applyFlags copies every flag the user set explicitly onto cfg. Numbers that
// do not parse are logged and the current value is kept.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config, log zerolog.Logger) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name1":
			cfg.Player1 = opts.name1
		case "name2":
			cfg.Player2 = opts.name2
		case "vitality":
			cfg.Vitality = parseUint(log, "vitality", opts.vitality, cfg.Vitality)
		case "speed":
			cfg.Speed = parseUint(log, "speed", opts.speed, cfg.Speed)
		case "strength":
			cfg.Strength = parseUint(log, "strength", opts.strength, cfg.Strength)
		case "objectives":
			cfg.Objectives = int(parseUint(log, "objectives", opts.objectives, uint32(cfg.Objectives)))
		case "log-level":
			cfg.LogLevel = opts.logLevel
		}
	})
}

func parseUint(log zerolog.Logger, name, raw string, fallback uint32) uint32 {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		log.Error().Str("flag", name).Str("value", raw).Uint32("using", fallback).Msg("invalid value")
		return fallback
	}
	return uint32(v)
}
