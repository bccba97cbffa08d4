// This file maps CLI context to the tool's config struct and sets up logging.

package launcher

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"
)

// Config aggregates everything a command needs: where to read, where to
// write, and how to log.
type Config struct {
	Input   string
	Output  string
	Sep     string
	Logging LoggingConfig
}

type LoggingConfig struct {
	Verbosity int
	Format    string
}

// MakeConfig merges defaults with CLI flag overrides into a single config struct.
func MakeConfig(ctx *cli.Context) Config {
	cfg := Config{
		Input:  "-",
		Output: "-",
		Sep:    " ",
		Logging: LoggingConfig{
			Verbosity: 3,
			Format:    "text",
		},
	}

	if ctx.GlobalIsSet("in") {
		cfg.Input = ctx.GlobalString("in")
	}
	if ctx.GlobalIsSet("out") {
		cfg.Output = ctx.GlobalString("out")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.IsSet("sep") {
		cfg.Sep = ctx.String("sep")
	}
	return cfg
}

// makeLogger builds a logrus logger from the logging config: verbosity maps
// to a level (0=fatal .. 5=trace) and format picks the text or JSON formatter.
func makeLogger(cfg LoggingConfig) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr

	levels := []logrus.Level{
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
		logrus.DebugLevel,
		logrus.TraceLevel,
	}
	v := cfg.Verbosity
	if v < 0 {
		v = 0
	}
	if v >= len(levels) {
		v = len(levels) - 1
	}
	log.SetLevel(levels[v])

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{})
	}
	return log
}

// openInput resolves the input flag to a readable file ('-' means stdin).
func openInput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

// openOutput resolves the output flag to a writable file ('-' means stdout).
func openOutput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
