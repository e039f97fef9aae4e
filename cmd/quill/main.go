// Package main is the entry point for the Quill editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/plugin/lua"
	"github.com/dshills/quill/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	configPath string
	logLevel   string
	logFile    string
	script     string
	readOnly   bool
	path       string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if cli.logLevel != "" {
		cfg.Logging.Level = cli.logLevel
	}
	if cli.logFile != "" {
		cfg.Logging.File = cli.logFile
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := openLogger(cfg, cli.script != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	opts := app.Options{
		Path:     cli.path,
		Config:   cfg,
		ReadOnly: cli.readOnly,
		Logger:   logger,
	}

	if cli.script != "" {
		return runScript(opts, cli.script)
	}
	return runInteractive(opts, cli.configPath)
}

// openLogger logs to the configured file. A script run has stderr to
// itself, so without a file it logs there instead.
func openLogger(cfg *config.Config, scripted bool) (*app.Logger, func() error, error) {
	if scripted && cfg.Logging.File == "" {
		lc := app.DefaultLoggerConfig()
		lc.Level = app.ParseLogLevel(cfg.Logging.Level)
		return app.NewLogger(lc), func() error { return nil }, nil
	}
	return app.OpenLogger(cfg.Logging)
}

func runInteractive(opts app.Options, configPath string) int {
	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	opts.Backend = term
	opts.ConfigPath = configPath

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runScript(opts app.Options, script string) int {
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	runner, err := lua.NewRunner(application.Engine())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer runner.Close()

	if err := runner.RunFile(script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if application.Engine().Modified() {
		application.Logger().Warn("script left unsaved changes in %q", opts.Path)
	}
	return 0
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&cli.configPath, "config", config.DefaultPath(), "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&cli.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&cli.logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&cli.script, "script", "", "Run a Lua script against the file and exit")
	flag.StringVar(&cli.script, "s", "", "Run a Lua script (shorthand)")
	flag.BoolVar(&cli.readOnly, "readonly", false, "Open the file in read-only mode")
	flag.BoolVar(&cli.readOnly, "R", false, "Open the file in read-only mode (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quill - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill                       Open a scratch buffer\n")
		fmt.Fprintf(os.Stderr, "  quill notes.txt             Open a file\n")
		fmt.Fprintf(os.Stderr, "  quill -R notes.txt          Open a file read-only\n")
		fmt.Fprintf(os.Stderr, "  quill -s fix.lua notes.txt  Apply a script and exit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Quill %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		cli.path = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: quill edits one file at a time\n")
		os.Exit(2)
	}

	return cli
}
