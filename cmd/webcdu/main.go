// Package main is the entry point for the webcdu diagram tool.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/saulojdsf/WebCDU-sub001/internal/app"
	"github.com/saulojdsf/WebCDU-sub001/internal/config"
	"github.com/saulojdsf/WebCDU-sub001/internal/notify"
	"github.com/saulojdsf/WebCDU-sub001/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath  string
	docPath     string
	scriptPath  string
	logLevel    string
	interactive bool
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	log := app.NewLogger(app.ParseLevel(cfg.Log.Level), os.Stderr)
	editor := app.New(cfg, app.WithLogger(log))

	if opts.configPath != "" {
		watcher, err := config.Watch(opts.configPath, editor.ApplyConfig,
			config.WithErrorHandler(func(err error) {
				log.Warn("config reload: %v", err)
			}))
		if err != nil {
			log.Warn("config watch unavailable: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	if opts.docPath != "" {
		if err := editor.LoadDocument(opts.docPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	engine := script.New(editor)
	defer engine.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		engine.Close()
		os.Exit(130)
	}()

	if opts.scriptPath != "" {
		if err := engine.RunFile(opts.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if opts.docPath != "" {
			if err := editor.SaveDocument(opts.docPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
		}
		return 0
	}

	if opts.interactive {
		return repl(editor, engine)
	}

	flag.Usage()
	return 2
}

// repl reads Lua statements from stdin, one chunk per line, until EOF.
func repl(editor *app.Editor, engine *script.Engine) int {
	sub := editor.Subscribe(func(ev notify.Event) {
		fmt.Printf("-- %s (undo: %t, redo: %t)\n", ev.Type, ev.CanUndo, ev.CanRedo)
	})
	defer sub.Unsubscribe()

	fmt.Printf("webcdu %s interactive shell. The cdu module is in scope; Ctrl-D exits.\n", version)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := engine.RunString(line); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading input: %v\n", err)
		return 1
	}
	fmt.Println()
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.docPath, "doc", "", "Diagram document to load (and save after a script run)")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script to execute")
	flag.StringVar(&opts.scriptPath, "s", "", "Lua script to execute (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.interactive, "i", false, "Run an interactive Lua shell")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "webcdu - control diagram editing engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: webcdu [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  webcdu -doc plant.json -script edits.lua   Apply a script to a document\n")
		fmt.Fprintf(os.Stderr, "  webcdu -i                                  Interactive shell\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("webcdu %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
			os.Exit(1)
		}
	}

	return opts
}
