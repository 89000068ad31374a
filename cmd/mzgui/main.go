package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/1broseidon/mzgui/internal/cell"
	"github.com/1broseidon/mzgui/internal/config"
	"github.com/1broseidon/mzgui/internal/event"
	"github.com/1broseidon/mzgui/internal/logx"
	"github.com/1broseidon/mzgui/internal/platform"
	"github.com/1broseidon/mzgui/internal/window"
)

// frameInterval paces the event loop between polls.
const frameInterval = 16 * time.Millisecond

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runWindow(os.Args[2:]))
	case "snapshot":
		os.Exit(runSnapshot(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mzgui <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open a window showing the configured scene")
	fmt.Fprintln(w, "  snapshot            Render the configured scene to an image file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config init         Write the default configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'mzgui <command> --help' for command-specific options.")
}

// loadConfig loads path, or the standard location when path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}
	return config.LoadFromPath(path)
}

// printSourceList writes the loaded files and the file:line:col of every
// setting they define, as YAML comments so the output stays loadable.
func printSourceList(w io.Writer, res *config.LoadResult) {
	for _, f := range res.Files {
		fmt.Fprintf(w, "# loaded: %s\n", f)
	}
	paths := make([]string, 0, len(res.Sources))
	for p := range res.Sources {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		src := res.SourceOf(p)
		fmt.Fprintf(w, "# %s: %s:%d:%d\n", p, src.File, src.Line, src.Column)
	}
}

// setupLogging installs the process logger. Text output is used when
// stderr is a terminal unless the config forces a format.
func setupLogging(cfg config.LoggingConfig, override string) error {
	levelName := cfg.Level
	if override != "" {
		levelName = override
	}
	level, err := logx.ParseLevel(levelName)
	if err != nil {
		return err
	}

	text := term.IsTerminal(int(os.Stderr.Fd()))
	switch cfg.Format {
	case "text":
		text = true
	case "json":
		text = false
	}
	logx.Set(logx.New(os.Stderr, level, text))
	return nil
}

func runWindow(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/mzgui/config.yaml)")
	display := fs.String("display", "", "X11 display (default: config display, then $DISPLAY)")
	scene := fs.String("scene", "", "Scene to show (default: config scene)")
	logLevel := fs.String("log-level", "", "Override log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: mzgui run [--config PATH] [--display :0] [--scene NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Open a window and pump events until it is closed.")
		fmt.Fprintln(os.Stderr, "Escape or q closes the window.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	if err := setupLogging(cfg.Logging, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *scene != "" {
		cfg.Scene = *scene
	}
	root, err := buildScene(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	dpy := cfg.Display
	if *display != "" {
		dpy = *display
	}
	backend, err := platform.NewNative(dpy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	sys, err := window.Init(backend)
	if err != nil {
		backend.Close()
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sys.Shutdown()

	var win *window.Window
	handler := func(_ cell.Drawable, e event.Event) bool {
		logx.L().Debug("event", "event", e.String())
		switch e.Kind {
		case event.KeyDown:
			if e.Key == event.KeyEscape || e.Key == event.KeyQ {
				return handleQuit(win)
			}
		case event.Resize:
			if win != nil {
				win.Draw()
			}
		}
		return true
	}

	win, err = window.New(sys, cfg.Window.Name, cfg.Window.Size(), root, handler)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logx.L().Info("window open", "name", cfg.Window.Name, "scene", cfg.Scene, "size", win.Size().String())
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	for !win.IsClosed() {
		win.HandleEvents()
		select {
		case <-ctx.Done():
			logx.L().Info("interrupted, closing window")
			win.Close()
		case <-ticker.C:
		}
	}
	logx.L().Info("window closed")
	return 0
}

func handleQuit(w *window.Window) bool {
	if w != nil {
		w.Close()
	}
	return false
}

func buildScene(cfg *config.Config) (cell.Drawable, error) {
	spec, err := cfg.ActiveScene()
	if err != nil {
		return nil, err
	}
	root, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", cfg.Scene, err)
	}
	return root, nil
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  mzgui config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  mzgui config print [--path PATH] [--defaults] [--sources]")
		fmt.Fprintln(os.Stderr, "  mzgui config init [--path PATH] [--force]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/mzgui/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if _, err := buildScene(res.Config); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/mzgui/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printSources := fs.Bool("sources", false, "List loaded files and where each setting came from")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
			if *printSources {
				printSourceList(os.Stdout, res)
			}
		}
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "init":
		fs := flag.NewFlagSet("init", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: ~/.config/mzgui/config.yaml)")
		force := fs.Bool("force", false, "Overwrite an existing file")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		target := *path
		if target == "" {
			var err error
			target, err = config.DefaultConfigPath()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		if _, err := os.Stat(target); err == nil && !*force {
			fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", target)
			return 1
		}
		if err := config.DefaultConfig().SaveTo(target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("wrote %s\n", target)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
