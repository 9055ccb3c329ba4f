package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/hearth/config"
	"github.com/plus3/hearth/game"
	"github.com/plus3/hearth/input"
	"github.com/plus3/hearth/logging"
	"github.com/plus3/hearth/platform/tty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	logPath := flag.String("log", "hearth-tty.log", "log file; the terminal is busy drawing")
	releaseAfter := flag.Duration("release-after", tty.DefaultReleaseAfter, "quiet time before a key counts as released")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	log, err := newFileLogger(cfg.Logging, *logPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	g, err := game.New(cfg, log)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableFocus()

	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	bg := cfg.Window.Background
	renderer := tty.NewRenderer(g.Storage(), w, h, color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: bg[3]})
	adapter := tty.NewAdapter(*releaseAfter)

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	var raw []input.RawEvent
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if key, isKey := ev.(*tcell.EventKey); isKey && key.Key() == tcell.KeyCtrlC {
				raw = append(raw, input.CloseRequested{})
				continue
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
			}
			raw = append(raw, adapter.Translate(ev, time.Now())...)

		case now := <-ticker.C:
			raw = append(raw, adapter.Expire(now)...)
			running := g.Step(raw)
			raw = raw[:0]
			renderer.Draw(screen)
			if !running {
				log.Info("stopping", zap.Uint64("frames", g.Time().Frame))
				return nil
			}
		}
	}
}

func newFileLogger(cfg config.LoggingConfig, path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	return logging.NewWithOutput(cfg, path)
}
