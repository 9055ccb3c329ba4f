package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/hearth/config"
	"github.com/plus3/hearth/ecs/debugui"
	debugui_ebiten "github.com/plus3/hearth/ecs/debugui/ebiten"
	"github.com/plus3/hearth/game"
	"github.com/plus3/hearth/logging"
	"github.com/plus3/hearth/platform/ebitenplatform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// window adapts the world to ebiten.Game.
type window struct {
	world    *game.Game
	poller   *ebitenplatform.Poller
	renderer *ebitenplatform.Renderer
	imgui    *debugui_ebiten.ImguiBackend // nil unless debug panels are on
	width    int
	height   int
}

func (w *window) step() error {
	if !w.world.Step(w.poller.Poll()) {
		return ebiten.Termination
	}
	return nil
}

func (w *window) Update() error {
	if w.imgui != nil {
		return w.imgui.Frame(w.step)
	}
	return w.step()
}

func (w *window) Draw(screen *ebiten.Image) {
	w.renderer.Draw(screen)
	if w.imgui != nil {
		w.imgui.Overlay(screen)
	}
}

func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w.imgui != nil {
		w.imgui.Layout(outsideWidth, outsideHeight)
	}
	return w.width, w.height
}

func run() error {
	configPath := flag.String("config", "", "path to a .toml or .yaml config file")
	debug := flag.Bool("debug", false, "show the ImGui debug panels (overrides debug.imgui)")
	flag.Parse()

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *debug {
		cfg.Debug.ImGui = true
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	w := &window{width: cfg.Window.Width, height: cfg.Window.Height}

	var opts []game.Option
	var panels *debugui.Panels
	if cfg.Debug.ImGui {
		w.imgui = debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		panels = debugui.NewPanels()
		opts = append(opts, game.WithPlugin(panels))
	}

	g, err := game.New(cfg, log, opts...)
	if err != nil {
		return err
	}
	if panels != nil {
		panels.Attach(g)
	}

	bg := cfg.Window.Background
	w.world = g
	w.poller = ebitenplatform.NewPoller(ebitenplatform.Live{})
	w.renderer = ebitenplatform.NewRenderer(g.Storage(), color.RGBA{R: bg[0], G: bg[1], B: bg[2], A: bg[3]})

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(cfg.Sim.TPS)

	log.Info("starting",
		zap.String("title", cfg.Window.Title),
		zap.Int("tps", cfg.Sim.TPS),
		zap.Bool("imgui", cfg.Debug.ImGui),
	)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	log.Info("stopping", zap.Uint64("frames", g.Time().Frame))
	return nil
}
