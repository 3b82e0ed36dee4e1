package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gridfire/client/config"
	"github.com/gridfire/client/logging"
	"github.com/gridfire/client/scenes"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.Window.Width, config.Window.Height
}

func main() {
	addr := flag.String("addr", "", "server websocket URL, e.g. ws://localhost:8080/ws")
	flag.Parse()

	logger := logging.New(config.Network.LogFile)
	defer func() { _ = logger.Sync() }()

	if err := config.InitPersistence(); err != nil {
		logger.Warnw("persistence unavailable", "err", err)
	}

	serverAddr := config.Network.Address
	smoothing := true
	if saved, err := config.LoadSettings(); err == nil && saved != nil {
		if saved.ServerAddress != "" {
			serverAddr = saved.ServerAddress
		}
		smoothing = saved.Interpolation
	}
	if *addr != "" {
		serverAddr = *addr
		_ = config.SaveSettings(&config.SavedSettings{
			ServerAddress: serverAddr,
			Interpolation: smoothing,
		})
	}

	arena := scenes.NewArenaScene(logger, serverAddr, smoothing)
	defer arena.Dispose()

	ebiten.SetWindowSize(config.Window.Width, config.Window.Height)
	ebiten.SetWindowTitle(config.Window.Title)

	if err := ebiten.RunGame(&Game{scene: arena}); err != nil {
		log.Fatal(err)
	}
}
