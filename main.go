package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/giftrush/assets"
	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/fonts"
	"github.com/automoto/giftrush/network"
	"github.com/automoto/giftrush/scenes"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/automoto/giftrush/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
	Close()
	FirstPerson() bool
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(scene Scene) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scene,
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	envFile := flag.String("env", ".env", "dotenv file with SERVER_ADDR, SEND_INTERVAL, ...")
	tuning := flag.String("tuning", "", "optional YAML tuning overlay")
	addr := flag.String("addr", "", "server address (host:port), overrides SERVER_ADDR")
	name := flag.String("name", "", "player nickname")
	arena := flag.String("arena", "", "arena TMX path inside the assets")
	offline := flag.Bool("offline", false, "run without a server")
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		log.Printf("Warning: %v", err)
	}
	if *tuning != "" {
		if err := config.LoadTuning(*tuning); err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
	}

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettingsGlobal(saved)
	}

	// Flags win over env, tuning and saved settings
	if *addr != "" {
		config.Net.ServerAddr = *addr
	}
	if *name != "" {
		config.Net.PlayerName = *name
	}
	if *arena != "" {
		config.Arena.Path = *arena
	}
	if *offline {
		config.C.Offline = true
	}

	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	level, err := assets.LoadArena(config.Arena.Path)
	if err != nil {
		log.Printf("Warning: %v, using a flat floor", err)
	}
	ground := gamemath.NewGround(level, config.Arena.UnitsPerPixel, config.Arena.FloorHeight)
	log.Printf("[client] arena %s: %d platforms", config.Arena.Path, ground.PlatformCount())

	var client *network.Client
	if !config.C.Offline {
		client = network.NewClient(config.Net)
	}
	scene := scenes.NewNetworkedScene(level, ground, client)
	defer scene.Close()

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("Gift Rush")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)
	ebiten.SetTPS(config.C.TPS)

	if err := ebiten.RunGame(NewGame(scene)); err != nil {
		log.Printf("Game stopped: %v", err)
	}

	config.Camera.FirstPerson = scene.FirstPerson()
	if err := systems.SaveSettings(systems.CurrentSettings()); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
	}
}
