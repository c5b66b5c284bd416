package systems

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/automoto/giftrush/components"
	"github.com/automoto/giftrush/fonts"
	"github.com/automoto/giftrush/netplay"
	"github.com/automoto/giftrush/shared/gamemath"
	"github.com/automoto/giftrush/shared/leveldata"
	"github.com/automoto/giftrush/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorBackground = color.RGBA{24, 28, 36, 255}
	colorGrid       = color.RGBA{40, 46, 58, 255}
	colorPlatform   = color.RGBA{120, 140, 170, 255}
	colorLocal      = color.RGBA{80, 230, 120, 255}
	colorWhite      = color.RGBA{255, 255, 255, 255}
	colorDim        = color.RGBA{160, 160, 160, 255}
	colorWarn       = color.RGBA{240, 200, 60, 255}

	fallbackColors = []color.RGBA{
		{230, 90, 90, 255},
		{90, 150, 240, 255},
		{240, 170, 60, 255},
		{190, 110, 230, 255},
	}
)

const (
	pixelsPerUnit   = 14.0
	characterRadius = 6.0
)

// WorldView is what DrawWorld needs for one frame.
type WorldView struct {
	Characters    []netplay.RenderState
	Camera        netplay.CameraView
	Arena         *leveldata.ArenaData
	UnitsPerPixel float64
}

// projector maps world XZ onto the screen around the camera's look-at point
// with the camera's forward direction pointing up.
type projector struct {
	focus   mgl64.Vec3
	forward mgl64.Vec3
	right   mgl64.Vec3
	cx, cy  float64
}

func newProjector(cam netplay.CameraView, w, h int) projector {
	dir := cam.LookAt.Sub(cam.Position)
	yaw := gamemath.Heading(dir)
	if gamemath.GroundSpeed(dir) == 0 {
		yaw = 0
	}
	return projector{
		focus:   cam.LookAt,
		forward: gamemath.Forward(yaw),
		right:   gamemath.Right(yaw),
		cx:      float64(w) / 2,
		cy:      float64(h) / 2,
	}
}

func (p projector) project(pos mgl64.Vec3) (float32, float32) {
	d := pos.Sub(p.focus)
	d[1] = 0
	x := p.cx + d.Dot(p.right)*pixelsPerUnit
	y := p.cy - d.Dot(p.forward)*pixelsPerUnit
	return float32(x), float32(y)
}

// DrawWorld renders a top-down view of the arena and characters.
func DrawWorld(screen *ebiten.Image, view WorldView) {
	screen.Fill(colorBackground)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	p := newProjector(view.Camera, w, h)

	drawArena(screen, p, view.Arena, view.UnitsPerPixel)

	smallFont := fonts.HUDSmall.Get()
	colorIndex := 0
	for _, c := range view.Characters {
		fill, ok := parseColor(c.Color)
		if !ok {
			fill = fallbackColors[colorIndex%len(fallbackColors)]
			colorIndex++
		}
		if c.Transparent {
			fill.A = 110
		}

		x, y := p.project(c.Position)
		if c.Local {
			vector.StrokeCircle(screen, x, y, characterRadius+3, 2, colorLocal, true)
		}
		if c.Protected {
			vector.StrokeCircle(screen, x, y, characterRadius+6, 1, colorWarn, true)
		}
		if c.Kind == netconfig.KindGhost {
			vector.StrokeCircle(screen, x, y, characterRadius, 2, fill, true)
		} else {
			vector.DrawFilledCircle(screen, x, y, characterRadius, fill, true)
		}

		// Facing marker
		nose := c.Position.Add(gamemath.Forward(c.Yaw).Mul(characterRadius * 1.6 / pixelsPerUnit))
		nx, ny := p.project(nose)
		vector.StrokeLine(screen, x, y, nx, ny, 2, colorWhite, true)

		label := c.Nickname
		if label == "" {
			label = c.ID
		}
		if c.GiftCount > 0 {
			label += " x" + strconv.Itoa(c.GiftCount)
		}
		text.Draw(screen, label, smallFont, int(x)-len(label)*3, int(y)-int(characterRadius)-6, colorWhite)
		text.Draw(screen, c.State.String(), smallFont, int(x)-len(c.State.String())*3, int(y)+int(characterRadius)+12, colorDim)
	}
}

func drawArena(screen *ebiten.Image, p projector, arena *leveldata.ArenaData, upp float64) {
	if arena == nil || upp <= 0 {
		return
	}

	// Outline of the arena bounds
	bw, bh := float64(arena.MapWidth)*upp, float64(arena.MapHeight)*upp
	drawRect(screen, p, 0, 0, bw, bh, 0, colorGrid, 1)

	for _, pl := range arena.Platforms {
		drawRect(screen, p, pl.X*upp, pl.Y*upp, pl.W*upp, pl.H*upp, pl.Top, colorPlatform, 2)
	}
}

func drawRect(screen *ebiten.Image, p projector, x, z, w, d, y float64, clr color.Color, width float32) {
	corners := [4]mgl64.Vec3{
		{x, y, z},
		{x + w, y, z},
		{x + w, y, z + d},
		{x, y, z + d},
	}
	for i := range corners {
		x0, y0 := p.project(corners[i])
		x1, y1 := p.project(corners[(i+1)%len(corners)])
		vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
	}
}

// parseColor reads "#rrggbb" or "rrggbb".
func parseColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
}

// cameraLabel is shown in the HUD.
func cameraLabel(mode components.CameraMode) string {
	return "view: " + mode.String()
}
