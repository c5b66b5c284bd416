package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/giftrush/fonts"
	"github.com/automoto/giftrush/netplay"
	"github.com/automoto/giftrush/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudMargin   = 10
	hudBarWidth = 220
	hudLine     = 16
)

// HUDInfo is what DrawHUD shows.
type HUDInfo struct {
	Match      netcomponents.NetMatchData
	Connection string
	ServerName string
	Local      *netplay.RenderState
	Camera     netplay.CameraView
	Rejected   uint64
	Offline    bool
}

// DrawHUD renders the match timer, connection state and local character
// status in the top-left corner.
func DrawHUD(screen *ebiten.Image, info HUDInfo) {
	face := fonts.HUD.Get()

	vector.DrawFilledRect(screen,
		float32(hudMargin/2), float32(hudMargin/2),
		float32(hudBarWidth), float32(hudLine*5+hudMargin),
		color.RGBA{0, 0, 0, 140}, false)

	y := hudMargin + hudLine
	line := func(s string, clr color.Color) {
		text.Draw(screen, s, face, hudMargin, y, clr)
		y += hudLine
	}

	remain := int(info.Match.RemainRunningTime)
	line(fmt.Sprintf("%d:%02d  players %d", remain/60, remain%60, info.Match.Players), colorWhite)

	conn := info.Connection
	if info.Offline {
		conn = "offline"
	}
	connColor := colorLocal
	if conn != "joined" && !info.Offline {
		connColor = colorWarn
	}
	if info.ServerName != "" && !info.Offline {
		conn += " @ " + info.ServerName
	}
	line(conn, connColor)

	if info.Local != nil {
		line(fmt.Sprintf("gifts %d", info.Local.GiftCount), colorWhite)
		line(info.Local.Animation, colorDim)
	}
	line(cameraLabel(info.Camera.Mode), colorDim)

	if info.Rejected > 0 {
		text.Draw(screen, fmt.Sprintf("rejected snapshots %d", info.Rejected),
			fonts.HUDSmall.Get(), hudMargin, y+hudLine, colorWarn)
	}
}

// DrawBanner draws a centered message, used while no local character exists.
func DrawBanner(screen *ebiten.Image, msg string) {
	face := fonts.HUDBold.Get()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	bounds := text.BoundString(face, msg)
	text.Draw(screen, msg, face, (w-bounds.Dx())/2, h/2, colorWhite)
}
