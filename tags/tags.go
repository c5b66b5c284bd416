package tags

import "github.com/yohamta/donburi"

var (
	Character = donburi.NewTag().SetName("Character")
	Local     = donburi.NewTag().SetName("Local")
	Remote    = donburi.NewTag().SetName("Remote")
)
