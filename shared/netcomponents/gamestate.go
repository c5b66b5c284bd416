package netcomponents

import "github.com/yohamta/donburi"

// NetMatchData mirrors the match-wide values carried by each snapshot.
type NetMatchData struct {
	RemainRunningTime float64 // Seconds left in the match
	Players           int
}

var NetMatch = donburi.NewComponentType[NetMatchData]()
