package messages

// JoinRequest is sent by a client after connecting to request joining a match.
type JoinRequest struct {
	Version    string
	PlayerName string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// CharacterID is the id the local player's Character carries in snapshots.
type JoinAccepted struct {
	CharacterID string
	ServerName  string
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
