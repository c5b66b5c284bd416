package network

import "github.com/automoto/giftrush/shared/messages"

// Channel is the bidirectional message transport to the game server.
// Callbacks may run on transport goroutines. Each On* call returns the func
// that unsubscribes it.
type Channel interface {
	// Connected reports whether the server has accepted this client.
	Connected() bool
	// LocalID is the character id assigned by the server, empty until joined.
	LocalID() string
	// SendMovement queues one outbound update and must not block.
	SendMovement(update messages.MovementUpdate) error

	OnConnect(fn func()) (unsubscribe func())
	OnDisconnect(fn func(err error)) (unsubscribe func())
	OnCharactersUpdate(fn func(update messages.CharactersUpdate)) (unsubscribe func())
}
