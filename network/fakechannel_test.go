package network

import (
	"errors"
	"sync"

	"github.com/automoto/giftrush/shared/messages"
)

// fakeChannel is an in-memory Channel. Tests drive its callbacks directly.
type fakeChannel struct {
	mu        sync.Mutex
	connected bool
	id        string
	sent      []messages.MovementUpdate
	sendErr   error

	connectH    listeners[func()]
	disconnectH listeners[func(error)]
	updateH     listeners[func(messages.CharactersUpdate)]
}

var _ Channel = (*fakeChannel)(nil)

func newFakeChannel(id string) *fakeChannel {
	return &fakeChannel{id: id}
}

func (f *fakeChannel) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeChannel) LocalID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id
}

func (f *fakeChannel) SendMovement(u messages.MovementUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return ErrNotConnected
	}
	f.sent = append(f.sent, u)
	return f.sendErr
}

func (f *fakeChannel) OnConnect(fn func()) func() { return f.connectH.add(fn) }

func (f *fakeChannel) OnDisconnect(fn func(error)) func() { return f.disconnectH.add(fn) }

func (f *fakeChannel) OnCharactersUpdate(fn func(messages.CharactersUpdate)) func() {
	return f.updateH.add(fn)
}

func (f *fakeChannel) connect() {
	f.mu.Lock()
	f.connected = true
	f.mu.Unlock()
	for _, fn := range f.connectH.snapshot() {
		fn()
	}
}

func (f *fakeChannel) disconnect() {
	f.mu.Lock()
	f.connected = false
	f.mu.Unlock()
	for _, fn := range f.disconnectH.snapshot() {
		fn(errors.New("connection reset"))
	}
}

func (f *fakeChannel) broadcast(u messages.CharactersUpdate) {
	for _, fn := range f.updateH.snapshot() {
		fn(u)
	}
}

func (f *fakeChannel) sentUpdates() []messages.MovementUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]messages.MovementUpdate(nil), f.sent...)
}

func (f *fakeChannel) subscribers() int {
	return f.connectH.len() + f.disconnectH.len() + f.updateH.len()
}
