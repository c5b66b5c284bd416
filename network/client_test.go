package network

import (
	"errors"
	"testing"
	"time"

	"github.com/automoto/giftrush/config"
	"github.com/automoto/giftrush/shared/messages"
)

func joinedClient(queue int) *Client {
	c := NewClient(config.NetConfig{
		ServerAddr:        "localhost:0",
		OutboundQueue:     queue,
		ReconnectInterval: time.Second,
	})
	c.setState(StateJoinedGame)
	return c
}

func update(id string) messages.MovementUpdate {
	return messages.MovementUpdate{Character: messages.CharacterState{ID: id}}
}

func TestSendMovementRequiresJoin(t *testing.T) {
	c := NewClient(config.NetConfig{OutboundQueue: 2, ReconnectInterval: time.Second})
	if err := c.SendMovement(update("a")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("SendMovement before join = %v, want ErrNotConnected", err)
	}
	if c.Connected() {
		t.Error("new client must not report connected")
	}
}

func TestSendMovementLatestWins(t *testing.T) {
	c := joinedClient(2)

	for _, id := range []string{"1", "2", "3"} {
		if err := c.SendMovement(update(id)); err != nil {
			t.Fatalf("SendMovement(%s): %v", id, err)
		}
	}

	var got []string
	for len(c.outbound) > 0 {
		got = append(got, (<-c.outbound).Character.ID)
	}
	if len(got) != 2 || got[0] != "2" || got[1] != "3" {
		t.Errorf("queued = %v, want [2 3]", got)
	}
}

func TestClientStateString(t *testing.T) {
	if StateJoinedGame.String() != "joined" || ClientState(42).String() != "unknown" {
		t.Error("unexpected state names")
	}
}

func TestClientSubscriptions(t *testing.T) {
	c := joinedClient(1)
	unsub := c.OnCharactersUpdate(func(messages.CharactersUpdate) {})
	c.OnConnect(func() {})
	if c.updateH.len() != 1 || c.connectH.len() != 1 {
		t.Fatal("handlers not registered")
	}
	unsub()
	unsub()
	if c.updateH.len() != 0 {
		t.Error("unsubscribe did not remove the handler")
	}
}

func TestClientDisconnect(t *testing.T) {
	c := joinedClient(1)
	c.Disconnect()

	if c.State() != StateDisconnected || c.Connected() {
		t.Fatalf("state after Disconnect = %s, want disconnected", c.State())
	}
	if err := c.SendMovement(update("a")); !errors.Is(err, ErrNotConnected) {
		t.Errorf("SendMovement after Disconnect = %v, want ErrNotConnected", err)
	}
	c.Disconnect()
}
