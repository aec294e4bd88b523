package main

import (
	crand "crypto/rand"
	mrand "math/rand/v2"
	"sync"
	"time"
)

const roomCodeLength = 6

// Registry is the process-wide table of live rooms and of which room each
// connection currently belongs to.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	conns map[string]string

	newRand func() *mrand.Rand
}

func newRegistry(newRand func() *mrand.Rand) *Registry {
	if newRand == nil {
		newRand = newRoomRand
	}
	return &Registry{
		rooms:   make(map[string]*Room),
		conns:   make(map[string]string),
		newRand: newRand,
	}
}

// create registers an empty room under a fresh collision-checked code.
func (reg *Registry) create(language string) *Room {
	code := reg.newCode()

	room := newRoom(code, language, reg.newRand())

	reg.mu.Lock()
	reg.rooms[code] = room
	reg.mu.Unlock()

	return room
}

// newCode generates a crypto-random 6-letter room code and ensures it
// doesn't collide with a live room.
func (reg *Registry) newCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for {
		buf := make([]byte, roomCodeLength)
		if _, err := crand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, roomCodeLength)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		code := string(out)

		reg.mu.Lock()
		_, exists := reg.rooms[code]
		reg.mu.Unlock()

		if !exists {
			return code
		}
	}
}

func (reg *Registry) room(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[code]
}

// lookup resolves a room code, reporting ErrRoomNotFound for codes with no
// live room.
func (reg *Registry) lookup(code string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (reg *Registry) remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

func (reg *Registry) roomCount() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// bind records which room a connection belongs to, enabling cleanup on
// disconnect without the client resupplying the code.
func (reg *Registry) bind(connID, code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.conns[connID] = code
}

func (reg *Registry) unbind(connID string) (string, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	code, ok := reg.conns[connID]
	if ok {
		delete(reg.conns, connID)
	}
	return code, ok
}

func (reg *Registry) boundRoom(connID string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	code, ok := reg.conns[connID]
	if !ok {
		return nil, false
	}
	room, ok := reg.rooms[code]
	return room, ok
}

// reaperLoop periodically ends rooms that have been idle longer than the
// configured session timeout, disconnecting any remaining clients.
func (reg *Registry) reaperLoop(cfg *Config) {
	ticker := time.NewTicker(cfg.sessionTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-cfg.sessionTimeout)

		// Snapshot first: room locks are never taken while holding
		// the registry lock.
		reg.mu.Lock()
		live := make(map[string]*Room, len(reg.rooms))
		for code, room := range reg.rooms {
			live[code] = room
		}
		reg.mu.Unlock()

		for code, room := range live {
			room.mu.Lock()
			idle := room.lastActive.Before(cutoff)
			if !idle {
				room.mu.Unlock()
				continue
			}

			for _, c := range room.clients {
				c.closeSend()
				_ = c.conn.Close()
			}
			room.clients = make(map[string]*client)
			room.players = make(map[string]*Player)
			room.round = nil
			room.mu.Unlock()

			reg.remove(code)
			logf(cfg, "ROOMS: Reaped idle room %s", code)
		}
	}
}
