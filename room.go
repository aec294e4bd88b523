package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sort"
	"sync"
	"time"
)

// Phase is the round status of a room. A reveal is momentary: end
// announces it in a gameEnded event and the room is immediately back in
// the lobby, so only lobby and active exist as states.
type Phase string

const (
	PhaseLobby  Phase = "lobby"
	PhaseActive Phase = "active"
)

// Player is one roster entry, owned exclusively by its Room.
type Player struct {
	ID     string
	Name   string
	IsHost bool

	joinSeq uint64
}

// roundState exists only while a round is running. Keeping the per-round
// fields behind a single pointer means a lobby room cannot carry a stale
// word, imposter or turn order.
type roundState struct {
	word       string
	imposterID string
	order      []string
	turn       int
}

// StartInfo is the outcome of a successful round start. The word is
// withheld from the imposter by the caller, not here.
type StartInfo struct {
	Word        string
	ImposterID  string
	Order       []string
	FirstTurnID string
}

// Reveal is the end-of-round disclosure sent to every room member.
type Reveal struct {
	ImposterID   string
	ImposterName string
	Word         string
	ByDisconnect bool
}

// removalResult describes everything a caller must react to after a
// participant is removed.
type removalResult struct {
	removed   bool
	emptied   bool
	newHostID string
	reveal    *Reveal
}

type Room struct {
	// mu serializes every validate-mutate-broadcast sequence for this
	// room, disconnects included.
	mu sync.Mutex

	code       string
	language   string
	selected   []string
	players    map[string]*Player
	clients    map[string]*client
	round      *roundState
	nextSeq    uint64
	createdAt  time.Time
	lastActive time.Time

	rng *rand.Rand
}

func newRoom(code, language string, rng *rand.Rand) *Room {
	now := time.Now()
	return &Room{
		code:       code,
		language:   language,
		players:    make(map[string]*Player),
		clients:    make(map[string]*client),
		createdAt:  now,
		lastActive: now,
		rng:        rng,
	}
}

// newRoomRand seeds a per-room source from crypto/rand.
func newRoomRand() *rand.Rand {
	var buf [16]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(buf[:8]),
		binary.LittleEndian.Uint64(buf[8:]),
	))
}

func (r *Room) touch() {
	r.lastActive = time.Now()
}

func (r *Room) phase() Phase {
	if r.round != nil {
		return PhaseActive
	}
	return PhaseLobby
}

func (r *Room) started() bool {
	return r.round != nil
}

func (r *Room) hostID() string {
	for _, p := range r.players {
		if p.IsHost {
			return p.ID
		}
	}
	return ""
}

func (r *Room) isHost(id string) bool {
	p, ok := r.players[id]
	return ok && p.IsHost
}

func (r *Room) isImposter(id string) bool {
	return r.round != nil && r.round.imposterID == id
}

// rosterIDs returns participant ids in join order.
func (r *Room) rosterIDs() []string {
	ids := make([]string, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.players[ids[i]].joinSeq < r.players[ids[j]].joinSeq
	})
	return ids
}

// addPlayer adds a participant to the roster. The first participant of an
// empty room becomes host. Joins are rejected while a round is running.
func (r *Room) addPlayer(id, name string) error {
	if r.round != nil {
		return ErrGameInProgress
	}

	r.nextSeq++
	r.players[id] = &Player{
		ID:      id,
		Name:    name,
		IsHost:  len(r.players) == 0,
		joinSeq: r.nextSeq,
	}
	return nil
}

// removePlayer drops a participant. Host status transfers to the remaining
// participant with the lowest join sequence. If the imposter leaves
// mid-round, the round ends with a disconnect reveal.
func (r *Room) removePlayer(id string) removalResult {
	p, ok := r.players[id]
	if !ok {
		return removalResult{}
	}

	delete(r.players, id)
	res := removalResult{removed: true}

	if len(r.players) == 0 {
		r.round = nil
		res.emptied = true
		return res
	}

	if p.IsHost {
		var oldest *Player
		for _, candidate := range r.players {
			if oldest == nil || candidate.joinSeq < oldest.joinSeq {
				oldest = candidate
			}
		}
		oldest.IsHost = true
		res.newHostID = oldest.ID
	}

	if r.round != nil {
		if r.round.imposterID == id {
			res.reveal = &Reveal{
				ImposterID:   id,
				ImposterName: p.Name,
				Word:         r.round.word,
				ByDisconnect: true,
			}
			r.round = nil
		} else {
			r.dropFromOrder(id)
		}
	}

	return res
}

// dropFromOrder keeps the turn order a permutation of the roster after a
// mid-round departure, preserving whose turn it is where possible.
func (r *Room) dropFromOrder(id string) {
	order := r.round.order
	idx := -1
	for i, pid := range order {
		if pid == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}

	r.round.order = append(order[:idx], order[idx+1:]...)
	if idx < r.round.turn {
		r.round.turn--
	}
	if r.round.turn >= len(r.round.order) {
		r.round.turn = 0
	}
}

func (r *Room) setCategories(ids []string) {
	r.selected = ids
}

func (r *Room) setLanguage(lang string) {
	r.language = lang
}

// start begins a round: resolves the selected categories against the
// room's language (falling back to the full catalog), draws a word and an
// imposter uniformly at random, and shuffles a fresh turn order.
func (r *Room) start(bank *WordBank) (*StartInfo, error) {
	if r.round != nil {
		return nil, ErrGameInProgress
	}
	if len(r.players) < 3 {
		return nil, ErrNotEnoughPlayers
	}

	words := bank.Words(r.language, r.selected)
	if len(words) == 0 {
		return nil, ErrNoWordsAvailable
	}

	ids := r.rosterIDs()
	word := words[r.rng.IntN(len(words))]
	imposterID := ids[r.rng.IntN(len(ids))]
	order := r.shuffled(ids)

	r.round = &roundState{
		word:       word,
		imposterID: imposterID,
		order:      order,
		turn:       0,
	}

	return &StartInfo{
		Word:        word,
		ImposterID:  imposterID,
		Order:       order,
		FirstTurnID: order[0],
	}, nil
}

// shuffled returns a Fisher-Yates permutation of ids without mutating the
// input.
func (r *Room) shuffled(ids []string) []string {
	order := make([]string, len(ids))
	copy(order, ids)
	for i := len(order) - 1; i > 0; i-- {
		j := r.rng.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// end reveals the imposter and the word, then returns the room to the
// lobby. Returns nil when no round is running.
func (r *Room) end() *Reveal {
	if r.round == nil {
		return nil
	}

	reveal := &Reveal{
		ImposterID: r.round.imposterID,
		Word:       r.round.word,
	}
	if p, ok := r.players[r.round.imposterID]; ok {
		reveal.ImposterName = p.Name
	}

	r.round = nil
	return reveal
}

// turnIndex reports the current position in the turn order.
func (r *Room) turnIndex() int {
	if r.round == nil {
		return 0
	}
	return r.round.turn
}

// currentTurnID reports whose turn it is, or "" outside a round.
func (r *Room) currentTurnID() string {
	if r.round == nil || len(r.round.order) == 0 {
		return ""
	}
	return r.round.order[r.round.turn]
}

// nextTurn advances the turn index, wrapping past the end of the order.
func (r *Room) nextTurn() string {
	if r.round == nil || len(r.round.order) == 0 {
		return ""
	}
	r.round.turn = (r.round.turn + 1) % len(r.round.order)
	return r.round.order[r.round.turn]
}

// reshuffle regenerates the turn order for a new round of the same game
// and resets the turn index.
func (r *Room) reshuffle() ([]string, string) {
	if r.round == nil {
		return nil, ""
	}
	r.round.order = r.shuffled(r.rosterIDs())
	r.round.turn = 0
	return r.round.order, r.round.order[0]
}

// playersInfo snapshots the roster in join order for broadcasts.
func (r *Room) playersInfo() []PlayerInfo {
	infos := make([]PlayerInfo, 0, len(r.players))
	for _, id := range r.rosterIDs() {
		p := r.players[id]
		infos = append(infos, PlayerInfo{
			ID:     p.ID,
			Name:   p.Name,
			IsHost: p.IsHost,
		})
	}
	return infos
}
