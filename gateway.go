package main

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type client struct {
	id      string
	conn    *websocket.Conn
	send    chan any
	limiter *rate.Limiter

	// mu guards closed. The read pump of an evicted client stays live
	// until its socket closes, so sends and closeSend can race.
	mu     sync.Mutex
	closed bool
}

// closeSend ends the write pump. The disconnect path, broadcast eviction
// and the room reaper may race to close the same client.
func (c *client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.send)
}

// trySend queues a message for a single client, dropping it if the send
// buffer is full or the channel is already closed.
func (c *client) trySend(msg any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Gateway is the protocol boundary: it resolves rooms, checks host
// authority, invokes room operations under the room lock, and fans the
// results out to the room's connection group.
type Gateway struct {
	cfg  *Config
	reg  *Registry
	bank *WordBank
}

func newGateway(cfg *Config, reg *Registry, bank *WordBank) *Gateway {
	return &Gateway{
		cfg:  cfg,
		reg:  reg,
		bank: bank,
	}
}

// serveWS upgrades the connection, assigns it an opaque identity, and runs
// the read/write pumps.
func (g *Gateway) serveWS() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(g.cfg, "SERVE: Upgrade error from %s: %v", realIP(r), err)
			return
		}

		c := &client{
			id:      uuid.NewString(),
			conn:    conn,
			send:    make(chan any, 8),
			limiter: rate.NewLimiter(rate.Limit(10), 5),
		}

		go c.writePump()
		g.readPump(c)
	}
}

func (g *Gateway) readPump(c *client) {
	defer g.disconnect(c)

	for {
		var cmd ClientCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			return
		}

		if !c.limiter.Allow() {
			g.sendError(c, g.commandLanguage(cmd), codeRateLimited, msgRateLimited)
			continue
		}

		g.dispatch(c, cmd)
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (g *Gateway) dispatch(c *client, cmd ClientCommand) {
	switch cmd.Type {
	case "createRoom":
		g.handleCreateRoom(c, cmd)
	case "joinRoom":
		g.handleJoinRoom(c, cmd)
	case "updateCategories":
		g.handleUpdateCategories(c, cmd)
	case "setLanguage":
		g.handleSetLanguage(c, cmd)
	case "startGame":
		g.handleStartGame(c, cmd)
	case "endGame":
		g.handleEndGame(c, cmd)
	case "nextTurn":
		g.handleNextTurn(c, cmd)
	case "newRound":
		g.handleNewRound(c, cmd)
	case "getRoomState":
		g.handleRoomState(c, cmd)
	case "getCategories":
		g.handleGetCategories(c, cmd)
	default:
		// ignore unknown types
	}
}

// broadcastLocked assumes the room lock is held. Clients with a full send
// buffer are evicted; their write pump drains and closes the socket, and
// their read pump then runs the regular disconnect path.
func (g *Gateway) broadcastLocked(room *Room, msg any) {
	for id, c := range room.clients {
		if !c.trySend(msg) {
			delete(room.clients, id)
			c.closeSend()
		}
	}
}

func (g *Gateway) sendError(c *client, lang, code, key string) {
	c.trySend(ErrorMessage{
		Type:    "error",
		Code:    code,
		Message: localize(lang, key),
	})
}

// commandLanguage picks the display language for errors issued before a
// room is resolved.
func (g *Gateway) commandLanguage(cmd ClientCommand) string {
	if g.bank.HasLanguage(cmd.Language) {
		return cmd.Language
	}
	return g.cfg.defaultLanguage
}

func validPlayerName(name string) bool {
	n := len([]rune(name))
	return n >= 1 && n <= 20
}

func (g *Gateway) handleCreateRoom(c *client, cmd ClientCommand) {
	if _, bound := g.reg.boundRoom(c.id); bound {
		return
	}

	name := strings.TrimSpace(cmd.PlayerName)
	if !validPlayerName(name) {
		g.sendError(c, g.commandLanguage(cmd), codeInvalidName, msgInvalidName)
		return
	}

	room := g.reg.create(g.commandLanguage(cmd))

	room.mu.Lock()
	defer room.mu.Unlock()

	room.touch()
	_ = room.addPlayer(c.id, name)
	room.clients[c.id] = c
	g.reg.bind(c.id, room.code)

	c.trySend(RoomWelcomeMessage{
		Type:     "roomCreated",
		RoomCode: room.code,
		PlayerID: c.id,
		IsHost:   true,
	})
	g.broadcastLocked(room, PlayersUpdateMessage{
		Type:        "playersUpdate",
		Players:     room.playersInfo(),
		GameStarted: room.started(),
	})

	logf(g.cfg, "ROOMS: Player %q created room %s", name, room.code)
}

func (g *Gateway) handleJoinRoom(c *client, cmd ClientCommand) {
	if _, bound := g.reg.boundRoom(c.id); bound {
		return
	}

	lang := g.commandLanguage(cmd)

	name := strings.TrimSpace(cmd.PlayerName)
	if !validPlayerName(name) {
		g.sendError(c, lang, codeInvalidName, msgInvalidName)
		return
	}

	room, err := g.reg.lookup(strings.ToUpper(strings.TrimSpace(cmd.RoomCode)))
	if err != nil {
		g.sendError(c, lang, codeRoomNotFound, msgRoomNotFound)
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	room.touch()
	if err := room.addPlayer(c.id, name); err != nil {
		g.sendError(c, lang, codeGameInProgress, msgGameInProgress)
		return
	}
	room.clients[c.id] = c
	g.reg.bind(c.id, room.code)

	c.trySend(RoomWelcomeMessage{
		Type:     "roomJoined",
		RoomCode: room.code,
		PlayerID: c.id,
		IsHost:   false,
	})
	g.broadcastLocked(room, PlayersUpdateMessage{
		Type:        "playersUpdate",
		Players:     room.playersInfo(),
		GameStarted: room.started(),
	})

	logf(g.cfg, "ROOMS: Player %q joined room %s", name, room.code)
}

// memberRoom resolves a command's room and requires the requester to be on
// its roster. The room is returned locked.
func (g *Gateway) memberRoom(c *client, cmd ClientCommand) *Room {
	room, err := g.reg.lookup(strings.ToUpper(strings.TrimSpace(cmd.RoomCode)))
	if err != nil {
		g.sendError(c, g.commandLanguage(cmd), codeRoomNotFound, msgRoomNotFound)
		return nil
	}

	room.mu.Lock()
	if _, ok := room.players[c.id]; !ok {
		room.mu.Unlock()
		g.sendError(c, g.commandLanguage(cmd), codeRoomNotFound, msgRoomNotFound)
		return nil
	}

	room.touch()
	return room
}

func (g *Gateway) handleUpdateCategories(c *client, cmd ClientCommand) {
	room := g.memberRoom(c, cmd)
	if room == nil {
		return
	}
	defer room.mu.Unlock()

	if !room.isHost(c.id) {
		g.sendError(c, room.language, codeNotHost, msgOnlyHostCategories)
		return
	}

	room.setCategories(cmd.Categories)

	g.broadcastLocked(room, CategoriesUpdatedMessage{
		Type:                "categoriesUpdated",
		Categories:          room.selected,
		AvailableCategories: g.bank.Categories(room.language),
	})
}

func (g *Gateway) handleSetLanguage(c *client, cmd ClientCommand) {
	room := g.memberRoom(c, cmd)
	if room == nil {
		return
	}
	defer room.mu.Unlock()

	if !room.isHost(c.id) {
		g.sendError(c, room.language, codeNotHost, msgOnlyHostLanguage)
		return
	}

	if !g.bank.HasLanguage(cmd.Language) {
		logf(g.cfg, "GAMES: Ignoring unknown language %q for room %s", cmd.Language, room.code)
		return
	}

	room.setLanguage(cmd.Language)

	g.broadcastLocked(room, CategoriesUpdatedMessage{
		Type:                "categoriesUpdated",
		Categories:          room.selected,
		AvailableCategories: g.bank.Categories(room.language),
	})
}

func (g *Gateway) handleStartGame(c *client, cmd ClientCommand) {
	room := g.memberRoom(c, cmd)
	if room == nil {
		return
	}
	defer room.mu.Unlock()

	if !room.isHost(c.id) {
		g.sendError(c, room.language, codeNotHost, msgOnlyHostStart)
		return
	}

	info, err := room.start(g.bank)
	switch err {
	case nil:
	case ErrNotEnoughPlayers:
		g.sendError(c, room.language, codeInsufficientPlayers, msgMinPlayers)
		return
	case ErrGameInProgress:
		g.sendError(c, room.language, codeGameInProgress, msgGameInProgress)
		return
	default:
		logf(g.cfg, "GAMES: Start failed for room %s: %v", room.code, err)
		return
	}

	players := room.playersInfo()

	// The word is withheld from the imposter here, at the protocol
	// boundary.
	for id, member := range room.clients {
		isImposter := id == info.ImposterID

		var word *string
		if !isImposter {
			word = &info.Word
		}

		msg := GameStartedMessage{
			Type:                "gameStarted",
			IsImposter:          isImposter,
			Word:                word,
			Players:             players,
			GameStarted:         true,
			PlayerOrder:         info.Order,
			CurrentTurnPlayerID: info.FirstTurnID,
			CurrentPlayerIndex:  0,
		}

		if !member.trySend(msg) {
			delete(room.clients, id)
			member.closeSend()
		}
	}

	logf(g.cfg, "GAMES: Round started in room %s with %d players", room.code, len(players))
}

func (g *Gateway) handleEndGame(c *client, cmd ClientCommand) {
	room := g.memberRoom(c, cmd)
	if room == nil {
		return
	}
	defer room.mu.Unlock()

	if !room.isHost(c.id) {
		g.sendError(c, room.language, codeNotHost, msgOnlyHostEnd)
		return
	}

	reveal := room.end()
	if reveal == nil {
		return
	}

	g.broadcastLocked(room, GameEndedMessage{
		Type:         "gameEnded",
		ImposterID:   reveal.ImposterID,
		ImposterName: reveal.ImposterName,
		Word:         reveal.Word,
	})
	g.broadcastLocked(room, PlayersUpdateMessage{
		Type:        "playersUpdate",
		Players:     room.playersInfo(),
		GameStarted: false,
	})

	logf(g.cfg, "GAMES: Round ended in room %s", room.code)
}

func (g *Gateway) handleNextTurn(c *client, cmd ClientCommand) {
	room := g.memberRoom(c, cmd)
	if room == nil {
		return
	}
	defer room.mu.Unlock()

	if !room.isHost(c.id) {
		g.sendError(c, room.language, codeNotHost, msgOnlyHostTurn)
		return
	}

	if !room.started() {
		return
	}

	next := room.nextTurn()
	g.broadcastLocked(room, TurnUpdateMessage{
		Type:                "turnUpdate",
		CurrentTurnPlayerID: next,
		CurrentPlayerIndex:  room.turnIndex(),
	})
}

func (g *Gateway) handleNewRound(c *client, cmd ClientCommand) {
	room := g.memberRoom(c, cmd)
	if room == nil {
		return
	}
	defer room.mu.Unlock()

	if !room.isHost(c.id) {
		g.sendError(c, room.language, codeNotHost, msgOnlyHostRound)
		return
	}

	if !room.started() {
		return
	}

	order, first := room.reshuffle()
	g.broadcastLocked(room, RoundStartedMessage{
		Type:                "roundStarted",
		PlayerOrder:         order,
		CurrentTurnPlayerID: first,
		CurrentPlayerIndex:  0,
	})
}

func (g *Gateway) handleRoomState(c *client, cmd ClientCommand) {
	room := g.memberRoom(c, cmd)
	if room == nil {
		return
	}
	defer room.mu.Unlock()

	c.trySend(PlayersUpdateMessage{
		Type:        "playersUpdate",
		Players:     room.playersInfo(),
		GameStarted: room.started(),
	})
}

func (g *Gateway) handleGetCategories(c *client, cmd ClientCommand) {
	room := g.memberRoom(c, cmd)
	if room == nil {
		return
	}
	defer room.mu.Unlock()

	c.trySend(CategoriesUpdatedMessage{
		Type:                "categoriesUpdated",
		Categories:          room.selected,
		AvailableCategories: g.bank.Categories(room.language),
		CurrentLanguage:     room.language,
	})
}

// disconnect is the implicit removeParticipant command. It runs under the
// room lock like any other command, destroys the room when the roster
// empties, and ends the round with a reveal when the imposter left.
func (g *Gateway) disconnect(c *client) {
	_ = c.conn.Close()
	defer c.closeSend()

	code, ok := g.reg.unbind(c.id)
	if !ok {
		return
	}

	room := g.reg.room(code)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	delete(room.clients, c.id)

	room.touch()
	res := room.removePlayer(c.id)
	if !res.removed {
		return
	}

	if res.emptied {
		g.reg.remove(code)
		logf(g.cfg, "ROOMS: Destroyed empty room %s", code)
		return
	}

	g.broadcastLocked(room, PlayersUpdateMessage{
		Type:        "playersUpdate",
		Players:     room.playersInfo(),
		GameStarted: room.started(),
	})

	if res.reveal != nil {
		g.broadcastLocked(room, GameEndedMessage{
			Type:         "gameEnded",
			ImposterID:   res.reveal.ImposterID,
			ImposterName: res.reveal.ImposterName,
			Word:         res.reveal.Word,
			Reason:       localize(room.language, msgImposterDisconnected),
		})
		logf(g.cfg, "GAMES: Imposter left room %s, round revealed", code)
	}
}
