package main

import (
	"encoding/json"
	"math/rand/v2"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readTimeout = 2 * time.Second

// ---------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------

// startTestServer starts a gateway on an httptest server with a seeded
// random source.
func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &Config{defaultLanguage: "de"}
	reg := newRegistry(func() *rand.Rand {
		return rand.New(rand.NewPCG(11, 13))
	})
	gw := newGateway(cfg, reg, defaultWordBank)

	mux := httprouter.New()
	mux.GET("/ws", gw.serveWS())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// wsDial connects to the test gateway and returns the connection.
func wsDial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

func sendCmd(t *testing.T, conn *websocket.Conn, cmd ClientCommand) {
	t.Helper()
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

// readMessage reads and parses one server message within the timeout.
func readMessage(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	return msg
}

// readUntil discards messages until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]any {
	t.Helper()

	for i := 0; i < 20; i++ {
		msg := readMessage(t, conn)
		if msg["type"] == msgType {
			return msg
		}
	}
	t.Fatalf("no %q message received", msgType)
	return nil
}

// createRoom dials a connection, creates a room and returns the connection
// with its room code and assigned identity.
func createRoom(t *testing.T, srv *httptest.Server, name, language string) (*websocket.Conn, string, string) {
	t.Helper()

	conn := wsDial(t, srv)
	sendCmd(t, conn, ClientCommand{Type: "createRoom", PlayerName: name, Language: language})

	msg := readUntil(t, conn, "roomCreated")
	code, _ := msg["roomCode"].(string)
	playerID, _ := msg["playerId"].(string)
	require.Len(t, code, roomCodeLength)
	require.NotEmpty(t, playerID)
	require.Equal(t, true, msg["isHost"])

	return conn, code, playerID
}

// joinRoom dials a connection and joins an existing room.
func joinRoom(t *testing.T, srv *httptest.Server, code, name, language string) (*websocket.Conn, string) {
	t.Helper()

	conn := wsDial(t, srv)
	sendCmd(t, conn, ClientCommand{Type: "joinRoom", RoomCode: code, PlayerName: name, Language: language})

	msg := readUntil(t, conn, "roomJoined")
	require.Equal(t, code, msg["roomCode"])
	require.Equal(t, false, msg["isHost"])
	playerID, _ := msg["playerId"].(string)
	require.NotEmpty(t, playerID)

	return conn, playerID
}

// ---------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------

func TestCreateRoomFlow(t *testing.T) {
	srv := startTestServer(t)

	conn, _, _ := createRoom(t, srv, "Alice", "en")

	update := readUntil(t, conn, "playersUpdate")
	players, ok := update["players"].([]any)
	require.True(t, ok)
	require.Len(t, players, 1)

	first, ok := players[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", first["name"])
	assert.Equal(t, true, first["isHost"])
	assert.Equal(t, false, update["gameStarted"])
}

func TestJoinBroadcastsRoster(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "en")
	joinRoom(t, srv, code, "Bob", "en")

	for i := 0; i < 20; i++ {
		update := readUntil(t, host, "playersUpdate")
		if players, ok := update["players"].([]any); ok && len(players) == 2 {
			return
		}
	}
	t.Fatal("host never saw the two-player roster")
}

func TestJoinUnknownRoomRejected(t *testing.T) {
	srv := startTestServer(t)

	conn := wsDial(t, srv)
	sendCmd(t, conn, ClientCommand{Type: "joinRoom", RoomCode: "ZZZZZZ", PlayerName: "Bob", Language: "en"})

	msg := readUntil(t, conn, "error")
	assert.Equal(t, codeRoomNotFound, msg["code"])
	assert.Equal(t, "Room not found", msg["message"])
}

func TestJoinRejectedOnceRoundStarted(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "en")
	joinRoom(t, srv, code, "Bob", "en")
	joinRoom(t, srv, code, "Carol", "en")

	sendCmd(t, host, ClientCommand{Type: "startGame", RoomCode: code})
	readUntil(t, host, "gameStarted")

	late := wsDial(t, srv)
	sendCmd(t, late, ClientCommand{Type: "joinRoom", RoomCode: code, PlayerName: "Dave", Language: "en"})

	msg := readUntil(t, late, "error")
	assert.Equal(t, codeGameInProgress, msg["code"])
	assert.Equal(t, "Game already in progress", msg["message"])
}

func TestStartRejectedForNonHost(t *testing.T) {
	srv := startTestServer(t)

	_, code, _ := createRoom(t, srv, "Alice", "en")
	bob, _ := joinRoom(t, srv, code, "Bob", "en")
	joinRoom(t, srv, code, "Carol", "en")

	sendCmd(t, bob, ClientCommand{Type: "startGame", RoomCode: code})

	msg := readUntil(t, bob, "error")
	assert.Equal(t, codeNotHost, msg["code"])
	assert.Equal(t, "Only the host can start the game", msg["message"])
}

func TestStartRejectedWithTwoPlayers(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "en")
	joinRoom(t, srv, code, "Bob", "en")

	sendCmd(t, host, ClientCommand{Type: "startGame", RoomCode: code})

	msg := readUntil(t, host, "error")
	assert.Equal(t, codeInsufficientPlayers, msg["code"])
	assert.Equal(t, "Need at least 3 players", msg["message"])

	// Roster is unaffected.
	sendCmd(t, host, ClientCommand{Type: "getRoomState", RoomCode: code})
	update := readUntil(t, host, "playersUpdate")
	players, ok := update["players"].([]any)
	require.True(t, ok)
	assert.Len(t, players, 2)
	assert.Equal(t, false, update["gameStarted"])
}

func TestCategoriesRequireHost(t *testing.T) {
	srv := startTestServer(t)

	_, code, _ := createRoom(t, srv, "Alice", "en")
	bob, _ := joinRoom(t, srv, code, "Bob", "en")

	sendCmd(t, bob, ClientCommand{Type: "updateCategories", RoomCode: code, Categories: []string{"animals"}})

	msg := readUntil(t, bob, "error")
	assert.Equal(t, codeNotHost, msg["code"])
	assert.Equal(t, "Only the host can change categories", msg["message"])
}

func TestCategoriesBroadcastWithCatalog(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "en")

	sendCmd(t, host, ClientCommand{Type: "updateCategories", RoomCode: code, Categories: []string{"animals", "food"}})

	msg := readUntil(t, host, "categoriesUpdated")
	assert.Equal(t, []any{"animals", "food"}, msg["categories"])

	catalog, ok := msg["availableCategories"].([]any)
	require.True(t, ok)
	assert.Len(t, catalog, 8)
}

func TestGetCategoriesReportsLanguage(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "de")

	sendCmd(t, host, ClientCommand{Type: "getCategories", RoomCode: code})

	msg := readUntil(t, host, "categoriesUpdated")
	assert.Equal(t, "de", msg["currentLanguage"])
}

func TestFullRoundScenario(t *testing.T) {
	srv := startTestServer(t)

	host, code, hostID := createRoom(t, srv, "Alice", "en")
	bob, bobID := joinRoom(t, srv, code, "Bob", "en")
	carol, carolID := joinRoom(t, srv, code, "Carol", "en")

	conns := map[string]*websocket.Conn{
		hostID:  host,
		bobID:   bob,
		carolID: carol,
	}

	sendCmd(t, host, ClientCommand{Type: "startGame", RoomCode: code})

	imposters := make([]string, 0, 1)
	words := make(map[string]string)
	for id, conn := range conns {
		msg := readUntil(t, conn, "gameStarted")

		order, ok := msg["playerOrder"].([]any)
		require.True(t, ok)
		assert.Len(t, order, 3)
		assert.Equal(t, order[0], msg["currentTurnPlayerId"])

		if msg["isImposter"] == true {
			imposters = append(imposters, id)
			assert.Nil(t, msg["word"], "imposter must not receive the word")
		} else {
			word, ok := msg["word"].(string)
			require.True(t, ok)
			require.NotEmpty(t, word)
			words[id] = word
		}
	}

	require.Len(t, imposters, 1, "exactly one imposter per round")
	require.Len(t, words, 2)

	var shared string
	for _, w := range words {
		if shared == "" {
			shared = w
		}
		assert.Equal(t, shared, w, "non-imposters must see the same word")
	}

	sendCmd(t, host, ClientCommand{Type: "endGame", RoomCode: code})

	for _, conn := range conns {
		msg := readUntil(t, conn, "gameEnded")
		assert.Equal(t, imposters[0], msg["imposterId"])
		assert.Equal(t, shared, msg["word"])
		assert.Nil(t, msg["reason"])
	}

	update := readUntil(t, host, "playersUpdate")
	assert.Equal(t, false, update["gameStarted"])
}

func TestTurnUpdateCycles(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "en")
	joinRoom(t, srv, code, "Bob", "en")
	joinRoom(t, srv, code, "Carol", "en")

	sendCmd(t, host, ClientCommand{Type: "startGame", RoomCode: code})
	started := readUntil(t, host, "gameStarted")
	first := started["currentTurnPlayerId"]

	seen := []any{first}
	for i := 0; i < 3; i++ {
		sendCmd(t, host, ClientCommand{Type: "nextTurn", RoomCode: code})
		update := readUntil(t, host, "turnUpdate")
		seen = append(seen, update["currentTurnPlayerId"])
	}

	// Three advances in a three-player round wrap back to the start.
	assert.Equal(t, first, seen[3])
	assert.NotEqual(t, seen[0], seen[1])
}

func TestNewRoundReshuffles(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "en")
	joinRoom(t, srv, code, "Bob", "en")
	joinRoom(t, srv, code, "Carol", "en")

	sendCmd(t, host, ClientCommand{Type: "startGame", RoomCode: code})
	started := readUntil(t, host, "gameStarted")
	order, ok := started["playerOrder"].([]any)
	require.True(t, ok)

	sendCmd(t, host, ClientCommand{Type: "newRound", RoomCode: code})
	round := readUntil(t, host, "roundStarted")

	newOrder, ok := round["playerOrder"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, order, newOrder)
	assert.Equal(t, newOrder[0], round["currentTurnPlayerId"])
	assert.Equal(t, float64(0), round["currentPlayerIndex"])
}

func TestImposterDisconnectEndsRound(t *testing.T) {
	srv := startTestServer(t)

	host, code, hostID := createRoom(t, srv, "Alice", "en")
	bob, bobID := joinRoom(t, srv, code, "Bob", "en")
	carol, carolID := joinRoom(t, srv, code, "Carol", "en")

	conns := map[string]*websocket.Conn{
		hostID:  host,
		bobID:   bob,
		carolID: carol,
	}

	sendCmd(t, host, ClientCommand{Type: "startGame", RoomCode: code})

	var imposterID string
	for id, conn := range conns {
		msg := readUntil(t, conn, "gameStarted")
		if msg["isImposter"] == true {
			imposterID = id
		}
	}
	require.NotEmpty(t, imposterID)

	conns[imposterID].Close()

	for id, conn := range conns {
		if id == imposterID {
			continue
		}
		msg := readUntil(t, conn, "gameEnded")
		assert.Equal(t, imposterID, msg["imposterId"])
		reason, ok := msg["reason"].(string)
		require.True(t, ok)
		assert.NotEmpty(t, reason)

		word, ok := msg["word"].(string)
		require.True(t, ok)
		assert.NotEmpty(t, word)
	}
}

func TestHostDisconnectPromotesNextPlayer(t *testing.T) {
	srv := startTestServer(t)

	host, code, hostID := createRoom(t, srv, "Alice", "en")
	bob, bobID := joinRoom(t, srv, code, "Bob", "en")
	joinRoom(t, srv, code, "Carol", "en")

	host.Close()

	for i := 0; i < 20; i++ {
		update := readUntil(t, bob, "playersUpdate")
		players, ok := update["players"].([]any)
		require.True(t, ok)

		// Skip roster snapshots from before the host left.
		stale := false
		for _, raw := range players {
			p, ok := raw.(map[string]any)
			require.True(t, ok)
			if p["id"] == hostID {
				stale = true
			}
		}
		if stale {
			continue
		}

		require.Len(t, players, 2)
		hosts := 0
		for _, raw := range players {
			p := raw.(map[string]any)
			if p["isHost"] == true {
				hosts++
				assert.Equal(t, bobID, p["id"], "oldest remaining player becomes host")
			}
		}
		assert.Equal(t, 1, hosts)
		return
	}
	t.Fatal("no roster update after host disconnect")
}

func TestInvalidPlayerNameRejected(t *testing.T) {
	srv := startTestServer(t)

	conn := wsDial(t, srv)
	sendCmd(t, conn, ClientCommand{Type: "createRoom", PlayerName: "   ", Language: "en"})

	msg := readUntil(t, conn, "error")
	assert.Equal(t, codeInvalidName, msg["code"])
}

func TestSetLanguageRequiresHost(t *testing.T) {
	srv := startTestServer(t)

	_, code, _ := createRoom(t, srv, "Alice", "en")
	bob, _ := joinRoom(t, srv, code, "Bob", "en")

	sendCmd(t, bob, ClientCommand{Type: "setLanguage", RoomCode: code, Language: "de"})

	msg := readUntil(t, bob, "error")
	assert.Equal(t, codeNotHost, msg["code"])
}

func TestSetLanguageSwitchesCategoryCatalog(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "en")

	sendCmd(t, host, ClientCommand{Type: "setLanguage", RoomCode: code, Language: "de"})
	readUntil(t, host, "categoriesUpdated")

	sendCmd(t, host, ClientCommand{Type: "getCategories", RoomCode: code})
	msg := readUntil(t, host, "categoriesUpdated")
	assert.Equal(t, "de", msg["currentLanguage"])

	catalog, ok := msg["availableCategories"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, catalog)
	first, ok := catalog[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Tiere", first["name"])
}

func TestCommandAfterEvictionIsDropped(t *testing.T) {
	reg := newRegistry(func() *rand.Rand {
		return rand.New(rand.NewPCG(21, 22))
	})
	g := newGateway(&Config{defaultLanguage: "de"}, reg, defaultWordBank)
	room := reg.create("de")

	// A stalled client: one-slot buffer, already full, so the broadcast
	// evicts it.
	stalled := &client{id: "stalled", send: make(chan any, 1)}

	room.mu.Lock()
	require.NoError(t, room.addPlayer(stalled.id, "Mia"))
	room.clients[stalled.id] = stalled
	require.True(t, stalled.trySend("filler"))

	g.broadcastLocked(room, "update")
	_, still := room.clients[stalled.id]
	room.mu.Unlock()

	require.False(t, still)

	// The read pump of an evicted client stays live until its socket
	// closes, so it can still issue commands. The reply must be dropped.
	g.handleRoomState(stalled, ClientCommand{Type: "getRoomState", RoomCode: room.code})
	assert.False(t, stalled.trySend("late"))
}

func TestFloodedCommandsAnswerRateLimited(t *testing.T) {
	srv := startTestServer(t)

	host, code, _ := createRoom(t, srv, "Alice", "de")

	for i := 0; i < 20; i++ {
		sendCmd(t, host, ClientCommand{Type: "getRoomState", RoomCode: code})
	}

	msg := readUntil(t, host, "error")
	assert.Equal(t, "rateLimited", msg["code"])
	assert.Equal(t, "Zu viele Anfragen", msg["message"])
}
