package main

// Commands coming from clients
type ClientCommand struct {
	Type       string   `json:"type"`                 // "createRoom", "joinRoom", "updateCategories", "setLanguage", "startGame", "endGame", "nextTurn", "newRound", "getRoomState", "getCategories"
	RoomCode   string   `json:"roomCode,omitempty"`   // all except createRoom
	PlayerName string   `json:"playerName,omitempty"` // createRoom / joinRoom
	Language   string   `json:"language,omitempty"`   // createRoom / joinRoom / setLanguage
	Categories []string `json:"categories,omitempty"` // updateCategories
}

// PlayerInfo is the roster entry shared with every room member.
type PlayerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// RoomWelcomeMessage answers createRoom ("roomCreated") and joinRoom
// ("roomJoined"), requester-only.
type RoomWelcomeMessage struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	IsHost   bool   `json:"isHost"`
}

// PlayersUpdateMessage is the full roster snapshot broadcast on every
// roster change.
type PlayersUpdateMessage struct {
	Type        string       `json:"type"` // "playersUpdate"
	Players     []PlayerInfo `json:"players"`
	GameStarted bool         `json:"gameStarted"`
}

// CategoriesUpdatedMessage carries the selected category ids plus the full
// catalog for the room's language.
type CategoriesUpdatedMessage struct {
	Type                string     `json:"type"` // "categoriesUpdated"
	Categories          []string   `json:"categories"`
	AvailableCategories []Category `json:"availableCategories"`
	CurrentLanguage     string     `json:"currentLanguage,omitempty"`
}

// GameStartedMessage is built per recipient: the imposter gets a nil word.
type GameStartedMessage struct {
	Type                string       `json:"type"` // "gameStarted"
	IsImposter          bool         `json:"isImposter"`
	Word                *string      `json:"word"`
	Players             []PlayerInfo `json:"players"`
	GameStarted         bool         `json:"gameStarted"`
	PlayerOrder         []string     `json:"playerOrder"`
	CurrentTurnPlayerID string       `json:"currentTurnPlayerId"`
	CurrentPlayerIndex  int          `json:"currentPlayerIndex"`
}

// TurnUpdateMessage announces whose turn it is after nextTurn.
type TurnUpdateMessage struct {
	Type                string `json:"type"` // "turnUpdate"
	CurrentTurnPlayerID string `json:"currentTurnPlayerId"`
	CurrentPlayerIndex  int    `json:"currentPlayerIndex"`
}

// RoundStartedMessage announces a reshuffled order for a new round.
type RoundStartedMessage struct {
	Type                string   `json:"type"` // "roundStarted"
	PlayerOrder         []string `json:"playerOrder"`
	CurrentTurnPlayerID string   `json:"currentTurnPlayerId"`
	CurrentPlayerIndex  int      `json:"currentPlayerIndex"`
}

// GameEndedMessage reveals the imposter and the word to everyone. Reason is
// set when the round ended because the imposter disconnected.
type GameEndedMessage struct {
	Type         string `json:"type"` // "gameEnded"
	ImposterID   string `json:"imposterId"`
	ImposterName string `json:"imposterName"`
	Word         string `json:"word"`
	Reason       string `json:"reason,omitempty"`
}

// ErrorMessage is sent only to the offending client: a machine-stable code
// plus a display message in the room's language.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Code    string `json:"code"`
	Message string `json:"message"`
}
