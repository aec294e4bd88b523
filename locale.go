package main

import "errors"

// Machine-stable error codes sent on the wire.
const (
	codeRoomNotFound        = "roomNotFound"
	codeGameInProgress      = "gameInProgress"
	codeNotHost             = "notHost"
	codeInsufficientPlayers = "insufficientPlayers"
	codeInvalidName         = "invalidName"
	codeRateLimited         = "rateLimited"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNoWordsAvailable = errors.New("no words available for language")
)

// displayText keys, matching the vocabulary of the original clients.
const (
	msgRoomNotFound         = "roomNotFound"
	msgGameInProgress       = "gameInProgress"
	msgOnlyHostStart        = "onlyHostStart"
	msgMinPlayers           = "minPlayers"
	msgOnlyHostEnd          = "onlyHostEnd"
	msgOnlyHostCategories   = "onlyHostCategories"
	msgOnlyHostRound        = "onlyHostRound"
	msgOnlyHostLanguage     = "onlyHostLanguage"
	msgOnlyHostTurn         = "onlyHostTurn"
	msgInvalidName          = "invalidName"
	msgRateLimited          = "rateLimited"
	msgImposterDisconnected = "imposterDisconnected"
)

var displayText = map[string]map[string]string{
	"de": {
		msgRoomNotFound:         "Raum nicht gefunden",
		msgGameInProgress:       "Spiel läuft bereits",
		msgOnlyHostStart:        "Nur der Host kann das Spiel starten",
		msgMinPlayers:           "Mindestens 3 Spieler benötigt",
		msgOnlyHostEnd:          "Nur der Host kann das Spiel beenden",
		msgOnlyHostCategories:   "Nur der Host kann die Kategorien ändern",
		msgOnlyHostRound:        "Nur der Host kann eine neue Runde starten",
		msgOnlyHostLanguage:     "Nur der Host kann die Sprache ändern",
		msgOnlyHostTurn:         "Nur der Host kann den Zug weitergeben",
		msgInvalidName:          "Name muss 1-20 Zeichen lang sein",
		msgRateLimited:          "Zu viele Anfragen",
		msgImposterDisconnected: "Betrüger hat das Spiel verlassen",
	},
	"en": {
		msgRoomNotFound:         "Room not found",
		msgGameInProgress:       "Game already in progress",
		msgOnlyHostStart:        "Only the host can start the game",
		msgMinPlayers:           "Need at least 3 players",
		msgOnlyHostEnd:          "Only the host can end the game",
		msgOnlyHostCategories:   "Only the host can change categories",
		msgOnlyHostRound:        "Only the host can start a new round",
		msgOnlyHostLanguage:     "Only the host can change the language",
		msgOnlyHostTurn:         "Only the host can advance the turn",
		msgInvalidName:          "Name must be 1-20 characters",
		msgRateLimited:          "Too many requests",
		msgImposterDisconnected: "Imposter left the game",
	},
}

// localize resolves a vocabulary key against a language, falling back to
// English, then to the key itself.
func localize(lang, key string) string {
	if vocab, ok := displayText[lang]; ok {
		if text, ok := vocab[key]; ok {
			return text
		}
	}
	if text, ok := displayText["en"][key]; ok {
		return text
	}
	return key
}
