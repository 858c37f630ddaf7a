package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// random hex identifier of n bytes
func generate(n int) string {
	bytes := make([]byte, n)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// NewGameID identifies a game in logs and on the spectator feed.
func NewGameID() string {
	return generate(8)
}

// NewConnectionID tags a spectator connection.
func NewConnectionID() string {
	return "conn-" + generate(6)
}
