package jarls

import "github.com/google/uuid"

// newID generates a new random identifier for a piece, player, or game. The
// core never persists anything itself, but every entity still needs a
// stable ID so hosts can correlate events back to pieces/players.
func newID() string {
	return uuid.NewString()
}
