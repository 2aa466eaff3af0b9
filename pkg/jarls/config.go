package jarls

import "fmt"

// boardRow is one row of the player-count -> board-shape table.
type boardRow struct {
	radius       int
	shields      int
	warriorsEach int
}

// boardTable holds the fixed per-player-count board configuration. Values
// must match the table in the specification exactly.
var boardTable = map[int]boardRow{
	2: {radius: 3, shields: 5, warriorsEach: 5},
	3: {radius: 5, shields: 4, warriorsEach: 5},
	4: {radius: 6, shields: 4, warriorsEach: 4},
	5: {radius: 7, shields: 3, warriorsEach: 4},
	6: {radius: 8, shields: 3, warriorsEach: 4},
}

// GameConfig is the immutable configuration for one game.
type GameConfig struct {
	PlayerCount  int
	Radius       int
	ShieldCount  int
	WarriorCount int // per player
	TurnTimerMs  int // 0 means unset; carried but not enforced by the core
}

// BoardHexCount returns 3*radius^2 + 3*radius + 1, the total number of hexes
// on a board of this config's radius.
func (c GameConfig) BoardHexCount() int {
	r := c.Radius
	return 3*r*r + 3*r + 1
}

// ConfigFor returns the GameConfig for the given player count. turnTimerMs
// may be 0 to leave the timer unset.
func ConfigFor(playerCount int, turnTimerMs int) (GameConfig, error) {
	row, ok := boardTable[playerCount]
	if !ok {
		return GameConfig{}, fmt.Errorf("%w: %d", ErrInvalidPlayerCount, playerCount)
	}
	return GameConfig{
		PlayerCount:  playerCount,
		Radius:       row.radius,
		ShieldCount:  row.shields,
		WarriorCount: row.warriorsEach,
		TurnTimerMs:  turnTimerMs,
	}, nil
}
