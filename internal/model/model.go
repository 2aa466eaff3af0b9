package model

import (
	"encoding/json"
	"time"
)

// User represents a registered user.
type User struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"`
	ProviderID  string    `json:"provider_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Game represents a Jarls game lobby and its lifecycle.
type Game struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	CreatorID     string       `json:"creator_id"`
	Status        string       `json:"status"` // waiting, active, finished
	PlayerCount   int          `json:"player_count"`
	TurnTimerMs   int          `json:"turn_timer_ms,omitempty"`
	Winner        string       `json:"winner,omitempty"`
	WinCondition  string       `json:"win_condition,omitempty"` // throne, last_standing, draw
	CreatedAt     time.Time    `json:"created_at"`
	StartedAt     *time.Time   `json:"started_at,omitempty"`
	FinishedAt    *time.Time   `json:"finished_at,omitempty"`
	Players       []GamePlayer `json:"players,omitempty"`
	DrawVoteCount int          `json:"draw_vote_count,omitempty"`
}

// GamePlayer represents a player's seat in a game. SeatIndex fixes turn
// order; it is assigned in join order and mirrors the position the player
// occupies in the engine's Players slice once the game starts.
type GamePlayer struct {
	GameID       string    `json:"game_id"`
	UserID       string    `json:"user_id"`
	SeatIndex    int       `json:"seat_index"`
	DisplayColor string    `json:"display_color,omitempty"`
	Eliminated   bool      `json:"eliminated"`
	JoinedAt     time.Time `json:"joined_at"`
}

// Turn represents one resolved or pending turn in a game: the engine state
// before the acting player's move, and the state after it resolved (once
// known). Unlike the source this was distilled from, a Jarls turn involves
// exactly one piece move by exactly one player, not simultaneous orders
// from every player.
type Turn struct {
	ID             string          `json:"id"`
	GameID         string          `json:"game_id"`
	TurnNumber     int             `json:"turn_number"`
	RoundNumber    int             `json:"round_number"`
	ActingPlayerID string          `json:"acting_player_id"`
	StateBefore    json.RawMessage `json:"state_before"`
	StateAfter     json.RawMessage `json:"state_after,omitempty"`
	Deadline       time.Time       `json:"deadline"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Move represents one submitted move command, successful or not. Result
// holds "applied" on success or the engine's ErrorKind string on rejection,
// so the history shows attempted-but-illegal moves too.
type Move struct {
	ID        string    `json:"id"`
	TurnID    string    `json:"turn_id"`
	PlayerID  string    `json:"player_id"`
	PieceID   string    `json:"piece_id"`
	DestQ     int       `json:"dest_q"`
	DestR     int       `json:"dest_r"`
	Result    string    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Message represents an in-game chat message.
type Message struct {
	ID          string    `json:"id"`
	GameID      string    `json:"game_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id,omitempty"` // empty = public broadcast
	Content     string    `json:"content"`
	TurnID      string    `json:"turn_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
