package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key patterns for Redis game state.
func stateKey(gameID string) string    { return "game:" + gameID + ":state" }
func timerKey(gameID string) string    { return "game:" + gameID + ":timer" }
func drawVoteKey(gameID string) string { return "game:" + gameID + ":draw_votes" }

// SetGameState stores the live game state JSON.
func (c *Client) SetGameState(ctx context.Context, gameID string, state json.RawMessage) error {
	return c.rdb.Set(ctx, stateKey(gameID), []byte(state), 0).Err()
}

// GetGameState retrieves the live game state JSON.
func (c *Client) GetGameState(ctx context.Context, gameID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, stateKey(gameID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}
	return json.RawMessage(data), nil
}

// turnGracePeriod is the extra time after the displayed deadline before turn
// timeout handling triggers, giving players a few seconds of leeway.
const turnGracePeriod = 5 * time.Second

// SetTimer creates a timer key with a TTL. When the key expires, Redis
// keyspace notifications trigger turn-timeout handling. The TTL includes a
// grace period so the key expires slightly after the displayed deadline.
func (c *Client) SetTimer(ctx context.Context, gameID string, deadline time.Time) error {
	ttl := time.Until(deadline) + turnGracePeriod
	if ttl <= 0 {
		ttl = time.Second
	}
	return c.rdb.Set(ctx, timerKey(gameID), deadline.Unix(), ttl).Err()
}

// ClearTimer removes the timer for a game.
func (c *Client) ClearTimer(ctx context.Context, gameID string) error {
	return c.rdb.Del(ctx, timerKey(gameID)).Err()
}

// AddDrawVote adds a player to the draw vote set.
func (c *Client) AddDrawVote(ctx context.Context, gameID, playerID string) error {
	return c.rdb.SAdd(ctx, drawVoteKey(gameID), playerID).Err()
}

// RemoveDrawVote removes a player from the draw vote set.
func (c *Client) RemoveDrawVote(ctx context.Context, gameID, playerID string) error {
	return c.rdb.SRem(ctx, drawVoteKey(gameID), playerID).Err()
}

// DrawVoteCount returns how many players have voted for a draw.
func (c *Client) DrawVoteCount(ctx context.Context, gameID string) (int64, error) {
	return c.rdb.SCard(ctx, drawVoteKey(gameID)).Result()
}

// DrawVotePlayers returns the set of players that have voted for a draw.
func (c *Client) DrawVotePlayers(ctx context.Context, gameID string) ([]string, error) {
	return c.rdb.SMembers(ctx, drawVoteKey(gameID)).Result()
}

// ClearTurnData removes the ready timer and draw votes for a game. Called
// after a turn resolves to prepare for the next one.
func (c *Client) ClearTurnData(ctx context.Context, gameID string) error {
	return c.rdb.Del(ctx, timerKey(gameID), drawVoteKey(gameID)).Err()
}

// DeleteGameData removes all Redis data for a game (on game end).
func (c *Client) DeleteGameData(ctx context.Context, gameID string) error {
	return c.rdb.Del(ctx, stateKey(gameID), timerKey(gameID), drawVoteKey(gameID)).Err()
}
