package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/freeeve/jarls/internal/model"
)

// TurnRepo handles turn and move database operations.
type TurnRepo struct {
	db *sql.DB
}

// NewTurnRepo creates a TurnRepo.
func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

// CreateTurn inserts a new turn awaiting a move from actingPlayerID.
func (r *TurnRepo) CreateTurn(ctx context.Context, gameID string, turnNumber, roundNumber int, actingPlayerID string, stateBefore json.RawMessage, deadline time.Time) (*model.Turn, error) {
	var t model.Turn
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO turns (game_id, turn_number, round_number, acting_player_id, state_before, deadline)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, game_id, turn_number, round_number, acting_player_id, state_before, deadline, created_at`,
		gameID, turnNumber, roundNumber, actingPlayerID, stateBefore, deadline,
	).Scan(&t.ID, &t.GameID, &t.TurnNumber, &t.RoundNumber, &t.ActingPlayerID, &t.StateBefore, &t.Deadline, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create turn: %w", err)
	}
	return &t, nil
}

// CurrentTurn returns the latest unresolved turn for a game.
func (r *TurnRepo) CurrentTurn(ctx context.Context, gameID string) (*model.Turn, error) {
	var t model.Turn
	var stateAfter sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, game_id, turn_number, round_number, acting_player_id, state_before, state_after, deadline, resolved_at, created_at
		 FROM turns WHERE game_id = $1 AND resolved_at IS NULL
		 ORDER BY created_at DESC LIMIT 1`, gameID,
	).Scan(&t.ID, &t.GameID, &t.TurnNumber, &t.RoundNumber, &t.ActingPlayerID, &t.StateBefore, &stateAfter, &t.Deadline, &t.ResolvedAt, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("current turn: %w", err)
	}
	if stateAfter.Valid {
		t.StateAfter = json.RawMessage(stateAfter.String)
	}
	return &t, nil
}

// ListTurns returns all turns for a game in chronological order.
func (r *TurnRepo) ListTurns(ctx context.Context, gameID string) ([]model.Turn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, turn_number, round_number, acting_player_id, state_before, state_after, deadline, resolved_at, created_at
		 FROM turns WHERE game_id = $1
		 ORDER BY turn_number`, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		var t model.Turn
		var stateAfter sql.NullString
		if err := rows.Scan(&t.ID, &t.GameID, &t.TurnNumber, &t.RoundNumber, &t.ActingPlayerID, &t.StateBefore, &stateAfter, &t.Deadline, &t.ResolvedAt, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		if stateAfter.Valid {
			t.StateAfter = json.RawMessage(stateAfter.String)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// ResolveTurn marks a turn as resolved and stores the resulting state.
func (r *TurnRepo) ResolveTurn(ctx context.Context, turnID string, stateAfter json.RawMessage) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE turns SET state_after = $1, resolved_at = now() WHERE id = $2`,
		stateAfter, turnID,
	)
	if err != nil {
		return fmt.Errorf("resolve turn: %w", err)
	}
	return nil
}

// SaveMove inserts one submitted move, successful or rejected.
func (r *TurnRepo) SaveMove(ctx context.Context, move model.Move) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO moves (turn_id, player_id, piece_id, dest_q, dest_r, result)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		move.TurnID, move.PlayerID, move.PieceID, move.DestQ, move.DestR, move.Result,
	)
	if err != nil {
		return fmt.Errorf("save move: %w", err)
	}
	return nil
}

// MovesByTurn returns all moves submitted against a turn.
func (r *TurnRepo) MovesByTurn(ctx context.Context, turnID string) ([]model.Move, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, turn_id, player_id, piece_id, dest_q, dest_r, result, created_at
		 FROM moves WHERE turn_id = $1 ORDER BY created_at`, turnID,
	)
	if err != nil {
		return nil, fmt.Errorf("moves by turn: %w", err)
	}
	defer rows.Close()

	var moves []model.Move
	for rows.Next() {
		var m model.Move
		if err := rows.Scan(&m.ID, &m.TurnID, &m.PlayerID, &m.PieceID, &m.DestQ, &m.DestR, &m.Result, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// ListExpired returns the latest unresolved turn per game where the deadline
// has passed. Uses DISTINCT ON to avoid returning orphaned old turns left
// over from previous race conditions.
func (r *TurnRepo) ListExpired(ctx context.Context) ([]model.Turn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT ON (t.game_id) t.id, t.game_id, t.turn_number, t.round_number, t.acting_player_id, t.state_before, t.deadline, t.created_at
		 FROM turns t
		 JOIN games g ON g.id = t.game_id
		 WHERE t.resolved_at IS NULL AND t.deadline < now() AND g.status = 'active'
		 ORDER BY t.game_id, t.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expired turns: %w", err)
	}
	defer rows.Close()

	var turns []model.Turn
	for rows.Next() {
		var t model.Turn
		if err := rows.Scan(&t.ID, &t.GameID, &t.TurnNumber, &t.RoundNumber, &t.ActingPlayerID, &t.StateBefore, &t.Deadline, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expired turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
