package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/freeeve/jarls/internal/model"
	"github.com/freeeve/jarls/internal/repository"
	"github.com/freeeve/jarls/pkg/jarls"
)

var (
	ErrNoActiveTurn = errors.New("no active turn")
)

// MoveInput is the request payload for submitting a move.
type MoveInput struct {
	PieceID string `json:"piece_id"`
	DestQ   int    `json:"dest_q"`
	DestR   int    `json:"dest_r"`
}

// MoveOutcome carries the result of a submitted move back to the handler.
type MoveOutcome struct {
	Applied  bool
	Error    jarls.ErrorKind
	NewState *jarls.GameState
	Events   []jarls.Event
	GameOver bool
}

// MoveService applies player moves against the engine and persists the
// resulting turn history.
type MoveService struct {
	gameRepo repository.GameRepository
	turnRepo repository.TurnRepository
	cache    repository.GameCache
}

// NewMoveService creates a MoveService.
func NewMoveService(gameRepo repository.GameRepository, turnRepo repository.TurnRepository, cache repository.GameCache) *MoveService {
	return &MoveService{gameRepo: gameRepo, turnRepo: turnRepo, cache: cache}
}

// SubmitMove loads the live state, runs jarls.ApplyMove, records the move
// (successful or rejected) against the current turn, and on success resolves
// the turn, opens the next one, and refreshes the cached state and timer.
func (s *MoveService) SubmitMove(ctx context.Context, gameID, userID string, in MoveInput) (*MoveOutcome, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != "active" {
		return nil, ErrGameNotActive
	}

	inGame := false
	for _, p := range game.Players {
		if p.UserID == userID {
			inGame = true
			break
		}
	}
	if !inGame {
		return nil, ErrNotInGame
	}

	turn, err := s.turnRepo.CurrentTurn(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if turn == nil {
		return nil, ErrNoActiveTurn
	}

	stateJSON, err := s.cache.GetGameState(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if stateJSON == nil {
		stateJSON = turn.StateBefore
	}

	var state jarls.GameState
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, fmt.Errorf("unmarshal game state: %w", err)
	}

	cmd := jarls.MoveCommand{PieceID: in.PieceID, Destination: jarls.AxialCoord{Q: in.DestQ, R: in.DestR}}
	result := jarls.ApplyMove(&state, userID, cmd)

	move := model.Move{
		TurnID:   turn.ID,
		PlayerID: userID,
		PieceID:  in.PieceID,
		DestQ:    in.DestQ,
		DestR:    in.DestR,
		Result:   result.Error.String(),
	}
	if result.Success {
		move.Result = "applied"
	}
	if err := s.turnRepo.SaveMove(ctx, move); err != nil {
		return nil, err
	}

	if !result.Success {
		return &MoveOutcome{Applied: false, Error: result.Error}, nil
	}

	newStateJSON, err := json.Marshal(result.NewState)
	if err != nil {
		return nil, fmt.Errorf("marshal new state: %w", err)
	}
	if err := s.turnRepo.ResolveTurn(ctx, turn.ID, newStateJSON); err != nil {
		return nil, err
	}
	if err := s.cache.SetGameState(ctx, gameID, newStateJSON); err != nil {
		return nil, err
	}

	gameOver := result.NewState.Phase == jarls.PhaseEnded
	if gameOver {
		wc := ""
		if result.NewState.WinCondition != nil {
			wc = result.NewState.WinCondition.String()
		}
		if err := s.gameRepo.SetFinished(ctx, gameID, result.NewState.WinnerID, wc); err != nil {
			return nil, err
		}
		if err := s.cache.DeleteGameData(ctx, gameID); err != nil {
			return nil, err
		}
		return &MoveOutcome{Applied: true, NewState: result.NewState, Events: result.Events, GameOver: true}, nil
	}

	deadline := turnDeadline(game.TurnTimerMs)
	if _, err := s.turnRepo.CreateTurn(ctx, gameID, result.NewState.TurnNumber, result.NewState.RoundNumber, result.NewState.CurrentPlayerID, newStateJSON, deadline); err != nil {
		return nil, err
	}
	if err := s.cache.ClearTurnData(ctx, gameID); err != nil {
		return nil, err
	}
	if game.TurnTimerMs > 0 {
		if err := s.cache.SetTimer(ctx, gameID, deadline); err != nil {
			return nil, err
		}
	}

	return &MoveOutcome{Applied: true, NewState: result.NewState, Events: result.Events}, nil
}

// CurrentTurn returns the current unresolved turn for a game.
func (s *MoveService) CurrentTurn(ctx context.Context, gameID string) (*model.Turn, error) {
	return s.turnRepo.CurrentTurn(ctx, gameID)
}

// VoteForDraw registers a draw vote and returns the tally and total players.
func (s *MoveService) VoteForDraw(ctx context.Context, gameID, userID string) (int64, int, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return 0, 0, err
	}
	if game == nil {
		return 0, 0, ErrGameNotFound
	}
	inGame := false
	for _, p := range game.Players {
		if p.UserID == userID {
			inGame = true
		}
	}
	if !inGame {
		return 0, 0, ErrNotInGame
	}
	if err := s.cache.AddDrawVote(ctx, gameID, userID); err != nil {
		return 0, 0, err
	}
	count, err := s.cache.DrawVoteCount(ctx, gameID)
	if err != nil {
		return 0, 0, err
	}
	return count, len(game.Players), nil
}

// RemoveDrawVote withdraws a draw vote.
func (s *MoveService) RemoveDrawVote(ctx context.Context, gameID, userID string) error {
	return s.cache.RemoveDrawVote(ctx, gameID, userID)
}

// EventDTO is the wire representation of a jarls.Event for WS broadcast and
// the turn/move history API.
type EventDTO struct {
	Kind string         `json:"kind"`
	Data map[string]any `json:"data"`
}

// EventsToDTO converts engine events into their wire representation.
func EventsToDTO(events []jarls.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, EventDTO{Kind: e.Kind().String(), Data: eventData(e)})
	}
	return out
}

func eventData(e jarls.Event) map[string]any {
	switch ev := e.(type) {
	case jarls.MoveEvent:
		return map[string]any{"piece_id": ev.PieceID, "from": ev.From, "to": ev.To, "has_momentum": ev.HasMomentum}
	case jarls.PushEvent:
		return map[string]any{"piece_id": ev.PieceID, "from": ev.From, "to": ev.To, "direction": int(ev.PushDirection), "depth": ev.Depth}
	case jarls.EliminatedEvent:
		return map[string]any{"piece_id": ev.PieceID, "player_id": ev.PlayerID, "position": ev.Position, "cause": ev.Cause.String()}
	case jarls.GameEndedEvent:
		return map[string]any{"winner_id": ev.WinnerID, "win_condition": ev.WinCondition.String()}
	case jarls.TurnEndedEvent:
		return map[string]any{"player_id": ev.PlayerID, "next_player_id": ev.NextPlayerID, "turn_number": ev.TurnNumber}
	default:
		return nil
	}
}
