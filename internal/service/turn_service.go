package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/jarls/internal/repository"
	"github.com/freeeve/jarls/pkg/jarls"
)

// TurnService owns turn lifecycle concerns the engine itself declines to
// define: recovering live state on restart and handling a turn timeout.
// turnTimerMs is carried by GameConfig but not enforced by the core (per the
// engine's documented non-goal); enforcing it, and deciding what a timed-out
// turn does, is the host's job.
type TurnService struct {
	gameRepo    repository.GameRepository
	turnRepo    repository.TurnRepository
	cache       repository.GameCache
	broadcaster Broadcaster
	gameLocks   sync.Map // gameID -> *sync.Mutex, serializes concurrent moves/timeouts per game
}

// NewTurnService creates a TurnService.
func NewTurnService(gameRepo repository.GameRepository, turnRepo repository.TurnRepository, cache repository.GameCache, broadcaster Broadcaster) *TurnService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &TurnService{gameRepo: gameRepo, turnRepo: turnRepo, cache: cache, broadcaster: broadcaster}
}

func (s *TurnService) lockFor(gameID string) *sync.Mutex {
	v, _ := s.gameLocks.LoadOrStore(gameID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// RecoverActiveGames rehydrates the Redis cache from Postgres for every
// active game on process start, since Redis may have been flushed or
// restarted independently of the database.
func (s *TurnService) RecoverActiveGames(ctx context.Context) error {
	games, err := s.gameRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active games: %w", err)
	}
	for _, g := range games {
		turn, err := s.turnRepo.CurrentTurn(ctx, g.ID)
		if err != nil {
			log.Error().Err(err).Str("gameId", g.ID).Msg("failed to load current turn during recovery")
			continue
		}
		if turn == nil {
			continue
		}
		if err := s.cache.SetGameState(ctx, g.ID, turn.StateBefore); err != nil {
			log.Error().Err(err).Str("gameId", g.ID).Msg("failed to recover cached state")
			continue
		}
		if g.TurnTimerMs > 0 {
			if err := s.cache.SetTimer(ctx, g.ID, turn.Deadline); err != nil {
				log.Error().Err(err).Str("gameId", g.ID).Msg("failed to recover timer")
			}
		}
	}
	log.Info().Int("count", len(games)).Msg("recovered active games")
	return nil
}

// HandleTurnTimeout performs the host-defined "time out" action the engine's
// design explicitly leaves unspecified: it is equivalent to a voluntary
// pass, advancing the turn to the next non-eliminated player without moving
// any piece. It mirrors the engine's own turn-advancement bookkeeping
// (TurnNumber/RoundNumber) since the core does not export a pass operation.
func (s *TurnService) HandleTurnTimeout(ctx context.Context, gameID string) error {
	lock := s.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil || game.Status != "active" {
		return nil
	}

	turn, err := s.turnRepo.CurrentTurn(ctx, gameID)
	if err != nil {
		return err
	}
	if turn == nil {
		return nil
	}

	stateJSON, err := s.cache.GetGameState(ctx, gameID)
	if err != nil {
		return err
	}
	if stateJSON == nil {
		stateJSON = turn.StateBefore
	}
	var state jarls.GameState
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return fmt.Errorf("unmarshal game state: %w", err)
	}

	prevPlayerID := state.CurrentPlayerID
	nextIdx := passTurn(&state)
	log.Info().Str("gameId", gameID).Str("player", prevPlayerID).Msg("turn timed out, passing")

	newStateJSON, err := json.Marshal(&state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.turnRepo.ResolveTurn(ctx, turn.ID, newStateJSON); err != nil {
		return err
	}
	if err := s.cache.SetGameState(ctx, gameID, newStateJSON); err != nil {
		return err
	}
	if err := s.cache.ClearTurnData(ctx, gameID); err != nil {
		return err
	}

	deadline := turnDeadline(game.TurnTimerMs)
	if _, err := s.turnRepo.CreateTurn(ctx, gameID, state.TurnNumber, state.RoundNumber, state.Players[nextIdx].ID, newStateJSON, deadline); err != nil {
		return err
	}
	if game.TurnTimerMs > 0 {
		if err := s.cache.SetTimer(ctx, gameID, deadline); err != nil {
			return err
		}
	}

	s.broadcaster.BroadcastGameEvent(gameID, "turn_timed_out", map[string]any{
		"player_id":      prevPlayerID,
		"next_player_id": state.Players[nextIdx].ID,
		"turn_number":    state.TurnNumber,
	})
	return nil
}

// passTurn advances state to the next non-eliminated player and returns its
// index, incrementing TurnNumber always and RoundNumber on wraparound.
func passTurn(state *jarls.GameState) int {
	curIdx := state.PlayerIndex(state.CurrentPlayerID)
	nextIdx := curIdx
	for i := 1; i <= len(state.Players); i++ {
		cand := (curIdx + i) % len(state.Players)
		if !state.Players[cand].Eliminated {
			nextIdx = cand
			break
		}
	}
	state.TurnNumber++
	if nextIdx <= curIdx {
		state.RoundNumber++
	}
	state.CurrentPlayerID = state.Players[nextIdx].ID
	return nextIdx
}

// CleanupStoppedGame removes all Redis data for a game that was manually
// stopped or otherwise ended outside the normal ApplyMove flow.
func (s *TurnService) CleanupStoppedGame(ctx context.Context, gameID string) error {
	return s.cache.DeleteGameData(ctx, gameID)
}
