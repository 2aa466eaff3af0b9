package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/freeeve/jarls/internal/model"
	"github.com/freeeve/jarls/internal/repository"
	"github.com/freeeve/jarls/pkg/jarls"
)

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameNotWaiting    = errors.New("game is not in waiting status")
	ErrGameFull          = errors.New("game already has its full seat count")
	ErrNotEnoughPlayers  = errors.New("not enough players seated to start")
	ErrNotCreator        = errors.New("only the creator can perform this action")
	ErrGameNotActive     = errors.New("game is not active")
	ErrAlreadyJoined     = errors.New("already joined this game")
	ErrNotInGame         = errors.New("you are not in this game")
	ErrInvalidPlayerCount = errors.New("invalid player count: must be between 2 and 6")
)

// GameService handles game lifecycle operations: creation, lobby join, and
// the transition from lobby to a live engine-backed game.
type GameService struct {
	gameRepo repository.GameRepository
	turnRepo repository.TurnRepository
	cache    repository.GameCache
	userRepo repository.UserRepository
}

// NewGameService creates a GameService.
func NewGameService(gameRepo repository.GameRepository, turnRepo repository.TurnRepository, cache repository.GameCache, userRepo repository.UserRepository) *GameService {
	return &GameService{gameRepo: gameRepo, turnRepo: turnRepo, cache: cache, userRepo: userRepo}
}

// CreateGame creates a new game lobby for playerCount seats (2-6) with the
// given per-turn timer. The creator occupies seat 0.
func (s *GameService) CreateGame(ctx context.Context, name, creatorID string, playerCount, turnTimerMs int) (*model.Game, error) {
	if _, err := jarls.ConfigFor(playerCount, turnTimerMs); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlayerCount, err)
	}

	game, err := s.gameRepo.Create(ctx, name, creatorID, playerCount, turnTimerMs)
	if err != nil {
		return nil, err
	}
	if err := s.gameRepo.JoinGame(ctx, game.ID, creatorID, 0, ""); err != nil {
		return nil, err
	}
	return s.gameRepo.FindByID(ctx, game.ID)
}

// JoinGame seats a player in the next open slot of a waiting game.
func (s *GameService) JoinGame(ctx context.Context, gameID, userID string) error {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	if game.Status != "waiting" {
		return ErrGameNotWaiting
	}
	for _, p := range game.Players {
		if p.UserID == userID {
			return ErrAlreadyJoined
		}
	}
	if len(game.Players) >= game.PlayerCount {
		return ErrGameFull
	}
	return s.gameRepo.JoinGame(ctx, gameID, userID, len(game.Players), "")
}

// StartGame builds the engine's initial state from the seated players (in
// seat order), remaps the engine's generated player IDs onto the real host
// user IDs, persists the first turn, and caches the live state.
func (s *GameService) StartGame(ctx context.Context, gameID, userID string) (*model.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != "waiting" {
		return nil, ErrGameNotWaiting
	}
	if game.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if len(game.Players) != game.PlayerCount {
		return nil, ErrNotEnoughPlayers
	}

	names := make([]string, len(game.Players))
	for i, p := range game.Players {
		user, err := s.userRepo.FindByID(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		name := p.UserID
		if user != nil {
			name = user.DisplayName
		}
		names[i] = name
	}

	state, err := jarls.CreateInitialState(names, game.TurnTimerMs)
	if err != nil {
		return nil, fmt.Errorf("create initial state: %w", err)
	}
	remapPlayerIDs(state, game.Players)

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal initial state: %w", err)
	}

	deadline := turnDeadline(game.TurnTimerMs)
	if _, err := s.turnRepo.CreateTurn(ctx, gameID, state.TurnNumber, state.RoundNumber, state.CurrentPlayerID, stateJSON, deadline); err != nil {
		return nil, err
	}
	if err := s.cache.SetGameState(ctx, gameID, stateJSON); err != nil {
		return nil, fmt.Errorf("cache game state: %w", err)
	}
	if game.TurnTimerMs > 0 {
		if err := s.cache.SetTimer(ctx, gameID, deadline); err != nil {
			return nil, fmt.Errorf("set timer: %w", err)
		}
	}
	if err := s.gameRepo.SetActive(ctx, gameID); err != nil {
		return nil, err
	}

	return s.gameRepo.FindByID(ctx, gameID)
}

// remapPlayerIDs substitutes the engine's auto-generated Player.ID values
// (seat order in state.Players matches the seat order names were supplied
// in) with the real host user IDs, rewriting every reference to them.
func remapPlayerIDs(state *jarls.GameState, players []model.GamePlayer) {
	idMap := make(map[string]string, len(players))
	for i, p := range players {
		if i < len(state.Players) {
			idMap[state.Players[i].ID] = p.UserID
		}
	}
	for i := range state.Players {
		if newID, ok := idMap[state.Players[i].ID]; ok {
			state.Players[i].ID = newID
		}
	}
	for i := range state.Pieces {
		if state.Pieces[i].OwnerID == "" {
			continue
		}
		if newID, ok := idMap[state.Pieces[i].OwnerID]; ok {
			state.Pieces[i].OwnerID = newID
		}
	}
	if newID, ok := idMap[state.CurrentPlayerID]; ok {
		state.CurrentPlayerID = newID
	}
}

func turnDeadline(turnTimerMs int) time.Time {
	if turnTimerMs <= 0 {
		return time.Now().Add(365 * 24 * time.Hour)
	}
	return time.Now().Add(time.Duration(turnTimerMs) * time.Millisecond)
}

// GetGame returns a game by ID.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// DeleteGame removes a waiting game. Only the game creator can delete a game.
func (s *GameService) DeleteGame(ctx context.Context, gameID, userID string) error {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return err
	}
	if game == nil {
		return ErrGameNotFound
	}
	if game.Status != "waiting" {
		return ErrGameNotWaiting
	}
	if game.CreatorID != userID {
		return ErrNotCreator
	}
	return s.gameRepo.Delete(ctx, gameID)
}

// StopGame ends an active game as a draw. Only the game creator can stop a game.
func (s *GameService) StopGame(ctx context.Context, gameID, userID string) (*model.Game, error) {
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
	if game.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if err := s.gameRepo.SetFinished(ctx, gameID, "", "draw"); err != nil {
		return nil, err
	}
	if err := s.cache.DeleteGameData(ctx, gameID); err != nil {
		return nil, err
	}
	return s.gameRepo.FindByID(ctx, gameID)
}

// ListGames returns open games, games the user is in, or finished games.
func (s *GameService) ListGames(ctx context.Context, userID string, filter string) ([]model.Game, error) {
	switch filter {
	case "my":
		return s.gameRepo.ListByUser(ctx, userID)
	case "finished":
		return s.gameRepo.ListFinished(ctx)
	default:
		return s.gameRepo.ListOpen(ctx)
	}
}
