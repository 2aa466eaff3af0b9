package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/freeeve/jarls/internal/model"
)

// UserRepository defines user data operations.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByProviderID(ctx context.Context, provider, providerID string) (*model.User, error)
	Upsert(ctx context.Context, provider, providerID, displayName, avatarURL string) (*model.User, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) error
}

// GameRepository defines game and player data operations.
type GameRepository interface {
	Create(ctx context.Context, name, creatorID string, playerCount, turnTimerMs int) (*model.Game, error)
	FindByID(ctx context.Context, id string) (*model.Game, error)
	ListOpen(ctx context.Context) ([]model.Game, error)
	ListByUser(ctx context.Context, userID string) ([]model.Game, error)
	ListFinished(ctx context.Context) ([]model.Game, error)
	JoinGame(ctx context.Context, gameID, userID string, seatIndex int, displayColor string) error
	ListPlayers(ctx context.Context, gameID string) ([]model.GamePlayer, error)
	PlayerCount(ctx context.Context, gameID string) (int, error)
	ListActive(ctx context.Context) ([]model.Game, error)
	SetActive(ctx context.Context, gameID string) error
	SetFinished(ctx context.Context, gameID, winner, winCondition string) error
	MarkEliminated(ctx context.Context, gameID, userID string) error
	Delete(ctx context.Context, gameID string) error
}

// TurnRepository defines turn and move data operations.
type TurnRepository interface {
	CreateTurn(ctx context.Context, gameID string, turnNumber, roundNumber int, actingPlayerID string, stateBefore json.RawMessage, deadline time.Time) (*model.Turn, error)
	CurrentTurn(ctx context.Context, gameID string) (*model.Turn, error)
	ListTurns(ctx context.Context, gameID string) ([]model.Turn, error)
	ResolveTurn(ctx context.Context, turnID string, stateAfter json.RawMessage) error
	SaveMove(ctx context.Context, move model.Move) error
	MovesByTurn(ctx context.Context, turnID string) ([]model.Move, error)
	ListExpired(ctx context.Context) ([]model.Turn, error)
}

// MessageRepository defines message data operations.
type MessageRepository interface {
	Create(ctx context.Context, gameID, senderID, recipientID, content, turnID string) (*model.Message, error)
	ListByGame(ctx context.Context, gameID, userID string) ([]model.Message, error)
}

// GameCache defines live game state operations (Redis).
type GameCache interface {
	SetGameState(ctx context.Context, gameID string, state json.RawMessage) error
	GetGameState(ctx context.Context, gameID string) (json.RawMessage, error)
	SetTimer(ctx context.Context, gameID string, deadline time.Time) error
	ClearTimer(ctx context.Context, gameID string) error
	AddDrawVote(ctx context.Context, gameID, playerID string) error
	RemoveDrawVote(ctx context.Context, gameID, playerID string) error
	DrawVoteCount(ctx context.Context, gameID string) (int64, error)
	DrawVotePlayers(ctx context.Context, gameID string) ([]string, error)
	ClearTurnData(ctx context.Context, gameID string) error
	DeleteGameData(ctx context.Context, gameID string) error
}
