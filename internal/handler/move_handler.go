package handler

import (
	"errors"
	"net/http"

	"github.com/freeeve/jarls/internal/auth"
	"github.com/freeeve/jarls/internal/service"
)

// MoveHandler handles move submission and draw-vote endpoints.
type MoveHandler struct {
	moveSvc *service.MoveService
	hub     *Hub
}

// NewMoveHandler creates a MoveHandler.
func NewMoveHandler(moveSvc *service.MoveService, hub *Hub) *MoveHandler {
	return &MoveHandler{moveSvc: moveSvc, hub: hub}
}

// SubmitMove handles POST /api/v1/games/{id}/moves
func (h *MoveHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	var req service.MoveInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	outcome, err := h.moveSvc.SubmitMove(r.Context(), gameID, userID, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrGameNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, service.ErrNotInGame) || errors.Is(err, service.ErrGameNotActive) || errors.Is(err, service.ErrNoActiveTurn) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	if !outcome.Applied {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": outcome.Error.String()})
		return
	}

	events := service.EventsToDTO(outcome.Events)
	if outcome.GameOver {
		h.hub.BroadcastToGame(gameID, WSEvent{
			Type:   EventGameEnded,
			GameID: gameID,
			Data: map[string]any{
				"winner_id":     outcome.NewState.WinnerID,
				"win_condition": outcome.NewState.WinCondition.String(),
				"events":        events,
			},
		})
	} else {
		h.hub.BroadcastToGame(gameID, WSEvent{
			Type:   EventTurnResolved,
			GameID: gameID,
			Data: map[string]any{
				"current_player_id": outcome.NewState.CurrentPlayerID,
				"turn_number":       outcome.NewState.TurnNumber,
				"events":            events,
			},
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"applied": true,
		"state":   outcome.NewState,
		"events":  events,
	})
}

// VoteForDraw handles POST /api/v1/games/{id}/draw/vote
func (h *MoveHandler) VoteForDraw(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	count, total, err := h.moveSvc.VoteForDraw(r.Context(), gameID, userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrGameNotFound) {
			status = http.StatusNotFound
		} else if errors.Is(err, service.ErrNotInGame) {
			status = http.StatusForbidden
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"draw_vote_count": count, "player_count": total})
}

// RemoveDrawVote handles DELETE /api/v1/games/{id}/draw/vote
func (h *MoveHandler) RemoveDrawVote(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	userID := auth.UserIDFromContext(r.Context())

	if err := h.moveSvc.RemoveDrawVote(r.Context(), gameID, userID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
