package jarls

// VictoryCheck is the result of CheckWinConditions.
type VictoryCheck struct {
	Won          bool
	WinnerID     string
	WinCondition WinCondition
}

// CheckWinConditions evaluates the two victory rules in order. movedPieceID
// is the piece that just moved (if any, e.g. a blocked attack still "moves"
// the attacker in some encodings — callers pass the piece that ended the
// action). voluntary distinguishes a player-initiated move from one caused
// by being pushed; only a voluntary Jarl move onto the throne wins.
func CheckWinConditions(state *GameState, movedPieceID string, voluntary bool) VictoryCheck {
	if voluntary && movedPieceID != "" {
		if p := state.PieceByID(movedPieceID); p != nil && p.Kind == Jarl && p.Position == Origin {
			return VictoryCheck{Won: true, WinnerID: p.OwnerID, WinCondition: WinThrone}
		}
	}
	if state.RemainingJarls() == 1 {
		for i := range state.Pieces {
			if state.Pieces[i].Kind == Jarl {
				return VictoryCheck{Won: true, WinnerID: state.Pieces[i].OwnerID, WinCondition: WinLastStanding}
			}
		}
	}
	return VictoryCheck{}
}

// eliminatePlayer marks ownerID eliminated, removes all of its remaining
// Warriors from the board, and resets the stalemate counter. Returns one
// EliminatedEvent per removed Warrior.
func eliminatePlayer(state *GameState, ownerID string) []Event {
	if player := state.PlayerByID(ownerID); player != nil {
		player.Eliminated = true
	}

	var toRemove []Piece
	for _, p := range state.Pieces {
		if p.Kind == Warrior && p.OwnerID == ownerID {
			toRemove = append(toRemove, p)
		}
	}

	var events []Event
	for _, p := range toRemove {
		events = append(events, EliminatedEvent{
			PieceID:  p.ID,
			PlayerID: p.OwnerID,
			Position: p.Position,
			Cause:    CauseStarvation,
		})
		state.removePiece(p.ID)
	}

	state.RoundsSinceLastElimination = 0
	return events
}

// advanceTurn moves CurrentPlayerID to the next non-eliminated player,
// scanning forward from the current index and wrapping. It increments
// TurnNumber always, RoundNumber on wraparound, and
// RoundsSinceLastElimination on a non-eliminating wraparound. Returns the
// TurnEndedEvent.
func advanceTurn(state *GameState, eliminationHappened bool) TurnEndedEvent {
	prevPlayerID := state.CurrentPlayerID
	curIdx := state.PlayerIndex(prevPlayerID)

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
		if !eliminationHappened {
			state.RoundsSinceLastElimination++
		}
	}
	state.CurrentPlayerID = state.Players[nextIdx].ID

	return TurnEndedEvent{
		PlayerID:     prevPlayerID,
		NextPlayerID: state.CurrentPlayerID,
		TurnNumber:   state.TurnNumber,
	}
}

// PlayerIndex returns the index of playerID within gs.Players, or -1.
func (gs *GameState) PlayerIndex(playerID string) int {
	for i := range gs.Players {
		if gs.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}
