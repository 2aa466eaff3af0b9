package jarls

// ApplyResult is the outcome of applyMove.
type ApplyResult struct {
	Success  bool
	NewState *GameState
	Events   []Event
	Error    ErrorKind
}

// ApplyMove validates cmd, resolves it (simple move, blocked attack, or a
// push chain), checks victory conditions, and advances the turn. On
// validation failure it returns the original state unchanged.
func ApplyMove(state *GameState, actingPlayerID string, cmd MoveCommand) ApplyResult {
	validation := ValidateMove(state, actingPlayerID, cmd)
	if !validation.Valid {
		return ApplyResult{Success: false, NewState: state, Error: validation.ErrorKind}
	}

	next := state.Clone()
	piece := next.PieceByID(cmd.PieceID)
	from := piece.Position
	dest := cmd.Destination
	if validation.AdjustedDestination != nil {
		dest = *validation.AdjustedDestination
	}

	var events []Event
	var eliminationHappened bool
	var movedVoluntarily string

	direction, _ := LineDirection(from, dest)
	defender := next.PieceAt(dest)

	switch {
	case defender == nil:
		piece.Position = dest
		events = append(events, MoveEvent{PieceID: piece.ID, From: from, To: dest, HasMomentum: validation.HasMomentum})
		movedVoluntarily = piece.ID

	default:
		strikingPos := from
		if validation.HasMomentum {
			strikingPos = Neighbor(from, direction)
		}
		combat := CalculateCombat(next, piece, strikingPos, defender, dest, direction, validation.HasMomentum)

		switch combat.Outcome {
		case Blocked:
			newPos := from
			if validation.HasMomentum {
				newPos = strikingPos
			}
			if newPos != from {
				piece.Position = newPos
				events = append(events, MoveEvent{PieceID: piece.ID, From: from, To: newPos, HasMomentum: validation.HasMomentum})
			}
			// Degenerate 1-hex blocked attack: no Move event emitted, per
			// the documented resolution of the source's ambiguous behavior.

		case Push:
			result := ResolvePush(next, piece.ID, from, strikingPos, dest, combat.PushDirection, validation.HasMomentum)
			events = append(events, result.Events...)
			movedVoluntarily = piece.ID

			for _, ownerID := range result.EliminatedJarlOwners {
				eliminationHappened = true
				events = append(events, eliminatePlayer(next, ownerID)...)
			}
		}
	}

	victory := CheckWinConditions(next, movedVoluntarily, movedVoluntarily != "")
	if victory.Won {
		wc := victory.WinCondition
		next.Phase = PhaseEnded
		next.WinnerID = victory.WinnerID
		next.WinCondition = &wc
		events = append(events, GameEndedEvent{WinnerID: victory.WinnerID, WinCondition: wc})
		return ApplyResult{Success: true, NewState: next, Events: events}
	}

	turnEvent := advanceTurn(next, eliminationHappened)
	events = append(events, turnEvent)

	return ApplyResult{Success: true, NewState: next, Events: events}
}
