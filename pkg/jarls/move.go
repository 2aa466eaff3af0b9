package jarls

// MoveCommand is the player-issued intent: move (or attack with) pieceId
// toward destination.
type MoveCommand struct {
	PieceID     string
	Destination AxialCoord
}

// ValidationResult is the outcome of ValidateMove.
type ValidationResult struct {
	Valid                bool
	ErrorKind            ErrorKind
	HasMomentum          bool
	AdjustedDestination  *AxialCoord // non-nil only when a Jarl's 2-hex move is clamped to the throne
}

func invalid(kind ErrorKind) ValidationResult {
	return ValidationResult{Valid: false, ErrorKind: kind}
}

// ValidateMove runs the full ordered check list from the move validator
// component. Checks short-circuit on the first failure.
func ValidateMove(state *GameState, actingPlayerID string, cmd MoveCommand) ValidationResult {
	if state.Phase != PhasePlaying && state.Phase != PhaseStarvation {
		return invalid(ErrGameNotPlaying)
	}
	piece := state.PieceByID(cmd.PieceID)
	if piece == nil {
		return invalid(ErrPieceNotFound)
	}
	if piece.Kind == Shield {
		return invalid(ErrShieldCannotMove)
	}
	if piece.OwnerID != actingPlayerID {
		return invalid(ErrNotYourPiece)
	}
	if state.CurrentPlayerID != actingPlayerID {
		return invalid(ErrNotYourTurn)
	}
	if !IsOnBoard(cmd.Destination, state.Config.Radius) {
		return invalid(ErrDestinationOffBoard)
	}
	direction, ok := LineDirection(piece.Position, cmd.Destination)
	if !ok {
		return invalid(ErrMoveNotStraightLine)
	}

	d := Distance(piece.Position, cmd.Destination)
	hasDraft := false
	switch piece.Kind {
	case Warrior:
		if d != 1 && d != 2 {
			return invalid(ErrInvalidDistanceWarrior)
		}
	case Jarl:
		if d != 1 && d != 2 {
			return invalid(ErrInvalidDistanceJarl)
		}
		if d == 2 {
			hasDraft = hasDraftFormation(state, piece, direction)
			if !hasDraft {
				return invalid(ErrJarlNeedsDraftForTwoHex)
			}
		}
	}

	path := LineWalk(piece.Position, cmd.Destination)
	for _, h := range path[1 : len(path)-1] {
		if state.PieceAt(h) != nil {
			return invalid(ErrPathBlocked)
		}
	}

	if piece.Kind == Warrior && cmd.Destination == Origin {
		return invalid(ErrWarriorCannotEnterThrone)
	}

	if dest := state.PieceAt(cmd.Destination); dest != nil && dest.OwnerID == piece.OwnerID && dest.OwnerID != "" {
		return invalid(ErrDestinationOccupiedFriendly)
	}

	result := ValidationResult{
		Valid:       true,
		HasMomentum: d == 2,
	}
	if piece.Kind == Jarl && d == 2 {
		if crossesThrone(piece.Position, cmd.Destination, direction) {
			throne := Origin
			result.AdjustedDestination = &throne
		}
	}
	return result
}

// hasDraftFormation walks opposite the movement direction looking for at
// least two friendly pieces before hitting an enemy, a shield, or the board
// edge. Empty hexes between friendlies are permitted.
func hasDraftFormation(state *GameState, mover *Piece, direction HexDirection) bool {
	behind := direction.Opposite()
	friendlyCount := 0
	cur := mover.Position
	for {
		next := Neighbor(cur, behind)
		if !IsOnBoard(next, state.Config.Radius) {
			break
		}
		occ := state.PieceAt(next)
		if occ == nil {
			cur = next
			continue
		}
		if occ.OwnerID != mover.OwnerID || occ.OwnerID == "" {
			break
		}
		friendlyCount++
		if friendlyCount >= 2 {
			return true
		}
		cur = next
	}
	return friendlyCount >= 2
}

// crossesThrone reports whether the straight line from origin to dest passes
// through (0,0) as an interior hex (not as the final destination itself,
// which is handled separately by the caller already landing there).
func crossesThrone(origin, dest AxialCoord, _ HexDirection) bool {
	if dest == Origin {
		return false
	}
	path := LineWalk(origin, dest)
	for _, h := range path[1 : len(path)-1] {
		if h == Origin {
			return true
		}
	}
	return false
}
