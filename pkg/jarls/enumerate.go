package jarls

// MoveType distinguishes a reachable hex that is empty from one that holds
// an enemy piece.
type MoveType int

const (
	MoveTypeMove MoveType = iota
	MoveTypeAttack
)

func (m MoveType) String() string {
	if m == MoveTypeAttack {
		return "attack"
	}
	return "move"
}

// ReachableHex is one candidate destination for a piece, ignoring whose turn
// it is (this is a query, not an action).
type ReachableHex struct {
	Destination AxialCoord
	MoveType    MoveType
	HasMomentum bool
	Direction   HexDirection
}

// ValidMove extends ReachableHex with a full combat preview for attacks.
type ValidMove struct {
	ReachableHex
	CombatPreview *CombatResult // nil unless MoveType == MoveTypeAttack
}

// GetReachableHexes lists every destination the validator would accept for
// pieceID, ignoring the current-player check. Empty for Shields or unknown
// pieces.
func GetReachableHexes(state *GameState, pieceID string) []ReachableHex {
	piece := state.PieceByID(pieceID)
	if piece == nil || piece.Kind == Shield {
		return nil
	}

	var out []ReachableHex
	for dir := East; dir <= Southeast; dir++ {
		for _, dist := range []int{1, 2} {
			dest := piece.Position
			for i := 0; i < dist; i++ {
				dest = Neighbor(dest, dir)
			}
			res := validateMoveIgnoringTurn(state, piece, dest, dir, dist)
			if !res.Valid {
				continue
			}
			moveType := MoveTypeMove
			if target := state.PieceAt(dest); target != nil {
				moveType = MoveTypeAttack
			}
			out = append(out, ReachableHex{
				Destination: dest,
				MoveType:    moveType,
				HasMomentum: res.HasMomentum,
				Direction:   dir,
			})
		}
	}
	return out
}

// GetValidMoves is GetReachableHexes plus a CombatResult preview on every
// attack entry.
func GetValidMoves(state *GameState, pieceID string) []ValidMove {
	reachable := GetReachableHexes(state, pieceID)
	if reachable == nil {
		return nil
	}
	piece := state.PieceByID(pieceID)
	out := make([]ValidMove, len(reachable))
	for i, r := range reachable {
		out[i] = ValidMove{ReachableHex: r}
		if r.MoveType == MoveTypeAttack {
			defender := state.PieceAt(r.Destination)
			strikingPos := Neighbor(r.Destination, r.Direction.Opposite())
			result := CalculateCombat(state, piece, strikingPos, defender, r.Destination, r.Direction, r.HasMomentum)
			out[i].CombatPreview = &result
		}
	}
	return out
}

// validateMoveIgnoringTurn runs the same ordered checks as ValidateMove but
// skips the NotYourTurn gate, since enumeration is a read-only query that
// should work regardless of whose turn it is.
func validateMoveIgnoringTurn(state *GameState, piece *Piece, dest AxialCoord, dir HexDirection, dist int) ValidationResult {
	if state.Phase != PhasePlaying && state.Phase != PhaseStarvation {
		return invalid(ErrGameNotPlaying)
	}
	if !IsOnBoard(dest, state.Config.Radius) {
		return invalid(ErrDestinationOffBoard)
	}
	if piece.Position == dest {
		return invalid(ErrMoveNotStraightLine)
	}

	hasDraft := false
	switch piece.Kind {
	case Warrior:
		if dist != 1 && dist != 2 {
			return invalid(ErrInvalidDistanceWarrior)
		}
	case Jarl:
		if dist != 1 && dist != 2 {
			return invalid(ErrInvalidDistanceJarl)
		}
		if dist == 2 {
			hasDraft = hasDraftFormation(state, piece, dir)
			if !hasDraft {
				return invalid(ErrJarlNeedsDraftForTwoHex)
			}
		}
	}

	path := LineWalk(piece.Position, dest)
	for _, h := range path[1 : len(path)-1] {
		if state.PieceAt(h) != nil {
			return invalid(ErrPathBlocked)
		}
	}

	if piece.Kind == Warrior && dest == Origin {
		return invalid(ErrWarriorCannotEnterThrone)
	}

	if target := state.PieceAt(dest); target != nil && target.OwnerID == piece.OwnerID && target.OwnerID != "" {
		return invalid(ErrDestinationOccupiedFriendly)
	}

	result := ValidationResult{Valid: true, HasMomentum: dist == 2}
	if piece.Kind == Jarl && dist == 2 && crossesThrone(piece.Position, dest, dir) {
		throne := Origin
		result.AdjustedDestination = &throne
	}
	return result
}
