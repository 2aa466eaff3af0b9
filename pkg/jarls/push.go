package jarls

// terminatorKind classifies what stops a push chain.
type terminatorKind int

const (
	terminatorEmpty terminatorKind = iota
	terminatorShield
	terminatorThrone
	terminatorEdge
)

// PushResult carries the consequences of resolving a successful attack.
type PushResult struct {
	Events               []Event
	EliminatedPieceIDs   []string
	EliminatedJarlOwners []string // owner ids whose Jarl was just ejected off-board
}

// ResolvePush runs chain detection from defenderPos in pushDirection and
// applies the terminator-specific resolution, mutating state in place (the
// caller is expected to operate on a clone). attackerFrom is the attacker's
// pre-move position; attackerStrikingPos is the hex adjacent to the
// defender the attacker struck from (equal to attackerFrom for a 1-hex
// attack); hasMomentum is carried into the emitted Move event.
//
// Compression (terminator Shield/Throne) cannot literally seat the attacker
// on the defender's hex without two pieces sharing a square, since the
// defender has nowhere to go. The attacker instead halts at
// attackerStrikingPos, mirroring the Blocked resolution positionally while
// still being logged as a Push outcome (the attack won; the wall stopped
// the chain, not the defender's strength).
func ResolvePush(state *GameState, attackerID string, attackerFrom, attackerStrikingPos, defenderPos AxialCoord, pushDirection HexDirection, hasMomentum bool) PushResult {
	chain := detectChain(state, defenderPos, pushDirection)

	var events []Event
	var eliminated []string
	var eliminatedJarlOwners []string

	attacker := state.PieceByID(attackerID)

	switch chain.terminator {
	case terminatorEmpty:
		attacker.Position = defenderPos
		events = append(events, MoveEvent{PieceID: attackerID, From: attackerFrom, To: defenderPos, HasMomentum: hasMomentum})
		for depth, id := range chain.pieceIDs {
			p := state.PieceByID(id)
			from := p.Position
			to := Neighbor(from, pushDirection)
			p.Position = to
			events = append(events, PushEvent{PieceID: id, From: from, To: to, PushDirection: pushDirection, Depth: depth})
		}

	case terminatorEdge:
		attacker.Position = defenderPos
		events = append(events, MoveEvent{PieceID: attackerID, From: attackerFrom, To: defenderPos, HasMomentum: hasMomentum})
		last := len(chain.pieceIDs) - 1
		for depth, id := range chain.pieceIDs {
			p := state.PieceByID(id)
			if depth == last {
				continue
			}
			from := p.Position
			to := Neighbor(from, pushDirection)
			p.Position = to
			events = append(events, PushEvent{PieceID: id, From: from, To: to, PushDirection: pushDirection, Depth: depth})
		}
		ejected := state.PieceByID(chain.pieceIDs[last])
		events = append(events, EliminatedEvent{
			PieceID:  ejected.ID,
			PlayerID: ejected.OwnerID,
			Position: ejected.Position,
			Cause:    CauseEdge,
		})
		eliminated = append(eliminated, ejected.ID)
		if ejected.Kind == Jarl {
			eliminatedJarlOwners = append(eliminatedJarlOwners, ejected.OwnerID)
		}
		state.removePiece(ejected.ID)

	case terminatorShield, terminatorThrone:
		// Compression: the chain is unchanged; the attacker advances only
		// as far as the hex adjacent to it.
		if attackerStrikingPos != attackerFrom {
			attacker.Position = attackerStrikingPos
			events = append(events, MoveEvent{PieceID: attackerID, From: attackerFrom, To: attackerStrikingPos, HasMomentum: hasMomentum})
		}
	}

	return PushResult{Events: events, EliminatedPieceIDs: eliminated, EliminatedJarlOwners: eliminatedJarlOwners}
}

// chain is the ordered list of pieces a push would move, plus what stopped
// it.
type chain struct {
	pieceIDs   []string
	terminator terminatorKind
}

// detectChain walks from defenderPos in pushDirection, classifying the
// terminator per §4.6.1. The throne terminator applies only when the piece
// that would land there is a Jarl; any other piece simply slides onto an
// empty throne.
func detectChain(state *GameState, defenderPos AxialCoord, pushDirection HexDirection) chain {
	var ids []string
	cur := defenderPos
	for {
		piece := state.PieceAt(cur)
		if piece == nil {
			// Should not happen for the first iteration (defender must be
			// present); an empty hex here means the chain already ended.
			break
		}
		ids = append(ids, piece.ID)

		next := Neighbor(cur, pushDirection)
		if !IsOnBoard(next, state.Config.Radius) {
			return chain{pieceIDs: ids, terminator: terminatorEdge}
		}
		nextPiece := state.PieceAt(next)
		if nextPiece == nil {
			if next == Origin && piece.Kind == Jarl {
				return chain{pieceIDs: ids, terminator: terminatorThrone}
			}
			return chain{pieceIDs: ids, terminator: terminatorEmpty}
		}
		if nextPiece.Kind == Shield {
			return chain{pieceIDs: ids, terminator: terminatorShield}
		}
		cur = next
	}
	return chain{pieceIDs: ids, terminator: terminatorEmpty}
}
