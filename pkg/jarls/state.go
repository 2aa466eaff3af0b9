package jarls

// PieceKind identifies the three kinds of pieces on the board.
type PieceKind int

const (
	Jarl PieceKind = iota
	Warrior
	Shield
)

func (k PieceKind) String() string {
	switch k {
	case Jarl:
		return "jarl"
	case Warrior:
		return "warrior"
	case Shield:
		return "shield"
	default:
		return "unknown"
	}
}

// Strength returns the piece's base combat strength: Jarl 2, Warrior 1,
// Shield 0. Shields never attack or move.
func (k PieceKind) Strength() int {
	switch k {
	case Jarl:
		return 2
	case Warrior:
		return 1
	default:
		return 0
	}
}

// Piece is a single unit on the board. OwnerID is empty for Shields, which
// have no owner.
type Piece struct {
	ID       string
	Kind     PieceKind
	OwnerID  string
	Position AxialCoord
}

// Player is one participant in a game.
type Player struct {
	ID           string
	DisplayName  string
	DisplayColor string
	Eliminated   bool
}

// Phase is the lifecycle stage of a GameState.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseSetup
	PhasePlaying
	PhaseStarvation
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseSetup:
		return "setup"
	case PhasePlaying:
		return "playing"
	case PhaseStarvation:
		return "starvation"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// WinCondition distinguishes how a game was won.
type WinCondition int

const (
	WinThrone WinCondition = iota
	WinLastStanding
)

func (w WinCondition) String() string {
	if w == WinThrone {
		return "throne"
	}
	return "last_standing"
}

// GameState is a complete, immutable-by-convention snapshot of one game.
// Every successful move produces a new GameState value; the previous value
// is left untouched. The zero value of WinnerID/WinCondition ("" / nil)
// means the game has not ended.
type GameState struct {
	GameID                     string
	Phase                      Phase
	Config                     GameConfig
	Players                    []Player // ordered = turn order
	Pieces                     []Piece
	CurrentPlayerID            string
	TurnNumber                 int
	RoundNumber                int
	RoundsSinceLastElimination int
	WinnerID                   string
	WinCondition               *WinCondition
}

// Clone returns a deep copy of the state. Mutating the clone never affects
// the original.
func (gs *GameState) Clone() *GameState {
	c := *gs
	if gs.Players != nil {
		c.Players = make([]Player, len(gs.Players))
		copy(c.Players, gs.Players)
	}
	if gs.Pieces != nil {
		c.Pieces = make([]Piece, len(gs.Pieces))
		copy(c.Pieces, gs.Pieces)
	}
	if gs.WinCondition != nil {
		wc := *gs.WinCondition
		c.WinCondition = &wc
	}
	return &c
}

// PieceByID returns a pointer into gs.Pieces for the given id, or nil.
// Lookups are O(n); acceptable given the small piece counts (<=~50) this
// engine deals with. Hosts with attack-heavy workloads may layer a
// position->piece index on top, but gs.Pieces remains the source of truth.
func (gs *GameState) PieceByID(id string) *Piece {
	for i := range gs.Pieces {
		if gs.Pieces[i].ID == id {
			return &gs.Pieces[i]
		}
	}
	return nil
}

// PieceAt returns a pointer into gs.Pieces for whatever occupies pos, or nil
// if the hex is empty.
func (gs *GameState) PieceAt(pos AxialCoord) *Piece {
	for i := range gs.Pieces {
		if gs.Pieces[i].Position == pos {
			return &gs.Pieces[i]
		}
	}
	return nil
}

// PlayerByID returns a pointer into gs.Players for the given id, or nil.
func (gs *GameState) PlayerByID(id string) *Player {
	for i := range gs.Players {
		if gs.Players[i].ID == id {
			return &gs.Players[i]
		}
	}
	return nil
}

// JarlOf returns the given player's Jarl piece, or nil if it has been
// removed from the board (the player is eliminated, or about to be).
func (gs *GameState) JarlOf(playerID string) *Piece {
	for i := range gs.Pieces {
		p := &gs.Pieces[i]
		if p.Kind == Jarl && p.OwnerID == playerID {
			return p
		}
	}
	return nil
}

// RemainingJarls returns the number of Jarl pieces still on the board.
func (gs *GameState) RemainingJarls() int {
	n := 0
	for i := range gs.Pieces {
		if gs.Pieces[i].Kind == Jarl {
			n++
		}
	}
	return n
}

// removePiece deletes the piece with the given id from gs.Pieces, if present.
func (gs *GameState) removePiece(id string) {
	for i := range gs.Pieces {
		if gs.Pieces[i].ID == id {
			gs.Pieces = append(gs.Pieces[:i], gs.Pieces[i+1:]...)
			return
		}
	}
}
