package jarls

import "testing"

func newTestState(radius int, players []Player, pieces []Piece) *GameState {
	cfg, _ := ConfigFor(len(players), 0)
	cfg.Radius = radius
	return &GameState{
		GameID:          "test-game",
		Phase:           PhasePlaying,
		Config:          cfg,
		Players:         players,
		Pieces:          pieces,
		CurrentPlayerID: players[0].ID,
		TurnNumber:      1,
		RoundNumber:     1,
	}
}

func twoPlayers() []Player {
	return []Player{
		{ID: "p1", DisplayName: "One"},
		{ID: "p2", DisplayName: "Two"},
	}
}

func TestValidateMoveWarriorOneHex(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: 1, R: 0}},
		{ID: "w2", Kind: Warrior, OwnerID: "p2", Position: AxialCoord{Q: -1, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "w1", Destination: AxialCoord{Q: 2, R: 0}})
	if !res.Valid {
		t.Fatalf("expected valid move, got error %v", res.ErrorKind)
	}
	if res.HasMomentum {
		t.Error("1-hex move should not have momentum")
	}
}

func TestValidateMoveNotYourTurn(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "w1", Kind: Warrior, OwnerID: "p2", Position: AxialCoord{Q: 1, R: 0}},
	})
	res := ValidateMove(gs, "p2", MoveCommand{PieceID: "w1", Destination: AxialCoord{Q: 2, R: 0}})
	if res.Valid || res.ErrorKind != ErrNotYourTurn {
		t.Fatalf("expected ErrNotYourTurn, got %+v", res)
	}
}

func TestValidateMoveShieldCannotMove(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "s1", Kind: Shield, Position: AxialCoord{Q: 1, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "s1", Destination: AxialCoord{Q: 2, R: 0}})
	if res.Valid || res.ErrorKind != ErrShieldCannotMove {
		t.Fatalf("expected ErrShieldCannotMove, got %+v", res)
	}
}

func TestValidateMoveDestinationOffBoard(t *testing.T) {
	gs := newTestState(2, twoPlayers(), []Piece{
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: 2, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "w1", Destination: AxialCoord{Q: 4, R: 0}})
	if res.Valid || res.ErrorKind != ErrDestinationOffBoard {
		t.Fatalf("expected ErrDestinationOffBoard, got %+v", res)
	}
}

func TestValidateMoveNotStraightLine(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: 0, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "w1", Destination: AxialCoord{Q: 1, R: 2}})
	if res.Valid || res.ErrorKind != ErrMoveNotStraightLine {
		t.Fatalf("expected ErrMoveNotStraightLine, got %+v", res)
	}
}

func TestValidateMoveWarriorInvalidDistance(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: -3, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "w1", Destination: AxialCoord{Q: 0, R: 0}})
	if res.Valid || res.ErrorKind != ErrInvalidDistanceWarrior {
		t.Fatalf("expected ErrInvalidDistanceWarrior, got %+v", res)
	}
}

func TestValidateMoveJarlTwoHexNeedsDraft(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "j1", Kind: Jarl, OwnerID: "p1", Position: AxialCoord{Q: 0, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "j1", Destination: AxialCoord{Q: 2, R: 0}})
	if res.Valid || res.ErrorKind != ErrJarlNeedsDraftForTwoHex {
		t.Fatalf("expected ErrJarlNeedsDraftForTwoHex, got %+v", res)
	}
}

func TestValidateMoveJarlTwoHexWithDraft(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "j1", Kind: Jarl, OwnerID: "p1", Position: AxialCoord{Q: 0, R: 0}},
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: -1, R: 0}},
		{ID: "w2", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: -2, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "j1", Destination: AxialCoord{Q: 2, R: 0}})
	if !res.Valid {
		t.Fatalf("expected valid draft move, got error %v", res.ErrorKind)
	}
	if !res.HasMomentum {
		t.Error("2-hex move should have momentum")
	}
}

func TestValidateMovePathBlocked(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "j1", Kind: Jarl, OwnerID: "p1", Position: AxialCoord{Q: 0, R: 0}},
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: -1, R: 0}},
		{ID: "w2", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: -2, R: 0}},
		{ID: "wE", Kind: Warrior, OwnerID: "p2", Position: AxialCoord{Q: 1, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "j1", Destination: AxialCoord{Q: 2, R: 0}})
	if res.Valid || res.ErrorKind != ErrPathBlocked {
		t.Fatalf("expected ErrPathBlocked, got %+v", res)
	}
}

func TestValidateMoveWarriorCannotEnterThrone(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: 1, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "w1", Destination: AxialCoord{Q: 0, R: 0}})
	if res.Valid || res.ErrorKind != ErrWarriorCannotEnterThrone {
		t.Fatalf("expected ErrWarriorCannotEnterThrone, got %+v", res)
	}
}

func TestValidateMoveDestinationOccupiedFriendly(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: 1, R: 0}},
		{ID: "w2", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: 2, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "w1", Destination: AxialCoord{Q: 2, R: 0}})
	if res.Valid || res.ErrorKind != ErrDestinationOccupiedFriendly {
		t.Fatalf("expected ErrDestinationOccupiedFriendly, got %+v", res)
	}
}

func TestValidateMoveJarlCrossingThroneAdjustsDestination(t *testing.T) {
	gs := newTestState(3, twoPlayers(), []Piece{
		{ID: "j1", Kind: Jarl, OwnerID: "p1", Position: AxialCoord{Q: -1, R: 0}},
		{ID: "w1", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: -2, R: 0}},
		{ID: "w2", Kind: Warrior, OwnerID: "p1", Position: AxialCoord{Q: -3, R: 0}},
	})
	res := ValidateMove(gs, "p1", MoveCommand{PieceID: "j1", Destination: AxialCoord{Q: 1, R: 0}})
	if !res.Valid {
		t.Fatalf("expected valid move, got %v", res.ErrorKind)
	}
	if res.AdjustedDestination == nil || *res.AdjustedDestination != Origin {
		t.Fatalf("expected adjusted destination = origin, got %+v", res.AdjustedDestination)
	}
}
