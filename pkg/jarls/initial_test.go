package jarls

import "testing"

func namesFor(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('A' + i))
	}
	return names
}

func TestCreateInitialStateInvariants(t *testing.T) {
	for n := 2; n <= 6; n++ {
		gs, err := CreateInitialState(namesFor(n), 0)
		if err != nil {
			t.Fatalf("players=%d: unexpected error %v", n, err)
		}
		if gs.Phase != PhasePlaying {
			t.Errorf("players=%d: phase = %v, want Playing", n, gs.Phase)
		}
		if len(gs.Players) != n {
			t.Fatalf("players=%d: got %d players", n, len(gs.Players))
		}

		seen := map[AxialCoord]bool{}
		shieldCount := 0
		jarlCount := 0
		warriorCount := 0
		for _, p := range gs.Pieces {
			if !IsOnBoard(p.Position, gs.Config.Radius) {
				t.Errorf("players=%d: piece %s off board at %v", n, p.ID, p.Position)
			}
			if seen[p.Position] {
				t.Errorf("players=%d: duplicate occupied hex %v", n, p.Position)
			}
			seen[p.Position] = true
			switch p.Kind {
			case Shield:
				shieldCount++
				if p.Position == Origin {
					t.Errorf("players=%d: shield on throne", n)
				}
			case Jarl:
				jarlCount++
			case Warrior:
				warriorCount++
				if p.Position == Origin {
					t.Errorf("players=%d: warrior on throne", n)
				}
			}
		}
		if shieldCount != gs.Config.ShieldCount {
			t.Errorf("players=%d: shields = %d, want %d", n, shieldCount, gs.Config.ShieldCount)
		}
		if jarlCount != n {
			t.Errorf("players=%d: jarls = %d, want %d", n, jarlCount, n)
		}
		if want := n * gs.Config.WarriorCount; warriorCount != want {
			t.Errorf("players=%d: warriors = %d, want %d", n, warriorCount, want)
		}
		for _, player := range gs.Players {
			if gs.JarlOf(player.ID) == nil {
				t.Errorf("players=%d: player %s has no jarl", n, player.ID)
			}
		}
		if gs.CurrentPlayerID != gs.Players[0].ID {
			t.Errorf("players=%d: current player should be the first player initially", n)
		}
	}
}

func TestCreateInitialStateInvalidPlayerCount(t *testing.T) {
	for _, n := range []int{0, 1, 7, 9} {
		if _, err := CreateInitialState(namesFor(n), 0); err == nil {
			t.Errorf("players=%d: expected error, got nil", n)
		}
	}
}

func TestPlaceStartingPositionsTwoPlayersDiametric(t *testing.T) {
	positions := placeStartingPositions(3, 2)
	d := Distance(positions[0], positions[1])
	if d != 6 {
		t.Errorf("two-player starting hexes distance = %d, want 6 (diametrically opposite on radius 3)", d)
	}
}

func TestPlaceStartingPositionsThreePlayersSeparated(t *testing.T) {
	positions := placeStartingPositions(5, 3)
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			a := HexToAngle(positions[i])
			b := HexToAngle(positions[j])
			if angularDistance(a, b) <= 1.0471975511965976 { // pi/3
				t.Errorf("positions %d and %d are separated by <= pi/3", i, j)
			}
		}
	}
}

func TestGenerateOrbitSizes(t *testing.T) {
	seed := AxialCoord{Q: 2, R: 0}
	if got := len(generateOrbit(seed, 2)); got != 2 {
		t.Errorf("orbit size for 2 players = %d, want 2", got)
	}
	if got := len(generateOrbit(seed, 3)); got != 3 {
		t.Errorf("orbit size for 3 players = %d, want 3", got)
	}
	if got := len(generateOrbit(seed, 6)); got != 6 {
		t.Errorf("orbit size for 6 players = %d, want 6", got)
	}
}
