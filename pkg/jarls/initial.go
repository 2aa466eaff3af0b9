package jarls

import (
	"math"
	"sort"
)

// defaultColors are assigned to players in turn order by CreateInitialState,
// which takes no colour argument. Purely cosmetic; callers are free to
// overwrite Player.DisplayColor afterward.
var defaultColors = []string{
	"#c0392b", "#2980b9", "#27ae60", "#f39c12", "#8e44ad", "#16a085",
}

const shieldPlacementMaxRetries = 64

// CreateInitialState builds a fresh, validated starting GameState for the
// given player names. turnTimerMs may be 0 to leave the timer unset.
func CreateInitialState(playerNames []string, turnTimerMs int) (*GameState, error) {
	n := len(playerNames)
	cfg, err := ConfigFor(n, turnTimerMs)
	if err != nil {
		return nil, err
	}

	players := make([]Player, n)
	for i, name := range playerNames {
		players[i] = Player{
			ID:           newID(),
			DisplayName:  name,
			DisplayColor: defaultColors[i%len(defaultColors)],
		}
	}

	jarlPositions := placeStartingPositions(cfg.Radius, n)
	interior := interiorHexesSorted(cfg.Radius)

	var shields []AxialCoord
	placed := false
	tries := shieldPlacementMaxRetries
	if len(interior) < tries {
		tries = len(interior)
	}
	if tries == 0 {
		tries = 1
	}
	for attempt := 0; attempt < tries; attempt++ {
		candidate := buildShieldPlacement(interior, attempt, cfg.ShieldCount, n)
		if ok, _ := validateThronePaths(jarlPositions, toHexSet(candidate)); ok {
			shields = candidate
			placed = true
			break
		}
	}
	if !placed {
		return nil, ErrUnableToPlaceShields
	}

	occupied := toHexSet(shields)
	for _, p := range jarlPositions {
		occupied[p] = true
	}

	var pieces []Piece
	for _, h := range shields {
		pieces = append(pieces, Piece{ID: newID(), Kind: Shield, Position: h})
	}
	for i, player := range players {
		pieces = append(pieces, Piece{ID: newID(), Kind: Jarl, OwnerID: player.ID, Position: jarlPositions[i]})
		warriorHexes := placeWarriorsForJarl(occupied, jarlPositions[i], cfg.WarriorCount, cfg.Radius)
		for _, wh := range warriorHexes {
			pieces = append(pieces, Piece{ID: newID(), Kind: Warrior, OwnerID: player.ID, Position: wh})
		}
	}
	sortPiecesCanonically(pieces)

	return &GameState{
		GameID:          newID(),
		Phase:           PhasePlaying,
		Config:          cfg,
		Players:         players,
		Pieces:          pieces,
		CurrentPlayerID: players[0].ID,
		TurnNumber:      1,
		RoundNumber:     1,
	}, nil
}

// placeStartingPositions picks one edge hex per player, angularly spread as
// close to 2*pi*i/n as the discrete edge ring allows, without collisions.
func placeStartingPositions(radius, playerCount int) []AxialCoord {
	var edges []AxialCoord
	for _, h := range GenerateAllBoardHexes(radius) {
		if IsOnEdge(h, radius) {
			edges = append(edges, h)
		}
	}
	used := make(map[AxialCoord]bool, playerCount)
	positions := make([]AxialCoord, playerCount)
	for i := 0; i < playerCount; i++ {
		target := 2 * math.Pi * float64(i) / float64(playerCount)
		best := -1
		bestDiff := math.MaxFloat64
		for idx, h := range edges {
			if used[h] {
				continue
			}
			diff := angularDistance(HexToAngle(h), target)
			if diff < bestDiff {
				bestDiff = diff
				best = idx
			}
		}
		positions[i] = edges[best]
		used[edges[best]] = true
	}
	return positions
}

// angularDistance returns the absolute difference between two angles
// (radians), wrapped into [0, pi].
func angularDistance(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// interiorHexesSorted returns every hex with 1 <= distance <= radius-1,
// ordered center-outward (the order GenerateAllBoardHexes already produces).
func interiorHexesSorted(radius int) []AxialCoord {
	var out []AxialCoord
	for _, h := range GenerateAllBoardHexes(radius) {
		d := Distance(h, Origin)
		if d >= 1 && d <= radius-1 {
			out = append(out, h)
		}
	}
	return out
}

// generateOrbit returns the rotational orbit of seed used for shield
// placement. Two players get the 180-degree pair; player counts that evenly
// divide six get the matching N-fold orbit; everything else (4, 5 players,
// which have no clean rotational symmetry on a hex grid) falls back to the
// grid's own six-fold orbit.
func generateOrbit(seed AxialCoord, playerCount int) []AxialCoord {
	orbitCount := playerCount
	switch {
	case playerCount == 2:
		orbitCount = 2
	case 6%playerCount != 0:
		orbitCount = 6
	}
	step := 6 / orbitCount
	seen := make(map[AxialCoord]bool, orbitCount)
	var out []AxialCoord
	for k := 0; k < orbitCount; k++ {
		h := Rotate(seed, k*step)
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	return out
}

// buildShieldPlacement greedily assembles shieldCount shield positions from
// whole rotational orbits, starting the seed scan at startOffset so repeated
// calls (retries after a failed path-validation) explore different seeds.
func buildShieldPlacement(interior []AxialCoord, startOffset, shieldCount, playerCount int) []AxialCoord {
	n := len(interior)
	if n == 0 {
		return nil
	}
	var shields []AxialCoord
	inShields := make(map[AxialCoord]bool)
	for i := 0; i < n && len(shields) < shieldCount; i++ {
		seed := interior[(startOffset+i)%n]
		if inShields[seed] {
			continue
		}
		orbit := generateOrbit(seed, playerCount)
		var fresh []AxialCoord
		for _, h := range orbit {
			if !inShields[h] {
				fresh = append(fresh, h)
			}
		}
		if len(shields)+len(fresh) <= shieldCount {
			for _, h := range fresh {
				shields = append(shields, h)
				inShields[h] = true
			}
		}
		// otherwise this whole orbit is discarded; try the next seed.
	}
	if len(shields) < shieldCount {
		for i := 0; i < n && len(shields) < shieldCount; i++ {
			h := interior[(startOffset+i)%n]
			if inShields[h] {
				continue
			}
			shields = append(shields, h)
			inShields[h] = true
		}
	}
	return shields
}

// validateThronePaths implements the §4.3.1 predicate: every Jarl must have
// an unobstructed straight line to the throne. Returns the set of blocked
// player indices alongside the overall boolean so a caller could report
// exactly who lost their path.
func validateThronePaths(jarlPositions []AxialCoord, shields map[AxialCoord]bool) (bool, []int) {
	var blocked []int
	for i, pos := range jarlPositions {
		path := LineWalk(pos, Origin)
		clear := true
		if len(path) > 2 {
			for _, h := range path[1 : len(path)-1] {
				if shields[h] {
					clear = false
					break
				}
			}
		}
		if !clear {
			blocked = append(blocked, i)
		}
	}
	return len(blocked) == 0, blocked
}

// placeWarriorsForJarl places up to count warriors for one Jarl: first along
// the straight line toward the throne (skipping blocked hexes), then, if the
// line runs out before count is reached, via breadth-first expansion from
// the Jarl. occupied is shared and mutated across all players so placements
// never collide globally.
func placeWarriorsForJarl(occupied map[AxialCoord]bool, jarlPos AxialCoord, count, radius int) []AxialCoord {
	var placed []AxialCoord
	path := LineWalk(jarlPos, Origin)
	if len(path) > 1 {
		for _, h := range path[1:] {
			if len(placed) >= count {
				break
			}
			if h == Origin || occupied[h] {
				continue
			}
			placed = append(placed, h)
			occupied[h] = true
		}
	}
	if len(placed) < count {
		placed = append(placed, bfsFillHexes(occupied, jarlPos, radius, count-len(placed))...)
	}
	return placed
}

// bfsFillHexes expands outward from start in board-adjacency order,
// returning up to need previously-unoccupied, non-throne hexes. Marks
// returned hexes occupied as it goes.
func bfsFillHexes(occupied map[AxialCoord]bool, start AxialCoord, radius, need int) []AxialCoord {
	if need <= 0 {
		return nil
	}
	visited := map[AxialCoord]bool{start: true}
	queue := []AxialCoord{start}
	var result []AxialCoord
	for len(queue) > 0 && len(result) < need {
		cur := queue[0]
		queue = queue[1:]
		for d := East; d <= Southeast; d++ {
			n := Neighbor(cur, d)
			if visited[n] {
				continue
			}
			visited[n] = true
			if !IsOnBoard(n, radius) {
				continue
			}
			queue = append(queue, n)
			if n == Origin || occupied[n] {
				continue
			}
			result = append(result, n)
			occupied[n] = true
			if len(result) >= need {
				break
			}
		}
	}
	return result
}

func toHexSet(hexes []AxialCoord) map[AxialCoord]bool {
	set := make(map[AxialCoord]bool, len(hexes))
	for _, h := range hexes {
		set[h] = true
	}
	return set
}

// sortPiecesCanonically orders pieces by kind then by canonical hex key so
// repeated runs with the same inputs list the same kinds at the same
// positions in the same order. Piece IDs are random and differ between runs.
func sortPiecesCanonically(pieces []Piece) {
	sort.SliceStable(pieces, func(i, j int) bool {
		if pieces[i].Kind != pieces[j].Kind {
			return pieces[i].Kind < pieces[j].Kind
		}
		return HexToKey(pieces[i].Position) < HexToKey(pieces[j].Position)
	})
}
