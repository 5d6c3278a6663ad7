package game

import (
	"fmt"
	"math/rand"

	"montyhall/domain/core"
)

// New produces a game with {Goat, Goat, Car} uniformly permuted across the
// three doors, consuming exactly one draw from rng
func New(rng *rand.Rand) Game {
	contents := [3]DoorContent{Goat, Goat, Goat}
	contents[rng.Intn(3)] = Car
	g, err := NewFromContents(contents)
	if err != nil {
		// Cannot happen: the assignment above always places exactly one car
		panic(fmt.Sprintf("game construction violated its own invariant: %v", err))
	}
	return g
}

// SelectDoor draws the contestant's initial pick uniformly from {1,2,3},
// independent of the game contents
func SelectDoor(rng *rand.Rand) DoorIndex {
	return DoorIndex(rng.Intn(3) + 1)
}

// RevealGoatDoor returns the door the host opens: never the contestant's
// pick and never the car. When the pick is the car both remaining doors are
// goats and the host breaks the tie uniformly; otherwise the candidate set
// is a singleton and no randomness is consumed.
func RevealGoatDoor(g Game, pick DoorIndex, rng *rand.Rand) (DoorIndex, error) {
	if !pick.Valid() {
		return 0, core.NewInvalidDoorError("contestant pick", int(pick))
	}

	var candidates []DoorIndex
	for door := DoorIndex(1); door <= 3; door++ {
		if door == pick || g.doors[door-1] == Car {
			continue
		}
		candidates = append(candidates, door)
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 2:
		return candidates[rng.Intn(2)], nil
	default:
		// Unreachable under the one-car invariant
		return 0, fmt.Errorf("%w: %d goat doors available to reveal", core.ErrMalformedGame, len(candidates))
	}
}

// ResolveFinalPick applies the strategy to the post-reveal position. Stay
// keeps the original pick; Switch takes the one door that is neither the
// pick nor the revealed door.
func ResolveFinalPick(strategy Strategy, revealed, pick DoorIndex) (DoorIndex, error) {
	if !pick.Valid() {
		return 0, core.NewInvalidDoorError("contestant pick", int(pick))
	}
	if !revealed.Valid() {
		return 0, core.NewInvalidDoorError("revealed door", int(revealed))
	}
	if revealed == pick {
		return 0, fmt.Errorf("%w: revealed door equals contestant pick %d", core.ErrIndexCollision, pick)
	}

	switch strategy {
	case Stay:
		return pick, nil
	case Switch:
		// The three indices sum to 6, so the remaining door falls out directly
		return 6 - revealed - pick, nil
	default:
		return 0, core.NewValidationError("strategy", fmt.Sprintf("unknown strategy %q", strategy))
	}
}

// Judge maps the final pick to an outcome: Win iff the car sits behind it
func Judge(finalPick DoorIndex, g Game) (Outcome, error) {
	content, err := g.Content(finalPick)
	if err != nil {
		return "", err
	}
	if content == Car {
		return Win, nil
	}
	return Lose, nil
}
