package game

import (
	"fmt"

	"montyhall/domain/core"
)

// DoorContent represents what sits behind a door
type DoorContent string

const (
	Goat DoorContent = "goat"
	Car  DoorContent = "car"
)

// DoorIndex addresses one of the three doors, 1-based
type DoorIndex int

// Valid reports whether the index lies in {1,2,3}
func (d DoorIndex) Valid() bool {
	return d >= 1 && d <= 3
}

// Strategy is the contestant's decision rule after the host reveal
type Strategy string

const (
	Stay   Strategy = "stay"
	Switch Strategy = "switch"
)

// Strategies lists both decision rules in evaluation order
func Strategies() []Strategy {
	return []Strategy{Stay, Switch}
}

// Outcome is the result of one strategy's final pick
type Outcome string

const (
	Win  Outcome = "win"
	Lose Outcome = "lose"
)

// Game is an immutable assignment of contents to the three doors.
// Exactly one door holds the Car; construction enforces the invariant.
type Game struct {
	doors [3]DoorContent
}

// NewFromContents builds a game from explicit door contents, rejecting any
// assignment that does not hold exactly one car
func NewFromContents(contents [3]DoorContent) (Game, error) {
	cars := 0
	for i, c := range contents {
		switch c {
		case Car:
			cars++
		case Goat:
		default:
			return Game{}, fmt.Errorf("%w: door %d holds %q", core.ErrMalformedGame, i+1, c)
		}
	}
	if cars != 1 {
		return Game{}, fmt.Errorf("%w: found %d cars", core.ErrMalformedGame, cars)
	}
	return Game{doors: contents}, nil
}

// Content returns the content behind the given door
func (g Game) Content(door DoorIndex) (DoorContent, error) {
	if !door.Valid() {
		return "", core.NewInvalidDoorError("content lookup", int(door))
	}
	return g.doors[door-1], nil
}

// CarDoor returns the index of the door hiding the car
func (g Game) CarDoor() DoorIndex {
	for i, c := range g.doors {
		if c == Car {
			return DoorIndex(i + 1)
		}
	}
	// Unreachable for games built through NewFromContents
	return 0
}

// Doors returns a copy of the door contents in index order
func (g Game) Doors() [3]DoorContent {
	return g.doors
}
