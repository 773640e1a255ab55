package elevconsts

import "time"

const (
	DEFAULT_MAX_PASSENGER_LIMIT   = 10
	DEFAULT_FLOOR_TRAVEL_DURATION = time.Second
	DEFAULT_DOOR_OPEN_DURATION    = 2 * time.Second
	DEFAULT_DOOR_CLOSE_DURATION   = 2 * time.Second
	DEFAULT_HISTORY_LIMIT         = 1000
)

type Direction int

const (
	None Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case None:
		return "None"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "Undefined"
	}
}

// Step is the floor increment for one move in this direction.
func (d Direction) Step() int {
	switch d {
	case Up:
		return 1
	case Down:
		return -1
	default:
		return 0
	}
}

// DirectionBetween returns the direction of travel from one floor to another.
func DirectionBetween(from, to int) Direction {
	switch {
	case to > from:
		return Up
	case to < from:
		return Down
	default:
		return None
	}
}

type DoorState int

const (
	Closed DoorState = iota
	Opening
	Opened
	Closing
)

func (ds DoorState) String() string {
	switch ds {
	case Closed:
		return "Closed"
	case Opening:
		return "Opening"
	case Opened:
		return "Opened"
	case Closing:
		return "Closing"
	default:
		return "Undefined"
	}
}

type MoverPhase int

const (
	Idle MoverPhase = iota
	MovingToCalling
	DoorCycleAtCalling
	MovingToTarget
	DoorCycleAtTarget
)

func (mp MoverPhase) String() string {
	switch mp {
	case Idle:
		return "MP_Idle"
	case MovingToCalling:
		return "MP_MovingToCalling"
	case DoorCycleAtCalling:
		return "MP_DoorCycleAtCalling"
	case MovingToTarget:
		return "MP_MovingToTarget"
	case DoorCycleAtTarget:
		return "MP_DoorCycleAtTarget"
	default:
		return "MP_UNDEFINED"
	}
}
