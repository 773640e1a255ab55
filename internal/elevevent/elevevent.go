package elevevent

import (
	"time"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
)

type ElevatorEvent struct {
	//Golang doesnt support union types,
	//so we have to pass any of the below
	//structs
	Value any
}

// Publisher receives every event a mover produces.
type Publisher interface {
	Publish(event ElevatorEvent)
}

// PublisherFunc adapts a plain function to Publisher.
type PublisherFunc func(event ElevatorEvent)

func (f PublisherFunc) Publish(event ElevatorEvent) { f(event) }

// Fired at every floor increment and every door sub-state transition.
type StatusChangedEvent struct {
	ElevatorID     int
	Direction      elevconsts.Direction
	CallingFloor   int
	CurrentFloor   int
	TargetFloor    int
	IsMoving       bool
	DoorState      elevconsts.DoorState
	PassengerCount int
	Timestamp      time.Time
}

func (sce StatusChangedEvent) Wrap() ElevatorEvent {
	return ElevatorEvent{Value: sce}
}

// Fired when a car could not board everybody at the calling floor.
type OverloadEvent struct {
	ElevatorID       int
	CallingFloor     int
	TargetFloor      int
	ExcessPassengers int
}

func (oe OverloadEvent) Wrap() ElevatorEvent {
	return ElevatorEvent{Value: oe}
}

type PassengersLoadedEvent struct {
	ElevatorID int
	Request    elevrequest.FloorRequest
	Floor      int
	Count      int
}

func (ple PassengersLoadedEvent) Wrap() ElevatorEvent {
	return ElevatorEvent{Value: ple}
}

type PassengersOffloadedEvent struct {
	ElevatorID int
	Request    elevrequest.FloorRequest
	Floor      int
	Count      int
}

func (poe PassengersOffloadedEvent) Wrap() ElevatorEvent {
	return ElevatorEvent{Value: poe}
}

// Fired once a request has been fully serviced and left the queue.
type RequestCompletedEvent struct {
	ElevatorID int
	Request    elevrequest.FloorRequest
}

func (rce RequestCompletedEvent) Wrap() ElevatorEvent {
	return ElevatorEvent{Value: rce}
}

func (e *ElevatorEvent) EventType() string {
	switch e.Value.(type) {
	case StatusChangedEvent:
		return "StatusChangedEvent"
	case OverloadEvent:
		return "OverloadEvent"
	case PassengersLoadedEvent:
		return "PassengersLoadedEvent"
	case PassengersOffloadedEvent:
		return "PassengersOffloadedEvent"
	case RequestCompletedEvent:
		return "RequestCompletedEvent"
	default:
		return "UnknownEvent"
	}
}

// ElevatorID returns the car an event refers to, or -1 for unknown values.
func (e *ElevatorEvent) ElevatorID() int {
	switch evnt := e.Value.(type) {
	case StatusChangedEvent:
		return evnt.ElevatorID
	case OverloadEvent:
		return evnt.ElevatorID
	case PassengersLoadedEvent:
		return evnt.ElevatorID
	case PassengersOffloadedEvent:
		return evnt.ElevatorID
	case RequestCompletedEvent:
		return evnt.ElevatorID
	default:
		return -1
	}
}
