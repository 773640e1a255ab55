package elevator

import (
	"sync"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Log = logger.GetLogger()

// Definition is what the composing application supplies for each car.
type Definition struct {
	ID                int `yaml:"id" json:"id"`
	MaxPassengerLimit int `yaml:"max_passenger_limit" json:"max_passenger_limit"`
	StartFloor        int `yaml:"start_floor" json:"start_floor"`
	PassengerCount    int `yaml:"passenger_count" json:"passenger_count"`
}

// Elevator holds the state of one car. The dispatcher reads it and edits the
// queue; the movement fields are only written by the car's own mover.
type Elevator struct {
	mu sync.RWMutex

	id                int
	maxPassengerLimit int

	currentFloor   int
	callingFloor   int
	targetFloor    int
	direction      elevconsts.Direction
	doorState      elevconsts.DoorState
	isMoving       bool
	passengerCount int
	floorRequests  []elevrequest.FloorRequest
}

func NewElevator(def Definition) *Elevator {
	passengers := def.PassengerCount
	if passengers < 0 {
		passengers = 0
	}
	if passengers > def.MaxPassengerLimit {
		Log.Warn().Msgf("Elevator %d starts with %d passengers, clamping to limit %d", def.ID, passengers, def.MaxPassengerLimit)
		passengers = def.MaxPassengerLimit
	}

	return &Elevator{
		id:                def.ID,
		maxPassengerLimit: def.MaxPassengerLimit,
		currentFloor:      def.StartFloor,
		callingFloor:      def.StartFloor,
		targetFloor:       def.StartFloor,
		direction:         elevconsts.None,
		doorState:         elevconsts.Closed,
		passengerCount:    passengers,
	}
}

func (e *Elevator) ID() int                { return e.id }
func (e *Elevator) MaxPassengerLimit() int { return e.maxPassengerLimit }

func (e *Elevator) CurrentFloor() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.currentFloor
}

func (e *Elevator) CallingFloor() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.callingFloor
}

func (e *Elevator) TargetFloor() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.targetFloor
}

func (e *Elevator) Direction() elevconsts.Direction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.direction
}

func (e *Elevator) DoorState() elevconsts.DoorState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doorState
}

func (e *Elevator) IsMoving() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.isMoving
}

func (e *Elevator) PassengerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.passengerCount
}

// AddFloorRequest appends to the tail of the queue. Capacity is checked by
// the caller.
func (e *Elevator) AddFloorRequest(req elevrequest.FloorRequest) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.floorRequests = append(e.floorRequests, req)
}

// PrependFloorRequest puts req at the head of the queue so it is served next.
func (e *Elevator) PrependFloorRequest(req elevrequest.FloorRequest) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.floorRequests = append([]elevrequest.FloorRequest{req}, e.floorRequests...)
}

// RemoveFloorRequest removes the queued request with the same ID and reports
// whether one was found.
func (e *Elevator) RemoveFloorRequest(req elevrequest.FloorRequest) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, queued := range e.floorRequests {
		if queued.ID == req.ID {
			e.floorRequests = append(e.floorRequests[:i], e.floorRequests[i+1:]...)
			return true
		}
	}
	return false
}

// NextFloorRequest returns the head of the queue without removing it.
func (e *Elevator) NextFloorRequest() (elevrequest.FloorRequest, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.floorRequests) == 0 {
		return elevrequest.FloorRequest{}, false
	}
	return e.floorRequests[0], true
}

func (e *Elevator) FloorRequests() []elevrequest.FloorRequest {
	e.mu.RLock()
	defer e.mu.RUnlock()
	requests := make([]elevrequest.FloorRequest, len(e.floorRequests))
	copy(requests, e.floorRequests)
	return requests
}

func (e *Elevator) PendingRequests() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.floorRequests)
}

func (e *Elevator) IsFull(additional int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.passengerCount+additional > e.maxPassengerLimit
}

// GetExcessPassengers may be zero or negative when the car is not full.
func (e *Elevator) GetExcessPassengers(additional int) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.passengerCount + additional - e.maxPassengerLimit
}

func (e *Elevator) SpareCapacity() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	spare := e.maxPassengerLimit - e.passengerCount
	if spare < 0 {
		return 0
	}
	return spare
}

// IncrementPassengerCount boards at most the spare capacity and returns the
// number actually boarded.
func (e *Elevator) IncrementPassengerCount(count int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if count <= 0 {
		return 0
	}
	if e.passengerCount+count > e.maxPassengerLimit {
		count = e.maxPassengerLimit - e.passengerCount
	}
	e.passengerCount += count
	return count
}

// DecrementPassengerCount returns the number actually removed; the count
// never goes below zero.
func (e *Elevator) DecrementPassengerCount(count int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if count <= 0 {
		return 0
	}
	if count > e.passengerCount {
		count = e.passengerCount
	}
	e.passengerCount -= count
	return count
}

func (e *Elevator) ResetPassengerCount() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.passengerCount = 0
}

// SetTrip records the active calling and target floors.
func (e *Elevator) SetTrip(callingFloor, targetFloor int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.callingFloor = callingFloor
	e.targetFloor = targetFloor
}

// StartMoving sets the direction and marks the car as moving. A None
// direction stops it instead.
func (e *Elevator) StartMoving(direction elevconsts.Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.direction = direction
	e.isMoving = direction != elevconsts.None
}

func (e *Elevator) StopMoving() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.direction = elevconsts.None
	e.isMoving = false
}

// StepFloor advances one floor in the current direction and returns the new
// floor.
func (e *Elevator) StepFloor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.currentFloor += e.direction.Step()
	return e.currentFloor
}

func (e *Elevator) SetDoorState(state elevconsts.DoorState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doorState = state
}
