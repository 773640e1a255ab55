package elevator

import (
	"encoding/json"
	"time"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
)

type Status struct {
	ID                int                  `json:"id"`
	CurrentFloor      int                  `json:"current_floor"`
	TargetFloor       int                  `json:"target_floor"`
	CallingFloor      int                  `json:"calling_floor"`
	Direction         elevconsts.Direction `json:"direction"`
	DoorState         elevconsts.DoorState `json:"door_state"`
	IsMoving          bool                 `json:"is_moving"`
	PassengerCount    int                  `json:"passenger_count"`
	MaxPassengerLimit int                  `json:"max_passenger_limit"`
	PendingRequests   int                  `json:"pending_requests"`
}

// MovementHistory is one timestamped status snapshot.
type MovementHistory struct {
	ElevatorID     int                  `json:"elevator_id"`
	CallingFloor   int                  `json:"calling_floor"`
	CurrentFloor   int                  `json:"current_floor"`
	TargetFloor    int                  `json:"target_floor"`
	Direction      elevconsts.Direction `json:"direction"`
	PassengerCount int                  `json:"passenger_count"`
	IsMoving       bool                 `json:"is_moving"`
	DoorState      elevconsts.DoorState `json:"door_state"`
	Timestamp      time.Time            `json:"timestamp"`
}

// Status takes a consistent snapshot of the car.
func (e *Elevator) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Status{
		ID:                e.id,
		CurrentFloor:      e.currentFloor,
		TargetFloor:       e.targetFloor,
		CallingFloor:      e.callingFloor,
		Direction:         e.direction,
		DoorState:         e.doorState,
		IsMoving:          e.isMoving,
		PassengerCount:    e.passengerCount,
		MaxPassengerLimit: e.maxPassengerLimit,
		PendingRequests:   len(e.floorRequests),
	}
}

func (s Status) String() string {
	jsonData, err := json.Marshal(s)
	if err != nil {
		Log.Error().Msg("Error Serialising Status Object to JSON")
		return ""
	}
	return string(jsonData)
}
