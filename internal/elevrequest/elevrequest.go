package elevrequest

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
)

var (
	ErrNegativePassengerCount = errors.New("passenger count must not be negative")
	ErrFloorOutOfRange        = errors.New("floor is outside the building")
)

// FloorRequest is a call from CallingFloor to TargetFloor for PassengerCount
// passengers. It is passed by value and never changed once created; trimmed
// or split requests are new values with their own ID.
type FloorRequest struct {
	ID             uuid.UUID `json:"id"`
	CallingFloor   int       `json:"calling_floor"`
	TargetFloor    int       `json:"target_floor"`
	PassengerCount int       `json:"passenger_count"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewFloorRequest(callingFloor, targetFloor, passengerCount int) FloorRequest {
	return FloorRequest{
		ID:             uuid.New(),
		CallingFloor:   callingFloor,
		TargetFloor:    targetFloor,
		PassengerCount: passengerCount,
		CreatedAt:      time.Now(),
	}
}

// WithPassengerCount returns a new request for the same trip carrying a
// different number of passengers.
func (fr FloorRequest) WithPassengerCount(passengerCount int) FloorRequest {
	return NewFloorRequest(fr.CallingFloor, fr.TargetFloor, passengerCount)
}

func (fr FloorRequest) Direction() elevconsts.Direction {
	return elevconsts.DirectionBetween(fr.CallingFloor, fr.TargetFloor)
}

func (fr FloorRequest) Validate() error {
	if fr.PassengerCount < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativePassengerCount, fr.PassengerCount)
	}
	return nil
}

// ValidateFloors checks both floors against the inclusive building bounds.
func (fr FloorRequest) ValidateFloors(lowestFloor, highestFloor int) error {
	for _, floor := range []int{fr.CallingFloor, fr.TargetFloor} {
		if floor < lowestFloor || floor > highestFloor {
			return fmt.Errorf("%w: floor %d not in [%d, %d]", ErrFloorOutOfRange, floor, lowestFloor, highestFloor)
		}
	}
	return nil
}

func (fr FloorRequest) String() string {
	return fmt.Sprintf("%d->%d (%d passengers)", fr.CallingFloor, fr.TargetFloor, fr.PassengerCount)
}
