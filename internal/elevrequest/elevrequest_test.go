package elevrequest

import (
	"errors"
	"testing"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
)

func TestNewFloorRequest(t *testing.T) {
	request := NewFloorRequest(0, 5, 3)
	if request.CallingFloor != 0 || request.TargetFloor != 5 || request.PassengerCount != 3 {
		t.Errorf("Unexpected request fields: %+v", request)
	}
	if request.CreatedAt.IsZero() {
		t.Errorf("Expected CreatedAt to be set")
	}

	other := NewFloorRequest(0, 5, 3)
	if request.ID == other.ID {
		t.Errorf("Expected two requests to have different identities, both got %v", request.ID)
	}
}

func TestWithPassengerCount(t *testing.T) {
	request := NewFloorRequest(2, 7, 9)
	trimmed := request.WithPassengerCount(4)

	if trimmed.PassengerCount != 4 {
		t.Errorf("Expected trimmed passenger count 4, got %d", trimmed.PassengerCount)
	}
	if trimmed.CallingFloor != 2 || trimmed.TargetFloor != 7 {
		t.Errorf("Expected trimmed request to keep floors 2->7, got %v", trimmed)
	}
	if trimmed.ID == request.ID {
		t.Errorf("Expected trimmed request to get a new identity")
	}
	if request.PassengerCount != 9 {
		t.Errorf("Expected original request to be unchanged, got %d passengers", request.PassengerCount)
	}
}

func TestValidate(t *testing.T) {
	if err := NewFloorRequest(0, 1, 0).Validate(); err != nil {
		t.Errorf("Expected zero passengers to be valid, got %v", err)
	}

	err := NewFloorRequest(0, 1, -1).Validate()
	if !errors.Is(err, ErrNegativePassengerCount) {
		t.Errorf("Expected ErrNegativePassengerCount, got %v", err)
	}
}

func TestValidateFloors(t *testing.T) {
	if err := NewFloorRequest(0, 9, 1).ValidateFloors(0, 9); err != nil {
		t.Errorf("Expected floors on the bounds to be valid, got %v", err)
	}
	if err := NewFloorRequest(-1, 3, 1).ValidateFloors(0, 9); !errors.Is(err, ErrFloorOutOfRange) {
		t.Errorf("Expected ErrFloorOutOfRange for calling floor -1, got %v", err)
	}
	if err := NewFloorRequest(0, 10, 1).ValidateFloors(0, 9); !errors.Is(err, ErrFloorOutOfRange) {
		t.Errorf("Expected ErrFloorOutOfRange for target floor 10, got %v", err)
	}
}

func TestDirection(t *testing.T) {
	if NewFloorRequest(0, 4, 1).Direction() != elevconsts.Up {
		t.Errorf("Expected Up")
	}
	if NewFloorRequest(4, 0, 1).Direction() != elevconsts.Down {
		t.Errorf("Expected Down")
	}
	if NewFloorRequest(4, 4, 1).Direction() != elevconsts.None {
		t.Errorf("Expected None")
	}
}
