package overload

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

func newFleet(defs ...elevator.Definition) StaticFleet {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	fleet := StaticFleet{}
	for _, def := range defs {
		fleet = append(fleet, elevator.NewElevator(def))
	}
	return fleet
}

func totalQueued(elev *elevator.Elevator) int {
	total := 0
	for _, req := range elev.FloorRequests() {
		total += req.PassengerCount
	}
	return total
}

func TestHandleOverloadDistributesToOtherElevators(t *testing.T) {
	fleet := newFleet(
		elevator.Definition{ID: 1, MaxPassengerLimit: 10, PassengerCount: 8},
		elevator.Definition{ID: 2, MaxPassengerLimit: 10, PassengerCount: 2},
	)
	nearest := fleet[0]

	allocations := NewDefaultStrategy().HandleOverload(fleet, nearest, 0, 1, 5)

	if nearest.PassengerCount() != 8 {
		t.Errorf("Expected nearest elevator to keep 8 passengers, got %d", nearest.PassengerCount())
	}
	if fleet[1].PassengerCount() != 2 {
		t.Errorf("Expected elevator 2 to keep 2 passengers until loading, got %d", fleet[1].PassengerCount())
	}
	requests := fleet[1].FloorRequests()
	if len(requests) != 1 || requests[0].TargetFloor != 1 || requests[0].CallingFloor != 0 || requests[0].PassengerCount != 5 {
		t.Errorf("Expected elevator 2 to queue 5 passengers 0->1, got %v", requests)
	}
	if nearest.PendingRequests() != 0 {
		t.Errorf("Expected nothing left on the nearest elevator, got %v", nearest.FloorRequests())
	}
	if len(allocations) != 1 || allocations[0].ElevatorID != 2 {
		t.Errorf("Expected one allocation to elevator 2, got %v", allocations)
	}
}

func TestHandleOverloadDoesNotOverloadSecondaryElevators(t *testing.T) {
	fleet := newFleet(
		elevator.Definition{ID: 1, MaxPassengerLimit: 10, PassengerCount: 10, StartFloor: 1},
		elevator.Definition{ID: 2, MaxPassengerLimit: 10, PassengerCount: 10, StartFloor: 3},
	)
	nearest, secondary := fleet[0], fleet[1]

	NewDefaultStrategy().HandleOverload(fleet, nearest, 0, 1, 5)

	if nearest.PassengerCount() != 10 || secondary.PassengerCount() != 10 {
		t.Errorf("Expected both elevators to stay at 10, got %d and %d", nearest.PassengerCount(), secondary.PassengerCount())
	}
	requests := nearest.FloorRequests()
	if len(requests) != 1 {
		t.Fatalf("Expected exactly one request on the nearest elevator, got %d", len(requests))
	}
	if requests[0].PassengerCount != 5 || requests[0].TargetFloor != 1 {
		t.Errorf("Expected 5 passengers for floor 1, got %v", requests[0])
	}
	if secondary.PendingRequests() != 0 {
		t.Errorf("Expected nothing queued on the full secondary elevator, got %v", secondary.FloorRequests())
	}
}

func TestHandleOverloadSplitsAcrossNearestFirst(t *testing.T) {
	fleet := newFleet(
		elevator.Definition{ID: 1, MaxPassengerLimit: 10, PassengerCount: 10, StartFloor: 5},
		elevator.Definition{ID: 2, MaxPassengerLimit: 10, PassengerCount: 7, StartFloor: 9},
		elevator.Definition{ID: 3, MaxPassengerLimit: 10, PassengerCount: 6, StartFloor: 4},
		elevator.Definition{ID: 4, MaxPassengerLimit: 10, PassengerCount: 9, StartFloor: 6},
	)

	allocations := NewDefaultStrategy().HandleOverload(fleet, fleet[0], 5, 0, 12)

	// elevator 3 and 4 are both one floor away, 3 wins on id
	expected := []struct {
		id    int
		count int
	}{{3, 4}, {4, 1}, {2, 3}, {1, 4}}
	if len(allocations) != len(expected) {
		t.Fatalf("Expected %d allocations, got %v", len(expected), allocations)
	}
	for index, allocation := range allocations {
		if allocation.ElevatorID != expected[index].id || allocation.Request.PassengerCount != expected[index].count {
			t.Errorf("Allocation %d: expected elevator %d with %d, got elevator %d with %d",
				index, expected[index].id, expected[index].count, allocation.ElevatorID, allocation.Request.PassengerCount)
		}
	}

	total := 0
	for _, elev := range fleet {
		total += totalQueued(elev)
	}
	if total != 12 {
		t.Errorf("Expected all 12 passengers queued somewhere, got %d", total)
	}
}

func TestHandleOverloadTieBreakIsDeterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		fleet := newFleet(
			elevator.Definition{ID: 1, MaxPassengerLimit: 10, PassengerCount: 10, StartFloor: 5},
			elevator.Definition{ID: 7, MaxPassengerLimit: 10, StartFloor: 3},
			elevator.Definition{ID: 4, MaxPassengerLimit: 10, StartFloor: 7},
		)
		allocations := NewDefaultStrategy().HandleOverload(fleet, fleet[0], 5, 8, 3)
		if len(allocations) != 1 || allocations[0].ElevatorID != 4 {
			t.Fatalf("Expected elevator 4 on every run, got %v", allocations)
		}
	}
}

func TestHandleOverloadNothingToDo(t *testing.T) {
	fleet := newFleet(elevator.Definition{ID: 1, MaxPassengerLimit: 10})

	if allocations := NewDefaultStrategy().HandleOverload(fleet, fleet[0], 0, 3, 0); allocations != nil {
		t.Errorf("Expected no allocations for zero excess, got %v", allocations)
	}
	if fleet[0].PendingRequests() != 0 {
		t.Errorf("Expected empty queue, got %d", fleet[0].PendingRequests())
	}
}
