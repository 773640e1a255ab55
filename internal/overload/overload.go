package overload

import (
	"sort"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Log = logger.GetLogger()

type Fleet interface {
	Elevators() []*elevator.Elevator
}

// StaticFleet is a fixed list of elevators.
type StaticFleet []*elevator.Elevator

func (sf StaticFleet) Elevators() []*elevator.Elevator { return sf }

// Allocation is one request the strategy queued and the elevator it went to.
type Allocation struct {
	ElevatorID int
	Request    elevrequest.FloorRequest
}

// Strategy decides where passengers go when the chosen elevator cannot take
// them all. Every excess passenger must end up in some queue.
type Strategy interface {
	HandleOverload(fleet Fleet, source *elevator.Elevator, callingFloor, targetFloor, excessPassengers int) []Allocation
}

// DefaultStrategy hands the excess to the other elevators nearest to the
// source first and queues whatever is left back on the source.
type DefaultStrategy struct{}

func NewDefaultStrategy() *DefaultStrategy {
	return &DefaultStrategy{}
}

func (ds *DefaultStrategy) HandleOverload(fleet Fleet, source *elevator.Elevator, callingFloor, targetFloor, excessPassengers int) []Allocation {
	if excessPassengers <= 0 {
		return nil
	}

	var allocations []Allocation
	remaining := excessPassengers

	for _, candidate := range nearestWithSpace(fleet, source) {
		if remaining == 0 {
			break
		}
		transfer := min(remaining, candidate.SpareCapacity())
		if transfer <= 0 {
			continue
		}

		req := elevrequest.NewFloorRequest(callingFloor, targetFloor, transfer)
		candidate.AddFloorRequest(req)
		allocations = append(allocations, Allocation{ElevatorID: candidate.ID(), Request: req})
		remaining -= transfer

		Log.Info().Msgf("Moved %d passengers (%d->%d) from elevator %d to elevator %d", transfer, callingFloor, targetFloor, source.ID(), candidate.ID())
	}

	if remaining > 0 {
		req := elevrequest.NewFloorRequest(callingFloor, targetFloor, remaining)
		source.AddFloorRequest(req)
		allocations = append(allocations, Allocation{ElevatorID: source.ID(), Request: req})

		Log.Info().Msgf("No room for %d passengers (%d->%d), they wait for elevator %d", remaining, callingFloor, targetFloor, source.ID())
	}

	return allocations
}

// nearestWithSpace orders the other elevators that still have room by floor
// distance to the source, lowest id first on a tie.
func nearestWithSpace(fleet Fleet, source *elevator.Elevator) []*elevator.Elevator {
	sourceFloor := source.CurrentFloor()

	type candidate struct {
		elevator *elevator.Elevator
		distance int
	}
	var candidates []candidate
	for _, elev := range fleet.Elevators() {
		if elev == source || elev.ID() == source.ID() {
			continue
		}
		if elev.PassengerCount() >= elev.MaxPassengerLimit() {
			continue
		}
		candidates = append(candidates, candidate{elevator: elev, distance: abs(elev.CurrentFloor() - sourceFloor)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].elevator.ID() < candidates[j].elevator.ID()
	})

	ordered := make([]*elevator.Elevator, len(candidates))
	for i, c := range candidates {
		ordered[i] = c.elevator
	}
	return ordered
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
