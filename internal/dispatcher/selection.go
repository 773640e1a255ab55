package dispatcher

import (
	"sort"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
)

type candidate struct {
	elevator *elevator.Elevator
	status   elevator.Status
}

// selectElevator ranks the fleet for a call. Elevators that are stationary or
// have nothing queued are preferred; when there are none the whole fleet is
// ranked with the shortest queue first. Returns nil for an empty fleet.
func (es *ElevatorSystem) selectElevator(request elevrequest.FloorRequest) *elevator.Elevator {
	all := make([]candidate, 0, len(es.elevators))
	for _, elev := range es.elevators {
		all = append(all, candidate{elevator: elev, status: elev.Status()})
	}
	if len(all) == 0 {
		return nil
	}

	var available []candidate
	for _, c := range all {
		if !c.status.IsMoving || c.status.PendingRequests == 0 {
			available = append(available, c)
		}
	}

	byQueueLength := false
	if len(available) == 0 {
		Log.Debug().Msgf("Every elevator is busy, ranking the whole fleet for %v", request)
		available = all
		byQueueLength = true
	}

	sort.SliceStable(available, func(i, j int) bool {
		return ranksBefore(available[i].status, available[j].status, request.CallingFloor, byQueueLength)
	})
	return available[0].elevator
}

func ranksBefore(a, b elevator.Status, callingFloor int, byQueueLength bool) bool {
	if byQueueLength && a.PendingRequests != b.PendingRequests {
		return a.PendingRequests < b.PendingRequests
	}
	if da, db := distance(a.CurrentFloor, callingFloor), distance(b.CurrentFloor, callingFloor); da != db {
		return da < db
	}
	if a.PassengerCount != b.PassengerCount {
		return a.PassengerCount < b.PassengerCount
	}
	if a.IsMoving != b.IsMoving {
		return !a.IsMoving
	}
	if ca, cb := headingTowards(a, callingFloor), headingTowards(b, callingFloor); ca != cb {
		return ca
	}
	return a.ID < b.ID
}

// headingTowards reports whether the elevator already travels in a direction
// that passes the calling floor.
func headingTowards(status elevator.Status, callingFloor int) bool {
	switch status.Direction {
	case elevconsts.Up:
		return callingFloor >= status.CurrentFloor
	case elevconsts.Down:
		return callingFloor <= status.CurrentFloor
	default:
		return false
	}
}

func distance(from, to int) int {
	if from > to {
		return from - to
	}
	return to - from
}
