package elevmover

import (
	"context"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevevent"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
)

// tripProgress records how far a request got so an interrupted trip can be
// put back on the queue.
type tripProgress struct {
	loaded    bool
	boarded   int
	delivered bool
}

// serviceRequest runs one request from dequeue to the door closing at the
// target floor. When ctx ends first the unfinished part goes back to the head
// of the queue.
func (em *ElevatorMover) serviceRequest(ctx context.Context, req elevrequest.FloorRequest) error {
	em.elevator.RemoveFloorRequest(req)
	em.elevator.SetTrip(req.CallingFloor, req.TargetFloor)
	Log.Info().Msgf("Elevator %d serving request %v", em.elevator.ID(), req)

	progress := &tripProgress{}
	err := em.runTrip(ctx, req, progress)
	if err != nil {
		em.requeueUnfinished(req, progress)
	}
	return err
}

func (em *ElevatorMover) requeueUnfinished(req elevrequest.FloorRequest, progress *tripProgress) {
	switch {
	case progress.delivered:
		em.complete(req)
	case !progress.loaded:
		em.elevator.PrependFloorRequest(req)
		Log.Warn().Msgf("Elevator %d interrupted before boarding, requeued %v", em.elevator.ID(), req)
	case progress.boarded > 0:
		// the passengers step out and call again from where the car stopped
		em.elevator.DecrementPassengerCount(progress.boarded)
		remainder := elevrequest.NewFloorRequest(em.elevator.CurrentFloor(), req.TargetFloor, progress.boarded)
		em.elevator.PrependFloorRequest(remainder)
		Log.Warn().Msgf("Elevator %d interrupted with %d passengers aboard, requeued %v", em.elevator.ID(), progress.boarded, remainder)
	}
}

func (em *ElevatorMover) runTrip(ctx context.Context, req elevrequest.FloorRequest, progress *tripProgress) error {
	if err := em.moveTo(ctx, req.CallingFloor, elevconsts.MovingToCalling); err != nil {
		return err
	}

	em.setPhase(elevconsts.DoorCycleAtCalling)
	if req.CallingFloor == req.TargetFloor {
		// nobody has to travel, the passengers just step out of the call
		err := em.doorCycle(ctx, func() {
			em.publish(elevevent.PassengersOffloadedEvent{
				ElevatorID: em.elevator.ID(),
				Request:    req,
				Floor:      req.TargetFloor,
				Count:      req.PassengerCount,
			}.Wrap())
			progress.loaded = true
			progress.delivered = true
		})
		if err != nil {
			return err
		}
		em.complete(req)
		return nil
	}

	err := em.doorCycle(ctx, func() {
		progress.boarded = em.loadPassengers(req)
		progress.loaded = true
	})
	if err != nil {
		return err
	}

	boarded := progress.boarded
	if boarded == 0 {
		Log.Warn().Msgf("Elevator %d boarded nobody for %v, skipping the trip to floor %d", em.elevator.ID(), req, req.TargetFloor)
		em.complete(req)
		return nil
	}

	if err := em.moveTo(ctx, req.TargetFloor, elevconsts.MovingToTarget); err != nil {
		return err
	}

	em.setPhase(elevconsts.DoorCycleAtTarget)
	err = em.doorCycle(ctx, func() {
		em.offloadPassengers(req, boarded)
		progress.delivered = true
	})
	if err != nil {
		return err
	}
	em.complete(req)
	return nil
}

func (em *ElevatorMover) complete(req elevrequest.FloorRequest) {
	Log.Info().Msgf("Elevator %d completed request %v", em.elevator.ID(), req)
	em.publish(elevevent.RequestCompletedEvent{ElevatorID: em.elevator.ID(), Request: req}.Wrap())
}

// moveTo advances one floor per FloorTravelDuration until floor is reached.
func (em *ElevatorMover) moveTo(ctx context.Context, floor int, phase elevconsts.MoverPhase) error {
	current := em.elevator.CurrentFloor()
	if current == floor {
		return nil
	}

	em.setPhase(phase)
	em.elevator.StartMoving(elevconsts.DirectionBetween(current, floor))
	em.publishStatus()

	for em.elevator.CurrentFloor() != floor {
		if err := sleepContext(ctx, em.timing.FloorTravelDuration); err != nil {
			return err
		}
		em.elevator.StepFloor()
		em.publishStatus()
	}

	em.elevator.StopMoving()
	em.publishStatus()
	return nil
}

// doorCycle opens the door, runs atStop while it is open and closes it again.
func (em *ElevatorMover) doorCycle(ctx context.Context, atStop func()) error {
	em.setDoor(elevconsts.Opening)
	if err := sleepContext(ctx, em.timing.DoorOpenDuration); err != nil {
		return err
	}
	em.setDoor(elevconsts.Opened)

	atStop()

	em.setDoor(elevconsts.Closing)
	if err := sleepContext(ctx, em.timing.DoorCloseDuration); err != nil {
		return err
	}
	em.setDoor(elevconsts.Closed)
	return nil
}

func (em *ElevatorMover) setDoor(state elevconsts.DoorState) {
	em.elevator.SetDoorState(state)
	Log.Debug().Msgf("Elevator %d doors %v at floor %d", em.elevator.ID(), state, em.elevator.CurrentFloor())
	em.publishStatus()
}

// loadPassengers boards as many of the request's passengers as fit and
// reports the rest as an overload. It returns the number boarded.
func (em *ElevatorMover) loadPassengers(req elevrequest.FloorRequest) int {
	toBoard := req.PassengerCount
	if em.elevator.IsFull(toBoard) {
		toBoard -= em.elevator.GetExcessPassengers(toBoard)
		if toBoard < 0 {
			toBoard = 0
		}
	}

	boarded := em.elevator.IncrementPassengerCount(toBoard)
	if boarded > 0 {
		em.publish(elevevent.PassengersLoadedEvent{
			ElevatorID: em.elevator.ID(),
			Request:    req,
			Floor:      em.elevator.CurrentFloor(),
			Count:      boarded,
		}.Wrap())
		em.publishStatus()
	}

	if excess := req.PassengerCount - boarded; excess > 0 {
		em.reportOverload(req, excess)
	}
	return boarded
}

// offloadPassengers lets out the passengers of req if this is their floor.
func (em *ElevatorMover) offloadPassengers(req elevrequest.FloorRequest, boarded int) {
	if em.elevator.CurrentFloor() != req.TargetFloor {
		return
	}

	removed := em.elevator.DecrementPassengerCount(boarded)
	em.publish(elevevent.PassengersOffloadedEvent{
		ElevatorID: em.elevator.ID(),
		Request:    req,
		Floor:      req.TargetFloor,
		Count:      removed,
	}.Wrap())
	em.publishStatus()
}

func (em *ElevatorMover) reportOverload(req elevrequest.FloorRequest, excess int) {
	Log.Warn().Msgf("Elevator %d is full, %d passengers at floor %d left for redistribution", em.elevator.ID(), excess, req.CallingFloor)

	if em.publisher == nil {
		em.elevator.AddFloorRequest(req.WithPassengerCount(excess))
		return
	}
	em.publish(elevevent.OverloadEvent{
		ElevatorID:       em.elevator.ID(),
		CallingFloor:     req.CallingFloor,
		TargetFloor:      req.TargetFloor,
		ExcessPassengers: excess,
	}.Wrap())
}
