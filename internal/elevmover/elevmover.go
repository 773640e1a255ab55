package elevmover

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevevent"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Log = logger.GetLogger()

var ErrAlreadyRunning = errors.New("elevator mover is already running")

// Timing holds the simulated delays. Zero durations skip the wait.
type Timing struct {
	FloorTravelDuration time.Duration `yaml:"floor_travel_duration"`
	DoorOpenDuration    time.Duration `yaml:"door_open_duration"`
	DoorCloseDuration   time.Duration `yaml:"door_close_duration"`
}

func DefaultTiming() Timing {
	return Timing{
		FloorTravelDuration: elevconsts.DEFAULT_FLOOR_TRAVEL_DURATION,
		DoorOpenDuration:    elevconsts.DEFAULT_DOOR_OPEN_DURATION,
		DoorCloseDuration:   elevconsts.DEFAULT_DOOR_CLOSE_DURATION,
	}
}

// ElevatorMover drives one elevator through its queue. It is the only writer
// of the elevator's movement fields.
type ElevatorMover struct {
	elevator  *elevator.Elevator
	timing    Timing
	publisher elevevent.Publisher

	wakeChannel chan struct{}
	processing  sync.Mutex
	running     atomic.Bool

	phaseMu sync.RWMutex
	phase   elevconsts.MoverPhase
}

// NewElevatorMover wires a mover to its elevator. A nil publisher drops
// status events and keeps overload remainders on this elevator's own queue.
func NewElevatorMover(elev *elevator.Elevator, timing Timing, publisher elevevent.Publisher) *ElevatorMover {
	return &ElevatorMover{
		elevator:    elev,
		timing:      timing,
		publisher:   publisher,
		wakeChannel: make(chan struct{}, 1),
		phase:       elevconsts.Idle,
	}
}

func (em *ElevatorMover) Elevator() *elevator.Elevator {
	return em.elevator
}

func (em *ElevatorMover) Phase() elevconsts.MoverPhase {
	em.phaseMu.RLock()
	defer em.phaseMu.RUnlock()
	return em.phase
}

func (em *ElevatorMover) IsRunning() bool {
	return em.running.Load()
}

// Start launches the mover loop. The loop drains the queue every time it is
// woken and exits when ctx is cancelled.
func (em *ElevatorMover) Start(ctx context.Context, waitGroup *sync.WaitGroup) error {
	if !em.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		defer em.running.Store(false)
		for {
			select {
			case <-ctx.Done():
				Log.Warn().Msgf("Mover of elevator %d has been signaled to stop", em.elevator.ID())
				return
			case <-em.wakeChannel:
				err := em.ProcessQueue(ctx)
				if err != nil && !errors.Is(err, context.Canceled) {
					Log.Error().Msgf("Mover of elevator %d stopped processing: %v", em.elevator.ID(), err)
				}
			}
		}
	}()

	// requests queued before Start still have to be served
	em.Wake()
	return nil
}

// Wake asks the running loop to drain the queue. It never blocks.
func (em *ElevatorMover) Wake() {
	select {
	case em.wakeChannel <- struct{}{}:
	default:
	}
}

// ProcessQueue serves queued requests in FIFO order until the queue is empty
// or ctx is cancelled. Calling it on an empty queue changes nothing.
func (em *ElevatorMover) ProcessQueue(ctx context.Context) error {
	em.processing.Lock()
	defer em.processing.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, ok := em.elevator.NextFloorRequest()
		if !ok {
			em.setPhase(elevconsts.Idle)
			return nil
		}

		// a car that cannot board anyone leaves its queue untouched until
		// the next wake instead of cycling its doors forever
		if req.PassengerCount > 0 && req.CallingFloor != req.TargetFloor && em.elevator.SpareCapacity() == 0 {
			Log.Warn().Msgf("Elevator %d is full, %d requests wait for capacity", em.elevator.ID(), em.elevator.PendingRequests())
			em.setPhase(elevconsts.Idle)
			return nil
		}

		if err := em.serviceRequest(ctx, req); err != nil {
			Log.Warn().Msgf("Elevator %d interrupted while serving %v: %v", em.elevator.ID(), req, err)
			em.halt()
			return err
		}
	}
}

func (em *ElevatorMover) setPhase(phase elevconsts.MoverPhase) {
	em.phaseMu.Lock()
	defer em.phaseMu.Unlock()
	if em.phase != phase {
		Log.Debug().Msgf("Elevator %d phase %v -> %v", em.elevator.ID(), em.phase, phase)
	}
	em.phase = phase
}

// halt leaves the car stationary with the door closed after a cancellation.
func (em *ElevatorMover) halt() {
	if em.elevator.IsMoving() {
		Log.Warn().Msgf("Elevator %d is not stopped, stopping it", em.elevator.ID())
		em.elevator.StopMoving()
	}
	em.elevator.SetDoorState(elevconsts.Closed)
	em.setPhase(elevconsts.Idle)
	em.publishStatus()
}

func (em *ElevatorMover) publish(event elevevent.ElevatorEvent) {
	if em.publisher == nil {
		return
	}
	em.publisher.Publish(event)
}

func (em *ElevatorMover) publishStatus() {
	status := em.elevator.Status()
	em.publish(elevevent.StatusChangedEvent{
		ElevatorID:     status.ID,
		Direction:      status.Direction,
		CallingFloor:   status.CallingFloor,
		CurrentFloor:   status.CurrentFloor,
		TargetFloor:    status.TargetFloor,
		IsMoving:       status.IsMoving,
		DoorState:      status.DoorState,
		PassengerCount: status.PassengerCount,
		Timestamp:      time.Now().UTC(),
	}.Wrap())
}

func sleepContext(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
