package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevmover"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/overload"
)

var Log = logger.GetLogger()

var (
	ErrNoElevatorAvailable = errors.New("no elevator available")
	ErrUnknownElevator     = errors.New("unknown elevator")
	ErrDuplicateElevatorID = errors.New("duplicate elevator id")
	ErrInvalidCapacity     = errors.New("max passenger limit must be positive")
	ErrAlreadyRunning      = errors.New("elevator system already running")
	ErrNotRunning          = errors.New("elevator system not running")
)

type Option func(*ElevatorSystem)

func WithOverloadStrategy(strategy overload.Strategy) Option {
	return func(es *ElevatorSystem) {
		if strategy != nil {
			es.overloadStrategy = strategy
		}
	}
}

func WithTiming(timing elevmover.Timing) Option {
	return func(es *ElevatorSystem) { es.timing = timing }
}

// WithHistoryLimit caps the snapshots kept per elevator; 0 keeps everything.
func WithHistoryLimit(limit int) Option {
	return func(es *ElevatorSystem) { es.historyLimit = limit }
}

// WithFloorRange rejects calls outside the inclusive floor range.
func WithFloorRange(lowestFloor, highestFloor int) Option {
	return func(es *ElevatorSystem) {
		es.floorRange = &floorRange{lowest: lowestFloor, highest: highestFloor}
	}
}

type floorRange struct {
	lowest  int
	highest int
}

// Assignment describes where the passengers of one call were queued.
type Assignment struct {
	Request     elevrequest.FloorRequest
	ElevatorID  int
	Unassigned  bool
	Allocations []overload.Allocation
}

type Stats struct {
	Requested     int `json:"requested"`
	Delivered     int `json:"delivered"`
	Redistributed int `json:"redistributed"`
	Overloads     int `json:"overloads"`
}

// ElevatorSystem owns the fleet and dispatches calls to it.
type ElevatorSystem struct {
	elevators []*elevator.Elevator
	movers    map[int]*elevmover.ElevatorMover

	strategyMu       sync.RWMutex
	overloadStrategy overload.Strategy

	timing       elevmover.Timing
	historyLimit int
	floorRange   *floorRange

	mu          sync.RWMutex
	history     map[int][]elevator.MovementHistory
	stats       Stats
	subscribers map[int]*subscriber
	nextSubID   int

	lifecycleMu sync.Mutex
	running     bool

	//used for graceful shutdown
	waitGroupArray []*sync.WaitGroup
	cancelArray    []context.CancelFunc
}

func NewElevatorSystem(definitions []elevator.Definition, opts ...Option) (*ElevatorSystem, error) {
	es := &ElevatorSystem{
		movers:           make(map[int]*elevmover.ElevatorMover),
		overloadStrategy: overload.NewDefaultStrategy(),
		timing:           elevmover.DefaultTiming(),
		historyLimit:     elevconsts.DEFAULT_HISTORY_LIMIT,
		history:          make(map[int][]elevator.MovementHistory),
		subscribers:      make(map[int]*subscriber),
	}
	for _, opt := range opts {
		opt(es)
	}

	for _, def := range definitions {
		if _, exists := es.movers[def.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateElevatorID, def.ID)
		}
		if def.MaxPassengerLimit <= 0 {
			return nil, fmt.Errorf("%w: elevator %d has %d", ErrInvalidCapacity, def.ID, def.MaxPassengerLimit)
		}

		elev := elevator.NewElevator(def)
		es.elevators = append(es.elevators, elev)
		es.movers[def.ID] = elevmover.NewElevatorMover(elev, es.timing, es)
		es.history[def.ID] = nil
	}

	Log.Debug().Msgf("Elevator system created with %d elevators", len(es.elevators))
	return es, nil
}

// Elevators returns the fleet in definition order.
func (es *ElevatorSystem) Elevators() []*elevator.Elevator {
	return es.elevators
}

func (es *ElevatorSystem) Elevator(id int) (*elevator.Elevator, bool) {
	mover, ok := es.movers[id]
	if !ok {
		return nil, false
	}
	return mover.Elevator(), true
}

func (es *ElevatorSystem) SetOverloadStrategy(strategy overload.Strategy) {
	if strategy == nil {
		return
	}
	es.strategyMu.Lock()
	defer es.strategyMu.Unlock()
	es.overloadStrategy = strategy
}

func (es *ElevatorSystem) strategy() overload.Strategy {
	es.strategyMu.RLock()
	defer es.strategyMu.RUnlock()
	return es.overloadStrategy
}

// Start launches one mover loop per elevator.
func (es *ElevatorSystem) Start() error {
	es.lifecycleMu.Lock()
	defer es.lifecycleMu.Unlock()
	if es.running {
		return ErrAlreadyRunning
	}

	//Launch Threads One By One
	for _, elev := range es.elevators {
		ctx, cancel := context.WithCancel(context.Background())
		wg := &sync.WaitGroup{}
		if err := es.movers[elev.ID()].Start(ctx, wg); err != nil {
			cancel()
			es.stopMovers()
			return fmt.Errorf("starting mover of elevator %d: %w", elev.ID(), err)
		}
		es.waitGroupArray = append(es.waitGroupArray, wg)
		es.cancelArray = append(es.cancelArray, cancel)
	}

	es.running = true
	Log.Info().Msgf("Elevator system started with %d elevators", len(es.elevators))
	return nil
}

// Stop cancels every mover and waits for them to return.
func (es *ElevatorSystem) Stop() error {
	es.lifecycleMu.Lock()
	defer es.lifecycleMu.Unlock()
	if !es.running {
		return ErrNotRunning
	}

	Log.Debug().Msg("Stopping Elevator System")

	es.stopMovers()

	Log.Debug().Msg("Stopped Elevator System")
	es.running = false
	return nil
}

// stopMovers cancels every started mover in reverse order. Callers hold
// lifecycleMu.
func (es *ElevatorSystem) stopMovers() {
	//Gracefully shutdown all threads one by one
	for i := len(es.cancelArray) - 1; i >= 0; i-- {
		es.cancelArray[i]()
		es.waitGroupArray[i].Wait()
	}
	es.cancelArray = nil
	es.waitGroupArray = nil
}

func (es *ElevatorSystem) IsRunning() bool {
	es.lifecycleMu.Lock()
	defer es.lifecycleMu.Unlock()
	return es.running
}

// CallElevator assigns a call to the best elevator. Passengers that do not
// fit are handed to the overload strategy; none are dropped.
func (es *ElevatorSystem) CallElevator(request elevrequest.FloorRequest) (Assignment, error) {
	assignment := Assignment{Request: request, ElevatorID: -1, Unassigned: true}

	if err := request.Validate(); err != nil {
		return assignment, err
	}
	if es.floorRange != nil {
		if err := request.ValidateFloors(es.floorRange.lowest, es.floorRange.highest); err != nil {
			return assignment, err
		}
	}

	selected := es.selectElevator(request)
	if selected == nil {
		Log.Warn().Msgf("No elevator available for request %v", request)
		return assignment, ErrNoElevatorAvailable
	}

	assignment.ElevatorID = selected.ID()
	assignment.Unassigned = false

	es.mu.Lock()
	es.stats.Requested += request.PassengerCount
	es.mu.Unlock()

	if selected.IsFull(request.PassengerCount) {
		excess := min(selected.GetExcessPassengers(request.PassengerCount), request.PassengerCount)
		if accepted := request.PassengerCount - excess; accepted > 0 {
			trimmed := request.WithPassengerCount(accepted)
			selected.AddFloorRequest(trimmed)
			assignment.Allocations = append(assignment.Allocations, overload.Allocation{ElevatorID: selected.ID(), Request: trimmed})
		}

		Log.Info().Msgf("Elevator %d is full for %v, redistributing %d passengers", selected.ID(), request, excess)
		assignment.Allocations = append(assignment.Allocations, es.redistribute(selected, request.CallingFloor, request.TargetFloor, excess)...)
	} else {
		selected.AddFloorRequest(request)
		assignment.Allocations = append(assignment.Allocations, overload.Allocation{ElevatorID: selected.ID(), Request: request})
	}

	Log.Info().Msgf("Request %v assigned to elevator %d", request, selected.ID())

	for _, allocation := range assignment.Allocations {
		es.wake(allocation.ElevatorID)
	}
	return assignment, nil
}

// redistribute runs the overload strategy and keeps the counters.
func (es *ElevatorSystem) redistribute(source *elevator.Elevator, callingFloor, targetFloor, excess int) []overload.Allocation {
	allocations := es.strategy().HandleOverload(es, source, callingFloor, targetFloor, excess)

	es.mu.Lock()
	es.stats.Overloads++
	for _, allocation := range allocations {
		if allocation.ElevatorID != source.ID() {
			es.stats.Redistributed += allocation.Request.PassengerCount
		}
	}
	es.mu.Unlock()

	return allocations
}

func (es *ElevatorSystem) wake(elevatorID int) {
	if mover, ok := es.movers[elevatorID]; ok {
		mover.Wake()
	}
}

// MoveElevator makes the elevator serve its queue. A running system only
// wakes the mover; otherwise the queue is drained before returning. The
// floor argument is informational: an elevator with nothing queued stays
// where it is.
func (es *ElevatorSystem) MoveElevator(ctx context.Context, elevatorID int, floor int) error {
	mover, ok := es.movers[elevatorID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownElevator, elevatorID)
	}

	elev := mover.Elevator()
	if elev.PendingRequests() == 0 && elev.CurrentFloor() != floor {
		Log.Info().Msgf("Elevator %d has no pending requests, staying at floor %d", elevatorID, elev.CurrentFloor())
	}

	if mover.IsRunning() {
		mover.Wake()
		return nil
	}
	return mover.ProcessQueue(ctx)
}

// GetElevatorStatus returns a snapshot of every elevator in fleet order.
func (es *ElevatorSystem) GetElevatorStatus() []elevator.Status {
	statuses := make([]elevator.Status, 0, len(es.elevators))
	for _, elev := range es.elevators {
		statuses = append(statuses, elev.Status())
	}
	return statuses
}

func (es *ElevatorSystem) Stats() Stats {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.stats
}
