package dispatcher

import (
	"context"

	"github.com/tiendc/go-deepcopy"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevevent"
)

type subscriber struct {
	channel chan elevevent.ElevatorEvent
	dropped int
}

// Publish is called by the movers for every event they produce.
func (es *ElevatorSystem) Publish(event elevevent.ElevatorEvent) {
	switch evnt := event.Value.(type) {
	case elevevent.StatusChangedEvent:
		es.recordHistory(evnt)
	case elevevent.OverloadEvent:
		es.handleOverloadEvent(evnt)
	case elevevent.PassengersOffloadedEvent:
		es.mu.Lock()
		es.stats.Delivered += evnt.Count
		es.mu.Unlock()
		Log.Debug().Msgf("Elevator %d delivered %d passengers at floor %d", evnt.ElevatorID, evnt.Count, evnt.Floor)
	case elevevent.PassengersLoadedEvent:
		Log.Debug().Msgf("Elevator %d loaded %d passengers at floor %d", evnt.ElevatorID, evnt.Count, evnt.Floor)
	case elevevent.RequestCompletedEvent:
		Log.Debug().Msgf("Elevator %d finished %v", evnt.ElevatorID, evnt.Request)
	default:
		Log.Error().Msgf("Unknown event %v", event.EventType())
	}

	es.fanOut(event)
}

func (es *ElevatorSystem) handleOverloadEvent(evnt elevevent.OverloadEvent) {
	source, ok := es.Elevator(evnt.ElevatorID)
	if !ok {
		Log.Error().Msgf("Overload reported by unknown elevator %d", evnt.ElevatorID)
		return
	}

	for _, allocation := range es.redistribute(source, evnt.CallingFloor, evnt.TargetFloor, evnt.ExcessPassengers) {
		es.wake(allocation.ElevatorID)
	}
}

func (es *ElevatorSystem) recordHistory(evnt elevevent.StatusChangedEvent) {
	entry := elevator.MovementHistory{
		ElevatorID:     evnt.ElevatorID,
		CallingFloor:   evnt.CallingFloor,
		CurrentFloor:   evnt.CurrentFloor,
		TargetFloor:    evnt.TargetFloor,
		Direction:      evnt.Direction,
		PassengerCount: evnt.PassengerCount,
		IsMoving:       evnt.IsMoving,
		DoorState:      evnt.DoorState,
		Timestamp:      evnt.Timestamp,
	}

	es.mu.Lock()
	defer es.mu.Unlock()
	history := append(es.history[evnt.ElevatorID], entry)
	if es.historyLimit > 0 && len(history) > es.historyLimit {
		history = append(history[:0:0], history[len(history)-es.historyLimit:]...)
	}
	es.history[evnt.ElevatorID] = history
}

// GetElevatorMovementHistory returns a deep copy of every elevator's
// timestamped snapshots, oldest first.
func (es *ElevatorSystem) GetElevatorMovementHistory() map[int][]elevator.MovementHistory {
	es.mu.RLock()
	defer es.mu.RUnlock()

	history := make(map[int][]elevator.MovementHistory, len(es.history))
	if err := deepcopy.Copy(&history, es.history); err != nil {
		Log.Error().Msgf("Error copying movement history: %v", err)
		return map[int][]elevator.MovementHistory{}
	}
	return history
}

// Subscribe returns a channel receiving every event until ctx is done. Events
// are dropped for a subscriber whose buffer is full.
func (es *ElevatorSystem) Subscribe(ctx context.Context, bufferSize int) <-chan elevevent.ElevatorEvent {
	channel := make(chan elevevent.ElevatorEvent, bufferSize)

	es.mu.Lock()
	id := es.nextSubID
	es.nextSubID++
	es.subscribers[id] = &subscriber{channel: channel}
	es.mu.Unlock()

	go func() {
		<-ctx.Done()
		es.mu.Lock()
		defer es.mu.Unlock()
		if sub, ok := es.subscribers[id]; ok {
			if sub.dropped > 0 {
				Log.Warn().Msgf("Subscriber %d dropped %d events", id, sub.dropped)
			}
			delete(es.subscribers, id)
			close(sub.channel)
		}
	}()

	return channel
}

func (es *ElevatorSystem) fanOut(event elevevent.ElevatorEvent) {
	es.mu.Lock()
	defer es.mu.Unlock()
	for _, sub := range es.subscribers {
		select {
		case sub.channel <- event:
		default:
			sub.dropped++
		}
	}
}
