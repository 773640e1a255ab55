package elevconsole

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/dispatcher"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevmover"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

// fakeConsole replays scripted input and records everything written.
type fakeConsole struct {
	inputs []string
	output []string
}

func (fc *fakeConsole) Write(message string)     { fc.output = append(fc.output, message) }
func (fc *fakeConsole) WriteLine(message string) { fc.output = append(fc.output, message) }

func (fc *fakeConsole) ReadLine() (string, error) {
	if len(fc.inputs) == 0 {
		return "", io.EOF
	}
	input := fc.inputs[0]
	fc.inputs = fc.inputs[1:]
	return input, nil
}

func (fc *fakeConsole) ReadOption() (string, error) { return fc.ReadLine() }

func (fc *fakeConsole) contains(text string) bool {
	for _, line := range fc.output {
		if strings.Contains(line, text) {
			return true
		}
	}
	return false
}

func newTestController(t *testing.T, inputs ...string) (*Controller, *fakeConsole, *dispatcher.ElevatorSystem) {
	t.Helper()
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	system, err := dispatcher.NewElevatorSystem([]elevator.Definition{
		{ID: 1, MaxPassengerLimit: 10},
		{ID: 2, MaxPassengerLimit: 10, StartFloor: 6},
	}, dispatcher.WithTiming(elevmover.Timing{
		FloorTravelDuration: time.Millisecond,
		DoorOpenDuration:    time.Millisecond,
		DoorCloseDuration:   time.Millisecond,
	}), dispatcher.WithFloorRange(0, 9))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	console := &fakeConsole{inputs: inputs}
	return NewController(system, console), console, system
}

func TestRunQuits(t *testing.T) {
	controller, console, _ := newTestController(t, "q")

	if err := controller.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !console.contains(MENU_PROMPT) || !console.contains(QUIT_OPTION) {
		t.Errorf("Expected the menu to be shown, got %v", console.output)
	}
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	controller, _, _ := newTestController(t)

	if err := controller.Run(context.Background()); err != nil {
		t.Errorf("Expected end of input to stop cleanly, got %v", err)
	}
}

func TestRunStopsWhenCancelled(t *testing.T) {
	controller, console, _ := newTestController(t, "1", "0", "1", "1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := controller.Run(ctx); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if len(console.output) != 0 {
		t.Errorf("Expected nothing written after cancellation, got %v", console.output)
	}
}

func TestRunInvalidOption(t *testing.T) {
	controller, console, _ := newTestController(t, "7", "q")

	if err := controller.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !console.contains(INVALID_OPTION_MESSAGE) {
		t.Errorf("Expected %q, got %v", INVALID_OPTION_MESSAGE, console.output)
	}
}

func TestCallElevatorQueuesRequest(t *testing.T) {
	controller, console, system := newTestController(t, "1", "0", "4", "3", "q")

	if err := controller.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	elev, _ := system.Elevator(1)
	requests := elev.FloorRequests()
	if len(requests) != 1 || requests[0].TargetFloor != 4 || requests[0].PassengerCount != 3 {
		t.Errorf("Expected one request 0->4 with 3 passengers, got %v", requests)
	}
	if !console.contains("assigned to elevator 1") {
		t.Errorf("Expected the assignment to be reported, got %v", console.output)
	}
}

func TestCallElevatorInvalidInput(t *testing.T) {
	testCases := map[string]struct {
		inputs   []string
		expected string
	}{
		"calling floor":  {[]string{"1", "lobby", "q"}, INVALID_FLOOR_NUMBER_MESSAGE},
		"target floor":   {[]string{"1", "0", "roof", "q"}, INVALID_FLOOR_NUMBER_MESSAGE},
		"passengers":     {[]string{"1", "0", "3", "many", "q"}, INVALID_PASSENGER_COUNT_MESSAGE},
		"negative count": {[]string{"1", "0", "3", "-1", "q"}, INVALID_PASSENGER_COUNT_MESSAGE},
		"out of range":   {[]string{"1", "0", "30", "1", "q"}, INVALID_FLOOR_NUMBER_MESSAGE},
	}

	for name, testCase := range testCases {
		controller, console, system := newTestController(t, testCase.inputs...)
		if err := controller.Run(context.Background()); err != nil {
			t.Fatalf("%s: expected no error, got %v", name, err)
		}
		if !console.contains(testCase.expected) {
			t.Errorf("%s: expected %q, got %v", name, testCase.expected, console.output)
		}
		for _, elev := range system.Elevators() {
			if elev.PendingRequests() != 0 {
				t.Errorf("%s: expected no request queued, got %v", name, elev.FloorRequests())
			}
		}
	}
}

func TestMoveElevatorServesQueue(t *testing.T) {
	controller, console, system := newTestController(t, "1", "0", "3", "2", "2", "1", "3", "q")

	if err := controller.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	elev, _ := system.Elevator(1)
	if elev.CurrentFloor() != 3 || elev.PassengerCount() != 0 || elev.PendingRequests() != 0 {
		t.Errorf("Expected elevator 1 idle at floor 3, got %v", elev.Status())
	}
	if console.contains(INVALID_ELEVATOR_ID_MESSAGE) {
		t.Errorf("Expected no error message, got %v", console.output)
	}
}

func TestMoveElevatorUnknownID(t *testing.T) {
	controller, console, _ := newTestController(t, "2", "9", "1", "q")

	if err := controller.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !console.contains(INVALID_ELEVATOR_ID_MESSAGE) {
		t.Errorf("Expected %q, got %v", INVALID_ELEVATOR_ID_MESSAGE, console.output)
	}
}

func TestShowElevatorStatus(t *testing.T) {
	controller, console, _ := newTestController(t, "1", "0", "2", "1", "2", "1", "2", "3", "q")

	if err := controller.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, expected := range []string{
		"Calling Floor",
		"Door Status",
		"Elevator 1: Floor 2, Direction None, Door Closed, Stationary, Passengers 0/10, Pending 0",
		"Elevator 2: Floor 6",
		"Passengers requested 1, delivered 1",
	} {
		if !console.contains(expected) {
			t.Errorf("Expected output containing %q, got %v", expected, console.output)
		}
	}
}

func TestTerminalReadsLines(t *testing.T) {
	var out strings.Builder
	terminal := NewTerminal(strings.NewReader("1\n 5 \nq"), &out, false)

	for _, expected := range []string{"1", "5", "q"} {
		option, err := terminal.ReadOption()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if option != expected {
			t.Errorf("Expected %q, got %q", expected, option)
		}
	}
	if _, err := terminal.ReadLine(); err != io.EOF {
		t.Errorf("Expected io.EOF, got %v", err)
	}

	terminal.Write("a")
	terminal.WriteLine("b")
	if out.String() != "ab\n" {
		t.Errorf("Expected %q, got %q", "ab\n", out.String())
	}
}
