package elevcmd

import (
	"errors"
	"testing"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
)

func TestCommandType(t *testing.T) {
	elevatorCommandArray := []ElevatorCommand{
		{Value: CallCommand{}},
		{Value: MoveCommand{}},
		{Value: StatusCommand{}},
		{Value: QuitCommand{}},
		{Value: struct{}{}},
	}

	elevatorCommandStringArray := []string{
		"CallCommand",
		"MoveCommand",
		"StatusCommand",
		"QuitCommand",
		"UnknownCommand",
	}

	for index, elevatorCommand := range elevatorCommandArray {
		if elevatorCommand.CommandType() != elevatorCommandStringArray[index] {
			t.Errorf("Elevator.CommandType() returned %v, expected %v", elevatorCommand.CommandType(), elevatorCommandStringArray[index])
		}
	}
}

func TestParseOption(t *testing.T) {
	options := map[string]string{
		"1":   "CallCommand",
		" 2 ": "MoveCommand",
		"3":   "StatusCommand",
		"Q":   "QuitCommand",
	}
	for option, expected := range options {
		command, err := ParseOption(option)
		if err != nil {
			t.Errorf("Expected no error for %q, got %v", option, err)
			continue
		}
		if command.CommandType() != expected {
			t.Errorf("Expected %s for %q, got %s", expected, option, command.CommandType())
		}
	}

	if _, err := ParseOption("9"); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("Expected ErrUnknownOption, got %v", err)
	}
}

func TestNewCallCommand(t *testing.T) {
	command, err := NewCallCommand("0", " 5", "3 ")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	call, ok := command.Value.(CallCommand)
	if !ok {
		t.Fatalf("Expected a CallCommand, got %v", command.CommandType())
	}
	if call.Request.CallingFloor != 0 || call.Request.TargetFloor != 5 || call.Request.PassengerCount != 3 {
		t.Errorf("Expected request 0->5 with 3 passengers, got %v", call.Request)
	}
}

func TestNewCallCommandRejectsBadInput(t *testing.T) {
	if _, err := NewCallCommand("ground", "5", "3"); !errors.Is(err, ErrNotANumber) {
		t.Errorf("Expected ErrNotANumber for the calling floor, got %v", err)
	}
	if _, err := NewCallCommand("0", "5", "many"); !errors.Is(err, ErrNotANumber) {
		t.Errorf("Expected ErrNotANumber for the passenger count, got %v", err)
	}
	if _, err := NewCallCommand("0", "5", "-2"); !errors.Is(err, elevrequest.ErrNegativePassengerCount) {
		t.Errorf("Expected ErrNegativePassengerCount, got %v", err)
	}
}

func TestNewMoveCommand(t *testing.T) {
	command, err := NewMoveCommand("2", "7")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if move := command.Value.(MoveCommand); move.ElevatorID != 2 || move.Floor != 7 {
		t.Errorf("Expected elevator 2 to floor 7, got %+v", move)
	}
	if _, err := NewMoveCommand("two", "7"); !errors.Is(err, ErrNotANumber) {
		t.Errorf("Expected ErrNotANumber, got %v", err)
	}
}
