package elevcmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
)

const (
	CALL_OPTION   = "1"
	MOVE_OPTION   = "2"
	STATUS_OPTION = "3"
	QUIT_OPTION   = "q"
)

var (
	ErrUnknownOption = errors.New("unknown menu option")
	ErrNotANumber    = errors.New("not a number")
)

type ElevatorCommand struct {
	//Golang doesnt support union types,
	//so we have to pass any of the below
	//structs
	Value any
}

type CallCommand struct {
	Request elevrequest.FloorRequest
}

type MoveCommand struct {
	ElevatorID int
	Floor      int
}

type StatusCommand struct {
}

type QuitCommand struct {
}

func (e *ElevatorCommand) CommandType() string {
	switch e.Value.(type) {
	case CallCommand:
		return "CallCommand"
	case MoveCommand:
		return "MoveCommand"
	case StatusCommand:
		return "StatusCommand"
	case QuitCommand:
		return "QuitCommand"
	default:
		return "UnknownCommand"
	}
}

// ParseOption maps a menu key to an empty command of that kind; the console
// fills in the arguments it prompts for.
func ParseOption(option string) (ElevatorCommand, error) {
	switch strings.ToLower(strings.TrimSpace(option)) {
	case CALL_OPTION:
		return ElevatorCommand{Value: CallCommand{}}, nil
	case MOVE_OPTION:
		return ElevatorCommand{Value: MoveCommand{}}, nil
	case STATUS_OPTION:
		return ElevatorCommand{Value: StatusCommand{}}, nil
	case QUIT_OPTION:
		return ElevatorCommand{Value: QuitCommand{}}, nil
	default:
		return ElevatorCommand{}, fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}
}

// ParseInt reads one whole number typed at a prompt.
func ParseInt(input string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}
	return value, nil
}

// NewCallCommand builds a call from the three prompted values.
func NewCallCommand(callingFloor, targetFloor, passengerCount string) (ElevatorCommand, error) {
	calling, err := ParseInt(callingFloor)
	if err != nil {
		return ElevatorCommand{}, fmt.Errorf("calling floor: %w", err)
	}
	target, err := ParseInt(targetFloor)
	if err != nil {
		return ElevatorCommand{}, fmt.Errorf("target floor: %w", err)
	}
	passengers, err := ParseInt(passengerCount)
	if err != nil {
		return ElevatorCommand{}, fmt.Errorf("passenger count: %w", err)
	}

	request := elevrequest.NewFloorRequest(calling, target, passengers)
	if err := request.Validate(); err != nil {
		return ElevatorCommand{}, err
	}
	return ElevatorCommand{Value: CallCommand{Request: request}}, nil
}

func NewMoveCommand(elevatorID, floor string) (ElevatorCommand, error) {
	id, err := ParseInt(elevatorID)
	if err != nil {
		return ElevatorCommand{}, fmt.Errorf("elevator id: %w", err)
	}
	target, err := ParseInt(floor)
	if err != nil {
		return ElevatorCommand{}, fmt.Errorf("floor: %w", err)
	}
	return ElevatorCommand{Value: MoveCommand{ElevatorID: id, Floor: target}}, nil
}
