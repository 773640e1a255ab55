package elevconsole

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/dispatcher"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevcmd"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Log = logger.GetLogger()

// Console is the text surface the controller talks to.
type Console interface {
	Write(message string)
	WriteLine(message string)
	ReadLine() (string, error)
	// ReadOption reads a menu choice, a single key where the terminal allows it.
	ReadOption() (string, error)
}

// ElevatorControl is the part of the dispatcher the console drives.
type ElevatorControl interface {
	CallElevator(request elevrequest.FloorRequest) (dispatcher.Assignment, error)
	MoveElevator(ctx context.Context, elevatorID int, floor int) error
	GetElevatorStatus() []elevator.Status
	GetElevatorMovementHistory() map[int][]elevator.MovementHistory
	Stats() dispatcher.Stats
}

type Controller struct {
	control ElevatorControl
	console Console
}

func NewController(control ElevatorControl, console Console) *Controller {
	return &Controller{control: control, console: console}
}

// Run shows the menu until the user quits, input ends or ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		c.DisplayMenu()
		option, err := c.console.ReadOption()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading menu option: %w", err)
		}

		command, err := elevcmd.ParseOption(option)
		if err != nil {
			c.console.WriteLine(INVALID_OPTION_MESSAGE)
			continue
		}

		switch command.Value.(type) {
		case elevcmd.CallCommand:
			err = c.CallElevator()
		case elevcmd.MoveCommand:
			err = c.MoveElevator(ctx)
		case elevcmd.StatusCommand:
			c.ShowElevatorStatus()
		case elevcmd.QuitCommand:
			Log.Debug().Msg("Console quit requested")
			return nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (c *Controller) DisplayMenu() {
	c.console.WriteLine(MENU_PROMPT)
	c.console.WriteLine(CALL_ELEVATOR_OPTION)
	c.console.WriteLine(MOVE_ELEVATOR_OPTION)
	c.console.WriteLine(SHOW_ELEVATOR_STATUS_OPTION)
	c.console.WriteLine(QUIT_OPTION)
}

func (c *Controller) prompt(message string) (string, error) {
	c.console.Write(message)
	return c.console.ReadLine()
}

// CallElevator prompts for a call and hands it to the dispatcher. Invalid
// input is reported on the console; only read errors are returned.
func (c *Controller) CallElevator() error {
	callingFloor, err := c.prompt(ENTER_FLOOR_NUMBER_MESSAGE)
	if err != nil {
		return err
	}
	if _, err := elevcmd.ParseInt(callingFloor); err != nil {
		c.console.WriteLine(INVALID_FLOOR_NUMBER_MESSAGE)
		return nil
	}

	targetFloor, err := c.prompt(ENTER_TARGET_FLOOR_NUMBER_MESSAGE)
	if err != nil {
		return err
	}
	if _, err := elevcmd.ParseInt(targetFloor); err != nil {
		c.console.WriteLine(INVALID_FLOOR_NUMBER_MESSAGE)
		return nil
	}

	passengers, err := c.prompt(ENTER_PASSENGER_COUNT_MESSAGE)
	if err != nil {
		return err
	}

	command, err := elevcmd.NewCallCommand(callingFloor, targetFloor, passengers)
	if err != nil {
		c.console.WriteLine(INVALID_PASSENGER_COUNT_MESSAGE)
		return nil
	}

	call := command.Value.(elevcmd.CallCommand)
	assignment, err := c.control.CallElevator(call.Request)
	if err != nil {
		if errors.Is(err, elevrequest.ErrFloorOutOfRange) {
			c.console.WriteLine(INVALID_FLOOR_NUMBER_MESSAGE)
			return nil
		}
		c.console.WriteLine(err.Error())
		return nil
	}

	c.console.WriteLine(fmt.Sprintf(ASSIGNED_FORMAT, call.Request, assignment.ElevatorID))
	if len(assignment.Allocations) > 1 {
		for _, allocation := range assignment.Allocations {
			c.console.WriteLine(fmt.Sprintf(ALLOCATION_FORMAT, allocation.Request.PassengerCount, allocation.ElevatorID))
		}
	}
	return nil
}

func (c *Controller) MoveElevator(ctx context.Context) error {
	elevatorID, err := c.prompt(ENTER_ELEVATOR_ID_MESSAGE)
	if err != nil {
		return err
	}
	if _, err := elevcmd.ParseInt(elevatorID); err != nil {
		c.console.WriteLine(INVALID_ELEVATOR_ID_MESSAGE)
		return nil
	}

	floor, err := c.prompt(ENTER_MOVE_TO_FLOOR_MESSAGE)
	if err != nil {
		return err
	}
	command, err := elevcmd.NewMoveCommand(elevatorID, floor)
	if err != nil {
		c.console.WriteLine(INVALID_FLOOR_NUMBER_MESSAGE)
		return nil
	}

	move := command.Value.(elevcmd.MoveCommand)
	if err := c.control.MoveElevator(ctx, move.ElevatorID, move.Floor); err != nil {
		if errors.Is(err, dispatcher.ErrUnknownElevator) {
			c.console.WriteLine(INVALID_ELEVATOR_ID_MESSAGE)
			return nil
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		c.console.WriteLine(err.Error())
	}
	return nil
}

// ShowElevatorStatus prints the movement history table followed by one
// summary line per elevator.
func (c *Controller) ShowElevatorStatus() {
	c.displayHistory(c.control.GetElevatorMovementHistory())

	for _, status := range c.control.GetElevatorStatus() {
		moving := STATIONARY_STATUS
		if status.IsMoving {
			moving = MOVING_STATUS
		}
		c.console.WriteLine(fmt.Sprintf(ELEVATOR_STATUS_FORMAT,
			status.ID, status.CurrentFloor, status.Direction, status.DoorState, moving,
			status.PassengerCount, status.MaxPassengerLimit, status.PendingRequests))
	}

	stats := c.control.Stats()
	c.console.WriteLine(fmt.Sprintf(STATS_FORMAT, stats.Requested, stats.Delivered, stats.Redistributed, stats.Overloads))
}

func (c *Controller) displayHistory(history map[int][]elevator.MovementHistory) {
	ids := make([]int, 0, len(history))
	for id := range history {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var table strings.Builder
	writer := tabwriter.NewWriter(&table, 0, 0, 2, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(writer, "Elevator\tCalling Floor\tCurrent Floor\tTarget Floor\tDirection\tPassengers\tMoving\tDoor Status\tTimestamp\t")
	for _, id := range ids {
		for _, entry := range history[id] {
			fmt.Fprintf(writer, "%d\t%d\t%d\t%d\t%v\t%d\t%t\t%v\t%s\t\n",
				entry.ElevatorID, entry.CallingFloor, entry.CurrentFloor, entry.TargetFloor,
				entry.Direction, entry.PassengerCount, entry.IsMoving, entry.DoorState,
				entry.Timestamp.Local().Format(HISTORY_TIME_FORMAT))
		}
	}
	if err := writer.Flush(); err != nil {
		Log.Error().Msgf("Error rendering history table: %v", err)
		return
	}

	for _, line := range strings.Split(strings.TrimRight(table.String(), "\n"), "\n") {
		c.console.WriteLine(line)
	}
}
