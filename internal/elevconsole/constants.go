package elevconsole

const (
	MENU_PROMPT                       = "Select an option:"
	CALL_ELEVATOR_OPTION              = "1. Call Elevator"
	MOVE_ELEVATOR_OPTION              = "2. Move Elevator"
	SHOW_ELEVATOR_STATUS_OPTION       = "3. Show Elevator Status"
	QUIT_OPTION                       = "q. Quit"
	INVALID_OPTION_MESSAGE            = "Invalid option. Please try again."
	ENTER_FLOOR_NUMBER_MESSAGE        = "Enter the floor number you are currently on: "
	ENTER_TARGET_FLOOR_NUMBER_MESSAGE = "Enter the floor number to take you: "
	ENTER_PASSENGER_COUNT_MESSAGE     = "Enter the number of passengers: "
	INVALID_FLOOR_NUMBER_MESSAGE      = "Invalid floor number."
	INVALID_PASSENGER_COUNT_MESSAGE   = "Invalid number of passengers."
	ENTER_ELEVATOR_ID_MESSAGE         = "Enter the elevator ID: "
	ENTER_MOVE_TO_FLOOR_MESSAGE       = "Enter the floor number to move to: "
	INVALID_ELEVATOR_ID_MESSAGE       = "Invalid elevator ID."
	ELEVATOR_STATUS_FORMAT            = "Elevator %d: Floor %d, Direction %v, Door %v, %s, Passengers %d/%d, Pending %d"
	MOVING_STATUS                     = "Moving"
	STATIONARY_STATUS                 = "Stationary"
	ASSIGNED_FORMAT                   = "Request %v assigned to elevator %d"
	ALLOCATION_FORMAT                 = "  %d passengers queued on elevator %d"
	STATS_FORMAT                      = "Passengers requested %d, delivered %d, redistributed %d, overloads %d"
	HISTORY_TIME_FORMAT               = "15:04:05.000"
)
