package elevconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsts"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevmover"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Log = logger.GetLogger()

const (
	ENV_PREFIX                = "ELEVSIM_"
	DEFAULT_LOWEST_FLOOR      = 0
	DEFAULT_HIGHEST_FLOOR     = 9
	DEFAULT_BROADCAST_ADDRESS = "127.0.0.1:9999"
	DEFAULT_BROADCAST_PERIOD  = 500 * time.Millisecond
)

var (
	ErrNoElevators     = errors.New("configuration has no elevators")
	ErrInvalidFloors   = errors.New("lowest floor is above highest floor")
	ErrInvalidElevator = errors.New("invalid elevator definition")
	ErrInvalidTiming   = errors.New("durations must not be negative")
	ErrInvalidEnvValue = errors.New("invalid environment value")
)

type BroadcastConfig struct {
	Enabled bool          `yaml:"enabled"`
	Address string        `yaml:"address"`
	Period  time.Duration `yaml:"period"`
}

type Config struct {
	LogLevel     string                `yaml:"log_level"`
	Identifier   string                `yaml:"identifier"`
	LowestFloor  int                   `yaml:"lowest_floor"`
	HighestFloor int                   `yaml:"highest_floor"`
	HistoryLimit int                   `yaml:"history_limit"`
	Timing       elevmover.Timing      `yaml:"timing"`
	Broadcast    BroadcastConfig       `yaml:"broadcast"`
	Elevators    []elevator.Definition `yaml:"elevators"`
}

// Default is the two car building the console app starts with.
func Default() Config {
	return Config{
		LogLevel:     "info",
		LowestFloor:  DEFAULT_LOWEST_FLOOR,
		HighestFloor: DEFAULT_HIGHEST_FLOOR,
		HistoryLimit: elevconsts.DEFAULT_HISTORY_LIMIT,
		Timing:       elevmover.DefaultTiming(),
		Broadcast: BroadcastConfig{
			Enabled: false,
			Address: DEFAULT_BROADCAST_ADDRESS,
			Period:  DEFAULT_BROADCAST_PERIOD,
		},
		Elevators: []elevator.Definition{
			{ID: 1, MaxPassengerLimit: elevconsts.DEFAULT_MAX_PASSENGER_LIMIT},
			{ID: 2, MaxPassengerLimit: elevconsts.DEFAULT_MAX_PASSENGER_LIMIT},
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return config, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return config, fmt.Errorf("decoding config %s: %w", path, err)
	}

	Log.Debug().Msgf("Loaded configuration from %s with %d elevators", path, len(config.Elevators))
	return config, nil
}

// ApplyEnv overrides the configuration with ELEVSIM_ variables, first from
// the optional .env file and then from the process environment.
func (c *Config) ApplyEnv(envPath string) error {
	values := map[string]string{}
	if envPath != "" {
		envFile, err := godotenv.Read(envPath)
		if err != nil {
			return fmt.Errorf("reading env file %s: %w", envPath, err)
		}
		for key, value := range envFile {
			values[key] = value
		}
	}
	for _, name := range envKeys {
		if value, ok := os.LookupEnv(ENV_PREFIX + name); ok {
			values[ENV_PREFIX+name] = value
		}
	}
	return c.applyValues(values)
}

var envKeys = []string{
	"LOG_LEVEL",
	"IDENTIFIER",
	"LOWEST_FLOOR",
	"HIGHEST_FLOOR",
	"HISTORY_LIMIT",
	"FLOOR_TRAVEL_DURATION",
	"DOOR_OPEN_DURATION",
	"DOOR_CLOSE_DURATION",
	"BROADCAST_ENABLED",
	"BROADCAST_ADDRESS",
	"BROADCAST_PERIOD",
}

func (c *Config) applyValues(values map[string]string) error {
	for key, value := range values {
		name, ok := strings.CutPrefix(key, ENV_PREFIX)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		var err error
		switch name {
		case "LOG_LEVEL":
			c.LogLevel = value
		case "IDENTIFIER":
			c.Identifier = value
		case "LOWEST_FLOOR":
			c.LowestFloor, err = strconv.Atoi(value)
		case "HIGHEST_FLOOR":
			c.HighestFloor, err = strconv.Atoi(value)
		case "HISTORY_LIMIT":
			c.HistoryLimit, err = strconv.Atoi(value)
		case "FLOOR_TRAVEL_DURATION":
			c.Timing.FloorTravelDuration, err = time.ParseDuration(value)
		case "DOOR_OPEN_DURATION":
			c.Timing.DoorOpenDuration, err = time.ParseDuration(value)
		case "DOOR_CLOSE_DURATION":
			c.Timing.DoorCloseDuration, err = time.ParseDuration(value)
		case "BROADCAST_ENABLED":
			c.Broadcast.Enabled, err = strconv.ParseBool(value)
		case "BROADCAST_ADDRESS":
			c.Broadcast.Address = value
		case "BROADCAST_PERIOD":
			c.Broadcast.Period, err = time.ParseDuration(value)
		default:
			Log.Warn().Msgf("Ignoring unknown setting %s", key)
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidEnvValue, key, value, err)
		}
		Log.Debug().Msgf("Setting %s overridden from environment", key)
	}
	return nil
}

// Validate checks the configuration before the system is built.
func (c *Config) Validate() error {
	if len(c.Elevators) == 0 {
		return ErrNoElevators
	}
	if c.LowestFloor > c.HighestFloor {
		return fmt.Errorf("%w: %d > %d", ErrInvalidFloors, c.LowestFloor, c.HighestFloor)
	}
	if c.Timing.FloorTravelDuration < 0 || c.Timing.DoorOpenDuration < 0 || c.Timing.DoorCloseDuration < 0 {
		return ErrInvalidTiming
	}
	if c.Broadcast.Enabled && c.Broadcast.Period <= 0 {
		return fmt.Errorf("%w: broadcast period %v", ErrInvalidTiming, c.Broadcast.Period)
	}

	seen := map[int]bool{}
	for _, def := range c.Elevators {
		switch {
		case seen[def.ID]:
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidElevator, def.ID)
		case def.MaxPassengerLimit <= 0:
			return fmt.Errorf("%w: elevator %d has capacity %d", ErrInvalidElevator, def.ID, def.MaxPassengerLimit)
		case def.PassengerCount < 0 || def.PassengerCount > def.MaxPassengerLimit:
			return fmt.Errorf("%w: elevator %d starts with %d passengers", ErrInvalidElevator, def.ID, def.PassengerCount)
		case def.StartFloor < c.LowestFloor || def.StartFloor > c.HighestFloor:
			return fmt.Errorf("%w: elevator %d starts at floor %d", ErrInvalidElevator, def.ID, def.StartFloor)
		}
		seen[def.ID] = true
	}
	return nil
}
