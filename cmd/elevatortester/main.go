package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/dispatcher"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconfig"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevnet"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevrequest"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevutils"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Logger = logger.GetLogger()

const POLL_PERIOD = 50 * time.Millisecond

func main() {
	cmdArgs := elevutils.ProcessCmdArgs()

	config, err := elevconfig.Load(cmdArgs.ConfigPath)
	if err != nil {
		Logger.Fatal().Msgf("Error loading configuration: %v", err)
	}
	if err := config.ApplyEnv(cmdArgs.EnvPath); err != nil {
		Logger.Fatal().Msgf("Error applying environment: %v", err)
	}
	if cmdArgs.LogLevel != "" {
		config.LogLevel = cmdArgs.LogLevel
	}
	if err := config.Validate(); err != nil {
		Logger.Fatal().Msgf("Invalid configuration: %v", err)
	}
	Logger = logger.GetLoggerConfigured(logger.ParseLevel(config.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmdArgs.Watch {
		watch(ctx, config.Broadcast.Address)
		return
	}

	if !generateLoad(ctx, config, cmdArgs.Calls, cmdArgs.Seed) {
		os.Exit(1)
	}
}

// watch prints every status packet heard on address.
func watch(ctx context.Context, address string) {
	listen := elevnet.NewStatusListen(address)
	if err := listen.Start(); err != nil {
		Logger.Fatal().Msgf("Error listening for status: %v", err)
	}
	received := listen.StatusReceived
	defer listen.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case packet := <-received:
			fmt.Printf("%s (%s) at %s\n", packet.MetaData.Identifier, packet.MetaData.HostAddress, packet.SentAt.Local().Format(time.TimeOnly))
			for _, status := range packet.Statuses {
				fmt.Printf("  %v\n", status.String())
			}
		}
	}
}

// generateLoad fires random calls at a running system and reports whether
// every passenger arrived without any car going over its limit.
func generateLoad(ctx context.Context, config elevconfig.Config, calls int, seed int64) bool {
	system, err := dispatcher.NewElevatorSystem(config.Elevators,
		dispatcher.WithTiming(config.Timing),
		dispatcher.WithHistoryLimit(0),
		dispatcher.WithFloorRange(config.LowestFloor, config.HighestFloor),
	)
	if err != nil {
		Logger.Fatal().Msgf("Error creating elevator system: %v", err)
	}
	if err := system.Start(); err != nil {
		Logger.Fatal().Msgf("Error starting elevator system: %v", err)
	}
	defer system.Stop()

	maxCapacity := 0
	for _, def := range config.Elevators {
		maxCapacity = max(maxCapacity, def.MaxPassengerLimit)
	}

	rng := rand.New(rand.NewSource(seed))
	floors := config.HighestFloor - config.LowestFloor + 1
	for i := 0; i < calls; i++ {
		request := elevrequest.NewFloorRequest(
			config.LowestFloor+rng.Intn(floors),
			config.LowestFloor+rng.Intn(floors),
			rng.Intn(2*maxCapacity+1),
		)
		assignment, err := system.CallElevator(request)
		if err != nil {
			Logger.Error().Msgf("Call %v rejected: %v", request, err)
			continue
		}
		Logger.Info().Msgf("Call %d: %v -> elevator %d", i+1, request, assignment.ElevatorID)
	}

	ticker := time.NewTicker(POLL_PERIOD)
	defer ticker.Stop()
	for stats := system.Stats(); stats.Delivered < stats.Requested; stats = system.Stats() {
		select {
		case <-ctx.Done():
			Logger.Warn().Msgf("Interrupted with %d of %d passengers delivered", stats.Delivered, stats.Requested)
			return false
		case <-ticker.C:
		}
	}

	ok := true
	limits := map[int]int{}
	for _, def := range config.Elevators {
		limits[def.ID] = def.MaxPassengerLimit
	}
	for id, history := range system.GetElevatorMovementHistory() {
		for _, entry := range history {
			if entry.PassengerCount > limits[id] {
				Logger.Error().Msgf("Elevator %d carried %d passengers, limit %d", id, entry.PassengerCount, limits[id])
				ok = false
			}
		}
	}

	stats := system.Stats()
	Logger.Info().Msgf("Requested %d, delivered %d, redistributed %d, overloads %d", stats.Requested, stats.Delivered, stats.Redistributed, stats.Overloads)
	if stats.Delivered != stats.Requested {
		ok = false
	}
	return ok
}
