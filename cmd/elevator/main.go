package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/dispatcher"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconfig"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevconsole"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevmetadata"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevnet"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevutils"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Logger = logger.GetLogger()

func loadConfig(cmdArgs elevutils.CmdArgs) elevconfig.Config {
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
	if cmdArgs.Identifier != "" {
		config.Identifier = cmdArgs.Identifier
	}
	if err := config.Validate(); err != nil {
		Logger.Fatal().Msgf("Invalid configuration: %v", err)
	}
	return config
}

func main() {
	cmdArgs := elevutils.ProcessCmdArgs()
	config := loadConfig(cmdArgs)
	Logger = logger.GetLoggerConfigured(logger.ParseLevel(config.LogLevel))

	// Starting Programme
	Logger.Info().Msg("Starting Elevator Simulation")

	system, err := dispatcher.NewElevatorSystem(config.Elevators,
		dispatcher.WithTiming(config.Timing),
		dispatcher.WithHistoryLimit(config.HistoryLimit),
		dispatcher.WithFloorRange(config.LowestFloor, config.HighestFloor),
	)
	if err != nil {
		Logger.Fatal().Msgf("Error creating elevator system: %v", err)
	}

	metaData := elevmetadata.NewSystemMetaData(elevutils.GetGitHash(), elevutils.GetLocalIP(), config.Identifier, len(config.Elevators))
	Logger.Info().Msgf("Simulation: %v", metaData.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := system.Start(); err != nil {
		Logger.Fatal().Msgf("Error starting elevator system: %v", err)
	}
	defer system.Stop()

	if config.Broadcast.Enabled {
		broadcast := elevnet.NewStatusBroadcast(config.Broadcast.Address, metaData, system)
		if err := broadcast.Start(config.Broadcast.Period); err != nil {
			Logger.Error().Msgf("Status broadcast disabled: %v", err)
		} else {
			defer broadcast.Stop()
		}
	}

	go func() {
		for event := range system.Subscribe(ctx, 64) {
			Logger.Trace().Msgf("Event %s from elevator %d", event.EventType(), event.ElevatorID())
		}
	}()

	controller := elevconsole.NewController(system, elevconsole.NewTerminal(os.Stdin, os.Stdout, true))
	done := make(chan error, 1)
	go func() {
		done <- controller.Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			Logger.Error().Msgf("Console stopped: %v", err)
		}
	case <-ctx.Done():
		Logger.Warn().Msg("Signal received, shutting down")
	}

	Logger.Info().Msgf("Final stats: %+v", system.Stats())
}
