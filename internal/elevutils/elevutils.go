package elevutils

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > githash.txt"
//go:embed githash.txt
var gitHash string

func GetGitHash() string {
	return strings.TrimSpace(gitHash)
}

// CmdArgs holds the command line of both binaries. The tester-only flags are
// ignored by the simulator.
type CmdArgs struct {
	ConfigPath string
	EnvPath    string
	LogLevel   string
	Identifier string
	Version    bool
	Help       bool

	Watch bool
	Calls int
	Seed  int64
}

func newFlagSet(program string, cmdArgs *CmdArgs) *flag.FlagSet {
	flagSet := flag.NewFlagSet(program, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	flagSet.BoolVar(&cmdArgs.Help, "help", false, "Show Help Window")
	flagSet.BoolVar(&cmdArgs.Version, "version", false, "Show Version")
	flagSet.StringVar(&cmdArgs.ConfigPath, "config", "", "Path to a YAML configuration file. Defaults to two elevators")
	flagSet.StringVar(&cmdArgs.EnvPath, "env", "", "Path to a .env file with ELEVSIM_ overrides")
	flagSet.StringVar(&cmdArgs.LogLevel, "loglevel", "", "Log level (trace, debug, info, warn, error). Overrides the configuration")
	flagSet.StringVar(&cmdArgs.Identifier, "id", "", "Set the identifier of the simulation. Defaults to random string")
	flagSet.BoolVar(&cmdArgs.Watch, "watch", false, "Only listen for status broadcasts (tester)")
	flagSet.IntVar(&cmdArgs.Calls, "calls", 50, "Number of random calls to generate (tester)")
	flagSet.Int64Var(&cmdArgs.Seed, "seed", 1, "Seed of the random call generator (tester)")
	return flagSet
}

// ParseCmdArgs parses args without exiting.
func ParseCmdArgs(program string, args []string) (CmdArgs, error) {
	cmdArgs := CmdArgs{}
	flagSet := newFlagSet(program, &cmdArgs)
	if err := flagSet.Parse(args); err != nil {
		return cmdArgs, fmt.Errorf("parsing command line: %w", err)
	}
	if cmdArgs.Calls < 0 {
		return cmdArgs, fmt.Errorf("calls must not be negative, got %d", cmdArgs.Calls)
	}
	return cmdArgs, nil
}

// ProcessCmdArgs parses os.Args and handles -help and -version itself.
func ProcessCmdArgs() CmdArgs {
	program := "elevator"
	if len(os.Args) > 0 {
		program = os.Args[0]
	}

	cmdArgs, err := ParseCmdArgs(program, os.Args[1:])
	if err != nil {
		fmt.Println(err)
		cmdArgs.Help = true
	}

	if cmdArgs.Version {
		fmt.Println("Version:", GetGitHash())
		os.Exit(0)
	}

	if cmdArgs.Help {
		fmt.Printf("Usage: %s [OPTIONS]\n", program)
		fmt.Println("Elevator Dispatch Simulation")
		fmt.Println()
		fmt.Println("Options:")
		flagSet := newFlagSet(program, &CmdArgs{})
		flagSet.SetOutput(os.Stdout)
		flagSet.PrintDefaults()
		if err != nil {
			os.Exit(2)
		}
		os.Exit(0)
	}

	return cmdArgs
}

var (
	localIP     string //local string, not to be accessed anywhere
	localIPOnce sync.Once
)

// GetLocalIP returns the address of the outbound interface, or 127.0.0.1
// when there is no route.
func GetLocalIP() string {
	localIPOnce.Do(func() {
		localIP = "127.0.0.1"
		// dialing UDP only picks a route, nothing is sent
		conn, err := net.DialUDP("udp4", nil, &net.UDPAddr{IP: []byte{8, 8, 8, 8}, Port: 53})
		if err != nil {
			return
		}
		defer conn.Close()
		localIP = strings.Split(conn.LocalAddr().String(), ":")[0]
	})
	return localIP
}
