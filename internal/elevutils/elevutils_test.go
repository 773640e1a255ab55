package elevutils

import (
	"net"
	"testing"
)

func TestParseCmdArgsDefaults(t *testing.T) {
	cmdArgs, err := ParseCmdArgs("elevator", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cmdArgs.ConfigPath != "" || cmdArgs.Watch || cmdArgs.Calls != 50 || cmdArgs.Seed != 1 {
		t.Errorf("Expected defaults, got %+v", cmdArgs)
	}
}

func TestParseCmdArgs(t *testing.T) {
	cmdArgs, err := ParseCmdArgs("elevatortester", []string{"-config", "fleet.yaml", "-env", ".env", "-loglevel", "debug", "-watch", "-calls", "12", "-seed", "7", "-id", "lobby"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cmdArgs.ConfigPath != "fleet.yaml" || cmdArgs.EnvPath != ".env" || cmdArgs.LogLevel != "debug" {
		t.Errorf("Expected paths and level to be parsed, got %+v", cmdArgs)
	}
	if !cmdArgs.Watch || cmdArgs.Calls != 12 || cmdArgs.Seed != 7 || cmdArgs.Identifier != "lobby" {
		t.Errorf("Expected tester flags to be parsed, got %+v", cmdArgs)
	}
}

func TestParseCmdArgsRejectsBadInput(t *testing.T) {
	if _, err := ParseCmdArgs("elevator", []string{"-unknown"}); err == nil {
		t.Error("Expected an error for an unknown flag")
	}
	if _, err := ParseCmdArgs("elevator", []string{"-calls", "-3"}); err == nil {
		t.Error("Expected an error for negative calls")
	}
}

func TestGetGitHash(t *testing.T) {
	if GetGitHash() == "" {
		t.Error("Expected an embedded git hash")
	}
}

func TestGetLocalIP(t *testing.T) {
	if net.ParseIP(GetLocalIP()) == nil {
		t.Errorf("Expected a valid IP address, got %q", GetLocalIP())
	}
}
