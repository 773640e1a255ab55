package logger

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

var waitGroup sync.WaitGroup

func loopGetLogger(t *testing.T, routineNum int) {
	defer waitGroup.Done()
	for i := 0; i < 1000; i++ {
		logger1 := GetLogger()
		if logger1 == nil {
			t.Errorf("GetLogger() = nil in goroutine %d, expected a non-nil logger", routineNum)
		}
	}

}
func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Errorf("GetLogger() = nil, expected a non-nil logger")
	}

	waitGroup.Add(2)
	go loopGetLogger(t, 1)
	go loopGetLogger(t, 2)
	waitGroup.Wait()
}

func TestGetLoggerConfiguredChangesLevel(t *testing.T) {
	previous := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(previous)

	first := GetLoggerConfigured(zerolog.WarnLevel)
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("Expected global level %v, got %v", zerolog.WarnLevel, zerolog.GlobalLevel())
	}

	second := GetLoggerConfigured(zerolog.Disabled)
	if zerolog.GlobalLevel() != zerolog.Disabled {
		t.Errorf("Expected global level %v, got %v", zerolog.Disabled, zerolog.GlobalLevel())
	}
	if first != second {
		t.Errorf("Expected the same logger instance to be returned")
	}
}

func TestParseLevel(t *testing.T) {
	levels := map[string]zerolog.Level{
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"nonsense": zerolog.InfoLevel,
	}

	for input, expected := range levels {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", input, got, expected)
		}
	}
}
