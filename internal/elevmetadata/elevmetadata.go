package elevmetadata

import (
	"encoding/json"
	"time"

	"github.com/xyproto/randomstring"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Log = logger.GetLogger()

const IDENTIFIER_LENGTH = 10

// SystemMetaData identifies one running simulation on the network.
type SystemMetaData struct {
	SoftwareVersion string    `json:"software_version"`
	HostAddress     string    `json:"host_address"`
	Identifier      string    `json:"identifier"`
	ElevatorCount   int       `json:"elevator_count"`
	StartedAt       time.Time `json:"started_at"`
}

// NewSystemMetaData fills in a random identifier when none is given.
func NewSystemMetaData(softwareVersion, hostAddress, identifier string, elevatorCount int) *SystemMetaData {
	if identifier == "" {
		identifier = randomstring.EnglishFrequencyString(IDENTIFIER_LENGTH)
		Log.Debug().Msgf("Generated system identifier %s", identifier)
	}
	return &SystemMetaData{
		SoftwareVersion: softwareVersion,
		HostAddress:     hostAddress,
		Identifier:      identifier,
		ElevatorCount:   elevatorCount,
		StartedAt:       time.Now().UTC().Truncate(time.Second),
	}
}

func (md *SystemMetaData) Uptime() time.Duration {
	return time.Since(md.StartedAt)
}

func (md *SystemMetaData) String() string {
	jsonData, err := json.Marshal(md)

	if err != nil {
		Log.Error().Msg("Error Serialising SystemMetaData Object to JSON")
		return ""
	}
	return string(jsonData)
}
