package elevnet

import (
	"encoding/json"
	"time"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevator"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevmetadata"
	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/logger"
)

var Log = logger.GetLogger()

const (
	BUFFER_LENGTH        = 8192 //for receiving and transmitting
	LISTEN_CHANNEL_DEPTH = 16
	READ_ERROR_BACKOFF   = 100 * time.Millisecond
)

// StatusSource is what the broadcaster reports on. The dispatcher satisfies it.
type StatusSource interface {
	GetElevatorStatus() []elevator.Status
}

// StatusPacket is one datagram on the wire.
type StatusPacket struct {
	MetaData elevmetadata.SystemMetaData `json:"metadata"`
	Statuses []elevator.Status           `json:"statuses"`
	SentAt   time.Time                   `json:"sent_at"`
}

func (sp *StatusPacket) String() string {
	jsonData, err := json.Marshal(sp)
	if err != nil {
		Log.Error().Msg("Error Serialising StatusPacket Object to JSON")
		return ""
	}
	return string(jsonData)
}

type StatusNetwork struct {
	Broadcast *StatusBroadcast
	Listen    *StatusListen
}

func NewStatusNetwork(address string, metaData *elevmetadata.SystemMetaData, source StatusSource) *StatusNetwork {
	return &StatusNetwork{
		Broadcast: NewStatusBroadcast(address, metaData, source),
		Listen:    NewStatusListen(address),
	}
}
