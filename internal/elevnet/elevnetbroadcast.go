package elevnet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/Pantherphor/DVT.ElevatorSimulation/internal/elevmetadata"
)

var (
	ErrAlreadyBroadcasting = errors.New("status broadcast is already broadcasting")
	ErrNotBroadcasting     = errors.New("status broadcast is not broadcasting")
)

// StatusBroadcast periodically sends the fleet status as a JSON datagram.
type StatusBroadcast struct {
	mu           sync.Mutex
	broadcasting bool
	stopCh       chan struct{}
	done         sync.WaitGroup

	address  string
	metaData *elevmetadata.SystemMetaData
	source   StatusSource
}

func NewStatusBroadcast(address string, metaData *elevmetadata.SystemMetaData, source StatusSource) *StatusBroadcast {
	return &StatusBroadcast{
		address:  address,
		metaData: metaData,
		source:   source,
	}
}

func (sb *StatusBroadcast) Start(broadcastPeriod time.Duration) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.broadcasting {
		return ErrAlreadyBroadcasting
	}
	if sb.metaData == nil || sb.source == nil {
		return errors.New("status broadcast needs metadata and a status source")
	}
	if broadcastPeriod <= 0 {
		return fmt.Errorf("broadcast period must be positive, got %v", broadcastPeriod)
	}

	udpAddress, err := net.ResolveUDPAddr("udp", sb.address)
	if err != nil {
		return fmt.Errorf("error resolving UDP Address: %w", err)
	}

	conn, err := net.DialUDP("udp", nil, udpAddress)
	if err != nil {
		return fmt.Errorf("error creating UDP Socket: %w", err)
	}
	configureWriteBuffer(conn, BUFFER_LENGTH)

	sb.stopCh = make(chan struct{})
	sb.broadcasting = true
	sb.done.Add(1)

	go func(stopCh chan struct{}) {
		defer sb.done.Done()
		defer conn.Close()
		timeTicker := time.NewTicker(broadcastPeriod)
		defer timeTicker.Stop()

		for {
			select {
			case <-timeTicker.C:
				sb.send(conn)
			case <-stopCh:
				Log.Info().Msgf("Stopping Broadcasting task...")
				return
			}
		}
	}(sb.stopCh)

	Log.Info().Msgf("Started To Broadcast status to %s every %v", sb.address, broadcastPeriod)
	return nil
}

type writeBufferSetter interface {
	SetWriteBuffer(bytes int) error
}

// configureWriteBuffer sizes the socket buffer. Failures are logged and
// broadcasting goes on.
func configureWriteBuffer(conn writeBufferSetter, size int) error {
	if err := conn.SetWriteBuffer(size); err != nil {
		Log.Warn().Msgf("Error setting UDP write buffer to %d: %v", size, err)
		return err
	}
	return nil
}

func (sb *StatusBroadcast) send(conn *net.UDPConn) {
	packet := StatusPacket{
		MetaData: *sb.metaData,
		Statuses: sb.source.GetElevatorStatus(),
		SentAt:   time.Now().UTC(),
	}

	jsonData, err := json.Marshal(packet)
	if err != nil {
		Log.Error().Msgf("Error marshalling JSON: %v", err)
		return
	}
	if len(jsonData) > BUFFER_LENGTH {
		Log.Error().Msgf("Status packet of %d bytes does not fit in %d", len(jsonData), BUFFER_LENGTH)
		return
	}
	if _, err = conn.Write(jsonData); err != nil {
		Log.Error().Msgf("Error writing to UDP Socket: %v", err)
		return
	}

	Log.Trace().Msgf("Sent Packet: %v", string(jsonData))
}

func (sb *StatusBroadcast) Stop() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.broadcasting {
		return ErrNotBroadcasting
	}

	close(sb.stopCh)
	sb.done.Wait()
	sb.broadcasting = false
	return nil
}
