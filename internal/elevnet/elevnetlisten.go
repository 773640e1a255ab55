package elevnet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

var (
	ErrAlreadyListening = errors.New("status listen is already listening")
	ErrNotListening     = errors.New("status listen is not listening")
)

// StatusListen receives status packets. Stop closes StatusReceived, read it
// before stopping.
type StatusListen struct {
	StatusReceived chan StatusPacket //packets broadcasted on network

	mu        sync.Mutex
	listening bool
	conn      *net.UDPConn
	stopCh    chan struct{}
	done      sync.WaitGroup
	address   string
}

func NewStatusListen(address string) *StatusListen {
	return &StatusListen{
		StatusReceived: make(chan StatusPacket, LISTEN_CHANNEL_DEPTH),
		address:        address,
	}
}

func (sl *StatusListen) Start() error {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.listening {
		return ErrAlreadyListening
	}

	udpAddress, err := net.ResolveUDPAddr("udp", sl.address)
	if err != nil {
		return fmt.Errorf("error resolving UDP Address: %w", err)
	}

	sl.conn, err = net.ListenUDP("udp", udpAddress)
	if err != nil {
		return fmt.Errorf("error creating UDP Socket: %w", err)
	}

	if sl.StatusReceived == nil {
		sl.StatusReceived = make(chan StatusPacket, LISTEN_CHANNEL_DEPTH)
	}
	sl.stopCh = make(chan struct{})
	sl.listening = true
	sl.done.Add(1)

	go func(conn *net.UDPConn, received chan<- StatusPacket, stopCh chan struct{}) {
		defer sl.done.Done()
		listenBuffer := make([]byte, BUFFER_LENGTH)
		for {
			n, _, err := conn.ReadFromUDP(listenBuffer)
			if err != nil {
				select {
				case <-stopCh:
					Log.Info().Msgf("Stopping Listening task...")
					return
				default:
				}
				if errors.Is(err, net.ErrClosed) {
					Log.Error().Msgf("Listening socket closed: %v", err)
					return
				}
				Log.Error().Msgf("Error reading UDP message: %v", err)
				select {
				case <-stopCh:
					return
				case <-time.After(READ_ERROR_BACKOFF):
				}
				continue
			}

			var packet StatusPacket
			if err = json.Unmarshal(listenBuffer[:n], &packet); err != nil {
				Log.Error().Msgf("Error deserialising JSON: %v", err)
				continue
			}

			select {
			case received <- packet:
			case <-stopCh:
				return
			default:
				Log.Warn().Msgf("Dropping status packet from %s, nobody is reading", packet.MetaData.Identifier)
			}
		}
	}(sl.conn, sl.StatusReceived, sl.stopCh)

	Log.Info().Msgf("Listening for status on %s", sl.address)
	return nil
}

func (sl *StatusListen) Stop() error {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if !sl.listening {
		return ErrNotListening
	}

	close(sl.stopCh)
	sl.conn.Close()
	sl.done.Wait()
	close(sl.StatusReceived)
	sl.StatusReceived = nil
	sl.listening = false
	return nil
}
