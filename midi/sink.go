// Package midi sends encoded control messages to a real MIDI output port.
package midi

import (
	"errors"
	"sync"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
	"go.uber.org/zap"

	"go-keybed/message"
)

// ErrNotConnected is returned by Send while no output port is open.
var ErrNotConnected = errors.New("midi: no output port connected")

// PortSink forwards messages to one MIDI output port. It is safe for
// concurrent use; the watcher goroutine swaps the connection under the same
// lock Send takes.
type PortSink struct {
	mu       sync.Mutex
	name     string // substring match, empty picks the first port
	log      *zap.Logger
	out      drivers.Out
	send     func(gomidi.Message) error
	portName string
}

// NewPortSink creates an unconnected sink preferring ports whose name
// contains name.
func NewPortSink(name string, log *zap.Logger) *PortSink {
	return &PortSink{name: name, log: log}
}

// Send writes one message to the connected port.
func (s *PortSink) Send(m message.Message) error {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send == nil {
		return ErrNotConnected
	}
	return send(gomidi.Message(m))
}

// Connected reports whether an output port is currently open, and its name.
func (s *PortSink) Connected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portName, s.send != nil
}

// Connect scans the output ports and opens the preferred one.
func (s *PortSink) Connect() error {
	out, ok := findOut(s.name)
	if !ok {
		return ErrNotConnected
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.out = out
	s.send = send
	s.portName = out.String()
	s.mu.Unlock()

	s.log.Info("midi: output connected", zap.String("port", out.String()))
	return nil
}

// Close releases the port and the driver.
func (s *PortSink) Close() {
	s.mu.Lock()
	if s.out != nil {
		s.out.Close()
		s.out = nil
		s.send = nil
	}
	s.mu.Unlock()
	gomidi.CloseDriver()
}

func (s *PortSink) disconnect() {
	s.mu.Lock()
	name := s.portName
	if s.out != nil {
		s.out.Close()
	}
	s.out = nil
	s.send = nil
	s.portName = ""
	s.mu.Unlock()

	s.log.Warn("midi: output port disappeared", zap.String("port", name))
}

// Discard is a Sink that drops everything, for running without a port.
var Discard discard

type discard struct{}

func (discard) Send(message.Message) error { return nil }
