package midi

import (
	"context"
	"errors"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"go.uber.org/zap"
)

const pollRate = time.Second

// Run keeps the sink connected, polling for hot-plug: it reconnects when
// the preferred port appears and drops the connection when it disappears.
// Blocking - run in a goroutine.
func (s *PortSink) Run(ctx context.Context) {
	ticker := time.NewTicker(pollRate)
	defer ticker.Stop()

	s.scan()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.scan()
		}
	}
}

func (s *PortSink) scan() {
	name, connected := s.Connected()
	if connected {
		for _, p := range getOutPorts() {
			if p.String() == name {
				return
			}
		}
		s.disconnect()
		return
	}
	if err := s.Connect(); err != nil && !errors.Is(err, ErrNotConnected) {
		s.log.Error("midi: connect failed", zap.Error(err))
	}
}

// getOutPorts lists ports with a timeout; some backends can hang on
// enumeration.
func getOutPorts() []drivers.Out {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()
	select {
	case outs := <-ch:
		return outs
	case <-time.After(3 * time.Second):
		return nil
	}
}

func findOut(name string) (drivers.Out, bool) {
	outs := getOutPorts()
	if len(outs) == 0 {
		return nil, false
	}
	if name == "" {
		return outs[0], true
	}
	want := strings.ToLower(name)
	for _, p := range outs {
		if strings.Contains(strings.ToLower(p.String()), want) {
			return p, true
		}
	}
	return nil, false
}
