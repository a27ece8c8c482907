package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"go-keybed/config"
	"go-keybed/geometry"
	"go-keybed/keyboard"
	"go-keybed/logging"
	"go-keybed/midi"
	"go-keybed/theme"
	"go-keybed/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	log, err := openLog(cfg.UI.Debug)
	if err != nil {
		fmt.Printf("logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	kb := keyboard.New(geometry.Config{
		BaseNote:       cfg.Keyboard.BaseNote,
		WhiteKeyWidth:  cfg.Keyboard.WhiteKeyWidth,
		WhiteKeyHeight: cfg.Keyboard.WhiteKeyHeight,
		MarginX:        cfg.Keyboard.MarginX,
		MarginY:        cfg.Keyboard.MarginY,
	}, cfg.Binding.Layout, cfg.Binding.CustomOffsets)

	// MIDI output with hot-plug; playing works without a port, it just
	// goes nowhere until one shows up.
	sink := midi.NewPortSink(cfg.MIDI.PortName, log)
	defer sink.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sink.Run(ctx)

	th := theme.New(theme.ByName(cfg.UI.Palette))

	m := tui.NewModel(kb, sink, th, log)
	m.PortStatus = func() string {
		if name, ok := sink.Connected(); ok {
			return "midi:" + name
		}
		return "midi:off"
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		log.Error("tui exited", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func openLog(debug bool) (*zap.Logger, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return logging.New(debug)
	}
	return logging.NewFile(filepath.Join(dir, "keybed.log"), debug)
}
