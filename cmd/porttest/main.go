package main

import (
	"fmt"
	"os"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-keybed/message"
)

func main() {
	defer gomidi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "scale":
		name := ""
		if len(os.Args) > 2 {
			name = os.Args[2]
		}
		playScale(name)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI port test")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list          - List all MIDI ports")
	fmt.Println("  scale [port]  - Send a C major scale to a port")
}

func listPorts() {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		fmt.Println("=== MIDI Input Ports ===")
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("timed out enumerating ports")
	}
}

func playScale(name string) {
	var out drivers.Out
	if name == "" {
		outs := gomidi.GetOutPorts()
		if len(outs) == 0 {
			fmt.Println("no output ports")
			return
		}
		out = outs[0]
	} else {
		var err error
		out, err = gomidi.FindOutPort(name)
		if err != nil {
			fmt.Printf("no output port matching %q: %v\n", name, err)
			return
		}
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		fmt.Printf("open %s: %v\n", out.String(), err)
		return
	}

	fmt.Printf("playing on %s\n", out.String())
	scale := []int{60, 62, 64, 65, 67, 69, 71, 72}
	for _, note := range scale {
		send(gomidi.Message(message.NoteOn(note, 100)))
		time.Sleep(200 * time.Millisecond)
		send(gomidi.Message(message.NoteOff(note)))
	}
}
