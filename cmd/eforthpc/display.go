package main

import (
	"fmt"
	"strings"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/smemsky/eforthpc/console"
	"github.com/smemsky/eforthpc/cpu"
	"github.com/smemsky/eforthpc/machine"
)

// usPerTick is the host's tick rate: one runTick per 50ms (20Hz), matching
// the reference main loop's default scheduling quantum.
const usPerTick = 50000

var (
	paragraphScreen = widgets.NewParagraph()
	paragraphRegs   = widgets.NewParagraph()
)

func initLayout() {
	paragraphScreen.Title = "Console"
	paragraphScreen.SetRect(0, 0, console.Width+2, console.Height+2)

	paragraphRegs.Title = "Registers"
	paragraphRegs.SetRect(console.Width+2, 0, console.Width+2+28, 12)
}

func renderScreen(m *machine.Machine) {
	snap := m.Console.Snapshot()
	visible := snap.CursorVisible(m.CPU.Ticks())

	sb := strings.Builder{}
	for y := 0; y < console.Height; y++ {
		for x := 0; x < console.Width; x++ {
			ch := rune(snap.Screen[y*console.Width+x])
			if ch == 0 {
				ch = ' '
			}
			if visible && x == int(snap.CursorX) && y == int(snap.CursorY) {
				sb.WriteString(fmt.Sprintf("[%c](bg:white,fg:black)", ch))
			} else {
				sb.WriteRune(ch)
			}
		}
		sb.WriteRune('\n')
	}
	paragraphScreen.Text = sb.String()
}

func renderRegisters(m *machine.Machine) {
	r := m.CPU.Regs
	flags := m.CPU.Flags()

	flagBit := func(f cpu.Flag, symbol byte) string {
		if flags&f != 0 {
			return fmt.Sprintf("[%c](fg:green)", symbol)
		}
		return fmt.Sprintf("[%c](fg:red)", symbol)
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("PC:$%04X SP:$%04X R:$%04X\n", r.PC, r.SP, r.R))
	sb.WriteString(fmt.Sprintf("A:$%04X X:$%04X Y:$%04X\n", r.A, r.X, r.Y))
	sb.WriteString(fmt.Sprintf("D:$%04X I:$%04X\n", r.D, r.I))
	sb.WriteString(flagBit(cpu.FlagE, 'E'))
	sb.WriteString(flagBit(cpu.FlagM, 'M'))
	sb.WriteString(flagBit(cpu.FlagX, 'X'))
	sb.WriteString(flagBit(cpu.Carry, 'C'))
	sb.WriteString(flagBit(cpu.Zero, 'Z'))
	sb.WriteString(flagBit(cpu.Overflow, 'V'))
	sb.WriteString(flagBit(cpu.Sign, 'N'))
	sb.WriteRune('\n')
	sb.WriteString(fmt.Sprintf("ticks: %d", m.CPU.Ticks()))

	paragraphRegs.Text = sb.String()
}

func draw(m *machine.Machine) {
	renderScreen(m)
	renderRegisters(m)
	ui.Render(paragraphScreen, paragraphRegs)
}

// runUI drives the machine's tick loop inside a termui event loop: a fixed
// ticker advances the machine, keyboard input is forwarded to the console's
// ring buffer, and 'q'/Ctrl-C exits.
func runUI(m *machine.Machine) error {
	if err := ui.Init(); err != nil {
		return err
	}
	defer ui.Close()

	initLayout()
	draw(m)

	events := ui.PollEvents()
	ticker := time.NewTicker(usPerTick * time.Microsecond)
	defer ticker.Stop()

	for {
		select {
		case e := <-events:
			if e.Type == ui.KeyboardEvent {
				switch e.ID {
				case "q", "<C-c>":
					return nil
				case "<Enter>":
					m.Console.PushKey(0x0D)
				default:
					if len(e.ID) == 1 {
						code := e.ID[0]
						if code == '\n' {
							code = 0x0D
						}
						if code >= 1 && code <= 127 {
							m.Console.PushKey(code)
						}
					}
				}
			}
		case <-ticker.C:
			m.RunTick()
			draw(m)
		}
	}
}
