// Package console implements the RedBus text console device: an 80x50
// character framebuffer, cursor state, and a 16-byte keyboard ring buffer.
package console

const (
	// Width is the framebuffer width in characters.
	Width = 80
	// Height is the framebuffer height in characters.
	Height = 50

	kbBufferSize = 16

	rowSelectOffset  = 0x00
	cursorXOffset    = 0x01
	cursorYOffset    = 0x02
	cursorModeOffset = 0x03
	kbStartOffset    = 0x04
	kbPositionOffset = 0x05
	kbDataOffset     = 0x06
	blitModeOffset   = 0x07
	blitXSOffset     = 0x08
	blitYSOffset     = 0x09
	blitXDOffset     = 0x0A
	blitYDOffset     = 0x0B
	blitWOffset      = 0x0C
	blitHOffset      = 0x0D
	rowWindowStart   = 0x10
	rowWindowEnd     = 0x10 + Width // exclusive
)

// Cursor display modes, written to offset 0x03.
const (
	CursorOff = iota
	CursorSolid
	CursorBlink
)

// Console is a RedBus device presenting an 80x50 character grid, a cursor,
// and a keyboard ring buffer. It never draws anything itself; callers read a
// Snapshot to rasterize.
type Console struct {
	address uint8

	screen [Width * Height]uint8

	memoryRow uint8

	cursorX    uint8
	cursorY    uint8
	cursorMode uint8

	kbBuffer   [kbBufferSize]uint8
	kbStart    uint8
	kbPosition uint8

	blitMode uint8
	blitXS   uint8
	blitYS   uint8
	blitXD   uint8
	blitYD   uint8
	blitW    uint8
	blitH    uint8
}

// New creates a console registered at the given bus address. The framebuffer
// starts filled with spaces and cursor blink mode enabled, matching cold-boot
// state in the original firmware.
func New(address uint8) *Console {
	c := &Console{address: address, cursorMode: CursorBlink}
	for i := range c.screen {
		c.screen[i] = ' '
	}
	return c
}

// Address implements redbus.Device.
func (c *Console) Address() uint8 { return c.address }

// Read implements redbus.Device.
func (c *Console) Read(offset uint8) uint8 {
	if offset >= rowWindowStart && offset < rowWindowEnd {
		return c.screen[uint16(c.memoryRow)*Width+uint16(offset-rowWindowStart)]
	}

	switch offset {
	case rowSelectOffset:
		return c.memoryRow
	case cursorXOffset:
		return c.cursorX
	case cursorYOffset:
		return c.cursorY
	case cursorModeOffset:
		return c.cursorMode
	case kbStartOffset:
		return c.kbStart
	case kbPositionOffset:
		return c.kbPosition
	case kbDataOffset:
		return c.kbBuffer[c.kbStart]
	case blitModeOffset:
		return c.blitMode
	case blitXSOffset:
		return c.blitXS
	case blitYSOffset:
		return c.blitYS
	case blitXDOffset:
		return c.blitXD
	case blitYDOffset:
		return c.blitYD
	case blitWOffset:
		return c.blitW
	case blitHOffset:
		return c.blitH
	default:
		return 0
	}
}

// Write implements redbus.Device. Blit registers are stored but never
// trigger a blit — the engine that would consume them is unspecified.
func (c *Console) Write(offset uint8, value uint8) {
	if offset >= rowWindowStart && offset < rowWindowEnd {
		c.screen[uint16(c.memoryRow)*Width+uint16(offset-rowWindowStart)] = value
		return
	}

	switch offset {
	case rowSelectOffset:
		c.memoryRow = value
		if c.memoryRow > Height-1 {
			c.memoryRow = Height - 1
		}
	case cursorXOffset:
		c.cursorX = value
	case cursorYOffset:
		c.cursorY = value
	case cursorModeOffset:
		c.cursorMode = value
	case kbStartOffset:
		c.kbStart = value & 0xF
	case kbPositionOffset:
		c.kbPosition = value & 0xF
	case kbDataOffset:
		c.kbBuffer[c.kbStart] = value
	case blitModeOffset:
		c.blitMode = value
	case blitXSOffset:
		c.blitXS = value
	case blitYSOffset:
		c.blitYS = value
	case blitXDOffset:
		c.blitXD = value
	case blitYDOffset:
		c.blitYD = value
	case blitWOffset:
		c.blitW = value
	case blitHOffset:
		c.blitH = value
	}
}

// PushKey enqueues a keypress for the guest to poll, dropping it silently if
// the ring is full.
func (c *Console) PushKey(code uint8) {
	np := (c.kbPosition + 1) & 0xF
	if np != c.kbStart {
		c.kbBuffer[c.kbPosition] = code
		c.kbPosition = np
	}
}

// Snapshot is a read-only view sufficient to rasterize the console: the
// framebuffer plus cursor state. ticks drives cursor blink (mode
// CursorBlink toggles every 4 ticks).
type Snapshot struct {
	Screen     [Width * Height]uint8
	CursorX    uint8
	CursorY    uint8
	CursorMode uint8
}

// Snapshot copies the current framebuffer and cursor state out.
func (c *Console) Snapshot() Snapshot {
	return Snapshot{
		Screen:     c.screen,
		CursorX:    c.cursorX,
		CursorY:    c.cursorY,
		CursorMode: c.cursorMode,
	}
}

// CursorVisible reports whether the cursor should be drawn inverted for the
// given tick count, per CursorMode.
func (s Snapshot) CursorVisible(ticks uint64) bool {
	switch s.CursorMode {
	case CursorSolid:
		return true
	case CursorBlink:
		return ticks>>2&1 != 0
	default:
		return false
	}
}

// State is the full internal state of a Console, including the keyboard
// ring and blit registers that Snapshot omits. Used for save/restore.
type State struct {
	Screen     [Width * Height]uint8
	MemoryRow  uint8
	CursorX    uint8
	CursorY    uint8
	CursorMode uint8
	KBBuffer   [kbBufferSize]uint8
	KBStart    uint8
	KBPosition uint8
	BlitMode   uint8
	BlitXS     uint8
	BlitYS     uint8
	BlitXD     uint8
	BlitYD     uint8
	BlitW      uint8
	BlitH      uint8
}

// ExportState captures the full internal state.
func (c *Console) ExportState() State {
	return State{
		Screen:     c.screen,
		MemoryRow:  c.memoryRow,
		CursorX:    c.cursorX,
		CursorY:    c.cursorY,
		CursorMode: c.cursorMode,
		KBBuffer:   c.kbBuffer,
		KBStart:    c.kbStart,
		KBPosition: c.kbPosition,
		BlitMode:   c.blitMode,
		BlitXS:     c.blitXS,
		BlitYS:     c.blitYS,
		BlitXD:     c.blitXD,
		BlitYD:     c.blitYD,
		BlitW:      c.blitW,
		BlitH:      c.blitH,
	}
}

// ImportState restores a previously exported state.
func (c *Console) ImportState(s State) {
	c.screen = s.Screen
	c.memoryRow = s.MemoryRow
	c.cursorX = s.CursorX
	c.cursorY = s.CursorY
	c.cursorMode = s.CursorMode
	c.kbBuffer = s.KBBuffer
	c.kbStart = s.KBStart
	c.kbPosition = s.KBPosition
	c.blitMode = s.BlitMode
	c.blitXS = s.BlitXS
	c.blitYS = s.BlitYS
	c.blitXD = s.BlitXD
	c.blitYD = s.BlitYD
	c.blitW = s.BlitW
	c.blitH = s.BlitH
}
