package console

const (
	JOYPAD1 = 0x4016
	JOYPAD2 = 0x4017
)

// Buttons, as bits:
// 0 - A
// 1 - B
// 2 - Select
// 3 - Start
// 4 - Up
// 5 - Down
// 6 - Left
// 7 - Right
const (
	BUTTON_A = 1 << iota
	BUTTON_B
	BUTTON_SELECT
	BUTTON_START
	BUTTON_UP
	BUTTON_DOWN
	BUTTON_LEFT
	BUTTON_RIGHT
)

// ButtonSource reports which buttons are held, as a mask of BUTTON_*.
type ButtonSource func() uint8

// controller is a standard joypad's shift register.
// https://www.nesdev.org/wiki/Standard_controller
type controller struct {
	strobe  bool
	buttons uint8
	idx     uint8
	poll    ButtonSource
}

func (c *controller) write(val uint8) {
	c.strobe = val&0x01 == 1
	if c.strobe {
		c.latch()
	}
}

// latch captures the button state and rewinds the shift register.
func (c *controller) latch() {
	c.buttons = 0
	if c.poll != nil {
		c.buttons = c.poll()
	}
	c.idx = 0
}

func (c *controller) peek() uint8 {
	if c.idx > 7 {
		// Official pads return 1 once all 8 buttons are shifted out
		return 1
	}
	return (c.buttons >> c.idx) & 0x01
}

func (c *controller) read() uint8 {
	if c.strobe {
		// While strobe is high the pad keeps reloading, so only A
		// is ever visible
		c.latch()
		return c.buttons & 0x01
	}

	ret := c.peek()
	if c.idx <= 7 {
		c.idx++
	}
	return ret
}

// Joypads is the $4000-$401F device with two standard controllers.
// The APU registers in the same window aren't emulated and read as
// open bus.
type Joypads struct {
	pads [2]controller
}

// NewJoypads returns the pair of controllers fed from p1 and p2,
// either of which may be nil for an unplugged pad.
func NewJoypads(p1, p2 ButtonSource) *Joypads {
	j := &Joypads{}
	j.pads[0].poll = p1
	j.pads[1].poll = p2
	return j
}

// Data lines other than D0 float, and real hardware typically returns
// the high byte of the address there ($40).
const joypadOpenBus = 0x40

func (j *Joypads) ReadReg(addr uint16) uint8 {
	switch addr {
	case JOYPAD1:
		return joypadOpenBus | j.pads[0].read()
	case JOYPAD2:
		return joypadOpenBus | j.pads[1].read()
	}
	return OPEN_BUS
}

func (j *Joypads) PeekReg(addr uint16) uint8 {
	switch addr {
	case JOYPAD1:
		return joypadOpenBus | j.pads[0].peek()
	case JOYPAD2:
		return joypadOpenBus | j.pads[1].peek()
	}
	return OPEN_BUS
}

// WriteReg handles the strobe at $4016, which both pads share.
// $4017 is the APU frame counter on write.
func (j *Joypads) WriteReg(addr uint16, val uint8) {
	if addr == JOYPAD1 {
		j.pads[0].write(val)
		j.pads[1].write(val)
	}
}
