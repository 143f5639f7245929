// Package input implements the NES controller port protocol: a
// polled-latch Device interface, a standard joypad, and a Zapper light
// gun, plus the two-port InputState the bus talks to.
package input

// Button represents NES controller buttons.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Convenience aliases used by host-side key binding code.
const (
	A      = ButtonA
	B      = ButtonB
	Select = ButtonSelect
	Start  = ButtonStart
	Up     = ButtonUp
	Down   = ButtonDown
	Left   = ButtonLeft
	Right  = ButtonRight
)

// Device is the generic NES controller-port protocol: a strobe write
// latches whatever the device reports at that instant, and each
// subsequent read shifts one bit out. Standard controllers, the Zapper,
// and any other accessory plugged into $4016/$4017 all implement this.
type Device interface {
	Write(strobe bool)
	Read() uint8
}

// Controller is a standard NES joypad. PollButtons, when set, is called
// on the strobe rising edge so a host can supply live key state without
// the emulator core depending on any windowing/input library.
type Controller struct {
	buttons     uint8
	shiftReg    uint8
	strobe      bool
	bitPosition uint8

	PollButtons func() uint8
}

// New creates a new Controller instance.
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a single button.
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons sets all eight button states at once, in NES bit order:
// A, B, Select, Start, Up, Down, Left, Right.
func (c *Controller) SetButtons(buttons [8]bool) {
	c.buttons = 0
	order := [8]Button{ButtonA, ButtonB, ButtonSelect, ButtonStart, ButtonUp, ButtonDown, ButtonLeft, ButtonRight}
	for i, pressed := range buttons {
		if pressed {
			c.buttons |= uint8(order[i])
		}
	}
}

// IsPressed returns true if the button is currently pressed.
func (c *Controller) IsPressed(button Button) bool {
	return (c.buttons & uint8(button)) != 0
}

// currentButtons returns the live button mask, preferring a host-supplied
// poll function over the locally tracked state so a host can drive input
// on its own schedule.
func (c *Controller) currentButtons() uint8 {
	if c.PollButtons != nil {
		return c.PollButtons()
	}
	return c.buttons
}

// Write latches the button state on the strobe rising edge, and keeps
// re-latching every write while strobe stays high (matching real
// hardware, which continuously reloads bit 0 while strobe is 1).
func (c *Controller) Write(strobe bool) {
	c.strobe = strobe
	if strobe {
		c.shiftReg = c.currentButtons()
		c.bitPosition = 0
	}
}

// Read shifts the next button bit out of the controller's shift register.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.currentButtons() & 1
	}
	var bit uint8
	if c.bitPosition < 8 {
		bit = c.shiftReg & 1
		c.shiftReg >>= 1
	} else {
		bit = 1 // open bus on real hardware settles high past 8 reads
	}
	c.bitPosition++
	return bit
}

// Reset resets the controller state.
func (c *Controller) Reset() {
	c.buttons = 0
	c.shiftReg = 0
	c.strobe = false
	c.bitPosition = 0
}

// Zapper is the NES light gun accessory. It reports a sense bit derived
// from the brightness of the pixel under the gun at the moment of the
// PPU's last-rendered frame, and a trigger bit, both supplied by the host
// via PollLight/PollTrigger.
type Zapper struct {
	strobe bool

	// PollLight returns true when the gun is aimed at a bright (white or
	// near-white) pixel of the most recently completed frame.
	PollLight func() bool
	// PollTrigger returns true while the trigger is held.
	PollTrigger func() bool
}

// NewZapper creates a new Zapper instance.
func NewZapper() *Zapper {
	return &Zapper{}
}

// Write latches the strobe line; the Zapper has no shift register, so
// every read simply samples the host callbacks live.
func (z *Zapper) Write(strobe bool) {
	z.strobe = strobe
}

// Read returns the Zapper's status byte: bit 4 clear (0) when the gun
// senses light, bit 3 set while the trigger is held.
func (z *Zapper) Read() uint8 {
	var result uint8 = 0x10
	if z.PollLight != nil && z.PollLight() {
		result = 0x00
	}
	if z.PollTrigger != nil && z.PollTrigger() {
		result |= 0x08
	}
	return result
}

// InputState represents the state of both controller ports.
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller

	// Port2 overrides Controller2 when set, allowing a Zapper or other
	// accessory to occupy the second port instead of a joypad.
	Port2 Device
}

// NewInputState creates a new input state with two standard controllers.
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// Reset resets all input devices.
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// SetButtons1 sets all button states for controller 1.
func (is *InputState) SetButtons1(buttons [8]bool) {
	is.Controller1.SetButtons(buttons)
}

// SetButtons2 sets all button states for controller 2.
func (is *InputState) SetButtons2(buttons [8]bool) {
	is.Controller2.SetButtons(buttons)
}

func (is *InputState) port2() Device {
	if is.Port2 != nil {
		return is.Port2
	}
	return is.Controller2
}

// Read reads from a controller port ($4016/$4017).
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read() | 0x40
	case 0x4017:
		return is.port2().Read() | 0x40
	default:
		return 0
	}
}

// Write writes to the controller strobe register ($4016); both ports
// share the single strobe line.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		strobe := value&1 != 0
		is.Controller1.Write(strobe)
		is.port2().Write(strobe)
	}
}
