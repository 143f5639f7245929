// Package clock drives the PPU, CPU and APU at their NTSC master-cycle
// divisors, in the order the hardware requires: PPU, then CPU, then APU.
package clock

import "time"

// NTSC master-cycle divisors. The PPU is clocked every master cycle, the
// CPU every third, the APU every sixth (half the CPU rate).
const (
	PPUDivisor = 1
	CPUDivisor = 3
	APUDivisor = 6

	// MasterHz is the NTSC master clock frequency in Hz (21.477272 MHz),
	// used to convert wall-clock durations into master cycles.
	MasterHz = 21477272
)

// Granularity names the unit step(granularity) runs to completion of.
type Granularity int

const (
	GranularityMasterCycle Granularity = iota
	GranularityPPUCycle
	GranularityPPUScanline
	GranularityCPUCycle
	GranularityCPUInstruction
	GranularityFrame
)

// Clocked is implemented by each subsystem the clock drives.
type Clocked interface {
	// ClockCycle advances one unit of this subsystem's own clock.
	ClockCycle()
}

// Instrumented subsystems report progress the clock uses to satisfy
// step(granularity) without the clock knowing their internals.
type PPUClocked interface {
	Clocked
	Scanline() int
	Cycle() int
	FrameCount() uint64
}

type CPUClocked interface {
	Clocked
	// InstructionBoundary reports true immediately after a complete
	// instruction (including interrupt sequences) has retired.
	InstructionBoundary() bool
}

// Clock accumulates wall-clock time and emits master cycles one at a time,
// ticking PPU, CPU and APU in that order on each cycle whose index is a
// multiple of the corresponding divisor.
type Clock struct {
	PPU PPUClocked
	CPU CPUClocked
	APU Clocked

	accumulator time.Duration
	period      time.Duration // duration of one master cycle
	masterCycle uint64

	halted bool
}

// New creates a clock wired to the three subsystems. The wall-clock
// duration of a single master cycle is derived from MasterHz.
func New(ppu PPUClocked, cpu CPUClocked, apu Clocked) *Clock {
	return &Clock{
		PPU:    ppu,
		CPU:    cpu,
		APU:    apu,
		period: time.Second / time.Duration(MasterHz),
	}
}

// Halt stops the clock from issuing further cycles until Resume is called.
// Used when the CPU traps an invalid opcode.
func (c *Clock) Halt()   { c.halted = true }
func (c *Clock) Resume() { c.halted = false }
func (c *Clock) Halted() bool { return c.halted }

// MasterCycle returns the number of master cycles issued since creation.
func (c *Clock) MasterCycle() uint64 { return c.masterCycle }

// clockOne issues a single master cycle: PPU, then CPU, then APU, each
// gated by its divisor.
func (c *Clock) clockOne() {
	if c.masterCycle%PPUDivisor == 0 {
		c.PPU.ClockCycle()
	}
	if c.masterCycle%CPUDivisor == 0 {
		c.CPU.ClockCycle()
	}
	if c.masterCycle%APUDivisor == 0 {
		c.APU.ClockCycle()
	}
	c.masterCycle++
}

// Tick consumes duration of wall-clock time, issuing as many whole master
// cycles as the accumulator allows.
func (c *Clock) Tick(duration time.Duration) {
	if c.halted {
		return
	}
	c.accumulator += duration
	for c.accumulator >= c.period {
		c.accumulator -= c.period
		c.clockOne()
	}
}

// Step runs just enough master cycles to complete one unit of granularity.
func (c *Clock) Step(granularity Granularity) {
	if c.halted {
		return
	}
	switch granularity {
	case GranularityMasterCycle:
		c.clockOne()
	case GranularityPPUCycle:
		startCycle, startScanline, startFrame := c.PPU.Cycle(), c.PPU.Scanline(), c.PPU.FrameCount()
		for c.PPU.Cycle() == startCycle && c.PPU.Scanline() == startScanline && c.PPU.FrameCount() == startFrame {
			c.clockOne()
			if c.halted {
				return
			}
		}
	case GranularityPPUScanline:
		startScanline, startFrame := c.PPU.Scanline(), c.PPU.FrameCount()
		for c.PPU.Scanline() == startScanline && c.PPU.FrameCount() == startFrame {
			c.clockOne()
			if c.halted {
				return
			}
		}
	case GranularityCPUCycle:
		for i := 0; i < CPUDivisor; i++ {
			c.clockOne()
			if c.halted {
				return
			}
		}
	case GranularityCPUInstruction:
		for {
			c.clockOne()
			if c.halted {
				return
			}
			// CPU only advances on cycles divisible by CPUDivisor; check
			// the boundary flag right after such a cycle.
			if (c.masterCycle-1)%CPUDivisor == 0 && c.CPU.InstructionBoundary() {
				return
			}
		}
	case GranularityFrame:
		startFrame := c.PPU.FrameCount()
		for c.PPU.FrameCount() == startFrame {
			c.clockOne()
			if c.halted {
				return
			}
		}
	}
}
