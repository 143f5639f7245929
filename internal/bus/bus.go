// Package bus implements the system bus connecting the CPU, PPU, APU,
// cartridge and input devices, and drives them via internal/clock.
package bus

import (
	"fmt"

	"gones/internal/apu"
	"gones/internal/applog"
	"gones/internal/clock"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/memory"
	"gones/internal/ppu"
)

// Bus connects all NES components together and owns the master clock.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState
	Clock  *clock.Clock

	nmiPending bool

	dmaInProgress    bool
	dmaSuspendCycles int
	dmaPage          uint8
	dmaOffset        int
	dmaReadPending   bool
	dmaReadByte      uint8
	cpuCycleParity   bool
}

// New creates a new system bus with all components, without a cartridge
// loaded. Call LoadCartridge before running it.
func New() *Bus {
	bus := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}

	bus.Memory = memory.New(bus.PPU, bus.APU, nil)
	bus.Memory.SetInputSystem(bus.Input)
	bus.CPU = cpu.New(bus.Memory)

	bus.wireCallbacks()
	bus.Clock = clock.New(bus.PPU, bus.CPU, bus.APU)

	bus.Reset()
	return bus
}

func (b *Bus) wireCallbacks() {
	bus := b
	bus.PPU.SetNMICallback(bus.triggerNMI)
	bus.Memory.SetDMACallback(bus.TriggerOAMDMA)
	bus.CPU.SetInvalidOpcodeHandler(func(pc uint16, opcode uint8) {
		applog.Error(fmt.Errorf("invalid CPU opcode $%02X at $%04X", opcode, pc))
		if bus.Clock != nil {
			bus.Clock.Halt()
		}
	})
}

// Reset resets all components to their initial state.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()

	b.nmiPending = false
	b.dmaInProgress = false
	b.dmaSuspendCycles = 0
	b.cpuCycleParity = false

	if b.Clock != nil {
		b.Clock.Resume()
	}
}

// triggerNMI is called by the PPU when VBlank starts with NMI enabled.
func (b *Bus) triggerNMI() {
	b.nmiPending = true
}

// LoadCartridge loads a cartridge into the system, rebuilding the memory
// maps and resetting the CPU from the reset vector.
func (b *Bus) LoadCartridge(cart memory.CartridgeInterface) {
	b.Memory = memory.New(b.PPU, b.APU, cart)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b.Memory)

	ppuMemory := memory.NewPPUMemory(cart)
	b.PPU.SetMemory(ppuMemory)

	b.wireCallbacks()
	b.Clock = clock.New(b.PPU, b.CPU, b.APU)

	b.CPU.Reset()
}

// stepCPUCycle advances the system by exactly one CPU cycle's worth of
// master cycles (3), handling OAM DMA stalls and pending NMI delivery at
// the CPU-cycle boundary where real hardware observes them.
func (b *Bus) stepCPUCycle() {
	if b.dmaSuspendCycles > 0 {
		b.serviceOAMDMACycle()
		// The CPU is stalled during DMA: advance the PPU (3x) and APU
		// (every other CPU cycle) without letting CPU.ClockCycle fire,
		// since the atomic-instruction CPU core has no notion of being
		// suspended mid-instruction.
		for i := 0; i < clock.CPUDivisor; i++ {
			b.PPU.ClockCycle()
		}
		b.cpuCycleParity = !b.cpuCycleParity
		if b.cpuCycleParity {
			b.APU.ClockCycle()
		}
		return
	}

	if b.nmiPending {
		b.CPU.TriggerNMI()
		b.nmiPending = false
	}

	b.cpuCycleParity = !b.cpuCycleParity
	b.Clock.Step(clock.GranularityCPUCycle)
}

// serviceOAMDMACycle performs one cycle of the 513/514-cycle OAM DMA
// sequence: an idle cycle (plus one more if starting on an odd CPU
// cycle), then alternating read/write cycles copying 256 bytes from
// sourcePage<<8 into OAM.
func (b *Bus) serviceOAMDMACycle() {
	b.dmaSuspendCycles--
	if b.dmaSuspendCycles == 0 {
		b.dmaInProgress = false
	}
	// The leading wait (and alignment) cycles precede the final 512
	// read/write cycles.
	if b.dmaSuspendCycles >= 512 || b.dmaOffset >= 256 {
		return
	}
	if !b.dmaReadPending {
		b.dmaReadByte = b.Memory.Read(uint16(b.dmaPage)<<8 + uint16(b.dmaOffset))
		b.dmaReadPending = true
	} else {
		b.Memory.WriteOAMByte(b.dmaReadByte)
		b.dmaReadPending = false
		b.dmaOffset++
	}
}

// TriggerOAMDMA initiates an OAM DMA transfer from CPU page sourcePage
// into PPU OAM. Takes 513 cycles, or 514 if started on an odd CPU cycle.
func (b *Bus) TriggerOAMDMA(sourcePage uint8) {
	if b.dmaInProgress {
		return
	}
	b.dmaInProgress = true
	b.dmaPage = sourcePage
	b.dmaOffset = 0
	b.dmaReadPending = false

	dmaCycles := 513
	if b.cpuCycleParity {
		dmaCycles = 514
	}
	b.dmaSuspendCycles = dmaCycles
}

// Step executes exactly one CPU cycle's worth of system time (one CPU
// instruction on the first cycle it takes, idle ticks thereafter until
// the instruction's remaining cycles are paid out).
func (b *Bus) Step() {
	b.stepCPUCycle()
}

// Run runs the emulator for a specified number of frames.
func (b *Bus) Run(frames int) {
	for i := 0; i < frames; i++ {
		b.Clock.Step(clock.GranularityFrame)
	}
}

// RunCycles runs the emulator for a specified number of CPU cycles.
func (b *Bus) RunCycles(cycles uint64) {
	for i := uint64(0); i < cycles; i++ {
		b.stepCPUCycle()
	}
}

// Frame executes one complete frame.
func (b *Bus) Frame() {
	b.Clock.Step(clock.GranularityFrame)
}

// SetDrawCallback wires the PPU's per-pixel draw callback. The host owns
// the color table and frame buffer; the core only reports palette indices.
func (b *Bus) SetDrawCallback(callback func(x, y int, colorIndex uint8, emphasis ppu.Emphasis)) {
	b.PPU.SetDrawCallback(callback)
}

// SetFrameReadyCallback wires the PPU's once-per-frame completion callback.
func (b *Bus) SetFrameReadyCallback(callback func()) {
	b.PPU.SetFrameCompleteCallback(callback)
}

// GetAudioSamples returns the current audio samples from the APU.
func (b *Bus) GetAudioSamples() []float32 {
	return b.APU.GetSamples()
}

// SetAudioSampleRate sets the target audio sample rate for the APU.
func (b *Bus) SetAudioSampleRate(rate int) {
	b.APU.SetSampleRate(rate)
}

// GetCycleCount returns the current CPU cycle count.
func (b *Bus) GetCycleCount() uint64 {
	return b.CPU.Cycles()
}

// GetFrameCount returns the current frame count.
func (b *Bus) GetFrameCount() uint64 {
	return b.PPU.GetFrameCount()
}

// IsDMAInProgress returns whether DMA is currently in progress.
func (b *Bus) IsDMAInProgress() bool {
	return b.dmaInProgress
}

// SetControllerButton sets the state of a single controller button.
func (b *Bus) SetControllerButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 0, 1:
		b.Input.Controller1.SetButton(button, pressed)
	case 2:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// SetControllerButtons sets all button states for a controller at once.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	switch controller {
	case 0, 1:
		b.Input.SetButtons1(buttons)
	case 2:
		b.Input.SetButtons2(buttons)
	}
}

// GetInputState returns the input state for direct access.
func (b *Bus) GetInputState() *input.InputState {
	return b.Input
}

// GetCPUState returns the current CPU state for testing.
func (b *Bus) GetCPUState() CPUState {
	return CPUState{
		PC:     b.CPU.PC,
		A:      b.CPU.A,
		X:      b.CPU.X,
		Y:      b.CPU.Y,
		SP:     b.CPU.SP,
		Cycles: b.CPU.Cycles(),
		Flags: CPUFlags{
			N: b.CPU.N,
			V: b.CPU.V,
			B: b.CPU.B,
			D: b.CPU.D,
			I: b.CPU.I,
			Z: b.CPU.Z,
			C: b.CPU.C,
		},
	}
}

// CPUState represents a CPU state snapshot for testing.
type CPUState struct {
	PC      uint16
	A, X, Y uint8
	SP      uint8
	Cycles  uint64
	Flags   CPUFlags
}

// CPUFlags represents CPU status flags for testing.
type CPUFlags struct {
	N, V, B, D, I, Z, C bool
}

// GetPPUState returns the current PPU state for testing.
func (b *Bus) GetPPUState() PPUState {
	return PPUState{
		Scanline:    b.PPU.GetScanline(),
		Cycle:       b.PPU.GetCycle(),
		FrameCount:  b.PPU.GetFrameCount(),
		VBlankFlag:  b.PPU.IsVBlank(),
		RenderingOn: b.PPU.IsRenderingEnabled(),
		NMIEnabled:  b.PPU.NMIEnabled(),
	}
}

// PPUState represents a PPU state snapshot for testing.
type PPUState struct {
	Scanline    int
	Cycle       int
	FrameCount  uint64
	VBlankFlag  bool
	RenderingOn bool
	NMIEnabled  bool
}
