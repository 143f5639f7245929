// Package memory implements the NES CPU and PPU memory maps.
package memory

import (
	"gones/internal/applog"
	"gones/internal/cartridge"
)

// Memory represents the NES CPU memory map.
type Memory struct {
	// Internal RAM (2KB, mirrored to 8KB)
	ram [0x800]uint8

	// PPU registers (mirrored)
	ppuRegisters PPUInterface

	// APU and I/O registers
	apuRegisters APUInterface

	// Input system
	inputSystem InputInterface

	// Cartridge
	cartridge CartridgeInterface

	// DMA callback
	dmaCallback func(uint8)

	// Open bus - last value read from bus (for unmapped areas)
	openBusValue uint8
}

// PPUMemory represents the PPU's own $0000-$3FFF address space: pattern
// tables (routed to the cartridge), nametables (2KiB on-board VRAM plus
// mirroring resolved through the cartridge), and palette RAM.
type PPUMemory struct {
	vram       [0x800]uint8 // 2 KiB on-board nametable VRAM
	extraVRAM  [0x800]uint8 // second 2 KiB, used only by four-screen carts
	paletteRAM [32]uint8
	cartridge  CartridgeInterface
}

// PPUInterface defines the interface for PPU register access.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface defines the interface for APU register access.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface defines the interface for input device access.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is the subset of cartridge.Cartridge the memory maps
// need: CPU-side PRG access, PPU-side CHR access, and the mirroring mode
// that governs nametable mapping.
type CartridgeInterface interface {
	CPURead(address uint16) uint8
	CPUWrite(address uint16, value uint8)
	PPURead(address uint16) uint8
	PPUWrite(address uint16, value uint8) bool
	Mirroring() cartridge.Mirroring
}

// New creates a new Memory instance.
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Memory {
	mem := &Memory{
		ppuRegisters: ppu,
		apuRegisters: apu,
		cartridge:    cart,
	}
	mem.initializePowerUpRAM()
	return mem
}

// SetInputSystem sets the input system for controller access.
func (m *Memory) SetInputSystem(input InputInterface) {
	m.inputSystem = input
}

// SetDMACallback sets the DMA callback function. The bus is responsible
// for sequencing the actual 513/514-cycle OAM DMA stall; Memory merely
// forwards the written page.
func (m *Memory) SetDMACallback(callback func(uint8)) {
	m.dmaCallback = callback
}

// initializePowerUpRAM seeds RAM with a fixed non-zero pattern. Real
// hardware RAM powers up in an indeterminate state; a deterministic
// fill keeps emulator runs reproducible without pretending any particular
// pattern is the one true hardware answer.
func (m *Memory) initializePowerUpRAM() {
	for i := range m.ram {
		if i&0x04 != 0 {
			m.ram[i] = 0xFF
		}
	}
}

// Read reads a byte from the given CPU address.
func (m *Memory) Read(address uint16) uint8 {
	var value uint8

	switch {
	case address < 0x2000:
		value = m.ram[address&0x07FF]

	case address < 0x4000:
		value = m.ppuRegisters.ReadRegister(0x2000 + (address & 0x0007))

	case address < 0x4020:
		switch {
		case address == 0x4015:
			value = m.apuRegisters.ReadStatus()
		case address == 0x4016 || address == 0x4017:
			if m.inputSystem != nil {
				value = m.inputSystem.Read(address)
			}
		default:
			applog.LogOnce("openbus-io", applog.LevelWarn, "open-bus read at unmapped I/O address $%04X", address)
			value = m.openBusValue
		}

	case address >= 0x6000 && address < 0x8000:
		if m.cartridge != nil {
			value = m.cartridge.CPURead(address)
		} else {
			applog.LogOnce("openbus-sram", applog.LevelWarn, "open-bus read at $%04X: no cartridge loaded", address)
			value = m.openBusValue
		}

	case address < 0x8000:
		applog.LogOnce("openbus-expansion", applog.LevelWarn, "open-bus read at unmapped expansion address $%04X", address)
		value = m.openBusValue

	default:
		if m.cartridge != nil {
			value = m.cartridge.CPURead(address)
		} else {
			applog.LogOnce("openbus-prg", applog.LevelWarn, "open-bus read at $%04X: no cartridge loaded", address)
			value = m.openBusValue
		}
	}

	m.openBusValue = value
	return value
}

// Write writes a byte to the given CPU address.
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppuRegisters.WriteRegister(0x2000+(address&0x0007), value)

	case address < 0x4020:
		switch {
		case address == 0x4014:
			if m.dmaCallback != nil {
				m.dmaCallback(value)
			}
		case address == 0x4016:
			if m.inputSystem != nil {
				m.inputSystem.Write(address, value)
			}
		case address >= 0x4000 && address <= 0x4013:
			m.apuRegisters.WriteRegister(address, value)
		case address == 0x4015:
			m.apuRegisters.WriteRegister(address, value)
		case address == 0x4017:
			m.apuRegisters.WriteRegister(address, value)
		}
		// Test mode registers ($4018-$401F) are ignored.

	case address >= 0x6000 && address < 0x8000:
		if m.cartridge != nil {
			m.cartridge.CPUWrite(address, value)
		}

	case address < 0x8000:
		// Cartridge expansion area ($4020-$5FFF) - unmapped, ignore writes.

	default:
		if m.cartridge != nil {
			m.cartridge.CPUWrite(address, value)
		}
	}
}

// WriteOAMByte writes a single byte into PPU OAM, exposed for the bus's
// OAM DMA sequencing.
func (m *Memory) WriteOAMByte(value uint8) {
	m.ppuRegisters.WriteRegister(0x2004, value)
}

// NewPPUMemory creates a new PPU memory instance.
func NewPPUMemory(cart CartridgeInterface) *PPUMemory {
	mem := &PPUMemory{cartridge: cart}
	for i := 0; i < 32; i += 4 {
		mem.paletteRAM[i] = 0x0F
	}
	return mem
}

// Read reads from PPU memory space ($0000-$3FFF).
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return pm.cartridge.PPURead(address)
	case address < 0x3000:
		return pm.readNametable(address)
	case address < 0x3F00:
		return pm.readNametable(address - 0x1000)
	default:
		return pm.readPalette(address)
	}
}

// Write writes to PPU memory space ($0000-$3FFF).
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		pm.cartridge.PPUWrite(address, value)
	case address < 0x3000:
		pm.writeNametable(address, value)
	case address < 0x3F00:
		pm.writeNametable(address-0x1000, value)
	default:
		pm.writePalette(address, value)
	}
}

// nametableBank resolves which physical 1 KiB VRAM bank an address maps
// to, via the cartridge's mirroring mode.
func (pm *PPUMemory) nametableBank(address uint16) []uint8 {
	bank := cartridge.ResolveNametableBank(pm.cartridge.Mirroring(), address)
	if bank == 1 {
		return pm.extraVRAM[:]
	}
	return pm.vram[:]
}

func (pm *PPUMemory) readNametable(address uint16) uint8 {
	return pm.nametableBank(address)[address&0x03FF]
}

func (pm *PPUMemory) writeNametable(address uint16, value uint8) {
	pm.nametableBank(address)[address&0x03FF] = value
}

// readPalette reads from palette RAM, aliasing the sprite-backdrop
// addresses onto the background-backdrop entries per hardware behavior.
func (pm *PPUMemory) readPalette(address uint16) uint8 {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	return pm.paletteRAM[index]
}

func (pm *PPUMemory) writePalette(address uint16, value uint8) {
	index := (address - 0x3F00) & 0x1F
	if index&0x13 == 0x10 {
		index &= 0x0F
	}
	pm.paletteRAM[index] = value
}
