package cartridge

// mapper001 implements MMC1: a serial shift register loaded by 5
// consecutive writes to $8000-$FFFF.
type mapper001 struct {
	cart *Cartridge

	shift      uint8
	shiftCount uint8

	control uint8 // mirroring(2) | prgMode(2) | chrMode(1)
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	chrBankMask uint8
	prgBanks16k int
}

func newMapper001(cart *Cartridge) *mapper001 {
	m := &mapper001{cart: cart}
	chrSize := len(cart.Rom.CHRROM)
	if chrSize == 0 {
		chrSize = len(cart.chrRAM)
	}
	m.chrBankMask = uint8(chrSize>>12) - 1
	m.prgBanks16k = len(cart.Rom.PRGROM) / 0x4000
	m.Reset()
	return m
}

func (m *mapper001) Reset() {
	m.shift = 0
	m.shiftCount = 0
	m.control |= 0x0C
	m.chrBank0 = 0
	m.chrBank1 = 0
	m.prgBank = 0
}

func (m *mapper001) prgRAMBank() int {
	switch {
	case len(m.cart.sram) >= 0x8000:
		return int(m.chrBank0>>2) & 3
	case len(m.cart.sram) >= 0x4000:
		return int(m.chrBank0>>3) & 1
	default:
		return 0
	}
}

func (m *mapper001) prgROMOffset(addr uint16) int {
	bankMode := (m.control >> 2) & 3
	bank := int(m.prgBank & 0x0F)
	if len(m.cart.Rom.PRGROM) == 0x80000 {
		bank |= int(m.chrBank0 & 0x10)
	}
	switch bankMode {
	case 0, 1:
		bank >>= 1
		return bank*0x8000 + int(addr-0x8000)&0x7FFF
	case 2:
		if addr < 0xC000 {
			bank = 0
		}
		return bank*0x4000 + int(addr)&0x3FFF
	default: // 3
		if addr >= 0xC000 {
			bank = m.prgBanks16k - 1
		}
		return bank*0x4000 + int(addr)&0x3FFF
	}
}

func (m *mapper001) chrOffset(addr uint16) int {
	if (m.control>>4)&1 == 0 {
		bank := int((m.chrBank0 & m.chrBankMask) >> 1)
		return bank*0x2000 + int(addr)&0x1FFF
	}
	bank := m.chrBank0
	if addr >= 0x1000 {
		bank = m.chrBank1
	}
	bank &= m.chrBankMask
	return int(bank)*0x1000 + int(addr)&0x0FFF
}

func (m *mapper001) CPUPeek(addr uint16) uint8 {
	switch {
	case addr < 0x6000:
		return 0
	case addr < 0x8000:
		if len(m.cart.sram) == 0 {
			return 0
		}
		bank := m.prgRAMBank()
		return m.cart.sram[bank*0x2000+int(addr-0x6000)&0x1FFF]
	default:
		off := m.prgROMOffset(addr)
		if off >= 0 && off < len(m.cart.Rom.PRGROM) {
			return m.cart.Rom.PRGROM[off]
		}
		return 0
	}
}

func (m *mapper001) CPURead(addr uint16) uint8 { return m.CPUPeek(addr) }

func (m *mapper001) CPUWrite(addr uint16, value uint8) {
	if addr < 0x6000 {
		return
	}
	if addr < 0x8000 {
		if len(m.cart.sram) > 0 {
			bank := m.prgRAMBank()
			m.cart.sram[bank*0x2000+int(addr-0x6000)&0x1FFF] = value
		}
		return
	}

	if value&0x80 != 0 {
		m.shift = 0
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift |= (value & 1) << m.shiftCount
	m.shiftCount++
	if m.shiftCount != 5 {
		return
	}
	loaded := m.shift
	m.shift = 0
	m.shiftCount = 0

	switch addr & 0xE000 {
	case 0x8000:
		m.control = loaded
	case 0xA000:
		m.chrBank0 = loaded
	case 0xC000:
		m.chrBank1 = loaded
	case 0xE000:
		m.prgBank = loaded
	}
}

func (m *mapper001) PPUPeek(addr uint16) uint8 {
	off := m.chrOffset(addr)
	if len(m.cart.Rom.CHRROM) > 0 {
		return m.cart.Rom.CHRROM[off]
	}
	return m.cart.chrRAM[off]
}

func (m *mapper001) PPURead(addr uint16) uint8 { return m.PPUPeek(addr) }

func (m *mapper001) PPUWrite(addr uint16, value uint8) bool {
	if len(m.cart.Rom.CHRROM) != 0 {
		return false
	}
	m.cart.chrRAM[m.chrOffset(addr)] = value
	return true
}

func (m *mapper001) IRQ() bool { return false }

func (m *mapper001) Mirroring() Mirroring {
	switch m.control & 3 {
	case 0:
		return MirrorSingleScreen0
	case 1:
		return MirrorSingleScreen1
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

func (m *mapper001) M2Signal(rising bool) {}

func (m *mapper001) ReportCPUMapping() []BankWindow {
	return []BankWindow{
		{Base: 0x6000, Size: 0x2000, Bank: m.prgRAMBank(), Source: "PRG-RAM"},
		{Base: 0x8000, Size: 0x4000, Bank: m.prgROMOffset(0x8000) / 0x4000, Source: "PRG-ROM"},
		{Base: 0xC000, Size: 0x4000, Bank: m.prgROMOffset(0xC000) / 0x4000, Source: "PRG-ROM"},
	}
}

func (m *mapper001) ReportPPUMapping() []BankWindow {
	src := "CHR-ROM"
	if len(m.cart.Rom.CHRROM) == 0 {
		src = "CHR-RAM"
	}
	return []BankWindow{{Base: 0x0000, Size: 0x2000, Bank: int(m.chrBank0), Source: src}}
}
