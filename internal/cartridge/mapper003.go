package cartridge

// mapper003 implements CNROM: fixed PRG like NROM, with a single 8-bit
// register selecting an 8 KiB CHR bank. Bus conflicts are emulated.
type mapper003 struct {
	cart     *Cartridge
	chrBank  uint8
	prgBanks int
}

func newMapper003(cart *Cartridge) *mapper003 {
	return &mapper003{cart: cart, prgBanks: len(cart.Rom.PRGROM) / 0x4000}
}

func (m *mapper003) prgOffset(addr uint16) int {
	off := int(addr - 0x8000)
	if m.prgBanks <= 1 {
		off &= 0x3FFF
	}
	return off
}

func (m *mapper003) CPUPeek(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		return m.cart.Rom.PRGROM[m.prgOffset(addr)]
	case addr >= 0x6000:
		return m.cart.sram[addr-0x6000]
	default:
		return 0
	}
}

func (m *mapper003) CPURead(addr uint16) uint8 { return m.CPUPeek(addr) }

func (m *mapper003) CPUWrite(addr uint16, value uint8) {
	switch {
	case addr >= 0x8000:
		value &= m.cart.Rom.PRGROM[m.prgOffset(addr)]
		m.chrBank = value & 0x03
	case addr >= 0x6000:
		m.cart.sram[addr-0x6000] = value
	}
}

func (m *mapper003) chrOffset(addr uint16) int { return int(m.chrBank)*0x2000 + int(addr)&0x1FFF }

func (m *mapper003) PPUPeek(addr uint16) uint8 {
	if len(m.cart.Rom.CHRROM) > 0 {
		return m.cart.Rom.CHRROM[m.chrOffset(addr)]
	}
	return m.cart.chrRAM[addr&0x1FFF]
}
func (m *mapper003) PPURead(addr uint16) uint8 { return m.PPUPeek(addr) }

func (m *mapper003) PPUWrite(addr uint16, value uint8) bool {
	if len(m.cart.Rom.CHRROM) == 0 {
		m.cart.chrRAM[addr&0x1FFF] = value
		return true
	}
	return false
}

func (m *mapper003) IRQ() bool            { return false }
func (m *mapper003) Reset()               { m.chrBank = 0 }
func (m *mapper003) Mirroring() Mirroring { return m.cart.Rom.Mirroring }
func (m *mapper003) M2Signal(rising bool) {}

func (m *mapper003) ReportCPUMapping() []BankWindow {
	return []BankWindow{{Base: 0x8000, Size: 0x8000, Bank: 0, Source: "PRG-ROM"}}
}

func (m *mapper003) ReportPPUMapping() []BankWindow {
	src := "CHR-ROM"
	if len(m.cart.Rom.CHRROM) == 0 {
		src = "CHR-RAM"
	}
	return []BankWindow{{Base: 0x0000, Size: 0x2000, Bank: int(m.chrBank), Source: src}}
}
