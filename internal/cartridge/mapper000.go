package cartridge

// mapper000 implements NROM: 16 or 32 KiB fixed PRG (16 KiB mirrors across
// both $8000 and $C000 windows), 8 KiB fixed CHR-ROM or CHR-RAM, no
// writable registers.
type mapper000 struct {
	cart     *Cartridge
	prgBanks int
}

func newMapper000(cart *Cartridge) *mapper000 {
	return &mapper000{cart: cart, prgBanks: len(cart.Rom.PRGROM) / 0x4000}
}

func (m *mapper000) prgOffset(addr uint16) int {
	offset := int(addr - 0x8000)
	if m.prgBanks <= 1 {
		offset &= 0x3FFF
	}
	return offset
}

func (m *mapper000) CPUPeek(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		off := m.prgOffset(addr)
		if off < len(m.cart.Rom.PRGROM) {
			return m.cart.Rom.PRGROM[off]
		}
		return 0
	case addr >= 0x6000:
		return m.cart.sram[addr-0x6000]
	default:
		return 0
	}
}

func (m *mapper000) CPURead(addr uint16) uint8 { return m.CPUPeek(addr) }

func (m *mapper000) CPUWrite(addr uint16, value uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.sram[addr-0x6000] = value
	}
}

func (m *mapper000) chrByte(addr uint16) uint8 {
	if len(m.cart.Rom.CHRROM) > 0 {
		return m.cart.Rom.CHRROM[addr]
	}
	return m.cart.chrRAM[addr]
}

func (m *mapper000) PPUPeek(addr uint16) uint8 { return m.chrByte(addr & 0x1FFF) }
func (m *mapper000) PPURead(addr uint16) uint8 { return m.chrByte(addr & 0x1FFF) }

func (m *mapper000) PPUWrite(addr uint16, value uint8) bool {
	if len(m.cart.Rom.CHRROM) == 0 {
		m.cart.chrRAM[addr&0x1FFF] = value
		return true
	}
	return false
}

func (m *mapper000) IRQ() bool          { return false }
func (m *mapper000) Reset()             {}
func (m *mapper000) Mirroring() Mirroring { return m.cart.Rom.Mirroring }
func (m *mapper000) M2Signal(rising bool) {}

func (m *mapper000) ReportCPUMapping() []BankWindow {
	return []BankWindow{{Base: 0x8000, Size: 0x8000, Bank: 0, Source: "PRG-ROM"}}
}

func (m *mapper000) ReportPPUMapping() []BankWindow {
	src := "CHR-ROM"
	if len(m.cart.Rom.CHRROM) == 0 {
		src = "CHR-RAM"
	}
	return []BankWindow{{Base: 0x0000, Size: 0x2000, Bank: 0, Source: src}}
}
