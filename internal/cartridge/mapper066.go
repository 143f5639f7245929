package cartridge

// mapper066 implements GxROM: a single register whose high nibble selects
// a 32 KiB PRG bank and whose low nibble selects an 8 KiB CHR bank.
type mapper066 struct {
	cart     *Cartridge
	prgBank  uint8
	chrBank  uint8
	banks32k int
}

func newMapper066(cart *Cartridge) *mapper066 {
	return &mapper066{cart: cart, banks32k: len(cart.Rom.PRGROM) / 0x8000}
}

func (m *mapper066) CPUPeek(addr uint16) uint8 {
	if addr < 0x8000 {
		if addr >= 0x6000 {
			return m.cart.sram[addr-0x6000]
		}
		return 0
	}
	bank := int(m.prgBank)
	if m.banks32k > 0 {
		bank %= m.banks32k
	}
	return m.cart.Rom.PRGROM[bank*0x8000+int(addr-0x8000)]
}

func (m *mapper066) CPURead(addr uint16) uint8 { return m.CPUPeek(addr) }

func (m *mapper066) CPUWrite(addr uint16, value uint8) {
	if addr >= 0x8000 {
		value &= m.CPUPeek(addr)
		m.prgBank = (value >> 4) & 0x03
		m.chrBank = value & 0x03
	} else if addr >= 0x6000 {
		m.cart.sram[addr-0x6000] = value
	}
}

func (m *mapper066) chrOffset(addr uint16) int { return int(m.chrBank)*0x2000 + int(addr)&0x1FFF }

func (m *mapper066) PPUPeek(addr uint16) uint8 {
	if len(m.cart.Rom.CHRROM) > 0 {
		return m.cart.Rom.CHRROM[m.chrOffset(addr)]
	}
	return m.cart.chrRAM[addr&0x1FFF]
}
func (m *mapper066) PPURead(addr uint16) uint8 { return m.PPUPeek(addr) }

func (m *mapper066) PPUWrite(addr uint16, value uint8) bool {
	if len(m.cart.Rom.CHRROM) == 0 {
		m.cart.chrRAM[addr&0x1FFF] = value
		return true
	}
	return false
}

func (m *mapper066) IRQ() bool             { return false }
func (m *mapper066) Reset()                { m.prgBank, m.chrBank = 0, 0 }
func (m *mapper066) Mirroring() Mirroring  { return m.cart.Rom.Mirroring }
func (m *mapper066) M2Signal(rising bool)  {}

func (m *mapper066) ReportCPUMapping() []BankWindow {
	return []BankWindow{{Base: 0x8000, Size: 0x8000, Bank: int(m.prgBank), Source: "PRG-ROM"}}
}

func (m *mapper066) ReportPPUMapping() []BankWindow {
	src := "CHR-ROM"
	if len(m.cart.Rom.CHRROM) == 0 {
		src = "CHR-RAM"
	}
	return []BankWindow{{Base: 0x0000, Size: 0x2000, Bank: int(m.chrBank), Source: src}}
}
