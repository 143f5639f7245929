package cartridge

// mapper007 implements AxROM: a 4-bit register selects a 32 KiB PRG bank
// at $8000; bit 4 of the same register switches between one-screen-lower
// and one-screen-upper mirroring.
type mapper007 struct {
	cart     *Cartridge
	bank     uint8
	mirror   Mirroring
	banks32k int
}

func newMapper007(cart *Cartridge) *mapper007 {
	return &mapper007{cart: cart, banks32k: len(cart.Rom.PRGROM) / 0x8000}
}

func (m *mapper007) CPUPeek(addr uint16) uint8 {
	if addr < 0x8000 {
		if addr >= 0x6000 {
			return m.cart.sram[addr-0x6000]
		}
		return 0
	}
	bank := int(m.bank) % max(m.banks32k, 1)
	return m.cart.Rom.PRGROM[bank*0x8000+int(addr-0x8000)]
}

func (m *mapper007) CPURead(addr uint16) uint8 { return m.CPUPeek(addr) }

func (m *mapper007) CPUWrite(addr uint16, value uint8) {
	if addr >= 0x8000 {
		m.bank = value & 0x0F
		if value&0x10 != 0 {
			m.mirror = MirrorSingleScreen1
		} else {
			m.mirror = MirrorSingleScreen0
		}
	} else if addr >= 0x6000 {
		m.cart.sram[addr-0x6000] = value
	}
}

func (m *mapper007) chrByte(addr uint16) uint8 {
	if len(m.cart.Rom.CHRROM) > 0 {
		return m.cart.Rom.CHRROM[addr&0x1FFF]
	}
	return m.cart.chrRAM[addr&0x1FFF]
}

func (m *mapper007) PPUPeek(addr uint16) uint8 { return m.chrByte(addr) }
func (m *mapper007) PPURead(addr uint16) uint8 { return m.chrByte(addr) }

func (m *mapper007) PPUWrite(addr uint16, value uint8) bool {
	if len(m.cart.Rom.CHRROM) == 0 {
		m.cart.chrRAM[addr&0x1FFF] = value
		return true
	}
	return false
}

func (m *mapper007) IRQ() bool            { return false }
func (m *mapper007) Reset()               { m.bank = 0; m.mirror = MirrorSingleScreen0 }
func (m *mapper007) Mirroring() Mirroring { return m.mirror }
func (m *mapper007) M2Signal(rising bool) {}

func (m *mapper007) ReportCPUMapping() []BankWindow {
	return []BankWindow{{Base: 0x8000, Size: 0x8000, Bank: int(m.bank), Source: "PRG-ROM"}}
}

func (m *mapper007) ReportPPUMapping() []BankWindow {
	src := "CHR-ROM"
	if len(m.cart.Rom.CHRROM) == 0 {
		src = "CHR-RAM"
	}
	return []BankWindow{{Base: 0x0000, Size: 0x2000, Bank: 0, Source: src}}
}
