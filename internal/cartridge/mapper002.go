package cartridge

// mapper002 implements UxROM: one 8-bit register selects a 16 KiB bank at
// $8000; the last bank is permanently mapped at $C000. Bus conflicts (the
// written value is AND-ed with the ROM byte already sitting at that
// address) are emulated, matching common UxROM boards.
type mapper002 struct {
	cart    *Cartridge
	bank    uint8
	banks16 int
}

func newMapper002(cart *Cartridge) *mapper002 {
	return &mapper002{cart: cart, banks16: len(cart.Rom.PRGROM) / 0x4000}
}

func (m *mapper002) romOffset(addr uint16) int {
	if addr >= 0xC000 {
		return (m.banks16-1)*0x4000 + int(addr-0xC000)
	}
	return int(m.bank)*0x4000 + int(addr-0x8000)
}

func (m *mapper002) CPUPeek(addr uint16) uint8 {
	if addr < 0x8000 {
		if addr >= 0x6000 {
			return m.cart.sram[addr-0x6000]
		}
		return 0
	}
	return m.cart.Rom.PRGROM[m.romOffset(addr)]
}

func (m *mapper002) CPURead(addr uint16) uint8 { return m.CPUPeek(addr) }

func (m *mapper002) CPUWrite(addr uint16, value uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.cart.sram[addr-0x6000] = value
		return
	}
	if addr >= 0x8000 {
		value &= m.cart.Rom.PRGROM[m.romOffset(addr)]
		m.bank = value & 0x0F
	}
}

func (m *mapper002) chrByte(addr uint16) uint8 {
	if len(m.cart.Rom.CHRROM) > 0 {
		return m.cart.Rom.CHRROM[addr&0x1FFF]
	}
	return m.cart.chrRAM[addr&0x1FFF]
}

func (m *mapper002) PPUPeek(addr uint16) uint8 { return m.chrByte(addr) }
func (m *mapper002) PPURead(addr uint16) uint8 { return m.chrByte(addr) }

func (m *mapper002) PPUWrite(addr uint16, value uint8) bool {
	if len(m.cart.Rom.CHRROM) == 0 {
		m.cart.chrRAM[addr&0x1FFF] = value
		return true
	}
	return false
}

func (m *mapper002) IRQ() bool             { return false }
func (m *mapper002) Reset()                { m.bank = 0 }
func (m *mapper002) Mirroring() Mirroring  { return m.cart.Rom.Mirroring }
func (m *mapper002) M2Signal(rising bool)  {}

func (m *mapper002) ReportCPUMapping() []BankWindow {
	return []BankWindow{
		{Base: 0x8000, Size: 0x4000, Bank: int(m.bank), Source: "PRG-ROM"},
		{Base: 0xC000, Size: 0x4000, Bank: m.banks16 - 1, Source: "PRG-ROM"},
	}
}

func (m *mapper002) ReportPPUMapping() []BankWindow {
	src := "CHR-ROM"
	if len(m.cart.Rom.CHRROM) == 0 {
		src = "CHR-RAM"
	}
	return []BankWindow{{Base: 0x0000, Size: 0x2000, Bank: 0, Source: src}}
}
