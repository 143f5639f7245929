package memory

import (
	"testing"

	"gones/internal/cartridge"
)

// stubPPU/stubAPU/stubInput satisfy the memory package's tiny port
// interfaces without pulling in the real PPU/APU, keeping these tests
// focused on address decoding.
type stubPPU struct{ writes []uint16 }

func (s *stubPPU) ReadRegister(address uint16) uint8 { return uint8(address) }
func (s *stubPPU) WriteRegister(address uint16, value uint8) {
	s.writes = append(s.writes, address)
}

type stubAPU struct{ status uint8 }

func (s *stubAPU) WriteRegister(address uint16, value uint8) {}
func (s *stubAPU) ReadStatus() uint8                         { return s.status }

type stubCart struct {
	prg       [0x8000]uint8
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (c *stubCart) CPURead(addr uint16) uint8     { return c.prg[addr&0x7FFF] }
func (c *stubCart) CPUWrite(addr uint16, v uint8) { c.prg[addr&0x7FFF] = v }
func (c *stubCart) PPURead(addr uint16) uint8     { return c.chr[addr&0x1FFF] }
func (c *stubCart) PPUWrite(addr uint16, v uint8) bool {
	c.chr[addr&0x1FFF] = v
	return true
}
func (c *stubCart) Mirroring() cartridge.Mirroring { return c.mirroring }

func TestMemoryRAMIsMirroredAcrossFourWindows(t *testing.T) {
	m := New(&stubPPU{}, &stubAPU{}, &stubCart{})
	m.Write(0x0000, 0x42)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := m.Read(addr); got != 0x42 {
			t.Errorf("Read(%#x) = %#x, want 0x42", addr, got)
		}
	}
}

func TestMemoryPPURegisterMirroring(t *testing.T) {
	ppu := &stubPPU{}
	m := New(ppu, &stubAPU{}, &stubCart{})
	m.Write(0x2000, 1)
	m.Write(0x3FF8, 1) // mirrors $2000-$2007 every 8 bytes up to $3FFF
	if len(ppu.writes) != 2 || ppu.writes[0] != 0x2000 || ppu.writes[1] != 0x2000 {
		t.Fatalf("expected both writes routed to $2000, got %v", ppu.writes)
	}
}

func TestMemoryAPUStatusRead(t *testing.T) {
	apu := &stubAPU{status: 0x5A}
	m := New(&stubPPU{}, apu, &stubCart{})
	if got := m.Read(0x4015); got != 0x5A {
		t.Fatalf("Read($4015) = %#x, want 0x5A", got)
	}
}

func TestMemoryCartridgeRoutingAboveSRAMWindow(t *testing.T) {
	cart := &stubCart{}
	m := New(&stubPPU{}, &stubAPU{}, cart)
	m.Write(0x8000, 0x77)
	if got := m.Read(0x8000); got != 0x77 {
		t.Fatalf("Read($8000) = %#x, want 0x77", got)
	}
}

func TestPPUMemoryNametableMirroringHorizontal(t *testing.T) {
	cart := &stubCart{mirroring: cartridge.MirrorHorizontal}
	pm := NewPPUMemory(cart)
	pm.Write(0x2000, 0x11)
	if got := pm.Read(0x2400); got != 0x11 {
		t.Fatalf("horizontal mirror: Read($2400) = %#x, want 0x11", got)
	}
	if got := pm.Read(0x2800); got == 0x11 {
		t.Fatalf("horizontal mirror: $2800 should be the other physical bank")
	}
}

func TestPPUMemoryPaletteBackdropAliasing(t *testing.T) {
	cart := &stubCart{}
	pm := NewPPUMemory(cart)
	pm.Write(0x3F00, 0x0F)
	if got := pm.Read(0x3F10); got != 0x0F {
		t.Fatalf("sprite backdrop Read($3F10) = %#x, want 0x0F (aliased to $3F00)", got)
	}
}

func TestPPUMemoryPatternTableRoutesToCartridge(t *testing.T) {
	cart := &stubCart{}
	pm := NewPPUMemory(cart)
	pm.Write(0x0010, 0x99)
	if got := pm.Read(0x0010); got != 0x99 {
		t.Fatalf("Read($0010) = %#x, want 0x99", got)
	}
}
