package ppu

import (
	"testing"

	"gones/internal/cartridge"
	"gones/internal/memory"
)

// stubCart is a minimal memory.CartridgeInterface backed by plain byte
// slices, letting these tests exercise the PPU's register and pipeline
// logic without depending on a real mapper.
type stubCart struct {
	chr       [0x2000]uint8
	mirroring cartridge.Mirroring
}

func (c *stubCart) CPURead(addr uint16) uint8          { return 0 }
func (c *stubCart) CPUWrite(addr uint16, v uint8)      {}
func (c *stubCart) PPURead(addr uint16) uint8          { return c.chr[addr&0x1FFF] }
func (c *stubCart) PPUWrite(addr uint16, v uint8) bool { c.chr[addr&0x1FFF] = v; return true }
func (c *stubCart) Mirroring() cartridge.Mirroring     { return c.mirroring }

func newTestPPU() *PPU {
	p := New()
	p.SetMemory(memory.NewPPUMemory(&stubCart{}))
	p.Reset()
	return p
}

func TestPPUResetClearsStatusButSetsPowerUpBits(t *testing.T) {
	p := New()
	p.Reset()
	if p.ppuStatus != 0xA0 {
		t.Fatalf("ppuStatus after Reset = %#x, want 0xA0", p.ppuStatus)
	}
}

func TestPPUStatusReadClearsVBlankAndWriteLatch(t *testing.T) {
	p := newTestPPU()
	p.ppuStatus |= 0x80
	p.w = true

	status := p.ReadRegister(0x2002)
	if status&0x80 == 0 {
		t.Fatalf("expected read VBlank bit set before clear")
	}
	if p.ppuStatus&0x80 != 0 {
		t.Fatalf("VBlank flag not cleared after PPUSTATUS read")
	}
	if p.w {
		t.Fatalf("write latch not cleared after PPUSTATUS read")
	}
}

func TestPPUScrollAndAddrWriteSequencing(t *testing.T) {
	p := newTestPPU()

	p.WriteRegister(0x2005, 0x7D) // coarse X=15, fine X=5
	p.WriteRegister(0x2005, 0x5E) // coarse Y=11, fine Y=6

	if p.x != 5 {
		t.Fatalf("fine X = %d, want 5", p.x)
	}
	if (p.t & 0x001F) != 15 {
		t.Fatalf("coarse X in t = %d, want 15", p.t&0x001F)
	}

	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00)
	if p.v != 0x3F00 {
		t.Fatalf("v after PPUADDR write = %#x, want 0x3F00", p.v)
	}
}

func TestPPUDataReadIsBufferedExceptForPalette(t *testing.T) {
	p := newTestPPU()

	p.v = 0x2005
	p.memory.Write(0x2005, 0xAB)
	first := p.ReadRegister(0x2007)
	if first == 0xAB {
		t.Fatalf("first PPUDATA read should return the stale buffer, not the fresh byte")
	}

	p.v = 0x3F00
	p.memory.Write(0x3F00, 0x20)
	direct := p.ReadRegister(0x2007)
	if direct != 0x20 {
		t.Fatalf("palette PPUDATA read should return immediately, got %#x want 0x20", direct)
	}
}

func TestPPUOAMWriteAndReadback(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2003, 0x10)
	p.WriteRegister(0x2004, 0x99)
	if p.oam[0x10] != 0x99 {
		t.Fatalf("OAM[0x10] = %#x, want 0x99", p.oam[0x10])
	}
	if p.oamAddr != 0x11 {
		t.Fatalf("oamAddr after write = %#x, want 0x11 (auto-increment)", p.oamAddr)
	}
}

func TestPPUNMIFiresOnVBlankStart(t *testing.T) {
	p := newTestPPU()
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.WriteRegister(0x2000, 0x80) // enable NMI

	p.scanline = 240
	p.cycle = 340
	p.Step() // wraps to scanline 241, cycle 0

	if p.scanline != 241 {
		t.Fatalf("expected scanline 241 after wraparound, got %d", p.scanline)
	}
	p.Step() // cycle 1: VBlank set + NMI fires
	if !fired {
		t.Fatalf("expected NMI callback to fire at scanline 241 cycle 1")
	}
	if p.ppuStatus&0x80 == 0 {
		t.Fatalf("expected VBlank flag set")
	}
}

func TestPPUSpriteZeroHitFlagClearsAtPreRender(t *testing.T) {
	p := newTestPPU()
	p.sprite0Hit = true
	p.ppuStatus |= 0x40
	p.scanline = -1
	p.cycle = 0
	p.Step()
	if p.sprite0Hit {
		t.Fatalf("sprite0Hit should clear at pre-render scanline cycle 1")
	}
	if p.ppuStatus&0x40 != 0 {
		t.Fatalf("PPUSTATUS sprite-0-hit bit should clear at pre-render scanline cycle 1")
	}
}

func TestPPUDrawCallbackReportsIndexAndEmphasis(t *testing.T) {
	p := newTestPPU()
	p.WriteRegister(0x2001, 0xC0) // green + blue emphasis, rendering off

	var gotX, gotY int
	var gotIndex uint8
	var gotEmphasis Emphasis
	calls := 0
	p.SetDrawCallback(func(x, y int, colorIndex uint8, emphasis Emphasis) {
		calls++
		gotX, gotY, gotIndex, gotEmphasis = x, y, colorIndex, emphasis
	})

	p.scanline = 0
	p.cycle = 1
	p.Step()

	if calls != 1 {
		t.Fatalf("expected draw callback to fire once per pixel, got %d calls", calls)
	}
	if gotX != 0 || gotY != 0 {
		t.Fatalf("draw callback reported (%d,%d), want (0,0)", gotX, gotY)
	}
	if gotIndex >= 64 {
		t.Fatalf("draw callback reported out-of-range color index %d", gotIndex)
	}
	if gotEmphasis != 0x06 {
		t.Fatalf("draw callback emphasis = %#x, want 0x06 (green+blue)", gotEmphasis)
	}
}

func TestIncrementXWrapsCoarseXAndNametableBit(t *testing.T) {
	p := New()
	p.v = 0x001F // coarse X = 31
	p.incrementX()
	if p.v&0x001F != 0 {
		t.Fatalf("coarse X after wrap = %d, want 0", p.v&0x001F)
	}
	if p.v&0x0400 == 0 {
		t.Fatalf("expected horizontal nametable bit to flip on coarse X wrap")
	}
}

func TestIncrementYWrapsAtRow29(t *testing.T) {
	p := New()
	p.v = 29 << 5 // coarse Y = 29
	p.v |= 0x7000 // fine Y = 7, about to carry
	p.incrementY()
	if (p.v>>5)&0x1F != 0 {
		t.Fatalf("coarse Y after wrap = %d, want 0", (p.v>>5)&0x1F)
	}
	if p.v&0x0800 == 0 {
		t.Fatalf("expected vertical nametable bit to flip at coarse Y 29 wrap")
	}
}
