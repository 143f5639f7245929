package cartridge

import (
	"bytes"
	"testing"
)

func buildINES(mapperID uint8, mirrorVertical, battery bool, prgBanks, chrBanks uint8, fill uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(prgBanks)
	buf.WriteByte(chrBanks)
	flags6 := (mapperID & 0x0F) << 4
	if mirrorVertical {
		flags6 |= 0x01
	}
	if battery {
		flags6 |= 0x02
	}
	buf.WriteByte(flags6)
	buf.WriteByte((mapperID & 0xF0))
	buf.Write(make([]byte, 8)) // flags 8-10 + padding
	prg := make([]byte, int(prgBanks)*16384)
	for i := range prg {
		prg[i] = fill
	}
	buf.Write(prg)
	if chrBanks > 0 {
		chr := make([]byte, int(chrBanks)*8192)
		buf.Write(chr)
	}
	return buf.Bytes()
}

func TestParseRomRejectsBadMagic(t *testing.T) {
	data := buildINES(0, false, false, 1, 1, 0)
	data[0] = 'X'
	if _, err := ParseRom(bytes.NewReader(data)); err != ErrCorruptHeader {
		t.Fatalf("expected ErrCorruptHeader, got %v", err)
	}
}

func TestParseRomUnknownMapperRejectedAtLoad(t *testing.T) {
	data := buildINES(255, false, false, 1, 1, 0)
	rom, err := ParseRom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseRom: %v", err)
	}
	if _, err := NewCartridge(rom); err != ErrUnknownMapper {
		t.Fatalf("expected ErrUnknownMapper, got %v", err)
	}
}

func TestNROM16KiBMirrorsAcrossBothWindows(t *testing.T) {
	data := buildINES(0, false, false, 1, 1, 0x42)
	rom, err := ParseRom(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ParseRom: %v", err)
	}
	cart, err := NewCartridge(rom)
	if err != nil {
		t.Fatalf("NewCartridge: %v", err)
	}
	if got := cart.CPURead(0x8000); got != 0x42 {
		t.Fatalf("$8000 = %#x, want 0x42", got)
	}
	if got := cart.CPURead(0xC000); got != 0x42 {
		t.Fatalf("$C000 = %#x, want 0x42 (16KiB mirror)", got)
	}
}

func TestNROMPRGRAMRoundTrips(t *testing.T) {
	data := buildINES(0, false, true, 1, 1, 0)
	rom, _ := ParseRom(bytes.NewReader(data))
	cart, _ := NewCartridge(rom)
	cart.CPUWrite(0x6000, 0x55)
	if got := cart.CPURead(0x6000); got != 0x55 {
		t.Fatalf("sram round trip = %#x, want 0x55", got)
	}
}

func TestResolveNametableBank(t *testing.T) {
	cases := []struct {
		mode Mirroring
		addr uint16
		want int
	}{
		{MirrorHorizontal, 0x2000, 0},
		{MirrorHorizontal, 0x2400, 0},
		{MirrorHorizontal, 0x2800, 1},
		{MirrorHorizontal, 0x2C00, 1},
		{MirrorVertical, 0x2000, 0},
		{MirrorVertical, 0x2400, 1},
		{MirrorVertical, 0x2800, 0},
		{MirrorVertical, 0x2C00, 1},
		{MirrorSingleScreen0, 0x2C00, 0},
		{MirrorSingleScreen1, 0x2000, 1},
	}
	for _, c := range cases {
		if got := ResolveNametableBank(c.mode, c.addr); got != c.want {
			t.Errorf("ResolveNametableBank(%v, %#x) = %d, want %d", c.mode, c.addr, got, c.want)
		}
	}
}

func TestMapper001ControlWriteSwitchesMirroringAndPRGMode(t *testing.T) {
	data := buildINES(1, false, false, 4, 1, 0)
	rom, _ := ParseRom(bytes.NewReader(data))
	cart, _ := NewCartridge(rom)

	// shift 0x0C into the control register via 5 writes to $8000, LSB
	// first: bits 0,0,1,1,0 -> 0b01100. Mirroring bits (control&3) are 00,
	// i.e. single-screen nametable 0.
	writeBits := []uint8{0, 0, 1, 1, 0}
	for _, bit := range writeBits {
		cart.CPUWrite(0x8000, bit)
	}
	if got := cart.Mirroring(); got != MirrorSingleScreen0 {
		t.Fatalf("mirroring = %v, want single-screen 0", got)
	}

	// shift 0x0E (0b01110) in next: bits 0,1,1,1,0 -> mirroring bits 10 = vertical.
	writeBits = []uint8{0, 1, 1, 1, 0}
	for _, bit := range writeBits {
		cart.CPUWrite(0x8000, bit)
	}
	if got := cart.Mirroring(); got != MirrorVertical {
		t.Fatalf("mirroring = %v, want vertical", got)
	}
	// PRG mode bits (control>>2&3) are 11: the last 16KiB bank is fixed at $C000.
	if got := cart.ReportCPUMapping()[2].Bank; got != 3 {
		t.Fatalf("$C000 bank = %d, want 3 (last bank fixed)", got)
	}
}

func TestMapper004IRQFiresOnA12RisingEdgeAtZeroCount(t *testing.T) {
	data := buildINES(4, false, false, 4, 8, 0)
	rom, _ := ParseRom(bytes.NewReader(data))
	cart, _ := NewCartridge(rom)

	cart.CPUWrite(0xC000, 0) // IRQ latch = 0
	cart.CPUWrite(0xC001, 0) // reload
	cart.CPUWrite(0xE001, 0) // enable

	cart.PPUPeek(0x0000) // no edge, addr bit 12 = 0
	cart.PPURead(0x1000) // rising edge of A12
	if !cart.IRQ() {
		t.Fatalf("expected IRQ asserted after A12 rising edge with counter 0")
	}
	cart.CPUWrite(0xE000, 0) // disable + ack
	if cart.IRQ() {
		t.Fatalf("expected IRQ cleared after ack")
	}
}
