package graphics

import (
	"testing"

	"gones/internal/ppu"
)

func TestColorIndexToRGBNoEmphasisMatchesBasePalette(t *testing.T) {
	for index := 0; index < 64; index++ {
		got := ColorIndexToRGB(uint8(index), 0)
		want := nesBaseColors[index]
		if got != want {
			t.Fatalf("ColorIndexToRGB(%d, 0) = %#08x, want %#08x", index, got, want)
		}
	}
}

func TestColorIndexToRGBEmphasisAttenuatesOtherChannels(t *testing.T) {
	// Index 32 is pure white (0xFFFEFF); red-only emphasis should leave red
	// alone and attenuate green/blue.
	base := ColorIndexToRGB(32, 0)
	red := ColorIndexToRGB(32, ppu.Emphasis(0x01))

	baseR, baseG := (base>>16)&0xFF, (base>>8)&0xFF
	redR, redG := (red>>16)&0xFF, (red>>8)&0xFF

	if redR != baseR {
		t.Fatalf("red channel changed under red emphasis: %d -> %d", baseR, redR)
	}
	if redG >= baseG {
		t.Fatalf("green channel not attenuated under red emphasis: %d -> %d", baseG, redG)
	}
}

func TestColorIndexToRGBOutOfRangeIsZero(t *testing.T) {
	if got := ColorIndexToRGB(64, 0); got != 0 {
		t.Fatalf("ColorIndexToRGB(64, 0) = %#08x, want 0", got)
	}
}

func TestFrameBuilderDrawAssemblesBuffer(t *testing.T) {
	fb := NewFrameBuilder()
	fb.Draw(5, 10, 0x20, 0)
	fb.Draw(300, 10, 0x01, 0) // out of bounds, must be ignored

	buf := fb.Frame()
	want := ColorIndexToRGB(0x20, 0)
	if got := buf[10*256+5]; got != want {
		t.Fatalf("buf[10*256+5] = %#08x, want %#08x", got, want)
	}
}
