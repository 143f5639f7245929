package graphics

import "gones/internal/ppu"

// FrameBuilder assembles the PPU's per-pixel draw callbacks into a
// 256x240 RGB frame buffer, applying the color table on the host side.
// Draw can be wired directly as the PPU's draw callback; Frame returns
// the buffer built so far.
type FrameBuilder struct {
	buffer [256 * 240]uint32
}

// NewFrameBuilder creates an empty frame builder.
func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{}
}

// Draw records one pixel. Safe to wire directly as ppu.PPU.SetDrawCallback.
func (f *FrameBuilder) Draw(x, y int, colorIndex uint8, emphasis ppu.Emphasis) {
	if x < 0 || x >= 256 || y < 0 || y >= 240 {
		return
	}
	f.buffer[y*256+x] = ColorIndexToRGB(colorIndex, emphasis)
}

// Frame returns the assembled buffer for the frame that just completed.
func (f *FrameBuilder) Frame() [256 * 240]uint32 {
	return f.buffer
}
