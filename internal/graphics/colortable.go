package graphics

import "gones/internal/ppu"

// nesBaseColors is the NES 2C02 NTSC palette, indexed by the 6-bit color
// code read from palette RAM, before any emphasis tinting is applied.
var nesBaseColors = [64]uint32{
	0xFF666666, 0xFF002A88, 0xFF1412A7, 0xFF3B00A4, 0xFF5C007E, 0xFF6E0040, 0xFF6C0600, 0xFF561D00,
	0xFF333500, 0xFF0B4800, 0xFF005200, 0xFF004F08, 0xFF00404D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFADADAD, 0xFF155FD9, 0xFF4240FF, 0xFF7527FE, 0xFFA01ACC, 0xFFB71E7B, 0xFFB53120, 0xFF994E00,
	0xFF6B6D00, 0xFF388700, 0xFF0C9300, 0xFF008F32, 0xFF007C8D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFF64B0FF, 0xFF9290FF, 0xFFC676FF, 0xFFF36AFF, 0xFFFE6ECC, 0xFFFE8170, 0xFFEA9E22,
	0xFFBCBE00, 0xFF88D800, 0xFF5CE430, 0xFF45E082, 0xFF48CDDE, 0xFF4F4F4F, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFFC0DFFF, 0xFFD3D2FF, 0xFFE8C8FF, 0xFFFBC2FF, 0xFFFEC4EA, 0xFFFECCC5, 0xFFF7D8A5,
	0xFFE4E594, 0xFFCFF29B, 0xFFBEFBB3, 0xFFB8F8D8, 0xFFB8F8F8, 0xFF000000, 0xFF000000, 0xFF000000,
}

// attenuated scales a channel by roughly the NTSC PPU's emphasis
// attenuation factor for the two non-emphasized channels when any
// emphasis bit is active.
func attenuated(channel uint32) uint32 {
	v := uint32(float64(channel) * 0.746)
	if v > 0xFF {
		v = 0xFF
	}
	return v
}

// colorTable is the 512-entry (64 base colors x 8 emphasis combinations)
// sRGB lookup table. The PPU core only ever reports a 6-bit color index
// plus the 3-bit PPUMASK emphasis field; this table, and the tinting it
// applies, live entirely on the host side.
var colorTable = buildColorTable()

func buildColorTable() [512]uint32 {
	var table [512]uint32
	for index := 0; index < 64; index++ {
		base := nesBaseColors[index] & 0x00FFFFFF
		r := (base >> 16) & 0xFF
		g := (base >> 8) & 0xFF
		b := base & 0xFF
		for emphasis := 0; emphasis < 8; emphasis++ {
			er, eg, eb := r, g, b
			if emphasis != 0 {
				if emphasis&0x01 == 0 { // red not emphasized
					er = attenuated(er)
				}
				if emphasis&0x02 == 0 { // green not emphasized
					eg = attenuated(eg)
				}
				if emphasis&0x04 == 0 { // blue not emphasized
					eb = attenuated(eb)
				}
			}
			table[index*8+emphasis] = 0xFF000000 | (er << 16) | (eg << 8) | eb
		}
	}
	return table
}

// ColorIndexToRGB converts a 6-bit palette color index and 3-bit PPUMASK
// emphasis field into an sRGB value (0xFFRRGGBB).
func ColorIndexToRGB(colorIndex uint8, emphasis ppu.Emphasis) uint32 {
	if colorIndex >= 64 {
		return 0
	}
	return colorTable[int(colorIndex)*8+int(emphasis&0x07)]
}
