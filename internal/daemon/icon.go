package daemon

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

// calendarIcon draws a 16x16 calendar page as an ICO image: a red header
// band over a white sheet with a dark border.
func calendarIcon() []byte {
	const (
		headerSize = 6
		entrySize  = 16
		infoSize   = 40
		pixelBytes = iconSize * iconSize * 4
		maskBytes  = iconSize * 4 // 1 bit per pixel, rows padded to 32 bits
	)

	buf := new(bytes.Buffer)
	le := func(v any) { _ = binary.Write(buf, binary.LittleEndian, v) }

	// ICONDIR
	le(uint16(0))
	le(uint16(1)) // type: icon
	le(uint16(1)) // count

	// ICONDIRENTRY
	buf.WriteByte(iconSize)
	buf.WriteByte(iconSize)
	buf.WriteByte(0) // palette
	buf.WriteByte(0)
	le(uint16(1))  // planes
	le(uint16(32)) // bpp
	le(uint32(infoSize + pixelBytes + maskBytes))
	le(uint32(headerSize + entrySize))

	// BITMAPINFOHEADER; height covers image and mask
	le(uint32(infoSize))
	le(int32(iconSize))
	le(int32(iconSize * 2))
	le(uint16(1))
	le(uint16(32))
	le(uint32(0)) // BI_RGB
	le(uint32(pixelBytes + maskBytes))
	le(int32(0))
	le(int32(0))
	le(uint32(0))
	le(uint32(0))

	// BGRA rows, bottom-up
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			b, g, r := iconPixel(x, y)
			buf.Write([]byte{b, g, r, 0xff})
		}
	}

	// AND mask: everything opaque
	buf.Write(make([]byte, maskBytes))

	return buf.Bytes()
}

func iconPixel(x, y int) (b, g, r byte) {
	switch {
	case x == 0 || y == 0 || x == iconSize-1 || y == iconSize-1:
		return 0x33, 0x33, 0x33
	case y <= 4:
		return 0x28, 0x28, 0xc6
	case (x%4 == 2) && (y%4 == 2):
		return 0x99, 0x99, 0x99
	default:
		return 0xff, 0xff, 0xff
	}
}
