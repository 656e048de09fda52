package tui

// brailleBuf is a 2x4 micro-pixel grid per terminal cell. Each set pixel
// remembers the shape that painted it last so cells can be coloured.
type brailleBuf struct {
	w, h  int       // in cells
	m     [][]uint8 // per-cell 8-bit mask
	owner [][]int   // per-cell index of the last shape painted, -1 if none
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	owner := make([][]int, h)
	for i := range m {
		m[i] = make([]uint8, w)
		owner[i] = make([]int, w)
		for j := range owner[i] {
			owner[i][j] = -1
		}
	}
	return &brailleBuf{w: w, h: h, m: m, owner: owner}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my, shape int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
	b.owner[cy][cx] = shape
}

// fillEllipse sets every micro-pixel whose centre lies inside the ellipse.
// Ellipses smaller than a pixel still set the pixel under their centre.
func (b *brailleBuf) fillEllipse(cx, cy, rx, ry float64, shape int) {
	b.setPixel(floor(cx), floor(cy), shape)
	if rx <= 0 || ry <= 0 {
		return
	}
	for my := floor(cy - ry); my <= floor(cy+ry); my++ {
		dy := (float64(my) + 0.5 - cy) / ry
		for mx := floor(cx - rx); mx <= floor(cx+rx); mx++ {
			dx := (float64(mx) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				b.setPixel(mx, my, shape)
			}
		}
	}
}

func (b *brailleBuf) glyph(x, y int) rune {
	mask := b.m[y][x]
	if mask == 0 {
		return ' '
	}
	return rune(0x2800 + int(mask))
}
