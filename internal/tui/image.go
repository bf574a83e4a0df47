package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderImageCells draws an image as half-block cells: each terminal cell
// carries two vertically stacked pixels, the top as foreground and the
// bottom as background of '▀'. The image is scaled to fit maxW x maxH
// cells preserving aspect ratio.
func renderImageCells(img image.Image, maxW, maxH int) string {
	if maxW < 1 || maxH < 1 {
		return ""
	}

	bounds := img.Bounds()
	iw, ih := bounds.Dx(), bounds.Dy()
	if iw == 0 || ih == 0 {
		return ""
	}

	cols, pxRows := fitDimensions(iw, ih, maxW, maxH*2)
	cellRows := (pxRows + 1) / 2

	var b strings.Builder
	for row := 0; row < cellRows; row++ {
		for col := 0; col < cols; col++ {
			top := sampleHex(img, bounds, col, row*2, cols, pxRows)
			bottom := top
			if row*2+1 < pxRows {
				bottom = sampleHex(img, bounds, col, row*2+1, cols, pxRows)
			}
			cell := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			b.WriteString(cell.Render("▀"))
		}
		if row < cellRows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// fitDimensions scales iw x ih into maxW x maxH preserving aspect ratio.
func fitDimensions(iw, ih, maxW, maxH int) (int, int) {
	w, h := maxW, ih*maxW/iw
	if h > maxH {
		w, h = iw*maxH/ih, maxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// sampleHex nearest-samples the source pixel for a target cell and
// returns it as a hex color string.
func sampleHex(img image.Image, bounds image.Rectangle, x, y, w, h int) string {
	sx := bounds.Min.X + x*bounds.Dx()/w
	sy := bounds.Min.Y + y*bounds.Dy()/h
	r, g, b, _ := img.At(sx, sy).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
