package core

import "math"

// Frame is an immutable copy of a canvas pixel grid.
type Frame struct {
	Cols int
	Rows int
	Pix  []Color
}

// At returns the pixel color at (x, y), or "" when out of bounds.
func (f Frame) At(x, y int) Color {
	if x < 0 || x >= f.Cols || y < 0 || y >= f.Rows {
		return ""
	}
	return f.Pix[y*f.Cols+x]
}

// Canvas is a raster drawing surface addressed in logical coordinates.
// The logical playfield (e.g. 500x500) is mapped onto a cols x rows pixel grid,
// so the playfield keeps its size when the terminal is resized.
type Canvas struct {
	width  float64 // Logical width
	height float64 // Logical height
	cols   int
	rows   int
	pix    []Color
}

// NewCanvas creates a canvas with the given logical size and pixel resolution.
func NewCanvas(width, height float64, cols, rows int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
	}
	c.Resize(cols, rows)
	return c
}

// Width returns the logical playfield width.
func (c *Canvas) Width() float64 {
	return c.width
}

// Height returns the logical playfield height.
func (c *Canvas) Height() float64 {
	return c.height
}

// Cols returns the pixel grid width.
func (c *Canvas) Cols() int {
	return c.cols
}

// Rows returns the pixel grid height.
func (c *Canvas) Rows() int {
	return c.rows
}

// Resize changes the pixel resolution. Content is discarded; the next
// frame repaints everything.
func (c *Canvas) Resize(cols, rows int) {
	cols = Clamp(cols, 1, math.MaxInt32)
	rows = Clamp(rows, 1, math.MaxInt32)
	if cols == c.cols && rows == c.rows && c.pix != nil {
		return
	}
	c.cols = cols
	c.rows = rows
	c.pix = make([]Color, cols*rows)
}

// Clear fills the entire canvas with col.
func (c *Canvas) Clear(col Color) {
	for i := range c.pix {
		c.pix[i] = col
	}
}

// FillCircle paints every pixel whose center lies within r of center.
// The pixel containing the center is always painted so that circles smaller
// than a pixel remain visible.
func (c *Canvas) FillCircle(center Vec2, r float64, col Color) {
	sx, sy := c.scale()

	minX := int(math.Floor((center.X - r) * sx))
	maxX := int(math.Ceil((center.X + r) * sx))
	minY := int(math.Floor((center.Y - r) * sy))
	maxY := int(math.Ceil((center.Y + r) * sy))

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			p := V((float64(px)+0.5)/sx, (float64(py)+0.5)/sy)
			if p.Dist(center) <= r {
				c.set(px, py, col)
			}
		}
	}

	c.set(int(math.Floor(center.X*sx)), int(math.Floor(center.Y*sy)), col)
}

// At returns the color of pixel (x, y), or "" when out of bounds.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return ""
	}
	return c.pix[y*c.cols+x]
}

// ToLogical maps a pixel-space point to playfield coordinates.
func (c *Canvas) ToLogical(px, py float64) Vec2 {
	sx, sy := c.scale()
	return V(px/sx, py/sy)
}

// Frame returns a copy of the current pixel grid.
func (c *Canvas) Frame() Frame {
	pix := make([]Color, len(c.pix))
	copy(pix, c.pix)
	return Frame{Cols: c.cols, Rows: c.rows, Pix: pix}
}

// scale returns pixels per logical unit on each axis.
func (c *Canvas) scale() (float64, float64) {
	return float64(c.cols) / c.width, float64(c.rows) / c.height
}

// set places a color at the given pixel.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) set(x, y int, col Color) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	c.pix[y*c.cols+x] = col
}
