package viz

import (
	"math"
	"strings"
)

const brailleBase = 0x2800

// Braille cell dots, indexed [row][col]:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille grid with two by four dots per cell. Points are
// plotted in data coordinates mapped through the configured window.
type Canvas struct {
	Width, Height int
	cells         []rune

	minX, maxX, minY, maxY float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, cells: make([]rune, w*h)}
	c.SetWindow(-1, 1, -1, 1)
	c.Clear()
	return c
}

// SetWindow sets the data range shown. Empty ranges are widened by one.
func (c *Canvas) SetWindow(minX, maxX, minY, maxY float64) {
	if maxX <= minX {
		maxX = minX + 1
	}
	if maxY <= minY {
		maxY = minY + 1
	}
	c.minX, c.maxX, c.minY, c.maxY = minX, maxX, minY, maxY
}

// FitWindow sizes the window to the finite points in xs and ys.
func (c *Canvas) FitWindow(xs, ys []float64) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := 0; i < len(xs) && i < len(ys); i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			continue
		}
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	if math.IsInf(minX, 1) {
		return
	}
	c.SetWindow(minX, maxX, minY, maxY)
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// Set lights the dot at (x, y) in dot coordinates. The dot grid is
// Width*2 by Height*4 with y growing downward.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.cells[(y/4)*c.Width+x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) dot(x, y float64) (int, int, bool) {
	if !finite(x) || !finite(y) {
		return 0, 0, false
	}
	dx := (x - c.minX) / (c.maxX - c.minX) * float64(c.Width*2-1)
	dy := (c.maxY - y) / (c.maxY - c.minY) * float64(c.Height*4-1)
	return int(math.Round(dx)), int(math.Round(dy)), true
}

// Plot lights the dot nearest the data point.
func (c *Canvas) Plot(x, y float64) {
	if px, py, ok := c.dot(x, y); ok {
		c.Set(px, py)
	}
}

// Line connects two data points.
func (c *Canvas) Line(x0, y0, x1, y1 float64) {
	ax, ay, ok0 := c.dot(x0, y0)
	bx, by, ok1 := c.dot(x1, y1)
	if !ok0 || !ok1 {
		return
	}
	c.bresenham(ax, ay, bx, by)
}

func (c *Canvas) bresenham(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width : (row+1)*c.Width]))
		b.WriteByte('\n')
	}
	return b.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
