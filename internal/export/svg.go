package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/hrneuron/internal/analysis"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 300
	DefaultStroke = "#00ff88"
)

type bounds struct {
	minX, maxX, minY, maxY float64
}

// fit returns padded bounds over the finite samples and how many there were.
func fit(xs, ys []float64) (b bounds, n int) {
	b = bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		b.minX = math.Min(b.minX, x)
		b.maxX = math.Max(b.maxX, x)
		b.minY = math.Min(b.minY, y)
		b.maxY = math.Max(b.maxY, y)
		n++
	}
	if n < 2 {
		return b, n
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.05
	b.maxX += rangeX * 0.05
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b, n
}

func pathSVG(xs, ys []float64, width, height int, stroke string) string {
	if len(ys) < len(xs) {
		xs = xs[:len(ys)]
	}
	b, n := fit(xs, ys)
	if n < 2 || width <= 0 || height <= 0 {
		return ""
	}
	if stroke == "" {
		stroke = DefaultStroke
	}
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, stroke)

	cmd := "M"
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			cmd = "M"
			continue
		}
		px := (x - b.minX) / rangeX * float64(width)
		py := float64(height) - (y-b.minY)/rangeY*float64(height)
		if cmd == "L" {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, px, py)
		cmd = "L"
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// TraceToSVG draws a time series, typically membrane potential against time.
// Non-finite samples break the line.
func TraceToSVG(times, values []float64, width, height int, stroke string) string {
	return pathSVG(times, values, width, height, stroke)
}

// PhaseToSVG draws a phase portrait.
func PhaseToSVG(points []analysis.Point, width, height int, stroke string) string {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return pathSVG(xs, ys, width, height, stroke)
}

func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("export: nothing to draw")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
