package export

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/hrneuron/internal/analysis"
)

func TestTraceToSVG(t *testing.T) {
	svg := TraceToSVG([]float64{0, 1, 2}, []float64{-1, 1, -1}, 100, 50, "")

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Contains(t, svg, `width="100" height="50"`)
	assert.Contains(t, svg, DefaultStroke)
	assert.Equal(t, 1, strings.Count(svg, "M"))
	assert.Equal(t, 2, strings.Count(svg, " L"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestTraceToSVGDegenerate(t *testing.T) {
	assert.Empty(t, TraceToSVG(nil, nil, 100, 50, ""))
	assert.Empty(t, TraceToSVG([]float64{0}, []float64{1}, 100, 50, ""))
	assert.Empty(t, TraceToSVG([]float64{0, 1}, []float64{1, 2}, 0, 50, ""))

	flat := TraceToSVG([]float64{0, 1}, []float64{2, 2}, 100, 50, "red")
	assert.Contains(t, flat, `stroke="red"`)
	assert.NotContains(t, flat, "NaN")
}

func TestTraceToSVGBreaksOnNaN(t *testing.T) {
	svg := TraceToSVG(
		[]float64{0, 1, 2, 3, 4},
		[]float64{0, 1, math.NaN(), 1, 0},
		100, 50, "",
	)
	assert.Equal(t, 2, strings.Count(svg, "M"))
	assert.NotContains(t, svg, "NaN")
}

func TestPhaseToSVG(t *testing.T) {
	pts := analysis.PhasePortrait([]float64{0, 1, 0}, []float64{0, 0, 1})
	svg := PhaseToSVG(pts, 64, 64, "#fff")
	assert.Contains(t, svg, `stroke="#fff"`)
	assert.Contains(t, svg, "<path")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.svg")
	require.Error(t, WriteFile(path, ""))

	svg := TraceToSVG([]float64{0, 1}, []float64{0, 1}, 10, 10, "")
	require.NoError(t, WriteFile(path, svg))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, svg, string(data))
}
