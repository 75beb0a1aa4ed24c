package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/sim"
)

var traceHeader = []string{"tick", "time", "model_time", "x", "y", "z", "i_syn", "substeps"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTraceCSV writes one row per recorded sample. Floats round trip exactly.
func WriteTraceCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(traceHeader); err != nil {
		return err
	}

	for _, s := range result.Samples {
		row := []string{
			strconv.Itoa(s.Tick),
			formatFloat(s.Time),
			formatFloat(s.ModelTime),
			formatFloat(s.Vars[hr.X]),
			formatFloat(s.Vars[hr.Y]),
			formatFloat(s.Vars[hr.Z]),
			formatFloat(s.Input),
			strconv.Itoa(s.Substeps),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func ReadTraceCSV(r io.Reader) ([]sim.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(traceHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for i, rec := range records[1:] {
		var nums [6]float64
		for j, field := range rec[1:7] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: row %d: %w", i+2, err)
			}
			nums[j] = v
		}
		tick, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+2, err)
		}
		substeps, err := strconv.Atoi(rec[7])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+2, err)
		}

		samples = append(samples, sim.Sample{
			Tick:      tick,
			Time:      nums[0],
			ModelTime: nums[1],
			Vars:      hr.Vars{nums[2], nums[3], nums[4]},
			Input:     nums[5],
			Substeps:  substeps,
		})
	}
	return samples, nil
}

// ExportData is the JSON form of a run.
type ExportData struct {
	Meta      RunMetadata `json:"meta"`
	Ticks     []int       `json:"ticks"`
	Times     []float64   `json:"times"`
	X         []float64   `json:"x"`
	Y         []float64   `json:"y"`
	Z         []float64   `json:"z"`
	Input     []float64   `json:"i_syn"`
	Substeps  int         `json:"substeps"`
	ModelTime float64     `json:"model_time"`
}

func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	n := len(result.Samples)
	data := ExportData{
		Meta:      meta,
		Ticks:     make([]int, n),
		Times:     make([]float64, n),
		X:         make([]float64, n),
		Y:         make([]float64, n),
		Z:         make([]float64, n),
		Input:     make([]float64, n),
		Substeps:  result.Substeps,
		ModelTime: result.ModelTime,
	}
	for i, s := range result.Samples {
		data.Ticks[i] = s.Tick
		data.Times[i] = s.Time
		data.X[i] = s.Vars[hr.X]
		data.Y[i] = s.Vars[hr.Y]
		data.Z[i] = s.Vars[hr.Z]
		data.Input[i] = s.Input
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
