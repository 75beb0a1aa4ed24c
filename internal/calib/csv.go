package calib

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes the table as dt,points rows with a header.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"dt", "points"}); err != nil {
		return err
	}
	for _, e := range t.entries {
		row := []string{
			strconv.FormatFloat(e.Dt, 'g', -1, 64),
			strconv.FormatFloat(e.Points, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table written by WriteCSV. The header row is optional.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("calib: read csv: %w", err)
	}

	var entries []Entry
	for i, rec := range records {
		if i == 0 && rec[0] == "dt" {
			continue
		}
		dt, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("calib: row %d: %w", i+1, err)
		}
		pts, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("calib: row %d: %w", i+1, err)
		}
		entries = append(entries, Entry{Dt: dt, Points: pts})
	}

	return NewTable(entries)
}

func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func SaveCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
