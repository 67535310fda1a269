package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gocirc/domain/circular"
)

// ImportCSV reads an observation table from a CSV file with the header
// population,condition,angle_deg.
func ImportCSV(path string) (circular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return circular.Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses observation rows from a CSV stream.
func ReadCSV(r io.Reader) (circular.Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return circular.Table{}, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(exportHeaders) {
		return circular.Table{}, fmt.Errorf("expected header %v, got %v", exportHeaders, header)
	}
	for i, h := range exportHeaders {
		if header[i] != h {
			return circular.Table{}, fmt.Errorf("expected header %v, got %v", exportHeaders, header)
		}
	}

	var table circular.Table
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return circular.Table{}, fmt.Errorf("line %d: %w", line, err)
		}
		angle, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return circular.Table{}, fmt.Errorf("line %d: angle %q is not a number", line, row[2])
		}
		table.Observations = append(table.Observations, circular.Observation{
			Population: circular.Population(row[0]),
			Condition:  circular.Condition(row[1]),
			AngleDeg:   angle,
		})
	}
	return table, nil
}
