package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CSV column headers for energy traces.
var stepColumns = []string{"step", "energy", "best_energy"}

// WriteCSV writes step records as `step,energy,best_energy` rows.
func WriteCSV(w io.Writer, steps []StepRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(stepColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, s := range steps {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.Itoa(s.Energy),
			strconv.Itoa(s.BestEnergy),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", s.Step, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportCSV writes the trace's step records to path.
func ExportCSV(path string, steps []StepRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteCSV(file, steps)
}

// ReadCSV parses a trace written by WriteCSV.
func ReadCSV(r io.Reader) ([]StepRecord, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty trace CSV")
	}
	steps := make([]StepRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(stepColumns) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+1, len(stepColumns), len(row))
		}
		var vals [3]int
		for k, cell := range row {
			v, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", i+1, stepColumns[k], err)
			}
			vals[k] = v
		}
		steps = append(steps, StepRecord{Step: vals[0], Energy: vals[1], BestEnergy: vals[2]})
	}
	return steps, nil
}

// Fold is the JSON form of a conformation and its energy.
type Fold struct {
	Energy int      `json:"energy"`
	Coords [][2]int `json:"coords"`
}

// WriteFoldJSON writes an indented Fold document.
func WriteFoldJSON(w io.Writer, fold Fold) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fold); err != nil {
		return fmt.Errorf("encoding fold: %w", err)
	}
	return nil
}

// ExportFoldJSON writes fold to path.
func ExportFoldJSON(path string, fold Fold) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating fold file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteFoldJSON(file, fold)
}

// ReadFoldJSON decodes a Fold document.
func ReadFoldJSON(r io.Reader) (Fold, error) {
	var fold Fold
	if err := json.NewDecoder(r).Decode(&fold); err != nil {
		return Fold{}, fmt.Errorf("decoding fold: %w", err)
	}
	return fold, nil
}
