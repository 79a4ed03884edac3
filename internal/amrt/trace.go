package amrt

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// Trace records a Markov cohort over time. Each row is the cycle index, the
// state occupancy, and for every reward dimension the cycle reward, the
// cumulative reward, the discounted cycle reward and the discounted
// cumulative reward.
type Trace struct {
	Name       string
	NumStates  int
	Dimensions []string
	Headers    []string
	Data       [][]float64
}

// NewTrace creates an empty trace for the given states and reward dimensions.
func NewTrace(name string, stateNames []string, dimensions []string) *Trace {
	headers := make([]string, 0, 1+len(stateNames)+4*len(dimensions))
	headers = append(headers, "Cycle")
	headers = append(headers, stateNames...)
	for _, d := range dimensions {
		headers = append(headers, "Cycle_"+d, "Cum_"+d, "Cycle_Dis_"+d, "Cum_Dis_"+d)
	}
	return &Trace{
		Name:       name,
		NumStates:  len(stateNames),
		Dimensions: dimensions,
		Headers:    headers,
	}
}

// NumCols is the row width.
func (t *Trace) NumCols() int {
	return len(t.Headers)
}

// Update appends the next cycle. prev holds the state occupancy; rewards and
// discounted hold one value per dimension.
func (t *Trace) Update(prev []float64, rewards, discounted []float64) {
	if len(prev) != t.NumStates || len(rewards) != len(t.Dimensions) || len(discounted) != len(t.Dimensions) {
		panic(fmt.Sprintf("trace %s: update with %d states and %d/%d rewards, want %d and %d",
			t.Name, len(prev), len(rewards), len(discounted), t.NumStates, len(t.Dimensions)))
	}

	row := make([]float64, t.NumCols())
	cycle := len(t.Data)
	var prevRow []float64
	if cycle > 0 {
		prevRow = t.Data[cycle-1]
	}
	row[0] = float64(cycle)
	col := 1
	for _, p := range prev {
		row[col] = p
		col++
	}
	for d := range t.Dimensions {
		row[col] = rewards[d]
		row[col+1] = rewards[d]
		row[col+2] = discounted[d]
		row[col+3] = discounted[d]
		if prevRow != nil {
			row[col+1] += prevRow[col+1]
			row[col+3] += prevRow[col+3]
		}
		col += 4
	}
	t.Data = append(t.Data, row)
}

// ApplyHalfCycleCorrection halves the last cycle's rewards and removes the
// same amount from that row's cumulative totals. Earlier rows are untouched.
func (t *Trace) ApplyHalfCycleCorrection() {
	if len(t.Data) == 0 {
		return
	}
	row := t.Data[len(t.Data)-1]
	col := t.NumStates + 1
	for range t.Dimensions {
		half := row[col] * 0.5
		row[col] = half
		row[col+1] -= half
		half = row[col+2] * 0.5
		row[col+2] = half
		row[col+3] -= half
		col += 4
	}
}

// Value returns the entry at cycle tIdx and column col, or NaN if either is
// out of range.
func (t *Trace) Value(tIdx, col int) float64 {
	if tIdx < 0 || tIdx >= len(t.Data) || col < 0 || col >= t.NumCols() {
		return math.NaN()
	}
	return t.Data[tIdx][col]
}

// ValueByName resolves colName against the headers, then behaves like Value.
func (t *Trace) ValueByName(tIdx int, colName string) float64 {
	for i, h := range t.Headers {
		if h == colName {
			return t.Value(tIdx, i)
		}
	}
	return math.NaN()
}

// WriteCSV writes the trace to <dir>/<name>_Trace.csv, headers first. The
// file is staged next to its destination and renamed into place, so a failed
// write leaves any previous file untouched.
func (t *Trace) WriteCSV(dir string) (err error) {
	name := t.Name + "_Trace.csv"
	f, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	record := make([]string, t.NumCols())
	for _, row := range t.Data {
		for i, v := range row {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), filepath.Join(dir, name))
}
