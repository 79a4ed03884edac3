package amrt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Kind is the subtype of a model table.
type Kind int

const (
	KindLookup Kind = iota
	KindDistribution
	KindMatrix
)

// Method selects how Lookup matches an index against the key column.
type Method int

const (
	MethodExact Method = iota
	MethodTruncate
	MethodInterpolate
)

// Interpolation selects the interpolation used by MethodInterpolate.
type Interpolation int

const (
	InterpolateLinear Interpolation = iota
	InterpolateCubicSplines
)

// Extrapolation governs lookups outside the key column's domain. The names
// follow the modeling tool: LeftOnly clamps above the last key and RightOnly
// clamps at or below the first key.
type Extrapolation int

const (
	ExtrapolateNo Extrapolation = iota
	ExtrapolateLeftOnly
	ExtrapolateRightOnly
	ExtrapolateBoth
)

var (
	ErrInvalidColumn = errors.New("invalid column")
	ErrNotFound      = errors.New("index not found")
	ErrBelowRange    = errors.New("index below first key")
	ErrNoSpline      = errors.New("no spline for column")
)

// TableOptions holds the lookup configuration of a table.
type TableOptions struct {
	Kind          Kind
	Method        Method
	Interpolation Interpolation
	Boundary      string
	Extrapolate   Extrapolation
}

// Table is a lookup, distribution or matrix table. Column 0 of Data is the
// key column for lookup and distribution tables.
type Table struct {
	Name string
	TableOptions
	NumRows int
	NumCols int
	Headers []string
	Data    [][]float64
	Splines []*CubicSpline
}

// NewTable builds a table from in-memory headers and data.
func NewTable(name string, opts TableOptions, headers []string, data [][]float64) *Table {
	return &Table{
		Name:         name,
		TableOptions: opts,
		NumRows:      len(data),
		NumCols:      len(headers),
		Headers:      headers,
		Data:         data,
	}
}

// LoadTable builds a table from a delimited file whose first line holds the
// headers and whose next numRows lines hold numCols values each.
func LoadTable(name string, opts TableOptions, numRows, numCols int, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", name, err)
	}
	defer f.Close()

	headers, data, err := ReadCSV(f, numRows, numCols)
	if err != nil {
		return nil, fmt.Errorf("read table %s from %s: %w", name, path, err)
	}
	t := NewTable(name, opts, headers, data)
	return t, nil
}

// MustLoadTable is like LoadTable but panics on error. It is meant for
// package-level table declarations.
func MustLoadTable(name string, opts TableOptions, numRows, numCols int, path string) *Table {
	t, err := LoadTable(name, opts, numRows, numCols, path)
	if err != nil {
		panic(err)
	}
	return t
}

// ReadCSV parses a header line followed by numRows rows of numCols numbers.
func ReadCSV(r io.Reader, numRows, numCols int) ([]string, [][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numCols

	headers, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("headers: %w", err)
	}

	data := make([][]float64, numRows)
	for row := 0; row < numRows; row++ {
		record, err := cr.Read()
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", row, err)
		}
		data[row] = make([]float64, numCols)
		for col, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %d: %w", row, col, err)
			}
			data[row][col] = v
		}
	}
	return headers, data, nil
}

// WriteCSV writes the headers and then one line per row, using the shortest
// decimal representation that parses back to the same value.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	record := make([]string, t.NumCols)
	for _, row := range t.Data {
		for c := range record {
			record[c] = strconv.FormatFloat(row[c], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Lookup returns the value of column col at index, or NaN when the lookup
// has no answer. Use LookupErr to learn why.
func (t *Table) Lookup(index float64, col int) float64 {
	val, _ := t.LookupErr(index, col)
	return val
}

// LookupErr is Lookup with the failure reason reported as an error.
func (t *Table) LookupErr(index float64, col int) (float64, error) {
	if col < 1 || col > t.NumCols-1 || t.NumRows == 0 {
		return math.NaN(), fmt.Errorf("table %s column %d: %w", t.Name, col, ErrInvalidColumn)
	}
	if math.IsNaN(index) {
		return math.NaN(), fmt.Errorf("table %s index NaN: %w", t.Name, ErrNotFound)
	}

	first, last := t.Data[0], t.Data[t.NumRows-1]

	switch t.Method {
	case MethodExact:
		for _, row := range t.Data {
			if row[0] == index {
				return row[col], nil
			}
		}
		return math.NaN(), fmt.Errorf("table %s index %v: %w", t.Name, index, ErrNotFound)

	case MethodTruncate:
		if index < first[0] {
			return math.NaN(), fmt.Errorf("table %s index %v: %w", t.Name, index, ErrBelowRange)
		}
		if index >= last[0] {
			return last[col], nil
		}
		row := 0
		for t.Data[row][0] < index {
			row++
		}
		if t.Data[row][0] == index {
			return t.Data[row][col], nil
		}
		return t.Data[row-1][col], nil

	case MethodInterpolate:
		var val float64
		if t.Interpolation == InterpolateCubicSplines {
			if col-1 >= len(t.Splines) || t.Splines[col-1] == nil {
				return math.NaN(), fmt.Errorf("table %s column %d: %w", t.Name, col, ErrNoSpline)
			}
			val = t.Splines[col-1].Evaluate(index)
		} else {
			val = t.interpolateLinear(index, col)
		}

		switch t.Extrapolate {
		case ExtrapolateNo:
			if index <= first[0] {
				val = first[col]
			} else if index > last[0] {
				val = last[col]
			}
		case ExtrapolateLeftOnly:
			if index > last[0] {
				val = last[col]
			}
		case ExtrapolateRightOnly:
			if index <= first[0] {
				val = first[col]
			}
		}
		return val, nil
	}

	return math.NaN(), fmt.Errorf("table %s: unknown lookup method %d", t.Name, t.Method)
}

func (t *Table) interpolateLinear(index float64, col int) float64 {
	d, n := t.Data, t.NumRows
	if n == 1 {
		return d[0][col]
	}
	if index <= d[0][0] {
		slope := (d[1][col] - d[0][col]) / (d[1][0] - d[0][0])
		return d[0][col] - float64((d[0][0]-index)*slope)
	}
	if index > d[n-1][0] {
		slope := (d[n-1][col] - d[n-2][col]) / (d[n-1][0] - d[n-2][0])
		return d[n-1][col] + float64((index-d[n-1][0])*slope)
	}
	row := 0
	for d[row][0] < index {
		row++
	}
	if d[row][0] == index {
		return d[row][col]
	}
	slope := (d[row][col] - d[row-1][col]) / (d[row][0] - d[row-1][0])
	return d[row-1][col] + float64((index-d[row-1][0])*slope)
}

// ExpectedValue treats column 0 as outcomes and column col as their
// probabilities.
func (t *Table) ExpectedValue(col int) float64 {
	ev := 0.0
	for _, row := range t.Data {
		ev += float64(row[0] * row[col])
	}
	return ev
}

// Column returns the position of the named header, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}
