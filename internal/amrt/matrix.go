package amrt

import (
	"fmt"
	"math"
)

// asMatrix accepts a scalar, a row vector or a matrix.
func asMatrix(v any) [][]float64 {
	switch m := v.(type) {
	case float64:
		return [][]float64{{m}}
	case int:
		return [][]float64{{float64(m)}}
	case []float64:
		return [][]float64{m}
	case [][]float64:
		return m
	}
	panic(fmt.Sprintf("matrix: unsupported operand %T", v))
}

func square(name string, m [][]float64) int {
	n := len(m)
	for _, row := range m {
		if len(row) != n {
			panic(fmt.Sprintf("%s: matrix must be square", name))
		}
	}
	return n
}

func fill(r, c float64, v float64) [][]float64 {
	rows, cols := int(r), int(c)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = v
		}
	}
	return m
}

// det returns the determinant using Gaussian elimination with partial pivoting.
func det(v any) float64 {
	src := asMatrix(v)
	n := square("det", src)
	a := make([][]float64, n)
	for i := range src {
		a[i] = append([]float64(nil), src[i]...)
	}
	d := 1.0
	for k := 0; k < n; k++ {
		p := k
		for i := k + 1; i < n; i++ {
			if math.Abs(a[i][k]) > math.Abs(a[p][k]) {
				p = i
			}
		}
		if a[p][k] == 0 {
			return 0
		}
		if p != k {
			a[p], a[k] = a[k], a[p]
			d = -d
		}
		d *= a[k][k]
		for i := k + 1; i < n; i++ {
			f := a[i][k] / a[k][k]
			for j := k; j < n; j++ {
				a[i][j] -= f * a[k][j]
			}
		}
	}
	return d
}

// tr returns the sum of the diagonal.
func tr(v any) float64 {
	m := asMatrix(v)
	n := square("tr", m)
	s := 0.0
	for i := 0; i < n; i++ {
		s += m[i][i]
	}
	return s
}

// tp returns the transpose.
func tp(v any) [][]float64 {
	m := asMatrix(v)
	if len(m) == 0 {
		return nil
	}
	out := make([][]float64, len(m[0]))
	for j := range out {
		out[j] = make([]float64, len(m))
		for i := range m {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// iden returns the n×n identity matrix.
func iden(n float64) [][]float64 {
	m := fill(n, n, 0)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

func zeros(r, c float64) [][]float64 { return fill(r, c, 0) }

func ones(r, c float64) [][]float64 { return fill(r, c, 1) }

// diag places a vector on the diagonal of a square matrix.
func diag(v any) [][]float64 {
	m := asMatrix(v)
	var vec []float64
	if len(m) == 1 {
		vec = m[0]
	} else {
		for _, row := range m {
			if len(row) != 1 {
				panic("diag: argument must be a vector")
			}
			vec = append(vec, row[0])
		}
	}
	out := fill(float64(len(vec)), float64(len(vec)), 0)
	for i, x := range vec {
		out[i][i] = x
	}
	return out
}
