package amrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixFunctions(t *testing.T) {
	m := [][]float64{{2, 1}, {1, 3}}

	assert.InDelta(t, 5.0, det(m), 1e-12)
	assert.InDelta(t, -2.0, det([][]float64{{0, 1}, {2, 0}}), 1e-12)
	assert.Equal(t, 0.0, det([][]float64{{1, 2}, {2, 4}}))
	assert.Equal(t, 5.0, tr(m))
	assert.Equal(t, [][]float64{{1}, {2}, {3}}, tp([]float64{1, 2, 3}))
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}}, iden(2))
	assert.Equal(t, [][]float64{{0, 0, 0}}, zeros(1, 3))
	assert.Equal(t, [][]float64{{1}, {1}}, ones(2, 1))
	assert.Equal(t, [][]float64{{4, 0}, {0, 5}}, diag([]float64{4, 5}))
	assert.Equal(t, [][]float64{{4, 0}, {0, 5}}, diag([][]float64{{4}, {5}}))
}

func TestMatrixFunctions_Panics(t *testing.T) {
	assert.Panics(t, func() { det([][]float64{{1, 2}}) })
	assert.Panics(t, func() { tr("nope") })
	assert.Panics(t, func() { diag([][]float64{{1, 2}, {3, 4}}) })
}
