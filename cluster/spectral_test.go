package cluster_test

import (
	"testing"

	"github.com/katalvlaran/opldsm/cluster"
	"github.com/katalvlaran/opldsm/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoBlocks interleaves two disconnected cliques: even indices form one
// block, odd indices the other.
func twoBlocks(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			if i%2 == j%2 {
				rows[i][j] = 1
			}
		}
	}
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)
	return m
}

// TestSpectral_SeparatesComponents recovers two disconnected blocks.
func TestSpectral_SeparatesComponents(t *testing.T) {
	labels, err := cluster.NewSpectral().Partition(twoBlocks(t, 6), 2, 42)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 0, 1, 0, 1}, labels)
}

// TestSpectral_ThreeChains splits three weakly linked chains.
func TestSpectral_ThreeChains(t *testing.T) {
	// 0-1-2 | 3-4-5 | 6-7-8 with one weak bridge between 2 and 3
	m, err := matrix.NewDense(9, 9)
	require.NoError(t, err)
	link := func(i, j int, w float64) {
		require.NoError(t, m.Set(i, j, w))
		require.NoError(t, m.Set(j, i, w))
	}
	for b := 0; b < 3; b++ {
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				link(3*b+i, 3*b+j, 4)
			}
		}
	}
	link(2, 3, 0.1)

	labels, err := cluster.NewSpectral().Partition(m, 3, 7)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2, 2, 2}, labels)
}

// TestSpectral_Deterministic repeats a run with the same seed.
func TestSpectral_Deterministic(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{
		{3, 1, 0, 1, 0},
		{1, 2, 1, 0, 0},
		{0, 1, 2, 0, 1},
		{1, 0, 0, 2, 1},
		{0, 0, 1, 1, 2},
	})
	require.NoError(t, err)

	sp := cluster.NewSpectral(cluster.WithRestarts(3))
	first, err := sp.Partition(m, 2, 99)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := sp.Partition(m, 2, 99)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	for _, l := range first {
		assert.True(t, l == 0 || l == 1)
	}
	assert.Equal(t, 0, first[0])
}

func TestSpectral_TrivialCounts(t *testing.T) {
	m := twoBlocks(t, 4)
	sp := cluster.NewSpectral()

	labels, err := sp.Partition(m, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0}, labels)

	labels, err = sp.Partition(m, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, labels)
}

func TestSpectral_Errors(t *testing.T) {
	sp := cluster.NewSpectral()
	m := twoBlocks(t, 4)

	_, err := sp.Partition(m, 0, 1)
	assert.ErrorIs(t, err, cluster.ErrClusterCount)

	_, err = sp.Partition(m, 5, 1)
	assert.ErrorIs(t, err, cluster.ErrClusterCount)

	_, err = sp.Partition(nil, 2, 1)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	asym, _ := matrix.NewDenseFrom([][]float64{{1, 2}, {0, 1}})
	_, err = sp.Partition(asym, 1, 1)
	assert.ErrorIs(t, err, matrix.ErrAsymmetry)

	rect, _ := matrix.NewDense(2, 3)
	_, err = sp.Partition(rect, 1, 1)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	neg, _ := matrix.NewDenseFrom([][]float64{{1, -1}, {-1, 1}})
	_, err = sp.Partition(neg, 1, 1)
	assert.ErrorIs(t, err, cluster.ErrNegativeAffinity)
}

// TestSpectral_IsolatedItem tolerates a zero-degree item.
func TestSpectral_IsolatedItem(t *testing.T) {
	m, err := matrix.NewDenseFrom([][]float64{
		{2, 2, 0, 0},
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 3},
	})
	require.NoError(t, err)

	labels, err := cluster.NewSpectral().Partition(m, 2, 3)
	require.NoError(t, err)
	require.Len(t, labels, 4)
	for _, l := range labels {
		assert.True(t, l == 0 || l == 1)
	}
	assert.Equal(t, labels[0], labels[1])
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, []int{0, 0, 1, 2, 1}, cluster.ExportedCanonical([]int{3, 3, 0, 7, 0}))
	assert.Empty(t, cluster.ExportedCanonical(nil))
}

func TestKMeans_WellSeparated(t *testing.T) {
	points := [][]float64{{0, 0}, {10, 10}, {0.1, 0}, {10, 10.2}, {0, 0.2}}
	labels := cluster.ExportedKMeans(points, 2, cluster.ExportedRNGFromSeed(5), 4, 100)

	require.Len(t, labels, 5)
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, labels[0], labels[4])
	assert.Equal(t, labels[1], labels[3])
	assert.NotEqual(t, labels[0], labels[1])
}

func TestRNG_SeedPolicy(t *testing.T) {
	a := cluster.ExportedRNGFromSeed(0).Int63()
	b := cluster.ExportedRNGFromSeed(1).Int63()
	assert.Equal(t, a, b, "seed 0 maps to the default seed")
	assert.NotEqual(t, cluster.ExportedDeriveSeed(1, 0), cluster.ExportedDeriveSeed(1, 1))
}
