package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridCellValidateRejectsNonPositiveExtent(t *testing.T) {
	c := GridCell{Min: ivec3{0, 0, 0}, Max: ivec3{4, 0, 4}}
	assert.Error(t, c.validate())
}

func TestGridCellSplitEvenCube(t *testing.T) {
	c := GridCell{Min: ivec3{0, 0, 0}, Max: ivec3{8, 8, 8}}
	children := c.split()
	require.Len(t, children, 8)

	total := 0
	for _, child := range children {
		require.NoError(t, child.validate())
		total += child.voxelCount()
	}
	assert.Equal(t, c.voxelCount(), total)
}

func TestGridCellSplitOddRemainderAbsorbedByLastChild(t *testing.T) {
	c := GridCell{Min: ivec3{0, 0, 0}, Max: ivec3{5, 4, 4}}
	children := c.split()
	total := 0
	for _, child := range children {
		require.NoError(t, child.validate())
		total += child.voxelCount()
	}
	assert.Equal(t, c.voxelCount(), total)
}

func TestGridCellSplitThinAxisNotSplit(t *testing.T) {
	c := GridCell{Min: ivec3{0, 0, 0}, Max: ivec3{1, 8, 8}}
	children := c.split()
	require.Len(t, children, 4)
	for _, child := range children {
		require.NoError(t, child.validate())
		assert.Equal(t, 1, child.extent()[0])
	}
}

func TestSparseGridMergeRejectsDuplicateKeys(t *testing.T) {
	a := newSparseGrid()
	a.set(ivec3{0, 0, 0}, 1)
	b := newSparseGrid()
	b.set(ivec3{0, 0, 0}, 2)

	assert.Error(t, a.merge(b))
}

func TestSparseGridMergeDisjoint(t *testing.T) {
	a := newSparseGrid()
	a.set(ivec3{0, 0, 0}, 1)
	b := newSparseGrid()
	b.set(ivec3{1, 0, 0}, 2)

	require.NoError(t, a.merge(b))
	assert.Equal(t, 2, a.len())
}
