package sqd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridFromRows(t *testing.T) {
	g, err := GridFromRows([][]int{{10, 20, 30}, {40, 50, 60}})
	require.NoError(t, err)
	require.Equal(t, 3, g.Width)
	require.Equal(t, 2, g.Height)
	require.Equal(t, []int{10, 20, 30, 40, 50, 60}, g.Pix)
	require.Equal(t, 60, g.At(2, 1))

	g.Set(0, 1, 7)
	require.Equal(t, 7, g.Pix[3])

	_, err = GridFromRows([][]int{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrInvalidArgument)

	g, err = GridFromRows(nil)
	require.NoError(t, err)
	require.Equal(t, 0, g.Width)
	require.Equal(t, 0, g.Height)
}

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(4, 3)
	require.NoError(t, err)
	require.Len(t, g.Pix, 12)

	_, err = NewGrid(-1, 3)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMaskFromRows(t *testing.T) {
	m, err := MaskFromRows([][]int{{1, 0}, {5, -1}})
	require.NoError(t, err)
	require.Equal(t, []uint8{1, 0, 1, 1}, m.Pix)
	require.Equal(t, 3, m.Count())

	_, err = MaskFromRows([][]int{{1}, {1, 1}})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCircularMask(t *testing.T) {
	m, err := CircularMask(5, 5, 2, 2, 1)
	require.NoError(t, err)

	expected := []uint8{
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 1, 1, 1, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0,
	}
	require.Equal(t, expected, m.Pix)
	require.Equal(t, 5, m.Count())

	// A radius covering the corners selects everything
	m, err = CircularMask(4, 3, 1.5, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 12, m.Count())

	m, err = CircularMask(3, 3, 1, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, m.Count())

	_, err = CircularMask(3, 3, 1, 1, -1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = CircularMask(-3, 3, 1, 1, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExtract(t *testing.T) {
	g, _ := GridFromRows([][]int{{10, 20}, {30, 40}})
	m, _ := MaskFromRows([][]int{{1, 0}, {1, 1}})

	samples, err := Extract(g, m)
	require.NoError(t, err)
	require.Equal(t, []int{10, 30, 40}, samples)
}

func TestExtractShapeMismatch(t *testing.T) {
	g, _ := GridFromRows([][]int{{10, 20}, {30, 40}})
	m, _ := MaskFromRows([][]int{{1, 0, 1}, {1, 1, 1}})

	_, err := Extract(g, m)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Declared size does not match the pixel slice
	bad := &Grid{Width: 3, Height: 2, Pix: []int{1, 2, 3}}
	_, err = Extract(bad, m)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Extract(nil, m)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Extract(g, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExpand(t *testing.T) {
	m, _ := MaskFromRows([][]int{{1, 0}, {1, 1}})

	g, err := Expand([]int{10, 30, 40}, m, -1)
	require.NoError(t, err)
	require.Equal(t, 2, g.Width)
	require.Equal(t, 2, g.Height)
	require.Equal(t, []int{10, -1, 30, 40}, g.Pix)

	_, err = Expand([]int{10, 30}, m, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestExtractExpandInverse(t *testing.T) {
	g, _ := NewGrid(16, 12)
	for i := range g.Pix {
		g.Pix[i] = i * 37
	}
	m, err := CircularMask(16, 12, 7.5, 5.5, 5)
	require.NoError(t, err)

	samples, err := Extract(g, m)
	require.NoError(t, err)
	require.Len(t, samples, m.Count())

	back, err := Expand(samples, m, 0)
	require.NoError(t, err)
	for i, v := range m.Pix {
		if v != 0 {
			require.Equal(t, g.Pix[i], back.Pix[i])
		} else {
			require.Equal(t, 0, back.Pix[i])
		}
	}
}
