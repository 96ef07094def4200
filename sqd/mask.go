package sqd

import (
	"fmt"
	"math"
)

// Mask marks the field of view of a grid: a non-zero entry selects the
// sample at the same position.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// MaskFromRows builds a mask from a slice of equally long rows.
func MaskFromRows(rows [][]int) (*Mask, error) {
	width, err := rowWidth(rows)
	if err != nil {
		return nil, err
	}

	m := &Mask{Width: width, Height: len(rows), Pix: make([]uint8, 0, width*len(rows))}
	for _, row := range rows {
		for _, v := range row {
			if v != 0 {
				m.Pix = append(m.Pix, 1)
			} else {
				m.Pix = append(m.Pix, 0)
			}
		}
	}
	return m, nil
}

// CircularMask selects every pixel whose centre lies within radius of
// (cx, cy), the usual field of view of an all-sky camera.
func CircularMask(width, height int, cx, cy, radius float64) (*Mask, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: mask size %dx%d", ErrInvalidArgument, width, height)
	}
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidArgument, radius)
	}

	m := &Mask{Width: width, Height: height, Pix: make([]uint8, width*height)}
	r2 := radius * radius
	for y := 0; y < height; y++ {
		dy := float64(y) - cy
		for x := 0; x < width; x++ {
			dx := float64(x) - cx
			if dx*dx+dy*dy <= r2 {
				m.Pix[y*width+x] = 1
			}
		}
	}
	return m, nil
}

// Count returns the number of selected pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func (m *Mask) validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil mask", ErrInvalidArgument)
	}
	if m.Width < 0 || m.Height < 0 || len(m.Pix) != m.Width*m.Height {
		return fmt.Errorf("%w: mask %dx%d holds %d entries", ErrInvalidArgument, m.Width, m.Height, len(m.Pix))
	}
	return nil
}

// Extract returns the masked sample sequence: the samples of grid under a
// non-zero mask entry, in row-major order.
func Extract(grid *Grid, mask *Mask) ([]int, error) {
	if err := grid.validate(); err != nil {
		return nil, err
	}
	if err := mask.validate(); err != nil {
		return nil, err
	}
	if grid.Width != mask.Width || grid.Height != mask.Height {
		return nil, fmt.Errorf("%w: mask %dx%d does not match grid %dx%d",
			ErrInvalidArgument, mask.Width, mask.Height, grid.Width, grid.Height)
	}

	samples := make([]int, 0, mask.Count())
	for i, v := range mask.Pix {
		if v != 0 {
			samples = append(samples, grid.Pix[i])
		}
	}
	return samples, nil
}

// Expand scatters a masked sample sequence back into a full grid. Pixels
// outside the mask are set to fill. It is the inverse of Extract for the
// same mask.
func Expand(samples []int, mask *Mask, fill int) (*Grid, error) {
	if err := mask.validate(); err != nil {
		return nil, err
	}
	if n := mask.Count(); len(samples) != n {
		return nil, fmt.Errorf("%w: %d samples for a mask selecting %d pixels", ErrInvalidArgument, len(samples), n)
	}

	g := &Grid{Width: mask.Width, Height: mask.Height, Pix: make([]int, len(mask.Pix))}
	k := 0
	for i, v := range mask.Pix {
		if v != 0 {
			g.Pix[i] = samples[k]
			k++
		} else {
			g.Pix[i] = fill
		}
	}
	return g, nil
}
