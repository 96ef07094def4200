package sqd

import "fmt"

// Grid is a Width x Height array of integer samples stored row-major.
type Grid struct {
	Width  int
	Height int
	Pix    []int
}

// NewGrid creates a zeroed grid.
func NewGrid(width, height int) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidArgument, width, height)
	}
	return &Grid{Width: width, Height: height, Pix: make([]int, width*height)}, nil
}

// GridFromRows builds a grid from a slice of equally long rows.
func GridFromRows(rows [][]int) (*Grid, error) {
	width, err := rowWidth(rows)
	if err != nil {
		return nil, err
	}

	g := &Grid{Width: width, Height: len(rows), Pix: make([]int, 0, width*len(rows))}
	for _, row := range rows {
		g.Pix = append(g.Pix, row...)
	}
	return g, nil
}

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) int {
	return g.Pix[y*g.Width+x]
}

// Set stores the sample at column x, row y.
func (g *Grid) Set(x, y, v int) {
	g.Pix[y*g.Width+x] = v
}

func (g *Grid) validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidArgument)
	}
	if g.Width < 0 || g.Height < 0 || len(g.Pix) != g.Width*g.Height {
		return fmt.Errorf("%w: grid %dx%d holds %d samples", ErrInvalidArgument, g.Width, g.Height, len(g.Pix))
	}
	return nil
}

func rowWidth(rows [][]int) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return 0, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidArgument, y, len(row), width)
		}
	}
	return width, nil
}
