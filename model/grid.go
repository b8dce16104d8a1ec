package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"
)

// Cell states stored in the grid
const (
	Dead  uint8 = 0
	Alive uint8 = 1
)

var (
	// ErrInvalidDimensions is returned when a grid is requested with a non-positive width or height
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrSizeMismatch is returned when copying between grids of different dimensions
	ErrSizeMismatch = errors.New("grid size mismatch")
)

// View is the read-only side of a grid handed to renderers
type View interface {
	GetWidth() int
	GetHeight() int
	Get(x, y int) uint8
}

// Grid represents the toroidal game board as a flat row-major buffer
type Grid struct {
	width  int
	height int
	cells  []uint8
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// Index maps any (x, y), including negative or out-of-range values, to its wrapped linear index
func (g *Grid) Index(x, y int) int {
	x = ((x % g.width) + g.width) % g.width
	y = ((y % g.height) + g.height) % g.height
	return y*g.width + x
}

// Set writes a cell state at the wrapped coordinate. The caller keeps state in {Dead, Alive}.
func (g *Grid) Set(x, y int, state uint8) {
	g.cells[g.Index(x, y)] = state
}

// Get returns the state of the cell at the wrapped coordinate
func (g *Grid) Get(x, y int) uint8 {
	return g.cells[g.Index(x, y)]
}

// CloneInto copies every cell into dest, which must have identical dimensions
func (g *Grid) CloneInto(dest *Grid) error {
	if dest.width != g.width || dest.height != g.height {
		return errors.Wrapf(ErrSizeMismatch, "[CloneInto] %dx%d into %dx%d",
			g.width, g.height, dest.width, dest.height)
	}
	copy(dest.cells, g.cells)
	return nil
}

// Clear kills every cell
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
}

// CountAliveNeighbors sums the 8 surrounding cells, wrapping at the edges.
// On grids narrower than 3 cells the same cell can be counted more than once.
func (g *Grid) CountAliveNeighbors(x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			count += int(g.Get(x+dx, y+dy))
		}
	}
	return count
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		count += int(c)
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	h.Write(g.cells)
	return fmt.Sprintf("%x", h.Sum(nil))
}
