package model

import (
	"github.com/sheikhrachel/go-torus/rules"
)

// historySize is how many recent grid hashes are kept for cycle detection
const historySize = 5

// Simulation owns the current generation and a scratch buffer of the same size.
// It is not safe for concurrent use; one goroutine advances and renders it.
type Simulation struct {
	current    *Grid
	scratch    *Grid
	generation int
	history    []string
}

// NewSimulation allocates both buffers for a width x height torus
func NewSimulation(width, height int) (*Simulation, error) {
	current, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	scratch, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	return &Simulation{current: current, scratch: scratch}, nil
}

// Grid returns the current generation. Callers must treat it as read-only.
func (s *Simulation) Grid() View {
	return s.current
}

// Generation returns the number of Advance calls since the last Reset
func (s *Simulation) Generation() int {
	return s.generation
}

// Population returns the number of living cells in the current generation
func (s *Simulation) Population() int {
	return s.current.CountLivingCells()
}

// Set writes a cell of the current generation, used for seeding
func (s *Simulation) Set(x, y int, state uint8) {
	s.current.Set(x, y, state)
}

// Seed marks every cell of p alive, shifted by the offset
func (s *Simulation) Seed(p Pattern, offsetX, offsetY int) {
	for _, c := range p.Cells {
		s.current.Set(c.X+offsetX, c.Y+offsetY, Alive)
	}
}

// Reset clears the grid and returns to generation 0
func (s *Simulation) Reset() {
	s.current.Clear()
	s.scratch.Clear()
	s.generation = 0
	s.history = nil
}

// Advance computes the next generation. Neighbours are always counted on the
// untouched current grid while changes go to scratch, then the buffers swap.
func (s *Simulation) Advance() {
	// both buffers come from NewSimulation with equal dimensions
	copy(s.scratch.cells, s.current.cells)

	for y := range s.current.height {
		for x := range s.current.width {
			state := s.current.Get(x, y)
			next := rules.NextState(state, s.current.CountAliveNeighbors(x, y))
			if next != state {
				s.scratch.Set(x, y, next)
			}
		}
	}

	s.current, s.scratch = s.scratch, s.current
	s.generation++
}

// UpdateHistory records the current grid hash, keeping the last few states
func (s *Simulation) UpdateHistory() {
	s.history = append(s.history, s.current.GetGridHash())
	if len(s.history) > historySize {
		s.history = s.history[1:]
	}
}

// IsStagnant reports whether the most recently recorded state repeats one of
// the three before it (still life or an oscillator of period 3 or less)
func (s *Simulation) IsStagnant() bool {
	n := len(s.history)
	if n < 2 {
		return false
	}
	last := s.history[n-1]
	for i := n - 2; i >= 0 && i >= n-4; i-- {
		if s.history[i] == last {
			return true
		}
	}
	return false
}
