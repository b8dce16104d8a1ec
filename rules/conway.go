package rules

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules (B3/S23):
  - a live cell with fewer than 2 live neighbours dies (underpopulation)
  - a live cell with 2 or 3 live neighbours survives
  - a live cell with more than 3 live neighbours dies (overpopulation)
  - a dead cell with exactly 3 live neighbours becomes alive (reproduction)
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// NextState is ApplyConwayRules over the 0/1 cell encoding used by the grid
func NextState(state uint8, neighbors int) uint8 {
	if ApplyConwayRules(neighbors, state == 1) {
		return 1
	}
	return 0
}
